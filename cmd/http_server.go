package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"github.com/talentbase/hiring-pipeline/internal"
	"github.com/talentbase/hiring-pipeline/internal/account"
	accountPostgres "github.com/talentbase/hiring-pipeline/internal/account/postgres"
	"github.com/talentbase/hiring-pipeline/internal/auth"
	"github.com/talentbase/hiring-pipeline/internal/core/events"
	"github.com/talentbase/hiring-pipeline/internal/job"
	jobPostgres "github.com/talentbase/hiring-pipeline/internal/job/postgres"
	"github.com/talentbase/hiring-pipeline/internal/submission"
	submissionPostgres "github.com/talentbase/hiring-pipeline/internal/submission/postgres"
	"github.com/talentbase/hiring-pipeline/internal/transport/rest"
	"github.com/talentbase/hiring-pipeline/pkg/logger"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

// Dependencies holds every explicitly constructed collaborator. Nothing in
// the process relies on package-level singletons; the entry point owns the
// full init/teardown lifecycle.
type Dependencies struct {
	Config *internal.Config
	SQLDB  *sql.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.SQLDB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Format, config.Observability.Logging.Level)
	log := logger.L()

	gdb, sqlDB, err := openDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	accountRepo := accountPostgres.NewAccountRepository(gdb)
	jobRepo := jobPostgres.NewJobRepository(gdb)
	submissionRepo := submissionPostgres.NewSubmissionRepository(gdb)

	hasher := auth.NewPasswordHasher(config.Security.BCryptCost)
	tokens := auth.NewJWTTokenGenerator(config.Security.JWTSecret, config.Security.AccessTokenTTL)
	authService := auth.NewService(accountRepo, tokens, hasher, log)
	accountService := account.NewService(accountRepo, log)
	jobService := job.NewService(jobRepo, log)

	bus := events.NewEventBus(log)
	notifier := submission.NewNotifier(log)
	notifier.RegisterEventHandlers(bus)

	submissionService := submission.NewService(submissionRepo, jobService, bus, log)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(
		router,
		sqlDB,
		config.Server.AllowedOrigins,
		auth.NewHandler(authService),
		account.NewHandler(accountService),
		job.NewHandler(jobService),
		submission.NewHandler(submissionService),
		log,
	)

	return &Dependencies{
		Config: config,
		SQLDB:  sqlDB,
		Router: router,
		Logger: log,
	}, nil
}

// openDB opens the configured store: postgres through the pgx stdlib driver
// with an explicit pool, or sqlite for local development.
func openDB(cfg internal.DatabaseConfig) (*gorm.DB, *sql.DB, error) {
	gormCfg := &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	}

	if cfg.Driver == "sqlite" {
		gdb, err := gorm.Open(sqlite.Open(cfg.GetDSN()), gormCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, nil, err
		}
		return gdb, sqlDB, nil
	}

	dbConn, err := sqlx.Connect("pgx", cfg.GetDSN())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	gdb, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: dbConn.DB}), gormCfg)
	if err != nil {
		_ = dbConn.Close()
		return nil, nil, fmt.Errorf("failed to open gorm over pgx: %w", err)
	}

	return gdb, dbConn.DB, nil
}
