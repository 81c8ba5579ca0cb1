package rest

import (
	"database/sql"
	"log/slog"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/talentbase/hiring-pipeline/internal/account"
	"github.com/talentbase/hiring-pipeline/internal/auth"
	"github.com/talentbase/hiring-pipeline/internal/job"
	"github.com/talentbase/hiring-pipeline/internal/submission"
	"github.com/talentbase/hiring-pipeline/internal/transport/middleware"
)

// RegisterAllRoutes wires the full API surface. Everything under the
// protected group runs behind the auth middleware (token verify, liveness
// check, account into context); role gates sit on the subtrees that need
// them, ownership checks live in the services.
func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	allowedOrigins string,
	authHandler *auth.Handler,
	accountHandler *account.Handler,
	jobHandler *job.Handler,
	submissionHandler *submission.Handler,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Public auth routes
		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/register", authHandler.Register)
			sr.Post("/login", authHandler.Login)
			sr.Post("/logout", authHandler.Logout)
		})

		// Protected routes
		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.Middleware)

			pr.Get("/users/me", authHandler.Me)

			// Account directory, admin only except self reads/updates
			pr.Route("/accounts", func(ar chi.Router) {
				ar.Get("/{id}", accountHandler.Get)
				ar.Patch("/{id}", accountHandler.UpdateProfile)

				ar.Group(func(adm chi.Router) {
					adm.Use(authHandler.RequireRoles(account.RoleAdmin))
					adm.Get("/", accountHandler.List)
					adm.Post("/", authHandler.Register)
					adm.Patch("/{id}/role", accountHandler.ChangeRole)
					adm.Patch("/{id}/active", accountHandler.SetActive)
				})
			})

			// Job postings
			pr.Route("/jobs", func(jr chi.Router) {
				jr.Get("/", jobHandler.ListOpen)
				jr.Get("/{id}", jobHandler.Get)

				jr.Group(func(mr chi.Router) {
					mr.Use(authHandler.RequireRoles(account.RoleManager))
					mr.Post("/", jobHandler.Create)
					mr.Patch("/{id}", jobHandler.Update)
					mr.Post("/{id}/close", jobHandler.Close)
					mr.Get("/{id}/submissions", submissionHandler.ListForJob)
				})
			})

			// Submissions
			pr.Route("/submissions", func(sr chi.Router) {
				sr.Get("/", submissionHandler.ListMine)
				sr.Get("/{id}", submissionHandler.Get)
				sr.Get("/{id}/history", submissionHandler.History)

				sr.Group(func(cr chi.Router) {
					cr.Use(authHandler.RequireRoles(account.RoleCandidate))
					cr.Post("/", submissionHandler.Create)
				})

				sr.Group(func(mr chi.Router) {
					mr.Use(authHandler.RequireRoles(account.RoleManager))
					mr.Post("/{id}/transition", submissionHandler.Transition)
				})
			})
		})
	})
}
