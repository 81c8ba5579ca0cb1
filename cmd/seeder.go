package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/talentbase/hiring-pipeline/internal/account"
	"github.com/talentbase/hiring-pipeline/internal/auth"
	"github.com/talentbase/hiring-pipeline/internal/job"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		gdb, _, err := openDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		hasher := auth.NewPasswordHasher(cfg.Security.BCryptCost)
		hash, err := hasher.Hash("changeme123")
		if err != nil {
			log.Fatalf("failed to hash seed password: %v", err)
		}

		ctx := context.Background()
		now := time.Now()

		admin := seedAccount(ctx, gdb, "admin@talentbase.dev", "Admin", account.RoleAdmin, hash, now)
		manager := seedAccount(ctx, gdb, "manager@talentbase.dev", "Morgan Manager", account.RoleManager, hash, now)
		seedAccount(ctx, gdb, "candidate@talentbase.dev", "Casey Candidate", account.RoleCandidate, hash, now)
		_ = admin

		var count int64
		gdb.WithContext(ctx).Model(&job.Job{}).Where("manager_id = ?", manager.ID).Count(&count)
		if count == 0 {
			j := &job.Job{
				ID:          uuid.NewString(),
				Title:       "Backend Engineer",
				Description: "Go services, the occasional SQL migration.",
				Location:    "Remote",
				Status:      job.StatusOpen,
				ManagerID:   manager.ID,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := gdb.WithContext(ctx).Create(j).Error; err != nil {
				log.Fatalf("failed to seed job: %v", err)
			}
			fmt.Println("Seeded job:", j.Title)
		}

		fmt.Println("Seeding complete")
	},
}

func seedAccount(ctx context.Context, gdb *gorm.DB, email, name string, role account.Role, hash string, now time.Time) *account.Account {
	var existing account.Account
	err := gdb.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		fmt.Println("account already exists:", email)
		return &existing
	}

	acc := &account.Account{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		Role:         role,
		IsActive:     true,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := gdb.WithContext(ctx).Create(acc).Error; err != nil {
		log.Fatalf("failed to seed account %s: %v", email, err)
	}
	fmt.Println("Seeded account:", email, "role:", role)
	return acc
}
