package job

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/talentbase/hiring-pipeline/internal"
	"github.com/talentbase/hiring-pipeline/internal/account"
)

type Repository interface {
	Create(ctx context.Context, j *Job) error
	GetByID(ctx context.Context, id string) (*Job, error)
	Update(ctx context.Context, j *Job) error
	ListOpen(ctx context.Context, limit, offset int) ([]*Job, error)
	ListByManager(ctx context.Context, managerID string, limit, offset int) ([]*Job, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Create posts a new job owned by the acting manager. The role gate
// (MANAGER or ADMIN) runs in the auth layer; ownership is fixed here.
func (s *Service) Create(ctx context.Context, actor *account.Account, dto CreateJobDTO) (*Job, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	j := &Job{
		ID:           uuid.NewString(),
		Title:        dto.Title,
		Description:  dto.Description,
		Location:     dto.Location,
		Requirements: dto.Requirements,
		Status:       StatusOpen,
		ManagerID:    actor.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, j); err != nil {
		s.logger.Error("failed to create job", "error", err, "manager_id", actor.ID)
		return nil, err
	}

	s.logger.Info("job created", "job_id", j.ID, "manager_id", actor.ID)
	return j, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Job, error) {
	return s.repo.GetByID(ctx, id)
}

// Update mutates a posting. Only the owning manager or an admin may do so;
// the denial is the same error kind as a role denial.
func (s *Service) Update(ctx context.Context, actor *account.Account, jobID string, dto UpdateJobDTO) (*Job, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	j, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !j.OwnedBy(actor.ID) && !actor.IsAdmin() {
		return nil, internal.ErrNotJobOwner
	}

	if dto.Title != nil {
		j.Title = *dto.Title
	}
	if dto.Description != nil {
		j.Description = *dto.Description
	}
	if dto.Location != nil {
		j.Location = *dto.Location
	}
	if dto.Requirements != nil {
		j.Requirements = *dto.Requirements
	}
	if dto.Status != nil {
		j.Status = Status(*dto.Status)
	}
	j.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, j); err != nil {
		s.logger.Error("failed to update job", "error", err, "job_id", jobID)
		return nil, err
	}
	return j, nil
}

// Close is a convenience wrapper for the common status change.
func (s *Service) Close(ctx context.Context, actor *account.Account, jobID string) (*Job, error) {
	status := string(StatusClosed)
	return s.Update(ctx, actor, jobID, UpdateJobDTO{Status: &status})
}

// ListOpen is readable by any authenticated account.
func (s *Service) ListOpen(ctx context.Context, limit, offset int) ([]*Job, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.ListOpen(ctx, limit, offset)
}

func (s *Service) ListByManager(ctx context.Context, managerID string, limit, offset int) ([]*Job, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.ListByManager(ctx, managerID, limit, offset)
}
