package account

import (
	"context"
	"log/slog"
	"time"

	"github.com/talentbase/hiring-pipeline/internal"
)

// Repository is the persistence surface for the account directory.
type Repository interface {
	Create(ctx context.Context, acc *Account) error
	GetByID(ctx context.Context, id string) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	Update(ctx context.Context, acc *Account) error
	List(ctx context.Context, limit, offset int) ([]*Account, error)
}

// Service owns directory operations: lookups for the token verifier plus the
// admin-gated mutations. Credential handling (register, login) lives in the
// auth service, which writes through the same repository.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) GetByID(ctx context.Context, id string) (*Account, error) {
	acc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return acc, nil
}

// List returns directory entries, admin only.
func (s *Service) List(ctx context.Context, actor *Account, limit, offset int) ([]*Account, error) {
	if !actor.IsAdmin() {
		return nil, internal.ErrAccessDenied
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.List(ctx, limit, offset)
}

// UpdateProfile changes the display name. Accounts may edit themselves;
// admins may edit anyone.
func (s *Service) UpdateProfile(ctx context.Context, actor *Account, accountID, name string) (*Account, error) {
	if name == "" {
		return nil, internal.NewValidationError("name is required", internal.ErrCodeValidationFailed)
	}
	if actor.ID != accountID && !actor.IsAdmin() {
		return nil, internal.ErrAccessDenied
	}

	acc, err := s.repo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	acc.Name = name
	acc.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, acc); err != nil {
		s.logger.Error("failed to update account profile", "error", err, "account_id", accountID)
		return nil, err
	}
	return acc, nil
}

// ChangeRole reassigns an account's role. Role is otherwise immutable, so
// this path is admin only.
func (s *Service) ChangeRole(ctx context.Context, actor *Account, accountID string, role Role) (*Account, error) {
	if !actor.IsAdmin() {
		return nil, internal.ErrAccessDenied
	}
	if !role.Valid() {
		return nil, internal.NewValidationError("unknown role", internal.ErrCodeInvalidRole)
	}

	acc, err := s.repo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	acc.Role = role
	acc.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, acc); err != nil {
		s.logger.Error("failed to change account role", "error", err, "account_id", accountID)
		return nil, err
	}

	s.logger.Info("account role changed",
		"account_id", accountID,
		"role", role,
		"actor_id", actor.ID)
	return acc, nil
}

// SetActive toggles the soft-delete flag. Accounts are never hard-deleted;
// a deactivated account keeps its credentials but fails the liveness check.
func (s *Service) SetActive(ctx context.Context, actor *Account, accountID string, active bool) (*Account, error) {
	if !actor.IsAdmin() {
		return nil, internal.ErrAccessDenied
	}

	acc, err := s.repo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	acc.IsActive = active
	acc.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, acc); err != nil {
		s.logger.Error("failed to toggle account active flag", "error", err, "account_id", accountID)
		return nil, err
	}

	s.logger.Info("account active flag changed",
		"account_id", accountID,
		"active", active,
		"actor_id", actor.ID)
	return acc, nil
}
