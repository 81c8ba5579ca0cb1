package auth

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/talentbase/hiring-pipeline/internal"
	"github.com/talentbase/hiring-pipeline/internal/account"
)

// Directory is the slice of the account repository the auth service needs:
// credential lookups for login and writes for registration.
type Directory interface {
	GetByEmail(ctx context.Context, email string) (*account.Account, error)
	GetByID(ctx context.Context, id string) (*account.Account, error)
	Create(ctx context.Context, acc *account.Account) error
}

// Service owns login, registration and the request guard. It is the only
// component that touches raw passwords.
type Service struct {
	directory Directory
	tokens    TokenGenerator
	hasher    *PasswordHasher
	logger    *slog.Logger
}

func NewService(directory Directory, tokens TokenGenerator, hasher *PasswordHasher, logger *slog.Logger) *Service {
	return &Service{
		directory: directory,
		tokens:    tokens,
		hasher:    hasher,
		logger:    logger,
	}
}

// Register creates an account. With a nil actor this is self-service
// registration, limited to CANDIDATE and MANAGER; an ADMIN actor may create
// accounts with any role.
func (s *Service) Register(ctx context.Context, actor *account.Account, dto RegisterDTO) (*account.Account, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	role := account.Role(dto.Role)
	if !role.Valid() {
		return nil, internal.NewValidationError("unknown role", internal.ErrCodeInvalidRole)
	}
	if actor == nil {
		if !role.SelfRegisterable() {
			return nil, internal.ErrAccessDenied
		}
	} else if err := Authorize(actor, account.RoleAdmin); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(dto.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	acc := &account.Account{
		ID:           uuid.NewString(),
		Email:        strings.TrimSpace(dto.Email),
		Name:         dto.Name,
		Role:         role,
		IsActive:     true,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.directory.Create(ctx, acc); err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to create account", "error", err, "email", dto.Email)
		return nil, err
	}

	s.logger.Info("account registered", "account_id", acc.ID, "role", acc.Role)
	return acc, nil
}

// Authenticate validates credentials and mints a session token. Unknown
// email and wrong password are indistinguishable to the caller. Inactive
// accounts pass the password check but fail liveness.
func (s *Service) Authenticate(ctx context.Context, dto LoginDTO) (*TokenResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	acc, err := s.directory.GetByEmail(ctx, dto.Email)
	if err != nil {
		return nil, internal.ErrInvalidCredentials
	}

	ok, err := s.hasher.Verify(dto.Password, acc.PasswordHash)
	if err != nil {
		// a corrupt stored hash must read as login failure, not as an
		// internal fault the caller can probe
		s.logger.Error("password verification fault", "error", err, "account_id", acc.ID)
		return nil, internal.ErrInvalidCredentials
	}
	if !ok {
		return nil, internal.ErrInvalidCredentials
	}

	if !acc.IsActive {
		return nil, internal.ErrAccountInactive
	}

	token, err := s.tokens.Generate(acc.ID, acc.Role, 0)
	if err != nil {
		s.logger.Error("token generation failed", "error", err, "account_id", acc.ID)
		return nil, internal.NewInternalError("could not issue token", err)
	}

	return &TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
	}, nil
}

// AuthorizeRequest is the request guard: verify the token, confirm the
// account still exists and is active, then evaluate the role set.
func (s *Service) AuthorizeRequest(ctx context.Context, tokenString string, required ...account.Role) (*account.Account, error) {
	claims, err := s.tokens.Validate(tokenString)
	if err != nil {
		return nil, err
	}

	acc, err := s.directory.GetByID(ctx, claims.AccountID)
	if err != nil {
		// account deleted since issuance: the token no longer proves anything
		return nil, internal.ErrInvalidToken
	}

	if err := Authorize(acc, required...); err != nil {
		return nil, err
	}
	return acc, nil
}

// ValidateAccessToken verifies signature and expiry without the directory
// lookup, used by logout.
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokens.Validate(tokenString)
}
