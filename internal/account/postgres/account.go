package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/talentbase/hiring-pipeline/internal"
	"github.com/talentbase/hiring-pipeline/internal/account"
	"gorm.io/gorm"
)

// AccountRepository implements account.Repository using GORM.
type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, acc *account.Account) error {
	err := r.db.WithContext(ctx).Create(acc).Error
	if err != nil && isUniqueViolation(err) {
		return internal.ErrEmailTaken
	}
	return err
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*account.Account, error) {
	var acc account.Account
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&acc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrAccountNotFound
		}
		return nil, err
	}
	return &acc, nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*account.Account, error) {
	var acc account.Account
	// email lookup is case-sensitive on purpose
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&acc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrAccountNotFound
		}
		return nil, err
	}
	return &acc, nil
}

func (r *AccountRepository) Update(ctx context.Context, acc *account.Account) error {
	return r.db.WithContext(ctx).Save(acc).Error
}

func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*account.Account, error) {
	var accounts []*account.Account
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&accounts).Error
	return accounts, err
}

// isUniqueViolation covers both the postgres error code and the sqlite
// message used in development and tests.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}
