package postgres

import (
	"context"
	"errors"

	"github.com/talentbase/hiring-pipeline/internal"
	"github.com/talentbase/hiring-pipeline/internal/job"
	"gorm.io/gorm"
)

// JobRepository implements the job.Repository interface using GORM.
type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) Create(ctx context.Context, j *job.Job) error {
	return r.db.WithContext(ctx).Create(j).Error
}

func (r *JobRepository) GetByID(ctx context.Context, id string) (*job.Job, error) {
	var j job.Job
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&j).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrJobNotFound
		}
		return nil, err
	}
	return &j, nil
}

func (r *JobRepository) Update(ctx context.Context, j *job.Job) error {
	return r.db.WithContext(ctx).Save(j).Error
}

func (r *JobRepository) ListOpen(ctx context.Context, limit, offset int) ([]*job.Job, error) {
	var jobs []*job.Job
	err := r.db.WithContext(ctx).
		Where("status = ?", job.StatusOpen).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&jobs).Error
	return jobs, err
}

func (r *JobRepository) ListByManager(ctx context.Context, managerID string, limit, offset int) ([]*job.Job, error) {
	var jobs []*job.Job
	err := r.db.WithContext(ctx).
		Where("manager_id = ?", managerID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&jobs).Error
	return jobs, err
}
