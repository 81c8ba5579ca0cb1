package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/talentbase/hiring-pipeline/internal"
	"github.com/talentbase/hiring-pipeline/internal/submission"
	"gorm.io/gorm"
)

// SubmissionRepository implements submission.Repository using GORM. Status
// writes and audit-record appends share one transaction so the trail can
// never diverge from the current status, even when a write fails partway.
type SubmissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

func (r *SubmissionRepository) Create(ctx context.Context, sub *submission.Submission, first *submission.TransitionRecord) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(sub).Error; err != nil {
			return err
		}
		return tx.Create(first).Error
	})
	if err != nil && isUniqueViolation(err) {
		return internal.ErrDuplicateSubmission
	}
	return err
}

func (r *SubmissionRepository) GetByID(ctx context.Context, id string) (*submission.Submission, error) {
	var sub submission.Submission
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrSubmissionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// UpdateStatus performs the conditional update the lifecycle engine builds
// on: the status write only applies while the stored current status still
// equals fromStatus. A missed guard rolls the transaction back and reports
// a conflict, leaving the caller to re-read and retry.
func (r *SubmissionRepository) UpdateStatus(ctx context.Context, id string, fromStatus, toStatus submission.Status, rec *submission.TransitionRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&submission.Submission{}).
			Where("id = ? AND current_status = ?", id, fromStatus).
			Updates(map[string]interface{}{
				"current_status": toStatus,
				"updated_at":     time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return internal.ErrTransitionConflict
		}
		return tx.Create(rec).Error
	})
}

func (r *SubmissionRepository) History(ctx context.Context, submissionID string) ([]*submission.TransitionRecord, error) {
	var records []*submission.TransitionRecord
	err := r.db.WithContext(ctx).
		Where("submission_id = ?", submissionID).
		Order("id ASC").
		Find(&records).Error
	return records, err
}

func (r *SubmissionRepository) ListByJob(ctx context.Context, jobID string, limit, offset int) ([]*submission.Submission, error) {
	var subs []*submission.Submission
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&subs).Error
	return subs, err
}

func (r *SubmissionRepository) ListByCandidate(ctx context.Context, candidateID string, limit, offset int) ([]*submission.Submission, error) {
	var subs []*submission.Submission
	err := r.db.WithContext(ctx).
		Where("candidate_id = ?", candidateID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&subs).Error
	return subs, err
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}
