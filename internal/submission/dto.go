package submission

import (
	"github.com/talentbase/hiring-pipeline/internal"
)

type CreateSubmissionDTO struct {
	JobID string `json:"job_id"`
	// CandidateID is only honored for admin actors; candidates always
	// apply as themselves.
	CandidateID string `json:"candidate_id,omitempty"`
}

type TransitionDTO struct {
	Status string `json:"status"`
	Note   string `json:"note,omitempty"`
}

func (d CreateSubmissionDTO) Validate() error {
	if d.JobID == "" {
		return internal.NewValidationError("job_id is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

func (d TransitionDTO) Validate() error {
	if d.Status == "" {
		return internal.NewValidationError("status is required", internal.ErrCodeValidationFailed)
	}
	if !Status(d.Status).Valid() {
		return internal.NewValidationError("unknown submission status", internal.ErrCodeInvalidStatus)
	}
	return nil
}
