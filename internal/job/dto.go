package job

import (
	"github.com/talentbase/hiring-pipeline/internal"
)

type CreateJobDTO struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Location     string `json:"location"`
	Requirements string `json:"requirements"`
}

type UpdateJobDTO struct {
	Title        *string `json:"title,omitempty"`
	Description  *string `json:"description,omitempty"`
	Location     *string `json:"location,omitempty"`
	Requirements *string `json:"requirements,omitempty"`
	Status       *string `json:"status,omitempty"`
}

func (d CreateJobDTO) Validate() error {
	if d.Title == "" {
		return internal.NewValidationError("title is required", internal.ErrCodeValidationFailed)
	}
	if d.Description == "" {
		return internal.NewValidationError("description is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

func (d UpdateJobDTO) Validate() error {
	if d.Status != nil && !Status(*d.Status).Valid() {
		return internal.NewValidationError("unknown job status", internal.ErrCodeInvalidStatus)
	}
	if d.Title != nil && *d.Title == "" {
		return internal.NewValidationError("title cannot be empty", internal.ErrCodeValidationFailed)
	}
	return nil
}
