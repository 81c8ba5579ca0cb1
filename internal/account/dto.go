package account

import (
	"github.com/talentbase/hiring-pipeline/internal"
)

type UpdateProfileDTO struct {
	Name string `json:"name"`
}

type ChangeRoleDTO struct {
	Role string `json:"role"`
}

type SetActiveDTO struct {
	Active bool `json:"active"`
}

func (d UpdateProfileDTO) Validate() error {
	if d.Name == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

func (d ChangeRoleDTO) Validate() error {
	if !Role(d.Role).Valid() {
		return internal.NewValidationError("unknown role", internal.ErrCodeInvalidRole)
	}
	return nil
}
