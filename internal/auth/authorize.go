package auth

import (
	"github.com/talentbase/hiring-pipeline/internal"
	"github.com/talentbase/hiring-pipeline/internal/account"
)

// Authorize checks an account against a required role set. The liveness
// check runs first, so a deactivated admin is still rejected. ADMIN passes
// every role check regardless of the declared set; an empty set means any
// active authenticated account.
func Authorize(acc *account.Account, required ...account.Role) error {
	if !acc.IsActive {
		return internal.ErrAccountInactive
	}
	if acc.IsAdmin() || len(required) == 0 {
		return nil
	}
	for _, role := range required {
		if acc.Role == role {
			return nil
		}
	}
	return internal.ErrAccessDenied
}
