package account

import (
	"time"
)

// Role is the closed set of authority levels. It is stored as text but only
// the three constants below are ever valid.
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleManager   Role = "MANAGER"
	RoleCandidate Role = "CANDIDATE"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleCandidate:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// SelfRegisterable reports whether the role may be chosen at self-service
// registration. Admin accounts are only created by another admin.
func (r Role) SelfRegisterable() bool {
	return r == RoleCandidate || r == RoleManager
}

type Account struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"is_active"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Account) TableName() string {
	return "accounts"
}

func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

func (a *Account) IsManager() bool {
	return a.Role == RoleManager
}
