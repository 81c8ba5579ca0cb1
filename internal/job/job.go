package job

import (
	"time"
)

type Status string

const (
	StatusOpen   Status = "OPEN"
	StatusClosed Status = "CLOSED"
)

func (s Status) Valid() bool {
	return s == StatusOpen || s == StatusClosed
}

// Job is a posting owned by the manager who created it. Only the owner (or
// an admin) may mutate it; candidates can read open postings.
type Job struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Location     string    `json:"location"`
	Requirements string    `json:"requirements"`
	Status       Status    `json:"status"`
	ManagerID    string    `json:"manager_id" gorm:"index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Job) TableName() string {
	return "jobs"
}

func (j *Job) IsOpen() bool {
	return j.Status == StatusOpen
}

func (j *Job) OwnedBy(accountID string) bool {
	return j.ManagerID == accountID
}
