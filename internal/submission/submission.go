package submission

import (
	"time"
)

// Status is the closed set of pipeline stages. The pipeline is deliberately
// permissive: any non-terminal status may move to any other status, matching
// real hiring workflows where stages get skipped. The only hard rule is that
// terminal statuses accept no further transitions.
type Status string

const (
	StatusSubmitted Status = "SUBMITTED"
	StatusInterview Status = "INTERVIEW"
	StatusOffer     Status = "OFFER"
	StatusJoined    Status = "JOINED"
	StatusRejected  Status = "REJECTED"
	StatusOnHold    Status = "ON_HOLD"
	StatusWithdrawn Status = "WITHDRAWN"
)

func (s Status) Valid() bool {
	switch s {
	case StatusSubmitted, StatusInterview, StatusOffer, StatusJoined,
		StatusRejected, StatusOnHold, StatusWithdrawn:
		return true
	}
	return false
}

func (s Status) Terminal() bool {
	switch s {
	case StatusJoined, StatusRejected, StatusWithdrawn:
		return true
	}
	return false
}

// Submission is one candidate's application to one job. ManagerID is the
// owning manager authorized to transition it, denormalized from the job at
// creation time. CurrentStatus always equals the newest transition record's
// ToStatus.
type Submission struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	JobID         string    `json:"job_id" gorm:"index:idx_submissions_job_candidate,unique"`
	CandidateID   string    `json:"candidate_id" gorm:"index:idx_submissions_job_candidate,unique"`
	ManagerID     string    `json:"manager_id" gorm:"index"`
	CurrentStatus Status    `json:"current_status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Submission) TableName() string {
	return "submissions"
}

// TransitionRecord is one immutable entry in a submission's audit trail.
// FromStatus is nil only on the first record. The auto-increment ID gives
// insertion order; replaying records in ID order reconstructs the
// submission's status history.
type TransitionRecord struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	SubmissionID string    `json:"submission_id" gorm:"index"`
	FromStatus   *Status   `json:"from_status"`
	ToStatus     Status    `json:"to_status"`
	ActorID      string    `json:"actor_id"`
	Note         string    `json:"note,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func (TransitionRecord) TableName() string {
	return "transition_records"
}
