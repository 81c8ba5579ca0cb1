package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	SubmissionCreatedEvent      = "submission.created"
	SubmissionTransitionedEvent = "submission.transitioned"
)

func NewSubmissionCreated(submissionID, jobID, candidateID string) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      SubmissionCreatedEvent,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"submission_id": submissionID,
			"job_id":        jobID,
			"candidate_id":  candidateID,
		},
	}
}

func NewSubmissionTransitioned(submissionID, fromStatus, toStatus, actorID string) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      SubmissionTransitionedEvent,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"submission_id": submissionID,
			"from_status":   fromStatus,
			"to_status":     toStatus,
			"actor_id":      actorID,
		},
	}
}
