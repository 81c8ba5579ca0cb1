package submission

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/talentbase/hiring-pipeline/internal"
	"github.com/talentbase/hiring-pipeline/internal/account"
	"github.com/talentbase/hiring-pipeline/internal/core/events"
	"github.com/talentbase/hiring-pipeline/internal/job"
)

// transitionRetries bounds how often a transition is replayed after losing
// a conditional-update race before the conflict is surfaced.
const transitionRetries = 3

// Repository is the persistence surface for the lifecycle engine. Create
// and UpdateStatus are atomic: the status write and the audit record land
// together or not at all. UpdateStatus must only apply when the stored
// current status still equals fromStatus, and report
// internal.ErrTransitionConflict otherwise.
type Repository interface {
	Create(ctx context.Context, sub *Submission, first *TransitionRecord) error
	GetByID(ctx context.Context, id string) (*Submission, error)
	UpdateStatus(ctx context.Context, id string, fromStatus, toStatus Status, rec *TransitionRecord) error
	History(ctx context.Context, submissionID string) ([]*TransitionRecord, error)
	ListByJob(ctx context.Context, jobID string, limit, offset int) ([]*Submission, error)
	ListByCandidate(ctx context.Context, candidateID string, limit, offset int) ([]*Submission, error)
}

// JobDirectory resolves postings when a submission is created.
type JobDirectory interface {
	GetByID(ctx context.Context, id string) (*job.Job, error)
}

// Service is the submission lifecycle engine.
type Service struct {
	repo   Repository
	jobs   JobDirectory
	bus    *events.EventBus
	logger *slog.Logger
}

func NewService(repo Repository, jobs JobDirectory, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		jobs:   jobs,
		bus:    bus,
		logger: logger,
	}
}

// Create files a candidate's application to an open job. The initial status
// is always SUBMITTED, written together with the first audit record
// (previous status nil). The job's owner becomes the submission's owning
// manager.
func (s *Service) Create(ctx context.Context, actor *account.Account, dto CreateSubmissionDTO) (*Submission, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	candidateID := actor.ID
	if actor.IsAdmin() && dto.CandidateID != "" {
		candidateID = dto.CandidateID
	}

	j, err := s.jobs.GetByID(ctx, dto.JobID)
	if err != nil {
		return nil, err
	}
	if !j.IsOpen() {
		return nil, internal.ErrJobClosed
	}

	now := time.Now()
	sub := &Submission{
		ID:            uuid.NewString(),
		JobID:         j.ID,
		CandidateID:   candidateID,
		ManagerID:     j.ManagerID,
		CurrentStatus: StatusSubmitted,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	first := &TransitionRecord{
		SubmissionID: sub.ID,
		FromStatus:   nil,
		ToStatus:     StatusSubmitted,
		ActorID:      actor.ID,
		CreatedAt:    now,
	}

	if err := s.repo.Create(ctx, sub, first); err != nil {
		if errors.Is(err, internal.ErrDuplicateSubmission) {
			return nil, err
		}
		s.logger.Error("failed to create submission", "error", err, "job_id", j.ID, "candidate_id", candidateID)
		return nil, err
	}

	s.logger.Info("submission created",
		"submission_id", sub.ID,
		"job_id", j.ID,
		"candidate_id", candidateID,
		"manager_id", j.ManagerID)

	if s.bus != nil {
		_ = s.bus.Publish(ctx, events.NewSubmissionCreated(sub.ID, j.ID, candidateID))
	}
	return sub, nil
}

func (s *Service) GetByID(ctx context.Context, requester *account.Account, id string) (*Submission, error) {
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.mayRead(requester, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// Transition moves a submission to a new status and appends the matching
// audit record atomically. Only the owning manager or an admin may call it;
// terminal statuses accept nothing further. Re-applying the current status
// is allowed and still appends a record, so repeated manager actions stay
// visible in the trail. Losing a concurrent update race re-validates
// against the fresh status a bounded number of times.
func (s *Service) Transition(ctx context.Context, actor *account.Account, submissionID string, dto TransitionDTO) (*Submission, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	newStatus := Status(dto.Status)

	var lastErr error
	for attempt := 0; attempt < transitionRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		sub, err := s.repo.GetByID(ctx, submissionID)
		if err != nil {
			return nil, err
		}

		if err := s.mayTransition(actor, sub); err != nil {
			return nil, err
		}
		if sub.CurrentStatus.Terminal() {
			return nil, internal.ErrInvalidTransition
		}

		oldStatus := sub.CurrentStatus
		rec := &TransitionRecord{
			SubmissionID: sub.ID,
			FromStatus:   &oldStatus,
			ToStatus:     newStatus,
			ActorID:      actor.ID,
			Note:         dto.Note,
			CreatedAt:    time.Now(),
		}

		err = s.repo.UpdateStatus(ctx, sub.ID, oldStatus, newStatus, rec)
		if err == nil {
			s.logger.Info("submission transitioned",
				"submission_id", sub.ID,
				"from_status", oldStatus,
				"to_status", newStatus,
				"actor_id", actor.ID)

			if s.bus != nil {
				_ = s.bus.Publish(ctx, events.NewSubmissionTransitioned(sub.ID, string(oldStatus), string(newStatus), actor.ID))
			}

			sub.CurrentStatus = newStatus
			sub.UpdatedAt = rec.CreatedAt
			return sub, nil
		}
		if !errors.Is(err, internal.ErrTransitionConflict) {
			s.logger.Error("transition write failed", "error", err, "submission_id", sub.ID)
			return nil, err
		}

		// lost the race: re-read and re-validate against the new state
		lastErr = err
		s.logger.Warn("transition conflict, retrying",
			"submission_id", sub.ID,
			"attempt", attempt+1)
	}

	return nil, lastErr
}

// History returns the audit trail oldest first. Readable by the candidate
// who owns the submission, the owning manager, or an admin.
func (s *Service) History(ctx context.Context, requester *account.Account, submissionID string) ([]*TransitionRecord, error) {
	sub, err := s.repo.GetByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if err := s.mayRead(requester, sub); err != nil {
		return nil, err
	}
	return s.repo.History(ctx, submissionID)
}

// ListByJob returns a job's submissions for its owning manager or an admin.
func (s *Service) ListByJob(ctx context.Context, requester *account.Account, jobID string, limit, offset int) ([]*Submission, error) {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !requester.IsAdmin() && !j.OwnedBy(requester.ID) {
		return nil, internal.ErrNotJobOwner
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.ListByJob(ctx, jobID, limit, offset)
}

// ListByCandidate returns a candidate's own submissions.
func (s *Service) ListByCandidate(ctx context.Context, requester *account.Account, candidateID string, limit, offset int) ([]*Submission, error) {
	if requester.ID != candidateID && !requester.IsAdmin() {
		return nil, internal.ErrAccessDenied
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.ListByCandidate(ctx, candidateID, limit, offset)
}

// mayTransition enforces the actor side of the state machine: only the
// submission's owning manager or an admin. Candidates never transition
// their own submissions.
func (s *Service) mayTransition(actor *account.Account, sub *Submission) error {
	if actor.IsAdmin() {
		return nil
	}
	if actor.IsManager() {
		if sub.ManagerID == actor.ID {
			return nil
		}
		return internal.ErrNotSubmissionOwner
	}
	return internal.ErrAccessDenied
}

func (s *Service) mayRead(requester *account.Account, sub *Submission) error {
	if requester.IsAdmin() || requester.ID == sub.CandidateID || requester.ID == sub.ManagerID {
		return nil
	}
	return internal.ErrNotSubmissionOwner
}
