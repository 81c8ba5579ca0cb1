package postgres_test

import (
	"context"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/talentbase/hiring-pipeline/internal"
	"github.com/talentbase/hiring-pipeline/internal/submission"
	submissionPostgres "github.com/talentbase/hiring-pipeline/internal/submission/postgres"
)

func TestSubmissionPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Submission Postgres Suite")
}

var _ = Describe("Submission Repository", func() {
	var (
		db   *gorm.DB
		repo *submissionPostgres.SubmissionRepository
		ctx  context.Context
	)

	newSubmission := func(id string) (*submission.Submission, *submission.TransitionRecord) {
		now := time.Now()
		sub := &submission.Submission{
			ID:            id,
			JobID:         "job-1",
			CandidateID:   "cand-" + id,
			ManagerID:     "mgr-1",
			CurrentStatus: submission.StatusSubmitted,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		first := &submission.TransitionRecord{
			SubmissionID: id,
			ToStatus:     submission.StatusSubmitted,
			ActorID:      sub.CandidateID,
			CreatedAt:    now,
		}
		return sub, first
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&submission.Submission{}, &submission.TransitionRecord{})
		Expect(err).NotTo(HaveOccurred())

		repo = submissionPostgres.NewSubmissionRepository(db)
		ctx = context.Background()
	})

	Describe("Create", func() {
		It("should persist the submission together with its first record", func() {
			sub, first := newSubmission("sub-1")

			err := repo.Create(ctx, sub, first)
			Expect(err).NotTo(HaveOccurred())

			stored, err := repo.GetByID(ctx, "sub-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.CurrentStatus).To(Equal(submission.StatusSubmitted))

			records, err := repo.History(ctx, "sub-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(1))
			Expect(records[0].FromStatus).To(BeNil())
		})

		It("should report a duplicate job and candidate pair", func() {
			sub, first := newSubmission("sub-1")
			Expect(repo.Create(ctx, sub, first)).To(Succeed())

			dup, dupFirst := newSubmission("sub-2")
			dup.CandidateID = sub.CandidateID

			err := repo.Create(ctx, dup, dupFirst)
			Expect(err).To(MatchError(internal.ErrDuplicateSubmission))
		})

		It("should return not found for an unknown id", func() {
			_, err := repo.GetByID(ctx, "sub-missing")
			Expect(err).To(MatchError(internal.ErrSubmissionNotFound))
		})
	})

	Describe("UpdateStatus", func() {
		var sub *submission.Submission

		BeforeEach(func() {
			var first *submission.TransitionRecord
			sub, first = newSubmission("sub-1")
			Expect(repo.Create(ctx, sub, first)).To(Succeed())
		})

		record := func(from, to submission.Status) *submission.TransitionRecord {
			return &submission.TransitionRecord{
				SubmissionID: sub.ID,
				FromStatus:   &from,
				ToStatus:     to,
				ActorID:      "mgr-1",
				CreatedAt:    time.Now(),
			}
		}

		It("should apply when the stored status matches", func() {
			err := repo.UpdateStatus(ctx, sub.ID, submission.StatusSubmitted, submission.StatusInterview,
				record(submission.StatusSubmitted, submission.StatusInterview))
			Expect(err).NotTo(HaveOccurred())

			stored, err := repo.GetByID(ctx, sub.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.CurrentStatus).To(Equal(submission.StatusInterview))
		})

		It("should report a conflict and write nothing when the stored status moved", func() {
			err := repo.UpdateStatus(ctx, sub.ID, submission.StatusInterview, submission.StatusOffer,
				record(submission.StatusInterview, submission.StatusOffer))
			Expect(err).To(MatchError(internal.ErrTransitionConflict))

			stored, err := repo.GetByID(ctx, sub.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.CurrentStatus).To(Equal(submission.StatusSubmitted))

			records, err := repo.History(ctx, sub.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(1))
		})

		It("should keep the trail in insertion order", func() {
			Expect(repo.UpdateStatus(ctx, sub.ID, submission.StatusSubmitted, submission.StatusInterview,
				record(submission.StatusSubmitted, submission.StatusInterview))).To(Succeed())
			Expect(repo.UpdateStatus(ctx, sub.ID, submission.StatusInterview, submission.StatusOffer,
				record(submission.StatusInterview, submission.StatusOffer))).To(Succeed())

			records, err := repo.History(ctx, sub.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(3))
			Expect(records[0].ToStatus).To(Equal(submission.StatusSubmitted))
			Expect(records[1].ToStatus).To(Equal(submission.StatusInterview))
			Expect(records[2].ToStatus).To(Equal(submission.StatusOffer))

			stored, err := repo.GetByID(ctx, sub.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(records[len(records)-1].ToStatus).To(Equal(stored.CurrentStatus))
		})
	})

	Describe("listing", func() {
		BeforeEach(func() {
			for _, id := range []string{"sub-1", "sub-2"} {
				sub, first := newSubmission(id)
				Expect(repo.Create(ctx, sub, first)).To(Succeed())
			}
			other, otherFirst := newSubmission("sub-3")
			other.JobID = "job-2"
			Expect(repo.Create(ctx, other, otherFirst)).To(Succeed())
		})

		It("should list by job", func() {
			subs, err := repo.ListByJob(ctx, "job-1", 10, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(subs).To(HaveLen(2))
		})

		It("should list by candidate", func() {
			subs, err := repo.ListByCandidate(ctx, "cand-sub-3", 10, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(subs).To(HaveLen(1))
			Expect(subs[0].JobID).To(Equal("job-2"))
		})

		It("should honor limit and offset", func() {
			subs, err := repo.ListByJob(ctx, "job-1", 1, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(subs).To(HaveLen(1))
		})
	})
})
