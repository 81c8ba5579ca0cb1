package job

import (
	"context"
	"log/slog"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/talentbase/hiring-pipeline/internal"
	"github.com/talentbase/hiring-pipeline/internal/account"
)

func TestJob(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Job Module Suite")
}

type mockRepository struct {
	jobs map[string]*Job
}

func newMockRepository() *mockRepository {
	return &mockRepository{jobs: make(map[string]*Job)}
}

func (m *mockRepository) Create(_ context.Context, j *Job) error {
	m.jobs[j.ID] = j
	return nil
}

func (m *mockRepository) GetByID(_ context.Context, id string) (*Job, error) {
	j, ok := m.jobs[id]
	if !ok {
		return nil, internal.ErrJobNotFound
	}
	return j, nil
}

func (m *mockRepository) Update(_ context.Context, j *Job) error {
	if _, ok := m.jobs[j.ID]; !ok {
		return internal.ErrJobNotFound
	}
	m.jobs[j.ID] = j
	return nil
}

func (m *mockRepository) ListOpen(_ context.Context, limit, offset int) ([]*Job, error) {
	var out []*Job
	for _, j := range m.jobs {
		if j.IsOpen() {
			out = append(out, j)
		}
	}
	return out, nil
}

func (m *mockRepository) ListByManager(_ context.Context, managerID string, limit, offset int) ([]*Job, error) {
	var out []*Job
	for _, j := range m.jobs {
		if j.ManagerID == managerID {
			out = append(out, j)
		}
	}
	return out, nil
}

var _ = ginkgo.Describe("JobService", func() {
	var (
		repo    *mockRepository
		service *Service
		ctx     context.Context

		admin        *account.Account
		manager      *account.Account
		otherManager *account.Account
	)

	ginkgo.BeforeEach(func() {
		admin = &account.Account{ID: "acc-admin", Role: account.RoleAdmin, IsActive: true}
		manager = &account.Account{ID: "acc-manager", Role: account.RoleManager, IsActive: true}
		otherManager = &account.Account{ID: "acc-other", Role: account.RoleManager, IsActive: true}

		repo = newMockRepository()
		service = NewService(repo, slog.Default())
		ctx = context.Background()
	})

	create := func() *Job {
		j, err := service.Create(ctx, manager, CreateJobDTO{
			Title:       "Backend Engineer",
			Description: "Build services",
			Location:    "Remote",
		})
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		return j
	}

	ginkgo.Describe("Create", func() {
		ginkgo.It("should open the job and assign the acting manager as owner", func() {
			j := create()

			gomega.Expect(j.Status).To(gomega.Equal(StatusOpen))
			gomega.Expect(j.ManagerID).To(gomega.Equal(manager.ID))
		})

		ginkgo.It("should reject a missing title", func() {
			_, err := service.Create(ctx, manager, CreateJobDTO{Description: "no title"})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeValidation))
		})
	})

	ginkgo.Describe("Update", func() {
		ginkgo.It("should let the owner change fields", func() {
			j := create()
			title := "Senior Backend Engineer"

			updated, err := service.Update(ctx, manager, j.ID, UpdateJobDTO{Title: &title})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(updated.Title).To(gomega.Equal(title))
		})

		ginkgo.It("should deny a manager who does not own the job", func() {
			j := create()
			title := "Hijacked"

			_, err := service.Update(ctx, otherManager, j.ID, UpdateJobDTO{Title: &title})
			gomega.Expect(err).To(gomega.MatchError(internal.ErrNotJobOwner))
		})

		ginkgo.It("should let an admin change any job", func() {
			j := create()
			title := "Adjusted"

			updated, err := service.Update(ctx, admin, j.ID, UpdateJobDTO{Title: &title})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(updated.Title).To(gomega.Equal(title))
		})

		ginkgo.It("should reject an unknown status value", func() {
			j := create()
			status := "PAUSED"

			_, err := service.Update(ctx, manager, j.ID, UpdateJobDTO{Status: &status})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeInvalidStatus))
		})
	})

	ginkgo.Describe("Close", func() {
		ginkgo.It("should move the job to CLOSED and drop it from the open listing", func() {
			j := create()

			closed, err := service.Close(ctx, manager, j.ID)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(closed.Status).To(gomega.Equal(StatusClosed))

			open, err := service.ListOpen(ctx, 10, 0)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(open).To(gomega.BeEmpty())
		})

		ginkgo.It("should deny a non-owning manager", func() {
			j := create()

			_, err := service.Close(ctx, otherManager, j.ID)
			gomega.Expect(err).To(gomega.MatchError(internal.ErrNotJobOwner))
		})
	})
})
