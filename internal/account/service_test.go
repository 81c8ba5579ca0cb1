package account

import (
	"context"
	"log/slog"
	"sort"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/talentbase/hiring-pipeline/internal"
)

func TestAccount(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Account Module Suite")
}

type mockRepository struct {
	accounts map[string]*Account
}

func newMockRepository(accounts ...*Account) *mockRepository {
	m := &mockRepository{accounts: make(map[string]*Account)}
	for _, acc := range accounts {
		m.accounts[acc.ID] = acc
	}
	return m
}

func (m *mockRepository) Create(_ context.Context, acc *Account) error {
	for _, existing := range m.accounts {
		if existing.Email == acc.Email {
			return internal.ErrEmailTaken
		}
	}
	m.accounts[acc.ID] = acc
	return nil
}

func (m *mockRepository) GetByID(_ context.Context, id string) (*Account, error) {
	acc, ok := m.accounts[id]
	if !ok {
		return nil, internal.ErrAccountNotFound
	}
	return acc, nil
}

func (m *mockRepository) GetByEmail(_ context.Context, email string) (*Account, error) {
	for _, acc := range m.accounts {
		if acc.Email == email {
			return acc, nil
		}
	}
	return nil, internal.ErrAccountNotFound
}

func (m *mockRepository) Update(_ context.Context, acc *Account) error {
	if _, ok := m.accounts[acc.ID]; !ok {
		return internal.ErrAccountNotFound
	}
	m.accounts[acc.ID] = acc
	return nil
}

func (m *mockRepository) List(_ context.Context, limit, offset int) ([]*Account, error) {
	all := make([]*Account, 0, len(m.accounts))
	for _, acc := range m.accounts {
		all = append(all, acc)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

var _ = ginkgo.Describe("AccountService", func() {
	var (
		repo    *mockRepository
		service *Service
		ctx     context.Context

		admin     *Account
		manager   *Account
		candidate *Account
	)

	ginkgo.BeforeEach(func() {
		admin = &Account{ID: "acc-1", Email: "admin@example.com", Name: "Admin", Role: RoleAdmin, IsActive: true}
		manager = &Account{ID: "acc-2", Email: "manager@example.com", Name: "Manager", Role: RoleManager, IsActive: true}
		candidate = &Account{ID: "acc-3", Email: "candidate@example.com", Name: "Candidate", Role: RoleCandidate, IsActive: true}

		repo = newMockRepository(admin, manager, candidate)
		service = NewService(repo, slog.Default())
		ctx = context.Background()
	})

	ginkgo.Describe("List", func() {
		ginkgo.It("should list accounts for an admin", func() {
			accounts, err := service.List(ctx, admin, 10, 0)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(accounts).To(gomega.HaveLen(3))
		})

		ginkgo.It("should deny a manager", func() {
			_, err := service.List(ctx, manager, 10, 0)

			gomega.Expect(err).To(gomega.MatchError(internal.ErrAccessDenied))
		})

		ginkgo.It("should clamp an out-of-range limit", func() {
			accounts, err := service.List(ctx, admin, -5, 0)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(accounts).To(gomega.HaveLen(3))
		})
	})

	ginkgo.Describe("UpdateProfile", func() {
		ginkgo.It("should let an account rename itself", func() {
			acc, err := service.UpdateProfile(ctx, candidate, candidate.ID, "Renamed")

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(acc.Name).To(gomega.Equal("Renamed"))
		})

		ginkgo.It("should let an admin rename anyone", func() {
			acc, err := service.UpdateProfile(ctx, admin, candidate.ID, "Renamed By Admin")

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(acc.Name).To(gomega.Equal("Renamed By Admin"))
		})

		ginkgo.It("should deny renaming another account", func() {
			_, err := service.UpdateProfile(ctx, manager, candidate.ID, "Nope")

			gomega.Expect(err).To(gomega.MatchError(internal.ErrAccessDenied))
		})

		ginkgo.It("should reject an empty name", func() {
			_, err := service.UpdateProfile(ctx, candidate, candidate.ID, "")

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeValidation))
		})
	})

	ginkgo.Describe("ChangeRole", func() {
		ginkgo.It("should let an admin promote a candidate to manager", func() {
			acc, err := service.ChangeRole(ctx, admin, candidate.ID, RoleManager)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(acc.Role).To(gomega.Equal(RoleManager))
		})

		ginkgo.It("should deny a manager", func() {
			_, err := service.ChangeRole(ctx, manager, candidate.ID, RoleManager)

			gomega.Expect(err).To(gomega.MatchError(internal.ErrAccessDenied))
		})

		ginkgo.It("should reject an unknown role", func() {
			_, err := service.ChangeRole(ctx, admin, candidate.ID, Role("SUPERUSER"))

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeInvalidRole))
		})

		ginkgo.It("should surface a missing account", func() {
			_, err := service.ChangeRole(ctx, admin, "acc-missing", RoleManager)

			gomega.Expect(err).To(gomega.MatchError(internal.ErrAccountNotFound))
		})
	})

	ginkgo.Describe("SetActive", func() {
		ginkgo.It("should deactivate and reactivate an account", func() {
			acc, err := service.SetActive(ctx, admin, manager.ID, false)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(acc.IsActive).To(gomega.BeFalse())

			acc, err = service.SetActive(ctx, admin, manager.ID, true)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(acc.IsActive).To(gomega.BeTrue())
		})

		ginkgo.It("should keep the password hash through deactivation", func() {
			manager.PasswordHash = "$2a$10$somethinghashed"

			acc, err := service.SetActive(ctx, admin, manager.ID, false)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(acc.PasswordHash).To(gomega.Equal("$2a$10$somethinghashed"))
		})

		ginkgo.It("should deny a non-admin", func() {
			_, err := service.SetActive(ctx, manager, candidate.ID, false)

			gomega.Expect(err).To(gomega.MatchError(internal.ErrAccessDenied))
		})
	})
})
