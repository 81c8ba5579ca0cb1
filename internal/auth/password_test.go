package auth

import (
	"strings"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"github.com/talentbase/hiring-pipeline/internal"
	"golang.org/x/crypto/bcrypt"
)

var _ = ginkgo.Describe("PasswordHasher", func() {
	var hasher *PasswordHasher

	ginkgo.BeforeEach(func() {
		hasher = NewPasswordHasher(bcrypt.MinCost)
	})

	ginkgo.Describe("Hash", func() {
		ginkgo.It("should hash and verify a normal password", func() {
			hash, err := hasher.Hash("secret1")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(hash).ToNot(gomega.BeEmpty())

			ok, err := hasher.Verify("secret1", hash)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(ok).To(gomega.BeTrue())
		})

		ginkgo.It("should reject an empty password", func() {
			_, err := hasher.Hash("")

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeValidation))
		})

		ginkgo.It("should reject a password below the minimum length", func() {
			_, err := hasher.Hash("abc12")

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodePasswordTooShort))
		})
	})

	ginkgo.Describe("byte-length truncation", func() {
		ginkgo.It("should round-trip a 100 character ASCII password past the 72 byte limit", func() {
			password := strings.Repeat("x", 100)

			hash, err := hasher.Hash(password)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			ok, err := hasher.Verify(password, hash)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(ok).To(gomega.BeTrue())
		})

		ginkgo.It("should apply the same truncation on hash and verify", func() {
			// differs from the hashed password only past byte 72
			password := strings.Repeat("a", 80)
			hash, err := hasher.Hash(password)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			ok, err := hasher.Verify(strings.Repeat("a", 90), hash)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(ok).To(gomega.BeTrue())
		})

		ginkgo.It("should trim a multi-byte character split at the cut point", func() {
			// 71 single-byte chars followed by a 2-byte char: the cut at
			// 72 lands inside the rune, which must be dropped entirely
			password := strings.Repeat("a", 71) + "é"

			hash, err := hasher.Hash(password)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			ok, err := hasher.Verify(password, hash)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(ok).To(gomega.BeTrue())

			// the material actually hashed is the 71 leading bytes
			ok, err = hasher.Verify(strings.Repeat("a", 71), hash)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(ok).To(gomega.BeTrue())
		})

		ginkgo.It("should keep a multi-byte character that fits exactly", func() {
			password := strings.Repeat("a", 70) + "é" // 72 bytes exactly

			hash, err := hasher.Hash(password)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			ok, err := hasher.Verify(password, hash)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(ok).To(gomega.BeTrue())

			ok, err = hasher.Verify(strings.Repeat("a", 70), hash)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(ok).To(gomega.BeFalse())
		})
	})

	ginkgo.Describe("Verify", func() {
		ginkgo.It("should return false without error on mismatch", func() {
			hash, err := hasher.Hash("secret1")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			ok, err := hasher.Verify("wrong-password", hash)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(ok).To(gomega.BeFalse())
		})

		ginkgo.It("should surface a hashing failure for a malformed stored hash", func() {
			ok, err := hasher.Verify("secret1", "not-a-bcrypt-hash")
			gomega.Expect(ok).To(gomega.BeFalse())

			appErr, isApp := internal.IsAppError(err)
			gomega.Expect(isApp).To(gomega.BeTrue())
			gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeHashingFailure))
		})
	})
})
