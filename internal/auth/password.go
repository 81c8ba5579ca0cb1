package auth

import (
	"errors"
	"unicode/utf8"

	"github.com/talentbase/hiring-pipeline/internal"
	"golang.org/x/crypto/bcrypt"
)

const (
	// MaxPasswordBytes is bcrypt's input limit; material beyond it is
	// silently ignored by the primitive, so we truncate explicitly and
	// deterministically instead.
	MaxPasswordBytes = 72

	// MinPasswordLength is the policy minimum, counted in characters.
	MinPasswordLength = 6
)

// PasswordHasher wraps bcrypt with the byte-length truncation policy. The
// truncation is a pure function of the password's byte sequence, applied
// identically on hash and verify, otherwise accounts whose password needed
// truncation at creation time would become unrecoverable.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash validates the password policy and returns a bcrypt hash of the
// truncated material.
func (h *PasswordHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", internal.NewValidationError("password is required", internal.ErrCodeValidationFailed)
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return "", internal.NewValidationError("password must be at least 6 characters", internal.ErrCodePasswordTooShort)
	}

	hash, err := bcrypt.GenerateFromPassword(truncatePassword([]byte(password)), h.cost)
	if err != nil {
		return "", internal.ErrHashingFailure.WithCause(err)
	}
	return string(hash), nil
}

// Verify reports whether password matches the stored hash. A mismatch is
// never an error. A malformed stored hash surfaces as a hashing failure;
// any other fault from the primitive is treated as no match so an internal
// error cannot leak through the authentication path.
func (h *PasswordHasher) Verify(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), truncatePassword([]byte(password)))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if isMalformedHashError(err) {
		return false, internal.ErrHashingFailure.WithCause(err)
	}
	return false, nil
}

func isMalformedHashError(err error) bool {
	if errors.Is(err, bcrypt.ErrHashTooShort) {
		return true
	}
	var versionErr bcrypt.HashVersionTooNewError
	if errors.As(err, &versionErr) {
		return true
	}
	var prefixErr bcrypt.InvalidHashPrefixError
	if errors.As(err, &prefixErr) {
		return true
	}
	var costErr bcrypt.InvalidCostError
	return errors.As(err, &costErr)
}

// truncatePassword cuts the byte sequence at the bcrypt limit, then backs
// off over any trailing bytes that would split a multi-byte rune at the cut
// point. The result is always valid UTF-8 when the input was.
func truncatePassword(b []byte) []byte {
	if len(b) <= MaxPasswordBytes {
		return b
	}
	b = b[:MaxPasswordBytes]
	for len(b) > 0 {
		r, size := utf8.DecodeLastRune(b)
		if r == utf8.RuneError && size <= 1 {
			b = b[:len(b)-1]
			continue
		}
		break
	}
	return b
}
