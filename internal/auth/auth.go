package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/talentbase/hiring-pipeline/internal"
	"github.com/talentbase/hiring-pipeline/internal/account"
)

// Claims are the signed contents of a session token. Validity is computed
// purely from the signature, the expiry and a directory liveness lookup;
// nothing is stored server-side and tokens cannot be revoked before expiry.
type Claims struct {
	AccountID string `json:"account_id"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// TokenGenerator mints and verifies session tokens.
type TokenGenerator interface {
	Generate(accountID string, role account.Role, ttl time.Duration) (string, error)
	Validate(tokenString string) (*Claims, error)
}

// JWTTokenGenerator signs tokens with HS256 and a single shared secret.
type JWTTokenGenerator struct {
	Secret     []byte
	DefaultTTL time.Duration
}

func NewJWTTokenGenerator(secret string, defaultTTL time.Duration) *JWTTokenGenerator {
	if defaultTTL <= 0 {
		defaultTTL = 30 * time.Minute
	}
	return &JWTTokenGenerator{
		Secret:     []byte(secret),
		DefaultTTL: defaultTTL,
	}
}

// Generate mints a signed token for the account. A non-positive ttl falls
// back to the configured default.
func (j *JWTTokenGenerator) Generate(accountID string, role account.Role, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = j.DefaultTTL
	}
	now := time.Now()

	claims := &Claims{
		AccountID: accountID,
		Role:      string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

// Validate parses and verifies a token. Expiry is compared strictly against
// the current time, with no leeway for clock skew.
func (j *JWTTokenGenerator) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Secret, nil
	}, jwt.WithExpirationRequired())

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal.ErrTokenExpired
		}
		return nil, internal.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, internal.ErrInvalidToken
	}
	if claims.AccountID == "" {
		return nil, internal.ErrInvalidToken
	}
	return claims, nil
}
