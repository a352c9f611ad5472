// Package token implements the time-windowed access codes presented at
// check-in: a per-member dynamic token (short-lived HS256 JWT) and a
// rotating checkpoint code for fixed signage. Both are pure functions of
// their input, the shared secret, and the wall clock; nothing is persisted
// and there is no revocation list.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fitpass/gym-system/internal/core/domain"
)

const defaultTTL = 30 * time.Minute

// Codec issues and validates dynamic member tokens.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Issued is the result of issuing a dynamic token.
type Issued struct {
	Token     string
	ExpiresAt time.Time
}

// NewCodec returns a Codec using the given shared secret and TTL. A
// non-positive TTL falls back to 30 minutes.
func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock overrides the codec's clock. Intended for tests.
func (c *Codec) WithClock(now func() time.Time) *Codec {
	c.now = now
	return c
}

// Issue produces a signed token for the subject. The embedded issue and
// expiry timestamps bound its lifetime; no randomness is needed because the
// timestamps themselves prevent replay beyond the window.
func (c *Codec) Issue(subjectID string) (Issued, error) {
	now := c.now().UTC()
	expires := now.Add(c.ttl)

	claims := jwt.MapClaims{
		"sub": subjectID,
		"iat": now.Unix(),
		"exp": expires.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return Issued{}, err
	}
	return Issued{Token: signed, ExpiresAt: expires}, nil
}

// Validate checks a presented token and returns its subject.
//
// Failure modes are distinguishable: ErrTokenExpired when the window has
// passed, ErrTokenTampered when the signature does not match the claimed
// fields, ErrTokenMalformed when the string is not a token at all. An
// expired token still returns the claimed subject so denied attempts by
// real members can be audited.
func (c *Codec) Validate(tokenString string) (subjectID string, err error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now))

	sub, _ := claims["sub"].(string)

	switch {
	case err == nil && parsed.Valid:
		if sub == "" {
			return "", domain.ErrTokenMalformed
		}
		return sub, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return sub, domain.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "", domain.ErrTokenTampered
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "", domain.ErrTokenMalformed
	default:
		return "", domain.ErrTokenMalformed
	}
}
