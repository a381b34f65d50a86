package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kko-site/backoffice/internal/core/domain"
	"github.com/kko-site/backoffice/internal/core/ports"
)

const defaultTokenTTL = 30 * time.Minute

// TokenService issues and verifies HS256-signed access tokens. Tokens carry
// only the subject and the issue/expiry timestamps; they are not persisted,
// so validity is entirely self-contained. Both directions are pure functions
// of (input, clock, secret).
type TokenService struct {
	secret     []byte
	defaultTTL time.Duration
	clock      ports.Clock
}

// NewTokenService builds a TokenService. The secret comes from configuration
// and must never be a compiled-in literal. A defaultTTL <= 0 falls back to 30
// minutes; a nil clock falls back to the system clock.
func NewTokenService(secret string, defaultTTL time.Duration, clock ports.Clock) *TokenService {
	if defaultTTL <= 0 {
		defaultTTL = defaultTokenTTL
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &TokenService{secret: []byte(secret), defaultTTL: defaultTTL, clock: clock}
}

// Issue creates a signed token for subject, expiring after ttl (or the
// default TTL when ttl <= 0).
func (s *TokenService) Issue(subject string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	now := s.clock.Now()
	claims := jwt.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify checks signature and expiry and returns the subject. The signature
// is validated before any claim is trusted; a tampered token never reaches
// claim extraction.
func (s *TokenService) Verify(token string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.clock.Now), jwt.WithExpirationRequired())
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed), errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
			return "", domain.ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", domain.ErrTokenExpired
		default:
			return "", domain.ErrTokenInvalid
		}
	}
	if !tkn.Valid {
		return "", domain.ErrTokenInvalid
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", domain.ErrTokenMalformed
	}
	return sub, nil
}
