package ports

import "time"

// TokenIssuer produces signed, time-bounded access tokens. A ttl <= 0 selects
// the issuer's configured default.
type TokenIssuer interface {
	Issue(subject string, ttl time.Duration) (string, error)
}

// TokenVerifier validates a token's signature and expiry and extracts the
// subject. Failures are domain.ErrTokenMalformed, domain.ErrTokenInvalid, or
// domain.ErrTokenExpired.
type TokenVerifier interface {
	Verify(token string) (subject string, err error)
}
