package jwt

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalid is wrapped by every decode failure.
	ErrInvalid = errors.New("invalid token")

	ErrMalformed    = fmt.Errorf("%w: malformed", ErrInvalid)
	ErrBadSignature = fmt.Errorf("%w: bad signature", ErrInvalid)
	ErrExpired      = fmt.Errorf("%w: expired", ErrInvalid)
)

// Claims represents the identity carried by a credential.
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Signer defines methods for issuing and verifying credentials.
type Signer interface {
	Sign(subject string, ttl time.Duration) (token string, err error)
	Verify(tokenString string) (*Claims, error)
}

// Kind reports which decode failure err is, for logging.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrExpired):
		return "expired"
	case errors.Is(err, ErrBadSignature):
		return "bad_signature"
	case errors.Is(err, ErrMalformed):
		return "malformed"
	default:
		return "unknown"
	}
}
