package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/ferdiebergado/devconnector/internal/platform/jwt"
)

// DefaultTTL is used when no positive TTL is configured.
const DefaultTTL = 5 * 24 * time.Hour

// Issuer binds credentials to user IDs with a fixed lifetime.
type Issuer struct {
	signer jwt.Signer
	ttl    time.Duration
}

func NewIssuer(signer jwt.Signer, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{signer: signer, ttl: ttl}
}

// Issue returns a credential for userID. Persisting it is up to the caller.
func (i *Issuer) Issue(userID string) (string, error) {
	if userID == "" {
		return "", errors.New("issue credential: empty user id")
	}

	token, err := i.signer.Sign(userID, i.ttl)
	if err != nil {
		return "", fmt.Errorf("issue credential for user %s: %w", userID, err)
	}
	return token, nil
}

func (i *Issuer) TTL() time.Duration {
	return i.ttl
}
