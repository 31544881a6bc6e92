package jwt

import (
	"errors"
	"time"

	"github.com/ferdiebergado/devconnector/internal/pkg/clock"
)

// GolangJWTSigner implements the Signer interface using the golang-jwt library
// and a process-wide HMAC key.
type GolangJWTSigner struct {
	key   []byte
	clock clock.Clock
}

var _ Signer = (*GolangJWTSigner)(nil)

// NewGolangJWTSigner creates a signer keyed with key. A nil clock means the system clock.
func NewGolangJWTSigner(key string, clk clock.Clock) (*GolangJWTSigner, error) {
	if key == "" {
		return nil, errors.New("jwt signing key should not be empty")
	}

	if clk == nil {
		clk = clock.Real{}
	}

	return &GolangJWTSigner{
		key:   []byte(key),
		clock: clk,
	}, nil
}

// Sign generates a credential for subject that expires after ttl.
func (s *GolangJWTSigner) Sign(subject string, ttl time.Duration) (string, error) {
	return Encode(subject, s.key, ttl, s.clock.Now())
}

// Verify parses and validates a credential and returns its claims.
func (s *GolangJWTSigner) Verify(tokenString string) (*Claims, error) {
	return Decode(tokenString, s.key, s.clock.Now())
}
