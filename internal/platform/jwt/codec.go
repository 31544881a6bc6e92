package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var method = jwt.SigningMethodHS256

// Encode signs a credential for subject that is valid from now until now+ttl.
//
// Timestamps are truncated to whole seconds, so the same inputs always
// produce the same credential.
func Encode(subject string, secret []byte, ttl time.Duration, now time.Time) (string, error) {
	if subject == "" {
		return "", errors.New("encode: empty subject")
	}
	if len(secret) == 0 {
		return "", errors.New("encode: empty secret")
	}
	if ttl <= 0 {
		return "", fmt.Errorf("encode: non-positive ttl %s", ttl)
	}

	issuedAt := now.Truncate(time.Second)
	claims := &jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
	}

	signed, err := jwt.NewWithClaims(method, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies tokenString against secret at the instant now.
//
// The returned error wraps exactly one of ErrMalformed, ErrBadSignature or
// ErrExpired. Expiry takes precedence over the signature check: a credential
// whose claims decode and are past expiry is reported as expired, whatever
// secret signed it and even if its signature segment is unreadable.
func Decode(tokenString string, secret []byte, now time.Time) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{method.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	var registered jwt.RegisteredClaims
	_, err := parser.ParseWithClaims(tokenString, &registered, func(_ *jwt.Token) (any, error) {
		return secret, nil
	})
	// A bad signature segment still leaves the claims decoded, so expiry
	// can be judged before the token is called malformed.
	if err != nil && errors.Is(err, jwt.ErrTokenMalformed) {
		if registered.ExpiresAt == nil || !now.After(registered.ExpiresAt.Time) {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	}

	if registered.Subject == "" || registered.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: missing sub or exp claim", ErrMalformed)
	}

	expiresAt := registered.ExpiresAt.Time
	if now.After(expiresAt) {
		return nil, fmt.Errorf("%w: at %s", ErrExpired, expiresAt.UTC().Format(time.RFC3339))
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSignature, err)
	}

	claims := &Claims{
		Subject:   registered.Subject,
		ExpiresAt: expiresAt,
	}
	if registered.IssuedAt != nil {
		claims.IssuedAt = registered.IssuedAt.Time
	}
	return claims, nil
}
