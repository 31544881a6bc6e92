// Package auth issues credentials on register and login, and guards
// protected routes by verifying the credential header.
package auth

import "errors"

var (
	ErrNoToken            = errors.New("auth: no token")
	ErrInvalidToken       = errors.New("auth: invalid token")
	ErrUserExists         = errors.New("auth: user already exists")
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
)

const maskChar = "*"
