// Package common defines the sentinel errors shared across service, storage
// and transport layers. Callers match these values with errors.Is; storage
// implementations must fold driver errors into this closed set before
// returning.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// Registration conflicts. Username is checked before email, so when both
	// collide the caller sees ErrorUsernameTaken.
	ErrorUsernameTaken = errors.New("username already exists")
	ErrorEmailTaken    = errors.New("email already exists")

	// Login failure. Unknown username and wrong password both map here so the
	// response does not reveal whether the account exists.
	ErrorInvalidCredentials = errors.New("invalid username or password")

	// Token errors (invalid or malformed vs. past its expiry).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Store errors. Both map to 503 at the HTTP boundary but carry different
	// operator guidance: unavailable is transient (check connectivity),
	// auth-failed means the store rejected our credentials and a retry will
	// not help without reconfiguration.
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrStoreAuthFailed  = errors.New("store authentication failed")
)
