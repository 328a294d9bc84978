package service

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by a service matches exactly one of them
// with errors.Is; transports map kinds onto their own status codes.
var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrServiceUnavailable = errors.New("service unavailable")
)

var (
	ErrInvalidToken           = fmt.Errorf("%w: could not validate credentials", ErrUnauthorized)
	ErrInvalidCredentials     = fmt.Errorf("%w: incorrect email or password", ErrUnauthorized)
	ErrEmailAlreadyRegistered = fmt.Errorf("%w: email already registered", ErrConflict)
	ErrUserNotFound           = fmt.Errorf("%w: user not found", ErrNotFound)
	ErrTransactionNotFound    = fmt.Errorf("%w: transaction not found", ErrNotFound)
	ErrPasswordTooLong        = fmt.Errorf("%w: password is too long", ErrInvalidArgument)
)

// unavailable wraps an unexpected lower-layer failure. The cause is kept for
// logging but is never shown to callers.
func unavailable(err error) error {
	return fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
}

// invalid wraps a validation failure so that its message reaches the caller.
func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
}
