package services

import (
	"errors"
	"fmt"

	"eats/internal/repositories"
)

// Error kinds. Every domain failure returned by a service unwraps to one of these.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrInvalidOption      = errors.New("invalid dish option")
	ErrValidation         = errors.New("validation failed")
	ErrAlreadyExists      = errors.New("already exists")
	ErrAlreadyTaken       = errors.New("order already taken")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Error is a domain failure whose message is safe to show to the caller.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, format string, args ...interface{}) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// lookup converts a repository miss into ErrNotFound and passes other errors through.
func lookup(err error, format string, args ...interface{}) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return newError(ErrNotFound, format, args...)
	}
	return err
}
