package service

import (
	"errors"

	"github.com/prajwalbharadwajbm/referralhub/internal/session"
)

var (
	// ErrUnauthorized means the session is not signed in to the side it is calling
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound means the requested item does not exist or is not offered
	ErrNotFound = errors.New("not found")
)

// ValidationError is input the caller has to fix; nothing was sent to the backend
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(err error) error {
	return &ValidationError{Err: err}
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func requireAdmin(sess *session.Session) error {
	if sess == nil || !sess.IsAdmin() {
		return ErrUnauthorized
	}
	return nil
}

func requireUser(sess *session.Session) error {
	if sess == nil || !sess.IsUser() {
		return ErrUnauthorized
	}
	return nil
}
