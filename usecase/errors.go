package usecase

import (
	"errors"
	"strings"
)

// The error kinds every operation reports through. Handlers map them to
// transport codes; nothing below this layer leaks storage internals.
var (
	// ErrAccessDenied covers both "not the owner" and "no such project" on
	// mutation paths, so existence is never leaked through them.
	ErrAccessDenied = errors.New("you do not have permission to perform that action")

	// ErrNotFound covers malformed and unresolvable identifiers on read paths.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput rejects non-string or empty search terms.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStorage is the generic recoverable failure of the underlying store.
	ErrStorage = errors.New("please try again later")

	// ErrBadCredentials rejects a login without saying which part was wrong.
	ErrBadCredentials = errors.New("invalid username or password")

	// ErrTaken reports a username or email collision on registration.
	ErrTaken = errors.New("that username or email is already taken")
)

// ValidationError carries every message collected for a bad submission so
// the caller can show all problems at once, not just the first.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// AsValidation unwraps err into a ValidationError if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// UpdateStatus is the two-tier outcome of a project update: a soft
// validation failure the caller can re-prompt on, versus the hard errors
// returned alongside it.
type UpdateStatus string

const (
	UpdateSuccess UpdateStatus = "success"
	UpdateFailure UpdateStatus = "failure"
)
