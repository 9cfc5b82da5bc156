package app

import "errors"

var (
	// ErrNotLoggedIn is returned by operations that need a session when
	// there is none.
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrSessionActive is returned by Login while another session exists.
	ErrSessionActive = errors.New("a user is already logged in")
)

// ValidationError reports input rejected before any request was made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}
