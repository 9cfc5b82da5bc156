// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, validation, task not found).
	UserError = 1

	// AuthError indicates a session problem: not logged in, already logged
	// in, or a token the server rejected.
	AuthError = 2

	// BackendError indicates a backend/API/network error.
	BackendError = 3
)
