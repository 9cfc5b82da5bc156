package commands

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"todo/internal/app"
	"todo/internal/backend/rest"
	"todo/internal/exitcode"
)

// fail prints err the way users see it and returns the matching exit code.
func fail(errOut io.Writer, err error) int {
	var verr *app.ValidationError
	var lerr *errTaskLookup
	switch {
	case errors.As(err, &verr):
		fmt.Fprintf(errOut, "error: %s\n", verr.Message)
		return exitcode.UserError
	case errors.As(err, &lerr):
		fmt.Fprintf(errOut, "error: %s\n", lerr.msg)
		return exitcode.UserError
	case errors.Is(err, app.ErrSessionActive):
		fmt.Fprintln(errOut, "error: kindly logout the current user first")
		return exitcode.AuthError
	case errors.Is(err, app.ErrNotLoggedIn):
		fmt.Fprintln(errOut, "error: not logged in (run: todo login)")
		return exitcode.AuthError
	case rest.IsAuthError(err):
		fmt.Fprintf(errOut, "error: auth error: %s\n", rest.Message(err))
		return exitcode.AuthError
	case rest.StatusCode(err) == http.StatusNotFound, rest.StatusCode(err) == http.StatusBadRequest:
		fmt.Fprintf(errOut, "error: %s\n", rest.Message(err))
		return exitcode.UserError
	}
	fmt.Fprintf(errOut, "error: backend error: %s\n", rest.Message(err))
	return exitcode.BackendError
}

// userError prints a plain usage error.
func userError(errOut io.Writer, format string, args ...any) int {
	fmt.Fprintf(errOut, "error: "+format+"\n", args...)
	return exitcode.UserError
}

// printOK prints the success marker unless quiet.
func printOK(out io.Writer, quiet bool) int {
	if !quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
