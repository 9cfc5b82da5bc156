package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"google.golang.org/api/googleapi"
)

// ErrTimeout is returned when a call exceeds the configured timeout.
var ErrTimeout = errors.New("request timed out")

// checkResponse turns any status other than want into a *googleapi.Error.
// The server reports failures as {"message": "..."}; that text becomes
// Error.Message.
func checkResponse(res *http.Response, want int) error {
	if res.StatusCode == want {
		return nil
	}
	slurp, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
	gerr := &googleapi.Error{
		Code:   res.StatusCode,
		Body:   string(slurp),
		Header: res.Header,
	}

	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(slurp, &body) == nil {
		gerr.Message = body.Message
		if gerr.Message == "" {
			gerr.Message = body.Error
		}
	}
	if gerr.Message == "" && res.StatusCode >= 200 && res.StatusCode < 300 {
		gerr.Message = fmt.Sprintf("unexpected response status %d", res.StatusCode)
	}
	return gerr
}

// wrapError maps transport failures to friendlier errors.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return err
}

// Message extracts the text to show a user: the server-provided message
// when there is one, otherwise the error's own text.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		if gerr.Message != "" {
			return gerr.Message
		}
		return fmt.Sprintf("request failed with status code %d", gerr.Code)
	}
	if errors.Is(err, ErrTimeout) {
		return ErrTimeout.Error()
	}
	return err.Error()
}

// StatusCode returns the HTTP status carried by err, or 0 for transport
// errors and non-API errors.
func StatusCode(err error) int {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code
	}
	return 0
}

// IsAuthError reports whether the server rejected the credentials or token.
func IsAuthError(err error) bool {
	code := StatusCode(err)
	return code == http.StatusUnauthorized || code == http.StatusForbidden
}
