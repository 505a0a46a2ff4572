package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

var (
	// ErrUnauthorized maps 401 responses.
	ErrUnauthorized = errors.New("api: unauthorized, please check your credentials")
	// ErrServer maps 5xx responses behind a user-safe message.
	ErrServer = errors.New("api: server error, please try again")
	// ErrTimeout maps request deadline expiry.
	ErrTimeout = errors.New("api: request timed out")
)

// StatusError carries a non-2xx response for callers that need the raw code.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: status %d", e.Status)
}

// mapStatus translates a backend failure into the editor's error taxonomy.
// 401 asks for credentials, 400 surfaces the response body, everything at
// 500 and above collapses into a generic server message.
func mapStatus(status int, body []byte) error {
	base := &StatusError{Status: status, Message: strings.TrimSpace(string(body))}
	switch {
	case status == http.StatusUnauthorized:
		return goerrors.Wrap(ErrUnauthorized, goerrors.CategoryCommand, "request rejected").
			WithTextCode("UNAUTHORIZED")
	case status == http.StatusBadRequest:
		message := base.Message
		if message == "" {
			message = "invalid request"
		}
		return goerrors.Wrap(base, goerrors.CategoryValidation, message).
			WithTextCode("BAD_REQUEST")
	case status >= http.StatusInternalServerError:
		return goerrors.Wrap(ErrServer, goerrors.CategoryCommand, "backend unavailable").
			WithTextCode("SERVER_ERROR")
	default:
		return goerrors.Wrap(base, goerrors.CategoryCommand, "unexpected response").
			WithTextCode("UNEXPECTED_STATUS")
	}
}

// UserMessage extracts the text shown in the save modal's error state.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, ErrUnauthorized):
		return "Please check your credentials."
	case errors.Is(err, ErrServer):
		return "The server could not complete the save. Please try again."
	case errors.Is(err, ErrTimeout):
		return "The save timed out. Your changes are kept and will retry."
	}
	var status *StatusError
	if errors.As(err, &status) && status.Message != "" {
		return status.Message
	}
	return err.Error()
}
