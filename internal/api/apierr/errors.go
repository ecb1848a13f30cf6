package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/partygames/clockin/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInvalidPayload     = "INVALID_PAYLOAD"
	CodeAlreadyCheckedIn   = "ALREADY_CHECKED_IN"
	CodeMemberNotFound     = "MEMBER_NOT_FOUND"
	CodeGameNotFound       = "GAME_NOT_FOUND"
	CodeAssignmentNotFound = "ASSIGNMENT_NOT_FOUND"
	CodeStorageError       = "STORAGE_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrInvalidPayload):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPayload, "Scanned code does not contain a member name"}}
	case errors.Is(err, model.ErrAlreadyCheckedIn):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyCheckedIn, "Member is already checked in for this game"}}
	case errors.Is(err, model.ErrMemberNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeMemberNotFound, "Member not found"}}
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrAssignmentNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeAssignmentNotFound, "Assignment not found"}}

	default:
		// Anything else is an underlying storage failure; surfaced, never retried
		return &httpError{http.StatusInternalServerError, APIError{CodeStorageError, "Storage operation failed"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}
