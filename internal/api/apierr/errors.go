package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/burrowlabs/bunnyhit-go/internal/model"
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
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeEntryNotFound    = "ENTRY_NOT_FOUND"
	CodeRewardsNotFound  = "REWARDS_NOT_FOUND"
	CodeRewardsDisabled  = "REWARDS_DISABLED"
	CodeInvalidPayload   = "INVALID_PAYLOAD"
	CodeInvalidSignature = "INVALID_SIGNATURE"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeInternalError    = "INTERNAL_ERROR"
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
	case errors.Is(err, model.ErrEntryNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeEntryNotFound, "No leaderboard entry for this player"}}
	case errors.Is(err, model.ErrRewardsNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRewardsNotFound, "No reward balance for this player"}}
	case errors.Is(err, model.ErrRewardsDisabled):
		return &httpError{http.StatusNotFound, APIError{CodeRewardsDisabled, "Rewards are not enabled"}}
	case errors.Is(err, model.ErrInvalidPayload):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPayload, "Webhook payload is not valid JSON"}}
	case errors.Is(err, model.ErrInvalidSignature):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidSignature, "Webhook signature verification failed"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewMethodNotAllowedError creates a method not allowed error
func NewMethodNotAllowedError() error {
	return &httpError{http.StatusMethodNotAllowed, APIError{CodeMethodNotAllowed, "Method not allowed"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
