package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ManjeetSingh-02/project-management-tool/logging"
)

// Error kinds returned in the "message" field of the error envelope. Clients
// discriminate on these, so they are stable strings.
const (
	KindValidation     = "ValidationError"
	KindAuthentication = "AuthenticationError"
	KindAuthorization  = "AuthorizationError"
	KindNotFound       = "NotFoundError"
	KindConflict       = "ConflictError"
	KindExpiredToken   = "ExpiredTokenError"
	KindNoChange       = "NoChange"
	KindInvalidProject = "InvalidProject"
	KindInternal       = "InternalServerError"
)

// APIError is the single error type crossing the service -> handler
// boundary. StatusCode and Kind drive the HTTP translation.
type APIError struct {
	StatusCode int    `json:"statusCode"`
	Kind       string `json:"message"`
	Message    string `json:"error"`
}

func (e *APIError) Error() string {
	return e.Kind + ": " + e.Message
}

func NewValidationError(message string) *APIError {
	return &APIError{StatusCode: http.StatusUnprocessableEntity, Kind: KindValidation, Message: message}
}

func NewAuthenticationError(message string) *APIError {
	return &APIError{StatusCode: http.StatusUnauthorized, Kind: KindAuthentication, Message: message}
}

func NewAuthorizationError(message string) *APIError {
	return &APIError{StatusCode: http.StatusForbidden, Kind: KindAuthorization, Message: message}
}

func NewNotFoundError(message string) *APIError {
	return &APIError{StatusCode: http.StatusNotFound, Kind: KindNotFound, Message: message}
}

func NewConflictError(message string) *APIError {
	return &APIError{StatusCode: http.StatusBadRequest, Kind: KindConflict, Message: message}
}

func NewExpiredTokenError(message string) *APIError {
	return &APIError{StatusCode: http.StatusBadRequest, Kind: KindExpiredToken, Message: message}
}

func NewNoChangeError(message string) *APIError {
	return &APIError{StatusCode: http.StatusBadRequest, Kind: KindNoChange, Message: message}
}

func NewInvalidProjectError(message string) *APIError {
	return &APIError{StatusCode: http.StatusBadRequest, Kind: KindInvalidProject, Message: message}
}

func NewBadRequestError(kind, message string) *APIError {
	return &APIError{StatusCode: http.StatusBadRequest, Kind: kind, Message: message}
}

// APIResponse is the success envelope.
type APIResponse struct {
	StatusCode int    `json:"statusCode"`
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Data       any    `json:"data,omitempty"`
}

type errorResponse struct {
	StatusCode int    `json:"statusCode"`
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Error      any    `json:"error"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(APIResponse{
		StatusCode: statusCode,
		Success:    true,
		Message:    message,
		Data:       data,
	})
}

// WriteError translates any error into the error envelope. Errors that are
// not APIErrors are programming or infrastructure failures and become a
// generic 500 body, never a raw message.
func WriteError(w http.ResponseWriter, err error) {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		logging.Logger.Errorf("Event ID: UNEXPECTED_ERROR, Description: %v", err)
		apiErr = &APIError{
			StatusCode: http.StatusInternalServerError,
			Kind:       KindInternal,
			Message:    "Something went wrong",
		}
	}
	writeErrorBody(w, apiErr.StatusCode, apiErr.Kind, apiErr.Message)
}

// WriteFieldErrors writes a 422 envelope carrying per-field validation
// failures.
func WriteFieldErrors(w http.ResponseWriter, fieldErrors []map[string]string) {
	writeErrorBody(w, http.StatusUnprocessableEntity, KindValidation, fieldErrors)
}

func writeErrorBody(w http.ResponseWriter, statusCode int, message string, errBody any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(errorResponse{
		StatusCode: statusCode,
		Success:    false,
		Message:    message,
		Error:      errBody,
	})
}
