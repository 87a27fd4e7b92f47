package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestWriteJSONEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, "Project created successfully", map[string]any{"name": "alpha"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decodeBody(t, rec)
	assert.Equal(t, float64(http.StatusCreated), body["statusCode"])
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Project created successfully", body["message"])
	assert.Equal(t, map[string]any{"name": "alpha"}, body["data"])
}

func TestWriteErrorStatusCodes(t *testing.T) {
	tests := []struct {
		err        *APIError
		wantStatus int
		wantKind   string
	}{
		{NewValidationError("name too short"), http.StatusUnprocessableEntity, KindValidation},
		{NewAuthenticationError("Invalid credentials"), http.StatusUnauthorized, KindAuthentication},
		{NewAuthorizationError("You are not allowed"), http.StatusForbidden, KindAuthorization},
		{NewNotFoundError("Project not found"), http.StatusNotFound, KindNotFound},
		{NewConflictError("User already exists"), http.StatusBadRequest, KindConflict},
		{NewExpiredTokenError("Token expired"), http.StatusBadRequest, KindExpiredToken},
		{NewNoChangeError("Role is unchanged"), http.StatusBadRequest, KindNoChange},
		{NewInvalidProjectError("You are not a member of this project"), http.StatusBadRequest, KindInvalidProject},
	}

	for _, tt := range tests {
		t.Run(tt.wantKind, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.wantKind, body["message"])
			assert.Equal(t, tt.err.Message, body["error"])
		})
	}
}

func TestWriteErrorWrappedAPIError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, fmt.Errorf("fetching project: %w", NewNotFoundError("Project not found")))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, KindNotFound, body["message"])
}

func TestWriteErrorUnexpected(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, errors.New("connection reset by peer"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, KindInternal, body["message"])
	assert.Equal(t, "Something went wrong", body["error"], "raw error details must not leak to clients")
}

func TestWriteFieldErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteFieldErrors(rec, []map[string]string{
		{"username": "username should be atleast 3 chars"},
		{"email": "invalid email"},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, KindValidation, body["message"])

	fieldErrors, ok := body["error"].([]any)
	require.True(t, ok)
	assert.Len(t, fieldErrors, 2)
}
