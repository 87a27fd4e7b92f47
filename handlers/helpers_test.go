package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDecodeAndValidate(t *testing.T) {
	type body struct {
		Name string `json:"name" validate:"required,min=3,max=13"`
	}

	t.Run("valid body passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"alpha"}`))
		rec := httptest.NewRecorder()

		var dst body
		assert.True(t, decodeAndValidate(rec, req, &dst))
		assert.Equal(t, "alpha", dst.Name)
	})

	t.Run("malformed JSON writes 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
		rec := httptest.NewRecorder()

		var dst body
		assert.False(t, decodeAndValidate(rec, req, &dst))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("failed validate tags write 422 field errors", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"ab"}`))
		rec := httptest.NewRecorder()

		var dst body
		assert.False(t, decodeAndValidate(rec, req, &dst))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, false, resp["success"])
		fieldErrors, ok := resp["error"].([]any)
		require.True(t, ok)
		assert.Len(t, fieldErrors, 1)
	})
}

func TestPathObjectID(t *testing.T) {
	id := primitive.NewObjectID()

	got, err := pathObjectID(map[string]string{"projectId": id.Hex()}, "projectId")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = pathObjectID(map[string]string{"projectId": "not-an-id"}, "projectId")
	assert.Error(t, err)

	_, err = pathObjectID(map[string]string{}, "projectId")
	assert.Error(t, err)
}

func TestHealthCheck(t *testing.T) {
	rec := httptest.NewRecorder()
	HealthCheck(rec, httptest.NewRequest(http.MethodGet, "/api/v1/healthcheck", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "Server is up and running", resp["message"])
}
