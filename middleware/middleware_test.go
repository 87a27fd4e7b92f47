package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ManjeetSingh-02/project-management-tool/models"
	"github.com/ManjeetSingh-02/project-management-tool/services"
	"github.com/ManjeetSingh-02/project-management-tool/utils"
)

type stubResolver struct {
	user models.User
	err  error
}

func (s stubResolver) GetUserByID(ctx context.Context, id string) (models.User, error) {
	if s.err != nil {
		return models.User{}, s.err
	}
	return s.user, nil
}

func newAuthedRequest(t *testing.T, jwtService *services.JWTService, userID primitive.ObjectID, email string) *http.Request {
	t.Helper()
	token, err := jwtService.GenerateAccessToken(userID.Hex(), email)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/profile", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: token})
	return req
}

func TestAuthMissingCookie(t *testing.T) {
	jwtService := services.NewJWTService("access", "refresh", time.Minute, time.Hour)
	handler := Auth(jwtService, stubResolver{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a cookie")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/users/profile", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthInvalidToken(t *testing.T) {
	jwtService := services.NewJWTService("access", "refresh", time.Minute, time.Hour)
	handler := Auth(jwtService, stubResolver{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with a garbage token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/profile", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: "not-a-jwt"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthExpiredToken(t *testing.T) {
	expired := services.NewJWTService("access", "refresh", -time.Minute, time.Hour)
	jwtService := services.NewJWTService("access", "refresh", time.Minute, time.Hour)
	handler := Auth(jwtService, stubResolver{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with an expired token")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, newAuthedRequest(t, expired, primitive.NewObjectID(), "user@example.com"))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthUnresolvableUser(t *testing.T) {
	jwtService := services.NewJWTService("access", "refresh", time.Minute, time.Hour)
	resolver := stubResolver{err: utils.NewAuthenticationError("Invalid access token")}
	handler := Auth(jwtService, resolver)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run when the user cannot be resolved")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, newAuthedRequest(t, jwtService, primitive.NewObjectID(), "user@example.com"))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthAttachesIdentity(t *testing.T) {
	jwtService := services.NewJWTService("access", "refresh", time.Minute, time.Hour)
	userID := primitive.NewObjectID()
	resolver := stubResolver{user: models.User{ID: userID, Email: "user@example.com"}}

	var got AuthUser
	var found bool
	handler := Auth(jwtService, resolver)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, found = GetAuthUser(r)
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, newAuthedRequest(t, jwtService, userID, "user@example.com"))

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, found)
	assert.Equal(t, userID, got.ID)
	assert.Equal(t, "user@example.com", got.Email)
}

func TestGetAuthUserWithoutGate(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/healthcheck", nil)
	_, found := GetAuthUser(req)
	assert.False(t, found)
}

func TestCORSPreflight(t *testing.T) {
	handler := CORS("http://localhost:3000")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preflight must short-circuit")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/projects", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}
