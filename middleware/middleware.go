package middleware

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ManjeetSingh-02/project-management-tool/logging"
	"github.com/ManjeetSingh-02/project-management-tool/models"
	"github.com/ManjeetSingh-02/project-management-tool/services"
	"github.com/ManjeetSingh-02/project-management-tool/utils"
)

// AuthUser is the immutable identity value the authentication gate attaches
// to the request context. Downstream code receives it by parameter, never
// by mutating the request.
type AuthUser struct {
	ID    primitive.ObjectID
	Email string
}

type contextKey string

const authUserKey contextKey = "authUser"

// UserResolver loads the user a validated token points at. Satisfied by
// services.UserService; tests substitute a stub.
type UserResolver interface {
	GetUserByID(ctx context.Context, id string) (models.User, error)
}

// GetAuthUser returns the identity attached by Auth. The boolean is false
// on routes that skipped the gate.
func GetAuthUser(r *http.Request) (AuthUser, bool) {
	user, ok := r.Context().Value(authUserKey).(AuthUser)
	return user, ok
}

// Auth verifies the accessToken cookie, resolves it to a user and attaches
// the identity to the request context.
func Auth(jwtService *services.JWTService, users UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie("accessToken")
			if err != nil || cookie.Value == "" {
				utils.WriteError(w, utils.NewAuthenticationError("Unauthorized"))
				return
			}

			claims, err := jwtService.ValidateAccessToken(cookie.Value)
			if err != nil {
				logging.Logger.Warnf("Event ID: AUTH_INVALID_TOKEN, Description: Invalid access token for %s %s: %v", r.Method, r.URL.Path, err)
				utils.WriteError(w, utils.NewAuthenticationError("Unauthorized"))
				return
			}

			user, err := users.GetUserByID(r.Context(), claims.Subject)
			if err != nil {
				utils.WriteError(w, utils.NewAuthenticationError("Invalid access token"))
				return
			}

			authUser := AuthUser{ID: user.ID, Email: user.Email}
			ctx := context.WithValue(r.Context(), authUserKey, authUser)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CORS allows the configured origin and the methods of the API surface.
func CORS(originURL string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", originURL)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Max-Age", "86400")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
