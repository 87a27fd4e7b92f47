package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	s := NewJWTService("access-secret", "refresh-secret", time.Minute, time.Hour)
	userID := primitive.NewObjectID().Hex()

	token, err := s.GenerateAccessToken(userID, "user@example.com")
	require.NoError(t, err)

	claims, err := s.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.Subject)
	assert.Equal(t, "user@example.com", claims.Email)
}

func TestAccessTokenWrongSecret(t *testing.T) {
	s := NewJWTService("access-secret", "refresh-secret", time.Minute, time.Hour)
	other := NewJWTService("different-secret", "refresh-secret", time.Minute, time.Hour)

	token, err := s.GenerateAccessToken(primitive.NewObjectID().Hex(), "user@example.com")
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestAccessTokenExpired(t *testing.T) {
	s := NewJWTService("access-secret", "refresh-secret", -time.Minute, time.Hour)

	token, err := s.GenerateAccessToken(primitive.NewObjectID().Hex(), "user@example.com")
	require.NoError(t, err)

	valid := NewJWTService("access-secret", "refresh-secret", time.Minute, time.Hour)
	_, err = valid.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	s := NewJWTService("access-secret", "refresh-secret", time.Minute, time.Hour)
	userID := primitive.NewObjectID().Hex()

	token, err := s.GenerateRefreshToken(userID)
	require.NoError(t, err)

	subject, err := s.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, subject)
}

func TestTokenClassesAreNotInterchangeable(t *testing.T) {
	s := NewJWTService("access-secret", "refresh-secret", time.Minute, time.Hour)
	userID := primitive.NewObjectID().Hex()

	accessToken, err := s.GenerateAccessToken(userID, "user@example.com")
	require.NoError(t, err)
	refreshToken, err := s.GenerateRefreshToken(userID)
	require.NoError(t, err)

	_, err = s.ValidateRefreshToken(accessToken)
	assert.Error(t, err, "access token must not verify as refresh token")

	_, err = s.ValidateAccessToken(refreshToken)
	assert.Error(t, err, "refresh token must not verify as access token")
}
