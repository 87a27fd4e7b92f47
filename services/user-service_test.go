package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"golang.org/x/crypto/bcrypt"

	"github.com/ManjeetSingh-02/project-management-tool/utils"
)

type recordingMailer struct {
	verificationSent int
	resetSent        int
}

func (m *recordingMailer) SendVerificationEmail(to, username, token string) error {
	m.verificationSent++
	return nil
}

func (m *recordingMailer) SendPasswordResetEmail(to, username, token string) error {
	m.resetSent++
	return nil
}

func TestValidatePassword(t *testing.T) {
	s := &UserService{BlackList: map[string]bool{"Password1!": true}}

	t.Run("accepts a strong password", func(t *testing.T) {
		assert.NoError(t, s.ValidatePassword("S3cure#Pass"))
	})

	t.Run("rejects a weak password", func(t *testing.T) {
		err := s.ValidatePassword("weakpass")
		var apiErr *utils.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, utils.KindValidation, apiErr.Kind)
	})

	t.Run("rejects a blacklisted password", func(t *testing.T) {
		err := s.ValidatePassword("Password1!")
		var apiErr *utils.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, utils.KindValidation, apiErr.Kind)
		assert.Contains(t, apiErr.Message, "too common")
	})
}

func TestRegisterUserDuplicate(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("duplicate email or username becomes conflict", func(mt *mtest.T) {
		mailer := &recordingMailer{}
		s := NewUserService(mt.DB.Collection("users"), nil, mailer, nil, 20*time.Minute)

		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		err := s.RegisterUser(context.Background(), "alice", "alice@example.com", "Alice Example", "S3cure#Pass")

		var apiErr *utils.APIError
		require.ErrorAs(mt, err, &apiErr)
		assert.Equal(mt, utils.KindConflict, apiErr.Kind)
		assert.Zero(mt, mailer.verificationSent, "no mail for a rejected registration")
	})
}

func TestVerifyAccountExpiredToken(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("expired token leaves account unverified", func(mt *mtest.T) {
		s := NewUserService(mt.DB.Collection("users"), nil, &recordingMailer{}, nil, 20*time.Minute)

		userDoc := bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "email", Value: "alice@example.com"},
			{Key: "isEmailVerified", Value: false},
			{Key: "emailVerificationToken", Value: "deadbeef"},
			{Key: "emailVerificationExpiry", Value: primitive.NewDateTimeFromTime(time.Now().Add(-time.Minute))},
		}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch, userDoc))

		err := s.VerifyAccount(context.Background(), "deadbeef")

		var apiErr *utils.APIError
		require.ErrorAs(mt, err, &apiErr)
		assert.Equal(mt, utils.KindExpiredToken, apiErr.Kind)

		for _, evt := range mt.GetAllStartedEvents() {
			assert.NotEqual(mt, "update", evt.CommandName, "expired token must not flip the verified flag")
		}
	})
}

func TestLoginUserUnverified(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("correct credentials, unverified email", func(mt *mtest.T) {
		s := NewUserService(mt.DB.Collection("users"), NewJWTService("access", "refresh", time.Minute, time.Hour), &recordingMailer{}, nil, 20*time.Minute)

		hash, err := bcrypt.GenerateFromPassword([]byte("S3cure#Pass"), bcrypt.MinCost)
		require.NoError(mt, err)

		userDoc := bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "email", Value: "alice@example.com"},
			{Key: "password", Value: string(hash)},
			{Key: "isEmailVerified", Value: false},
		}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch, userDoc))

		_, _, _, err = s.LoginUser(context.Background(), "alice@example.com", "S3cure#Pass")

		var apiErr *utils.APIError
		require.ErrorAs(mt, err, &apiErr)
		assert.Equal(mt, utils.KindAuthentication, apiErr.Kind)
		assert.Equal(mt, "Email not verified", apiErr.Message)
	})
}

func TestVerifyAccountInvalidToken(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("unknown token is not found", func(mt *mtest.T) {
		s := NewUserService(mt.DB.Collection("users"), nil, &recordingMailer{}, nil, 20*time.Minute)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch))

		err := s.VerifyAccount(context.Background(), "deadbeef")

		var apiErr *utils.APIError
		require.ErrorAs(mt, err, &apiErr)
		assert.Equal(mt, utils.KindNotFound, apiErr.Kind)
	})
}

func TestLoadBlackList(t *testing.T) {
	t.Run("missing file yields empty map", func(t *testing.T) {
		blackList, err := LoadBlackList(filepath.Join(t.TempDir(), "absent.txt"))
		require.NoError(t, err)
		assert.Empty(t, blackList)
	})

	t.Run("loads one password per line", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "blacklist.txt")
		require.NoError(t, os.WriteFile(path, []byte("Password1!\nQwerty123$\n"), 0644))

		blackList, err := LoadBlackList(path)
		require.NoError(t, err)
		assert.True(t, blackList["Password1!"])
		assert.True(t, blackList["Qwerty123$"])
		assert.False(t, blackList["S3cure#Pass"])
	})
}
