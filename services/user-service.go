package services

import (
	"context"
	"fmt"
	"html"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/ManjeetSingh-02/project-management-tool/logging"
	"github.com/ManjeetSingh-02/project-management-tool/models"
	"github.com/ManjeetSingh-02/project-management-tool/utils"
)

// EmailSender is the outbound mail surface the user service needs. Satisfied
// by utils.Mailer; tests substitute a stub.
type EmailSender interface {
	SendVerificationEmail(to, username, token string) error
	SendPasswordResetEmail(to, username, token string) error
}

type UserService struct {
	UserCollection  *mongo.Collection
	JWTService      *JWTService
	Mailer          EmailSender
	BlackList       map[string]bool
	TempTokenExpiry time.Duration
}

func NewUserService(
	userCollection *mongo.Collection,
	jwtService *JWTService,
	mailer EmailSender,
	blackList map[string]bool,
	tempTokenExpiry time.Duration,
) *UserService {
	return &UserService{
		UserCollection:  userCollection,
		JWTService:      jwtService,
		Mailer:          mailer,
		BlackList:       blackList,
		TempTokenExpiry: tempTokenExpiry,
	}
}

// ValidatePassword enforces password strength and the common-password
// blacklist.
func (s *UserService) ValidatePassword(password string) error {
	if !utils.IsStrongPassword(password) {
		return utils.NewValidationError("password should contain one uppercase, one lowercase, one number and one special character and min length must be 8")
	}
	if s.BlackList[password] {
		return utils.NewValidationError("password is too common, please choose a stronger one")
	}
	return nil
}

// RegisterUser creates an unverified account and mails the verification
// link. Uniqueness of email and username is enforced by the database
// indexes, not a prior read.
func (s *UserService) RegisterUser(ctx context.Context, username, email, fullname, password string) error {
	if err := s.ValidatePassword(password); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %v", err)
	}

	token, tokenExpiry, err := utils.GenerateTemporaryToken(s.TempTokenExpiry)
	if err != nil {
		return err
	}

	now := time.Now()
	user := models.User{
		Username:                html.EscapeString(username),
		Email:                   html.EscapeString(email),
		Fullname:                html.EscapeString(fullname),
		Password:                string(hashedPassword),
		IsEmailVerified:         false,
		EmailVerificationToken:  token,
		EmailVerificationExpiry: tokenExpiry,
		CreatedAt:               now,
		UpdatedAt:               now,
	}

	if _, err := s.UserCollection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return utils.NewConflictError("User already exists")
		}
		return fmt.Errorf("failed to save user: %v", err)
	}

	if err := s.Mailer.SendVerificationEmail(user.Email, user.Username, token); err != nil {
		return err
	}

	logging.Logger.Infof("Event ID: USER_REGISTERED, Description: Verification email sent to %s", user.Email)
	return nil
}

// VerifyAccount marks the account verified if the token matches and has not
// expired. An expired token leaves the account unverified.
func (s *UserService) VerifyAccount(ctx context.Context, token string) error {
	var user models.User
	err := s.UserCollection.FindOne(ctx, bson.M{"emailVerificationToken": token}).Decode(&user)
	if err != nil {
		return utils.NewNotFoundError("Invalid verification token")
	}

	if user.EmailVerificationExpiry.Before(time.Now()) {
		return utils.NewExpiredTokenError("Token expired, please resend the verification email")
	}

	update := bson.M{
		"$set":   bson.M{"isEmailVerified": true, "updatedAt": time.Now()},
		"$unset": bson.M{"emailVerificationToken": "", "emailVerificationExpiry": ""},
	}
	if _, err := s.UserCollection.UpdateOne(ctx, bson.M{"_id": user.ID}, update); err != nil {
		return fmt.Errorf("failed to verify user: %v", err)
	}

	return nil
}

// ResendVerificationEmail rotates the verification token for an unverified
// account, so at most one token is outstanding.
func (s *UserService) ResendVerificationEmail(ctx context.Context, email string) error {
	var user models.User
	err := s.UserCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return utils.NewNotFoundError("User doesn't exist")
	}

	if user.IsEmailVerified {
		return utils.NewConflictError("User already verified")
	}

	token, tokenExpiry, err := utils.GenerateTemporaryToken(s.TempTokenExpiry)
	if err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{
		"emailVerificationToken":  token,
		"emailVerificationExpiry": tokenExpiry,
		"updatedAt":               time.Now(),
	}}
	if _, err := s.UserCollection.UpdateOne(ctx, bson.M{"_id": user.ID}, update); err != nil {
		return fmt.Errorf("failed to update verification token: %v", err)
	}

	return s.Mailer.SendVerificationEmail(user.Email, user.Username, token)
}

// LoginUser checks credentials and verification state, then issues an
// access token and a fresh refresh token. The refresh token is persisted so
// only one session stays valid.
func (s *UserService) LoginUser(ctx context.Context, email, password string) (models.User, string, string, error) {
	var user models.User
	err := s.UserCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return models.User{}, "", "", utils.NewAuthenticationError("Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return models.User{}, "", "", utils.NewAuthenticationError("Invalid credentials")
	}

	if !user.IsEmailVerified {
		return models.User{}, "", "", utils.NewAuthenticationError("Email not verified")
	}

	accessToken, err := s.JWTService.GenerateAccessToken(user.ID.Hex(), user.Email)
	if err != nil {
		return models.User{}, "", "", fmt.Errorf("failed to generate access token: %v", err)
	}

	refreshToken, err := s.JWTService.GenerateRefreshToken(user.ID.Hex())
	if err != nil {
		return models.User{}, "", "", fmt.Errorf("failed to generate refresh token: %v", err)
	}

	update := bson.M{"$set": bson.M{"refreshToken": refreshToken, "updatedAt": time.Now()}}
	if _, err := s.UserCollection.UpdateOne(ctx, bson.M{"_id": user.ID}, update); err != nil {
		return models.User{}, "", "", fmt.Errorf("failed to store refresh token: %v", err)
	}

	return user, accessToken, refreshToken, nil
}

// LogoutUser drops the persisted refresh token, invalidating the session.
func (s *UserService) LogoutUser(ctx context.Context, userID primitive.ObjectID) error {
	update := bson.M{
		"$unset": bson.M{"refreshToken": ""},
		"$set":   bson.M{"updatedAt": time.Now()},
	}
	result, err := s.UserCollection.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return fmt.Errorf("failed to logout user: %v", err)
	}
	if result.MatchedCount == 0 {
		return utils.NewNotFoundError("User doesn't exist")
	}
	return nil
}

// RefreshSession rotates the refresh token. The presented token must equal
// the persisted one, so a rotated-out token can never be replayed.
func (s *UserService) RefreshSession(ctx context.Context, refreshToken string) (models.User, string, string, error) {
	userID, err := s.JWTService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return models.User{}, "", "", utils.NewAuthenticationError("Invalid refresh token")
	}

	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return models.User{}, "", "", utils.NewAuthenticationError("Invalid refresh token")
	}

	if user.RefreshToken != refreshToken {
		return models.User{}, "", "", utils.NewAuthenticationError("Invalid refresh token")
	}

	accessToken, err := s.JWTService.GenerateAccessToken(user.ID.Hex(), user.Email)
	if err != nil {
		return models.User{}, "", "", fmt.Errorf("failed to generate access token: %v", err)
	}

	newRefreshToken, err := s.JWTService.GenerateRefreshToken(user.ID.Hex())
	if err != nil {
		return models.User{}, "", "", fmt.Errorf("failed to generate refresh token: %v", err)
	}

	update := bson.M{"$set": bson.M{"refreshToken": newRefreshToken, "updatedAt": time.Now()}}
	if _, err := s.UserCollection.UpdateOne(ctx, bson.M{"_id": user.ID}, update); err != nil {
		return models.User{}, "", "", fmt.Errorf("failed to rotate refresh token: %v", err)
	}

	return user, accessToken, newRefreshToken, nil
}

// ForgotPassword stores a reset token on the account and mails the link.
func (s *UserService) ForgotPassword(ctx context.Context, email string) error {
	var user models.User
	err := s.UserCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return utils.NewNotFoundError("User doesn't exist")
	}

	token, tokenExpiry, err := utils.GenerateTemporaryToken(s.TempTokenExpiry)
	if err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{
		"forgotPasswordToken":  token,
		"forgotPasswordExpiry": tokenExpiry,
		"updatedAt":            time.Now(),
	}}
	if _, err := s.UserCollection.UpdateOne(ctx, bson.M{"_id": user.ID}, update); err != nil {
		return fmt.Errorf("failed to store reset token: %v", err)
	}

	return s.Mailer.SendPasswordResetEmail(user.Email, user.Username, token)
}

// ResetPassword consumes a reset token and replaces the credential hash.
func (s *UserService) ResetPassword(ctx context.Context, token, newPassword string) error {
	var user models.User
	err := s.UserCollection.FindOne(ctx, bson.M{"forgotPasswordToken": token}).Decode(&user)
	if err != nil {
		return utils.NewNotFoundError("Invalid reset token")
	}

	if user.ForgotPasswordExpiry.Before(time.Now()) {
		return utils.NewExpiredTokenError("Token expired, please request again")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(newPassword)); err == nil {
		return utils.NewBadRequestError(utils.KindValidation, "New password cannot be same as old password")
	}

	if err := s.ValidatePassword(newPassword); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %v", err)
	}

	update := bson.M{
		"$set":   bson.M{"password": string(hashedPassword), "updatedAt": time.Now()},
		"$unset": bson.M{"forgotPasswordToken": "", "forgotPasswordExpiry": ""},
	}
	if _, err := s.UserCollection.UpdateOne(ctx, bson.M{"_id": user.ID}, update); err != nil {
		return fmt.Errorf("failed to reset password: %v", err)
	}

	return nil
}

// ChangePassword replaces the credential hash for a logged-in user.
func (s *UserService) ChangePassword(ctx context.Context, userID primitive.ObjectID, oldPassword, newPassword string) error {
	var user models.User
	err := s.UserCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		return utils.NewNotFoundError("User doesn't exist")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return utils.NewBadRequestError(utils.KindValidation, "Old password is incorrect")
	}

	if oldPassword == newPassword {
		return utils.NewBadRequestError(utils.KindValidation, "New password cannot be same as old password")
	}

	if err := s.ValidatePassword(newPassword); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %v", err)
	}

	update := bson.M{"$set": bson.M{"password": string(hashedPassword), "updatedAt": time.Now()}}
	if _, err := s.UserCollection.UpdateOne(ctx, bson.M{"_id": userID}, update); err != nil {
		return fmt.Errorf("failed to change password: %v", err)
	}

	return nil
}

// GetUserByID loads a user by hex id. Used by the authentication gate and
// the profile endpoint.
func (s *UserService) GetUserByID(ctx context.Context, id string) (models.User, error) {
	userID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.User{}, utils.NewNotFoundError("Invalid user ID format")
	}

	var user models.User
	err = s.UserCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		return models.User{}, utils.NewNotFoundError("User doesn't exist")
	}

	user.Password = ""
	return user, nil
}
