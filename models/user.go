package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID                      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username                string             `bson:"username" json:"username"`
	Email                   string             `bson:"email" json:"email"`
	Fullname                string             `bson:"fullname" json:"fullname"`
	Password                string             `bson:"password" json:"-"`
	Avatar                  string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	IsEmailVerified         bool               `bson:"isEmailVerified" json:"isEmailVerified"`
	EmailVerificationToken  string             `bson:"emailVerificationToken,omitempty" json:"-"`
	EmailVerificationExpiry time.Time          `bson:"emailVerificationExpiry,omitempty" json:"-"`
	ForgotPasswordToken     string             `bson:"forgotPasswordToken,omitempty" json:"-"`
	ForgotPasswordExpiry    time.Time          `bson:"forgotPasswordExpiry,omitempty" json:"-"`
	RefreshToken            string             `bson:"refreshToken,omitempty" json:"-"`
	CreatedAt               time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt               time.Time          `bson:"updatedAt" json:"updatedAt"`
}
