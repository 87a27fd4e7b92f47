package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProjectMember binds a user to a project with a role. The (user, project)
// pair is unique.
type ProjectMember struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	Project   primitive.ObjectID `bson:"project" json:"project"`
	Role      Role               `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// MemberInfo is the member representation returned by the API, with the
// user reference expanded to its public fields.
type MemberInfo struct {
	ID   primitive.ObjectID `bson:"_id" json:"id"`
	User struct {
		ID       primitive.ObjectID `bson:"_id" json:"id"`
		Username string             `bson:"username" json:"username"`
		Email    string             `bson:"email" json:"email"`
	} `bson:"user" json:"user"`
	Role      Role      `bson:"role" json:"role"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
