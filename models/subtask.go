package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SubTask struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Task        primitive.ObjectID `bson:"task" json:"task"`
	IsCompleted bool               `bson:"isCompleted" json:"isCompleted"`
	CreatedBy   primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
