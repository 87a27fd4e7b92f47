package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Attachment struct {
	URL      string `bson:"url" json:"url"`
	MimeType string `bson:"mimeType" json:"mimeType"`
	Size     int64  `bson:"size" json:"size"`
}

type Task struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Project     primitive.ObjectID `bson:"project" json:"project"`
	AssignedTo  primitive.ObjectID `bson:"assignedTo" json:"assignedTo"`
	AssignedBy  primitive.ObjectID `bson:"assignedBy" json:"assignedBy"`
	Status      TaskStatus         `bson:"status" json:"status"`
	Attachments []Attachment       `bson:"attachments" json:"attachments"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
