package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect opens and pings the MongoDB client.
func Connect(ctx context.Context, mongoURI string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %v", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %v", err)
	}

	return client, nil
}

// EnsureIndexes creates the unique indexes backing every natural-key
// invariant, so uniqueness is enforced by a single atomic write instead of
// a read followed by an insert.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	indexes := map[string][]mongo.IndexModel{
		"users": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
		},
		"projects": {
			{Keys: bson.D{{Key: "name", Value: 1}, {Key: "createdBy", Value: 1}}, Options: unique},
		},
		"projectmembers": {
			{Keys: bson.D{{Key: "user", Value: 1}, {Key: "project", Value: 1}}, Options: unique},
		},
		"projectnotes": {
			{Keys: bson.D{{Key: "project", Value: 1}, {Key: "createdBy", Value: 1}, {Key: "content", Value: 1}}, Options: unique},
		},
		"tasks": {
			{Keys: bson.D{{Key: "project", Value: 1}}},
		},
		"subtasks": {
			{Keys: bson.D{{Key: "task", Value: 1}}},
		},
	}

	for collection, models := range indexes {
		if _, err := database.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes for %s: %v", collection, err)
		}
	}

	return nil
}
