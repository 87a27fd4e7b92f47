package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ManjeetSingh-02/project-management-tool/models"
	"github.com/ManjeetSingh-02/project-management-tool/utils"
)

type NoteService struct {
	NotesCollection *mongo.Collection
}

func NewNoteService(notes *mongo.Collection) *NoteService {
	return &NoteService{NotesCollection: notes}
}

// CreateNote inserts a note. The unique (project, createdBy, content) index
// rejects a duplicate note by the same author atomically.
func (s *NoteService) CreateNote(ctx context.Context, projectID, authorID primitive.ObjectID, content string) (*models.ProjectNote, error) {
	now := time.Now()
	note := &models.ProjectNote{
		ID:        primitive.NewObjectID(),
		Content:   strings.TrimSpace(content),
		Project:   projectID,
		CreatedBy: authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := s.NotesCollection.InsertOne(ctx, note); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, utils.NewConflictError("Note already exists for this project and user")
		}
		return nil, fmt.Errorf("failed to create note: %v", err)
	}

	return note, nil
}

// GetNotes lists the actor's notes in the project.
func (s *NoteService) GetNotes(ctx context.Context, projectID, authorID primitive.ObjectID) ([]models.ProjectNote, error) {
	cursor, err := s.NotesCollection.Find(ctx, bson.M{"project": projectID, "createdBy": authorID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notes: %v", err)
	}
	defer cursor.Close(ctx)

	notes := []models.ProjectNote{}
	if err := cursor.All(ctx, &notes); err != nil {
		return nil, fmt.Errorf("failed to decode notes: %v", err)
	}
	return notes, nil
}

func (s *NoteService) GetNoteByID(ctx context.Context, projectID, noteID, authorID primitive.ObjectID) (*models.ProjectNote, error) {
	var note models.ProjectNote
	err := s.NotesCollection.FindOne(ctx, bson.M{"_id": noteID, "project": projectID, "createdBy": authorID}).Decode(&note)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, utils.NewNotFoundError("Note not found")
		}
		return nil, fmt.Errorf("failed to fetch note: %v", err)
	}
	return &note, nil
}

// UpdateNote rewrites the content of the actor's own note.
func (s *NoteService) UpdateNote(ctx context.Context, projectID, noteID, authorID primitive.ObjectID, content string) (*models.ProjectNote, error) {
	content = strings.TrimSpace(content)

	update := bson.M{"$set": bson.M{"content": content, "updatedAt": time.Now()}}
	result, err := s.NotesCollection.UpdateOne(ctx, bson.M{"_id": noteID, "project": projectID, "createdBy": authorID}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, utils.NewConflictError("Another note with same content already exists for this project and user")
		}
		return nil, fmt.Errorf("failed to update note: %v", err)
	}
	if result.MatchedCount == 0 {
		return nil, utils.NewNotFoundError("Note not found")
	}

	return s.GetNoteByID(ctx, projectID, noteID, authorID)
}

// DeleteNote removes the actor's own note.
func (s *NoteService) DeleteNote(ctx context.Context, projectID, noteID, authorID primitive.ObjectID) error {
	result, err := s.NotesCollection.DeleteOne(ctx, bson.M{"_id": noteID, "project": projectID, "createdBy": authorID})
	if err != nil {
		return fmt.Errorf("failed to delete note: %v", err)
	}
	if result.DeletedCount == 0 {
		return utils.NewNotFoundError("Note not found")
	}
	return nil
}
