package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ManjeetSingh-02/project-management-tool/models"
	"github.com/ManjeetSingh-02/project-management-tool/utils"
)

type SubTaskService struct {
	SubTasksCollection *mongo.Collection
	TasksCollection    *mongo.Collection
}

func NewSubTaskService(subtasks, tasks *mongo.Collection) *SubTaskService {
	return &SubTaskService{
		SubTasksCollection: subtasks,
		TasksCollection:    tasks,
	}
}

func (s *SubTaskService) assertTaskInProject(ctx context.Context, projectID, taskID primitive.ObjectID) error {
	err := s.TasksCollection.FindOne(ctx, bson.M{"_id": taskID, "project": projectID}).Err()
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return utils.NewNotFoundError("Task not found")
		}
		return fmt.Errorf("failed to check task: %v", err)
	}
	return nil
}

func (s *SubTaskService) CreateSubTask(ctx context.Context, projectID, taskID primitive.ObjectID, title string, createdBy primitive.ObjectID) (*models.SubTask, error) {
	if err := s.assertTaskInProject(ctx, projectID, taskID); err != nil {
		return nil, err
	}

	now := time.Now()
	subTask := &models.SubTask{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Task:        taskID,
		IsCompleted: false,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := s.SubTasksCollection.InsertOne(ctx, subTask); err != nil {
		return nil, fmt.Errorf("failed to create subtask: %v", err)
	}

	return subTask, nil
}

func (s *SubTaskService) GetSubTasks(ctx context.Context, projectID, taskID primitive.ObjectID) ([]models.SubTask, error) {
	if err := s.assertTaskInProject(ctx, projectID, taskID); err != nil {
		return nil, err
	}

	cursor, err := s.SubTasksCollection.Find(ctx, bson.M{"task": taskID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch subtasks: %v", err)
	}
	defer cursor.Close(ctx)

	subTasks := []models.SubTask{}
	if err := cursor.All(ctx, &subTasks); err != nil {
		return nil, fmt.Errorf("failed to decode subtasks: %v", err)
	}
	return subTasks, nil
}

// SubTaskUpdate carries the mutable subtask fields; nil means leave
// unchanged.
type SubTaskUpdate struct {
	Title       *string
	IsCompleted *bool
}

func (s *SubTaskService) UpdateSubTask(ctx context.Context, projectID, taskID, subTaskID primitive.ObjectID, updates SubTaskUpdate) (*models.SubTask, error) {
	if err := s.assertTaskInProject(ctx, projectID, taskID); err != nil {
		return nil, err
	}

	set := bson.M{"updatedAt": time.Now()}
	if updates.Title != nil {
		set["title"] = *updates.Title
	}
	if updates.IsCompleted != nil {
		set["isCompleted"] = *updates.IsCompleted
	}

	result, err := s.SubTasksCollection.UpdateOne(ctx, bson.M{"_id": subTaskID, "task": taskID}, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("failed to update subtask: %v", err)
	}
	if result.MatchedCount == 0 {
		return nil, utils.NewNotFoundError("SubTask not found")
	}

	var subTask models.SubTask
	if err := s.SubTasksCollection.FindOne(ctx, bson.M{"_id": subTaskID}).Decode(&subTask); err != nil {
		return nil, fmt.Errorf("failed to fetch subtask: %v", err)
	}
	return &subTask, nil
}

func (s *SubTaskService) DeleteSubTask(ctx context.Context, projectID, taskID, subTaskID primitive.ObjectID) error {
	if err := s.assertTaskInProject(ctx, projectID, taskID); err != nil {
		return err
	}

	result, err := s.SubTasksCollection.DeleteOne(ctx, bson.M{"_id": subTaskID, "task": taskID})
	if err != nil {
		return fmt.Errorf("failed to delete subtask: %v", err)
	}
	if result.DeletedCount == 0 {
		return utils.NewNotFoundError("SubTask not found")
	}
	return nil
}
