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

type TaskService struct {
	TasksCollection    *mongo.Collection
	SubTasksCollection *mongo.Collection
	MembersCollection  *mongo.Collection
}

func NewTaskService(tasks, subtasks, members *mongo.Collection) *TaskService {
	return &TaskService{
		TasksCollection:    tasks,
		SubTasksCollection: subtasks,
		MembersCollection:  members,
	}
}

func (s *TaskService) assertProjectMember(ctx context.Context, projectID, userID primitive.ObjectID) error {
	err := s.MembersCollection.FindOne(ctx, bson.M{"user": userID, "project": projectID}).Err()
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return utils.NewBadRequestError(utils.KindValidation, "Assignee is not a member of this project")
		}
		return fmt.Errorf("failed to check project membership: %v", err)
	}
	return nil
}

// CreateTask inserts a task. The assignee must already hold a membership in
// the project.
func (s *TaskService) CreateTask(ctx context.Context, projectID primitive.ObjectID, title, description string, assignedTo, assignedBy primitive.ObjectID) (*models.Task, error) {
	if err := s.assertProjectMember(ctx, projectID, assignedTo); err != nil {
		return nil, err
	}

	now := time.Now()
	task := &models.Task{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Description: description,
		Project:     projectID,
		AssignedTo:  assignedTo,
		AssignedBy:  assignedBy,
		Status:      models.StatusTodo,
		Attachments: []models.Attachment{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := s.TasksCollection.InsertOne(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %v", err)
	}

	return task, nil
}

func (s *TaskService) GetTasksForProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Task, error) {
	cursor, err := s.TasksCollection.Find(ctx, bson.M{"project": projectID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %v", err)
	}
	defer cursor.Close(ctx)

	tasks := []models.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %v", err)
	}
	return tasks, nil
}

func (s *TaskService) GetTaskByID(ctx context.Context, projectID, taskID primitive.ObjectID) (*models.Task, error) {
	var task models.Task
	err := s.TasksCollection.FindOne(ctx, bson.M{"_id": taskID, "project": projectID}).Decode(&task)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, utils.NewNotFoundError("Task not found")
		}
		return nil, fmt.Errorf("failed to fetch task: %v", err)
	}
	return &task, nil
}

// TaskUpdate carries the mutable task fields; nil means leave unchanged.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *models.TaskStatus
	AssignedTo  *primitive.ObjectID
}

// UpdateTask applies the non-nil fields. A new assignee must be a project
// member.
func (s *TaskService) UpdateTask(ctx context.Context, projectID, taskID primitive.ObjectID, updates TaskUpdate) (*models.Task, error) {
	set := bson.M{"updatedAt": time.Now()}
	if updates.Title != nil {
		set["title"] = *updates.Title
	}
	if updates.Description != nil {
		set["description"] = *updates.Description
	}
	if updates.Status != nil {
		set["status"] = *updates.Status
	}
	if updates.AssignedTo != nil {
		if err := s.assertProjectMember(ctx, projectID, *updates.AssignedTo); err != nil {
			return nil, err
		}
		set["assignedTo"] = *updates.AssignedTo
	}

	result, err := s.TasksCollection.UpdateOne(ctx, bson.M{"_id": taskID, "project": projectID}, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %v", err)
	}
	if result.MatchedCount == 0 {
		return nil, utils.NewNotFoundError("Task not found")
	}

	return s.GetTaskByID(ctx, projectID, taskID)
}

// DeleteTask removes the task and its subtasks, subtasks first.
func (s *TaskService) DeleteTask(ctx context.Context, projectID, taskID primitive.ObjectID) error {
	if _, err := s.GetTaskByID(ctx, projectID, taskID); err != nil {
		return err
	}

	if _, err := s.SubTasksCollection.DeleteMany(ctx, bson.M{"task": taskID}); err != nil {
		return fmt.Errorf("failed to delete subtasks: %v", err)
	}
	if _, err := s.TasksCollection.DeleteOne(ctx, bson.M{"_id": taskID}); err != nil {
		return fmt.Errorf("failed to delete task: %v", err)
	}

	return nil
}

// AddAttachments appends stored attachment records to a task.
func (s *TaskService) AddAttachments(ctx context.Context, projectID, taskID primitive.ObjectID, attachments []models.Attachment) (*models.Task, error) {
	update := bson.M{
		"$push": bson.M{"attachments": bson.M{"$each": attachments}},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	result, err := s.TasksCollection.UpdateOne(ctx, bson.M{"_id": taskID, "project": projectID}, update)
	if err != nil {
		return nil, fmt.Errorf("failed to add attachments: %v", err)
	}
	if result.MatchedCount == 0 {
		return nil, utils.NewNotFoundError("Task not found")
	}

	return s.GetTaskByID(ctx, projectID, taskID)
}
