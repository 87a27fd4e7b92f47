package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ManjeetSingh-02/project-management-tool/logging"
	"github.com/ManjeetSingh-02/project-management-tool/models"
	"github.com/ManjeetSingh-02/project-management-tool/utils"
)

type ProjectService struct {
	ProjectsCollection *mongo.Collection
	MembersCollection  *mongo.Collection
	TasksCollection    *mongo.Collection
	SubTasksCollection *mongo.Collection
	NotesCollection    *mongo.Collection
}

func NewProjectService(projects, members, tasks, subtasks, notes *mongo.Collection) *ProjectService {
	return &ProjectService{
		ProjectsCollection: projects,
		MembersCollection:  members,
		TasksCollection:    tasks,
		SubTasksCollection: subtasks,
		NotesCollection:    notes,
	}
}

// CreateProject inserts the project and backfills the creator's membership
// row with the admin role, so the creator resolves a role through the
// registry like every other member.
func (s *ProjectService) CreateProject(ctx context.Context, name, description string, creatorID primitive.ObjectID) (*models.Project, error) {
	now := time.Now()
	project := &models.Project{
		ID:          primitive.NewObjectID(),
		Name:        name,
		Description: description,
		CreatedBy:   creatorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := s.ProjectsCollection.InsertOne(ctx, project); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, utils.NewConflictError("Project already exists")
		}
		return nil, fmt.Errorf("failed to create project: %v", err)
	}

	creatorMember := models.ProjectMember{
		User:      creatorID,
		Project:   project.ID,
		Role:      models.RoleAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.MembersCollection.InsertOne(ctx, creatorMember); err != nil {
		// roll the project back so no project exists without its admin row
		if _, delErr := s.ProjectsCollection.DeleteOne(ctx, bson.M{"_id": project.ID}); delErr != nil {
			logging.Logger.Errorf("Event ID: PROJECT_ROLLBACK_FAILED, Description: Project %s left without admin membership, rollback failed: %v", project.ID.Hex(), delErr)
		}
		return nil, fmt.Errorf("failed to create project membership: %v", err)
	}

	return project, nil
}

// GetProjectsForUser lists the projects the user holds a membership in.
func (s *ProjectService) GetProjectsForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Project, error) {
	cursor, err := s.MembersCollection.Find(ctx, bson.M{"user": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch memberships: %v", err)
	}
	defer cursor.Close(ctx)

	var memberships []models.ProjectMember
	if err := cursor.All(ctx, &memberships); err != nil {
		return nil, fmt.Errorf("failed to decode memberships: %v", err)
	}

	projectIDs := make([]primitive.ObjectID, 0, len(memberships))
	for _, m := range memberships {
		projectIDs = append(projectIDs, m.Project)
	}

	projects := []models.Project{}
	if len(projectIDs) == 0 {
		return projects, nil
	}

	projectCursor, err := s.ProjectsCollection.Find(ctx, bson.M{"_id": bson.M{"$in": projectIDs}})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch projects: %v", err)
	}
	defer projectCursor.Close(ctx)

	if err := projectCursor.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("failed to decode projects: %v", err)
	}

	return projects, nil
}

func (s *ProjectService) GetProjectByID(ctx context.Context, projectID primitive.ObjectID) (*models.Project, error) {
	var project models.Project
	err := s.ProjectsCollection.FindOne(ctx, bson.M{"_id": projectID}).Decode(&project)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, utils.NewNotFoundError("Project not found")
		}
		return nil, fmt.Errorf("failed to fetch project: %v", err)
	}
	return &project, nil
}

// UpdateProject replaces name and description. The unique (name, createdBy)
// index guards against renaming onto an existing project.
func (s *ProjectService) UpdateProject(ctx context.Context, projectID primitive.ObjectID, name, description string) (*models.Project, error) {
	update := bson.M{"$set": bson.M{
		"name":        name,
		"description": description,
		"updatedAt":   time.Now(),
	}}

	result, err := s.ProjectsCollection.UpdateOne(ctx, bson.M{"_id": projectID}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, utils.NewConflictError("Project with this name already exists")
		}
		return nil, fmt.Errorf("failed to update project: %v", err)
	}
	if result.MatchedCount == 0 {
		return nil, utils.NewNotFoundError("Project not found")
	}

	return s.GetProjectByID(ctx, projectID)
}

// DeleteProject removes the project and everything it owns, innermost
// first: subtasks, tasks, notes, members, then the project itself.
func (s *ProjectService) DeleteProject(ctx context.Context, projectID primitive.ObjectID) error {
	if _, err := s.GetProjectByID(ctx, projectID); err != nil {
		return err
	}

	cursor, err := s.TasksCollection.Find(ctx, bson.M{"project": projectID})
	if err != nil {
		return fmt.Errorf("failed to fetch project tasks: %v", err)
	}
	defer cursor.Close(ctx)

	var tasks []models.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return fmt.Errorf("failed to decode project tasks: %v", err)
	}

	taskIDs := make([]primitive.ObjectID, 0, len(tasks))
	for _, task := range tasks {
		taskIDs = append(taskIDs, task.ID)
	}

	if len(taskIDs) > 0 {
		if _, err := s.SubTasksCollection.DeleteMany(ctx, bson.M{"task": bson.M{"$in": taskIDs}}); err != nil {
			return fmt.Errorf("failed to delete subtasks: %v", err)
		}
	}
	if _, err := s.TasksCollection.DeleteMany(ctx, bson.M{"project": projectID}); err != nil {
		return fmt.Errorf("failed to delete tasks: %v", err)
	}
	if _, err := s.NotesCollection.DeleteMany(ctx, bson.M{"project": projectID}); err != nil {
		return fmt.Errorf("failed to delete notes: %v", err)
	}
	if _, err := s.MembersCollection.DeleteMany(ctx, bson.M{"project": projectID}); err != nil {
		return fmt.Errorf("failed to delete members: %v", err)
	}
	if _, err := s.ProjectsCollection.DeleteOne(ctx, bson.M{"_id": projectID}); err != nil {
		return fmt.Errorf("failed to delete project: %v", err)
	}

	logging.Logger.Infof("Event ID: PROJECT_DELETED, Description: Project %s deleted with %d tasks", projectID.Hex(), len(taskIDs))
	return nil
}
