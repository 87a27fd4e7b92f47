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

// MemberService is the membership and role registry. Every project-scoped
// request resolves the actor's role through it.
type MemberService struct {
	MembersCollection *mongo.Collection
	UsersCollection   *mongo.Collection
	NotesCollection   *mongo.Collection
}

func NewMemberService(members, users, notes *mongo.Collection) *MemberService {
	return &MemberService{
		MembersCollection: members,
		UsersCollection:   users,
		NotesCollection:   notes,
	}
}

// ResolveRole returns the actor's role in the project. A user without a
// membership row has no access, whatever else they are to the project.
func (s *MemberService) ResolveRole(ctx context.Context, userID, projectID primitive.ObjectID) (models.Role, error) {
	var member models.ProjectMember
	err := s.MembersCollection.FindOne(ctx, bson.M{"user": userID, "project": projectID}).Decode(&member)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return "", utils.NewInvalidProjectError("You are not a member of this project")
		}
		return "", fmt.Errorf("failed to resolve role: %v", err)
	}
	return member.Role, nil
}

// GetMember returns the membership row for a user in a project.
func (s *MemberService) GetMember(ctx context.Context, projectID, userID primitive.ObjectID) (models.ProjectMember, error) {
	var member models.ProjectMember
	err := s.MembersCollection.FindOne(ctx, bson.M{"user": userID, "project": projectID}).Decode(&member)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.ProjectMember{}, utils.NewNotFoundError("Project member not found")
		}
		return models.ProjectMember{}, fmt.Errorf("failed to fetch member: %v", err)
	}
	return member, nil
}

// GetProjectMembers lists the members of a project with their public user
// fields expanded.
func (s *MemberService) GetProjectMembers(ctx context.Context, projectID primitive.ObjectID) ([]models.MemberInfo, error) {
	cursor, err := s.MembersCollection.Find(ctx, bson.M{"project": projectID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch members: %v", err)
	}
	defer cursor.Close(ctx)

	var members []models.ProjectMember
	if err := cursor.All(ctx, &members); err != nil {
		return nil, fmt.Errorf("failed to decode members: %v", err)
	}

	userIDs := make([]primitive.ObjectID, 0, len(members))
	for _, m := range members {
		userIDs = append(userIDs, m.User)
	}

	users := map[primitive.ObjectID]models.User{}
	if len(userIDs) > 0 {
		userCursor, err := s.UsersCollection.Find(ctx, bson.M{"_id": bson.M{"$in": userIDs}})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch member users: %v", err)
		}
		defer userCursor.Close(ctx)

		var userDocs []models.User
		if err := userCursor.All(ctx, &userDocs); err != nil {
			return nil, fmt.Errorf("failed to decode member users: %v", err)
		}
		for _, u := range userDocs {
			users[u.ID] = u
		}
	}

	infos := make([]models.MemberInfo, 0, len(members))
	for _, m := range members {
		infos = append(infos, memberInfo(m, users[m.User]))
	}
	return infos, nil
}

// AddMember inserts a membership row for an existing user. The unique
// (user, project) index rejects duplicate membership atomically.
func (s *MemberService) AddMember(ctx context.Context, projectID, userID primitive.ObjectID, role models.Role) (*models.MemberInfo, error) {
	var user models.User
	err := s.UsersCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		return nil, utils.NewNotFoundError("User not found")
	}

	now := time.Now()
	member := models.ProjectMember{
		ID:        primitive.NewObjectID(),
		User:      userID,
		Project:   projectID,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := s.MembersCollection.InsertOne(ctx, member); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, utils.NewConflictError("Member already exists in project")
		}
		return nil, fmt.Errorf("failed to add member: %v", err)
	}

	info := memberInfo(member, user)
	return &info, nil
}

// UpdateMemberRole sets a member's role. Policy checks happen before this
// call; here the row just has to exist.
func (s *MemberService) UpdateMemberRole(ctx context.Context, projectID, userID primitive.ObjectID, role models.Role) (*models.MemberInfo, error) {
	update := bson.M{"$set": bson.M{"role": role, "updatedAt": time.Now()}}
	result, err := s.MembersCollection.UpdateOne(ctx, bson.M{"user": userID, "project": projectID}, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update member role: %v", err)
	}
	if result.MatchedCount == 0 {
		return nil, utils.NewNotFoundError("Project member not found")
	}

	member, err := s.GetMember(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := s.UsersCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to fetch member user: %v", err)
	}

	info := memberInfo(member, user)
	return &info, nil
}

// RemoveMember deletes the membership row together with the member's notes
// in that project.
func (s *MemberService) RemoveMember(ctx context.Context, projectID, userID primitive.ObjectID) error {
	if _, err := s.GetMember(ctx, projectID, userID); err != nil {
		return err
	}

	if _, err := s.NotesCollection.DeleteMany(ctx, bson.M{"project": projectID, "createdBy": userID}); err != nil {
		return fmt.Errorf("failed to delete member notes: %v", err)
	}

	if _, err := s.MembersCollection.DeleteOne(ctx, bson.M{"user": userID, "project": projectID}); err != nil {
		return fmt.Errorf("failed to remove member: %v", err)
	}

	return nil
}

func memberInfo(member models.ProjectMember, user models.User) models.MemberInfo {
	info := models.MemberInfo{
		ID:        member.ID,
		Role:      member.Role,
		CreatedAt: member.CreatedAt,
	}
	info.User.ID = user.ID
	info.User.Username = user.Username
	info.User.Email = user.Email
	return info
}
