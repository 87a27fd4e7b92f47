package authorization

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ManjeetSingh-02/project-management-tool/models"
	"github.com/ManjeetSingh-02/project-management-tool/utils"
)

func apiErr(t *testing.T, err error) *utils.APIError {
	t.Helper()
	require.Error(t, err)
	apiErr, ok := err.(*utils.APIError)
	require.True(t, ok, "expected *utils.APIError, got %T", err)
	return apiErr
}

func TestCanAssignRole(t *testing.T) {
	tests := []struct {
		actorRole models.Role
		role      models.Role
		want      bool
	}{
		{models.RoleAdmin, models.RoleManager, true},
		{models.RoleAdmin, models.RoleMember, true},
		{models.RoleAdmin, models.RoleAdmin, false},
		{models.RoleManager, models.RoleMember, true},
		{models.RoleManager, models.RoleManager, false},
		{models.RoleManager, models.RoleAdmin, false},
		{models.RoleMember, models.RoleMember, false},
		{models.RoleMember, models.RoleManager, false},
		{models.RoleMember, models.RoleAdmin, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CanAssignRole(tt.actorRole, tt.role),
			"actor %s assigning %s", tt.actorRole, tt.role)
	}
}

func TestRoleGates(t *testing.T) {
	assert.True(t, CanDeleteProject(models.RoleAdmin))
	assert.False(t, CanDeleteProject(models.RoleManager))
	assert.False(t, CanDeleteProject(models.RoleMember))

	assert.True(t, CanUpdateProject(models.RoleAdmin))
	assert.True(t, CanUpdateProject(models.RoleManager))
	assert.False(t, CanUpdateProject(models.RoleMember))

	assert.True(t, CanCreateTask(models.RoleAdmin))
	assert.True(t, CanCreateTask(models.RoleManager))
	assert.False(t, CanCreateTask(models.RoleMember))

	// any-member gates require a resolved role, nothing more
	for _, role := range models.AvailableRoles {
		assert.True(t, CanViewProject(role))
		assert.True(t, CanCreateNote(role))
		assert.True(t, CanManageSubTasks(role))
	}
	assert.False(t, CanViewProject(""))
	assert.False(t, CanCreateNote("guest"))
}

func TestCanAddMember(t *testing.T) {
	assert.NoError(t, CanAddMember(models.RoleAdmin, models.RoleManager))
	assert.NoError(t, CanAddMember(models.RoleAdmin, models.RoleMember))
	assert.NoError(t, CanAddMember(models.RoleManager, models.RoleMember))

	// a member can never add another member, for any role
	for _, role := range models.AvailableRoles {
		err := apiErr(t, CanAddMember(models.RoleMember, role))
		assert.Equal(t, http.StatusForbidden, err.StatusCode)
	}

	// nobody can grant admin
	err := apiErr(t, CanAddMember(models.RoleAdmin, models.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, err.StatusCode)
	err = apiErr(t, CanAddMember(models.RoleManager, models.RoleManager))
	assert.Equal(t, http.StatusForbidden, err.StatusCode)
}

func TestCanChangeMemberRole(t *testing.T) {
	creatorID := primitive.NewObjectID()
	adminID := primitive.NewObjectID()
	managerID := primitive.NewObjectID()
	otherManagerID := primitive.NewObjectID()
	memberID := primitive.NewObjectID()

	admin := Actor{ID: adminID, Role: models.RoleAdmin}
	manager := Actor{ID: managerID, Role: models.RoleManager}
	member := Actor{ID: memberID, Role: models.RoleMember}

	targetMember := models.ProjectMember{User: memberID, Role: models.RoleMember}
	targetManager := models.ProjectMember{User: otherManagerID, Role: models.RoleManager}
	targetCreator := models.ProjectMember{User: creatorID, Role: models.RoleAdmin}

	t.Run("admin promotes member to manager", func(t *testing.T) {
		assert.NoError(t, CanChangeMemberRole(admin, targetMember, creatorID, models.RoleManager))
	})

	t.Run("admin demotes manager to member", func(t *testing.T) {
		assert.NoError(t, CanChangeMemberRole(admin, targetManager, creatorID, models.RoleMember))
	})

	t.Run("creator role is immutable for every caller", func(t *testing.T) {
		for _, actor := range []Actor{admin, manager} {
			err := apiErr(t, CanChangeMemberRole(actor, targetCreator, creatorID, models.RoleMember))
			assert.Equal(t, http.StatusForbidden, err.StatusCode)
		}
	})

	t.Run("actor cannot change own role", func(t *testing.T) {
		self := models.ProjectMember{User: adminID, Role: models.RoleAdmin}
		err := apiErr(t, CanChangeMemberRole(admin, self, creatorID, models.RoleMember))
		assert.Equal(t, http.StatusForbidden, err.StatusCode)
	})

	t.Run("manager cannot alter another manager", func(t *testing.T) {
		err := apiErr(t, CanChangeMemberRole(manager, targetManager, creatorID, models.RoleMember))
		assert.Equal(t, http.StatusForbidden, err.StatusCode)
	})

	t.Run("no-op role change is rejected", func(t *testing.T) {
		err := apiErr(t, CanChangeMemberRole(admin, targetMember, creatorID, models.RoleMember))
		assert.Equal(t, utils.KindNoChange, err.Kind)
		assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	})

	t.Run("member can never re-role anyone", func(t *testing.T) {
		err := apiErr(t, CanChangeMemberRole(member, targetMember, creatorID, models.RoleManager))
		assert.Equal(t, http.StatusForbidden, err.StatusCode)
	})

	t.Run("manager cannot grant manager", func(t *testing.T) {
		err := apiErr(t, CanChangeMemberRole(manager, targetMember, creatorID, models.RoleManager))
		assert.Equal(t, http.StatusForbidden, err.StatusCode)
	})
}

func TestCanRemoveMember(t *testing.T) {
	creatorID := primitive.NewObjectID()
	admin := Actor{ID: primitive.NewObjectID(), Role: models.RoleAdmin}
	manager := Actor{ID: primitive.NewObjectID(), Role: models.RoleManager}
	member := Actor{ID: primitive.NewObjectID(), Role: models.RoleMember}

	targetMember := models.ProjectMember{User: primitive.NewObjectID(), Role: models.RoleMember}
	targetManager := models.ProjectMember{User: primitive.NewObjectID(), Role: models.RoleManager}
	targetCreator := models.ProjectMember{User: creatorID, Role: models.RoleAdmin}

	assert.NoError(t, CanRemoveMember(admin, targetMember, creatorID))
	assert.NoError(t, CanRemoveMember(admin, targetManager, creatorID))
	assert.NoError(t, CanRemoveMember(manager, targetMember, creatorID))

	t.Run("creator can never be removed", func(t *testing.T) {
		for _, actor := range []Actor{admin, manager} {
			err := apiErr(t, CanRemoveMember(actor, targetCreator, creatorID))
			assert.Equal(t, http.StatusForbidden, err.StatusCode)
		}
	})

	t.Run("manager cannot remove another manager", func(t *testing.T) {
		err := apiErr(t, CanRemoveMember(manager, targetManager, creatorID))
		assert.Equal(t, http.StatusForbidden, err.StatusCode)
	})

	t.Run("member can never remove anyone", func(t *testing.T) {
		err := apiErr(t, CanRemoveMember(member, targetMember, creatorID))
		assert.Equal(t, http.StatusForbidden, err.StatusCode)
	})
}

func TestCanModifyTask(t *testing.T) {
	assignerID := primitive.NewObjectID()
	task := models.Task{AssignedBy: assignerID}

	assert.NoError(t, CanModifyTask(Actor{ID: primitive.NewObjectID(), Role: models.RoleAdmin}, task))
	assert.NoError(t, CanModifyTask(Actor{ID: assignerID, Role: models.RoleManager}, task))

	err := apiErr(t, CanModifyTask(Actor{ID: primitive.NewObjectID(), Role: models.RoleManager}, task))
	assert.Equal(t, http.StatusForbidden, err.StatusCode)

	err = apiErr(t, CanModifyTask(Actor{ID: primitive.NewObjectID(), Role: models.RoleMember}, task))
	assert.Equal(t, http.StatusForbidden, err.StatusCode)
}
