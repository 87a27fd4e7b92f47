// Package authorization holds every role and ownership rule as a pure
// function of (actor, target). Nothing here touches HTTP or the database,
// so each policy is unit-testable in isolation.
package authorization

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ManjeetSingh-02/project-management-tool/models"
	"github.com/ManjeetSingh-02/project-management-tool/utils"
)

// Actor is the authenticated caller with their role already resolved for
// the target project.
type Actor struct {
	ID   primitive.ObjectID
	Role models.Role
}

// assignableRoles is the cross-role-access matrix: which roles an actor
// role may grant when adding members or changing roles.
var assignableRoles = map[models.Role][]models.Role{
	models.RoleAdmin:   {models.RoleManager, models.RoleMember},
	models.RoleManager: {models.RoleMember},
	models.RoleMember:  {},
}

func roleAuthority(role models.Role) int {
	switch role {
	case models.RoleAdmin:
		return 3
	case models.RoleManager:
		return 2
	case models.RoleMember:
		return 1
	}
	return 0
}

// CanAssignRole reports whether the actor role may grant the given role.
func CanAssignRole(actorRole, role models.Role) bool {
	for _, allowed := range assignableRoles[actorRole] {
		if allowed == role {
			return true
		}
	}
	return false
}

func CanViewProject(actorRole models.Role) bool {
	return actorRole.IsValid()
}

func CanUpdateProject(actorRole models.Role) bool {
	return actorRole == models.RoleAdmin || actorRole == models.RoleManager
}

func CanDeleteProject(actorRole models.Role) bool {
	return actorRole == models.RoleAdmin
}

func CanManageMembers(actorRole models.Role) bool {
	return actorRole == models.RoleAdmin || actorRole == models.RoleManager
}

func CanCreateTask(actorRole models.Role) bool {
	return actorRole == models.RoleAdmin || actorRole == models.RoleManager
}

func CanCreateNote(actorRole models.Role) bool {
	return actorRole.IsValid()
}

func CanManageSubTasks(actorRole models.Role) bool {
	return actorRole.IsValid()
}

// CanAddMember checks the role gate and the assignment matrix for adding a
// new member with the given role.
func CanAddMember(actorRole, newRole models.Role) error {
	if !CanManageMembers(actorRole) {
		return utils.NewAuthorizationError("Insufficient role to add members")
	}
	if !CanAssignRole(actorRole, newRole) {
		return utils.NewAuthorizationError("Insufficient role to assign role " + string(newRole))
	}
	return nil
}

// CanChangeMemberRole evaluates the ordered ownership invariants for a role
// change. projectCreator is the immutable owner recorded on the project.
func CanChangeMemberRole(actor Actor, target models.ProjectMember, projectCreator primitive.ObjectID, newRole models.Role) error {
	if !CanManageMembers(actor.Role) {
		return utils.NewAuthorizationError("Insufficient role to change member roles")
	}
	if target.User == projectCreator {
		return utils.NewAuthorizationError("Cannot change role of project creator")
	}
	if target.User == actor.ID {
		return utils.NewAuthorizationError("Cannot change your own role")
	}
	if roleAuthority(actor.Role) <= roleAuthority(target.Role) && actor.Role != models.RoleAdmin {
		return utils.NewAuthorizationError("Cannot change role of a member with equal or higher authority")
	}
	if target.Role == newRole {
		return utils.NewNoChangeError("Member already has role " + string(newRole))
	}
	if !CanAssignRole(actor.Role, newRole) {
		return utils.NewAuthorizationError("Insufficient role to assign role " + string(newRole))
	}
	return nil
}

// CanRemoveMember evaluates the ordered ownership invariants for removing a
// member from a project.
func CanRemoveMember(actor Actor, target models.ProjectMember, projectCreator primitive.ObjectID) error {
	if !CanManageMembers(actor.Role) {
		return utils.NewAuthorizationError("Insufficient role to remove members")
	}
	if target.User == projectCreator {
		return utils.NewAuthorizationError("Cannot remove project creator")
	}
	if roleAuthority(actor.Role) <= roleAuthority(target.Role) && actor.Role != models.RoleAdmin {
		return utils.NewAuthorizationError("Cannot remove a member with equal or higher authority")
	}
	return nil
}

// CanModifyTask restricts task mutation to an admin or the task's original
// assigner.
func CanModifyTask(actor Actor, task models.Task) error {
	if actor.Role == models.RoleAdmin {
		return nil
	}
	if task.AssignedBy == actor.ID {
		return nil
	}
	return utils.NewAuthorizationError("Only an admin or the task assigner can modify this task")
}
