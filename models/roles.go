package models

// Role is a permission level scoped to a single project membership.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleMember  Role = "member"
)

var AvailableRoles = []Role{RoleAdmin, RoleManager, RoleMember}

func (r Role) IsValid() bool {
	for _, role := range AvailableRoles {
		if r == role {
			return true
		}
	}
	return false
}

type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in_progress"
	StatusDone       TaskStatus = "done"
)

var AvailableTaskStatuses = []TaskStatus{StatusTodo, StatusInProgress, StatusDone}

func (s TaskStatus) IsValid() bool {
	for _, status := range AvailableTaskStatuses {
		if s == status {
			return true
		}
	}
	return false
}
