package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleIsValid(t *testing.T) {
	for _, role := range AvailableRoles {
		assert.True(t, role.IsValid(), "role %q", role)
	}
	assert.False(t, Role("owner").IsValid())
	assert.False(t, Role("").IsValid())
	assert.False(t, Role("Admin").IsValid(), "role names are case sensitive")
}

func TestTaskStatusIsValid(t *testing.T) {
	for _, status := range AvailableTaskStatuses {
		assert.True(t, status.IsValid(), "status %q", status)
	}
	assert.False(t, TaskStatus("completed").IsValid())
	assert.False(t, TaskStatus("").IsValid())
}
