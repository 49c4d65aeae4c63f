package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleSuperAdmin.Valid())
	assert.True(t, RoleTeacher.Valid())
	assert.True(t, RoleStudent.Valid())

	assert.False(t, Role("JANITOR").Valid())
	assert.False(t, Role("teacher").Valid())
	assert.False(t, Role("").Valid())
}

func TestRolePrivileged(t *testing.T) {
	assert.True(t, RoleSuperAdmin.Privileged())
	assert.False(t, RoleTeacher.Privileged())
	assert.False(t, RoleStudent.Privileged())
}

func TestRoleNewProfile(t *testing.T) {
	profile := RoleTeacher.NewProfile("user-1", "school-1", "Alice")
	teacher, ok := profile.(*Teacher)
	require.True(t, ok)
	assert.Equal(t, "user-1", teacher.UserID)
	assert.Equal(t, "school-1", teacher.SchoolID)
	assert.Equal(t, "Alice", profile.DisplayName())

	profile = RoleStudent.NewProfile("user-2", "school-1", "Bob")
	student, ok := profile.(*Student)
	require.True(t, ok)
	assert.Equal(t, "user-2", student.UserID)
	assert.Equal(t, "Bob", profile.DisplayName())

	// super admins carry no profile row
	assert.Nil(t, RoleSuperAdmin.NewProfile("user-3", "school-1", "Admin"))
}
