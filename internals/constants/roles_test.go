package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleEmployee.Valid())

	assert.False(t, Role("").Valid())
	assert.False(t, Role("superadmin").Valid())
	assert.False(t, Role("Admin").Valid())
}

func TestRoleHomePath(t *testing.T) {
	assert.Equal(t, "/admin/home", RoleAdmin.HomePath())
	assert.Equal(t, "/home", RoleEmployee.HomePath())
}

func TestRoleErrorAdminMentionsFeature(t *testing.T) {
	msg := RoleErrorAdmin("holiday administration")
	assert.Contains(t, msg, "holiday administration")
}
