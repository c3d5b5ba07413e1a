package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleUser))
	assert.True(t, ValidRole(RoleModerator))
	assert.True(t, ValidRole(RoleAdmin))
	assert.False(t, ValidRole(""))
	assert.False(t, ValidRole("owner"))
}

func TestUserPrivileges(t *testing.T) {
	tests := []struct {
		name       string
		user       User
		privileged bool
		admin      bool
	}{
		{"plain user", User{Role: RoleUser}, false, false},
		{"moderator", User{Role: RoleModerator}, true, false},
		{"admin", User{Role: RoleAdmin}, true, true},
		{"superuser with user role", User{Role: RoleUser, Superuser: true}, true, true},
		{"superuser moderator", User{Role: RoleModerator, Superuser: true}, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.privileged, tt.user.IsPrivileged())
			assert.Equal(t, tt.admin, tt.user.IsAdmin())
		})
	}
}
