// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rvales/mediary/internal/platform/sec"
)

/*
TestHashPassword verifies hashing and the comparison round trip.
*/
func TestHashPassword(t *testing.T) {
	hash, err := sec.HashPassword("correct horse battery staple")
	require.NoError(t, err)

	// Never store plain text.
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, sec.CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, sec.CheckPasswordHash("wrong password", hash))
	assert.False(t, sec.CheckPasswordHash("correct horse battery staple", "not-a-bcrypt-hash"))
}

/*
TestUserRole_AtLeast checks the role ordering used by authorization gates.
*/
func TestUserRole_AtLeast(t *testing.T) {
	tests := []struct {
		name     string
		role     sec.UserRole
		required sec.UserRole
		want     bool
	}{
		{"admin_over_member", sec.RoleAdmin, sec.RoleMember, true},
		{"admin_over_moderator", sec.RoleAdmin, sec.RoleModerator, true},
		{"moderator_not_admin", sec.RoleModerator, sec.RoleAdmin, false},
		{"member_is_member", sec.RoleMember, sec.RoleMember, true},
		{"member_not_moderator", sec.RoleMember, sec.RoleModerator, false},
		{"unknown_role_denied", sec.UserRole("ghost"), sec.RoleMember, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.AtLeast(tt.required))
		})
	}
}
