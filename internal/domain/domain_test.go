package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleNames(t *testing.T) {
	assert.Equal(t, "Admin", RoleAdmin.String())
	assert.Equal(t, "UserReport", RoleReporter.String())
	assert.Equal(t, "UserResolve", RoleResolver.String())
	assert.Equal(t, "Unknown", Role(9).String())
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleReporter.Valid())
	assert.True(t, RoleResolver.Valid())
	assert.False(t, Role(-1).Valid())
	assert.False(t, Role(3).Valid())
}

func TestRoleCanResolve(t *testing.T) {
	assert.True(t, RoleAdmin.CanResolve())
	assert.True(t, RoleResolver.CanResolve())
	assert.False(t, RoleReporter.CanResolve())
}

func TestTicketStatusValid(t *testing.T) {
	for s := StatusPending; s <= StatusResolved; s++ {
		assert.True(t, s.Valid(), s.String())
	}
	assert.False(t, TicketStatus(-1).Valid())
	assert.False(t, TicketStatus(4).Valid())
}
