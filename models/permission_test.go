package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePermissions_DedupesAndKeepsOrder(t *testing.T) {
	perms, err := ParsePermissions([]string{"USER", "ADMIN", " USER "})
	require.NoError(t, err)
	assert.Equal(t, Permissions{PermissionUser, PermissionAdmin}, perms)
}

func TestParsePermissions_RejectsUnknown(t *testing.T) {
	tests := []string{"admin", "SUPERUSER", ""}
	for _, raw := range tests {
		_, err := ParsePermissions([]string{"USER", raw})
		assert.Error(t, err, "expected %q to be rejected", raw)
	}
}

func TestPermissions_HasAny(t *testing.T) {
	perms := Permissions{PermissionUser, PermissionItemDelete}

	assert.True(t, perms.HasAny(PermissionAdmin, PermissionItemDelete))
	assert.False(t, perms.HasAny(PermissionAdmin, PermissionPermissionUpdate))
	assert.False(t, Permissions(nil).HasAny(PermissionUser))
}

func TestUser_CanOnNilUser(t *testing.T) {
	var u *User
	assert.False(t, u.Can(PermissionUser))
}

func TestItem_OwnedBy(t *testing.T) {
	owner := &User{}
	owner.ID = 7
	other := &User{}
	other.ID = 8
	item := Item{UserID: 7}

	assert.True(t, item.OwnedBy(owner))
	assert.False(t, item.OwnedBy(other))
	assert.False(t, item.OwnedBy(nil))
}
