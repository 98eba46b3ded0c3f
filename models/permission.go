package models

import (
	"fmt"
	"strings"
)

// Permission is a capability granted to a user.
type Permission string

const (
	PermissionAdmin            Permission = "ADMIN"
	PermissionUser             Permission = "USER"
	PermissionItemCreate       Permission = "ITEMCREATE"
	PermissionItemUpdate       Permission = "ITEMUPDATE"
	PermissionItemDelete       Permission = "ITEMDELETE"
	PermissionPermissionUpdate Permission = "PERMISSIONUPDATE"
)

// AllPermissions lists every known permission in display order.
var AllPermissions = []Permission{
	PermissionAdmin,
	PermissionUser,
	PermissionItemCreate,
	PermissionItemUpdate,
	PermissionItemDelete,
	PermissionPermissionUpdate,
}

func (p Permission) Valid() bool {
	for _, known := range AllPermissions {
		if p == known {
			return true
		}
	}
	return false
}

// ParsePermission accepts only members of AllPermissions. Surrounding
// whitespace is ignored; case is not.
func ParsePermission(raw string) (Permission, error) {
	p := Permission(strings.TrimSpace(raw))
	if !p.Valid() {
		return "", fmt.Errorf("unknown permission %q", raw)
	}
	return p, nil
}

// Permissions is the permission set stored on a user.
type Permissions []Permission

// ParsePermissions validates every entry and drops duplicates, keeping the
// first occurrence.
func ParsePermissions(raw []string) (Permissions, error) {
	out := make(Permissions, 0, len(raw))
	seen := make(map[Permission]bool, len(raw))
	for _, r := range raw {
		p, err := ParsePermission(r)
		if err != nil {
			return nil, err
		}
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out, nil
}

// HasAny reports whether the set contains at least one of want.
func (ps Permissions) HasAny(want ...Permission) bool {
	for _, have := range ps {
		for _, w := range want {
			if have == w {
				return true
			}
		}
	}
	return false
}

func (ps Permissions) Strings() []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = string(p)
	}
	return out
}
