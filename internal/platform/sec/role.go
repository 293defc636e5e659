// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// RoleAdmin manages users, ads and the whole catalogue.
	RoleAdmin UserRole = "admin"

	// RolePublisher uploads and edits series, chapters and categories.
	RolePublisher UserRole = "publisher"

	// RoleReader is the default role for registered readers.
	RoleReader UserRole = "reader"
)

// IsValid reports whether r is one of the closed set of roles.
func (r UserRole) IsValid() bool {
	return r.level() > 0
}

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {
	switch r {
	case RoleAdmin:
		return 30
	case RolePublisher:
		return 20
	case RoleReader:
		return 10
	default:
		return 0
	}
}
