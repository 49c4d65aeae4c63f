package models

// Role represents the closed set of identity roles in the system.
type Role string

const (
	// RoleSuperAdmin is the cross-tenant administrator role. Identities with
	// this role live in the reserved system school and are provisioned
	// out-of-band, never through public registration.
	RoleSuperAdmin Role = "SUPER_ADMIN"
	// RoleTeacher is a tenant-scoped teacher identity with a Teacher profile.
	RoleTeacher Role = "TEACHER"
	// RoleStudent is a tenant-scoped student identity with a Student profile.
	RoleStudent Role = "STUDENT"
)

// Valid reports whether the role is a member of the closed role set.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleTeacher, RoleStudent:
		return true
	default:
		return false
	}
}

// Privileged reports whether the role grants the cross-tenant admin surface.
func (r Role) Privileged() bool {
	return r == RoleSuperAdmin
}

// NewProfile constructs the role-specific profile row for a new identity.
// Roles without a profile (SUPER_ADMIN) return nil. Adding a role means
// adding a case here instead of scattering role conditionals over services.
func (r Role) NewProfile(userID, schoolID, name string) Profile {
	switch r {
	case RoleTeacher:
		return &Teacher{UserID: userID, SchoolID: schoolID, Name: name}
	case RoleStudent:
		return &Student{UserID: userID, SchoolID: schoolID, Name: name}
	default:
		return nil
	}
}

// Profile is the 1:1 role-specific extension of a User record.
type Profile interface {
	// DisplayName returns the human readable name carried by the profile.
	DisplayName() string
}
