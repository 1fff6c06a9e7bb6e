// Package access decides what a staff member may do and which apartments
// they may see.
package access

import (
	"slices"
)

// Role is a staff role.
type Role string

// Action is a class of operation checked against a role.
type Action string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
)

const (
	// ActionRead covers listing and viewing.
	ActionRead Action = "read"
	// ActionManage covers mutating apartment-scoped data such as residents,
	// inquiries and apartment notices.
	ActionManage Action = "manage"
	// ActionAdminister covers structure (apartments, buildings, lines,
	// devices), staff accounts and global content.
	ActionAdminister Action = "administer"
)

// Can reports whether role may perform action.
func Can(role Role, action Action) bool {
	switch role {
	case RoleAdmin:
		return true
	case RoleManager:
		return action == ActionRead || action == ActionManage
	default:
		return false
	}
}

// Normalize maps a stored role string to a Role. Unknown roles become
// RoleManager, the least privileged role.
func Normalize(role string) Role {
	switch Role(role) {
	case RoleAdmin, RoleManager:
		return Role(role)
	default:
		return RoleManager
	}
}

// String returns the role name.
func (r Role) String() string { return string(r) }

// Scope restricts a principal to a set of apartments.
type Scope struct {
	restricted   bool
	apartmentIDs []int64
}

// Unrestricted returns a scope that allows every apartment.
func Unrestricted() Scope {
	return Scope{}
}

// Restrict returns a scope that allows only the given apartments.
// An empty list allows nothing.
func Restrict(apartmentIDs []int64) Scope {
	ids := slices.Clone(apartmentIDs)
	slices.Sort(ids)
	return Scope{restricted: true, apartmentIDs: slices.Compact(ids)}
}

// Restricted reports whether the scope limits apartments at all.
func (s Scope) Restricted() bool { return s.restricted }

// ApartmentIDs returns the allowed apartment IDs of a restricted scope.
func (s Scope) ApartmentIDs() []int64 { return slices.Clone(s.apartmentIDs) }

// Allows reports whether the scope includes the apartment.
func (s Scope) Allows(apartmentID int64) bool {
	if !s.restricted {
		return true
	}
	_, found := slices.BinarySearch(s.apartmentIDs, apartmentID)
	return found
}

// Empty reports whether the scope allows no apartment.
func (s Scope) Empty() bool {
	return s.restricted && len(s.apartmentIDs) == 0
}
