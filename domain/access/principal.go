package access

import (
	"context"
	"fmt"
	"slices"

	"github.com/wooldanji/console/internal/domain"
)

// Principal is the authenticated caller of an operation.
type Principal struct {
	staffID      int64
	name         string
	role         Role
	apartmentIDs []int64
	system       bool
}

// NewPrincipal creates a Principal for a staff member.
func NewPrincipal(staffID int64, name string, role Role, apartmentIDs []int64) Principal {
	return Principal{
		staffID:      staffID,
		name:         name,
		role:         role,
		apartmentIDs: slices.Clone(apartmentIDs),
	}
}

// System returns the admin principal used for API-key and MCP callers.
func System() Principal {
	return Principal{name: "system", role: RoleAdmin, system: true}
}

// StaffID returns the staff ID, zero for the system principal.
func (p Principal) StaffID() int64 { return p.staffID }

// Name returns the display name.
func (p Principal) Name() string { return p.name }

// Role returns the role.
func (p Principal) Role() Role { return p.role }

// ApartmentIDs returns the assigned apartment IDs.
func (p Principal) ApartmentIDs() []int64 { return slices.Clone(p.apartmentIDs) }

// IsSystem reports whether this is the system principal.
func (p Principal) IsSystem() bool { return p.system }

// Can reports whether the principal's role permits action.
func (p Principal) Can(action Action) bool { return Can(p.role, action) }

// Scope returns the apartments the principal may see.
func (p Principal) Scope() Scope {
	if p.role == RoleAdmin {
		return Unrestricted()
	}
	return Restrict(p.apartmentIDs)
}

// Require returns ErrForbidden unless the principal may perform action.
func (p Principal) Require(action Action) error {
	if !p.Can(action) {
		return fmt.Errorf("%w: %s may not %s", domain.ErrForbidden, p.role, action)
	}
	return nil
}

// RequireApartment returns ErrForbidden unless the principal may perform
// action on the given apartment.
func (p Principal) RequireApartment(action Action, apartmentID int64) error {
	if err := p.Require(action); err != nil {
		return err
	}
	if !p.Scope().Allows(apartmentID) {
		return fmt.Errorf("%w: apartment %d is not assigned", domain.ErrForbidden, apartmentID)
	}
	return nil
}

type principalKey struct{}

// WithPrincipal returns a context carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext returns the principal carried by ctx.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// MustFromContext returns the principal carried by ctx or ErrUnauthorized.
func MustFromContext(ctx context.Context) (Principal, error) {
	p, ok := FromContext(ctx)
	if !ok {
		return Principal{}, domain.ErrUnauthorized
	}
	return p, nil
}
