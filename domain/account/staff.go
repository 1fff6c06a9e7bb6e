// Package account models console staff and the residents who sign up
// through the resident app.
package account

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/wooldanji/console/domain/access"
	"github.com/wooldanji/console/internal/domain"
)

// Staff is a console operator account.
type Staff struct {
	id           int64
	email        string
	name         string
	passwordHash string
	role         access.Role
	active       bool
	createdAt    time.Time
	updatedAt    time.Time
}

// NewStaff creates an active Staff account. The password must already be hashed.
func NewStaff(email, name, passwordHash string, role access.Role) (Staff, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)
	if _, err := mail.ParseAddress(email); err != nil {
		return Staff{}, fmt.Errorf("%w: invalid email %q", domain.ErrValidation, email)
	}
	if name == "" {
		return Staff{}, fmt.Errorf("%w: staff name is required", domain.ErrValidation)
	}
	if passwordHash == "" {
		return Staff{}, fmt.Errorf("%w: password is required", domain.ErrValidation)
	}
	now := time.Now()
	return Staff{
		email:        email,
		name:         name,
		passwordHash: passwordHash,
		role:         access.Normalize(string(role)),
		active:       true,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructStaff reconstructs a Staff from persistence.
func ReconstructStaff(
	id int64,
	email, name, passwordHash string,
	role access.Role,
	active bool,
	createdAt, updatedAt time.Time,
) Staff {
	return Staff{
		id:           id,
		email:        email,
		name:         name,
		passwordHash: passwordHash,
		role:         role,
		active:       active,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// ID returns the staff ID.
func (s Staff) ID() int64 { return s.id }

// Email returns the login email, lower-cased.
func (s Staff) Email() string { return s.email }

// Name returns the display name.
func (s Staff) Name() string { return s.name }

// PasswordHash returns the bcrypt hash.
func (s Staff) PasswordHash() string { return s.passwordHash }

// Role returns the role.
func (s Staff) Role() access.Role { return s.role }

// Active reports whether the account may sign in.
func (s Staff) Active() bool { return s.active }

// CreatedAt returns the creation timestamp.
func (s Staff) CreatedAt() time.Time { return s.createdAt }

// UpdatedAt returns the last update timestamp.
func (s Staff) UpdatedAt() time.Time { return s.updatedAt }

// Deactivate returns a copy that can no longer sign in.
func (s Staff) Deactivate() Staff {
	s.active = false
	s.updatedAt = time.Now()
	return s
}

// WithID returns a copy with the specified ID.
func (s Staff) WithID(id int64) Staff {
	s.id = id
	return s
}
