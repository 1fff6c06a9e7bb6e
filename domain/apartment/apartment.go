// Package apartment models apartment complexes, their buildings, the line
// groups inside each building, and the access devices installed there.
package apartment

import (
	"fmt"
	"strings"
	"time"

	"github.com/wooldanji/console/internal/domain"
)

// Apartment is an apartment complex (aggregate root).
type Apartment struct {
	id        int64
	name      string
	address   string
	code      string
	memo      string
	createdAt time.Time
	updatedAt time.Time
}

// NewApartment creates a new Apartment. Name and code are required.
func NewApartment(name, address, code, memo string) (Apartment, error) {
	name = strings.TrimSpace(name)
	code = strings.TrimSpace(code)
	if name == "" {
		return Apartment{}, fmt.Errorf("%w: apartment name is required", domain.ErrValidation)
	}
	if code == "" {
		return Apartment{}, fmt.Errorf("%w: apartment code is required", domain.ErrValidation)
	}
	now := time.Now()
	return Apartment{
		name:      name,
		address:   strings.TrimSpace(address),
		code:      code,
		memo:      memo,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructApartment reconstructs an Apartment from persistence.
func ReconstructApartment(id int64, name, address, code, memo string, createdAt, updatedAt time.Time) Apartment {
	return Apartment{
		id:        id,
		name:      name,
		address:   address,
		code:      code,
		memo:      memo,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ID returns the apartment ID.
func (a Apartment) ID() int64 { return a.id }

// Name returns the complex name.
func (a Apartment) Name() string { return a.name }

// Address returns the street address.
func (a Apartment) Address() string { return a.address }

// Code returns the short code residents enter when signing up.
func (a Apartment) Code() string { return a.code }

// Memo returns the staff memo.
func (a Apartment) Memo() string { return a.memo }

// CreatedAt returns the creation timestamp.
func (a Apartment) CreatedAt() time.Time { return a.createdAt }

// UpdatedAt returns the last update timestamp.
func (a Apartment) UpdatedAt() time.Time { return a.updatedAt }

// WithDetails returns a copy with new details, validated like NewApartment.
func (a Apartment) WithDetails(name, address, code, memo string) (Apartment, error) {
	updated, err := NewApartment(name, address, code, memo)
	if err != nil {
		return Apartment{}, err
	}
	updated.id = a.id
	updated.createdAt = a.createdAt
	return updated, nil
}

// WithID returns a copy with the specified ID (used after persistence).
func (a Apartment) WithID(id int64) Apartment {
	a.id = id
	return a
}
