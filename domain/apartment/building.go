package apartment

import (
	"fmt"
	"strings"
	"time"

	"github.com/wooldanji/console/internal/domain"
)

// Building is a single building ("101동") within an apartment complex.
type Building struct {
	id          int64
	apartmentID int64
	name        string
	createdAt   time.Time
	updatedAt   time.Time
}

// NewBuilding creates a new Building.
func NewBuilding(apartmentID int64, name string) (Building, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Building{}, fmt.Errorf("%w: building name is required", domain.ErrValidation)
	}
	now := time.Now()
	return Building{
		apartmentID: apartmentID,
		name:        name,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructBuilding reconstructs a Building from persistence.
func ReconstructBuilding(id, apartmentID int64, name string, createdAt, updatedAt time.Time) Building {
	return Building{
		id:          id,
		apartmentID: apartmentID,
		name:        name,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// ID returns the building ID.
func (b Building) ID() int64 { return b.id }

// ApartmentID returns the owning apartment ID.
func (b Building) ApartmentID() int64 { return b.apartmentID }

// Name returns the building name.
func (b Building) Name() string { return b.name }

// CreatedAt returns the creation timestamp.
func (b Building) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last update timestamp.
func (b Building) UpdatedAt() time.Time { return b.updatedAt }

// Rename returns a copy with a new name.
func (b Building) Rename(name string) (Building, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Building{}, fmt.Errorf("%w: building name is required", domain.ErrValidation)
	}
	b.name = name
	b.updatedAt = time.Now()
	return b, nil
}

// WithID returns a copy with the specified ID.
func (b Building) WithID(id int64) Building {
	b.id = id
	return b
}
