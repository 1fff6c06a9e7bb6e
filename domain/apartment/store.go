package apartment

import (
	"context"

	"github.com/wooldanji/console/domain/repository"
)

// ApartmentStore persists apartments.
type ApartmentStore interface {
	repository.Store[Apartment]

	// DeleteCascade removes the apartment with its buildings, lines,
	// devices, staff assignments and apartment home content in one
	// transaction.
	DeleteCascade(ctx context.Context, apartment Apartment) error
}

// BuildingStore persists buildings.
type BuildingStore interface {
	repository.Store[Building]

	// DeleteCascade removes the building and its lines, and unbinds its
	// devices, in one transaction.
	DeleteCascade(ctx context.Context, building Building) error
}

// LineStore persists line groups.
type LineStore interface {
	repository.Store[Line]

	// SaveChecked saves lines of one building in a single transaction. The
	// building row is locked and check sees the building's current lines
	// before anything is written; a check error aborts the save. A nil
	// check always passes.
	SaveChecked(ctx context.Context, buildingID int64, lines []Line, check func(existing []Line) error) ([]Line, error)

	// DeleteUnbinding removes the line and unbinds devices that pointed at it.
	DeleteUnbinding(ctx context.Context, l Line) error
}

// DeviceStore persists devices.
type DeviceStore interface {
	repository.Store[Device]
}

// WithName filters by exact name.
func WithName(name string) repository.Option {
	return repository.WithCondition("name", name)
}

// WithCode filters apartments by code.
func WithCode(code string) repository.Option {
	return repository.WithCondition("code", code)
}

// WithSearch matches apartments whose name, address or code contains text.
func WithSearch(text string) repository.Option {
	pattern := "%" + text + "%"
	return repository.WithWhere("(name LIKE ? OR address LIKE ? OR code LIKE ?)", pattern, pattern, pattern)
}

// WithBuildingID filters by building.
func WithBuildingID(id int64) repository.Option {
	return repository.WithCondition("building_id", id)
}

// WithSerial filters devices by serial number.
func WithSerial(serial string) repository.Option {
	return repository.WithCondition("serial", serial)
}
