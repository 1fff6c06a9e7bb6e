package apartment

import (
	"fmt"
	"strings"
	"time"

	"github.com/wooldanji/console/internal/domain"
)

// DeviceKind is the kind of access device.
type DeviceKind string

// DeviceKind values.
const (
	DeviceKindLobby    DeviceKind = "lobby"
	DeviceKindElevator DeviceKind = "elevator"
	DeviceKindParking  DeviceKind = "parking"
	DeviceKindGate     DeviceKind = "gate"
)

// ParseDeviceKind returns the DeviceKind named by s.
func ParseDeviceKind(s string) (DeviceKind, error) {
	switch k := DeviceKind(strings.ToLower(strings.TrimSpace(s))); k {
	case DeviceKindLobby, DeviceKindElevator, DeviceKindParking, DeviceKindGate:
		return k, nil
	default:
		return "", fmt.Errorf("%w: unknown device kind %q", domain.ErrValidation, s)
	}
}

// Device is an access device (lobby door, elevator reader, gate) installed
// in an apartment complex. A device may be bound to a building and, within
// it, to one line group. Zero IDs mean unbound.
type Device struct {
	id          int64
	apartmentID int64
	buildingID  int64
	lineID      int64
	name        string
	serial      string
	kind        DeviceKind
	enabled     bool
	createdAt   time.Time
	updatedAt   time.Time
}

// NewDevice creates an enabled Device.
func NewDevice(apartmentID, buildingID, lineID int64, name, serial string, kind DeviceKind) (Device, error) {
	name = strings.TrimSpace(name)
	serial = strings.TrimSpace(serial)
	if name == "" || serial == "" {
		return Device{}, fmt.Errorf("%w: device name and serial are required", domain.ErrValidation)
	}
	if lineID != 0 && buildingID == 0 {
		return Device{}, fmt.Errorf("%w: a line requires a building", domain.ErrValidation)
	}
	now := time.Now()
	return Device{
		apartmentID: apartmentID,
		buildingID:  buildingID,
		lineID:      lineID,
		name:        name,
		serial:      serial,
		kind:        kind,
		enabled:     true,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructDevice reconstructs a Device from persistence.
func ReconstructDevice(
	id, apartmentID, buildingID, lineID int64,
	name, serial string,
	kind DeviceKind,
	enabled bool,
	createdAt, updatedAt time.Time,
) Device {
	return Device{
		id:          id,
		apartmentID: apartmentID,
		buildingID:  buildingID,
		lineID:      lineID,
		name:        name,
		serial:      serial,
		kind:        kind,
		enabled:     enabled,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (d Device) ID() int64            { return d.id }
func (d Device) ApartmentID() int64   { return d.apartmentID }
func (d Device) BuildingID() int64    { return d.buildingID }
func (d Device) LineID() int64        { return d.lineID }
func (d Device) Name() string         { return d.name }
func (d Device) Serial() string       { return d.serial }
func (d Device) Kind() DeviceKind     { return d.kind }
func (d Device) Enabled() bool        { return d.enabled }
func (d Device) CreatedAt() time.Time { return d.createdAt }
func (d Device) UpdatedAt() time.Time { return d.updatedAt }

// WithSettings returns a copy with a new name, kind and enabled flag.
func (d Device) WithSettings(name string, kind DeviceKind, enabled bool) (Device, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Device{}, fmt.Errorf("%w: device name is required", domain.ErrValidation)
	}
	d.name = name
	d.kind = kind
	d.enabled = enabled
	d.updatedAt = time.Now()
	return d, nil
}

// WithID returns a copy with the specified ID.
func (d Device) WithID(id int64) Device {
	d.id = id
	return d
}
