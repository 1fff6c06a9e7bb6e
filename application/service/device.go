package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wooldanji/console/domain/access"
	"github.com/wooldanji/console/domain/apartment"
	"github.com/wooldanji/console/domain/repository"
	"github.com/wooldanji/console/internal/domain"
)

// DeviceFilter narrows a device listing. Zero fields do not filter.
type DeviceFilter struct {
	ApartmentID int64
	BuildingID  int64
}

// DeviceParams describes a new device.
type DeviceParams struct {
	ApartmentID int64
	BuildingID  int64
	LineID      int64
	Name        string
	Serial      string
	Kind        string
}

// DeviceUpdate holds the fields managers may change on a device.
type DeviceUpdate struct {
	Name    string
	Kind    string
	Enabled bool
}

// Devices manages access devices.
type Devices struct {
	apartments apartment.ApartmentStore
	buildings  apartment.BuildingStore
	lines      apartment.LineStore
	devices    apartment.DeviceStore
	logger     *slog.Logger
}

// NewDevices creates a new Devices service.
func NewDevices(
	apartments apartment.ApartmentStore,
	buildings apartment.BuildingStore,
	lines apartment.LineStore,
	devices apartment.DeviceStore,
	logger *slog.Logger,
) *Devices {
	return &Devices{
		apartments: apartments,
		buildings:  buildings,
		lines:      lines,
		devices:    devices,
		logger:     logger,
	}
}

// List returns devices visible to the caller.
func (s *Devices) List(ctx context.Context, filter DeviceFilter, options ...repository.Option) ([]apartment.Device, error) {
	conditions, ok, err := s.filter(ctx, filter)
	if err != nil || !ok {
		return nil, err
	}
	if len(options) == 0 {
		options = []repository.Option{repository.WithOrderAsc("id")}
	}
	return s.devices.Find(ctx, append(conditions, options...)...)
}

// Count returns the number of devices List would return without pagination.
func (s *Devices) Count(ctx context.Context, filter DeviceFilter) (int64, error) {
	conditions, ok, err := s.filter(ctx, filter)
	if err != nil || !ok {
		return 0, err
	}
	return s.devices.Count(ctx, conditions...)
}

func (s *Devices) filter(ctx context.Context, filter DeviceFilter) ([]repository.Option, bool, error) {
	p, err := access.MustFromContext(ctx)
	if err != nil {
		return nil, false, err
	}
	if err := p.Require(access.ActionRead); err != nil {
		return nil, false, err
	}
	if filter.ApartmentID != 0 {
		if err := p.RequireApartment(access.ActionRead, filter.ApartmentID); err != nil {
			return nil, false, err
		}
	}
	scope, ok := scopeFilter(p, "apartment_id")
	if !ok {
		return nil, false, nil
	}
	options := []repository.Option{scope}
	if filter.ApartmentID != 0 {
		options = append(options, repository.WithApartmentID(filter.ApartmentID))
	}
	if filter.BuildingID != 0 {
		options = append(options, apartment.WithBuildingID(filter.BuildingID))
	}
	return options, true, nil
}

// Get returns one device.
func (s *Devices) Get(ctx context.Context, id int64) (apartment.Device, error) {
	return s.load(ctx, id, access.ActionRead)
}

// Create registers a device. The building must belong to the apartment and
// the line to the building. Serial numbers are unique.
func (s *Devices) Create(ctx context.Context, params DeviceParams) (apartment.Device, error) {
	if err := requireAction(ctx, access.ActionAdminister); err != nil {
		return apartment.Device{}, err
	}
	kind, err := apartment.ParseDeviceKind(params.Kind)
	if err != nil {
		return apartment.Device{}, err
	}
	d, err := apartment.NewDevice(params.ApartmentID, params.BuildingID, params.LineID, params.Name, params.Serial, kind)
	if err != nil {
		return apartment.Device{}, err
	}
	if _, err := s.apartments.FindOne(ctx, repository.WithID(params.ApartmentID)); err != nil {
		return apartment.Device{}, fmt.Errorf("get apartment: %w", err)
	}
	if err := s.checkPlacement(ctx, d); err != nil {
		return apartment.Device{}, err
	}
	taken, err := s.devices.Exists(ctx, apartment.WithSerial(d.Serial()))
	if err != nil {
		return apartment.Device{}, fmt.Errorf("check serial: %w", err)
	}
	if taken {
		return apartment.Device{}, fmt.Errorf("%w: device serial %s already exists", domain.ErrConflict, d.Serial())
	}

	saved, err := s.devices.Save(ctx, d)
	if err != nil {
		return apartment.Device{}, conflictOnDuplicate(fmt.Errorf("save device: %w", err), "device serial")
	}
	s.logger.Info("device registered",
		slog.Int64("device_id", saved.ID()),
		slog.String("serial", saved.Serial()),
		slog.String("kind", string(saved.Kind())),
	)
	return saved, nil
}

// Update changes a device's name, kind and enabled flag.
func (s *Devices) Update(ctx context.Context, id int64, update DeviceUpdate) (apartment.Device, error) {
	d, err := s.load(ctx, id, access.ActionManage)
	if err != nil {
		return apartment.Device{}, err
	}
	kind, err := apartment.ParseDeviceKind(update.Kind)
	if err != nil {
		return apartment.Device{}, err
	}
	updated, err := d.WithSettings(update.Name, kind, update.Enabled)
	if err != nil {
		return apartment.Device{}, err
	}
	saved, err := s.devices.Save(ctx, updated)
	if err != nil {
		return apartment.Device{}, fmt.Errorf("save device: %w", err)
	}
	return saved, nil
}

// Delete removes a device.
func (s *Devices) Delete(ctx context.Context, id int64) error {
	d, err := s.load(ctx, id, access.ActionAdminister)
	if err != nil {
		return err
	}
	if err := s.devices.Delete(ctx, d); err != nil {
		return fmt.Errorf("delete device: %w", err)
	}
	return nil
}

func (s *Devices) checkPlacement(ctx context.Context, d apartment.Device) error {
	if d.BuildingID() == 0 {
		return nil
	}
	b, err := s.buildings.FindOne(ctx, repository.WithID(d.BuildingID()))
	if err != nil {
		return fmt.Errorf("get building: %w", err)
	}
	if b.ApartmentID() != d.ApartmentID() {
		return fmt.Errorf("%w: building %d is not in apartment %d", domain.ErrValidation, b.ID(), d.ApartmentID())
	}
	if d.LineID() == 0 {
		return nil
	}
	l, err := s.lines.FindOne(ctx, repository.WithID(d.LineID()))
	if err != nil {
		return fmt.Errorf("get line: %w", err)
	}
	if l.BuildingID() != b.ID() {
		return fmt.Errorf("%w: line %d is not in building %d", domain.ErrValidation, l.ID(), b.ID())
	}
	return nil
}

func (s *Devices) load(ctx context.Context, id int64, action access.Action) (apartment.Device, error) {
	p, err := access.MustFromContext(ctx)
	if err != nil {
		return apartment.Device{}, err
	}
	if err := p.Require(action); err != nil {
		return apartment.Device{}, err
	}
	d, err := s.devices.FindOne(ctx, repository.WithID(id))
	if err != nil {
		return apartment.Device{}, fmt.Errorf("get device: %w", err)
	}
	if err := p.RequireApartment(action, d.ApartmentID()); err != nil {
		return apartment.Device{}, err
	}
	return d, nil
}
