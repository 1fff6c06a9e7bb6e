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

// Buildings manages the buildings of an apartment complex.
type Buildings struct {
	apartments apartment.ApartmentStore
	buildings  apartment.BuildingStore
	logger     *slog.Logger
}

// NewBuildings creates a new Buildings service.
func NewBuildings(apartments apartment.ApartmentStore, buildings apartment.BuildingStore, logger *slog.Logger) *Buildings {
	return &Buildings{apartments: apartments, buildings: buildings, logger: logger}
}

// ListByApartment returns the buildings of an apartment ordered by name.
func (s *Buildings) ListByApartment(ctx context.Context, apartmentID int64) ([]apartment.Building, error) {
	p, err := access.MustFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := p.RequireApartment(access.ActionRead, apartmentID); err != nil {
		return nil, err
	}
	return s.buildings.Find(ctx, repository.WithApartmentID(apartmentID), repository.WithOrderAsc("name"))
}

// Get returns one building.
func (s *Buildings) Get(ctx context.Context, id int64) (apartment.Building, error) {
	return s.load(ctx, id, access.ActionRead)
}

// Create adds a building to an apartment. Names are unique per apartment.
func (s *Buildings) Create(ctx context.Context, apartmentID int64, name string) (apartment.Building, error) {
	if err := requireAction(ctx, access.ActionAdminister); err != nil {
		return apartment.Building{}, err
	}
	if _, err := s.apartments.FindOne(ctx, repository.WithID(apartmentID)); err != nil {
		return apartment.Building{}, fmt.Errorf("get apartment: %w", err)
	}
	b, err := apartment.NewBuilding(apartmentID, name)
	if err != nil {
		return apartment.Building{}, err
	}
	if err := s.checkUnique(ctx, b); err != nil {
		return apartment.Building{}, err
	}
	saved, err := s.buildings.Save(ctx, b)
	if err != nil {
		return apartment.Building{}, conflictOnDuplicate(fmt.Errorf("save building: %w", err), "building")
	}
	s.logger.Info("building created",
		slog.Int64("apartment_id", apartmentID),
		slog.Int64("building_id", saved.ID()),
		slog.String("name", saved.Name()),
	)
	return saved, nil
}

// Rename changes a building's name.
func (s *Buildings) Rename(ctx context.Context, id int64, name string) (apartment.Building, error) {
	b, err := s.load(ctx, id, access.ActionAdminister)
	if err != nil {
		return apartment.Building{}, err
	}
	renamed, err := b.Rename(name)
	if err != nil {
		return apartment.Building{}, err
	}
	if err := s.checkUnique(ctx, renamed); err != nil {
		return apartment.Building{}, err
	}
	saved, err := s.buildings.Save(ctx, renamed)
	if err != nil {
		return apartment.Building{}, conflictOnDuplicate(fmt.Errorf("save building: %w", err), "building")
	}
	return saved, nil
}

// Delete removes a building and its lines. Devices and residents of the
// building are kept but unbound.
func (s *Buildings) Delete(ctx context.Context, id int64) error {
	b, err := s.load(ctx, id, access.ActionAdminister)
	if err != nil {
		return err
	}
	if err := s.buildings.DeleteCascade(ctx, b); err != nil {
		return fmt.Errorf("delete building: %w", err)
	}
	s.logger.Info("building deleted", slog.Int64("building_id", id))
	return nil
}

func (s *Buildings) load(ctx context.Context, id int64, action access.Action) (apartment.Building, error) {
	p, err := access.MustFromContext(ctx)
	if err != nil {
		return apartment.Building{}, err
	}
	if err := p.Require(action); err != nil {
		return apartment.Building{}, err
	}
	b, err := s.buildings.FindOne(ctx, repository.WithID(id))
	if err != nil {
		return apartment.Building{}, fmt.Errorf("get building: %w", err)
	}
	if err := p.RequireApartment(action, b.ApartmentID()); err != nil {
		return apartment.Building{}, err
	}
	return b, nil
}

func (s *Buildings) checkUnique(ctx context.Context, b apartment.Building) error {
	found, err := s.buildings.Find(ctx, repository.WithApartmentID(b.ApartmentID()), apartment.WithName(b.Name()))
	if err != nil {
		return fmt.Errorf("check building name: %w", err)
	}
	for _, other := range found {
		if other.ID() != b.ID() {
			return fmt.Errorf("%w: building %s already exists", domain.ErrConflict, b.Name())
		}
	}
	return nil
}
