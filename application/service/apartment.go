package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/wooldanji/console/domain/access"
	"github.com/wooldanji/console/domain/account"
	"github.com/wooldanji/console/domain/apartment"
	"github.com/wooldanji/console/domain/inquiry"
	"github.com/wooldanji/console/domain/repository"
	"github.com/wooldanji/console/internal/domain"
)

// ApartmentParams holds the editable fields of an apartment.
type ApartmentParams struct {
	Name    string
	Address string
	Code    string
	Memo    string
}

// Apartments manages apartment complexes.
type Apartments struct {
	apartments apartment.ApartmentStore
	residents  account.ResidentStore
	inquiries  inquiry.Store
	logger     *slog.Logger
}

// NewApartments creates a new Apartments service.
func NewApartments(
	apartments apartment.ApartmentStore,
	residents account.ResidentStore,
	inquiries inquiry.Store,
	logger *slog.Logger,
) *Apartments {
	return &Apartments{
		apartments: apartments,
		residents:  residents,
		inquiries:  inquiries,
		logger:     logger,
	}
}

// List returns apartments visible to the caller whose name, address or code
// contains search. Extra options carry ordering and pagination.
func (s *Apartments) List(ctx context.Context, search string, options ...repository.Option) ([]apartment.Apartment, error) {
	filter, ok, err := s.filter(ctx, search)
	if err != nil || !ok {
		return nil, err
	}
	if len(options) == 0 {
		options = []repository.Option{repository.WithOrderAsc("name")}
	}
	return s.apartments.Find(ctx, append(filter, options...)...)
}

// Count returns the number of apartments List would return without pagination.
func (s *Apartments) Count(ctx context.Context, search string) (int64, error) {
	filter, ok, err := s.filter(ctx, search)
	if err != nil || !ok {
		return 0, err
	}
	return s.apartments.Count(ctx, filter...)
}

func (s *Apartments) filter(ctx context.Context, search string) ([]repository.Option, bool, error) {
	p, err := access.MustFromContext(ctx)
	if err != nil {
		return nil, false, err
	}
	if err := p.Require(access.ActionRead); err != nil {
		return nil, false, err
	}
	scope, ok := scopeFilter(p, "id")
	if !ok {
		return nil, false, nil
	}
	options := []repository.Option{scope}
	if search = strings.TrimSpace(search); search != "" {
		options = append(options, apartment.WithSearch(search))
	}
	return options, true, nil
}

// Get returns one apartment.
func (s *Apartments) Get(ctx context.Context, id int64) (apartment.Apartment, error) {
	p, err := access.MustFromContext(ctx)
	if err != nil {
		return apartment.Apartment{}, err
	}
	if err := p.RequireApartment(access.ActionRead, id); err != nil {
		return apartment.Apartment{}, err
	}
	a, err := s.apartments.FindOne(ctx, repository.WithID(id))
	if err != nil {
		return apartment.Apartment{}, fmt.Errorf("get apartment: %w", err)
	}
	return a, nil
}

// Create adds an apartment. Name and code must be unique.
func (s *Apartments) Create(ctx context.Context, params ApartmentParams) (apartment.Apartment, error) {
	if err := requireAction(ctx, access.ActionAdminister); err != nil {
		return apartment.Apartment{}, err
	}
	a, err := apartment.NewApartment(params.Name, params.Address, params.Code, params.Memo)
	if err != nil {
		return apartment.Apartment{}, err
	}
	if err := s.checkUnique(ctx, a); err != nil {
		return apartment.Apartment{}, err
	}
	saved, err := s.apartments.Save(ctx, a)
	if err != nil {
		return apartment.Apartment{}, conflictOnDuplicate(fmt.Errorf("save apartment: %w", err), "apartment")
	}
	s.logger.Info("apartment created", slog.Int64("apartment_id", saved.ID()), slog.String("name", saved.Name()))
	return saved, nil
}

// Update replaces the editable fields of an apartment.
func (s *Apartments) Update(ctx context.Context, id int64, params ApartmentParams) (apartment.Apartment, error) {
	if err := requireAction(ctx, access.ActionAdminister); err != nil {
		return apartment.Apartment{}, err
	}
	existing, err := s.apartments.FindOne(ctx, repository.WithID(id))
	if err != nil {
		return apartment.Apartment{}, fmt.Errorf("get apartment: %w", err)
	}
	updated, err := existing.WithDetails(params.Name, params.Address, params.Code, params.Memo)
	if err != nil {
		return apartment.Apartment{}, err
	}
	if err := s.checkUnique(ctx, updated); err != nil {
		return apartment.Apartment{}, err
	}
	saved, err := s.apartments.Save(ctx, updated)
	if err != nil {
		return apartment.Apartment{}, conflictOnDuplicate(fmt.Errorf("save apartment: %w", err), "apartment")
	}
	return saved, nil
}

// Delete removes an apartment with its buildings, lines, devices, staff
// assignments and home content. Apartments that still have residents or
// inquiries cannot be deleted.
func (s *Apartments) Delete(ctx context.Context, id int64) error {
	if err := requireAction(ctx, access.ActionAdminister); err != nil {
		return err
	}
	a, err := s.apartments.FindOne(ctx, repository.WithID(id))
	if err != nil {
		return fmt.Errorf("get apartment: %w", err)
	}
	residents, err := s.residents.Count(ctx, repository.WithApartmentID(id))
	if err != nil {
		return fmt.Errorf("count residents: %w", err)
	}
	inquiries, err := s.inquiries.Count(ctx, repository.WithApartmentID(id))
	if err != nil {
		return fmt.Errorf("count inquiries: %w", err)
	}
	if residents > 0 || inquiries > 0 {
		return fmt.Errorf("%w: apartment %d still has %d residents and %d inquiries", domain.ErrConflict, id, residents, inquiries)
	}
	if err := s.apartments.DeleteCascade(ctx, a); err != nil {
		return fmt.Errorf("delete apartment: %w", err)
	}
	s.logger.Info("apartment deleted", slog.Int64("apartment_id", id))
	return nil
}

func (s *Apartments) checkUnique(ctx context.Context, a apartment.Apartment) error {
	checks := []struct {
		what   string
		option repository.Option
	}{
		{"name " + a.Name(), apartment.WithName(a.Name())},
		{"code " + a.Code(), apartment.WithCode(a.Code())},
	}
	for _, c := range checks {
		found, err := s.apartments.Find(ctx, c.option)
		if err != nil {
			return fmt.Errorf("check apartment %s: %w", c.what, err)
		}
		for _, other := range found {
			if other.ID() != a.ID() {
				return fmt.Errorf("%w: apartment %s already exists", domain.ErrConflict, c.what)
			}
		}
	}
	return nil
}

// requireAction loads the principal and checks a role-level action.
func requireAction(ctx context.Context, action access.Action) error {
	p, err := access.MustFromContext(ctx)
	if err != nil {
		return err
	}
	return p.Require(action)
}
