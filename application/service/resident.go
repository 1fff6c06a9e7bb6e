package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wooldanji/console/domain/access"
	"github.com/wooldanji/console/domain/account"
	"github.com/wooldanji/console/domain/apartment"
	"github.com/wooldanji/console/domain/repository"
	"github.com/wooldanji/console/internal/domain"
)

// ResidentFilter narrows a resident listing. Zero fields do not filter.
type ResidentFilter struct {
	Status      account.Status
	ApartmentID int64
}

// ResidentParams describes a resident sign-up.
type ResidentParams struct {
	Name        string
	Phone       string
	ApartmentID int64
	BuildingID  int64
	Unit        string
}

// Residents reviews resident sign-ups.
type Residents struct {
	residents account.ResidentStore
	buildings apartment.BuildingStore
	logger    *slog.Logger
}

// NewResidents creates a new Residents service.
func NewResidents(residents account.ResidentStore, buildings apartment.BuildingStore, logger *slog.Logger) *Residents {
	return &Residents{residents: residents, buildings: buildings, logger: logger}
}

// List returns residents visible to the caller, newest first by default.
func (s *Residents) List(ctx context.Context, filter ResidentFilter, options ...repository.Option) ([]account.Resident, error) {
	conditions, ok, err := s.filter(ctx, filter)
	if err != nil || !ok {
		return nil, err
	}
	if len(options) == 0 {
		options = []repository.Option{repository.WithOrderDesc("created_at")}
	}
	return s.residents.Find(ctx, append(conditions, options...)...)
}

// Count returns the number of residents List would return without pagination.
func (s *Residents) Count(ctx context.Context, filter ResidentFilter) (int64, error) {
	conditions, ok, err := s.filter(ctx, filter)
	if err != nil || !ok {
		return 0, err
	}
	return s.residents.Count(ctx, conditions...)
}

func (s *Residents) filter(ctx context.Context, filter ResidentFilter) ([]repository.Option, bool, error) {
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
	if filter.Status != "" {
		options = append(options, account.WithStatus(filter.Status))
	}
	return options, true, nil
}

// Get returns one resident.
func (s *Residents) Get(ctx context.Context, id int64) (account.Resident, error) {
	_, r, err := s.load(ctx, id, access.ActionRead)
	return r, err
}

// Create registers a pending resident.
func (s *Residents) Create(ctx context.Context, params ResidentParams) (account.Resident, error) {
	p, err := access.MustFromContext(ctx)
	if err != nil {
		return account.Resident{}, err
	}
	if err := p.RequireApartment(access.ActionManage, params.ApartmentID); err != nil {
		return account.Resident{}, err
	}
	r, err := account.NewResident(params.Name, params.Phone, params.ApartmentID, params.BuildingID, params.Unit)
	if err != nil {
		return account.Resident{}, err
	}
	if params.BuildingID != 0 {
		b, err := s.buildings.FindOne(ctx, repository.WithID(params.BuildingID))
		if err != nil {
			return account.Resident{}, fmt.Errorf("get building: %w", err)
		}
		if b.ApartmentID() != params.ApartmentID {
			return account.Resident{}, fmt.Errorf("%w: building %d is not in apartment %d", domain.ErrValidation, b.ID(), params.ApartmentID)
		}
	}
	saved, err := s.residents.Save(ctx, r)
	if err != nil {
		return account.Resident{}, fmt.Errorf("save resident: %w", err)
	}
	return saved, nil
}

// Approve accepts a pending or reconfirm resident.
func (s *Residents) Approve(ctx context.Context, id int64) (account.Resident, error) {
	return s.review(ctx, id, "approved", func(p access.Principal, r account.Resident) (account.Resident, error) {
		return r.Approve(p.StaffID())
	})
}

// Reject declines a pending or reconfirm resident with a reason.
func (s *Residents) Reject(ctx context.Context, id int64, reason string) (account.Resident, error) {
	return s.review(ctx, id, "rejected", func(p access.Principal, r account.Resident) (account.Resident, error) {
		return r.Reject(p.StaffID(), reason)
	})
}

// RequestReconfirm asks an approved resident to confirm their details again.
func (s *Residents) RequestReconfirm(ctx context.Context, id int64) (account.Resident, error) {
	return s.review(ctx, id, "reconfirm requested", func(p access.Principal, r account.Resident) (account.Resident, error) {
		return r.RequestReconfirm(p.StaffID())
	})
}

func (s *Residents) review(
	ctx context.Context,
	id int64,
	verb string,
	transition func(access.Principal, account.Resident) (account.Resident, error),
) (account.Resident, error) {
	p, r, err := s.load(ctx, id, access.ActionManage)
	if err != nil {
		return account.Resident{}, err
	}
	next, err := transition(p, r)
	if err != nil {
		return account.Resident{}, err
	}
	saved, err := s.residents.Save(ctx, next)
	if err != nil {
		return account.Resident{}, fmt.Errorf("save resident: %w", err)
	}
	s.logger.Info("resident "+verb,
		slog.Int64("resident_id", id),
		slog.Int64("staff_id", p.StaffID()),
		slog.String("status", string(saved.Status())),
	)
	return saved, nil
}

func (s *Residents) load(ctx context.Context, id int64, action access.Action) (access.Principal, account.Resident, error) {
	p, err := access.MustFromContext(ctx)
	if err != nil {
		return access.Principal{}, account.Resident{}, err
	}
	if err := p.Require(action); err != nil {
		return access.Principal{}, account.Resident{}, err
	}
	r, err := s.residents.FindOne(ctx, repository.WithID(id))
	if err != nil {
		return access.Principal{}, account.Resident{}, fmt.Errorf("get resident: %w", err)
	}
	if err := p.RequireApartment(action, r.ApartmentID()); err != nil {
		return access.Principal{}, account.Resident{}, err
	}
	return p, r, nil
}
