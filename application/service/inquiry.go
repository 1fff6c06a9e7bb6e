package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wooldanji/console/domain/access"
	"github.com/wooldanji/console/domain/account"
	"github.com/wooldanji/console/domain/inquiry"
	"github.com/wooldanji/console/domain/repository"
)

// InquiryFilter narrows an inquiry listing. Zero fields do not filter.
type InquiryFilter struct {
	Status      inquiry.Status
	ApartmentID int64
}

// InquiryParams describes a new inquiry.
type InquiryParams struct {
	ResidentID int64
	Title      string
	Content    string
}

// Inquiries answers resident inquiries.
type Inquiries struct {
	inquiries inquiry.Store
	residents account.ResidentStore
	logger    *slog.Logger
}

// NewInquiries creates a new Inquiries service.
func NewInquiries(inquiries inquiry.Store, residents account.ResidentStore, logger *slog.Logger) *Inquiries {
	return &Inquiries{inquiries: inquiries, residents: residents, logger: logger}
}

// List returns inquiries visible to the caller, newest first by default.
func (s *Inquiries) List(ctx context.Context, filter InquiryFilter, options ...repository.Option) ([]inquiry.Inquiry, error) {
	conditions, ok, err := s.filter(ctx, filter)
	if err != nil || !ok {
		return nil, err
	}
	if len(options) == 0 {
		options = []repository.Option{repository.WithOrderDesc("created_at")}
	}
	return s.inquiries.Find(ctx, append(conditions, options...)...)
}

// Count returns the number of inquiries List would return without pagination.
func (s *Inquiries) Count(ctx context.Context, filter InquiryFilter) (int64, error) {
	conditions, ok, err := s.filter(ctx, filter)
	if err != nil || !ok {
		return 0, err
	}
	return s.inquiries.Count(ctx, conditions...)
}

func (s *Inquiries) filter(ctx context.Context, filter InquiryFilter) ([]repository.Option, bool, error) {
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
		options = append(options, inquiry.WithStatus(filter.Status))
	}
	return options, true, nil
}

// Get returns one inquiry.
func (s *Inquiries) Get(ctx context.Context, id int64) (inquiry.Inquiry, error) {
	_, i, err := s.load(ctx, id, access.ActionRead)
	return i, err
}

// Create records an inquiry on behalf of a resident. The inquiry belongs to
// the resident's apartment.
func (s *Inquiries) Create(ctx context.Context, params InquiryParams) (inquiry.Inquiry, error) {
	p, err := access.MustFromContext(ctx)
	if err != nil {
		return inquiry.Inquiry{}, err
	}
	r, err := s.residents.FindOne(ctx, repository.WithID(params.ResidentID))
	if err != nil {
		return inquiry.Inquiry{}, fmt.Errorf("get resident: %w", err)
	}
	if err := p.RequireApartment(access.ActionManage, r.ApartmentID()); err != nil {
		return inquiry.Inquiry{}, err
	}
	i, err := inquiry.NewInquiry(r.ID(), r.ApartmentID(), params.Title, params.Content)
	if err != nil {
		return inquiry.Inquiry{}, err
	}
	saved, err := s.inquiries.Save(ctx, i)
	if err != nil {
		return inquiry.Inquiry{}, fmt.Errorf("save inquiry: %w", err)
	}
	return saved, nil
}

// Answer records or replaces the answer to an open or answered inquiry.
func (s *Inquiries) Answer(ctx context.Context, id int64, text string) (inquiry.Inquiry, error) {
	p, i, err := s.load(ctx, id, access.ActionManage)
	if err != nil {
		return inquiry.Inquiry{}, err
	}
	answered, err := i.Respond(p.StaffID(), text)
	if err != nil {
		return inquiry.Inquiry{}, err
	}
	saved, err := s.inquiries.Save(ctx, answered)
	if err != nil {
		return inquiry.Inquiry{}, fmt.Errorf("save inquiry: %w", err)
	}
	s.logger.Info("inquiry answered", slog.Int64("inquiry_id", id), slog.Int64("staff_id", p.StaffID()))
	return saved, nil
}

// Close marks an inquiry closed.
func (s *Inquiries) Close(ctx context.Context, id int64) (inquiry.Inquiry, error) {
	_, i, err := s.load(ctx, id, access.ActionManage)
	if err != nil {
		return inquiry.Inquiry{}, err
	}
	closed, err := i.Close()
	if err != nil {
		return inquiry.Inquiry{}, err
	}
	saved, err := s.inquiries.Save(ctx, closed)
	if err != nil {
		return inquiry.Inquiry{}, fmt.Errorf("save inquiry: %w", err)
	}
	return saved, nil
}

func (s *Inquiries) load(ctx context.Context, id int64, action access.Action) (access.Principal, inquiry.Inquiry, error) {
	p, err := access.MustFromContext(ctx)
	if err != nil {
		return access.Principal{}, inquiry.Inquiry{}, err
	}
	if err := p.Require(action); err != nil {
		return access.Principal{}, inquiry.Inquiry{}, err
	}
	i, err := s.inquiries.FindOne(ctx, repository.WithID(id))
	if err != nil {
		return access.Principal{}, inquiry.Inquiry{}, fmt.Errorf("get inquiry: %w", err)
	}
	if err := p.RequireApartment(action, i.ApartmentID()); err != nil {
		return access.Principal{}, inquiry.Inquiry{}, err
	}
	return p, i, nil
}
