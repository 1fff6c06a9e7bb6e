package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/wooldanji/console/domain/access"
	"github.com/wooldanji/console/domain/home"
	"github.com/wooldanji/console/domain/repository"
	"github.com/wooldanji/console/internal/database"
)

// NoticeFilter narrows a notice listing.
type NoticeFilter struct {
	// ApartmentID selects one apartment's notices; zero selects every
	// notice the caller may see, global ones included.
	ApartmentID int64
	// GlobalOnly selects notices that belong to no apartment.
	GlobalOnly    bool
	PublishedOnly bool
}

// NoticeParams holds the fields of a notice. ApartmentID is fixed at creation.
type NoticeParams struct {
	ApartmentID int64
	Title       string
	Body        string
	Published   bool
	Pinned      bool
}

// DialogParams holds the fields of a dialog message.
type DialogParams struct {
	Key     string
	Title   string
	Message string
	Active  bool
}

// Home manages the resident app home screen content.
type Home struct {
	headers home.HeaderStore
	notices home.NoticeStore
	dialogs home.DialogStore
	logger  *slog.Logger
}

// NewHome creates a new Home service.
func NewHome(headers home.HeaderStore, notices home.NoticeStore, dialogs home.DialogStore, logger *slog.Logger) *Home {
	return &Home{headers: headers, notices: notices, dialogs: dialogs, logger: logger}
}

// Header returns the header of an apartment, or the global header for a
// zero ID. A header that was never set is returned empty.
func (s *Home) Header(ctx context.Context, apartmentID int64) (home.Header, error) {
	if err := s.canRead(ctx, apartmentID); err != nil {
		return home.Header{}, err
	}
	h, err := s.headers.FindOne(ctx, home.WithApartment(apartmentID))
	if errors.Is(err, database.ErrNotFound) {
		return home.NewHeader(apartmentID, ""), nil
	}
	if err != nil {
		return home.Header{}, fmt.Errorf("get header: %w", err)
	}
	return h, nil
}

// SetHeader creates or replaces a header.
func (s *Home) SetHeader(ctx context.Context, apartmentID int64, text string) (home.Header, error) {
	if err := s.canWrite(ctx, apartmentID); err != nil {
		return home.Header{}, err
	}
	h, err := s.headers.FindOne(ctx, home.WithApartment(apartmentID))
	switch {
	case errors.Is(err, database.ErrNotFound):
		h = home.NewHeader(apartmentID, text)
	case err != nil:
		return home.Header{}, fmt.Errorf("get header: %w", err)
	default:
		h = h.WithText(text)
	}
	saved, err := s.headers.Save(ctx, h)
	if err != nil {
		return home.Header{}, fmt.Errorf("save header: %w", err)
	}
	return saved, nil
}

// Notices lists notices, pinned first and newest first by default.
func (s *Home) Notices(ctx context.Context, filter NoticeFilter, options ...repository.Option) ([]home.Notice, error) {
	conditions, err := s.noticeFilter(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(options) == 0 {
		options = []repository.Option{repository.WithOrderDesc("pinned"), repository.WithOrderDesc("created_at")}
	}
	return s.notices.Find(ctx, append(conditions, options...)...)
}

// CountNotices returns the number of notices Notices would return without pagination.
func (s *Home) CountNotices(ctx context.Context, filter NoticeFilter) (int64, error) {
	conditions, err := s.noticeFilter(ctx, filter)
	if err != nil {
		return 0, err
	}
	return s.notices.Count(ctx, conditions...)
}

func (s *Home) noticeFilter(ctx context.Context, filter NoticeFilter) ([]repository.Option, error) {
	p, err := access.MustFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := p.Require(access.ActionRead); err != nil {
		return nil, err
	}
	var options []repository.Option
	switch {
	case filter.GlobalOnly:
		options = append(options, home.WithGlobal())
	case filter.ApartmentID != 0:
		if err := p.RequireApartment(access.ActionRead, filter.ApartmentID); err != nil {
			return nil, err
		}
		options = append(options, home.WithApartment(filter.ApartmentID))
	default:
		options = append(options, home.WithinScope(p.Scope()))
	}
	if filter.PublishedOnly {
		options = append(options, home.WithPublished(true))
	}
	return options, nil
}

// CreateNotice adds a notice.
func (s *Home) CreateNotice(ctx context.Context, params NoticeParams) (home.Notice, error) {
	if err := s.canWrite(ctx, params.ApartmentID); err != nil {
		return home.Notice{}, err
	}
	n, err := home.NewNotice(params.ApartmentID, params.Title, params.Body, params.Published, params.Pinned)
	if err != nil {
		return home.Notice{}, err
	}
	saved, err := s.notices.Save(ctx, n)
	if err != nil {
		return home.Notice{}, fmt.Errorf("save notice: %w", err)
	}
	return saved, nil
}

// UpdateNotice replaces the content of a notice.
func (s *Home) UpdateNotice(ctx context.Context, id int64, params NoticeParams) (home.Notice, error) {
	n, err := s.loadNotice(ctx, id)
	if err != nil {
		return home.Notice{}, err
	}
	updated, err := n.WithContent(params.Title, params.Body, params.Published, params.Pinned)
	if err != nil {
		return home.Notice{}, err
	}
	saved, err := s.notices.Save(ctx, updated)
	if err != nil {
		return home.Notice{}, fmt.Errorf("save notice: %w", err)
	}
	return saved, nil
}

// DeleteNotice removes a notice.
func (s *Home) DeleteNotice(ctx context.Context, id int64) error {
	n, err := s.loadNotice(ctx, id)
	if err != nil {
		return err
	}
	if err := s.notices.Delete(ctx, n); err != nil {
		return fmt.Errorf("delete notice: %w", err)
	}
	return nil
}

func (s *Home) loadNotice(ctx context.Context, id int64) (home.Notice, error) {
	if _, err := access.MustFromContext(ctx); err != nil {
		return home.Notice{}, err
	}
	n, err := s.notices.FindOne(ctx, repository.WithID(id))
	if err != nil {
		return home.Notice{}, fmt.Errorf("get notice: %w", err)
	}
	if err := s.canWrite(ctx, n.ApartmentID()); err != nil {
		return home.Notice{}, err
	}
	return n, nil
}

// Dialogs lists every dialog ordered by key.
func (s *Home) Dialogs(ctx context.Context) ([]home.Dialog, error) {
	if err := requireAction(ctx, access.ActionRead); err != nil {
		return nil, err
	}
	return s.dialogs.Find(ctx, repository.WithOrderAsc("key"))
}

// Dialog returns a dialog by key.
func (s *Home) Dialog(ctx context.Context, key string) (home.Dialog, error) {
	if err := requireAction(ctx, access.ActionRead); err != nil {
		return home.Dialog{}, err
	}
	d, err := s.dialogs.FindOne(ctx, home.WithKey(key))
	if err != nil {
		return home.Dialog{}, fmt.Errorf("get dialog %s: %w", key, err)
	}
	return d, nil
}

// PutDialog creates or replaces the dialog with the given key.
func (s *Home) PutDialog(ctx context.Context, params DialogParams) (home.Dialog, error) {
	if err := requireAction(ctx, access.ActionAdminister); err != nil {
		return home.Dialog{}, err
	}
	d, err := home.NewDialog(params.Key, params.Title, params.Message, params.Active)
	if err != nil {
		return home.Dialog{}, err
	}
	existing, err := s.dialogs.FindOne(ctx, home.WithKey(d.Key()))
	switch {
	case err == nil:
		d = d.WithID(existing.ID())
	case !errors.Is(err, database.ErrNotFound):
		return home.Dialog{}, fmt.Errorf("get dialog %s: %w", d.Key(), err)
	}
	saved, err := s.dialogs.Save(ctx, d)
	if err != nil {
		return home.Dialog{}, fmt.Errorf("save dialog: %w", err)
	}
	return saved, nil
}

// DeleteDialog removes the dialog with the given key.
func (s *Home) DeleteDialog(ctx context.Context, key string) error {
	if err := requireAction(ctx, access.ActionAdminister); err != nil {
		return err
	}
	d, err := s.dialogs.FindOne(ctx, home.WithKey(key))
	if err != nil {
		return fmt.Errorf("get dialog %s: %w", key, err)
	}
	if err := s.dialogs.Delete(ctx, d); err != nil {
		return fmt.Errorf("delete dialog: %w", err)
	}
	return nil
}

// Global content is readable by anyone; apartment content needs scope.
func (s *Home) canRead(ctx context.Context, apartmentID int64) error {
	p, err := access.MustFromContext(ctx)
	if err != nil {
		return err
	}
	if apartmentID == 0 {
		return p.Require(access.ActionRead)
	}
	return p.RequireApartment(access.ActionRead, apartmentID)
}

// Global content needs administer; apartment content needs manage in scope.
func (s *Home) canWrite(ctx context.Context, apartmentID int64) error {
	p, err := access.MustFromContext(ctx)
	if err != nil {
		return err
	}
	if apartmentID == 0 {
		return p.Require(access.ActionAdminister)
	}
	return p.RequireApartment(access.ActionManage, apartmentID)
}
