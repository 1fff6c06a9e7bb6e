// Package home models the content shown on the resident app home screen:
// the header line, notices, and keyed dialog messages.
//
// Header and notice rows with no apartment are global and shown to every
// apartment.
package home

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/wooldanji/console/domain/access"
	"github.com/wooldanji/console/domain/repository"
	"github.com/wooldanji/console/internal/domain"
)

// Header is the greeting line at the top of the home screen.
type Header struct {
	id          int64
	apartmentID int64
	text        string
	updatedAt   time.Time
}

// NewHeader creates a Header. A zero apartmentID makes it global.
func NewHeader(apartmentID int64, text string) Header {
	return Header{apartmentID: apartmentID, text: strings.TrimSpace(text), updatedAt: time.Now()}
}

// ReconstructHeader reconstructs a Header from persistence.
func ReconstructHeader(id, apartmentID int64, text string, updatedAt time.Time) Header {
	return Header{id: id, apartmentID: apartmentID, text: text, updatedAt: updatedAt}
}

func (h Header) ID() int64            { return h.id }
func (h Header) ApartmentID() int64   { return h.apartmentID }
func (h Header) Global() bool         { return h.apartmentID == 0 }
func (h Header) Text() string         { return h.text }
func (h Header) UpdatedAt() time.Time { return h.updatedAt }

// WithText returns a copy holding new text.
func (h Header) WithText(text string) Header {
	h.text = strings.TrimSpace(text)
	h.updatedAt = time.Now()
	return h
}

// Notice is an announcement listed on the home screen.
type Notice struct {
	id          int64
	apartmentID int64
	title       string
	body        string
	published   bool
	pinned      bool
	createdAt   time.Time
	updatedAt   time.Time
}

// NewNotice creates a Notice. A zero apartmentID makes it global.
func NewNotice(apartmentID int64, title, body string, published, pinned bool) (Notice, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Notice{}, fmt.Errorf("%w: notice title is required", domain.ErrValidation)
	}
	now := time.Now()
	return Notice{
		apartmentID: apartmentID,
		title:       title,
		body:        body,
		published:   published,
		pinned:      pinned,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructNotice reconstructs a Notice from persistence.
func ReconstructNotice(
	id, apartmentID int64,
	title, body string,
	published, pinned bool,
	createdAt, updatedAt time.Time,
) Notice {
	return Notice{
		id:          id,
		apartmentID: apartmentID,
		title:       title,
		body:        body,
		published:   published,
		pinned:      pinned,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (n Notice) ID() int64            { return n.id }
func (n Notice) ApartmentID() int64   { return n.apartmentID }
func (n Notice) Global() bool         { return n.apartmentID == 0 }
func (n Notice) Title() string        { return n.title }
func (n Notice) Body() string         { return n.body }
func (n Notice) Published() bool      { return n.published }
func (n Notice) Pinned() bool         { return n.pinned }
func (n Notice) CreatedAt() time.Time { return n.createdAt }
func (n Notice) UpdatedAt() time.Time { return n.updatedAt }

// WithContent returns a copy with new content. The apartment never changes.
func (n Notice) WithContent(title, body string, published, pinned bool) (Notice, error) {
	updated, err := NewNotice(n.apartmentID, title, body, published, pinned)
	if err != nil {
		return Notice{}, err
	}
	updated.id = n.id
	updated.createdAt = n.createdAt
	return updated, nil
}

// WithID returns a copy with the specified ID.
func (n Notice) WithID(id int64) Notice {
	n.id = id
	return n
}

var dialogKeyPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_.-]{0,63}$`)

// Dialog is a message shown in a modal, looked up by key from the app
// (for example "signup.pending").
type Dialog struct {
	id        int64
	key       string
	title     string
	message   string
	active    bool
	updatedAt time.Time
}

// NewDialog creates a Dialog.
func NewDialog(key, title, message string, active bool) (Dialog, error) {
	key = strings.TrimSpace(key)
	if !dialogKeyPattern.MatchString(key) {
		return Dialog{}, fmt.Errorf("%w: invalid dialog key %q", domain.ErrValidation, key)
	}
	if strings.TrimSpace(message) == "" {
		return Dialog{}, fmt.Errorf("%w: dialog message is required", domain.ErrValidation)
	}
	return Dialog{
		key:       key,
		title:     strings.TrimSpace(title),
		message:   message,
		active:    active,
		updatedAt: time.Now(),
	}, nil
}

// ReconstructDialog reconstructs a Dialog from persistence.
func ReconstructDialog(id int64, key, title, message string, active bool, updatedAt time.Time) Dialog {
	return Dialog{id: id, key: key, title: title, message: message, active: active, updatedAt: updatedAt}
}

func (d Dialog) ID() int64            { return d.id }
func (d Dialog) Key() string          { return d.key }
func (d Dialog) Title() string        { return d.title }
func (d Dialog) Message() string      { return d.message }
func (d Dialog) Active() bool         { return d.active }
func (d Dialog) UpdatedAt() time.Time { return d.updatedAt }

// WithID returns a copy with the specified ID.
func (d Dialog) WithID(id int64) Dialog {
	d.id = id
	return d
}

// HeaderStore persists headers.
type HeaderStore interface {
	repository.Store[Header]
}

// NoticeStore persists notices.
type NoticeStore interface {
	repository.Store[Notice]
}

// DialogStore persists dialogs.
type DialogStore interface {
	repository.Store[Dialog]
}

// WithGlobal matches rows that belong to no apartment.
func WithGlobal() repository.Option {
	return repository.WithWhere("apartment_id IS NULL")
}

// WithApartment matches the apartment's own rows, or global rows for a zero ID.
func WithApartment(apartmentID int64) repository.Option {
	if apartmentID == 0 {
		return WithGlobal()
	}
	return repository.WithApartmentID(apartmentID)
}

// WithinScope matches global rows plus rows of apartments the scope allows.
func WithinScope(scope access.Scope) repository.Option {
	if !scope.Restricted() {
		return func(q repository.Query) repository.Query { return q }
	}
	ids := scope.ApartmentIDs()
	if len(ids) == 0 {
		return WithGlobal()
	}
	return repository.WithWhere("(apartment_id IS NULL OR apartment_id IN ?)", ids)
}

// WithPublished filters notices by published flag.
func WithPublished(published bool) repository.Option {
	return repository.WithCondition("published", published)
}

// WithKey filters dialogs by key.
func WithKey(key string) repository.Option {
	return repository.WithCondition("key", key)
}
