// Package inquiry models support inquiries sent by residents.
package inquiry

import (
	"fmt"
	"strings"
	"time"

	"github.com/wooldanji/console/domain/repository"
	"github.com/wooldanji/console/internal/domain"
)

// Status is the lifecycle state of an inquiry.
type Status string

// Status values.
const (
	StatusOpen     Status = "open"
	StatusAnswered Status = "answered"
	StatusClosed   Status = "closed"
)

// ParseStatus returns the Status named by s.
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusOpen, StatusAnswered, StatusClosed:
		return st, nil
	default:
		return "", fmt.Errorf("%w: unknown inquiry status %q", domain.ErrValidation, s)
	}
}

// Inquiry is a question a resident sent to the management office.
type Inquiry struct {
	id          int64
	residentID  int64
	apartmentID int64
	title       string
	content     string
	status      Status
	answer      string
	answeredBy  int64
	answeredAt  time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

// NewInquiry creates an open Inquiry.
func NewInquiry(residentID, apartmentID int64, title, content string) (Inquiry, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Inquiry{}, fmt.Errorf("%w: inquiry title is required", domain.ErrValidation)
	}
	now := time.Now()
	return Inquiry{
		residentID:  residentID,
		apartmentID: apartmentID,
		title:       title,
		content:     content,
		status:      StatusOpen,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructInquiry reconstructs an Inquiry from persistence.
func ReconstructInquiry(
	id, residentID, apartmentID int64,
	title, content string,
	status Status,
	answer string,
	answeredBy int64,
	answeredAt, createdAt, updatedAt time.Time,
) Inquiry {
	return Inquiry{
		id:          id,
		residentID:  residentID,
		apartmentID: apartmentID,
		title:       title,
		content:     content,
		status:      status,
		answer:      answer,
		answeredBy:  answeredBy,
		answeredAt:  answeredAt,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// ID returns the inquiry ID.
func (i Inquiry) ID() int64 { return i.id }

// ResidentID returns the asking resident.
func (i Inquiry) ResidentID() int64 { return i.residentID }

// ApartmentID returns the apartment the inquiry belongs to.
func (i Inquiry) ApartmentID() int64 { return i.apartmentID }

// Title returns the subject line.
func (i Inquiry) Title() string { return i.title }

// Content returns the question body.
func (i Inquiry) Content() string { return i.content }

// Status returns the current status.
func (i Inquiry) Status() Status { return i.status }

// Answer returns the staff answer, empty until answered.
func (i Inquiry) Answer() string { return i.answer }

// AnsweredBy returns the answering staff ID.
func (i Inquiry) AnsweredBy() int64 { return i.answeredBy }

// AnsweredAt returns when the latest answer was written.
func (i Inquiry) AnsweredAt() time.Time { return i.answeredAt }

// CreatedAt returns the creation timestamp.
func (i Inquiry) CreatedAt() time.Time { return i.createdAt }

// UpdatedAt returns the last update timestamp.
func (i Inquiry) UpdatedAt() time.Time { return i.updatedAt }

// Respond records an answer. Answering again replaces the previous answer.
// Closed inquiries cannot be answered.
func (i Inquiry) Respond(staffID int64, answer string) (Inquiry, error) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return Inquiry{}, fmt.Errorf("%w: answer is required", domain.ErrValidation)
	}
	if i.status == StatusClosed {
		return Inquiry{}, fmt.Errorf("%w: inquiry %d is closed", domain.ErrConflict, i.id)
	}
	now := time.Now()
	i.status = StatusAnswered
	i.answer = answer
	i.answeredBy = staffID
	i.answeredAt = now
	i.updatedAt = now
	return i, nil
}

// Close marks the inquiry closed.
func (i Inquiry) Close() (Inquiry, error) {
	if i.status == StatusClosed {
		return Inquiry{}, fmt.Errorf("%w: inquiry %d is already closed", domain.ErrConflict, i.id)
	}
	i.status = StatusClosed
	i.updatedAt = time.Now()
	return i, nil
}

// WithID returns a copy with the specified ID.
func (i Inquiry) WithID(id int64) Inquiry {
	i.id = id
	return i
}

// Store persists inquiries.
type Store interface {
	repository.Store[Inquiry]
}

// WithStatus filters by status.
func WithStatus(status Status) repository.Option {
	return repository.WithCondition("status", string(status))
}
