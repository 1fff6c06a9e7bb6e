package account

import (
	"fmt"
	"strings"
	"time"

	"github.com/wooldanji/console/internal/domain"
)

// Status is the sign-up review status of a resident.
type Status string

// Status values.
const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusReconfirm Status = "reconfirm"
)

// ParseStatus returns the Status named by s.
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusPending, StatusApproved, StatusRejected, StatusReconfirm:
		return st, nil
	default:
		return "", fmt.Errorf("%w: unknown resident status %q", domain.ErrValidation, s)
	}
}

// Reviewable reports whether a resident in this status awaits a decision.
func (s Status) Reviewable() bool {
	return s == StatusPending || s == StatusReconfirm
}

// Resident is an end user of the resident app who lives in a unit.
type Resident struct {
	id           int64
	name         string
	phone        string
	apartmentID  int64
	buildingID   int64
	unit         string
	status       Status
	rejectReason string
	reviewedBy   int64
	reviewedAt   time.Time
	createdAt    time.Time
	updatedAt    time.Time
}

// NewResident creates a pending Resident.
func NewResident(name, phone string, apartmentID, buildingID int64, unit string) (Resident, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Resident{}, fmt.Errorf("%w: resident name is required", domain.ErrValidation)
	}
	if apartmentID == 0 {
		return Resident{}, fmt.Errorf("%w: resident apartment is required", domain.ErrValidation)
	}
	now := time.Now()
	return Resident{
		name:        name,
		phone:       strings.TrimSpace(phone),
		apartmentID: apartmentID,
		buildingID:  buildingID,
		unit:        strings.TrimSpace(unit),
		status:      StatusPending,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructResident reconstructs a Resident from persistence.
func ReconstructResident(
	id int64,
	name, phone string,
	apartmentID, buildingID int64,
	unit string,
	status Status,
	rejectReason string,
	reviewedBy int64,
	reviewedAt, createdAt, updatedAt time.Time,
) Resident {
	return Resident{
		id:           id,
		name:         name,
		phone:        phone,
		apartmentID:  apartmentID,
		buildingID:   buildingID,
		unit:         unit,
		status:       status,
		rejectReason: rejectReason,
		reviewedBy:   reviewedBy,
		reviewedAt:   reviewedAt,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (r Resident) ID() int64             { return r.id }
func (r Resident) Name() string          { return r.name }
func (r Resident) Phone() string         { return r.phone }
func (r Resident) ApartmentID() int64    { return r.apartmentID }
func (r Resident) BuildingID() int64     { return r.buildingID }
func (r Resident) Unit() string          { return r.unit }
func (r Resident) Status() Status        { return r.status }
func (r Resident) RejectReason() string  { return r.rejectReason }
func (r Resident) ReviewedBy() int64     { return r.reviewedBy }
func (r Resident) ReviewedAt() time.Time { return r.reviewedAt }
func (r Resident) CreatedAt() time.Time  { return r.createdAt }
func (r Resident) UpdatedAt() time.Time  { return r.updatedAt }

// Approve moves a pending or reconfirm resident to approved.
func (r Resident) Approve(reviewer int64) (Resident, error) {
	if !r.status.Reviewable() {
		return Resident{}, r.transitionError(StatusApproved)
	}
	r.status = StatusApproved
	r.rejectReason = ""
	return r.reviewed(reviewer), nil
}

// Reject moves a pending or reconfirm resident to rejected. A reason is required.
func (r Resident) Reject(reviewer int64, reason string) (Resident, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return Resident{}, fmt.Errorf("%w: reject reason is required", domain.ErrValidation)
	}
	if !r.status.Reviewable() {
		return Resident{}, r.transitionError(StatusRejected)
	}
	r.status = StatusRejected
	r.rejectReason = reason
	return r.reviewed(reviewer), nil
}

// RequestReconfirm asks an approved resident to confirm their details again.
func (r Resident) RequestReconfirm(reviewer int64) (Resident, error) {
	if r.status != StatusApproved {
		return Resident{}, r.transitionError(StatusReconfirm)
	}
	r.status = StatusReconfirm
	return r.reviewed(reviewer), nil
}

// WithID returns a copy with the specified ID.
func (r Resident) WithID(id int64) Resident {
	r.id = id
	return r
}

func (r Resident) reviewed(reviewer int64) Resident {
	now := time.Now()
	r.reviewedBy = reviewer
	r.reviewedAt = now
	r.updatedAt = now
	return r
}

func (r Resident) transitionError(to Status) error {
	return fmt.Errorf("%w: resident %d cannot move from %s to %s", domain.ErrConflict, r.id, r.status, to)
}
