package account

import (
	"context"

	"github.com/wooldanji/console/domain/repository"
)

// StaffStore persists staff accounts and their apartment assignments.
type StaffStore interface {
	repository.Store[Staff]

	// Assignments returns the apartment IDs assigned to the staff member.
	Assignments(ctx context.Context, staffID int64) ([]int64, error)

	// ReplaceAssignments replaces every assignment of the staff member in
	// one transaction.
	ReplaceAssignments(ctx context.Context, staffID int64, apartmentIDs []int64) error
}

// ResidentStore persists residents.
type ResidentStore interface {
	repository.Store[Resident]
}

// WithEmail filters staff by email.
func WithEmail(email string) repository.Option {
	return repository.WithCondition("email", email)
}

// WithStatus filters residents by status.
func WithStatus(status Status) repository.Option {
	return repository.WithCondition("status", string(status))
}
