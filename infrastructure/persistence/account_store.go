package persistence

import (
	"context"
	"slices"
	"time"

	"github.com/wooldanji/console/domain/account"
	"github.com/wooldanji/console/internal/database"
	"gorm.io/gorm"
)

// StaffStore implements account.StaffStore using GORM.
type StaffStore struct {
	database.Repository[account.Staff, StaffModel]
}

// NewStaffStore creates a new StaffStore.
func NewStaffStore(db database.Database) StaffStore {
	return StaffStore{
		Repository: database.NewRepository[account.Staff, StaffModel](db, StaffMapper{}, "staff"),
	}
}

// Assignments returns the apartment IDs assigned to a staff member, ascending.
func (s StaffStore) Assignments(ctx context.Context, staffID int64) ([]int64, error) {
	var ids []int64
	err := s.DB(ctx).Model(&StaffApartmentModel{}).
		Where("staff_id = ?", staffID).
		Order("apartment_id ASC").
		Pluck("apartment_id", &ids).Error
	if err != nil {
		return nil, database.WriteError("list staff assignments", err)
	}
	return ids, nil
}

// ReplaceAssignments replaces all assignments of a staff member.
func (s StaffStore) ReplaceAssignments(ctx context.Context, staffID int64, apartmentIDs []int64) error {
	ids := slices.Clone(apartmentIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	return database.WithTransaction(ctx, s.Database(), func(tx *gorm.DB) error {
		if err := tx.Where("staff_id = ?", staffID).Delete(&StaffApartmentModel{}).Error; err != nil {
			return database.WriteError("clear staff assignments", err)
		}
		if len(ids) == 0 {
			return nil
		}
		now := time.Now()
		rows := make([]StaffApartmentModel, len(ids))
		for i, id := range ids {
			rows[i] = StaffApartmentModel{StaffID: staffID, ApartmentID: id, CreatedAt: now}
		}
		if err := tx.Create(&rows).Error; err != nil {
			return database.WriteError("create staff assignments", err)
		}
		return nil
	})
}

// ResidentStore implements account.ResidentStore using GORM.
type ResidentStore struct {
	database.Repository[account.Resident, ResidentModel]
}

// NewResidentStore creates a new ResidentStore.
func NewResidentStore(db database.Database) ResidentStore {
	return ResidentStore{
		Repository: database.NewRepository[account.Resident, ResidentModel](db, ResidentMapper{}, "resident"),
	}
}
