package persistence

import (
	"context"

	"github.com/wooldanji/console/domain/apartment"
	"github.com/wooldanji/console/internal/database"
	"gorm.io/gorm"
)

// ApartmentStore implements apartment.ApartmentStore using GORM.
type ApartmentStore struct {
	database.Repository[apartment.Apartment, ApartmentModel]
}

// NewApartmentStore creates a new ApartmentStore.
func NewApartmentStore(db database.Database) ApartmentStore {
	return ApartmentStore{
		Repository: database.NewRepository[apartment.Apartment, ApartmentModel](db, ApartmentMapper{}, "apartment"),
	}
}

// DeleteCascade removes an apartment and everything structural under it.
func (s ApartmentStore) DeleteCascade(ctx context.Context, a apartment.Apartment) error {
	return database.WithTransaction(ctx, s.Database(), func(tx *gorm.DB) error {
		var buildingIDs []int64
		if err := tx.Model(&BuildingModel{}).Where("apartment_id = ?", a.ID()).Pluck("id", &buildingIDs).Error; err != nil {
			return database.WriteError("list apartment buildings", err)
		}
		if len(buildingIDs) > 0 {
			if err := tx.Where("building_id IN ?", buildingIDs).Delete(&LineModel{}).Error; err != nil {
				return database.WriteError("delete apartment lines", err)
			}
		}

		scoped := []struct {
			label string
			model any
		}{
			{"devices", &DeviceModel{}},
			{"buildings", &BuildingModel{}},
			{"staff assignments", &StaffApartmentModel{}},
			{"headers", &HeaderModel{}},
			{"notices", &NoticeModel{}},
		}
		for _, sc := range scoped {
			if err := tx.Where("apartment_id = ?", a.ID()).Delete(sc.model).Error; err != nil {
				return database.WriteError("delete apartment "+sc.label, err)
			}
		}

		if err := tx.Delete(&ApartmentModel{}, a.ID()).Error; err != nil {
			return database.WriteError("delete apartment", err)
		}
		return nil
	})
}
