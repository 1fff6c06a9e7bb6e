package persistence

import (
	"context"

	"github.com/wooldanji/console/domain/apartment"
	"github.com/wooldanji/console/internal/database"
	"gorm.io/gorm"
)

// BuildingStore implements apartment.BuildingStore using GORM.
type BuildingStore struct {
	database.Repository[apartment.Building, BuildingModel]
}

// NewBuildingStore creates a new BuildingStore.
func NewBuildingStore(db database.Database) BuildingStore {
	return BuildingStore{
		Repository: database.NewRepository[apartment.Building, BuildingModel](db, BuildingMapper{}, "building"),
	}
}

// DeleteCascade removes a building with its lines. Devices and residents
// that referenced the building are kept but unbound from it.
func (s BuildingStore) DeleteCascade(ctx context.Context, b apartment.Building) error {
	return database.WithTransaction(ctx, s.Database(), func(tx *gorm.DB) error {
		if err := tx.Where("building_id = ?", b.ID()).Delete(&LineModel{}).Error; err != nil {
			return database.WriteError("delete building lines", err)
		}
		unbind := map[string]any{"building_id": nil, "line_id": nil}
		if err := tx.Model(&DeviceModel{}).Where("building_id = ?", b.ID()).Updates(unbind).Error; err != nil {
			return database.WriteError("unbind building devices", err)
		}
		if err := tx.Model(&ResidentModel{}).Where("building_id = ?", b.ID()).Update("building_id", nil).Error; err != nil {
			return database.WriteError("unbind building residents", err)
		}
		if err := tx.Delete(&BuildingModel{}, b.ID()).Error; err != nil {
			return database.WriteError("delete building", err)
		}
		return nil
	})
}
