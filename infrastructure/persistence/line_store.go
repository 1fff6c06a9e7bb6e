package persistence

import (
	"context"
	"fmt"

	"github.com/wooldanji/console/domain/apartment"
	"github.com/wooldanji/console/internal/database"
	"gorm.io/gorm"
)

// LineStore implements apartment.LineStore using GORM.
type LineStore struct {
	database.Repository[apartment.Line, LineModel]
}

// NewLineStore creates a new LineStore.
func NewLineStore(db database.Database) LineStore {
	return LineStore{
		Repository: database.NewRepository[apartment.Line, LineModel](db, LineMapper{}, "line"),
	}
}

// SaveChecked locks the building, runs check against its stored lines and
// then creates or updates every line, all in one transaction.
func (s LineStore) SaveChecked(ctx context.Context, buildingID int64, lines []apartment.Line, check func(existing []apartment.Line) error) ([]apartment.Line, error) {
	db := s.Database()
	return database.WithTransactionResult(ctx, db, func(tx *gorm.DB) ([]apartment.Line, error) {
		if err := database.LockRow(tx, db, &BuildingModel{}, buildingID); err != nil {
			return nil, fmt.Errorf("lock building: %w", err)
		}

		if check != nil {
			var models []LineModel
			if err := tx.Where("building_id = ?", buildingID).Order("id ASC").Find(&models).Error; err != nil {
				return nil, fmt.Errorf("find building lines: %w", err)
			}
			existing := make([]apartment.Line, len(models))
			for i, m := range models {
				existing[i] = s.Mapper().ToDomain(m)
			}
			if err := check(existing); err != nil {
				return nil, err
			}
		}

		saved := make([]apartment.Line, 0, len(lines))
		for _, l := range lines {
			model := s.Mapper().ToModel(l)
			if err := tx.Save(&model).Error; err != nil {
				return nil, database.WriteError("save line", err)
			}
			saved = append(saved, s.Mapper().ToDomain(model))
		}
		return saved, nil
	})
}

// DeleteUnbinding removes a line and unbinds devices that pointed at it.
func (s LineStore) DeleteUnbinding(ctx context.Context, l apartment.Line) error {
	return database.WithTransaction(ctx, s.Database(), func(tx *gorm.DB) error {
		if err := tx.Model(&DeviceModel{}).Where("line_id = ?", l.ID()).Update("line_id", nil).Error; err != nil {
			return database.WriteError("unbind line devices", err)
		}
		if err := tx.Delete(&LineModel{}, l.ID()).Error; err != nil {
			return database.WriteError("delete line", err)
		}
		return nil
	})
}
