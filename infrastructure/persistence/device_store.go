package persistence

import (
	"github.com/wooldanji/console/domain/apartment"
	"github.com/wooldanji/console/internal/database"
)

// DeviceStore implements apartment.DeviceStore using GORM.
type DeviceStore struct {
	database.Repository[apartment.Device, DeviceModel]
}

// NewDeviceStore creates a new DeviceStore.
func NewDeviceStore(db database.Database) DeviceStore {
	return DeviceStore{
		Repository: database.NewRepository[apartment.Device, DeviceModel](db, DeviceMapper{}, "device"),
	}
}
