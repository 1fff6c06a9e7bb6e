package persistence

import (
	"github.com/wooldanji/console/domain/home"
	"github.com/wooldanji/console/internal/database"
)

// HeaderStore implements home.HeaderStore using GORM.
type HeaderStore struct {
	database.Repository[home.Header, HeaderModel]
}

// NewHeaderStore creates a new HeaderStore.
func NewHeaderStore(db database.Database) HeaderStore {
	return HeaderStore{
		Repository: database.NewRepository[home.Header, HeaderModel](db, HeaderMapper{}, "header"),
	}
}

// NoticeStore implements home.NoticeStore using GORM.
type NoticeStore struct {
	database.Repository[home.Notice, NoticeModel]
}

// NewNoticeStore creates a new NoticeStore.
func NewNoticeStore(db database.Database) NoticeStore {
	return NoticeStore{
		Repository: database.NewRepository[home.Notice, NoticeModel](db, NoticeMapper{}, "notice"),
	}
}

// DialogStore implements home.DialogStore using GORM.
type DialogStore struct {
	database.Repository[home.Dialog, DialogModel]
}

// NewDialogStore creates a new DialogStore.
func NewDialogStore(db database.Database) DialogStore {
	return DialogStore{
		Repository: database.NewRepository[home.Dialog, DialogModel](db, DialogMapper{}, "dialog"),
	}
}
