package persistence

import (
	"github.com/wooldanji/console/domain/inquiry"
	"github.com/wooldanji/console/internal/database"
)

// InquiryStore implements inquiry.Store using GORM.
type InquiryStore struct {
	database.Repository[inquiry.Inquiry, InquiryModel]
}

// NewInquiryStore creates a new InquiryStore.
func NewInquiryStore(db database.Database) InquiryStore {
	return InquiryStore{
		Repository: database.NewRepository[inquiry.Inquiry, InquiryModel](db, InquiryMapper{}, "inquiry"),
	}
}
