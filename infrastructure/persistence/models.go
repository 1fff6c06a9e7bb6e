package persistence

import (
	"time"
)

// ApartmentModel represents an apartment complex in the database.
type ApartmentModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"column:name;uniqueIndex;size:255"`
	Address   string    `gorm:"column:address;size:1024"`
	Code      string    `gorm:"column:code;uniqueIndex;size:64"`
	Memo      string    `gorm:"column:memo;type:text"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName returns the table name.
func (ApartmentModel) TableName() string {
	return "apartments"
}

// BuildingModel represents a building of an apartment complex.
type BuildingModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	ApartmentID int64     `gorm:"column:apartment_id;uniqueIndex:idx_building_apartment_name"`
	Name        string    `gorm:"column:name;uniqueIndex:idx_building_apartment_name;size:64"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

// TableName returns the table name.
func (BuildingModel) TableName() string {
	return "apartment_buildings"
}

// LineModel represents one line group of a building. Lines is stored as a
// JSON integer array.
type LineModel struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	BuildingID int64     `gorm:"column:building_id;index"`
	Lines      []int     `gorm:"column:lines;serializer:json;type:text"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

// TableName returns the table name.
func (LineModel) TableName() string {
	return "building_lines"
}

// DeviceModel represents an access device.
type DeviceModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	ApartmentID int64     `gorm:"column:apartment_id;index"`
	BuildingID  *int64    `gorm:"column:building_id;index"`
	LineID      *int64    `gorm:"column:line_id;index"`
	Name        string    `gorm:"column:name;size:255"`
	Serial      string    `gorm:"column:serial;uniqueIndex;size:128"`
	Kind        string    `gorm:"column:kind;size:32"`
	Enabled     bool      `gorm:"column:enabled"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

// TableName returns the table name.
func (DeviceModel) TableName() string {
	return "devices"
}

// StaffModel represents a console operator account.
type StaffModel struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	Email        string    `gorm:"column:email;uniqueIndex;size:255"`
	Name         string    `gorm:"column:name;size:255"`
	PasswordHash string    `gorm:"column:password_hash;size:255"`
	Role         string    `gorm:"column:role;size:32"`
	Active       bool      `gorm:"column:active"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

// TableName returns the table name.
func (StaffModel) TableName() string {
	return "staff"
}

// StaffApartmentModel assigns a manager to an apartment.
type StaffApartmentModel struct {
	StaffID     int64     `gorm:"column:staff_id;primaryKey"`
	ApartmentID int64     `gorm:"column:apartment_id;primaryKey;index"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

// TableName returns the table name.
func (StaffApartmentModel) TableName() string {
	return "staff_apartments"
}

// ResidentModel represents a resident app user.
type ResidentModel struct {
	ID           int64      `gorm:"primaryKey;autoIncrement"`
	Name         string     `gorm:"column:name;size:255"`
	Phone        string     `gorm:"column:phone;size:32"`
	ApartmentID  int64      `gorm:"column:apartment_id;index"`
	BuildingID   *int64     `gorm:"column:building_id;index"`
	Unit         string     `gorm:"column:unit;size:32"`
	Status       string     `gorm:"column:status;index;size:32"`
	RejectReason string     `gorm:"column:reject_reason;type:text"`
	ReviewedBy   *int64     `gorm:"column:reviewed_by"`
	ReviewedAt   *time.Time `gorm:"column:reviewed_at"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

// TableName returns the table name.
func (ResidentModel) TableName() string {
	return "residents"
}

// InquiryModel represents a resident inquiry.
type InquiryModel struct {
	ID          int64      `gorm:"primaryKey;autoIncrement"`
	ResidentID  int64      `gorm:"column:resident_id;index"`
	ApartmentID int64      `gorm:"column:apartment_id;index"`
	Title       string     `gorm:"column:title;size:255"`
	Content     string     `gorm:"column:content;type:text"`
	Status      string     `gorm:"column:status;index;size:32"`
	Answer      string     `gorm:"column:answer;type:text"`
	AnsweredBy  *int64     `gorm:"column:answered_by"`
	AnsweredAt  *time.Time `gorm:"column:answered_at"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}

// TableName returns the table name.
func (InquiryModel) TableName() string {
	return "inquiries"
}

// HeaderModel represents the home-screen header of one apartment, or the
// global header when ApartmentID is nil.
type HeaderModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	ApartmentID *int64    `gorm:"column:apartment_id;uniqueIndex"`
	Text        string    `gorm:"column:text;type:text"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

// TableName returns the table name.
func (HeaderModel) TableName() string {
	return "home_headers"
}

// NoticeModel represents a home-screen notice.
type NoticeModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	ApartmentID *int64    `gorm:"column:apartment_id;index"`
	Title       string    `gorm:"column:title;size:255"`
	Body        string    `gorm:"column:body;type:text"`
	Published   bool      `gorm:"column:published;index"`
	Pinned      bool      `gorm:"column:pinned"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

// TableName returns the table name.
func (NoticeModel) TableName() string {
	return "home_notices"
}

// DialogModel represents a keyed dialog message.
type DialogModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Key       string    `gorm:"column:key;uniqueIndex;size:64"`
	Title     string    `gorm:"column:title;size:255"`
	Message   string    `gorm:"column:message;type:text"`
	Active    bool      `gorm:"column:active"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName returns the table name.
func (DialogModel) TableName() string {
	return "home_dialogs"
}
