package persistence

import (
	"time"

	"github.com/wooldanji/console/domain/access"
	"github.com/wooldanji/console/domain/account"
	"github.com/wooldanji/console/domain/apartment"
	"github.com/wooldanji/console/domain/home"
	"github.com/wooldanji/console/domain/inquiry"
)

// ApartmentMapper maps between domain Apartment and ApartmentModel.
type ApartmentMapper struct{}

// ToDomain converts an ApartmentModel to a domain Apartment.
func (m ApartmentMapper) ToDomain(e ApartmentModel) apartment.Apartment {
	return apartment.ReconstructApartment(e.ID, e.Name, e.Address, e.Code, e.Memo, e.CreatedAt, e.UpdatedAt)
}

// ToModel converts a domain Apartment to an ApartmentModel.
func (m ApartmentMapper) ToModel(a apartment.Apartment) ApartmentModel {
	return ApartmentModel{
		ID:        a.ID(),
		Name:      a.Name(),
		Address:   a.Address(),
		Code:      a.Code(),
		Memo:      a.Memo(),
		CreatedAt: a.CreatedAt(),
		UpdatedAt: a.UpdatedAt(),
	}
}

// BuildingMapper maps between domain Building and BuildingModel.
type BuildingMapper struct{}

// ToDomain converts a BuildingModel to a domain Building.
func (m BuildingMapper) ToDomain(e BuildingModel) apartment.Building {
	return apartment.ReconstructBuilding(e.ID, e.ApartmentID, e.Name, e.CreatedAt, e.UpdatedAt)
}

// ToModel converts a domain Building to a BuildingModel.
func (m BuildingMapper) ToModel(b apartment.Building) BuildingModel {
	return BuildingModel{
		ID:          b.ID(),
		ApartmentID: b.ApartmentID(),
		Name:        b.Name(),
		CreatedAt:   b.CreatedAt(),
		UpdatedAt:   b.UpdatedAt(),
	}
}

// LineMapper maps between domain Line and LineModel.
type LineMapper struct{}

// ToDomain converts a LineModel to a domain Line.
func (m LineMapper) ToDomain(e LineModel) apartment.Line {
	return apartment.ReconstructLine(e.ID, e.BuildingID, e.Lines, e.CreatedAt, e.UpdatedAt)
}

// ToModel converts a domain Line to a LineModel.
func (m LineMapper) ToModel(l apartment.Line) LineModel {
	return LineModel{
		ID:         l.ID(),
		BuildingID: l.BuildingID(),
		Lines:      l.Numbers(),
		CreatedAt:  l.CreatedAt(),
		UpdatedAt:  l.UpdatedAt(),
	}
}

// DeviceMapper maps between domain Device and DeviceModel.
type DeviceMapper struct{}

// ToDomain converts a DeviceModel to a domain Device.
func (m DeviceMapper) ToDomain(e DeviceModel) apartment.Device {
	return apartment.ReconstructDevice(
		e.ID,
		e.ApartmentID,
		fromNullableID(e.BuildingID),
		fromNullableID(e.LineID),
		e.Name,
		e.Serial,
		apartment.DeviceKind(e.Kind),
		e.Enabled,
		e.CreatedAt,
		e.UpdatedAt,
	)
}

// ToModel converts a domain Device to a DeviceModel.
func (m DeviceMapper) ToModel(d apartment.Device) DeviceModel {
	return DeviceModel{
		ID:          d.ID(),
		ApartmentID: d.ApartmentID(),
		BuildingID:  nullableID(d.BuildingID()),
		LineID:      nullableID(d.LineID()),
		Name:        d.Name(),
		Serial:      d.Serial(),
		Kind:        string(d.Kind()),
		Enabled:     d.Enabled(),
		CreatedAt:   d.CreatedAt(),
		UpdatedAt:   d.UpdatedAt(),
	}
}

// StaffMapper maps between domain Staff and StaffModel.
type StaffMapper struct{}

// ToDomain converts a StaffModel to a domain Staff.
func (m StaffMapper) ToDomain(e StaffModel) account.Staff {
	return account.ReconstructStaff(
		e.ID,
		e.Email,
		e.Name,
		e.PasswordHash,
		access.Normalize(e.Role),
		e.Active,
		e.CreatedAt,
		e.UpdatedAt,
	)
}

// ToModel converts a domain Staff to a StaffModel.
func (m StaffMapper) ToModel(s account.Staff) StaffModel {
	return StaffModel{
		ID:           s.ID(),
		Email:        s.Email(),
		Name:         s.Name(),
		PasswordHash: s.PasswordHash(),
		Role:         string(s.Role()),
		Active:       s.Active(),
		CreatedAt:    s.CreatedAt(),
		UpdatedAt:    s.UpdatedAt(),
	}
}

// ResidentMapper maps between domain Resident and ResidentModel.
type ResidentMapper struct{}

// ToDomain converts a ResidentModel to a domain Resident.
func (m ResidentMapper) ToDomain(e ResidentModel) account.Resident {
	return account.ReconstructResident(
		e.ID,
		e.Name,
		e.Phone,
		e.ApartmentID,
		fromNullableID(e.BuildingID),
		e.Unit,
		account.Status(e.Status),
		e.RejectReason,
		fromNullableID(e.ReviewedBy),
		fromNullableTime(e.ReviewedAt),
		e.CreatedAt,
		e.UpdatedAt,
	)
}

// ToModel converts a domain Resident to a ResidentModel.
func (m ResidentMapper) ToModel(r account.Resident) ResidentModel {
	return ResidentModel{
		ID:           r.ID(),
		Name:         r.Name(),
		Phone:        r.Phone(),
		ApartmentID:  r.ApartmentID(),
		BuildingID:   nullableID(r.BuildingID()),
		Unit:         r.Unit(),
		Status:       string(r.Status()),
		RejectReason: r.RejectReason(),
		ReviewedBy:   nullableID(r.ReviewedBy()),
		ReviewedAt:   nullableTime(r.ReviewedAt()),
		CreatedAt:    r.CreatedAt(),
		UpdatedAt:    r.UpdatedAt(),
	}
}

// InquiryMapper maps between domain Inquiry and InquiryModel.
type InquiryMapper struct{}

// ToDomain converts an InquiryModel to a domain Inquiry.
func (m InquiryMapper) ToDomain(e InquiryModel) inquiry.Inquiry {
	return inquiry.ReconstructInquiry(
		e.ID,
		e.ResidentID,
		e.ApartmentID,
		e.Title,
		e.Content,
		inquiry.Status(e.Status),
		e.Answer,
		fromNullableID(e.AnsweredBy),
		fromNullableTime(e.AnsweredAt),
		e.CreatedAt,
		e.UpdatedAt,
	)
}

// ToModel converts a domain Inquiry to an InquiryModel.
func (m InquiryMapper) ToModel(i inquiry.Inquiry) InquiryModel {
	return InquiryModel{
		ID:          i.ID(),
		ResidentID:  i.ResidentID(),
		ApartmentID: i.ApartmentID(),
		Title:       i.Title(),
		Content:     i.Content(),
		Status:      string(i.Status()),
		Answer:      i.Answer(),
		AnsweredBy:  nullableID(i.AnsweredBy()),
		AnsweredAt:  nullableTime(i.AnsweredAt()),
		CreatedAt:   i.CreatedAt(),
		UpdatedAt:   i.UpdatedAt(),
	}
}

// HeaderMapper maps between domain Header and HeaderModel.
type HeaderMapper struct{}

// ToDomain converts a HeaderModel to a domain Header.
func (m HeaderMapper) ToDomain(e HeaderModel) home.Header {
	return home.ReconstructHeader(e.ID, fromNullableID(e.ApartmentID), e.Text, e.UpdatedAt)
}

// ToModel converts a domain Header to a HeaderModel.
func (m HeaderMapper) ToModel(h home.Header) HeaderModel {
	return HeaderModel{
		ID:          h.ID(),
		ApartmentID: nullableID(h.ApartmentID()),
		Text:        h.Text(),
		UpdatedAt:   h.UpdatedAt(),
	}
}

// NoticeMapper maps between domain Notice and NoticeModel.
type NoticeMapper struct{}

// ToDomain converts a NoticeModel to a domain Notice.
func (m NoticeMapper) ToDomain(e NoticeModel) home.Notice {
	return home.ReconstructNotice(
		e.ID,
		fromNullableID(e.ApartmentID),
		e.Title,
		e.Body,
		e.Published,
		e.Pinned,
		e.CreatedAt,
		e.UpdatedAt,
	)
}

// ToModel converts a domain Notice to a NoticeModel.
func (m NoticeMapper) ToModel(n home.Notice) NoticeModel {
	return NoticeModel{
		ID:          n.ID(),
		ApartmentID: nullableID(n.ApartmentID()),
		Title:       n.Title(),
		Body:        n.Body(),
		Published:   n.Published(),
		Pinned:      n.Pinned(),
		CreatedAt:   n.CreatedAt(),
		UpdatedAt:   n.UpdatedAt(),
	}
}

// DialogMapper maps between domain Dialog and DialogModel.
type DialogMapper struct{}

// ToDomain converts a DialogModel to a domain Dialog.
func (m DialogMapper) ToDomain(e DialogModel) home.Dialog {
	return home.ReconstructDialog(e.ID, e.Key, e.Title, e.Message, e.Active, e.UpdatedAt)
}

// ToModel converts a domain Dialog to a DialogModel.
func (m DialogMapper) ToModel(d home.Dialog) DialogModel {
	return DialogModel{
		ID:        d.ID(),
		Key:       d.Key(),
		Title:     d.Title(),
		Message:   d.Message(),
		Active:    d.Active(),
		UpdatedAt: d.UpdatedAt(),
	}
}

// Zero IDs and times are stored as NULL.

func nullableID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}

func fromNullableID(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func fromNullableTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
