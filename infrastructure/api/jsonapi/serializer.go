package jsonapi

import (
	"time"

	"github.com/wooldanji/console/domain/access"
	"github.com/wooldanji/console/domain/account"
	"github.com/wooldanji/console/domain/apartment"
	"github.com/wooldanji/console/domain/home"
	"github.com/wooldanji/console/domain/inquiry"
)

// Resource type names.
const (
	TypeApartment = "apartment"
	TypeBuilding  = "building"
	TypeLine      = "line"
	TypeDevice    = "device"
	TypeResident  = "resident"
	TypeInquiry   = "inquiry"
	TypeHeader    = "header"
	TypeNotice    = "notice"
	TypeDialog    = "dialog"
	TypeStaff     = "staff"
	TypeSession   = "session"
	TypeDashboard = "dashboard"
	TypePreview   = "line_preview"
)

// ApartmentAttributes represents apartment attributes in JSON:API format.
type ApartmentAttributes struct {
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Code      string    `json:"code"`
	Memo      string    `json:"memo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BuildingAttributes represents building attributes in JSON:API format.
type BuildingAttributes struct {
	ApartmentID int64     `json:"apartment_id"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LineAttributes represents a building line group in JSON:API format.
type LineAttributes struct {
	BuildingID int64     `json:"building_id"`
	Numbers    []int     `json:"numbers"`
	Label      string    `json:"label"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// DeviceAttributes represents device attributes in JSON:API format.
type DeviceAttributes struct {
	ApartmentID int64     `json:"apartment_id"`
	BuildingID  int64     `json:"building_id,omitempty"`
	LineID      int64     `json:"line_id,omitempty"`
	Name        string    `json:"name"`
	Serial      string    `json:"serial"`
	Kind        string    `json:"kind"`
	Enabled     bool      `json:"enabled"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ResidentAttributes represents resident attributes in JSON:API format.
type ResidentAttributes struct {
	Name         string     `json:"name"`
	Phone        string     `json:"phone"`
	ApartmentID  int64      `json:"apartment_id"`
	BuildingID   int64      `json:"building_id,omitempty"`
	Unit         string     `json:"unit"`
	Status       string     `json:"status"`
	RejectReason string     `json:"reject_reason,omitempty"`
	ReviewedBy   int64      `json:"reviewed_by,omitempty"`
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// InquiryAttributes represents inquiry attributes in JSON:API format.
type InquiryAttributes struct {
	ResidentID  int64      `json:"resident_id"`
	ApartmentID int64      `json:"apartment_id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Status      string     `json:"status"`
	Answer      string     `json:"answer,omitempty"`
	AnsweredBy  int64      `json:"answered_by,omitempty"`
	AnsweredAt  *time.Time `json:"answered_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// HeaderAttributes represents home header text in JSON:API format.
type HeaderAttributes struct {
	ApartmentID int64      `json:"apartment_id,omitempty"`
	Global      bool       `json:"global"`
	Text        string     `json:"text"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// NoticeAttributes represents notice attributes in JSON:API format.
type NoticeAttributes struct {
	ApartmentID int64     `json:"apartment_id,omitempty"`
	Global      bool      `json:"global"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Published   bool      `json:"published"`
	Pinned      bool      `json:"pinned"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DialogAttributes represents dialog message attributes in JSON:API format.
type DialogAttributes struct {
	Key       string    `json:"key"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Active    bool      `json:"active"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StaffAttributes represents staff attributes in JSON:API format.
type StaffAttributes struct {
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Active       bool      `json:"active"`
	ApartmentIDs []int64   `json:"apartment_ids,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SessionAttributes describes the authenticated caller.
type SessionAttributes struct {
	Name         string     `json:"name"`
	Role         string     `json:"role"`
	System       bool       `json:"system"`
	ApartmentIDs []int64    `json:"apartment_ids"`
	Token        string     `json:"token,omitempty"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
}

// DashboardAttributes holds the console summary counters.
type DashboardAttributes struct {
	Apartments       int64 `json:"apartments"`
	Devices          int64 `json:"devices"`
	PendingResidents int64 `json:"pending_residents"`
	OpenInquiries    int64 `json:"open_inquiries"`
}

// PreviewAttributes shows how line text parses.
type PreviewAttributes struct {
	Text     string   `json:"text"`
	Groups   [][]int  `json:"groups"`
	Labels   []string `json:"labels"`
	Rejected []string `json:"rejected"`
	Set      []int    `json:"set"`
}

// Serializer converts domain objects to JSON:API resources.
type Serializer struct{}

// NewSerializer creates a new Serializer.
func NewSerializer() *Serializer {
	return &Serializer{}
}

// ApartmentResource converts an apartment to a JSON:API resource.
func (s *Serializer) ApartmentResource(a apartment.Apartment) *Resource {
	return NewResource(TypeApartment, a.ID(), &ApartmentAttributes{
		Name:      a.Name(),
		Address:   a.Address(),
		Code:      a.Code(),
		Memo:      a.Memo(),
		CreatedAt: a.CreatedAt(),
		UpdatedAt: a.UpdatedAt(),
	})
}

// ApartmentResources converts multiple apartments to JSON:API resources.
func (s *Serializer) ApartmentResources(apartments []apartment.Apartment) []*Resource {
	return convert(apartments, s.ApartmentResource)
}

// BuildingResource converts a building to a JSON:API resource.
func (s *Serializer) BuildingResource(b apartment.Building) *Resource {
	return NewResource(TypeBuilding, b.ID(), &BuildingAttributes{
		ApartmentID: b.ApartmentID(),
		Name:        b.Name(),
		CreatedAt:   b.CreatedAt(),
		UpdatedAt:   b.UpdatedAt(),
	}).Relate("apartment", TypeApartment, b.ApartmentID())
}

// BuildingResources converts multiple buildings to JSON:API resources.
func (s *Serializer) BuildingResources(buildings []apartment.Building) []*Resource {
	return convert(buildings, s.BuildingResource)
}

// LineResource converts a line group to a JSON:API resource.
func (s *Serializer) LineResource(l apartment.Line) *Resource {
	return NewResource(TypeLine, l.ID(), &LineAttributes{
		BuildingID: l.BuildingID(),
		Numbers:    l.Numbers(),
		Label:      l.Label(),
		CreatedAt:  l.CreatedAt(),
		UpdatedAt:  l.UpdatedAt(),
	}).Relate("building", TypeBuilding, l.BuildingID())
}

// LineResources converts multiple line groups to JSON:API resources.
func (s *Serializer) LineResources(lines []apartment.Line) []*Resource {
	return convert(lines, s.LineResource)
}

// DeviceResource converts a device to a JSON:API resource.
func (s *Serializer) DeviceResource(d apartment.Device) *Resource {
	return NewResource(TypeDevice, d.ID(), &DeviceAttributes{
		ApartmentID: d.ApartmentID(),
		BuildingID:  d.BuildingID(),
		LineID:      d.LineID(),
		Name:        d.Name(),
		Serial:      d.Serial(),
		Kind:        string(d.Kind()),
		Enabled:     d.Enabled(),
		CreatedAt:   d.CreatedAt(),
		UpdatedAt:   d.UpdatedAt(),
	}).
		Relate("apartment", TypeApartment, d.ApartmentID()).
		Relate("building", TypeBuilding, d.BuildingID()).
		Relate("line", TypeLine, d.LineID())
}

// DeviceResources converts multiple devices to JSON:API resources.
func (s *Serializer) DeviceResources(devices []apartment.Device) []*Resource {
	return convert(devices, s.DeviceResource)
}

// ResidentResource converts a resident to a JSON:API resource.
func (s *Serializer) ResidentResource(r account.Resident) *Resource {
	return NewResource(TypeResident, r.ID(), &ResidentAttributes{
		Name:         r.Name(),
		Phone:        r.Phone(),
		ApartmentID:  r.ApartmentID(),
		BuildingID:   r.BuildingID(),
		Unit:         r.Unit(),
		Status:       string(r.Status()),
		RejectReason: r.RejectReason(),
		ReviewedBy:   r.ReviewedBy(),
		ReviewedAt:   optionalTime(r.ReviewedAt()),
		CreatedAt:    r.CreatedAt(),
		UpdatedAt:    r.UpdatedAt(),
	}).Relate("apartment", TypeApartment, r.ApartmentID())
}

// ResidentResources converts multiple residents to JSON:API resources.
func (s *Serializer) ResidentResources(residents []account.Resident) []*Resource {
	return convert(residents, s.ResidentResource)
}

// InquiryResource converts an inquiry to a JSON:API resource.
func (s *Serializer) InquiryResource(i inquiry.Inquiry) *Resource {
	return NewResource(TypeInquiry, i.ID(), &InquiryAttributes{
		ResidentID:  i.ResidentID(),
		ApartmentID: i.ApartmentID(),
		Title:       i.Title(),
		Content:     i.Content(),
		Status:      string(i.Status()),
		Answer:      i.Answer(),
		AnsweredBy:  i.AnsweredBy(),
		AnsweredAt:  optionalTime(i.AnsweredAt()),
		CreatedAt:   i.CreatedAt(),
		UpdatedAt:   i.UpdatedAt(),
	}).Relate("resident", TypeResident, i.ResidentID())
}

// InquiryResources converts multiple inquiries to JSON:API resources.
func (s *Serializer) InquiryResources(inquiries []inquiry.Inquiry) []*Resource {
	return convert(inquiries, s.InquiryResource)
}

// HeaderResource converts header text to a JSON:API resource.
func (s *Serializer) HeaderResource(h home.Header) *Resource {
	return NewResource(TypeHeader, h.ID(), &HeaderAttributes{
		ApartmentID: h.ApartmentID(),
		Global:      h.Global(),
		Text:        h.Text(),
		UpdatedAt:   optionalTime(h.UpdatedAt()),
	})
}

// NoticeResource converts a notice to a JSON:API resource.
func (s *Serializer) NoticeResource(n home.Notice) *Resource {
	return NewResource(TypeNotice, n.ID(), &NoticeAttributes{
		ApartmentID: n.ApartmentID(),
		Global:      n.Global(),
		Title:       n.Title(),
		Body:        n.Body(),
		Published:   n.Published(),
		Pinned:      n.Pinned(),
		CreatedAt:   n.CreatedAt(),
		UpdatedAt:   n.UpdatedAt(),
	})
}

// NoticeResources converts multiple notices to JSON:API resources.
func (s *Serializer) NoticeResources(notices []home.Notice) []*Resource {
	return convert(notices, s.NoticeResource)
}

// DialogResource converts a dialog message to a JSON:API resource.
func (s *Serializer) DialogResource(d home.Dialog) *Resource {
	return NewResource(TypeDialog, d.ID(), &DialogAttributes{
		Key:       d.Key(),
		Title:     d.Title(),
		Message:   d.Message(),
		Active:    d.Active(),
		UpdatedAt: d.UpdatedAt(),
	})
}

// DialogResources converts multiple dialog messages to JSON:API resources.
func (s *Serializer) DialogResources(dialogs []home.Dialog) []*Resource {
	return convert(dialogs, s.DialogResource)
}

// StaffResource converts a staff account to a JSON:API resource.
// The password hash is never serialized.
func (s *Serializer) StaffResource(st account.Staff, apartmentIDs []int64) *Resource {
	return NewResource(TypeStaff, st.ID(), &StaffAttributes{
		Email:        st.Email(),
		Name:         st.Name(),
		Role:         string(st.Role()),
		Active:       st.Active(),
		ApartmentIDs: apartmentIDs,
		CreatedAt:    st.CreatedAt(),
		UpdatedAt:    st.UpdatedAt(),
	})
}

// StaffResources converts multiple staff accounts to JSON:API resources.
func (s *Serializer) StaffResources(staff []account.Staff) []*Resource {
	return convert(staff, func(st account.Staff) *Resource {
		return s.StaffResource(st, nil)
	})
}

// SessionResource describes the authenticated principal, with the issued
// token when there is one.
func (s *Serializer) SessionResource(p access.Principal, token string, expiresAt time.Time) *Resource {
	ids := p.ApartmentIDs()
	if ids == nil {
		ids = []int64{}
	}
	return NewResource(TypeSession, p.StaffID(), &SessionAttributes{
		Name:         p.Name(),
		Role:         string(p.Role()),
		System:       p.IsSystem(),
		ApartmentIDs: ids,
		Token:        token,
		ExpiresAt:    optionalTime(expiresAt),
	})
}

// DashboardResource converts the summary counters to a JSON:API resource.
func (s *Serializer) DashboardResource(attrs DashboardAttributes) *Resource {
	return &Resource{Type: TypeDashboard, ID: "summary", Attributes: &attrs}
}

// PreviewResource wraps a line preview.
func (s *Serializer) PreviewResource(attrs PreviewAttributes) *Resource {
	return &Resource{Type: TypePreview, ID: "preview", Attributes: &attrs}
}

func convert[T any](items []T, fn func(T) *Resource) []*Resource {
	resources := make([]*Resource, len(items))
	for i, item := range items {
		resources[i] = fn(item)
	}
	return resources
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
