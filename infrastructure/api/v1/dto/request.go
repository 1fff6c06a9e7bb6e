// Package dto holds the request and response bodies of the v1 API.
package dto

// Request is a JSON:API request document carrying attributes of type T.
type Request[T any] struct {
	Data RequestData[T] `json:"data"`
}

// RequestData is the data member of a Request.
type RequestData[T any] struct {
	Type       string `json:"type"`
	Attributes T      `json:"attributes"`
}

// LoginAttributes are the credentials for POST /auth/login.
type LoginAttributes struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ApartmentAttributes creates or updates an apartment.
type ApartmentAttributes struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Code    string `json:"code"`
	Memo    string `json:"memo"`
}

// BuildingAttributes creates or renames a building.
type BuildingAttributes struct {
	Name string `json:"name"`
}

// LineTextAttributes carries operator-typed line text such as "1~2, 3~4".
type LineTextAttributes struct {
	Text string `json:"text"`
}

// DeviceCreateAttributes registers a device.
type DeviceCreateAttributes struct {
	ApartmentID int64  `json:"apartment_id"`
	BuildingID  int64  `json:"building_id"`
	LineID      int64  `json:"line_id"`
	Name        string `json:"name"`
	Serial      string `json:"serial"`
	Kind        string `json:"kind"`
}

// DeviceUpdateAttributes changes a device. Enabled defaults to true when
// omitted.
type DeviceUpdateAttributes struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Enabled *bool  `json:"enabled"`
}

// ResidentCreateAttributes records a resident sign-up.
type ResidentCreateAttributes struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	ApartmentID int64  `json:"apartment_id"`
	BuildingID  int64  `json:"building_id"`
	Unit        string `json:"unit"`
}

// RejectAttributes carries the reason a resident sign-up is rejected.
type RejectAttributes struct {
	Reason string `json:"reason"`
}

// InquiryCreateAttributes opens an inquiry on behalf of a resident.
type InquiryCreateAttributes struct {
	ResidentID int64  `json:"resident_id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
}

// AnswerAttributes answers an inquiry.
type AnswerAttributes struct {
	Answer string `json:"answer"`
}

// HeaderAttributes sets home header text. A zero apartment_id targets the
// global header.
type HeaderAttributes struct {
	ApartmentID int64  `json:"apartment_id"`
	Text        string `json:"text"`
}

// NoticeAttributes creates or updates a notice.
type NoticeAttributes struct {
	ApartmentID int64  `json:"apartment_id"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	Published   bool   `json:"published"`
	Pinned      bool   `json:"pinned"`
}

// DialogAttributes creates or replaces the dialog message stored under a key.
type DialogAttributes struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Active  bool   `json:"active"`
}

// StaffCreateAttributes creates a staff account.
type StaffCreateAttributes struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// AssignmentAttributes replaces a manager's apartment assignments.
type AssignmentAttributes struct {
	ApartmentIDs []int64 `json:"apartment_ids"`
}
