package domain

import (
	"strings"
	"time"
)

// ItemType is the kind of entry placed on a crew-day.
type ItemType string

const (
	ItemTypeJob       ItemType = "job"
	ItemTypeOperative ItemType = "operative"
	ItemTypeAssistant ItemType = "assistant"
	ItemTypeNote      ItemType = "note"
)

// IsValid reports whether t is a known item type.
func (t ItemType) IsValid() bool {
	switch t {
	case ItemTypeJob, ItemTypeOperative, ItemTypeAssistant, ItemTypeNote:
		return true
	}
	return false
}

// ApprovalStatus is the booking approval state. Pending is the only non-terminal state.
type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "pending"
	StatusApproved ApprovalStatus = "approved"
	StatusRejected ApprovalStatus = "rejected"
)

// IsValid reports whether s is one of the three workflow states.
func (s ApprovalStatus) IsValid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// JobStatus is orthogonal to ApprovalStatus.
type JobStatus string

const (
	JobStatusFree      JobStatus = "free"
	JobStatusBooked    JobStatus = "booked"
	JobStatusCancelled JobStatus = "cancelled"
)

const (
	// FreeSlotCustomer marks a synthetic capacity placeholder.
	FreeSlotCustomer = "FREE_SLOT"
	// PlaceholderIDPrefix prefixes every synthetic placeholder id.
	PlaceholderIDPrefix = "free-"
	// WorkdayHours is the length of a crew-day.
	WorkdayHours = 8
	// DateLayout is the calendar-day format used in keys and query params.
	DateLayout = "2006-01-02"
)

// ScheduleItem is a booking, assignment or note on a crew-day.
type ScheduleItem struct {
	ItemID          string         `json:"id"`
	OrganizationID  string         `json:"organizationID"`
	DepotID         string         `json:"depotID"`
	CrewID          string         `json:"crewID"`
	Type            ItemType       `json:"type"`
	Date            time.Time      `json:"date"`
	StartTime       *string        `json:"startTime,omitempty"`
	Status          ApprovalStatus `json:"status"`
	JobStatus       JobStatus      `json:"jobStatus,omitempty"`
	Duration        *float64       `json:"duration,omitempty"` // hours, jobs only
	Position        int            `json:"position"`
	Customer        string         `json:"customer,omitempty"`
	Address         string         `json:"address,omitempty"`
	Description     string         `json:"description,omitempty"`
	EmployeeID      *string        `json:"employeeID,omitempty"`
	VehicleID       *string        `json:"vehicleID,omitempty"`
	NoteContent     string         `json:"noteContent,omitempty"`
	ApprovedBy      *string        `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time     `json:"approvedAt,omitempty"`
	RejectedBy      *string        `json:"rejectedBy,omitempty"`
	RejectedAt      *time.Time     `json:"rejectedAt,omitempty"`
	RejectionReason *string        `json:"rejectionReason,omitempty"`
	AuditFields
}

// IsJob reports whether the item is a job.
func (s ScheduleItem) IsJob() bool {
	return s.Type == ItemTypeJob
}

// IsPlaceholder reports whether the item is a synthetic FREE_SLOT placeholder.
func (s ScheduleItem) IsPlaceholder() bool {
	return s.Type == ItemTypeJob && s.Customer == FreeSlotCustomer
}

// Key returns the crew-day the item sits on.
func (s ScheduleItem) Key() CrewDayKey {
	return NewCrewDayKey(s.CrewID, s.Date)
}

// CrewDayKey identifies one crew on one calendar day.
type CrewDayKey struct {
	CrewID string
	Date   string // DateLayout
}

func NewCrewDayKey(crewID string, date time.Time) CrewDayKey {
	return CrewDayKey{CrewID: crewID, Date: date.Format(DateLayout)}
}

func (k CrewDayKey) String() string {
	return k.CrewID + "-" + k.Date
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ParseDate parses a calendar day in DateLayout, tolerating a trailing time component.
func ParseDate(value string) (time.Time, error) {
	if i := strings.IndexByte(value, 'T'); i > 0 {
		value = value[:i]
	}
	return time.Parse(DateLayout, value)
}

// Float64Ptr is a helper for optional durations.
func Float64Ptr(v float64) *float64 {
	return &v
}

// StringPtr is a helper for optional string fields.
func StringPtr(v string) *string {
	return &v
}
