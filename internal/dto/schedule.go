package dto

import (
	"fmt"
	"time"

	"github.com/SscSPs/crew_planner/internal/apperrors"
	"github.com/SscSPs/crew_planner/internal/core/domain"
	portsrepo "github.com/SscSPs/crew_planner/internal/core/ports/repositories"
)

// --- Schedule Item DTOs ---

// ScheduleItemInput carries the editable fields of a schedule item.
type ScheduleItemInput struct {
	CrewID      string   `json:"crewID" binding:"required"`
	DepotID     string   `json:"depotID"`
	Type        string   `json:"type" binding:"required,oneof=job operative assistant note"`
	Date        string   `json:"date" binding:"required"` // YYYY-MM-DD
	StartTime   *string  `json:"startTime"`
	Status      string   `json:"status"` // optional explicit approval status
	JobStatus   string   `json:"jobStatus" binding:"omitempty,oneof=free booked cancelled"`
	Duration    *float64 `json:"duration"`
	Position    int      `json:"position" binding:"min=0"`
	Customer    string   `json:"customer"`
	Address     string   `json:"address"`
	Description string   `json:"description"`
	EmployeeID  *string  `json:"employeeID"`
	VehicleID   *string  `json:"vehicleID"`
	NoteContent string   `json:"noteContent"`
}

// ToDomain converts the input into a domain item. The id is left to the caller.
func (in ScheduleItemInput) ToDomain() (domain.ScheduleItem, error) {
	date, err := domain.ParseDate(in.Date)
	if err != nil {
		return domain.ScheduleItem{}, apperrors.NewValidationFailedError(fmt.Sprintf("invalid date %q", in.Date))
	}
	return domain.ScheduleItem{
		CrewID:      in.CrewID,
		DepotID:     in.DepotID,
		Type:        domain.ItemType(in.Type),
		Date:        date,
		StartTime:   in.StartTime,
		Status:      domain.ApprovalStatus(in.Status),
		JobStatus:   domain.JobStatus(in.JobStatus),
		Duration:    in.Duration,
		Position:    in.Position,
		Customer:    in.Customer,
		Address:     in.Address,
		Description: in.Description,
		EmployeeID:  in.EmployeeID,
		VehicleID:   in.VehicleID,
		NoteContent: in.NoteContent,
	}, nil
}

// UpdateScheduleItemRequest replaces an item's fields. ExpectedVersion 0 skips the version check.
type UpdateScheduleItemRequest struct {
	ScheduleItemInput
	ExpectedVersion int `json:"expectedVersion" binding:"min=0"`
}

// DeleteScheduleItemParams are the query parameters of a delete.
type DeleteScheduleItemParams struct {
	ExpectedVersion int `form:"expectedVersion" binding:"min=0"`
}

// ListScheduleItemsParams selects a date range of the schedule.
type ListScheduleItemsParams struct {
	From    string  `form:"from" binding:"required"`
	To      string  `form:"to" binding:"required"`
	CrewID  *string `form:"crewID"`
	DepotID *string `form:"depotID"`
}

// ToFilter parses the range into a repository filter for organizationID.
func (p ListScheduleItemsParams) ToFilter(organizationID string) (portsrepo.ScheduleItemFilter, error) {
	from, err := domain.ParseDate(p.From)
	if err != nil {
		return portsrepo.ScheduleItemFilter{}, apperrors.NewValidationFailedError(fmt.Sprintf("invalid from date %q", p.From))
	}
	to, err := domain.ParseDate(p.To)
	if err != nil {
		return portsrepo.ScheduleItemFilter{}, apperrors.NewValidationFailedError(fmt.Sprintf("invalid to date %q", p.To))
	}
	return portsrepo.ScheduleItemFilter{
		OrganizationID: organizationID,
		From:           from,
		To:             to,
		CrewID:         p.CrewID,
		DepotID:        p.DepotID,
	}, nil
}

// ScheduleItemResponse is the wire form of a schedule item, placeholders included.
type ScheduleItemResponse struct {
	ItemID          string     `json:"id"`
	OrganizationID  string     `json:"organizationID"`
	DepotID         string     `json:"depotID"`
	CrewID          string     `json:"crewID"`
	Type            string     `json:"type"`
	Date            string     `json:"date"`
	StartTime       *string    `json:"startTime,omitempty"`
	Status          string     `json:"status"`
	JobStatus       string     `json:"jobStatus,omitempty"`
	Duration        *float64   `json:"duration,omitempty"`
	Position        int        `json:"position"`
	Customer        string     `json:"customer,omitempty"`
	Address         string     `json:"address,omitempty"`
	Description     string     `json:"description,omitempty"`
	EmployeeID      *string    `json:"employeeID,omitempty"`
	VehicleID       *string    `json:"vehicleID,omitempty"`
	NoteContent     string     `json:"noteContent,omitempty"`
	ApprovedBy      *string    `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time `json:"approvedAt,omitempty"`
	RejectedBy      *string    `json:"rejectedBy,omitempty"`
	RejectedAt      *time.Time `json:"rejectedAt,omitempty"`
	RejectionReason *string    `json:"rejectionReason,omitempty"`
	Placeholder     bool       `json:"placeholder,omitempty"`
	Version         int        `json:"version"`
	CreatedAt       time.Time  `json:"createdAt"`
	CreatedBy       string     `json:"createdBy"`
	LastUpdatedAt   time.Time  `json:"lastUpdatedAt"`
	LastUpdatedBy   string     `json:"lastUpdatedBy"`
}

// ToScheduleItemResponse converts domain.ScheduleItem to DTO.
func ToScheduleItemResponse(s *domain.ScheduleItem) ScheduleItemResponse {
	return ScheduleItemResponse{
		ItemID:          s.ItemID,
		OrganizationID:  s.OrganizationID,
		DepotID:         s.DepotID,
		CrewID:          s.CrewID,
		Type:            string(s.Type),
		Date:            s.Date.Format(domain.DateLayout),
		StartTime:       s.StartTime,
		Status:          string(s.Status),
		JobStatus:       string(s.JobStatus),
		Duration:        s.Duration,
		Position:        s.Position,
		Customer:        s.Customer,
		Address:         s.Address,
		Description:     s.Description,
		EmployeeID:      s.EmployeeID,
		VehicleID:       s.VehicleID,
		NoteContent:     s.NoteContent,
		ApprovedBy:      s.ApprovedBy,
		ApprovedAt:      s.ApprovedAt,
		RejectedBy:      s.RejectedBy,
		RejectedAt:      s.RejectedAt,
		RejectionReason: s.RejectionReason,
		Placeholder:     s.IsPlaceholder(),
		Version:         s.Version,
		CreatedAt:       s.CreatedAt,
		CreatedBy:       s.CreatedBy,
		LastUpdatedAt:   s.LastUpdatedAt,
		LastUpdatedBy:   s.LastUpdatedBy,
	}
}

// ToScheduleItemResponses converts a slice of items.
func ToScheduleItemResponses(items []domain.ScheduleItem) []ScheduleItemResponse {
	list := make([]ScheduleItemResponse, len(items))
	for i := range items {
		list[i] = ToScheduleItemResponse(&items[i])
	}
	return list
}

// ListScheduleItemsResponse wraps the items of a range.
type ListScheduleItemsResponse struct {
	Items []ScheduleItemResponse `json:"items"`
}

// PositionUpdateRequest moves one item within its crew-day.
type PositionUpdateRequest struct {
	ItemID   string `json:"itemID" binding:"required"`
	Position int    `json:"position" binding:"min=0"`
}

// ReorderScheduleItemsRequest carries a batch of position updates applied together.
type ReorderScheduleItemsRequest struct {
	Updates []PositionUpdateRequest `json:"updates" binding:"required,min=1,dive"`
}

// ToPositionUpdates converts the request into repository updates.
func (r ReorderScheduleItemsRequest) ToPositionUpdates() []portsrepo.PositionUpdate {
	updates := make([]portsrepo.PositionUpdate, len(r.Updates))
	for i, u := range r.Updates {
		updates[i] = portsrepo.PositionUpdate{ItemID: u.ItemID, Position: u.Position}
	}
	return updates
}

// --- Approval DTOs ---

// ListPendingItemsParams defines query parameters for the approval queue.
type ListPendingItemsParams struct {
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ListPendingItemsResponse is one page of the approval queue.
type ListPendingItemsResponse struct {
	Items     []ScheduleItemResponse `json:"items"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// RejectScheduleItemRequest carries the mandatory rejection reason.
type RejectScheduleItemRequest struct {
	Reason string `json:"reason" binding:"required"`
}
