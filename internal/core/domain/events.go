package domain

import "time"

// ScheduleEventType names a domain event emitted after a confirmed store write.
type ScheduleEventType string

const (
	EventBookingPending  ScheduleEventType = "booking.pending"
	EventBookingApproved ScheduleEventType = "booking.approved"
	EventBookingRejected ScheduleEventType = "booking.rejected"
	EventCrewArchived    ScheduleEventType = "crew.archived"
)

// ScheduleEvent is published to interested consumers such as notifiers.
type ScheduleEvent struct {
	Type           ScheduleEventType `json:"type"`
	OrganizationID string            `json:"organizationID"`
	ActorID        string            `json:"actorID"`
	ItemID         string            `json:"itemID,omitempty"`
	CrewID         string            `json:"crewID,omitempty"`
	Reason         string            `json:"reason,omitempty"`
	Count          int               `json:"count,omitempty"`
	OccurredAt     time.Time         `json:"occurredAt"`
}
