package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/crew_planner/internal/core/domain"
)

// ScheduleItemFilter narrows a schedule listing. From and To are inclusive calendar days.
type ScheduleItemFilter struct {
	OrganizationID string
	From           time.Time
	To             time.Time
	CrewID         *string
	DepotID        *string
}

// ApprovalDecision is the outcome recorded by approve/reject.
type ApprovalDecision struct {
	Status    domain.ApprovalStatus
	DecidedBy string
	DecidedAt time.Time
	Reason    *string
}

// PositionUpdate moves one item to a new position within its crew-day.
type PositionUpdate struct {
	ItemID   string
	Position int
}

// ScheduleItemReader defines read operations for schedule items
type ScheduleItemReader interface {
	FindScheduleItemByID(ctx context.Context, organizationID, itemID string) (*domain.ScheduleItem, error)
	ListScheduleItems(ctx context.Context, filter ScheduleItemFilter) ([]domain.ScheduleItem, error)

	// ListPendingItems retrieves a page of pending items ordered oldest first.
	// It returns the items, a token for the next page (if any), and an error.
	ListPendingItems(ctx context.Context, organizationID string, limit int, nextToken *string) ([]domain.ScheduleItem, *string, error)
}

// ScheduleItemWriter defines write operations for schedule items
type ScheduleItemWriter interface {
	SaveScheduleItem(ctx context.Context, item domain.ScheduleItem) error

	// UpdateScheduleItem writes the editable fields of item. A non-zero expectedVersion makes the
	// write conditional; a mismatch fails with apperrors.ErrNotFound.
	UpdateScheduleItem(ctx context.Context, item domain.ScheduleItem, expectedVersion int) (*domain.ScheduleItem, error)

	DeleteScheduleItem(ctx context.Context, organizationID, itemID string, expectedVersion int) error

	// UpdateApprovalStatus applies decision only if the item is still pending.
	// It fails with ErrNotFound when the item is missing and ErrInvalidTransition otherwise.
	UpdateApprovalStatus(ctx context.Context, organizationID, itemID string, decision ApprovalDecision) (*domain.ScheduleItem, error)

	UpdatePositions(ctx context.Context, organizationID, userID string, updates []PositionUpdate) error
}

// ScheduleItemRepositoryFacade combines all schedule item repository interfaces
type ScheduleItemRepositoryFacade interface {
	ScheduleItemReader
	ScheduleItemWriter
}

// ScheduleItemRepositoryWithTx extends ScheduleItemRepositoryFacade with transaction capabilities
type ScheduleItemRepositoryWithTx interface {
	ScheduleItemRepositoryFacade
	TransactionManager
}
