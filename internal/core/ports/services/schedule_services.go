package services

import (
	"context"

	"github.com/SscSPs/crew_planner/internal/core/domain"
	"github.com/SscSPs/crew_planner/internal/core/ledger"
	portsrepo "github.com/SscSPs/crew_planner/internal/core/ports/repositories"
)

// ScheduleReaderSvc defines read operations for the schedule
type ScheduleReaderSvc interface {
	// ListItems returns the stored items in range with capacity placeholders merged in.
	ListItems(ctx context.Context, caller *domain.CallerContext, filter portsrepo.ScheduleItemFilter) ([]domain.ScheduleItem, error)

	// PendingItemsFor returns a page of items awaiting approval.
	PendingItemsFor(ctx context.Context, caller *domain.CallerContext, limit int, nextToken *string) ([]domain.ScheduleItem, *string, error)
}

// ScheduleWriterSvc defines the booking mutations
type ScheduleWriterSvc interface {
	CreateItem(ctx context.Context, caller *domain.CallerContext, item domain.ScheduleItem) (*domain.ScheduleItem, error)

	// RestoreItem recreates a previously removed item without assigning a fresh approval status.
	RestoreItem(ctx context.Context, caller *domain.CallerContext, item domain.ScheduleItem) (*domain.ScheduleItem, error)

	UpdateItem(ctx context.Context, caller *domain.CallerContext, item domain.ScheduleItem, expectedVersion int) (*domain.ScheduleItem, error)
	DeleteItem(ctx context.Context, caller *domain.CallerContext, itemID string, expectedVersion int) error
	ReorderItems(ctx context.Context, caller *domain.CallerContext, updates []portsrepo.PositionUpdate) error
}

// ApprovalSvc defines the booking approval transitions
type ApprovalSvc interface {
	ApproveItem(ctx context.Context, caller *domain.CallerContext, itemID string) (*domain.ScheduleItem, error)
	RejectItem(ctx context.Context, caller *domain.CallerContext, itemID, reason string) (*domain.ScheduleItem, error)
}

// ScheduleSvcFacade combines all schedule-related service interfaces
type ScheduleSvcFacade interface {
	ScheduleReaderSvc
	ScheduleWriterSvc
	ApprovalSvc
}

// PlannerSvc manages server-held planner sessions with undo/redo.
type PlannerSvc interface {
	OpenSession(ctx context.Context, caller *domain.CallerContext, filter portsrepo.ScheduleItemFilter) (*ledger.SessionState, error)
	GetSession(ctx context.Context, caller *domain.CallerContext, sessionID string) (*ledger.SessionState, error)
	ApplyMutation(ctx context.Context, caller *domain.CallerContext, sessionID string, req ledger.MutationRequest) (*domain.ScheduleItem, *ledger.SessionState, error)
	Undo(ctx context.Context, caller *domain.CallerContext, sessionID string) (*ledger.SessionState, error)
	Redo(ctx context.Context, caller *domain.CallerContext, sessionID string) (*ledger.SessionState, error)
	CloseSession(ctx context.Context, caller *domain.CallerContext, sessionID string) error
}
