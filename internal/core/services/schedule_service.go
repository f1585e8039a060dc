package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/crew_planner/internal/apperrors"
	"github.com/SscSPs/crew_planner/internal/core/domain"
	"github.com/SscSPs/crew_planner/internal/core/ledger"
	portsrepo "github.com/SscSPs/crew_planner/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/crew_planner/internal/core/ports/services"
	"github.com/google/uuid"
)

// maxListRange bounds a schedule listing.
const maxListRange = 92 * 24 * time.Hour

// ScheduleService handles bookings, their approval and the merged capacity view.
type ScheduleService struct {
	BaseService
	itemRepo portsrepo.ScheduleItemRepositoryFacade
	crewRepo portsrepo.CrewReader
	events   portssvc.EventPublisher
	now      func() time.Time
}

// ScheduleServiceOption is a function that configures a ScheduleService
type ScheduleServiceOption func(*ScheduleService)

// WithScheduleEvents sets the publisher for booking events.
func WithScheduleEvents(events portssvc.EventPublisher) ScheduleServiceOption {
	return func(s *ScheduleService) {
		s.events = events
	}
}

// WithScheduleClock overrides the clock, for tests.
func WithScheduleClock(now func() time.Time) ScheduleServiceOption {
	return func(s *ScheduleService) {
		s.now = now
	}
}

// NewScheduleService creates a new ScheduleService.
func NewScheduleService(itemRepo portsrepo.ScheduleItemRepositoryFacade, crewRepo portsrepo.CrewReader, options ...ScheduleServiceOption) *ScheduleService {
	s := &ScheduleService{
		itemRepo: itemRepo,
		crewRepo: crewRepo,
		events:   NoopEventPublisher{},
		now:      time.Now,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

var _ portssvc.ScheduleSvcFacade = (*ScheduleService)(nil)

// CreateItem books a new item. Its approval status comes from the caller's role and plan unless
// the item carries an explicit status.
func (s *ScheduleService) CreateItem(ctx context.Context, caller *domain.CallerContext, item domain.ScheduleItem) (*domain.ScheduleItem, error) {
	if err := s.Authorize(ctx, caller, domain.CapabilityCreateBookings, true); err != nil {
		return nil, err
	}

	var explicit *domain.ApprovalStatus
	if item.Status != "" {
		explicit = &item.Status
	}
	item.Status = domain.InitialApprovalStatus(caller.Role, caller.Plan, explicit)
	item.ApprovedBy, item.ApprovedAt = nil, nil
	item.RejectedBy, item.RejectedAt, item.RejectionReason = nil, nil, nil

	saved, err := s.insert(ctx, caller, item)
	if err != nil {
		return nil, err
	}

	if saved.Status == domain.StatusPending {
		s.publish(ctx, s.events, domain.ScheduleEvent{
			Type:           domain.EventBookingPending,
			OrganizationID: saved.OrganizationID,
			ActorID:        caller.UserID,
			ItemID:         saved.ItemID,
			CrewID:         saved.CrewID,
			OccurredAt:     saved.CreatedAt,
		})
	}
	return saved, nil
}

// RestoreItem recreates an item removed by undo/redo. The recorded approval state is kept as is;
// quota and approval assignment only apply to new bookings.
func (s *ScheduleService) RestoreItem(ctx context.Context, caller *domain.CallerContext, item domain.ScheduleItem) (*domain.ScheduleItem, error) {
	if err := s.Authorize(ctx, caller, domain.CapabilityCreateBookings, true); err != nil {
		return nil, err
	}
	item.Status = domain.NormalizeApprovalStatus(item.Status)
	return s.insert(ctx, caller, item)
}

func (s *ScheduleService) insert(ctx context.Context, caller *domain.CallerContext, item domain.ScheduleItem) (*domain.ScheduleItem, error) {
	item.ItemID = ""
	if item.IsJob() && item.JobStatus == "" {
		item.JobStatus = domain.JobStatusBooked
	}
	if err := ledger.ValidateItem(item); err != nil {
		return nil, err
	}
	crew, err := s.usableCrew(ctx, caller.OrganizationID, item.CrewID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	item.ItemID = uuid.NewString()
	item.OrganizationID = caller.OrganizationID
	item.DepotID = crew.DepotID
	item.Date = domain.StartOfDay(item.Date)
	item.AuditFields = domain.NewAuditFields(caller.UserID, now)

	if err := s.itemRepo.SaveScheduleItem(ctx, item); err != nil {
		s.LogError(ctx, err, "Failed to save schedule item", slog.String("crew_id", item.CrewID))
		return nil, fmt.Errorf("failed to create schedule item: %w", err)
	}

	s.LogInfo(ctx, "Schedule item created",
		slog.String("item_id", item.ItemID),
		slog.String("crew_id", item.CrewID),
		slog.String("date", item.Date.Format(domain.DateLayout)),
		slog.String("status", string(item.Status)))
	return &item, nil
}

// UpdateItem writes the editable fields of an item. Approval state is never changed here.
func (s *ScheduleService) UpdateItem(ctx context.Context, caller *domain.CallerContext, item domain.ScheduleItem, expectedVersion int) (*domain.ScheduleItem, error) {
	if err := s.Authorize(ctx, caller, domain.CapabilityCreateBookings, true); err != nil {
		return nil, err
	}

	existing, err := s.itemRepo.FindScheduleItemByID(ctx, caller.OrganizationID, item.ItemID)
	if err != nil {
		return nil, err
	}
	if item.IsJob() && item.JobStatus == "" {
		item.JobStatus = existing.JobStatus
	}
	if err := ledger.ValidateItem(item); err != nil {
		return nil, err
	}

	item.DepotID = existing.DepotID
	if item.CrewID != existing.CrewID {
		crew, err := s.usableCrew(ctx, caller.OrganizationID, item.CrewID)
		if err != nil {
			return nil, err
		}
		item.DepotID = crew.DepotID
	}

	item.OrganizationID = caller.OrganizationID
	item.Date = domain.StartOfDay(item.Date)
	item.Status = existing.Status
	item.ApprovedBy, item.ApprovedAt = existing.ApprovedBy, existing.ApprovedAt
	item.RejectedBy, item.RejectedAt, item.RejectionReason = existing.RejectedBy, existing.RejectedAt, existing.RejectionReason
	item.AuditFields = existing.AuditFields
	item.LastUpdatedAt = s.now()
	item.LastUpdatedBy = caller.UserID

	updated, err := s.itemRepo.UpdateScheduleItem(ctx, item, expectedVersion)
	if err != nil {
		s.LogError(ctx, err, "Failed to update schedule item", slog.String("item_id", item.ItemID))
		return nil, fmt.Errorf("failed to update schedule item: %w", err)
	}
	return updated, nil
}

func (s *ScheduleService) DeleteItem(ctx context.Context, caller *domain.CallerContext, itemID string, expectedVersion int) error {
	if err := s.Authorize(ctx, caller, domain.CapabilityCreateBookings, true); err != nil {
		return err
	}
	if strings.HasPrefix(itemID, domain.PlaceholderIDPrefix) {
		return apperrors.NewValidationFailedError("capacity placeholders cannot be deleted")
	}

	if err := s.itemRepo.DeleteScheduleItem(ctx, caller.OrganizationID, itemID, expectedVersion); err != nil {
		s.LogError(ctx, err, "Failed to delete schedule item", slog.String("item_id", itemID))
		return fmt.Errorf("failed to delete schedule item: %w", err)
	}
	s.LogInfo(ctx, "Schedule item deleted", slog.String("item_id", itemID))
	return nil
}

// ReorderItems changes positions inside crew-days. Reordering is not recorded for undo.
func (s *ScheduleService) ReorderItems(ctx context.Context, caller *domain.CallerContext, updates []portsrepo.PositionUpdate) error {
	if err := s.Authorize(ctx, caller, domain.CapabilityCreateBookings, true); err != nil {
		return err
	}
	if len(updates) == 0 {
		return apperrors.NewValidationFailedError("no positions given")
	}
	seen := make(map[string]bool, len(updates))
	for _, u := range updates {
		if u.ItemID == "" || strings.HasPrefix(u.ItemID, domain.PlaceholderIDPrefix) {
			return apperrors.NewValidationFailedError("invalid item id " + u.ItemID)
		}
		if seen[u.ItemID] {
			return apperrors.NewValidationFailedError("duplicate item id " + u.ItemID)
		}
		if u.Position < 0 {
			return apperrors.NewValidationFailedError("position must not be negative")
		}
		seen[u.ItemID] = true
	}

	if err := s.itemRepo.UpdatePositions(ctx, caller.OrganizationID, caller.UserID, updates); err != nil {
		s.LogError(ctx, err, "Failed to reorder schedule items")
		return fmt.Errorf("failed to reorder schedule items: %w", err)
	}
	return nil
}

// ListItems returns stored items with freshly computed capacity placeholders.
func (s *ScheduleService) ListItems(ctx context.Context, caller *domain.CallerContext, filter portsrepo.ScheduleItemFilter) ([]domain.ScheduleItem, error) {
	if err := s.Authorize(ctx, caller, domain.CapabilityViewSchedule, false); err != nil {
		return nil, err
	}
	filter.OrganizationID = caller.OrganizationID
	filter.From = domain.StartOfDay(filter.From)
	filter.To = domain.StartOfDay(filter.To)
	if filter.From.IsZero() || filter.To.IsZero() {
		return nil, apperrors.NewValidationFailedError("from and to are required")
	}
	if filter.To.Before(filter.From) {
		return nil, apperrors.NewValidationFailedError("to must not be before from")
	}
	if filter.To.Sub(filter.From) > maxListRange {
		return nil, apperrors.NewValidationFailedError("date range too large")
	}

	items, err := s.itemRepo.ListScheduleItems(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list schedule items")
		return nil, fmt.Errorf("failed to list schedule items: %w", err)
	}
	return ledger.New(items).Items(), nil
}

func (s *ScheduleService) PendingItemsFor(ctx context.Context, caller *domain.CallerContext, limit int, nextToken *string) ([]domain.ScheduleItem, *string, error) {
	if err := s.Authorize(ctx, caller, domain.CapabilityApproveBookings, false); err != nil {
		return nil, nil, err
	}
	items, token, err := s.itemRepo.ListPendingItems(ctx, caller.OrganizationID, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list pending items")
		return nil, nil, fmt.Errorf("failed to list pending items: %w", err)
	}
	return items, token, nil
}

func (s *ScheduleService) ApproveItem(ctx context.Context, caller *domain.CallerContext, itemID string) (*domain.ScheduleItem, error) {
	return s.decide(ctx, caller, itemID, domain.StatusApproved, nil)
}

func (s *ScheduleService) RejectItem(ctx context.Context, caller *domain.CallerContext, itemID, reason string) (*domain.ScheduleItem, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperrors.NewValidationFailedError("a rejection reason is required")
	}
	return s.decide(ctx, caller, itemID, domain.StatusRejected, &reason)
}

func (s *ScheduleService) decide(ctx context.Context, caller *domain.CallerContext, itemID string, status domain.ApprovalStatus, reason *string) (*domain.ScheduleItem, error) {
	if err := s.Authorize(ctx, caller, domain.CapabilityApproveBookings, true); err != nil {
		return nil, err
	}

	decision := portsrepo.ApprovalDecision{
		Status:    status,
		DecidedBy: caller.UserID,
		DecidedAt: s.now(),
		Reason:    reason,
	}
	item, err := s.itemRepo.UpdateApprovalStatus(ctx, caller.OrganizationID, itemID, decision)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrInvalidTransition) {
			s.LogError(ctx, err, "Failed to record approval decision", slog.String("item_id", itemID))
		}
		return nil, err
	}

	eventType := domain.EventBookingApproved
	if status == domain.StatusRejected {
		eventType = domain.EventBookingRejected
	}
	event := domain.ScheduleEvent{
		Type:           eventType,
		OrganizationID: item.OrganizationID,
		ActorID:        caller.UserID,
		ItemID:         item.ItemID,
		CrewID:         item.CrewID,
		OccurredAt:     decision.DecidedAt,
	}
	if reason != nil {
		event.Reason = *reason
	}
	s.publish(ctx, s.events, event)

	s.LogInfo(ctx, "Booking decided", slog.String("item_id", itemID), slog.String("status", string(status)))
	return item, nil
}

// usableCrew loads a crew that can receive new work.
func (s *ScheduleService) usableCrew(ctx context.Context, organizationID, crewID string) (*domain.Crew, error) {
	crew, err := s.crewRepo.FindCrewByID(ctx, organizationID, crewID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: crew %s does not exist", apperrors.ErrValidation, crewID)
		}
		return nil, fmt.Errorf("failed to load crew: %w", err)
	}
	if crew.IsArchived() {
		return nil, fmt.Errorf("%w: crew %s is archived", apperrors.ErrValidation, crewID)
	}
	return crew, nil
}
