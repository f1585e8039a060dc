package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/crew_planner/internal/apperrors"
	"github.com/SscSPs/crew_planner/internal/core/domain"
	"github.com/SscSPs/crew_planner/internal/core/ledger"
	portsrepo "github.com/SscSPs/crew_planner/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/crew_planner/internal/core/ports/services"
)

type plannerService struct {
	BaseService
	schedule portssvc.ScheduleSvcFacade
	registry *ledger.Registry
}

// NewPlannerService creates the planner session service on top of the schedule service.
func NewPlannerService(schedule portssvc.ScheduleSvcFacade, registry *ledger.Registry) portssvc.PlannerSvc {
	return &plannerService{schedule: schedule, registry: registry}
}

var _ portssvc.PlannerSvc = (*plannerService)(nil)

// callerStore adapts the schedule service to ledger.ItemStore for one caller.
type callerStore struct {
	caller   *domain.CallerContext
	schedule portssvc.ScheduleSvcFacade
}

func (c callerStore) Create(ctx context.Context, item domain.ScheduleItem) (*domain.ScheduleItem, error) {
	return c.schedule.CreateItem(ctx, c.caller, item)
}

func (c callerStore) Restore(ctx context.Context, item domain.ScheduleItem) (*domain.ScheduleItem, error) {
	return c.schedule.RestoreItem(ctx, c.caller, item)
}

func (c callerStore) Update(ctx context.Context, item domain.ScheduleItem, expectedVersion int) (*domain.ScheduleItem, error) {
	return c.schedule.UpdateItem(ctx, c.caller, item, expectedVersion)
}

func (c callerStore) Delete(ctx context.Context, itemID string, expectedVersion int) error {
	return c.schedule.DeleteItem(ctx, c.caller, itemID, expectedVersion)
}

var _ ledger.ItemStore = callerStore{}

func (s *plannerService) OpenSession(ctx context.Context, caller *domain.CallerContext, filter portsrepo.ScheduleItemFilter) (*ledger.SessionState, error) {
	items, err := s.schedule.ListItems(ctx, caller, filter)
	if err != nil {
		return nil, err
	}
	session := s.registry.Open(caller.UserID, caller.OrganizationID, items)
	s.LogInfo(ctx, "Planner session opened", slog.String("session_id", session.ID), slog.Int("items", len(items)))

	state := session.State()
	return &state, nil
}

func (s *plannerService) GetSession(ctx context.Context, caller *domain.CallerContext, sessionID string) (*ledger.SessionState, error) {
	session, err := s.session(caller, sessionID)
	if err != nil {
		return nil, err
	}
	state := session.State()
	return &state, nil
}

func (s *plannerService) ApplyMutation(ctx context.Context, caller *domain.CallerContext, sessionID string, req ledger.MutationRequest) (*domain.ScheduleItem, *ledger.SessionState, error) {
	session, err := s.session(caller, sessionID)
	if err != nil {
		return nil, nil, err
	}
	item, err := session.Apply(ctx, callerStore{caller: caller, schedule: s.schedule}, req)
	if err != nil {
		return nil, nil, err
	}
	state := session.State()
	return item, &state, nil
}

func (s *plannerService) Undo(ctx context.Context, caller *domain.CallerContext, sessionID string) (*ledger.SessionState, error) {
	session, err := s.session(caller, sessionID)
	if err != nil {
		return nil, err
	}
	done, err := session.Undo(ctx, callerStore{caller: caller, schedule: s.schedule})
	if err != nil {
		s.LogInfo(ctx, "Undo failed", slog.String("session_id", sessionID), slog.String("error", err.Error()))
		return nil, err
	}
	if !done {
		s.LogDebug(ctx, "Nothing to undo", slog.String("session_id", sessionID))
	}
	state := session.State()
	return &state, nil
}

func (s *plannerService) Redo(ctx context.Context, caller *domain.CallerContext, sessionID string) (*ledger.SessionState, error) {
	session, err := s.session(caller, sessionID)
	if err != nil {
		return nil, err
	}
	done, err := session.Redo(ctx, callerStore{caller: caller, schedule: s.schedule})
	if err != nil {
		s.LogInfo(ctx, "Redo failed", slog.String("session_id", sessionID), slog.String("error", err.Error()))
		return nil, err
	}
	if !done {
		s.LogDebug(ctx, "Nothing to redo", slog.String("session_id", sessionID))
	}
	state := session.State()
	return &state, nil
}

func (s *plannerService) CloseSession(ctx context.Context, caller *domain.CallerContext, sessionID string) error {
	if _, err := s.session(caller, sessionID); err != nil {
		return err
	}
	s.registry.Close(sessionID, caller.UserID)
	s.LogInfo(ctx, "Planner session closed", slog.String("session_id", sessionID))
	return nil
}

// session returns the caller's session, hiding sessions of other organizations.
func (s *plannerService) session(caller *domain.CallerContext, sessionID string) (*ledger.Session, error) {
	if caller == nil {
		return nil, apperrors.ErrUnauthorized
	}
	session, err := s.registry.Get(sessionID, caller.UserID)
	if err != nil {
		return nil, err
	}
	if session.OrganizationID != caller.OrganizationID {
		return nil, apperrors.NewNotFoundError("planner session " + sessionID)
	}
	return session, nil
}
