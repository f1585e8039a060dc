package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/SscSPs/crew_planner/internal/apperrors"
	"github.com/SscSPs/crew_planner/internal/core/domain"
	"github.com/google/uuid"
)

// ItemStore is the entity store as seen by a session. Implementations carry the caller context.
// An expectedVersion of zero means the write is unconditional; otherwise a version mismatch must
// fail with apperrors.ErrNotFound.
type ItemStore interface {
	// Create stores a new booking, assigning its approval status.
	Create(ctx context.Context, item domain.ScheduleItem) (*domain.ScheduleItem, error)
	// Restore recreates an item removed by undo/redo without re-running approval assignment.
	Restore(ctx context.Context, item domain.ScheduleItem) (*domain.ScheduleItem, error)
	Update(ctx context.Context, item domain.ScheduleItem, expectedVersion int) (*domain.ScheduleItem, error)
	Delete(ctx context.Context, itemID string, expectedVersion int) error
}

// SessionState is what a client sees of a session.
type SessionState struct {
	SessionID string                `json:"sessionID"`
	Items     []domain.ScheduleItem `json:"items"`
	CanUndo   bool                  `json:"canUndo"`
	CanRedo   bool                  `json:"canRedo"`
	UndoDepth int                   `json:"undoDepth"`
	RedoDepth int                   `json:"redoDepth"`
}

// Session is one user's planner view plus its undo/redo history. Every mutation is applied to
// the view first and rolled back if the store rejects it.
type Session struct {
	ID             string
	UserID         string
	OrganizationID string

	mu       sync.Mutex
	view     *Ledger
	history  *History
	lastUsed time.Time
}

func NewSession(id, userID, organizationID string, items []domain.ScheduleItem) *Session {
	return &Session{
		ID:             id,
		UserID:         userID,
		OrganizationID: organizationID,
		view:           New(items),
		history:        NewHistory(),
		lastUsed:       time.Now(),
	}
}

// State returns a copy of the current view and stack depths.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Session) stateLocked() SessionState {
	return SessionState{
		SessionID: s.ID,
		Items:     s.view.Items(),
		CanUndo:   s.history.CanUndo(),
		CanRedo:   s.history.CanRedo(),
		UndoDepth: s.history.UndoDepth(),
		RedoDepth: s.history.RedoDepth(),
	}
}

// Apply performs a client mutation and records it for undo.
func (s *Session) Apply(ctx context.Context, store ItemStore, req MutationRequest) (*domain.ScheduleItem, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = time.Now()

	snapshot := s.view.Snapshot()
	switch req.Kind {
	case OpCreate:
		draft := *req.Item
		draft.ItemID = ""
		optimistic := draft
		optimistic.ItemID = "tmp-" + uuid.NewString()
		s.view.Apply(NewCreate(optimistic))

		saved, err := store.Create(ctx, draft)
		if err != nil {
			s.view.Restore(snapshot)
			return nil, err
		}
		s.view.Replace(optimistic.ItemID, *saved)
		s.history.Record(NewCreate(*saved))
		return saved, nil

	case OpUpdate:
		current, ok := s.view.Find(req.ItemID)
		if !ok || current.IsPlaceholder() {
			return nil, apperrors.NewNotFoundError("schedule item " + req.ItemID + " is not in this view")
		}
		next := *req.Item
		next.ItemID = current.ItemID
		next.AuditFields = current.AuditFields
		s.view.Apply(NewUpdate(next, current))

		saved, err := store.Update(ctx, next, 0)
		if err != nil {
			s.view.Restore(snapshot)
			return nil, err
		}
		s.view.Replace(current.ItemID, *saved)
		s.history.Record(NewUpdate(*saved, current))
		return saved, nil

	default:
		current, ok := s.view.Find(req.ItemID)
		if !ok || current.IsPlaceholder() {
			return nil, apperrors.NewNotFoundError("schedule item " + req.ItemID + " is not in this view")
		}
		s.view.Apply(NewDelete(current))

		if err := store.Delete(ctx, current.ItemID, 0); err != nil {
			s.view.Restore(snapshot)
			return nil, err
		}
		s.history.Record(NewDelete(current))
		return &current, nil
	}
}

// Undo reverts the most recent recorded operation. It reports false when there is nothing to undo.
// On failure the view and both stacks are left as they were.
func (s *Session) Undo(ctx context.Context, store ItemStore) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = time.Now()

	op, ok := s.history.peekPast()
	if !ok {
		return false, nil
	}
	if err := s.replay(ctx, store, op.Inverse()); err != nil {
		return false, err
	}
	s.history.undone()
	return true, nil
}

// Redo re-applies the most recently undone operation.
func (s *Session) Redo(ctx context.Context, store ItemStore) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = time.Now()

	op, ok := s.history.peekFuture()
	if !ok {
		return false, nil
	}
	if err := s.replay(ctx, store, op); err != nil {
		return false, err
	}
	s.history.redone()
	return true, nil
}

// replay writes op to the store against the item's current identity and version.
func (s *Session) replay(ctx context.Context, store ItemStore, op Operation) error {
	snapshot := s.view.Snapshot()

	switch op.Kind {
	case OpCreate:
		restored, err := store.Restore(ctx, op.Item)
		if err != nil {
			return err
		}
		s.view.Apply(NewCreate(*restored))
		s.history.Recreated(op.Item.ItemID, restored.ItemID)
		return nil

	case OpUpdate:
		id := s.history.Resolve(op.Item.ItemID)
		current, ok := s.view.Find(id)
		if !ok {
			return apperrors.NewNotFoundError("schedule item " + id + " is no longer in this view")
		}
		target := op.Item
		target.ItemID = id
		target.AuditFields = current.AuditFields
		s.view.Apply(NewUpdate(target, current))

		saved, err := store.Update(ctx, target, current.Version)
		if err != nil {
			s.view.Restore(snapshot)
			return err
		}
		s.view.Replace(id, *saved)
		return nil

	default:
		id := s.history.Resolve(op.Item.ItemID)
		current, ok := s.view.Find(id)
		if !ok {
			return apperrors.NewNotFoundError("schedule item " + id + " is no longer in this view")
		}
		s.view.Apply(NewDelete(current))

		if err := store.Delete(ctx, id, current.Version); err != nil {
			s.view.Restore(snapshot)
			return err
		}
		return nil
	}
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastUsed)
}
