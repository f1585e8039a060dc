package ledger

import (
	"sort"

	"github.com/SscSPs/crew_planner/internal/core/domain"
)

// Snapshot is an immutable copy of a view used for rollback.
type Snapshot []domain.ScheduleItem

// Ledger is a local view of schedule items with placeholders kept in sync. It is not safe for
// concurrent use; Session serializes access.
type Ledger struct {
	items []domain.ScheduleItem
}

// New builds a view from stored items. Any placeholders in the input are recomputed.
func New(items []domain.ScheduleItem) *Ledger {
	stored := make([]domain.ScheduleItem, 0, len(items))
	for _, item := range items {
		if !item.IsPlaceholder() {
			stored = append(stored, item)
		}
	}
	return &Ledger{items: ReconcileAll(stored)}
}

// Items returns the view ordered by date, crew and position.
func (l *Ledger) Items() []domain.ScheduleItem {
	out := make([]domain.ScheduleItem, len(l.items))
	copy(out, l.items)
	SortItems(out)
	return out
}

// Find returns the item with id.
func (l *Ledger) Find(id string) (domain.ScheduleItem, bool) {
	if i := l.index(id); i >= 0 {
		return l.items[i], true
	}
	return domain.ScheduleItem{}, false
}

func (l *Ledger) Snapshot() Snapshot {
	s := make(Snapshot, len(l.items))
	copy(s, l.items)
	return s
}

func (l *Ledger) Restore(s Snapshot) {
	l.items = make([]domain.ScheduleItem, len(s))
	copy(l.items, s)
}

// Apply reduces op into the view and reconciles every crew-day it touched.
func (l *Ledger) Apply(op Operation) {
	switch op.Kind {
	case OpCreate:
		l.items = append(l.items, op.Item)
		l.items = Reconcile(l.items, op.Item.Key())
	case OpUpdate:
		id := op.Item.ItemID
		if op.Previous != nil && op.Previous.ItemID != "" {
			id = op.Previous.ItemID
		}
		if i := l.index(id); i >= 0 {
			l.items[i] = op.Item
		} else {
			l.items = append(l.items, op.Item)
		}
		l.items = Reconcile(l.items, AffectedKeys(op.Item, op.Previous)...)
	case OpDelete:
		if i := l.index(op.Item.ItemID); i >= 0 {
			key := l.items[i].Key()
			l.items = append(l.items[:i], l.items[i+1:]...)
			l.items = Reconcile(l.items, key, op.Item.Key())
		}
	}
}

// Replace swaps the item stored under id for item, typically a server response replacing an
// optimistic copy.
func (l *Ledger) Replace(id string, item domain.ScheduleItem) {
	i := l.index(id)
	if i < 0 {
		l.Apply(NewCreate(item))
		return
	}
	previous := l.items[i]
	l.items[i] = item
	l.items = Reconcile(l.items, AffectedKeys(item, &previous)...)
}

func (l *Ledger) index(id string) int {
	for i := range l.items {
		if l.items[i].ItemID == id {
			return i
		}
	}
	return -1
}

// SortItems orders items by date, crew and position, placeholders last within a crew-day.
func SortItems(items []domain.ScheduleItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.CrewID != b.CrewID {
			return a.CrewID < b.CrewID
		}
		if a.IsPlaceholder() != b.IsPlaceholder() {
			return b.IsPlaceholder()
		}
		return a.Position < b.Position
	})
}
