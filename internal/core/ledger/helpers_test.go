package ledger_test

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/SscSPs/crew_planner/internal/apperrors"
	"github.com/SscSPs/crew_planner/internal/core/domain"
	"github.com/shopspring/decimal"
)

var decimalEight = decimal.NewFromInt(domain.WorkdayHours)

// memStore is an in-memory ItemStore that assigns fresh ids and enforces versions.
type memStore struct {
	mu      sync.Mutex
	items   map[string]domain.ScheduleItem
	seq     int
	failErr error
}

func newMemStore() *memStore {
	return &memStore{items: make(map[string]domain.ScheduleItem)}
}

func (m *memStore) insert(item domain.ScheduleItem) *domain.ScheduleItem {
	m.seq++
	item.ItemID = fmt.Sprintf("item-%d", m.seq)
	item.Version = 1
	m.items[item.ItemID] = item
	return &item
}

func (m *memStore) Create(_ context.Context, item domain.ScheduleItem) (*domain.ScheduleItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return nil, m.failErr
	}
	if item.Status == "" {
		item.Status = domain.StatusApproved
	}
	return m.insert(item), nil
}

func (m *memStore) Restore(_ context.Context, item domain.ScheduleItem) (*domain.ScheduleItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return nil, m.failErr
	}
	return m.insert(item), nil
}

func (m *memStore) Update(_ context.Context, item domain.ScheduleItem, expectedVersion int) (*domain.ScheduleItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return nil, m.failErr
	}
	current, ok := m.items[item.ItemID]
	if !ok {
		return nil, apperrors.NewNotFoundError("schedule item " + item.ItemID)
	}
	if expectedVersion != 0 && current.Version != expectedVersion {
		return nil, apperrors.NewNotFoundError("schedule item " + item.ItemID + " is stale")
	}
	item.Version = current.Version + 1
	m.items[item.ItemID] = item
	return &item, nil
}

func (m *memStore) Delete(_ context.Context, itemID string, expectedVersion int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return m.failErr
	}
	current, ok := m.items[itemID]
	if !ok {
		return apperrors.NewNotFoundError("schedule item " + itemID)
	}
	if expectedVersion != 0 && current.Version != expectedVersion {
		return apperrors.NewNotFoundError("schedule item " + itemID + " is stale")
	}
	delete(m.items, itemID)
	return nil
}

// bump simulates another user editing the item directly in the store.
func (m *memStore) bump(itemID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item := m.items[itemID]
	item.Version++
	m.items[itemID] = item
}

func (m *memStore) all() []domain.ScheduleItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.ScheduleItem, 0, len(m.items))
	for _, item := range m.items {
		out = append(out, item)
	}
	return out
}

// content renders items without server-assigned identity so views can be compared across
// recreations.
func content(items []domain.ScheduleItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		duration := "-"
		if item.Duration != nil {
			duration = fmt.Sprintf("%.2f", *item.Duration)
		}
		out = append(out, fmt.Sprintf("%s|%s|%s|%s|%s|%s|%s|%d",
			item.CrewID, item.Date.Format(domain.DateLayout), item.Type, item.Customer,
			duration, item.Status, item.JobStatus, item.Position))
	}
	sort.Strings(out)
	return out
}
