// Package ledger holds the in-memory scheduling view: the capacity placeholders derived from
// real bookings, the operation log used for undo/redo and the per-user planner sessions.
package ledger

import (
	"math"
	"sort"

	"github.com/SscSPs/crew_planner/internal/core/domain"
	"github.com/shopspring/decimal"
)

var workday = decimal.NewFromInt(domain.WorkdayHours)

// PlaceholderID returns the synthetic id of the placeholder on key.
func PlaceholderID(key domain.CrewDayKey) string {
	return domain.PlaceholderIDPrefix + key.String()
}

// jobDuration treats missing, NaN, infinite and negative durations as zero.
func jobDuration(d *float64) decimal.Decimal {
	if d == nil || math.IsNaN(*d) || math.IsInf(*d, 0) || *d < 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*d)
}

// UsedDuration sums the durations of the real jobs on key.
func UsedDuration(items []domain.ScheduleItem, key domain.CrewDayKey) decimal.Decimal {
	used := decimal.Zero
	for _, item := range items {
		if !item.IsJob() || item.IsPlaceholder() || item.Key() != key {
			continue
		}
		used = used.Add(jobDuration(item.Duration))
	}
	return used
}

// Reconcile returns a copy of items in which each given crew-day holds exactly the placeholder
// its real jobs call for: one with the remaining hours when there is at least one job and less
// than a full workday booked, none otherwise.
func Reconcile(items []domain.ScheduleItem, keys ...domain.CrewDayKey) []domain.ScheduleItem {
	affected := make(map[domain.CrewDayKey]bool, len(keys))
	for _, k := range keys {
		affected[k] = true
	}

	out := make([]domain.ScheduleItem, 0, len(items)+len(keys))
	for _, item := range items {
		if item.IsPlaceholder() && affected[item.Key()] {
			continue
		}
		out = append(out, item)
	}

	seen := make(map[domain.CrewDayKey]bool, len(keys))
	for _, key := range keys {
		if seen[key] {
			continue
		}
		seen[key] = true
		if p, ok := placeholderFor(out, key); ok {
			out = append(out, p)
		}
	}
	return out
}

// ReconcileAll recomputes placeholders for every crew-day present in items. It is used when a
// view is loaded from the store, where placeholders never exist.
func ReconcileAll(items []domain.ScheduleItem) []domain.ScheduleItem {
	var keys []domain.CrewDayKey
	seen := make(map[domain.CrewDayKey]bool)
	for _, item := range items {
		k := item.Key()
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Date != keys[j].Date {
			return keys[i].Date < keys[j].Date
		}
		return keys[i].CrewID < keys[j].CrewID
	})
	return Reconcile(items, keys...)
}

// AffectedKeys returns the crew-days touched by a mutation of item, including the key the item
// was moved away from.
func AffectedKeys(item domain.ScheduleItem, previous *domain.ScheduleItem) []domain.CrewDayKey {
	keys := []domain.CrewDayKey{item.Key()}
	if previous != nil && previous.Key() != item.Key() {
		keys = append(keys, previous.Key())
	}
	return keys
}

func placeholderFor(items []domain.ScheduleItem, key domain.CrewDayKey) (domain.ScheduleItem, bool) {
	var template *domain.ScheduleItem
	used := decimal.Zero
	maxPosition := -1
	for i := range items {
		item := &items[i]
		if item.Key() != key {
			continue
		}
		if item.Position > maxPosition {
			maxPosition = item.Position
		}
		if !item.IsJob() || item.IsPlaceholder() {
			continue
		}
		if template == nil {
			template = item
		}
		used = used.Add(jobDuration(item.Duration))
	}
	if template == nil || !used.LessThan(workday) {
		return domain.ScheduleItem{}, false
	}

	remaining := workday.Sub(used).InexactFloat64()
	return domain.ScheduleItem{
		ItemID:         PlaceholderID(key),
		OrganizationID: template.OrganizationID,
		DepotID:        template.DepotID,
		CrewID:         key.CrewID,
		Type:           domain.ItemTypeJob,
		Date:           domain.StartOfDay(template.Date),
		Status:         domain.StatusApproved,
		JobStatus:      domain.JobStatusFree,
		Duration:       &remaining,
		Position:       maxPosition + 1,
		Customer:       domain.FreeSlotCustomer,
	}, true
}
