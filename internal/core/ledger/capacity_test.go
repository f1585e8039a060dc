package ledger_test

import (
	"math"
	"testing"
	"time"

	"github.com/SscSPs/crew_planner/internal/core/domain"
	"github.com/SscSPs/crew_planner/internal/core/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

func job(id, crew string, date time.Time, hours float64) domain.ScheduleItem {
	return domain.ScheduleItem{
		ItemID:         id,
		OrganizationID: "org-1",
		DepotID:        "depot-1",
		CrewID:         crew,
		Type:           domain.ItemTypeJob,
		Date:           date,
		Status:         domain.StatusApproved,
		JobStatus:      domain.JobStatusBooked,
		Duration:       domain.Float64Ptr(hours),
		Customer:       "Acme Drains",
	}
}

func placeholders(items []domain.ScheduleItem, key domain.CrewDayKey) []domain.ScheduleItem {
	var out []domain.ScheduleItem
	for _, item := range items {
		if item.IsPlaceholder() && item.Key() == key {
			out = append(out, item)
		}
	}
	return out
}

// assertCapacity checks that every crew-day with work sums to a full day exactly when
// it has spare hours, and that empty crew-days carry nothing.
func assertCapacity(t *testing.T, items []domain.ScheduleItem) {
	t.Helper()
	keys := map[domain.CrewDayKey]bool{}
	for _, item := range items {
		keys[item.Key()] = true
	}
	for key := range keys {
		used := ledger.UsedDuration(items, key)
		hasJob := false
		for _, item := range items {
			if item.Key() == key && item.IsJob() && !item.IsPlaceholder() {
				hasJob = true
			}
		}
		ps := placeholders(items, key)
		if !hasJob || !used.LessThan(decimalEight) {
			assert.Empty(t, ps, "crew-day %s", key)
			continue
		}
		require.Len(t, ps, 1, "crew-day %s", key)
		total := used.InexactFloat64() + *ps[0].Duration
		assert.InDelta(t, float64(domain.WorkdayHours), total, 1e-9, "crew-day %s", key)
	}
}

func TestReconcile_WorkedExample(t *testing.T) {
	key := domain.NewCrewDayKey("crew-c", day)

	items := ledger.Reconcile([]domain.ScheduleItem{job("j1", "crew-c", day, 5)}, key)
	ps := placeholders(items, key)
	require.Len(t, ps, 1)
	assert.Equal(t, 3.0, *ps[0].Duration)
	assert.Equal(t, domain.FreeSlotCustomer, ps[0].Customer)
	assert.Equal(t, ledger.PlaceholderID(key), ps[0].ItemID)
	assert.Equal(t, domain.JobStatusFree, ps[0].JobStatus)

	items = append(items, job("j2", "crew-c", day, 3))
	items = ledger.Reconcile(items, key)
	assert.Empty(t, placeholders(items, key))

	var remaining []domain.ScheduleItem
	for _, item := range items {
		if item.ItemID != "j1" {
			remaining = append(remaining, item)
		}
	}
	remaining = ledger.Reconcile(remaining, key)
	ps = placeholders(remaining, key)
	require.Len(t, ps, 1)
	assert.Equal(t, 5.0, *ps[0].Duration)
	assertCapacity(t, remaining)
}

func TestReconcile_NoPlaceholderWithoutWork(t *testing.T) {
	key := domain.NewCrewDayKey("crew-a", day)
	note := domain.ScheduleItem{ItemID: "n1", CrewID: "crew-a", Date: day, Type: domain.ItemTypeNote, NoteContent: "site closed"}
	stale := domain.ScheduleItem{ItemID: ledger.PlaceholderID(key), CrewID: "crew-a", Date: day, Type: domain.ItemTypeJob, Customer: domain.FreeSlotCustomer, Duration: domain.Float64Ptr(8)}

	items := ledger.Reconcile([]domain.ScheduleItem{note, stale}, key)

	assert.Empty(t, placeholders(items, key))
	assert.Len(t, items, 1)
}

func TestReconcile_FullDayHasNoPlaceholder(t *testing.T) {
	key := domain.NewCrewDayKey("crew-a", day)
	items := ledger.Reconcile([]domain.ScheduleItem{
		job("j1", "crew-a", day, 4.5),
		job("j2", "crew-a", day, 3.5),
	}, key)
	assert.Empty(t, placeholders(items, key))
}

func TestReconcile_CollapsesDuplicatePlaceholders(t *testing.T) {
	key := domain.NewCrewDayKey("crew-a", day)
	dup := func(hours float64) domain.ScheduleItem {
		return domain.ScheduleItem{ItemID: ledger.PlaceholderID(key), CrewID: "crew-a", Date: day, Type: domain.ItemTypeJob, Customer: domain.FreeSlotCustomer, Duration: domain.Float64Ptr(hours)}
	}
	items := ledger.Reconcile([]domain.ScheduleItem{job("j1", "crew-a", day, 2), dup(8), dup(1)}, key, key)

	ps := placeholders(items, key)
	require.Len(t, ps, 1)
	assert.Equal(t, 6.0, *ps[0].Duration)
}

func TestReconcile_BadDurationsCountAsZero(t *testing.T) {
	key := domain.NewCrewDayKey("crew-a", day)
	nan := job("j1", "crew-a", day, math.NaN())
	missing := job("j2", "crew-a", day, 0)
	missing.Duration = nil
	negative := job("j3", "crew-a", day, -4)
	inf := job("j4", "crew-a", day, math.Inf(1))

	var items []domain.ScheduleItem
	assert.NotPanics(t, func() {
		items = ledger.Reconcile([]domain.ScheduleItem{nan, missing, negative, inf, job("j5", "crew-a", day, 2)}, key)
	})

	ps := placeholders(items, key)
	require.Len(t, ps, 1)
	assert.Equal(t, 6.0, *ps[0].Duration)
}

func TestReconcile_FractionalHours(t *testing.T) {
	key := domain.NewCrewDayKey("crew-a", day)
	items := ledger.Reconcile([]domain.ScheduleItem{
		job("j1", "crew-a", day, 0.1),
		job("j2", "crew-a", day, 0.2),
		job("j3", "crew-a", day, 7.7),
	}, key)
	assert.Empty(t, placeholders(items, key))
}

func TestReconcile_MoveReconcilesBothKeys(t *testing.T) {
	tomorrow := day.AddDate(0, 0, 1)
	from := domain.NewCrewDayKey("crew-a", day)
	to := domain.NewCrewDayKey("crew-b", tomorrow)

	moving := job("j1", "crew-a", day, 5)
	items := ledger.ReconcileAll([]domain.ScheduleItem{
		moving,
		job("j2", "crew-a", day, 1),
		job("j3", "crew-b", tomorrow, 6),
	})
	assertCapacity(t, items)

	moved := moving
	moved.CrewID = "crew-b"
	moved.Date = tomorrow
	for i := range items {
		if items[i].ItemID == "j1" {
			items[i] = moved
		}
	}
	items = ledger.Reconcile(items, ledger.AffectedKeys(moved, &moving)...)

	src := placeholders(items, from)
	require.Len(t, src, 1)
	assert.Equal(t, 7.0, *src[0].Duration)
	// 6 + 5 overbooks the destination, which leaves no spare capacity
	assert.Empty(t, placeholders(items, to))
	assertCapacity(t, items)
}

func TestReconcileAll_Invariant(t *testing.T) {
	var items []domain.ScheduleItem
	durations := []float64{1, 2.5, 8, 3, 0.5, 4, 4, 7.75}
	for i, d := range durations {
		crew := []string{"crew-a", "crew-b", "crew-c"}[i%3]
		items = append(items, job("j"+string(rune('a'+i)), crew, day.AddDate(0, 0, i%2), d))
	}

	assertCapacity(t, ledger.ReconcileAll(items))
}

func TestAffectedKeys(t *testing.T) {
	a := job("j1", "crew-a", day, 2)
	assert.Len(t, ledger.AffectedKeys(a, nil), 1)
	assert.Len(t, ledger.AffectedKeys(a, &a), 1)

	b := a
	b.Date = day.AddDate(0, 0, 1)
	assert.ElementsMatch(t, []domain.CrewDayKey{a.Key(), b.Key()}, ledger.AffectedKeys(b, &a))
}
