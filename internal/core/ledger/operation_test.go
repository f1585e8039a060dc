package ledger_test

import (
	"math"
	"testing"

	"github.com/SscSPs/crew_planner/internal/apperrors"
	"github.com/SscSPs/crew_planner/internal/core/domain"
	"github.com/SscSPs/crew_planner/internal/core/ledger"
	"github.com/stretchr/testify/assert"
)

func TestValidateItem(t *testing.T) {
	valid := job("j1", "crew-a", day, 4)

	tests := []struct {
		name    string
		mutate  func(*domain.ScheduleItem)
		wantErr bool
	}{
		{name: "valid job", mutate: func(*domain.ScheduleItem) {}},
		{name: "note without duration", mutate: func(i *domain.ScheduleItem) {
			i.Type = domain.ItemTypeNote
			i.Duration = nil
		}},
		{name: "job without duration", mutate: func(i *domain.ScheduleItem) { i.Duration = nil }, wantErr: true},
		{name: "NaN duration", mutate: func(i *domain.ScheduleItem) { i.Duration = domain.Float64Ptr(math.NaN()) }, wantErr: true},
		{name: "zero duration", mutate: func(i *domain.ScheduleItem) { i.Duration = domain.Float64Ptr(0) }, wantErr: true},
		{name: "over a workday", mutate: func(i *domain.ScheduleItem) { i.Duration = domain.Float64Ptr(8.5) }, wantErr: true},
		{name: "exactly a workday", mutate: func(i *domain.ScheduleItem) { i.Duration = domain.Float64Ptr(8) }},
		{name: "placeholder", mutate: func(i *domain.ScheduleItem) { i.Customer = domain.FreeSlotCustomer }, wantErr: true},
		{name: "unknown type", mutate: func(i *domain.ScheduleItem) { i.Type = "meeting" }, wantErr: true},
		{name: "missing crew", mutate: func(i *domain.ScheduleItem) { i.CrewID = "" }, wantErr: true},
		{name: "unknown job status", mutate: func(i *domain.ScheduleItem) { i.JobStatus = "done" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := valid
			tt.mutate(&item)
			err := ledger.ValidateItem(item)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMutationRequest_Validate(t *testing.T) {
	item := job("", "crew-a", day, 2)

	assert.NoError(t, ledger.MutationRequest{Kind: ledger.OpCreate, Item: &item}.Validate())
	assert.NoError(t, ledger.MutationRequest{Kind: ledger.OpDelete, ItemID: "item-1"}.Validate())
	assert.NoError(t, ledger.MutationRequest{Kind: ledger.OpUpdate, ItemID: "item-1", Item: &item}.Validate())

	assert.ErrorIs(t, ledger.MutationRequest{Kind: "move", Item: &item}.Validate(), apperrors.ErrValidation)
	assert.ErrorIs(t, ledger.MutationRequest{Kind: ledger.OpCreate}.Validate(), apperrors.ErrValidation)
	assert.ErrorIs(t, ledger.MutationRequest{Kind: ledger.OpDelete}.Validate(), apperrors.ErrValidation)
	assert.ErrorIs(t, ledger.MutationRequest{Kind: ledger.OpUpdate, Item: &item}.Validate(), apperrors.ErrValidation)
}

func TestOperation_Inverse(t *testing.T) {
	before := job("j1", "crew-a", day, 2)
	after := before
	after.Duration = domain.Float64Ptr(5)

	create := ledger.NewCreate(before)
	assert.Equal(t, ledger.OpDelete, create.Inverse().Kind)
	assert.Equal(t, ledger.OpCreate, create.Inverse().Inverse().Kind)

	update := ledger.NewUpdate(after, before)
	inv := update.Inverse()
	assert.Equal(t, ledger.OpUpdate, inv.Kind)
	assert.Equal(t, 2.0, *inv.Item.Duration)
	assert.Equal(t, 5.0, *inv.Previous.Duration)

	assert.NoError(t, update.Validate())
	assert.ErrorIs(t, ledger.Operation{Kind: ledger.OpUpdate, Item: after}.Validate(), apperrors.ErrValidation)
}
