package ledger

import (
	"fmt"
	"math"
	"strings"

	"github.com/SscSPs/crew_planner/internal/apperrors"
	"github.com/SscSPs/crew_planner/internal/core/domain"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// OperationKind tags an Operation variant.
type OperationKind string

const (
	OpCreate OperationKind = "create"
	OpUpdate OperationKind = "update"
	OpDelete OperationKind = "delete"
)

// Operation is one recorded ledger mutation. Previous is only set for updates.
type Operation struct {
	Kind     OperationKind        `validate:"required,oneof=create update delete"`
	Item     domain.ScheduleItem  `validate:"-"`
	Previous *domain.ScheduleItem `validate:"required_if=Kind update"`
}

func NewCreate(item domain.ScheduleItem) Operation {
	return Operation{Kind: OpCreate, Item: item}
}

func NewUpdate(item, previous domain.ScheduleItem) Operation {
	return Operation{Kind: OpUpdate, Item: item, Previous: &previous}
}

func NewDelete(item domain.ScheduleItem) Operation {
	return Operation{Kind: OpDelete, Item: item}
}

// Inverse returns the operation that reverts o.
func (o Operation) Inverse() Operation {
	switch o.Kind {
	case OpCreate:
		return NewDelete(o.Item)
	case OpDelete:
		return NewCreate(o.Item)
	default:
		return NewUpdate(*o.Previous, o.Item)
	}
}

// Validate checks the operation shape and the items it carries.
func (o Operation) Validate() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if err := ValidateItem(o.Item); err != nil {
		return err
	}
	if o.Kind == OpUpdate {
		if err := ValidateItem(*o.Previous); err != nil {
			return err
		}
	}
	return nil
}

// MutationRequest is the client-supplied description of a mutation before the session resolves it
// against its view.
type MutationRequest struct {
	Kind   OperationKind        `json:"kind" validate:"required,oneof=create update delete"`
	ItemID string               `json:"itemId" validate:"required_unless=Kind create"`
	Item   *domain.ScheduleItem `json:"item" validate:"required_unless=Kind delete"`
}

func (r MutationRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if r.Item != nil {
		return ValidateItem(*r.Item)
	}
	return nil
}

// ValidateItem enforces the field rules shared by every write path.
func ValidateItem(item domain.ScheduleItem) error {
	if item.IsPlaceholder() || strings.HasPrefix(item.ItemID, domain.PlaceholderIDPrefix) {
		return apperrors.NewValidationFailedError("capacity placeholders cannot be written")
	}
	if !item.Type.IsValid() {
		return apperrors.NewValidationFailedError(fmt.Sprintf("unknown item type %q", item.Type))
	}
	if item.CrewID == "" {
		return apperrors.NewValidationFailedError("crewID is required")
	}
	if item.Date.IsZero() {
		return apperrors.NewValidationFailedError("date is required")
	}
	if item.IsJob() {
		if item.Duration == nil {
			return apperrors.NewValidationFailedError("duration is required for jobs")
		}
		d := *item.Duration
		if math.IsNaN(d) || math.IsInf(d, 0) {
			return apperrors.NewValidationFailedError("duration must be numeric")
		}
		if d <= 0 || d > domain.WorkdayHours {
			return apperrors.NewValidationFailedError(fmt.Sprintf("duration must be in (0, %d]", domain.WorkdayHours))
		}
	}
	if item.JobStatus != "" {
		switch item.JobStatus {
		case domain.JobStatusFree, domain.JobStatusBooked, domain.JobStatusCancelled:
		default:
			return apperrors.NewValidationFailedError(fmt.Sprintf("unknown job status %q", item.JobStatus))
		}
	}
	return nil
}
