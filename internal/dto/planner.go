package dto

import (
	"github.com/SscSPs/crew_planner/internal/core/domain"
	"github.com/SscSPs/crew_planner/internal/core/ledger"
)

// OpenPlannerSessionRequest loads a range of the schedule into a new planner session.
type OpenPlannerSessionRequest struct {
	From    string  `json:"from" binding:"required"`
	To      string  `json:"to" binding:"required"`
	CrewID  *string `json:"crewID"`
	DepotID *string `json:"depotID"`
}

// ToListParams reuses the list range parsing.
func (r OpenPlannerSessionRequest) ToListParams() ListScheduleItemsParams {
	return ListScheduleItemsParams{From: r.From, To: r.To, CrewID: r.CrewID, DepotID: r.DepotID}
}

// PlannerMutationRequest describes one create, update or delete inside a session.
type PlannerMutationRequest struct {
	Kind   string             `json:"kind" binding:"required,oneof=create update delete"`
	ItemID string             `json:"itemID"`
	Item   *ScheduleItemInput `json:"item"`
}

// ToMutation converts the request into a ledger mutation.
func (r PlannerMutationRequest) ToMutation() (ledger.MutationRequest, error) {
	req := ledger.MutationRequest{Kind: ledger.OperationKind(r.Kind), ItemID: r.ItemID}
	if r.Item != nil {
		item, err := r.Item.ToDomain()
		if err != nil {
			return ledger.MutationRequest{}, err
		}
		item.ItemID = r.ItemID
		req.Item = &item
	}
	return req, nil
}

// PlannerSessionResponse is the session view with its history depth.
type PlannerSessionResponse struct {
	SessionID string                 `json:"sessionID"`
	Items     []ScheduleItemResponse `json:"items"`
	CanUndo   bool                   `json:"canUndo"`
	CanRedo   bool                   `json:"canRedo"`
	UndoDepth int                    `json:"undoDepth"`
	RedoDepth int                    `json:"redoDepth"`
}

// ToPlannerSessionResponse converts ledger.SessionState to DTO.
func ToPlannerSessionResponse(s *ledger.SessionState) PlannerSessionResponse {
	return PlannerSessionResponse{
		SessionID: s.SessionID,
		Items:     ToScheduleItemResponses(s.Items),
		CanUndo:   s.CanUndo,
		CanRedo:   s.CanRedo,
		UndoDepth: s.UndoDepth,
		RedoDepth: s.RedoDepth,
	}
}

// PlannerMutationResponse returns the written item (absent for deletes) and the new view.
type PlannerMutationResponse struct {
	Item    *ScheduleItemResponse  `json:"item,omitempty"`
	Session PlannerSessionResponse `json:"session"`
}

func ToPlannerMutationResponse(item *domain.ScheduleItem, state *ledger.SessionState) PlannerMutationResponse {
	resp := PlannerMutationResponse{Session: ToPlannerSessionResponse(state)}
	if item != nil {
		r := ToScheduleItemResponse(item)
		resp.Item = &r
	}
	return resp
}
