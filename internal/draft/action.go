package draft

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ActionType names a store transition.
type ActionType string

const (
	ActionSetForm    ActionType = "SET_FORM"
	ActionAddItem    ActionType = "ADD_ITEM"
	ActionSetEdit    ActionType = "SET_EDIT"
	ActionCommitEdit ActionType = "COMMIT_EDIT"
	ActionDuplicate  ActionType = "DUPLICATE"
	ActionDelete     ActionType = "DELETE"
	ActionResetForm  ActionType = "RESET_FORM"
	ActionResetAll   ActionType = "RESET_ALL"
)

// Action is a serialisable store transition. ItemID is used by SET_EDIT,
// DUPLICATE and DELETE; Form by SET_FORM, ADD_ITEM and COMMIT_EDIT (when
// present it replaces the live form before the transition runs).
type Action struct {
	Type   ActionType  `json:"type"`
	ItemID string      `json:"itemId,omitempty"`
	Form   *FormFields `json:"form,omitempty"`
	Status *Status     `json:"status,omitempty"`

	// Set by the caller, never decoded from clients.
	AgreementID           int64           `json:"-"`
	ProcShopFeePercentage decimal.Decimal `json:"-"`
}

// Dispatch applies an action to s. On error the returned state is the
// state the store should keep (for DELETE that is the cleared form).
func Dispatch(s State, a Action) (State, error) {
	switch a.Type {
	case ActionSetForm:
		if a.Form == nil {
			return s, fmt.Errorf("%s: form is required", a.Type)
		}
		return s.SetForm(*a.Form), nil
	case ActionAddItem:
		if a.Form != nil {
			s = s.SetForm(*a.Form)
		}
		return s.AddItem(AddPayload{
			AgreementID:           a.AgreementID,
			ProcShopFeePercentage: a.ProcShopFeePercentage,
		}), nil
	case ActionSetEdit:
		return s.SetItemForEditing(a.ItemID)
	case ActionCommitEdit:
		if a.Form != nil {
			s = s.SetForm(*a.Form)
		}
		patch := s.Form.Patch()
		patch.Status = a.Status
		return s.CommitEdit(patch)
	case ActionDuplicate:
		return s.DuplicateItem(a.ItemID)
	case ActionDelete:
		return s.DeleteItem(a.ItemID)
	case ActionResetForm:
		return s.ResetForm(), nil
	case ActionResetAll:
		return s.ResetAll(), nil
	default:
		return s, fmt.Errorf("%q: %w", a.Type, ErrUnknownAction)
	}
}
