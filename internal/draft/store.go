package draft

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NoIndex is the editingIndex sentinel meaning no item is being edited.
const NoIndex = -1

// State is the wizard store. Every operation returns a new State and leaves
// the receiver untouched, so a State can be shared and snapshotted freely.
type State struct {
	Items        []LineItem `json:"items"`
	EditingIndex int        `json:"editingIndex"`
	IsEditing    bool       `json:"isEditing"`
	Form         FormFields `json:"form"`
}

// AddPayload carries the fields of a new item that do not come from the form.
type AddPayload struct {
	AgreementID           int64
	ProcShopFeePercentage decimal.Decimal
}

// ItemPatch is a shallow patch; nil fields are left unchanged. The Clear
// flags empty a nullable field and apply only when its value is nil.
type ItemPatch struct {
	Description         *string
	Comments            *string
	Amount              *decimal.Decimal
	CANID               *int64
	CAN                 *CANSnapshot
	ServicesComponentID *int64
	Status              *Status
	DateNeeded          *time.Time

	ClearCAN               bool
	ClearServicesComponent bool
	ClearDateNeeded        bool
}

// newID generates a local identifier for an item that has not been saved.
var newID = uuid.NewString

// New returns an empty store.
func New() State {
	return State{EditingIndex: NoIndex}
}

// Seed returns a store pre-populated with items (normally the persisted
// items of the agreement being edited).
func Seed(items []LineItem) State {
	s := New()
	s.Items = cloneItems(items)
	return s
}

// SetForm replaces the live form values.
func (s State) SetForm(f FormFields) State {
	next := s.copy()
	next.Form = f
	return next
}

// AddItem appends a new DRAFT item built from the current form and clears
// the form and edit state. The store performs no validation.
func (s State) AddItem(p AddPayload) State {
	next := s.copy()
	patch := s.Form.Patch()
	item := LineItem{
		ID:                    newID(),
		AgreementID:           p.AgreementID,
		Status:                StatusDraft,
		ProcShopFeePercentage: p.ProcShopFeePercentage,
	}
	item = applyPatch(item, patch)
	next.Items = append(next.Items, item)
	return next.clearEdit()
}

// SetItemForEditing loads the item with the given id into the form.
func (s State) SetItemForEditing(id string) (State, error) {
	idx := s.indexOf(id)
	if idx == NoIndex {
		return s, fmt.Errorf("edit %s: %w", id, ErrItemNotFound)
	}
	next := s.copy()
	next.Form = formFromItem(s.Items[idx])
	next.EditingIndex = idx
	next.IsEditing = true
	return next, nil
}

// CommitEdit merges patch into the item being edited and clears edit state.
func (s State) CommitEdit(patch ItemPatch) (State, error) {
	if !s.IsEditing || s.EditingIndex < 0 || s.EditingIndex >= len(s.Items) {
		return s, ErrNotEditing
	}
	next := s.copy()
	next.Items[s.EditingIndex] = applyPatch(next.Items[s.EditingIndex], patch)
	return next.clearEdit(), nil
}

// DuplicateItem appends a DRAFT copy of the item with the given id. The copy
// gets a fresh id and loses any server-assigned fields.
func (s State) DuplicateItem(id string) (State, error) {
	idx := s.indexOf(id)
	if idx == NoIndex {
		return s, fmt.Errorf("duplicate %s: %w", id, ErrItemNotFound)
	}
	next := s.copy()
	dup := s.Items[idx].clone()
	dup.ID = newID()
	dup.Status = StatusDraft
	dup.Persisted = nil
	next.Items = append(next.Items, dup)
	return next, nil
}

// DeleteItem removes the item with the given id. Form and edit state are
// cleared whether or not the item was found or being edited.
func (s State) DeleteItem(id string) (State, error) {
	next := s.copy().clearEdit()
	idx := s.indexOf(id)
	if idx == NoIndex {
		return next, fmt.Errorf("delete %s: %w", id, ErrItemNotFound)
	}
	next.Items = append(next.Items[:idx], next.Items[idx+1:]...)
	return next, nil
}

// ResetForm clears the form and edit state; items are untouched.
func (s State) ResetForm() State {
	return s.copy().clearEdit()
}

// ResetAll returns the empty initial state.
func (s State) ResetAll() State {
	return New()
}

// Find returns the item with the given id.
func (s State) Find(id string) (LineItem, bool) {
	idx := s.indexOf(id)
	if idx == NoIndex {
		return LineItem{}, false
	}
	return s.Items[idx].clone(), true
}

// Dirty reports whether the store holds anything that would be lost on
// navigation: an unsaved item or a non-empty form.
func (s State) Dirty() bool {
	if !s.Form.IsEmpty() {
		return true
	}
	for _, item := range s.Items {
		if !item.IsPersisted() {
			return true
		}
	}
	return false
}

func (s State) indexOf(id string) int {
	for i, item := range s.Items {
		if item.ID == id {
			return i
		}
	}
	return NoIndex
}

func (s State) copy() State {
	next := s
	next.Items = cloneItems(s.Items)
	return next
}

func (s State) clearEdit() State {
	s.Form = FormFields{}
	s.EditingIndex = NoIndex
	s.IsEditing = false
	return s
}

func cloneItems(items []LineItem) []LineItem {
	if items == nil {
		return nil
	}
	out := make([]LineItem, len(items))
	for i, item := range items {
		out[i] = item.clone()
	}
	return out
}

func applyPatch(item LineItem, p ItemPatch) LineItem {
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.Comments != nil {
		item.Comments = *p.Comments
	}
	if p.Amount != nil {
		item.Amount = *p.Amount
	}
	switch {
	case p.CANID != nil:
		v := *p.CANID
		item.CANID = &v
	case p.ClearCAN:
		item.CANID, item.CAN = nil, nil
	}
	if p.CAN != nil {
		v := *p.CAN
		item.CAN = &v
	}
	switch {
	case p.ServicesComponentID != nil:
		v := *p.ServicesComponentID
		item.ServicesComponentID = &v
	case p.ClearServicesComponent:
		item.ServicesComponentID = nil
	}
	if p.Status != nil {
		item.Status = *p.Status
	}
	switch {
	case p.DateNeeded != nil:
		v := *p.DateNeeded
		item.DateNeeded = &v
	case p.ClearDateNeeded:
		item.DateNeeded = nil
	}
	item.PSCFeeAmount = item.Fee()
	return item
}
