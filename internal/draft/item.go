// Package draft implements the budget-line wizard store: an in-memory,
// value-semantics reducer over draft budget line items plus the derived
// views (grouping by services component, totals) the wizard renders.
package draft

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Status is the lifecycle status of a budget line item.
type Status string

const (
	StatusDraft       Status = "DRAFT"
	StatusPlanned     Status = "PLANNED"
	StatusInExecution Status = "IN_EXECUTION"
	StatusObligated   Status = "OBLIGATED"
)

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusPlanned, StatusInExecution, StatusObligated:
		return true
	}
	return false
}

var (
	// ErrItemNotFound is returned when an operation references an id that is not in the store.
	ErrItemNotFound = errors.New("draft item not found")
	// ErrNotEditing is returned by CommitEdit when no item is being edited.
	ErrNotEditing = errors.New("no item is being edited")
	// ErrUnknownAction is returned by Dispatch for an unrecognised action type.
	ErrUnknownAction = errors.New("unknown action type")
)

// CANSnapshot is the denormalised copy of a CAN kept on an item for display.
type CANSnapshot struct {
	ID          int64  `json:"id"`
	Number      string `json:"number"`
	Description string `json:"description,omitempty"`
}

// Persistence carries the server-assigned fields of a saved item. Its
// presence on a LineItem is what makes the item Persisted rather than New.
type Persistence struct {
	ServerID  int64     `json:"serverId"`
	CreatedOn time.Time `json:"createdOn"`
	CreatedBy string    `json:"createdBy,omitempty"`
	UpdatedOn time.Time `json:"updatedOn"`
}

// LineItem is one budget line being composed in the wizard.
type LineItem struct {
	ID                  string          `json:"id"`
	Description         string          `json:"description"`
	Comments            string          `json:"comments"`
	Amount              decimal.Decimal `json:"amount"`
	CANID               *int64          `json:"canId,omitempty"`
	CAN                 *CANSnapshot    `json:"can,omitempty"`
	AgreementID         int64           `json:"agreementId"`
	ServicesComponentID *int64          `json:"servicesComponentId,omitempty"`
	Status              Status          `json:"status"`
	DateNeeded          *time.Time      `json:"dateNeeded,omitempty"`
	// ProcShopFeePercentage is a fraction: 0.05 is a 5% fee.
	ProcShopFeePercentage decimal.Decimal `json:"procShopFeePercentage"`
	PSCFeeAmount          decimal.Decimal `json:"pscFeeAmount"`
	Persisted             *Persistence    `json:"persisted,omitempty"`
}

// IsPersisted reports whether the item already exists on the server.
func (li LineItem) IsPersisted() bool {
	return li.Persisted != nil
}

// Fee returns the item's fee using its own snapshotted rate.
func (li LineItem) Fee() decimal.Decimal {
	return li.Amount.Mul(li.ProcShopFeePercentage)
}

func (li LineItem) clone() LineItem {
	out := li
	if li.CANID != nil {
		v := *li.CANID
		out.CANID = &v
	}
	if li.CAN != nil {
		v := *li.CAN
		out.CAN = &v
	}
	if li.ServicesComponentID != nil {
		v := *li.ServicesComponentID
		out.ServicesComponentID = &v
	}
	if li.DateNeeded != nil {
		v := *li.DateNeeded
		out.DateNeeded = &v
	}
	if li.Persisted != nil {
		v := *li.Persisted
		out.Persisted = &v
	}
	return out
}

// Partition splits items into those that must be created and those that
// already exist on the server and must be updated.
func Partition(items []LineItem) (created, existing []LineItem) {
	for _, item := range items {
		if item.IsPersisted() {
			existing = append(existing, item)
		} else {
			created = append(created, item)
		}
	}
	return created, existing
}
