package domain

import (
	"github.com/shopspring/decimal"

	"github.com/portfolio-mgmt/pms-wizard/internal/draft"
)

// CreateWizardRequest opens a budget-line wizard for an agreement
type CreateWizardRequest struct {
	AgreementID int64 `json:"agreementId" validate:"required,gt=0"`
	// ClientID names the navigation registry the wizard's blocker joins
	ClientID string `json:"clientId" validate:"required,max=100"`
}

// TotalsDTO is a totals row, raw and formatted
type TotalsDTO struct {
	Subtotal          decimal.Decimal `json:"subtotal"`
	Fees              decimal.Decimal `json:"fees"`
	Total             decimal.Decimal `json:"total"`
	SubtotalFormatted string          `json:"subtotalFormatted"`
	FeesFormatted     string          `json:"feesFormatted"`
	TotalFormatted    string          `json:"totalFormatted"`
}

// GroupDTO is one services component group of the wizard
type GroupDTO struct {
	ServicesComponentID *int64           `json:"servicesComponentId"`
	Name                string           `json:"name"`
	Items               []draft.LineItem `json:"items"`
	Totals              TotalsDTO        `json:"totals"`
	// PercentOfTotal is the group's share of the wizard total, rounded
	PercentOfTotal int `json:"percentOfTotal"`
}

// WizardDTO is a wizard session with its derived views
type WizardDTO struct {
	ID          string      `json:"id"`
	AgreementID int64       `json:"agreementId"`
	ClientID    string      `json:"clientId"`
	BlockerID   string      `json:"blockerId"`
	State       draft.State `json:"state"`
	Groups      []GroupDTO  `json:"groups"`
	Totals      TotalsDTO   `json:"totals"`
	Dirty       bool        `json:"dirty"`
}

// SaveResultDTO reports the outcome of saving a wizard
type SaveResultDTO struct {
	Created []int64 `json:"created"`
	Updated []int64 `json:"updated"`
	Deleted []int64 `json:"deleted"`
}

// RouteDTO is a client-side route
type RouteDTO struct {
	Pathname string `json:"pathname" validate:"required"`
	Search   string `json:"search"`
}

// ModalDTO describes the confirmation modal of a blocker
type ModalDTO struct {
	Heading        string `json:"heading" validate:"required,max=500"`
	Description    string `json:"description,omitempty"`
	ConfirmLabel   string `json:"confirmLabel,omitempty"`
	SecondaryLabel string `json:"secondaryLabel,omitempty"`
	CancelLabel    string `json:"cancelLabel,omitempty"`
}

// RegisterBlockerRequest registers or replaces a blocker
type RegisterBlockerRequest struct {
	ShouldBlock bool     `json:"shouldBlock"`
	Modal       ModalDTO `json:"modal"`
}

// UpdateBlockerRequest merges into an existing blocker
type UpdateBlockerRequest struct {
	ShouldBlock *bool     `json:"shouldBlock,omitempty"`
	Modal       *ModalDTO `json:"modal,omitempty"`
}

// BlockerDTO is a registered blocker
type BlockerDTO struct {
	ID          string   `json:"id"`
	ShouldBlock bool     `json:"shouldBlock"`
	Modal       ModalDTO `json:"modal"`
}

// NavigationAttemptRequest asks whether a route change may proceed
type NavigationAttemptRequest struct {
	From RouteDTO `json:"from"`
	To   RouteDTO `json:"to"`
}

// NavigationDecisionDTO answers a navigation attempt
type NavigationDecisionDTO struct {
	Proceed bool      `json:"proceed"`
	Blocker string    `json:"blocker,omitempty"`
	Modal   *ModalDTO `json:"modal,omitempty"`
	State   string    `json:"state"`
}

// ResolveNavigationRequest resolves the pending navigation
type ResolveNavigationRequest struct {
	Action string `json:"action" validate:"required,oneof=confirm secondary dismiss"`
}

// NavigationOutcomeDTO is the result of resolving a navigation
type NavigationOutcomeDTO struct {
	Proceed bool     `json:"proceed"`
	Action  string   `json:"action"`
	From    RouteDTO `json:"from"`
	To      RouteDTO `json:"to"`
	Error   string   `json:"error,omitempty"`
}

// ValidationResultDTO is the result of running a rule set
type ValidationResultDTO struct {
	Suite  string              `json:"suite"`
	Valid  bool                `json:"valid"`
	Errors map[string][]string `json:"errors"`
}

// HealthDTO is the body of the health endpoints
type HealthDTO struct {
	Status   string            `json:"status"`
	Checks   map[string]string `json:"checks,omitempty"`
	Database map[string]any    `json:"database,omitempty"`
}

// ServicesComponentDTO is a services component option of the wizard form
type ServicesComponentDTO struct {
	ID          int64  `json:"id"`
	Number      int    `json:"number"`
	Optional    bool   `json:"optional"`
	DisplayName string `json:"displayName"`
	Description string `json:"description,omitempty"`
}
