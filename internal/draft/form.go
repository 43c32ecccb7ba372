package draft

import (
	"github.com/portfolio-mgmt/pms-wizard/internal/format"
	"github.com/shopspring/decimal"
)

// FormFields holds the live values of the add/edit form. Need-by date parts
// are entered separately; zero means unset.
type FormFields struct {
	Description         string          `json:"description"`
	Comments            string          `json:"comments"`
	Amount              decimal.Decimal `json:"amount"`
	CANID               *int64          `json:"canId,omitempty"`
	CAN                 *CANSnapshot    `json:"can,omitempty"`
	ServicesComponentID *int64          `json:"servicesComponentId,omitempty"`
	NeedByMonth         int             `json:"needByMonth,omitempty"`
	NeedByDay           int             `json:"needByDay,omitempty"`
	NeedByYear          int             `json:"needByYear,omitempty"`
}

// IsEmpty reports whether the form holds no user input.
func (f FormFields) IsEmpty() bool {
	return f.Description == "" &&
		f.Comments == "" &&
		f.Amount.IsZero() &&
		f.CANID == nil &&
		f.CAN == nil &&
		f.ServicesComponentID == nil &&
		f.NeedByMonth == 0 && f.NeedByDay == 0 && f.NeedByYear == 0
}

// Patch converts the form into a patch carrying every form field, which is
// what the edit flow commits. Empty nullable fields clear the item's value;
// an incomplete need-by date counts as empty.
func (f FormFields) Patch() ItemPatch {
	desc, comments, amount := f.Description, f.Comments, f.Amount
	p := ItemPatch{
		Description:            &desc,
		Comments:               &comments,
		Amount:                 &amount,
		CANID:                  f.CANID,
		CAN:                    f.CAN,
		ServicesComponentID:    f.ServicesComponentID,
		DateNeeded:             format.ComposeDate(f.NeedByMonth, f.NeedByDay, f.NeedByYear),
		ClearCAN:               f.CANID == nil,
		ClearServicesComponent: f.ServicesComponentID == nil,
	}
	p.ClearDateNeeded = p.DateNeeded == nil
	return p
}

func formFromItem(item LineItem) FormFields {
	m, d, y := format.SplitDate(item.DateNeeded)
	c := item.clone()
	return FormFields{
		Description:         c.Description,
		Comments:            c.Comments,
		Amount:              c.Amount,
		CANID:               c.CANID,
		CAN:                 c.CAN,
		ServicesComponentID: c.ServicesComponentID,
		NeedByMonth:         m,
		NeedByDay:           d,
		NeedByYear:          y,
	}
}
