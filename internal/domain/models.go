package domain

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// BudgetLineStatus is the lifecycle status of a stored budget line item
type BudgetLineStatus string

const (
	BudgetLineStatusDraft       BudgetLineStatus = "DRAFT"
	BudgetLineStatusPlanned     BudgetLineStatus = "PLANNED"
	BudgetLineStatusInExecution BudgetLineStatus = "IN_EXECUTION"
	BudgetLineStatusObligated   BudgetLineStatus = "OBLIGATED"
)

// ProcurementShop is the organization that runs an agreement's acquisition
type ProcurementShop struct {
	ID   int64  `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(200);not null" json:"name"`
	Abbr string `gorm:"type:varchar(20);not null" json:"abbr"`
	// FeePercentage is a fraction: 0.005 is a half-percent fee
	FeePercentage decimal.Decimal `gorm:"type:numeric(10,6);not null;default:0;column:fee_percentage" json:"feePercentage"`
	CreatedAt     time.Time       `gorm:"not null" json:"createdAt"`
	UpdatedAt     time.Time       `gorm:"not null" json:"updatedAt"`
}

// Agreement is a contract or grant that budget lines are planned against
type Agreement struct {
	ID                int64            `gorm:"primaryKey" json:"id"`
	Name              string           `gorm:"type:varchar(500);not null" json:"name"`
	ProcurementShopID *int64           `gorm:"column:procurement_shop_id" json:"procurementShopId,omitempty"`
	ProcurementShop   *ProcurementShop `gorm:"foreignKey:ProcurementShopID" json:"procurementShop,omitempty"`
	CreatedAt         time.Time        `gorm:"not null" json:"createdAt"`
	UpdatedAt         time.Time        `gorm:"not null" json:"updatedAt"`
}

// CAN is a Common Accounting Number, the funding source of a budget line
type CAN struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Number      string    `gorm:"type:varchar(30);not null;uniqueIndex" json:"number"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null" json:"updatedAt"`
}

// TableName keeps the table name lowercase plural
func (CAN) TableName() string {
	return "cans"
}

// ServicesComponent groups an agreement's budget lines by period or option
type ServicesComponent struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	AgreementID int64     `gorm:"not null;index;column:agreement_id" json:"agreementId"`
	Number      int       `gorm:"not null" json:"number"`
	Optional    bool      `gorm:"not null;default:false" json:"optional"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null" json:"updatedAt"`
}

// DisplayName renders the services component the way the budget tables label it
func (sc ServicesComponent) DisplayName() string {
	prefix := "SC"
	if sc.Optional {
		prefix = "OSC"
	}
	return prefix + strconv.Itoa(sc.Number)
}

// BudgetLineItem is a saved budget line
type BudgetLineItem struct {
	ID                  int64              `gorm:"primaryKey" json:"id"`
	AgreementID         int64              `gorm:"not null;index;column:agreement_id" json:"agreementId"`
	Description         string             `gorm:"type:text;column:line_description" json:"description"`
	Comments            string             `gorm:"type:text" json:"comments"`
	Amount              decimal.Decimal    `gorm:"type:numeric(14,2);not null;default:0" json:"amount"`
	CANID               *int64             `gorm:"column:can_id" json:"canId,omitempty"`
	CAN                 *CAN               `gorm:"foreignKey:CANID" json:"can,omitempty"`
	ServicesComponentID *int64             `gorm:"column:services_component_id" json:"servicesComponentId,omitempty"`
	ServicesComponent   *ServicesComponent `gorm:"foreignKey:ServicesComponentID" json:"-"`
	Status              BudgetLineStatus   `gorm:"type:varchar(20);not null;default:'DRAFT'" json:"status"`
	DateNeeded          *time.Time         `gorm:"type:date;column:date_needed" json:"dateNeeded,omitempty"`
	// ProcShopFeePercentage is the fee rate snapshotted when the line was added
	ProcShopFeePercentage decimal.Decimal `gorm:"type:numeric(10,6);not null;default:0;column:proc_shop_fee_percentage" json:"procShopFeePercentage"`
	CreatedBy             string          `gorm:"type:varchar(100);column:created_by" json:"createdBy,omitempty"`
	CreatedAt             time.Time       `gorm:"not null" json:"createdOn"`
	UpdatedAt             time.Time       `gorm:"not null" json:"updatedOn"`
}
