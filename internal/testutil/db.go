// Package testutil provides database fixtures for package tests.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/portfolio-mgmt/pms-wizard/internal/config"
	"github.com/portfolio-mgmt/pms-wizard/internal/database"
	"github.com/portfolio-mgmt/pms-wizard/internal/domain"
)

var seq atomic.Int64

// SetupTestDB opens a migrated in-memory SQLite database owned by t.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewDatabase(&config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// CreateTestAgreement creates an agreement whose procurement shop charges feeRate.
func CreateTestAgreement(t *testing.T, db *gorm.DB, name string, feeRate string) *domain.Agreement {
	t.Helper()
	shop := &domain.ProcurementShop{
		Name:          "Shop for " + name,
		Abbr:          "PSC",
		FeePercentage: decimal.RequireFromString(feeRate),
	}
	require.NoError(t, db.Create(shop).Error)

	agreement := &domain.Agreement{Name: name, ProcurementShopID: &shop.ID}
	require.NoError(t, db.Create(agreement).Error)
	agreement.ProcurementShop = shop
	return agreement
}

// CreateTestCAN creates a CAN with a unique number.
func CreateTestCAN(t *testing.T, db *gorm.DB) *domain.CAN {
	t.Helper()
	can := &domain.CAN{
		Number:      fmt.Sprintf("G99%04d", seq.Add(1)),
		Description: "Test funding",
	}
	require.NoError(t, db.Create(can).Error)
	return can
}

// CreateTestServicesComponent creates services component number n of an agreement.
func CreateTestServicesComponent(t *testing.T, db *gorm.DB, agreementID int64, n int) *domain.ServicesComponent {
	t.Helper()
	sc := &domain.ServicesComponent{AgreementID: agreementID, Number: n}
	require.NoError(t, db.Create(sc).Error)
	return sc
}

// CreateTestBudgetLine stores a budget line of an agreement.
func CreateTestBudgetLine(t *testing.T, db *gorm.DB, agreementID int64, amount int64, canID, scID *int64) *domain.BudgetLineItem {
	t.Helper()
	needed := time.Now().UTC().AddDate(0, 3, 0).Truncate(24 * time.Hour)
	item := &domain.BudgetLineItem{
		AgreementID:           agreementID,
		Description:           "Existing line",
		Amount:                decimal.NewFromInt(amount),
		CANID:                 canID,
		ServicesComponentID:   scID,
		Status:                domain.BudgetLineStatusPlanned,
		DateNeeded:            &needed,
		ProcShopFeePercentage: decimal.RequireFromString("0.01"),
		CreatedBy:             "seed",
	}
	require.NoError(t, db.Create(item).Error)
	return item
}
