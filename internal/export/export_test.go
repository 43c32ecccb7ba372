package export_test

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/portfolio-mgmt/pms-wizard/internal/domain"
	"github.com/portfolio-mgmt/pms-wizard/internal/draft"
	"github.com/portfolio-mgmt/pms-wizard/internal/export"
	"github.com/portfolio-mgmt/pms-wizard/internal/mapper"
	"github.com/portfolio-mgmt/pms-wizard/internal/session"
)

func int64Ptr(v int64) *int64 { return &v }

func sampleWizard() domain.WizardDTO {
	items := []draft.LineItem{
		{ID: "a", Description: "Year 1", Amount: decimal.NewFromInt(1000), ProcShopFeePercentage: decimal.RequireFromString("0.05"), ServicesComponentID: int64Ptr(1), Status: draft.StatusDraft, CAN: &draft.CANSnapshot{ID: 5, Number: "G99HRF2"}},
		{ID: "b", Description: "Year 2", Amount: decimal.NewFromInt(2000), ProcShopFeePercentage: decimal.RequireFromString("0.10"), ServicesComponentID: int64Ptr(2), Status: draft.StatusPlanned},
		{ID: "c", Description: "Unassigned", Amount: decimal.NewFromInt(300), Status: draft.StatusDraft},
	}
	w := &session.Wizard{ID: "w", AgreementID: 9, State: draft.Seed(items)}
	return mapper.ToWizardDTO(w, "wizard:w", map[int64]string{1: "SC1", 2: "SC2"})
}

func TestWriteSummary(t *testing.T) {
	dto := sampleWizard()
	var buf bytes.Buffer
	require.NoError(t, export.WriteSummary(&buf, dto))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(export.SheetLines)
	require.NoError(t, err)
	require.Len(t, rows, 1+3+1, "header, one row per item, totals")
	assert.Equal(t, "Services Component", rows[0][0])
	assert.Equal(t, "SC1", rows[1][0])
	assert.Equal(t, "Year 1", rows[1][2])
	assert.Equal(t, "TBD", rows[1][3])
	assert.Equal(t, "G99HRF2", rows[1][4])
	assert.Equal(t, "TBD", rows[3][0])
	assert.Equal(t, "Total", rows[4][0])

	total, err := f.GetCellValue(export.SheetLines, "I5", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "3550", total)

	summary, err := f.GetRows(export.SheetSummary)
	require.NoError(t, err)
	assert.Len(t, summary, 1+3)

	assert.Equal(t, "agreement-9-budget-lines.xlsx", export.Filename(dto))
}

func TestWriteSummary_Empty(t *testing.T) {
	w := &session.Wizard{ID: "w", AgreementID: 1, State: draft.New()}
	var buf bytes.Buffer
	require.NoError(t, export.WriteSummary(&buf, mapper.ToWizardDTO(w, "wizard:w", nil)))
	assert.NotZero(t, buf.Len())
}
