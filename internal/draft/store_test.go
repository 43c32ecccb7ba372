package draft_test

import (
	"testing"
	"time"

	"github.com/portfolio-mgmt/pms-wizard/internal/draft"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func addItem(t *testing.T, s draft.State, desc, amount string, sc *int64) draft.State {
	t.Helper()
	return s.SetForm(draft.FormFields{
		Description:         desc,
		Amount:              dec(amount),
		CANID:               int64Ptr(1),
		ServicesComponentID: sc,
	}).AddItem(draft.AddPayload{AgreementID: 7})
}

func persistedItem(id string, amount string) draft.LineItem {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return draft.LineItem{
		ID:          id,
		Description: "existing " + id,
		Amount:      dec(amount),
		AgreementID: 7,
		Status:      draft.StatusPlanned,
		Persisted: &draft.Persistence{
			ServerID:  42,
			CreatedOn: now,
			CreatedBy: "someone",
			UpdatedOn: now,
		},
	}
}

func TestNew_IsEmpty(t *testing.T) {
	s := draft.New()
	assert.Empty(t, s.Items)
	assert.Equal(t, draft.NoIndex, s.EditingIndex)
	assert.False(t, s.IsEditing)
	assert.False(t, s.Dirty())
}

func TestAddItem_BuildsDraftFromForm(t *testing.T) {
	s := addItem(t, draft.New(), "A", "100", nil)

	require.Len(t, s.Items, 1)
	item := s.Items[0]
	assert.Equal(t, "A", item.Description)
	assert.True(t, item.Amount.Equal(dec("100")))
	assert.Equal(t, draft.StatusDraft, item.Status)
	assert.Equal(t, int64(7), item.AgreementID)
	assert.NotEmpty(t, item.ID)
	assert.False(t, item.IsPersisted())

	assert.True(t, s.Form.IsEmpty(), "form is cleared after add")
	assert.Equal(t, draft.NoIndex, s.EditingIndex)
}

func TestAddItem_PermissiveDefaults(t *testing.T) {
	s := draft.New().AddItem(draft.AddPayload{AgreementID: 1})

	require.Len(t, s.Items, 1)
	assert.True(t, s.Items[0].Amount.IsZero())
	assert.Equal(t, "", s.Items[0].Description)
	assert.Equal(t, "", s.Items[0].Comments)
	assert.Nil(t, s.Items[0].DateNeeded)
}

func TestAddItem_GrowsByOneWithUniqueIDs(t *testing.T) {
	s := draft.New()
	for i := 0; i < 50; i++ {
		before := len(s.Items)
		s = addItem(t, s, "x", "1", nil)
		assert.Len(t, s.Items, before+1)
	}

	seen := make(map[string]bool)
	for _, item := range s.Items {
		assert.False(t, seen[item.ID], "duplicate id %s", item.ID)
		seen[item.ID] = true
	}
}

func TestAddItem_ComposesDateNeeded(t *testing.T) {
	s := draft.New().SetForm(draft.FormFields{
		Description: "dated",
		NeedByMonth: 9,
		NeedByDay:   30,
		NeedByYear:  2026,
	}).AddItem(draft.AddPayload{})

	require.NotNil(t, s.Items[0].DateNeeded)
	assert.Equal(t, time.Date(2026, time.September, 30, 0, 0, 0, 0, time.UTC), *s.Items[0].DateNeeded)
}

func TestAddItem_SnapshotsFee(t *testing.T) {
	s := draft.New().SetForm(draft.FormFields{Amount: dec("1000")}).
		AddItem(draft.AddPayload{ProcShopFeePercentage: dec("0.05")})

	assert.True(t, s.Items[0].ProcShopFeePercentage.Equal(dec("0.05")))
	assert.True(t, s.Items[0].PSCFeeAmount.Equal(dec("50")))
}

func TestAddItem_DoesNotMutateReceiver(t *testing.T) {
	s1 := addItem(t, draft.New(), "A", "1", nil)
	s2 := addItem(t, s1, "B", "2", nil)

	assert.Len(t, s1.Items, 1)
	assert.Len(t, s2.Items, 2)
}

func TestSetItemForEditing(t *testing.T) {
	d := time.Date(2025, time.February, 3, 0, 0, 0, 0, time.UTC)
	s := draft.Seed([]draft.LineItem{
		{ID: "a", Description: "first", Amount: dec("10")},
		{ID: "b", Description: "second", Amount: dec("20"), Comments: "note", DateNeeded: &d},
	})

	next, err := s.SetItemForEditing("b")
	require.NoError(t, err)

	assert.True(t, next.IsEditing)
	assert.Equal(t, 1, next.EditingIndex)
	assert.Equal(t, "second", next.Form.Description)
	assert.Equal(t, "note", next.Form.Comments)
	assert.True(t, next.Form.Amount.Equal(dec("20")))
	assert.Equal(t, 2, next.Form.NeedByMonth)
	assert.Equal(t, 3, next.Form.NeedByDay)
	assert.Equal(t, 2025, next.Form.NeedByYear)
}

func TestSetItemForEditing_NotFound(t *testing.T) {
	s := draft.Seed([]draft.LineItem{{ID: "a"}})

	next, err := s.SetItemForEditing("missing")
	assert.ErrorIs(t, err, draft.ErrItemNotFound)
	assert.Equal(t, s, next, "state is unchanged")
}

func TestCommitEdit_MergesAndClears(t *testing.T) {
	s := draft.Seed([]draft.LineItem{
		{ID: "a", Description: "first", Amount: dec("10"), ProcShopFeePercentage: dec("0.1")},
	})
	s, err := s.SetItemForEditing("a")
	require.NoError(t, err)

	amount := dec("30")
	planned := draft.StatusPlanned
	s, err = s.CommitEdit(draft.ItemPatch{Amount: &amount, Status: &planned})
	require.NoError(t, err)

	assert.Equal(t, "first", s.Items[0].Description, "fields absent from the patch are kept")
	assert.True(t, s.Items[0].Amount.Equal(amount))
	assert.Equal(t, draft.StatusPlanned, s.Items[0].Status)
	assert.True(t, s.Items[0].PSCFeeAmount.Equal(dec("3")))
	assert.False(t, s.IsEditing)
	assert.Equal(t, draft.NoIndex, s.EditingIndex)
	assert.True(t, s.Form.IsEmpty())
}

func TestCommitEdit_EmptyFormFieldsClearItem(t *testing.T) {
	s := draft.New().SetForm(draft.FormFields{
		Description:         "with optionals",
		Amount:              dec("250"),
		CANID:               int64Ptr(4),
		CAN:                 &draft.CANSnapshot{ID: 4, Number: "G99HRF2"},
		ServicesComponentID: int64Ptr(2),
		NeedByMonth:         1,
		NeedByDay:           15,
		NeedByYear:          2030,
	}).AddItem(draft.AddPayload{AgreementID: 7})
	require.NotNil(t, s.Items[0].DateNeeded)

	s, err := s.SetItemForEditing(s.Items[0].ID)
	require.NoError(t, err)

	form := s.Form
	form.CANID, form.CAN = nil, nil
	form.ServicesComponentID = nil
	form.NeedByMonth, form.NeedByDay, form.NeedByYear = 0, 0, 0
	s, err = s.SetForm(form).CommitEdit(form.Patch())
	require.NoError(t, err)

	item := s.Items[0]
	assert.Nil(t, item.DateNeeded)
	assert.Nil(t, item.CANID)
	assert.Nil(t, item.CAN)
	assert.Nil(t, item.ServicesComponentID)
	assert.Equal(t, "with optionals", item.Description)
}

func TestCommitEdit_ClearFlagsYieldToValues(t *testing.T) {
	s := draft.Seed([]draft.LineItem{{ID: "a", CANID: int64Ptr(1)}})
	s, err := s.SetItemForEditing("a")
	require.NoError(t, err)

	s, err = s.CommitEdit(draft.ItemPatch{CANID: int64Ptr(9), ClearCAN: true})
	require.NoError(t, err)
	require.NotNil(t, s.Items[0].CANID)
	assert.Equal(t, int64(9), *s.Items[0].CANID)
}

func TestCommitEdit_WithoutEditing(t *testing.T) {
	s := draft.Seed([]draft.LineItem{{ID: "a"}})
	_, err := s.CommitEdit(draft.ItemPatch{})
	assert.ErrorIs(t, err, draft.ErrNotEditing)
}

func TestDuplicateItem_StripsServerFields(t *testing.T) {
	s := draft.Seed([]draft.LineItem{persistedItem("p1", "500")})

	next, err := s.DuplicateItem("p1")
	require.NoError(t, err)
	require.Len(t, next.Items, 2)

	dup := next.Items[1]
	assert.NotEqual(t, "p1", dup.ID)
	assert.Equal(t, draft.StatusDraft, dup.Status)
	assert.Nil(t, dup.Persisted)
	assert.False(t, dup.IsPersisted())
	assert.Equal(t, "existing p1", dup.Description)
	assert.True(t, dup.Amount.Equal(dec("500")))

	assert.True(t, next.Items[0].IsPersisted(), "source is untouched")
}

func TestDuplicateItem_NotFound(t *testing.T) {
	s := draft.New()
	_, err := s.DuplicateItem("nope")
	assert.ErrorIs(t, err, draft.ErrItemNotFound)
}

func TestDeleteItem_AlwaysClearsEditState(t *testing.T) {
	s := draft.Seed([]draft.LineItem{{ID: "a"}, {ID: "b"}, {ID: "c"}})
	s, err := s.SetItemForEditing("c")
	require.NoError(t, err)
	require.Equal(t, 2, s.EditingIndex)

	s, err = s.DeleteItem("a")
	require.NoError(t, err)

	assert.Len(t, s.Items, 2)
	assert.Equal(t, draft.NoIndex, s.EditingIndex)
	assert.False(t, s.IsEditing)
	assert.True(t, s.Form.IsEmpty())

	_, ok := s.Find("a")
	assert.False(t, ok)
}

func TestDeleteItem_NotFoundStillClears(t *testing.T) {
	s := draft.Seed([]draft.LineItem{{ID: "a"}})
	s, err := s.SetItemForEditing("a")
	require.NoError(t, err)

	s, err = s.DeleteItem("zzz")
	assert.ErrorIs(t, err, draft.ErrItemNotFound)
	assert.Len(t, s.Items, 1)
	assert.Equal(t, draft.NoIndex, s.EditingIndex)
}

func TestDeleteThenEdit_NeverStale(t *testing.T) {
	s := draft.Seed([]draft.LineItem{{ID: "a"}, {ID: "b"}, {ID: "c"}})
	for _, id := range []string{"c", "a"} {
		var err error
		s, err = s.DeleteItem(id)
		require.NoError(t, err)
		assert.Equal(t, draft.NoIndex, s.EditingIndex)
	}

	s, err := s.SetItemForEditing("b")
	require.NoError(t, err)
	assert.Equal(t, 0, s.EditingIndex)
	assert.Equal(t, "b", s.Items[s.EditingIndex].ID)
}

func TestResetForm_KeepsItems(t *testing.T) {
	s := addItem(t, draft.New(), "A", "1", nil)
	s = s.SetForm(draft.FormFields{Description: "typing"})
	require.True(t, s.Dirty())

	s = s.ResetForm()
	assert.Len(t, s.Items, 1)
	assert.True(t, s.Form.IsEmpty())
}

func TestResetAll(t *testing.T) {
	s := addItem(t, draft.New(), "A", "1", nil)
	assert.Equal(t, draft.New(), s.ResetAll())
}

func TestDirty(t *testing.T) {
	seeded := draft.Seed([]draft.LineItem{persistedItem("p", "1")})
	assert.False(t, seeded.Dirty(), "only persisted items")

	withDraft := addItem(t, seeded, "new", "1", nil)
	assert.True(t, withDraft.Dirty())
}

func TestPartition(t *testing.T) {
	s := draft.Seed([]draft.LineItem{persistedItem("p1", "1"), persistedItem("p2", "2")})
	s = addItem(t, s, "n1", "3", nil)

	created, existing := draft.Partition(s.Items)
	assert.Len(t, created, 1)
	assert.Len(t, existing, 2)
	assert.Equal(t, "n1", created[0].Description)
}
