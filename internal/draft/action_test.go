package draft_test

import (
	"testing"

	"github.com/portfolio-mgmt/pms-wizard/internal/draft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatch_Flow(t *testing.T) {
	s := draft.New()

	s, err := draft.Dispatch(s, draft.Action{
		Type:                  draft.ActionAddItem,
		Form:                  &draft.FormFields{Description: "A", Amount: dec("100")},
		AgreementID:           3,
		ProcShopFeePercentage: dec("0.01"),
	})
	require.NoError(t, err)
	require.Len(t, s.Items, 1)
	id := s.Items[0].ID
	assert.Equal(t, int64(3), s.Items[0].AgreementID)

	s, err = draft.Dispatch(s, draft.Action{Type: draft.ActionSetEdit, ItemID: id})
	require.NoError(t, err)
	assert.True(t, s.IsEditing)

	form := s.Form
	form.Description = "A (edited)"
	s, err = draft.Dispatch(s, draft.Action{Type: draft.ActionCommitEdit, Form: &form})
	require.NoError(t, err)
	assert.Equal(t, "A (edited)", s.Items[0].Description)
	assert.True(t, s.Items[0].Amount.Equal(dec("100")))

	s, err = draft.Dispatch(s, draft.Action{Type: draft.ActionDuplicate, ItemID: id})
	require.NoError(t, err)
	assert.Len(t, s.Items, 2)

	s, err = draft.Dispatch(s, draft.Action{Type: draft.ActionDelete, ItemID: id})
	require.NoError(t, err)
	assert.Len(t, s.Items, 1)

	s, err = draft.Dispatch(s, draft.Action{Type: draft.ActionResetAll})
	require.NoError(t, err)
	assert.Empty(t, s.Items)
}

func TestDispatch_CommitEditClearsDate(t *testing.T) {
	s, err := draft.Dispatch(draft.New(), draft.Action{
		Type: draft.ActionAddItem,
		Form: &draft.FormFields{Description: "A", Amount: dec("10"), NeedByMonth: 1, NeedByDay: 15, NeedByYear: 2030},
	})
	require.NoError(t, err)
	s, err = draft.Dispatch(s, draft.Action{Type: draft.ActionSetEdit, ItemID: s.Items[0].ID})
	require.NoError(t, err)

	form := s.Form
	form.NeedByMonth, form.NeedByDay, form.NeedByYear = 0, 0, 0
	s, err = draft.Dispatch(s, draft.Action{Type: draft.ActionCommitEdit, Form: &form})
	require.NoError(t, err)
	assert.Nil(t, s.Items[0].DateNeeded)
}

func TestDispatch_SetFormRequiresForm(t *testing.T) {
	_, err := draft.Dispatch(draft.New(), draft.Action{Type: draft.ActionSetForm})
	assert.Error(t, err)
}

func TestDispatch_UnknownAction(t *testing.T) {
	_, err := draft.Dispatch(draft.New(), draft.Action{Type: "EXPLODE"})
	assert.ErrorIs(t, err, draft.ErrUnknownAction)
}

func TestDispatch_NotFoundPropagates(t *testing.T) {
	_, err := draft.Dispatch(draft.New(), draft.Action{Type: draft.ActionSetEdit, ItemID: "x"})
	assert.ErrorIs(t, err, draft.ErrItemNotFound)
}
