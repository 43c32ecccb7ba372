package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/portfolio-mgmt/pms-wizard/internal/domain"
	"github.com/portfolio-mgmt/pms-wizard/internal/draft"
	"github.com/portfolio-mgmt/pms-wizard/internal/service"
	"github.com/portfolio-mgmt/pms-wizard/internal/testutil"
)

var leaveWizard = domain.NavigationAttemptRequest{
	From: domain.RouteDTO{Pathname: "/agreements/1/budget-lines"},
	To:   domain.RouteDTO{Pathname: "/agreements"},
}

func TestNavigationService_RegisterUpdateList(t *testing.T) {
	nav := service.NewNavigationService(zap.NewNop())

	got := nav.Register("tab-1", "form", domain.RegisterBlockerRequest{
		ShouldBlock: true,
		Modal:       domain.ModalDTO{Heading: "Leave?", ConfirmLabel: "Leave", CancelLabel: "Stay"},
	})
	assert.Equal(t, "form", got.ID)
	assert.True(t, got.ShouldBlock)

	off := false
	updated, err := nav.Update("tab-1", "form", domain.UpdateBlockerRequest{ShouldBlock: &off})
	require.NoError(t, err)
	assert.False(t, updated.ShouldBlock)
	assert.Equal(t, "Leave?", updated.Modal.Heading)

	_, err = nav.Update("tab-1", "missing", domain.UpdateBlockerRequest{ShouldBlock: &off})
	assert.ErrorIs(t, err, service.ErrNotFound)

	assert.Empty(t, nav.List("tab-2"), "clients have separate registries")

	nav.Unregister("tab-1", "form")
	nav.Unregister("tab-1", "form")
	assert.Empty(t, nav.List("tab-1"))
}

func TestNavigationService_AttemptAndDismiss(t *testing.T) {
	nav := service.NewNavigationService(zap.NewNop())
	nav.Register("tab-1", "form", domain.RegisterBlockerRequest{
		ShouldBlock: true,
		Modal:       domain.ModalDTO{Heading: "Leave?"},
	})

	same, err := nav.Attempt("tab-1", domain.NavigationAttemptRequest{
		From: domain.RouteDTO{Pathname: "/agreements", Search: "?page=1"},
		To:   domain.RouteDTO{Pathname: "/agreements", Search: "?page=2"},
	})
	require.NoError(t, err)
	assert.True(t, same.Proceed)

	d, err := nav.Attempt("tab-1", leaveWizard)
	require.NoError(t, err)
	assert.False(t, d.Proceed)
	assert.Equal(t, "form", d.Blocker)
	require.NotNil(t, d.Modal)
	assert.Equal(t, "Leave?", d.Modal.Heading)
	assert.Equal(t, "PENDING", d.State)

	_, err = nav.Attempt("tab-1", leaveWizard)
	assert.ErrorIs(t, err, service.ErrConflict)

	out, err := nav.Resolve(context.Background(), "tab-1", service.ResolveDismiss)
	require.NoError(t, err)
	assert.False(t, out.Proceed)
	assert.Equal(t, "/agreements", out.To.Pathname)

	_, err = nav.Resolve(context.Background(), "tab-1", service.ResolveDismiss)
	assert.ErrorIs(t, err, service.ErrConflict)

	_, err = nav.Resolve(context.Background(), "tab-1", "explode")
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestNavigationService_ConfirmSavesWizard(t *testing.T) {
	f := newWizardFixture(t)
	ctx := budgetTeamContext()

	agreement := testutil.CreateTestAgreement(t, f.db, "Confirm", "0")
	w, err := f.svc.Create(ctx, domain.CreateWizardRequest{AgreementID: agreement.ID, ClientID: "tab-1"})
	require.NoError(t, err)
	_, err = f.svc.Dispatch(ctx, w.ID, draft.Action{Type: draft.ActionAddItem, Form: validForm(t, f, agreement.ID, 100)})
	require.NoError(t, err)

	d, err := f.nav.Attempt("tab-1", leaveWizard)
	require.NoError(t, err)
	require.False(t, d.Proceed)
	assert.Equal(t, service.BlockerID(w.ID), d.Blocker)

	out, err := f.nav.Resolve(ctx, "tab-1", service.ResolveConfirm)
	require.NoError(t, err)
	assert.True(t, out.Proceed)
	assert.Empty(t, out.Error)

	count, err := f.lines.CountByAgreement(ctx, agreement.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Empty(t, f.nav.List("tab-1"))
}

func TestNavigationService_ConfirmFailureCancelsNavigation(t *testing.T) {
	f := newWizardFixture(t)
	ctx := budgetTeamContext()
	w := putGhostWizard(t, f, "tab-1")

	_, err := f.svc.Dispatch(ctx, w.ID, draft.Action{Type: draft.ActionSetForm, Form: &draft.FormFields{Description: "unsaved"}})
	require.NoError(t, err)

	d, err := f.nav.Attempt("tab-1", leaveWizard)
	require.NoError(t, err)
	require.False(t, d.Proceed)

	out, err := f.nav.Resolve(ctx, "tab-1", service.ResolveConfirm)
	require.NoError(t, err)
	assert.False(t, out.Proceed)
	assert.NotEmpty(t, out.Error)

	got, err := f.svc.Get(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "unsaved", got.State.Form.Description)

	d, err = f.nav.Attempt("tab-1", leaveWizard)
	require.NoError(t, err)
	assert.False(t, d.Proceed, "the navigator is idle again and still blocks")
}

func TestNavigationService_SecondaryDiscardsWizard(t *testing.T) {
	f := newWizardFixture(t)
	ctx := budgetTeamContext()

	agreement := testutil.CreateTestAgreement(t, f.db, "Discard", "0")
	w, err := f.svc.Create(ctx, domain.CreateWizardRequest{AgreementID: agreement.ID, ClientID: "tab-1"})
	require.NoError(t, err)
	_, err = f.svc.Dispatch(ctx, w.ID, draft.Action{Type: draft.ActionAddItem, Form: &draft.FormFields{Description: "scratch"}})
	require.NoError(t, err)

	_, err = f.nav.Attempt("tab-1", leaveWizard)
	require.NoError(t, err)

	out, err := f.nav.Resolve(ctx, "tab-1", service.ResolveSecondary)
	require.NoError(t, err)
	assert.True(t, out.Proceed)

	_, err = f.svc.Get(ctx, w.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)

	count, err := f.lines.CountByAgreement(ctx, agreement.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestNavigationService_ExpiredWizardReleasesItsBlocker(t *testing.T) {
	for _, action := range []string{service.ResolveConfirm, service.ResolveSecondary} {
		t.Run(action, func(t *testing.T) {
			f := newWizardFixture(t)
			ctx := budgetTeamContext()

			agreement := testutil.CreateTestAgreement(t, f.db, "Expired", "0")
			w, err := f.svc.Create(ctx, domain.CreateWizardRequest{AgreementID: agreement.ID, ClientID: "tab-1"})
			require.NoError(t, err)
			_, err = f.svc.Dispatch(ctx, w.ID, draft.Action{Type: draft.ActionSetForm, Form: &draft.FormFields{Description: "typing"}})
			require.NoError(t, err)
			require.NoError(t, f.store.Delete(ctx, w.ID))

			d, err := f.nav.Attempt("tab-1", leaveWizard)
			require.NoError(t, err)
			require.False(t, d.Proceed)

			_, err = f.nav.Resolve(ctx, "tab-1", action)
			require.NoError(t, err)
			assert.Empty(t, f.nav.List("tab-1"))

			d, err = f.nav.Attempt("tab-1", leaveWizard)
			require.NoError(t, err)
			assert.True(t, d.Proceed)
		})
	}
}
