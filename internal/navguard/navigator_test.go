package navguard_test

import (
	"context"
	"errors"
	"testing"

	"github.com/portfolio-mgmt/pms-wizard/internal/navguard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNavigator_ProceedsWhenNothingBlocks(t *testing.T) {
	n := navguard.NewNavigator(navguard.NewRegistry())

	d, err := n.Attempt(wizard, home)
	require.NoError(t, err)
	assert.True(t, d.Proceed)
	assert.Nil(t, d.Modal)
	assert.Equal(t, navguard.StateIdle, n.State())
}

func TestNavigator_SameRouteProceeds(t *testing.T) {
	r := navguard.NewRegistry()
	r.Register("x", true, modal("x"))
	n := navguard.NewNavigator(r)

	d, err := n.Attempt(wizard, wizard)
	require.NoError(t, err)
	assert.True(t, d.Proceed)
	assert.Equal(t, navguard.StateIdle, n.State())
}

func TestNavigator_ConfirmRunsCallbackThenProceeds(t *testing.T) {
	r := navguard.NewRegistry()
	var states []navguard.State
	var n *navguard.Navigator
	m := modal("unsaved")
	m.OnConfirm = func(ctx context.Context) error {
		states = append(states, n.State())
		return nil
	}
	r.Register("wizard", true, m)
	n = navguard.NewNavigator(r)

	d, err := n.Attempt(wizard, home)
	require.NoError(t, err)
	assert.False(t, d.Proceed)
	assert.Equal(t, "wizard", d.Blocker)
	require.NotNil(t, d.Modal)
	assert.Equal(t, "unsaved", d.Modal.Heading)
	assert.Equal(t, navguard.StatePending, n.State())

	out, err := n.Confirm(context.Background())
	require.NoError(t, err)
	assert.True(t, out.Proceed)
	assert.Equal(t, home, out.To)
	assert.Equal(t, []navguard.State{navguard.StateResolving}, states)
	assert.Equal(t, navguard.StateIdle, n.State())
}

func TestNavigator_SecondaryUsesItsOwnCallback(t *testing.T) {
	r := navguard.NewRegistry()
	var called string
	m := modal("unsaved")
	m.OnConfirm = func(context.Context) error { called = "confirm"; return nil }
	m.OnSecondary = func(context.Context) error { called = "secondary"; return nil }
	r.Register("wizard", true, m)
	n := navguard.NewNavigator(r)

	_, err := n.Attempt(wizard, home)
	require.NoError(t, err)
	out, err := n.Secondary(context.Background())
	require.NoError(t, err)
	assert.True(t, out.Proceed)
	assert.Equal(t, "secondary", called)
}

func TestNavigator_DismissCancels(t *testing.T) {
	r := navguard.NewRegistry()
	cancelled := false
	m := modal("unsaved")
	m.OnCancel = func() { cancelled = true }
	r.Register("wizard", true, m)
	n := navguard.NewNavigator(r)

	_, err := n.Attempt(wizard, home)
	require.NoError(t, err)

	out, err := n.Dismiss()
	require.NoError(t, err)
	assert.False(t, out.Proceed)
	assert.True(t, cancelled)
	assert.Equal(t, navguard.StateIdle, n.State())
}

func TestNavigator_CallbackErrorCancelsNavigation(t *testing.T) {
	r := navguard.NewRegistry()
	boom := errors.New("save failed")
	m := modal("unsaved")
	m.OnConfirm = func(context.Context) error { return boom }
	r.Register("wizard", true, m)
	n := navguard.NewNavigator(r)

	_, err := n.Attempt(wizard, home)
	require.NoError(t, err)

	out, err := n.Confirm(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.False(t, out.Proceed)
	assert.Equal(t, navguard.StateIdle, n.State())
}

func TestNavigator_OnePendingAtATime(t *testing.T) {
	r := navguard.NewRegistry()
	r.Register("x", true, modal("x"))
	n := navguard.NewNavigator(r)

	_, err := n.Attempt(wizard, home)
	require.NoError(t, err)

	_, err = n.Attempt(wizard, navguard.Route{Pathname: "/cans"})
	assert.ErrorIs(t, err, navguard.ErrNavigationPending)

	pending, ok := n.Pending()
	require.True(t, ok)
	assert.Equal(t, "x", pending.Heading)
}

func TestNavigator_ResolveWithoutPending(t *testing.T) {
	n := navguard.NewNavigator(navguard.NewRegistry())

	_, err := n.Confirm(context.Background())
	assert.ErrorIs(t, err, navguard.ErrNoPendingNavigation)
	_, err = n.Secondary(context.Background())
	assert.ErrorIs(t, err, navguard.ErrNoPendingNavigation)
	_, err = n.Dismiss()
	assert.ErrorIs(t, err, navguard.ErrNoPendingNavigation)
}

func TestNavigator_ResolvingRejectsOtherActions(t *testing.T) {
	r := navguard.NewRegistry()
	release := make(chan struct{})
	entered := make(chan struct{})
	m := modal("slow")
	m.OnConfirm = func(context.Context) error {
		close(entered)
		<-release
		return nil
	}
	r.Register("slow", true, m)
	n := navguard.NewNavigator(r)

	_, err := n.Attempt(wizard, home)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := n.Confirm(context.Background())
		done <- err
	}()
	<-entered

	assert.Equal(t, navguard.StateResolving, n.State())
	_, err = n.Dismiss()
	assert.ErrorIs(t, err, navguard.ErrResolving)
	_, err = n.Attempt(wizard, home)
	assert.ErrorIs(t, err, navguard.ErrNavigationPending)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, navguard.StateIdle, n.State())
}

func TestNavigator_PanickingCallbackResetsState(t *testing.T) {
	r := navguard.NewRegistry()
	m := modal("unsaved")
	m.OnConfirm = func(context.Context) error { panic("boom") }
	r.Register("wizard", true, m)
	n := navguard.NewNavigator(r)

	_, err := n.Attempt(wizard, home)
	require.NoError(t, err)

	assert.Panics(t, func() { _, _ = n.Confirm(context.Background()) })
	assert.Equal(t, navguard.StateIdle, n.State())

	_, ok := n.Pending()
	assert.False(t, ok)
	_, err = n.Dismiss()
	assert.ErrorIs(t, err, navguard.ErrNoPendingNavigation)

	d, err := n.Attempt(wizard, home)
	require.NoError(t, err, "a new navigation can start")
	assert.False(t, d.Proceed)
}
