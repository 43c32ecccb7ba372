package navguard_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/portfolio-mgmt/pms-wizard/internal/navguard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	home   = navguard.Route{Pathname: "/"}
	wizard = navguard.Route{Pathname: "/agreements/1/budget-lines"}
)

func modal(heading string) navguard.ModalProps {
	return navguard.ModalProps{Heading: heading, ConfirmLabel: "Save", CancelLabel: "Cancel"}
}

func TestEvaluate_SameRouteNeverBlocks(t *testing.T) {
	r := navguard.NewRegistry()
	r.Register("form", true, modal("unsaved"))

	for _, route := range []navguard.Route{home, wizard, {Pathname: ""}} {
		assert.False(t, r.Evaluate(route, route))
	}

	withQuery := wizard
	withQuery.Search = "?tab=2"
	assert.False(t, r.Evaluate(wizard, withQuery), "query-string-only change")
}

func TestEvaluate_AnyBlocking(t *testing.T) {
	r := navguard.NewRegistry()
	assert.False(t, r.Evaluate(wizard, home), "empty registry")

	r.Register("a", false, modal("a"))
	assert.False(t, r.Evaluate(wizard, home))

	r.Register("b", true, modal("b"))
	assert.True(t, r.Evaluate(wizard, home))
}

func TestRegister_ReplacesInsteadOfDuplicating(t *testing.T) {
	r := navguard.NewRegistry()
	r.Register("x", true, modal("p1"))
	r.Register("x", false, modal("p2"))

	assert.Len(t, r.List(), 1)
	assert.False(t, r.Evaluate(wizard, home))

	reg, ok := r.Get("x")
	require.True(t, ok)
	assert.Equal(t, "p2", reg.Modal.Heading)

	_, active := r.Active()
	assert.False(t, active, "stale p1 is never shown")
}

func TestActive_FirstRegisteredWins(t *testing.T) {
	r := navguard.NewRegistry()
	r.Register("first", true, modal("first"))
	r.Register("second", true, modal("second"))

	reg, ok := r.Active()
	require.True(t, ok)
	assert.Equal(t, "first", reg.ID)

	// Re-registering keeps the original position.
	r.Register("first", true, modal("first again"))
	reg, _ = r.Active()
	assert.Equal(t, "first again", reg.Modal.Heading)

	r.Update("first", navguard.Patch{ShouldBlock: boolPtr(false)})
	reg, _ = r.Active()
	assert.Equal(t, "second", reg.ID)
}

func TestUpdate_UnknownIsNoop(t *testing.T) {
	r := navguard.NewRegistry()
	assert.False(t, r.Update("ghost", navguard.Patch{ShouldBlock: boolPtr(true)}))
	assert.Empty(t, r.List())
}

func TestUpdate_MergesPartial(t *testing.T) {
	r := navguard.NewRegistry()
	r.Register("x", false, modal("keep"))

	assert.True(t, r.Update("x", navguard.Patch{ShouldBlock: boolPtr(true)}))
	reg, _ := r.Get("x")
	assert.True(t, reg.ShouldBlock)
	assert.Equal(t, "keep", reg.Modal.Heading)
}

func TestHandle_UnregisterIdempotent(t *testing.T) {
	r := navguard.NewRegistry()
	h := r.Register("x", true, modal("x"))
	assert.Equal(t, "x", h.ID())

	h.Unregister()
	h.Unregister()
	r.Unregister("x")

	_, ok := r.Get("x")
	assert.False(t, ok)
	assert.False(t, h.SetShouldBlock(true), "updates after unregister are no-ops")
}

func TestRegistry_ConcurrentUse(t *testing.T) {
	r := navguard.NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("c%d", i)
			h := r.Register(id, i%2 == 0, modal(id))
			h.SetShouldBlock(true)
			_ = r.Evaluate(wizard, home)
			h.Unregister()
		}(i)
	}
	wg.Wait()
	assert.Empty(t, r.List())
}

func boolPtr(b bool) *bool { return &b }
