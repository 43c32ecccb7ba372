// Package navguard coordinates navigation blocking across independent
// components. Each component registers a blocker under its own id; the
// registry folds all blockers into one decision and one confirmation modal.
package navguard

import (
	"context"
	"sync"
)

// Route is a navigation target. Only the pathname takes part in blocking
// decisions; query-string-only changes never block.
type Route struct {
	Pathname string `json:"pathname"`
	Search   string `json:"search,omitempty"`
}

// ModalProps describes the confirmation modal shown for a blocked
// navigation. Callbacks are optional.
type ModalProps struct {
	Heading        string `json:"heading"`
	Description    string `json:"description,omitempty"`
	ConfirmLabel   string `json:"confirmLabel"`
	SecondaryLabel string `json:"secondaryLabel,omitempty"`
	CancelLabel    string `json:"cancelLabel"`

	OnConfirm   func(ctx context.Context) error `json:"-"`
	OnSecondary func(ctx context.Context) error `json:"-"`
	OnCancel    func()                          `json:"-"`
}

// Registration is one component's blocker.
type Registration struct {
	ID          string     `json:"id"`
	ShouldBlock bool       `json:"shouldBlock"`
	Modal       ModalProps `json:"modal"`
}

// Patch is a partial update of a registration; nil fields are unchanged.
type Patch struct {
	ShouldBlock *bool
	Modal       *ModalProps
}

// Registry maps blocker ids to registrations, remembering the order in which
// ids were first registered. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	order   []string
	entries map[string]Registration
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Registration)}
}

// Register adds or replaces the blocker with the given id and returns a
// handle scoped to that id. Re-registering keeps the id's original position.
func (r *Registry) Register(id string, shouldBlock bool, modal ModalProps) *Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[id]; !exists {
		r.order = append(r.order, id)
	}
	r.entries[id] = Registration{ID: id, ShouldBlock: shouldBlock, Modal: modal}
	return &Handle{registry: r, id: id}
}

// Update merges patch into the registration for id. It reports false and
// does nothing when id is not registered.
func (r *Registry) Update(id string, patch Patch) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	reg, ok := r.entries[id]
	if !ok {
		return false
	}
	if patch.ShouldBlock != nil {
		reg.ShouldBlock = *patch.ShouldBlock
	}
	if patch.Modal != nil {
		reg.Modal = *patch.Modal
	}
	r.entries[id] = reg
	return true
}

// Unregister removes the blocker with the given id. Removing an unknown id
// is a no-op.
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[id]; !ok {
		return
	}
	delete(r.entries, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Get returns the registration for id.
func (r *Registry) Get(id string) (Registration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.entries[id]
	return reg, ok
}

// List returns all registrations in registration order.
func (r *Registry) List() []Registration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Registration, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.entries[id])
	}
	return out
}

// Evaluate decides whether navigating from current to next must be
// intercepted: never for the same pathname, otherwise iff any blocker is active.
func (r *Registry) Evaluate(current, next Route) bool {
	if current.Pathname == next.Pathname {
		return false
	}
	_, blocking := r.Active()
	return blocking
}

// Active returns the first registration, in registration order, whose
// ShouldBlock is set. Only that registration's modal is ever shown.
func (r *Registry) Active() (Registration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if reg := r.entries[id]; reg.ShouldBlock {
			return reg, true
		}
	}
	return Registration{}, false
}

// Handle is the capability a component holds over its own registration.
type Handle struct {
	registry *Registry
	id       string
	once     sync.Once
}

// ID returns the registration id.
func (h *Handle) ID() string {
	return h.id
}

// SetShouldBlock updates the blocking predicate.
func (h *Handle) SetShouldBlock(block bool) bool {
	return h.registry.Update(h.id, Patch{ShouldBlock: &block})
}

// Update merges patch into the registration.
func (h *Handle) Update(patch Patch) bool {
	return h.registry.Update(h.id, patch)
}

// Unregister removes the registration. Calls after the first are no-ops.
func (h *Handle) Unregister() {
	h.once.Do(func() {
		h.registry.Unregister(h.id)
	})
}
