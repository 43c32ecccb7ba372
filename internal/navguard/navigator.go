package navguard

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// State is the navigation interception state.
type State string

const (
	StateIdle      State = "IDLE"
	StatePending   State = "PENDING"
	StateResolving State = "RESOLVING"
)

var (
	// ErrNavigationPending is returned when a navigation is attempted while
	// another one is awaiting resolution.
	ErrNavigationPending = errors.New("a navigation is already pending")
	// ErrNoPendingNavigation is returned when resolving with nothing pending.
	ErrNoPendingNavigation = errors.New("no pending navigation")
	// ErrResolving is returned when a resolution is requested while a
	// confirm or secondary callback is still running.
	ErrResolving = errors.New("pending navigation is already being resolved")
)

// Decision is the result of a navigation attempt.
type Decision struct {
	Proceed bool        `json:"proceed"`
	Blocker string      `json:"blocker,omitempty"`
	Modal   *ModalProps `json:"modal,omitempty"`
}

// Outcome is the result of resolving a pending navigation.
type Outcome struct {
	Proceed bool   `json:"proceed"`
	From    Route  `json:"from"`
	To      Route  `json:"to"`
	Action  string `json:"action"`
}

type pendingNavigation struct {
	from    Route
	to      Route
	blocker Registration
}

// Navigator runs the IDLE -> PENDING -> RESOLVING -> IDLE interception
// state machine over a Registry. It is safe for concurrent use; callbacks
// run without holding the lock.
type Navigator struct {
	registry *Registry

	mu      sync.Mutex
	state   State
	pending *pendingNavigation
}

// NewNavigator creates a navigator over registry.
func NewNavigator(registry *Registry) *Navigator {
	return &Navigator{registry: registry, state: StateIdle}
}

// Registry returns the underlying registry.
func (n *Navigator) Registry() *Registry {
	return n.registry
}

// State returns the current interception state.
func (n *Navigator) State() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

// Pending returns the modal of the pending navigation, if any.
func (n *Navigator) Pending() (*ModalProps, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.pending == nil {
		return nil, false
	}
	modal := n.pending.blocker.Modal
	return &modal, true
}

// Attempt is called before the router navigates. When no blocker applies
// the navigation proceeds and the state stays IDLE; otherwise the state
// moves to PENDING and the first active blocker's modal is returned.
func (n *Navigator) Attempt(from, to Route) (Decision, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.state != StateIdle {
		return Decision{}, ErrNavigationPending
	}
	if !n.registry.Evaluate(from, to) {
		return Decision{Proceed: true}, nil
	}
	blocker, ok := n.registry.Active()
	if !ok {
		return Decision{Proceed: true}, nil
	}

	n.state = StatePending
	n.pending = &pendingNavigation{from: from, to: to, blocker: blocker}
	modal := blocker.Modal
	return Decision{Proceed: false, Blocker: blocker.ID, Modal: &modal}, nil
}

// Confirm runs the blocker's confirm callback and then lets the navigation
// proceed. If the callback fails the navigation is cancelled instead.
func (n *Navigator) Confirm(ctx context.Context) (Outcome, error) {
	return n.resolve(ctx, "confirm", func(m ModalProps) func(context.Context) error { return m.OnConfirm })
}

// Secondary runs the blocker's secondary callback and then lets the
// navigation proceed. If the callback fails the navigation is cancelled.
func (n *Navigator) Secondary(ctx context.Context) (Outcome, error) {
	return n.resolve(ctx, "secondary", func(m ModalProps) func(context.Context) error { return m.OnSecondary })
}

// Dismiss cancels the pending navigation; the user stays on the current route.
func (n *Navigator) Dismiss() (Outcome, error) {
	n.mu.Lock()
	if n.state == StateResolving {
		n.mu.Unlock()
		return Outcome{}, ErrResolving
	}
	if n.state != StatePending || n.pending == nil {
		n.mu.Unlock()
		return Outcome{}, ErrNoPendingNavigation
	}
	p := n.pending
	n.state = StateIdle
	n.pending = nil
	n.mu.Unlock()

	if p.blocker.Modal.OnCancel != nil {
		p.blocker.Modal.OnCancel()
	}
	return Outcome{Proceed: false, From: p.from, To: p.to, Action: "dismiss"}, nil
}

func (n *Navigator) resolve(ctx context.Context, action string, pick func(ModalProps) func(context.Context) error) (Outcome, error) {
	n.mu.Lock()
	if n.state == StateResolving {
		n.mu.Unlock()
		return Outcome{}, ErrResolving
	}
	if n.state != StatePending || n.pending == nil {
		n.mu.Unlock()
		return Outcome{}, ErrNoPendingNavigation
	}
	p := n.pending
	n.state = StateResolving
	n.mu.Unlock()

	err := n.runCallback(ctx, pick(p.blocker.Modal))
	if err != nil {
		return Outcome{Proceed: false, From: p.from, To: p.to, Action: action},
			fmt.Errorf("%s callback for blocker %s: %w", action, p.blocker.ID, err)
	}
	return Outcome{Proceed: true, From: p.from, To: p.to, Action: action}, nil
}

// runCallback runs cb and returns the navigator to IDLE afterwards, even
// when cb panics.
func (n *Navigator) runCallback(ctx context.Context, cb func(context.Context) error) error {
	defer func() {
		n.mu.Lock()
		n.state = StateIdle
		n.pending = nil
		n.mu.Unlock()
	}()
	if cb == nil {
		return nil
	}
	return cb(ctx)
}
