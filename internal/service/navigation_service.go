package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/portfolio-mgmt/pms-wizard/internal/domain"
	"github.com/portfolio-mgmt/pms-wizard/internal/mapper"
	"github.com/portfolio-mgmt/pms-wizard/internal/navguard"
)

// Navigation resolve actions
const (
	ResolveConfirm   = "confirm"
	ResolveSecondary = "secondary"
	ResolveDismiss   = "dismiss"
)

// NavigationService owns one blocker registry and navigator per client.
// Registries are created on first use and live for the process.
type NavigationService struct {
	mu         sync.Mutex
	navigators map[string]*navguard.Navigator
	logger     *zap.Logger
}

// NewNavigationService creates a new NavigationService instance
func NewNavigationService(logger *zap.Logger) *NavigationService {
	return &NavigationService{
		navigators: make(map[string]*navguard.Navigator),
		logger:     logger,
	}
}

// Navigator returns the navigator of clientID, creating it on first use
func (s *NavigationService) Navigator(clientID string) *navguard.Navigator {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.navigators[clientID]
	if !ok {
		n = navguard.NewNavigator(navguard.NewRegistry())
		s.navigators[clientID] = n
	}
	return n
}

// Registry returns the blocker registry of clientID
func (s *NavigationService) Registry(clientID string) *navguard.Registry {
	return s.Navigator(clientID).Registry()
}

// Register registers or replaces a client-side blocker
func (s *NavigationService) Register(clientID, blockerID string, req domain.RegisterBlockerRequest) domain.BlockerDTO {
	reg := s.Registry(clientID)
	reg.Register(blockerID, req.ShouldBlock, mapper.ToModalProps(req.Modal))
	got, _ := reg.Get(blockerID)
	return mapper.ToBlockerDTO(got)
}

// Update merges req into an existing blocker
func (s *NavigationService) Update(clientID, blockerID string, req domain.UpdateBlockerRequest) (*domain.BlockerDTO, error) {
	reg := s.Registry(clientID)
	patch := navguard.Patch{ShouldBlock: req.ShouldBlock}
	if req.Modal != nil {
		current, ok := reg.Get(blockerID)
		if !ok {
			return nil, fmt.Errorf("blocker %s: %w", blockerID, ErrNotFound)
		}
		modal := mapper.ToModalProps(*req.Modal)
		modal.OnConfirm = current.Modal.OnConfirm
		modal.OnSecondary = current.Modal.OnSecondary
		modal.OnCancel = current.Modal.OnCancel
		patch.Modal = &modal
	}
	if !reg.Update(blockerID, patch) {
		return nil, fmt.Errorf("blocker %s: %w", blockerID, ErrNotFound)
	}
	got, _ := reg.Get(blockerID)
	dto := mapper.ToBlockerDTO(got)
	return &dto, nil
}

// Unregister removes a blocker; unknown ids are ignored
func (s *NavigationService) Unregister(clientID, blockerID string) {
	s.Registry(clientID).Unregister(blockerID)
}

// UnregisterEverywhere removes blockerID from every client registry
func (s *NavigationService) UnregisterEverywhere(blockerID string) {
	s.mu.Lock()
	navigators := make([]*navguard.Navigator, 0, len(s.navigators))
	for _, n := range s.navigators {
		navigators = append(navigators, n)
	}
	s.mu.Unlock()

	for _, n := range navigators {
		n.Registry().Unregister(blockerID)
	}
}

// BlockersWithPrefix returns the ids of blockers starting with prefix,
// keyed by client id
func (s *NavigationService) BlockersWithPrefix(prefix string) map[string][]string {
	s.mu.Lock()
	navigators := make(map[string]*navguard.Navigator, len(s.navigators))
	for clientID, n := range s.navigators {
		navigators[clientID] = n
	}
	s.mu.Unlock()

	out := map[string][]string{}
	for clientID, n := range navigators {
		for _, r := range n.Registry().List() {
			if strings.HasPrefix(r.ID, prefix) {
				out[clientID] = append(out[clientID], r.ID)
			}
		}
	}
	return out
}

// List returns the blockers of clientID in registration order
func (s *NavigationService) List(clientID string) []domain.BlockerDTO {
	regs := s.Registry(clientID).List()
	out := make([]domain.BlockerDTO, 0, len(regs))
	for _, r := range regs {
		out = append(out, mapper.ToBlockerDTO(r))
	}
	return out
}

// Attempt decides whether a route change may proceed
func (s *NavigationService) Attempt(clientID string, req domain.NavigationAttemptRequest) (*domain.NavigationDecisionDTO, error) {
	n := s.Navigator(clientID)
	d, err := n.Attempt(mapper.ToRoute(req.From), mapper.ToRoute(req.To))
	if err != nil {
		return nil, fmt.Errorf("navigation attempt: %w: %w", ErrConflict, err)
	}
	dto := &domain.NavigationDecisionDTO{
		Proceed: d.Proceed,
		Blocker: d.Blocker,
		State:   string(n.State()),
	}
	if d.Modal != nil {
		m := mapper.ToModalDTO(*d.Modal)
		dto.Modal = &m
	}
	return dto, nil
}

// Resolve resolves the pending navigation of clientID. A failing confirm or
// secondary callback cancels the navigation and is reported in the outcome.
func (s *NavigationService) Resolve(ctx context.Context, clientID, action string) (*domain.NavigationOutcomeDTO, error) {
	n := s.Navigator(clientID)

	var (
		out navguard.Outcome
		err error
	)
	switch action {
	case ResolveConfirm:
		out, err = n.Confirm(ctx)
	case ResolveSecondary:
		out, err = n.Secondary(ctx)
	case ResolveDismiss:
		out, err = n.Dismiss()
	default:
		return nil, fmt.Errorf("unknown resolve action %q: %w", action, ErrInvalidInput)
	}

	if errors.Is(err, navguard.ErrNoPendingNavigation) || errors.Is(err, navguard.ErrResolving) {
		return nil, fmt.Errorf("resolve navigation: %w: %w", ErrConflict, err)
	}

	dto := &domain.NavigationOutcomeDTO{
		Proceed: out.Proceed,
		Action:  action,
		From:    mapper.ToRouteDTO(out.From),
		To:      mapper.ToRouteDTO(out.To),
	}
	if err != nil {
		s.logger.Warn("Navigation callback failed, navigation cancelled",
			zap.String("client_id", clientID),
			zap.String("action", action),
			zap.Error(err),
		)
		dto.Error = err.Error()
	}
	return dto, nil
}
