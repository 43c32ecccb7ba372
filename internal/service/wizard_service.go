package service

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/portfolio-mgmt/pms-wizard/internal/auth"
	"github.com/portfolio-mgmt/pms-wizard/internal/domain"
	"github.com/portfolio-mgmt/pms-wizard/internal/draft"
	"github.com/portfolio-mgmt/pms-wizard/internal/export"
	"github.com/portfolio-mgmt/pms-wizard/internal/logger"
	"github.com/portfolio-mgmt/pms-wizard/internal/mapper"
	"github.com/portfolio-mgmt/pms-wizard/internal/navguard"
	"github.com/portfolio-mgmt/pms-wizard/internal/repository"
	"github.com/portfolio-mgmt/pms-wizard/internal/session"
	"github.com/portfolio-mgmt/pms-wizard/internal/validation"
)

const lockStripes = 64

// WizardService runs budget-line wizard sessions: it applies store actions,
// keeps the session's navigation blocker in sync with its dirty state and
// saves the result.
type WizardService struct {
	store         session.Store
	agreementRepo *repository.AgreementRepository
	canRepo       *repository.CANRepository
	scRepo        *repository.ServicesComponentRepository
	lineRepo      *repository.BudgetLineItemRepository
	nav           *NavigationService
	logger        *zap.Logger
	now           func() time.Time

	locks [lockStripes]sync.Mutex
}

// NewWizardService creates a new WizardService instance
func NewWizardService(
	store session.Store,
	agreementRepo *repository.AgreementRepository,
	canRepo *repository.CANRepository,
	scRepo *repository.ServicesComponentRepository,
	lineRepo *repository.BudgetLineItemRepository,
	nav *NavigationService,
	logger *zap.Logger,
) *WizardService {
	return &WizardService{
		store:         store,
		agreementRepo: agreementRepo,
		canRepo:       canRepo,
		scRepo:        scRepo,
		lineRepo:      lineRepo,
		nav:           nav,
		logger:        logger,
		now:           time.Now,
	}
}

// SetClock replaces time.Now for the review rules
func (s *WizardService) SetClock(now func() time.Time) {
	s.now = now
}

const blockerPrefix = "wizard:"

// BlockerID is the navigation blocker id of a wizard session
func BlockerID(wizardID string) string {
	return blockerPrefix + wizardID
}

// Create opens a wizard for an agreement, seeded with its saved budget lines
func (s *WizardService) Create(ctx context.Context, req domain.CreateWizardRequest) (*domain.WizardDTO, error) {
	agreement, err := s.agreementRepo.GetByID(ctx, req.AgreementID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("agreement %d: %w", req.AgreementID, ErrNotFound)
		}
		s.logger.Error("Failed to load agreement", zap.Int64("agreement_id", req.AgreementID), zap.Error(err))
		return nil, fmt.Errorf("failed to load agreement: %w", err)
	}

	lines, err := s.lineRepo.ListByAgreement(ctx, agreement.ID)
	if err != nil {
		s.logger.Error("Failed to load budget lines", zap.Int64("agreement_id", agreement.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to load budget lines: %w", err)
	}
	items := make([]draft.LineItem, 0, len(lines))
	seeded := make([]int64, 0, len(lines))
	for i := range lines {
		items = append(items, mapper.ToLineItem(&lines[i]))
		seeded = append(seeded, lines[i].ID)
	}

	fee := decimal.Zero
	if agreement.ProcurementShop != nil {
		fee = agreement.ProcurementShop.FeePercentage
	}

	w := &session.Wizard{
		ID:                    uuid.NewString(),
		AgreementID:           agreement.ID,
		ClientID:              req.ClientID,
		ProcShopFeePercentage: fee,
		State:                 draft.Seed(items),
		SeededIDs:             seeded,
		CreatedBy:             auth.UserIDFromContext(ctx, ""),
	}
	if err := s.store.Put(ctx, w); err != nil {
		s.logger.Error("Failed to store wizard session", zap.Error(err))
		return nil, fmt.Errorf("failed to store wizard session: %w", err)
	}
	s.syncBlocker(w)

	logger.WithWizard(s.logger, w.ID, w.AgreementID).Info("Wizard opened",
		zap.Int("seeded_items", len(items)),
		zap.String("client_id", w.ClientID),
	)
	return s.view(ctx, w)
}

// Get returns a wizard with its derived views
func (s *WizardService) Get(ctx context.Context, id string) (*domain.WizardDTO, error) {
	mu := s.lock(id)
	mu.Lock()
	defer mu.Unlock()

	w, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	s.syncBlocker(w)
	return s.view(ctx, w)
}

// Dispatch applies a store action. Actions that reference a missing item
// return ErrNotFound; the state they leave behind is still stored.
func (s *WizardService) Dispatch(ctx context.Context, id string, action draft.Action) (*domain.WizardDTO, error) {
	mu := s.lock(id)
	mu.Lock()
	defer mu.Unlock()

	w, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	action.AgreementID = w.AgreementID
	action.ProcShopFeePercentage = w.ProcShopFeePercentage
	if action.Form != nil {
		if err := s.snapshotCAN(ctx, action.Form); err != nil {
			return nil, err
		}
	}

	next, dispatchErr := draft.Dispatch(w.State, action)
	if dispatchErr != nil && !errors.Is(dispatchErr, draft.ErrItemNotFound) {
		return nil, mapDraftError(dispatchErr)
	}

	w.State = next
	if err := s.store.Put(ctx, w); err != nil {
		s.logger.Error("Failed to store wizard session", zap.String("wizard_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to store wizard session: %w", err)
	}
	s.syncBlocker(w)

	if dispatchErr != nil {
		return nil, mapDraftError(dispatchErr)
	}
	return s.view(ctx, w)
}

// Save validates the wizard's items and writes them in one transaction:
// New items are created, Persisted items updated and saved items deleted
// in the wizard are removed. On any failure the session is kept unchanged
// so the save can be retried.
func (s *WizardService) Save(ctx context.Context, id string) (*domain.SaveResultDTO, error) {
	mu := s.lock(id)
	mu.Lock()
	defer mu.Unlock()

	w, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	log := logger.WithWizard(s.logger, w.ID, w.AgreementID)

	if verr := s.review(w.State.Items); verr != nil {
		log.Info("Wizard save rejected by review rules", zap.Int("fields", len(verr.Errors)))
		return nil, verr
	}

	createdBy := auth.UserIDFromContext(ctx, w.CreatedBy)
	newItems, existing := draft.Partition(w.State.Items)
	created := make([]*domain.BudgetLineItem, 0, len(newItems))
	for _, item := range newItems {
		created = append(created, mapper.ToBudgetLineItem(item, createdBy))
	}
	updated := make([]*domain.BudgetLineItem, 0, len(existing))
	kept := make(map[int64]bool, len(existing))
	for _, item := range existing {
		updated = append(updated, mapper.ToBudgetLineItem(item, createdBy))
		kept[item.Persisted.ServerID] = true
	}
	deleted := []int64{}
	for _, id := range w.SeededIDs {
		if !kept[id] {
			deleted = append(deleted, id)
		}
	}

	err = s.lineRepo.SaveBatch(ctx, repository.BudgetLineBatch{
		AgreementID: w.AgreementID,
		Created:     created,
		Updated:     updated,
		Deleted:     deleted,
	})
	if err != nil {
		log.Error("Failed to save budget lines", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	result := &domain.SaveResultDTO{Created: []int64{}, Updated: []int64{}, Deleted: deleted}
	for _, c := range created {
		result.Created = append(result.Created, c.ID)
	}
	for _, u := range updated {
		result.Updated = append(result.Updated, u.ID)
	}

	if err := s.store.Delete(ctx, w.ID); err != nil {
		log.Warn("Failed to drop saved wizard session", zap.Error(err))
	}
	s.nav.Unregister(w.ClientID, BlockerID(w.ID))

	log.Info("Wizard saved",
		zap.Int("created", len(result.Created)),
		zap.Int("updated", len(result.Updated)),
		zap.Int("deleted", len(result.Deleted)),
		zap.String("user_id", createdBy),
	)
	return result, nil
}

// Cancel discards a wizard: its state is reset, the session dropped and its
// blocker released.
func (s *WizardService) Cancel(ctx context.Context, id string) error {
	mu := s.lock(id)
	mu.Lock()
	defer mu.Unlock()

	w, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete wizard session", zap.String("wizard_id", id), zap.Error(err))
		return fmt.Errorf("failed to delete wizard session: %w", err)
	}
	s.nav.Unregister(w.ClientID, BlockerID(id))
	logger.WithWizard(s.logger, w.ID, w.AgreementID).Info("Wizard cancelled",
		zap.Int("discarded_items", len(w.State.Items)),
	)
	return nil
}

// Export writes the wizard summary workbook to out and returns its file name
func (s *WizardService) Export(ctx context.Context, id string, out io.Writer) (string, error) {
	dto, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if err := export.WriteSummary(out, *dto); err != nil {
		s.logger.Error("Failed to export wizard", zap.String("wizard_id", id), zap.Error(err))
		return "", fmt.Errorf("failed to export wizard: %w", err)
	}
	return export.Filename(*dto), nil
}

// SweepIdle drops sessions idle for longer than ttl and releases their
// blockers, including blockers of sessions the store has already expired
// on its own. It returns the number of sessions whose blockers were released.
func (s *WizardService) SweepIdle(ctx context.Context, ttl time.Duration) (int, error) {
	removed, err := s.store.Sweep(ctx, s.now().Add(-ttl))
	for _, id := range removed {
		s.nav.UnregisterEverywhere(BlockerID(id))
	}
	if err != nil {
		return len(removed), fmt.Errorf("failed to sweep wizard sessions: %w", err)
	}

	swept := make(map[string]bool, len(removed))
	for _, id := range removed {
		swept[id] = true
	}
	orphans := 0
	for clientID, blockerIDs := range s.nav.BlockersWithPrefix(blockerPrefix) {
		for _, blockerID := range blockerIDs {
			wizardID := strings.TrimPrefix(blockerID, blockerPrefix)
			if swept[wizardID] {
				continue
			}
			released, err := s.releaseIfGone(ctx, clientID, wizardID)
			if err != nil {
				return len(removed) + orphans, err
			}
			if released {
				orphans++
			}
		}
	}
	if orphans > 0 {
		s.logger.Info("Released blockers of expired wizard sessions", zap.Int("count", orphans))
	}
	return len(removed) + orphans, nil
}

// releaseIfGone unregisters the wizard's blocker when its session no longer
// exists.
func (s *WizardService) releaseIfGone(ctx context.Context, clientID, wizardID string) (bool, error) {
	mu := s.lock(wizardID)
	mu.Lock()
	defer mu.Unlock()

	_, err := s.store.Get(ctx, wizardID)
	switch {
	case errors.Is(err, session.ErrNotFound):
		s.nav.Unregister(clientID, BlockerID(wizardID))
		return true, nil
	case err != nil:
		return false, fmt.Errorf("failed to check wizard session %s: %w", wizardID, err)
	}
	return false, nil
}

func (s *WizardService) load(ctx context.Context, id string) (*session.Wizard, error) {
	w, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, fmt.Errorf("wizard %s: %w", id, ErrNotFound)
		}
		s.logger.Error("Failed to load wizard session", zap.String("wizard_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to load wizard session: %w", err)
	}
	return w, nil
}

func (s *WizardService) lock(id string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return &s.locks[h.Sum32()%lockStripes]
}

// syncBlocker registers the wizard's blocker, or updates its shouldBlock
// flag when it is already registered.
func (s *WizardService) syncBlocker(w *session.Wizard) {
	reg := s.nav.Registry(w.ClientID)
	blockerID := BlockerID(w.ID)
	dirty := w.State.Dirty()
	if reg.Update(blockerID, navguard.Patch{ShouldBlock: &dirty}) {
		return
	}

	wizardID, clientID := w.ID, w.ClientID
	reg.Register(blockerID, dirty, navguard.ModalProps{
		Heading:        "Save changes before leaving?",
		Description:    "You have unsaved budget lines. Save them, discard them, or stay on this page.",
		ConfirmLabel:   "Save Changes",
		SecondaryLabel: "Discard Changes",
		CancelLabel:    "Stay on Page",
		OnConfirm: func(ctx context.Context) error {
			_, err := s.Save(ctx, wizardID)
			if errors.Is(err, ErrNotFound) {
				// The session expired; there is nothing left to save or guard.
				s.nav.Unregister(clientID, blockerID)
			}
			return err
		},
		OnSecondary: func(ctx context.Context) error {
			err := s.Cancel(ctx, wizardID)
			if errors.Is(err, ErrNotFound) {
				s.nav.Unregister(clientID, blockerID)
				return nil
			}
			return err
		},
	})
}

// review runs the budget line rules over every item that is past DRAFT.
// Lines in execution or obligated keep their need-by date even once it has
// passed.
func (s *WizardService) review(items []draft.LineItem) *ValidationError {
	errs := map[string][]string{}
	for _, item := range items {
		var suite *validation.Suite
		switch item.Status {
		case draft.StatusDraft:
			continue
		case draft.StatusInExecution, draft.StatusObligated:
			suite = validation.NewExecutedBudgetLineSuite(validation.WithClock(s.now))
		default:
			suite = validation.NewBudgetLineReviewSuite(validation.WithClock(s.now))
		}
		result := suite.Validate(mapper.ToValidationData(item))
		for field, msgs := range result {
			errs[fmt.Sprintf("items[%s].%s", item.ID, field)] = msgs
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Errors: errs}
}

func (s *WizardService) snapshotCAN(ctx context.Context, form *draft.FormFields) error {
	if form.CANID == nil || (form.CAN != nil && form.CAN.ID == *form.CANID) {
		return nil
	}
	cans, err := s.canRepo.GetByIDs(ctx, []int64{*form.CANID})
	if err != nil {
		s.logger.Error("Failed to load CAN", zap.Int64("can_id", *form.CANID), zap.Error(err))
		return fmt.Errorf("failed to load CAN: %w", err)
	}
	can, ok := cans[*form.CANID]
	if !ok {
		return fmt.Errorf("CAN %d: %w", *form.CANID, ErrInvalidInput)
	}
	form.CAN = &draft.CANSnapshot{ID: can.ID, Number: can.Number, Description: can.Description}
	return nil
}

func (s *WizardService) view(ctx context.Context, w *session.Wizard) (*domain.WizardDTO, error) {
	components, err := s.scRepo.ListByAgreement(ctx, w.AgreementID)
	if err != nil {
		s.logger.Error("Failed to load services components", zap.Int64("agreement_id", w.AgreementID), zap.Error(err))
		return nil, fmt.Errorf("failed to load services components: %w", err)
	}
	names := make(map[int64]string, len(components))
	for _, sc := range components {
		names[sc.ID] = sc.DisplayName()
	}
	dto := mapper.ToWizardDTO(w, BlockerID(w.ID), names)
	return &dto, nil
}

func mapDraftError(err error) error {
	switch {
	case errors.Is(err, draft.ErrItemNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, draft.ErrNotEditing):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	default:
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
}
