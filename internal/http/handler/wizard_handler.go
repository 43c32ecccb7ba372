package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/portfolio-mgmt/pms-wizard/internal/domain"
	"github.com/portfolio-mgmt/pms-wizard/internal/draft"
	"github.com/portfolio-mgmt/pms-wizard/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// WizardHandler handles HTTP requests for budget line wizards
type WizardHandler struct {
	wizardService *service.WizardService
	logger        *zap.Logger
}

// NewWizardHandler creates a new WizardHandler
func NewWizardHandler(wizardService *service.WizardService, logger *zap.Logger) *WizardHandler {
	return &WizardHandler{
		wizardService: wizardService,
		logger:        logger,
	}
}

// Create godoc
// @Summary Open a budget line wizard
// @Description Opens a wizard session for an agreement, seeded with its saved budget lines, and registers its navigation blocker under clientId
// @Tags Wizards
// @Accept json
// @Produce json
// @Param request body domain.CreateWizardRequest true "Wizard to open"
// @Success 201 {object} domain.WizardDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /wizards [post]
func (h *WizardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateWizardRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	wizard, err := h.wizardService.Create(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.logger, err, "open wizard")
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/v1/wizards/%s", wizard.ID))
	respondJSON(w, http.StatusCreated, wizard)
}

// Get godoc
// @Summary Get a wizard
// @Description Returns the wizard state with items grouped by services component and running totals
// @Tags Wizards
// @Produce json
// @Param id path string true "Wizard ID"
// @Success 200 {object} domain.WizardDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /wizards/{id} [get]
func (h *WizardHandler) Get(w http.ResponseWriter, r *http.Request) {
	wizard, err := h.wizardService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.logger, err, "get wizard")
		return
	}
	respondJSON(w, http.StatusOK, wizard)
}

// Dispatch godoc
// @Summary Apply a wizard action
// @Description Applies one store action (SET_FORM, ADD_ITEM, SET_EDIT, COMMIT_EDIT, DUPLICATE, DELETE, RESET_FORM, RESET_ALL)
// @Tags Wizards
// @Accept json
// @Produce json
// @Param id path string true "Wizard ID"
// @Param action body draft.Action true "Action"
// @Success 200 {object} domain.WizardDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /wizards/{id}/actions [post]
func (h *WizardHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	var action draft.Action
	if err := json.NewDecoder(r.Body).Decode(&action); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if action.Type == "" {
		respondWithError(w, http.StatusBadRequest, "Action type is required")
		return
	}
	if action.Status != nil && !action.Status.IsValid() {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Invalid status %q", *action.Status))
		return
	}

	wizard, err := h.wizardService.Dispatch(r.Context(), chi.URLParam(r, "id"), action)
	if err != nil {
		handleServiceError(w, h.logger, err, "apply wizard action")
		return
	}
	respondJSON(w, http.StatusOK, wizard)
}

// Save godoc
// @Summary Save a wizard
// @Description Creates new budget lines and updates saved ones in one transaction, then closes the wizard. Rejected or failed saves keep the wizard.
// @Tags Wizards
// @Produce json
// @Param id path string true "Wizard ID"
// @Success 200 {object} domain.SaveResultDTO
// @Failure 404 {object} domain.APIError
// @Failure 422 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /wizards/{id}/save [post]
func (h *WizardHandler) Save(w http.ResponseWriter, r *http.Request) {
	result, err := h.wizardService.Save(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.logger, err, "save wizard")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Cancel godoc
// @Summary Cancel a wizard
// @Description Discards the wizard and releases its navigation blocker
// @Tags Wizards
// @Param id path string true "Wizard ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /wizards/{id} [delete]
func (h *WizardHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if err := h.wizardService.Cancel(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.logger, err, "cancel wizard")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Export godoc
// @Summary Export a wizard
// @Description Downloads the wizard's budget lines and totals as an Excel workbook
// @Tags Wizards
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Wizard ID"
// @Success 200 {file} binary
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /wizards/{id}/export [get]
func (h *WizardHandler) Export(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	name, err := h.wizardService.Export(r.Context(), chi.URLParam(r, "id"), &buf)
	if err != nil {
		handleServiceError(w, h.logger, err, "export wizard")
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
