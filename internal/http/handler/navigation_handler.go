package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/portfolio-mgmt/pms-wizard/internal/domain"
	"github.com/portfolio-mgmt/pms-wizard/internal/service"
)

// NavigationHandler exposes per-client navigation blockers
type NavigationHandler struct {
	navigationService *service.NavigationService
	logger            *zap.Logger
}

// NewNavigationHandler creates a new NavigationHandler
func NewNavigationHandler(navigationService *service.NavigationService, logger *zap.Logger) *NavigationHandler {
	return &NavigationHandler{
		navigationService: navigationService,
		logger:            logger,
	}
}

// ListBlockers godoc
// @Summary List blockers
// @Description Lists the client's blockers in registration order
// @Tags Navigation
// @Produce json
// @Param clientId path string true "Client ID"
// @Success 200 {array} domain.BlockerDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /navigation/{clientId}/blockers [get]
func (h *NavigationHandler) ListBlockers(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.navigationService.List(chi.URLParam(r, "clientId")))
}

// RegisterBlocker godoc
// @Summary Register a blocker
// @Description Registers or replaces a blocker. A replaced blocker keeps its position.
// @Tags Navigation
// @Accept json
// @Produce json
// @Param clientId path string true "Client ID"
// @Param blockerId path string true "Blocker ID"
// @Param request body domain.RegisterBlockerRequest true "Blocker"
// @Success 200 {object} domain.BlockerDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /navigation/{clientId}/blockers/{blockerId} [put]
func (h *NavigationHandler) RegisterBlocker(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterBlockerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	blocker := h.navigationService.Register(chi.URLParam(r, "clientId"), chi.URLParam(r, "blockerId"), req)
	respondJSON(w, http.StatusOK, blocker)
}

// UpdateBlocker godoc
// @Summary Update a blocker
// @Description Merges shouldBlock and/or modal into an existing blocker
// @Tags Navigation
// @Accept json
// @Produce json
// @Param clientId path string true "Client ID"
// @Param blockerId path string true "Blocker ID"
// @Param request body domain.UpdateBlockerRequest true "Changes"
// @Success 200 {object} domain.BlockerDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /navigation/{clientId}/blockers/{blockerId} [patch]
func (h *NavigationHandler) UpdateBlocker(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateBlockerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	blocker, err := h.navigationService.Update(chi.URLParam(r, "clientId"), chi.URLParam(r, "blockerId"), req)
	if err != nil {
		handleServiceError(w, h.logger, err, "update blocker")
		return
	}
	respondJSON(w, http.StatusOK, blocker)
}

// UnregisterBlocker godoc
// @Summary Unregister a blocker
// @Description Removes a blocker. Unknown ids are ignored.
// @Tags Navigation
// @Param clientId path string true "Client ID"
// @Param blockerId path string true "Blocker ID"
// @Success 204
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /navigation/{clientId}/blockers/{blockerId} [delete]
func (h *NavigationHandler) UnregisterBlocker(w http.ResponseWriter, r *http.Request) {
	h.navigationService.Unregister(chi.URLParam(r, "clientId"), chi.URLParam(r, "blockerId"))
	w.WriteHeader(http.StatusNoContent)
}

// Attempt godoc
// @Summary Attempt a navigation
// @Description Decides whether the client may leave the current route. When blocked the navigation is held until it is resolved.
// @Tags Navigation
// @Accept json
// @Produce json
// @Param clientId path string true "Client ID"
// @Param request body domain.NavigationAttemptRequest true "Route change"
// @Success 200 {object} domain.NavigationDecisionDTO
// @Failure 400 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /navigation/{clientId}/attempt [post]
func (h *NavigationHandler) Attempt(w http.ResponseWriter, r *http.Request) {
	var req domain.NavigationAttemptRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	decision, err := h.navigationService.Attempt(chi.URLParam(r, "clientId"), req)
	if err != nil {
		handleServiceError(w, h.logger, err, "attempt navigation")
		return
	}
	respondJSON(w, http.StatusOK, decision)
}

// Resolve godoc
// @Summary Resolve a held navigation
// @Description confirm and secondary run the blocker's callback and proceed when it succeeds; dismiss stays on the page
// @Tags Navigation
// @Accept json
// @Produce json
// @Param clientId path string true "Client ID"
// @Param request body domain.ResolveNavigationRequest true "Choice"
// @Success 200 {object} domain.NavigationOutcomeDTO
// @Failure 400 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /navigation/{clientId}/resolve [post]
func (h *NavigationHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req domain.ResolveNavigationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	outcome, err := h.navigationService.Resolve(r.Context(), chi.URLParam(r, "clientId"), req.Action)
	if err != nil {
		handleServiceError(w, h.logger, err, "resolve navigation")
		return
	}
	respondJSON(w, http.StatusOK, outcome)
}
