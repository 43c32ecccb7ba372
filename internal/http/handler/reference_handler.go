package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/portfolio-mgmt/pms-wizard/internal/domain"
	"github.com/portfolio-mgmt/pms-wizard/internal/repository"
)

// ReferenceHandler serves the option lists of the budget line form
type ReferenceHandler struct {
	canRepo *repository.CANRepository
	scRepo  *repository.ServicesComponentRepository
	logger  *zap.Logger
}

// NewReferenceHandler creates a new ReferenceHandler
func NewReferenceHandler(canRepo *repository.CANRepository, scRepo *repository.ServicesComponentRepository, logger *zap.Logger) *ReferenceHandler {
	return &ReferenceHandler{
		canRepo: canRepo,
		scRepo:  scRepo,
		logger:  logger,
	}
}

// ListCANs godoc
// @Summary List CANs
// @Tags Reference
// @Produce json
// @Success 200 {array} domain.CAN
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /cans [get]
func (h *ReferenceHandler) ListCANs(w http.ResponseWriter, r *http.Request) {
	cans, err := h.canRepo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list CANs", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list CANs")
		return
	}
	respondJSON(w, http.StatusOK, cans)
}

// ListServicesComponents godoc
// @Summary List services components of an agreement
// @Tags Reference
// @Produce json
// @Param id path int true "Agreement ID"
// @Success 200 {array} domain.ServicesComponentDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /agreements/{id}/services-components [get]
func (h *ReferenceHandler) ListServicesComponents(w http.ResponseWriter, r *http.Request) {
	agreementID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || agreementID <= 0 {
		respondWithError(w, http.StatusBadRequest, "Invalid agreement ID")
		return
	}

	components, err := h.scRepo.ListByAgreement(r.Context(), agreementID)
	if err != nil {
		h.logger.Error("failed to list services components", zap.Int64("agreement_id", agreementID), zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list services components")
		return
	}

	out := make([]domain.ServicesComponentDTO, 0, len(components))
	for _, sc := range components {
		out = append(out, domain.ServicesComponentDTO{
			ID:          sc.ID,
			Number:      sc.Number,
			Optional:    sc.Optional,
			DisplayName: sc.DisplayName(),
			Description: sc.Description,
		})
	}
	respondJSON(w, http.StatusOK, out)
}
