package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/portfolio-mgmt/pms-wizard/internal/domain"
	"github.com/portfolio-mgmt/pms-wizard/internal/validation"
)

// ValidationHandler runs the named form rule sets
type ValidationHandler struct {
	logger *zap.Logger
}

// NewValidationHandler creates a new ValidationHandler
func NewValidationHandler(logger *zap.Logger) *ValidationHandler {
	return &ValidationHandler{logger: logger}
}

// SuiteInfo describes one rule set
type SuiteInfo struct {
	Name   string   `json:"name"`
	Fields []string `json:"fields"`
}

// ListSuites godoc
// @Summary List rule sets
// @Tags Validation
// @Produce json
// @Success 200 {array} SuiteInfo
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /validation [get]
func (h *ValidationHandler) ListSuites(w http.ResponseWriter, r *http.Request) {
	names := validation.Names()
	out := make([]SuiteInfo, 0, len(names))
	for _, name := range names {
		suite, err := validation.Lookup(name)
		if err != nil {
			continue
		}
		out = append(out, SuiteInfo{Name: name, Fields: suite.Fields()})
	}
	respondJSON(w, http.StatusOK, out)
}

// Validate godoc
// @Summary Run a rule set
// @Description Validates form data against a rule set. Repeat the field parameter to validate only those fields.
// @Tags Validation
// @Accept json
// @Produce json
// @Param suite path string true "Rule set" Enums(project, procurement-step, budget-line)
// @Param field query []string false "Fields to validate" collectionFormat(multi)
// @Param data body map[string]interface{} true "Form data"
// @Success 200 {object} domain.ValidationResultDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /validation/{suite} [post]
func (h *ValidationHandler) Validate(w http.ResponseWriter, r *http.Request) {
	suite, err := validation.Lookup(chi.URLParam(r, "suite"))
	if err != nil {
		if errors.Is(err, validation.ErrUnknownSuite) {
			respondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		h.logger.Error("failed to load rule set", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to load rule set")
		return
	}

	var data map[string]any
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result := suite.Validate(data, r.URL.Query()["field"]...)
	respondJSON(w, http.StatusOK, domain.ValidationResultDTO{
		Suite:  suite.Name(),
		Valid:  !result.HasErrors(),
		Errors: result,
	})
}
