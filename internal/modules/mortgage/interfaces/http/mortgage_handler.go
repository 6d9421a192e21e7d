package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/arjunm29/nestfind/internal/modules/mortgage/domain"
	"github.com/arjunm29/nestfind/internal/shared/utils"
)

type MortgageHandler struct{}

func NewMortgageHandler() *MortgageHandler {
	return &MortgageHandler{}
}

func (h *MortgageHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req domain.CalculationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	result, err := domain.Calculate(req)
	if err != nil {
		if isValidationError(err) {
			utils.WriteError(w, http.StatusBadRequest, err.Error(), nil)
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "calculation failed", nil)
		return
	}

	utils.WriteJSON(w, http.StatusOK, result)
}

func (h *MortgageHandler) Affordability(w http.ResponseWriter, r *http.Request) {
	var req domain.AffordabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	result, err := domain.Affordability(req)
	if err != nil {
		if isValidationError(err) {
			utils.WriteError(w, http.StatusBadRequest, err.Error(), nil)
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "calculation failed", nil)
		return
	}

	utils.WriteJSON(w, http.StatusOK, result)
}

func isValidationError(err error) bool {
	return errors.Is(err, domain.ErrInvalidPrincipal) ||
		errors.Is(err, domain.ErrInvalidRate) ||
		errors.Is(err, domain.ErrInvalidTerm)
}
