package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/arjunm29/nestfind/internal/gateway/middleware"
	"github.com/arjunm29/nestfind/internal/modules/search/domain"
	"github.com/arjunm29/nestfind/internal/shared/utils"
)

type SearchHandler struct {
	searches domain.SavedSearchRepository
}

func NewSearchHandler(searches domain.SavedSearchRepository) *SearchHandler {
	return &SearchHandler{searches: searches}
}

type createSearchRequest struct {
	Name     string                `json:"name"`
	Criteria domain.SearchCriteria `json:"criteria"`
}

func (h *SearchHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.ContextKeyUserId).(uuid.UUID)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var req createSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if req.Name == "" {
		utils.WriteError(w, http.StatusBadRequest, "name is required", nil)
		return
	}

	search := &domain.SavedSearch{
		UserID:   userID,
		Name:     req.Name,
		Criteria: req.Criteria,
		IsActive: true,
	}
	if err := h.searches.Create(r.Context(), search); err != nil {
		log.Printf("[SearchHandler.Create] error: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to save search", nil)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, search)
}

func (h *SearchHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.ContextKeyUserId).(uuid.UUID)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	searches, err := h.searches.ListActiveByUser(r.Context(), userID)
	if err != nil {
		log.Printf("[SearchHandler.List] error: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to list searches", nil)
		return
	}
	utils.WriteJSON(w, http.StatusOK, searches)
}

func (h *SearchHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.ContextKeyUserId).(uuid.UUID)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid search id", nil)
		return
	}

	if err := h.searches.Deactivate(r.Context(), id, userID); err != nil {
		if err == domain.ErrSearchNotFound {
			utils.WriteError(w, http.StatusNotFound, "saved search not found", nil)
			return
		}
		log.Printf("[SearchHandler.Deactivate] error: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to deactivate search", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
