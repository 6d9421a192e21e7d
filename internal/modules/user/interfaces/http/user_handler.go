package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/arjunm29/nestfind/internal/gateway/middleware"
	authDomain "github.com/arjunm29/nestfind/internal/modules/auth/domain"
	"github.com/arjunm29/nestfind/internal/modules/user/application"
	"github.com/arjunm29/nestfind/internal/shared/utils"
)

const maxAvatarSize = 5 << 20 // 5 MB

type UserHandler struct {
	service *application.UserService
}

func NewUserHandler(service *application.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) currentUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(middleware.ContextKeyUserId).(uuid.UUID)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return uuid.Nil, false
	}
	return userID, true
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid user id", nil)
		return
	}

	profile, err := h.service.GetPublicProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, authDomain.ErrUserNotFound) {
			utils.WriteError(w, http.StatusNotFound, "user not found", nil)
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "failed to fetch profile", nil)
		return
	}

	utils.WriteJSON(w, http.StatusOK, profile)
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req application.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	if err := h.service.UpdateProfile(r.Context(), userID, req); err != nil {
		if errors.Is(err, authDomain.ErrUserNotFound) {
			utils.WriteError(w, http.StatusNotFound, "user not found", nil)
			return
		}
		log.Printf("[UserHandler.UpdateProfile] error: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to update profile", nil)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxAvatarSize); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid multipart form", nil)
		return
	}
	file, header, err := r.FormFile("avatar")
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "avatar file is required", nil)
		return
	}
	defer file.Close()

	url, err := h.service.UploadAvatar(r.Context(), userID, file, header)
	if err != nil {
		log.Printf("[UserHandler.UploadAvatar] error: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to upload avatar", nil)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"avatar_url": url})
}

func (h *UserHandler) SetPushToken(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req application.SetPushTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	if err := h.service.SetPushToken(r.Context(), userID, req.Token); err != nil {
		log.Printf("[UserHandler.SetPushToken] error: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to set push token", nil)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req application.UpdatePreferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	if err := h.service.SetPreferences(r.Context(), userID, req.Preferences); err != nil {
		log.Printf("[UserHandler.UpdatePreferences] error: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to update preferences", nil)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
