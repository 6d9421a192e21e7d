package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/arjunm29/nestfind/internal/gateway/middleware"
	"github.com/arjunm29/nestfind/internal/modules/listing/application"
	"github.com/arjunm29/nestfind/internal/modules/listing/domain"
	"github.com/arjunm29/nestfind/internal/shared/utils"
)

const cacheTTL = 10 * time.Minute

type PropertyHandler struct {
	service     application.ListingService
	fileService FileService
	users       UserDirectory
	redisClient *redis.Client
}

func NewPropertyHandler(service application.ListingService, fileService FileService, users UserDirectory, redisClient *redis.Client) *PropertyHandler {
	return &PropertyHandler{
		service:     service,
		fileService: fileService,
		users:       users,
		redisClient: redisClient,
	}
}

func (h *PropertyHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := domain.PropertyFilter{
		Type:        q.Get("filter"),
		Search:      q.Get("query"),
		IncludeSold: q.Get("includeSold") == "true",
	}
	if limitStr := q.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}

	properties, err := h.service.ListProperties(r.Context(), filter)
	if err != nil {
		log.Printf("[PropertyHandler.List] error: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to list properties", nil)
		return
	}
	utils.WriteJSON(w, http.StatusOK, properties)
}

func (h *PropertyHandler) Latest(w http.ResponseWriter, r *http.Request) {
	const cacheKey = "properties:latest"

	if val, err := h.redisClient.Get(r.Context(), cacheKey).Result(); err == nil {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(val))
		return
	}

	properties, err := h.service.LatestProperties(r.Context())
	if err != nil {
		log.Printf("[PropertyHandler.Latest] error: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to load latest properties", nil)
		return
	}

	if jsonBytes, err := json.Marshal(properties); err == nil {
		h.redisClient.Set(r.Context(), cacheKey, jsonBytes, cacheTTL)
		w.Header().Set("Content-Type", "application/json")
		w.Write(jsonBytes)
		return
	}
	utils.WriteJSON(w, http.StatusOK, properties)
}

func (h *PropertyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid property id", nil)
		return
	}

	cacheKey := "property:" + id.String()
	if val, err := h.redisClient.Get(r.Context(), cacheKey).Result(); err == nil {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(val))
		return
	}

	property, err := h.service.GetProperty(r.Context(), id)
	if err == domain.ErrPropertyNotFound {
		utils.WriteError(w, http.StatusNotFound, "property not found", nil)
		return
	}
	if err != nil {
		log.Printf("[PropertyHandler.Get] error: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to load property", nil)
		return
	}

	if jsonBytes, err := json.Marshal(property); err == nil {
		h.redisClient.Set(r.Context(), cacheKey, jsonBytes, cacheTTL)
		w.Header().Set("Content-Type", "application/json")
		w.Write(jsonBytes)
		return
	}
	utils.WriteJSON(w, http.StatusOK, property)
}

func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request) {
	agentID, ok := requireAgent(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 100<<20) // 100MB
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "request too large", err)
		return
	}

	var property domain.Property
	if err := json.Unmarshal([]byte(r.FormValue("metadata")), &property); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid metadata json", err)
		return
	}
	property.AgentID = agentID

	contact, err := h.users.GetContact(r.Context(), agentID)
	if err != nil {
		log.Printf("[PropertyHandler.Create] contact lookup failed: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to resolve agent", nil)
		return
	}
	property.AgentName = contact.Name
	property.AgentEmail = contact.Email
	property.AgentAvatar = contact.Avatar

	// Main image
	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		url, thumb, err := h.fileService.UploadImage(r.Context(), file, header, "properties")
		if err != nil {
			log.Printf("[PropertyHandler.Create] image upload failed: %v", err)
			utils.WriteError(w, http.StatusInternalServerError, "image upload failed", nil)
			return
		}
		property.Image = url
		property.Thumbnail = thumb
	}

	// Gallery images
	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["gallery"] {
			file, err := header.Open()
			if err != nil {
				continue
			}
			url, _, err := h.fileService.UploadImage(r.Context(), file, header, "properties/gallery")
			file.Close()
			if err != nil {
				log.Printf("[PropertyHandler.Create] gallery upload failed: %v", err)
				continue
			}
			property.Gallery = append(property.Gallery, domain.GalleryImage{Image: url})
		}
	}

	if err := h.service.CreateProperty(r.Context(), &property); err != nil {
		if err == domain.ErrMalformedPrice {
			utils.WriteError(w, http.StatusBadRequest, "price is not numeric", nil)
			return
		}
		log.Printf("[PropertyHandler.Create] error: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to create property", nil)
		return
	}

	h.invalidateListCaches(r.Context())
	utils.WriteJSON(w, http.StatusCreated, property)
}

func (h *PropertyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	agentID, ok := requireAgent(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid property id", nil)
		return
	}

	if err := h.service.DeleteProperty(r.Context(), id, agentID); err != nil {
		h.writeMutationError(w, "Delete", err)
		return
	}

	h.invalidateProperty(r.Context(), id)
	w.WriteHeader(http.StatusNoContent)
}

type changePriceRequest struct {
	Price string `json:"price"`
}

func (h *PropertyHandler) ChangePrice(w http.ResponseWriter, r *http.Request) {
	agentID, ok := requireAgent(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid property id", nil)
		return
	}

	var req changePriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	if err := h.service.ChangePrice(r.Context(), id, agentID, req.Price); err != nil {
		if err == domain.ErrMalformedPrice {
			utils.WriteError(w, http.StatusBadRequest, "price is not numeric", nil)
			return
		}
		h.writeMutationError(w, "ChangePrice", err)
		return
	}

	h.invalidateProperty(r.Context(), id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *PropertyHandler) MarkSold(w http.ResponseWriter, r *http.Request) {
	agentID, ok := requireAgent(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid property id", nil)
		return
	}

	var owner domain.Owner
	if err := json.NewDecoder(r.Body).Decode(&owner); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	if err := h.service.MarkSold(r.Context(), id, agentID, owner); err != nil {
		h.writeMutationError(w, "MarkSold", err)
		return
	}

	h.invalidateProperty(r.Context(), id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *PropertyHandler) MarkUnsold(w http.ResponseWriter, r *http.Request) {
	agentID, ok := requireAgent(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid property id", nil)
		return
	}

	if err := h.service.MarkUnsold(r.Context(), id, agentID); err != nil {
		h.writeMutationError(w, "MarkUnsold", err)
		return
	}

	h.invalidateProperty(r.Context(), id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *PropertyHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.ContextKeyUserId).(uuid.UUID)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid property id", nil)
		return
	}

	favorited, err := h.service.ToggleFavorite(r.Context(), userID, id)
	if err != nil {
		log.Printf("[PropertyHandler.ToggleFavorite] error: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to toggle favorite", nil)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]bool{"favorited": favorited})
}

func (h *PropertyHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.ContextKeyUserId).(uuid.UUID)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	properties, err := h.service.ListFavorites(r.Context(), userID)
	if err != nil {
		log.Printf("[PropertyHandler.ListFavorites] error: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to list favorites", nil)
		return
	}
	utils.WriteJSON(w, http.StatusOK, properties)
}

type addReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (h *PropertyHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.ContextKeyUserId).(uuid.UUID)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid property id", nil)
		return
	}

	var req addReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	contact, err := h.users.GetContact(r.Context(), userID)
	if err != nil {
		log.Printf("[PropertyHandler.AddReview] contact lookup failed: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to resolve user", nil)
		return
	}

	review := &domain.Review{
		PropertyID: id,
		Rating:     req.Rating,
		Comment:    req.Comment,
		UserName:   contact.Name,
		UserEmail:  contact.Email,
		UserAvatar: contact.Avatar,
	}
	if err := h.service.AddReview(r.Context(), review); err != nil {
		if err == domain.ErrInvalidRating {
			utils.WriteError(w, http.StatusBadRequest, "rating must be between 1 and 5", nil)
			return
		}
		h.writeMutationError(w, "AddReview", err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, review)
}

func (h *PropertyHandler) ApproveReview(w http.ResponseWriter, r *http.Request) {
	agentID, ok := requireAgent(w, r)
	if !ok {
		return
	}
	propertyID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid property id", nil)
		return
	}
	reviewID, err := uuid.Parse(r.PathValue("rid"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid review id", nil)
		return
	}

	if err := h.service.ApproveReview(r.Context(), propertyID, reviewID, agentID); err != nil {
		if err == domain.ErrReviewNotFound {
			utils.WriteError(w, http.StatusNotFound, "review not found", nil)
			return
		}
		h.writeMutationError(w, "ApproveReview", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PropertyHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid property id", nil)
		return
	}

	reviews, avg, err := h.service.PublicReviews(r.Context(), id)
	if err != nil {
		log.Printf("[PropertyHandler.ListReviews] error: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to list reviews", nil)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"reviews":        reviews,
		"average_rating": avg,
	})
}

func (h *PropertyHandler) writeMutationError(w http.ResponseWriter, op string, err error) {
	switch err {
	case domain.ErrPropertyNotFound:
		utils.WriteError(w, http.StatusNotFound, "property not found", nil)
	case domain.ErrUnauthorized:
		utils.WriteError(w, http.StatusForbidden, "not the listing agent", nil)
	default:
		log.Printf("[PropertyHandler.%s] error: %v", op, err)
		utils.WriteError(w, http.StatusInternalServerError, "operation failed", nil)
	}
}

func (h *PropertyHandler) invalidateProperty(ctx context.Context, id uuid.UUID) {
	h.redisClient.Del(ctx, "property:"+id.String())
	h.invalidateListCaches(ctx)
}

func (h *PropertyHandler) invalidateListCaches(ctx context.Context) {
	h.redisClient.Del(ctx, "properties:latest")
}

// requireAgent extracts the authenticated user and enforces the agent role
func requireAgent(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(middleware.ContextKeyUserId).(uuid.UUID)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return uuid.Nil, false
	}
	role, _ := r.Context().Value(middleware.ContextKeyRole).(string)
	if role != "agent" {
		utils.WriteError(w, http.StatusForbidden, "agent role required", nil)
		return uuid.Nil, false
	}
	return userID, true
}
