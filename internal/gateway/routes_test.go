package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjunm29/nestfind/internal/gateway/middleware"
	"github.com/arjunm29/nestfind/internal/modules/auth/infrastructure/jwt"
	"github.com/arjunm29/nestfind/internal/modules/listing/application"
	listing_http "github.com/arjunm29/nestfind/internal/modules/listing/interfaces/http"
)

// approveRecorder satisfies ListingService through embedding; only the
// approval path is exercised here.
type approveRecorder struct {
	application.ListingService
	propertyID uuid.UUID
	reviewID   uuid.UUID
	agentID    uuid.UUID
	calls      int
}

func (s *approveRecorder) ApproveReview(ctx context.Context, propertyID, reviewID, agentID uuid.UUID) error {
	s.propertyID = propertyID
	s.reviewID = reviewID
	s.agentID = agentID
	s.calls++
	return nil
}

func TestSetupRoutes_ReviewApprovalDispatch(t *testing.T) {
	const secret = "routes-test-secret"

	svc := &approveRecorder{}
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	mux := SetupRoutes(RouterConfig{
		PropertyHandler: listing_http.NewPropertyHandler(svc, nil, nil, rdb),
		AuthMiddleware:  middleware.NewAuthMiddleware(secret),
	})

	agentID := uuid.New()
	token, err := jwt.GenerateToken(secret, time.Hour, agentID, "agent")
	require.NoError(t, err)

	propID := uuid.New()
	reviewID := uuid.New()
	target := "/properties/" + propID.String() + "/reviews/" + reviewID.String() + "/approve"
	req := httptest.NewRequest(http.MethodPatch, target, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 1, svc.calls)
	assert.Equal(t, propID, svc.propertyID)
	assert.Equal(t, reviewID, svc.reviewID)
	assert.Equal(t, agentID, svc.agentID)
}

func TestSetupRoutes_Health(t *testing.T) {
	mux := SetupRoutes(RouterConfig{
		AuthMiddleware: middleware.NewAuthMiddleware("routes-test-secret"),
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}
