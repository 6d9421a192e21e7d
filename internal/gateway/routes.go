package gateway

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/arjunm29/nestfind/internal/gateway/middleware"
	auth_http "github.com/arjunm29/nestfind/internal/modules/auth/interfaces/http"
	listing_http "github.com/arjunm29/nestfind/internal/modules/listing/interfaces/http"
	mortgage_http "github.com/arjunm29/nestfind/internal/modules/mortgage/interfaces/http"
	notification_http "github.com/arjunm29/nestfind/internal/modules/notification/interfaces/http"
	search_http "github.com/arjunm29/nestfind/internal/modules/search/interfaces/http"
	user_http "github.com/arjunm29/nestfind/internal/modules/user/interfaces/http"
)

// RouterConfig holds all the handlers and middleware needed for routing
type RouterConfig struct {
	AuthHandler         *auth_http.AuthHandler
	AuthMiddleware      *middleware.AuthMiddleWare
	PropertyHandler     *listing_http.PropertyHandler
	SearchHandler       *search_http.SearchHandler
	UserHandler         *user_http.UserHandler
	NotificationHandler *notification_http.NotificationHandler
	MortgageHandler     *mortgage_http.MortgageHandler
}

// SetupRoutes creates and configures all application routes
func SetupRoutes(config RouterConfig) *http.ServeMux {
	mux := http.NewServeMux()

	// Health Check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus Metrics Endpoint
	mux.Handle("/metrics", promhttp.Handler())

	// Auth Routes
	mux.HandleFunc("POST /register", config.AuthHandler.Register)
	mux.HandleFunc("POST /login", config.AuthHandler.Login)
	mux.HandleFunc("POST /login/google", config.AuthHandler.GoogleLogin)
	mux.Handle("GET /me", config.AuthMiddleware.RequireAuth(http.HandlerFunc(config.AuthHandler.Me)))

	// Property Routes
	mux.Handle("GET /properties", config.AuthMiddleware.FlexibleAuth(http.HandlerFunc(config.PropertyHandler.List)))
	mux.Handle("GET /properties/latest", config.AuthMiddleware.FlexibleAuth(http.HandlerFunc(config.PropertyHandler.Latest)))
	mux.Handle("GET /properties/{id}", config.AuthMiddleware.FlexibleAuth(http.HandlerFunc(config.PropertyHandler.Get)))
	mux.Handle("POST /properties", config.AuthMiddleware.RequireAuth(http.HandlerFunc(config.PropertyHandler.Create)))
	mux.Handle("DELETE /properties/{id}", config.AuthMiddleware.RequireAuth(http.HandlerFunc(config.PropertyHandler.Delete)))
	mux.Handle("PATCH /properties/{id}/price", config.AuthMiddleware.RequireAuth(http.HandlerFunc(config.PropertyHandler.ChangePrice)))
	mux.Handle("POST /properties/{id}/sold", config.AuthMiddleware.RequireAuth(http.HandlerFunc(config.PropertyHandler.MarkSold)))
	mux.Handle("DELETE /properties/{id}/sold", config.AuthMiddleware.RequireAuth(http.HandlerFunc(config.PropertyHandler.MarkUnsold)))

	// Favorites
	mux.Handle("POST /properties/{id}/favorite", config.AuthMiddleware.RequireAuth(http.HandlerFunc(config.PropertyHandler.ToggleFavorite)))
	mux.Handle("GET /favorites", config.AuthMiddleware.RequireAuth(http.HandlerFunc(config.PropertyHandler.ListFavorites)))

	// Reviews
	mux.Handle("POST /properties/{id}/reviews", config.AuthMiddleware.RequireAuth(http.HandlerFunc(config.PropertyHandler.AddReview)))
	mux.HandleFunc("GET /properties/{id}/reviews", config.PropertyHandler.ListReviews)
	mux.Handle("PATCH /properties/{id}/reviews/{rid}/approve", config.AuthMiddleware.RequireAuth(http.HandlerFunc(config.PropertyHandler.ApproveReview)))

	// Saved Search Routes
	mux.Handle("POST /saved-searches", config.AuthMiddleware.RequireAuth(http.HandlerFunc(config.SearchHandler.Create)))
	mux.Handle("GET /saved-searches", config.AuthMiddleware.RequireAuth(http.HandlerFunc(config.SearchHandler.List)))
	mux.Handle("DELETE /saved-searches/{id}", config.AuthMiddleware.RequireAuth(http.HandlerFunc(config.SearchHandler.Deactivate)))

	// User Routes
	mux.Handle("PATCH /users/profile", config.AuthMiddleware.RequireAuth(http.HandlerFunc(config.UserHandler.UpdateProfile)))
	mux.Handle("POST /users/profile/avatar", config.AuthMiddleware.RequireAuth(http.HandlerFunc(config.UserHandler.UploadAvatar)))
	mux.Handle("PUT /users/push-token", config.AuthMiddleware.RequireAuth(http.HandlerFunc(config.UserHandler.SetPushToken)))
	mux.Handle("PUT /users/preferences", config.AuthMiddleware.RequireAuth(http.HandlerFunc(config.UserHandler.UpdatePreferences)))
	mux.HandleFunc("GET /users/{id}/public", config.UserHandler.GetProfile)

	// Notification Routes
	mux.Handle("GET /notifications", config.AuthMiddleware.RequireAuth(http.HandlerFunc(config.NotificationHandler.ListNotifications)))
	mux.Handle("PATCH /notifications/{id}/read", config.AuthMiddleware.RequireAuth(http.HandlerFunc(config.NotificationHandler.MarkAsRead)))
	mux.Handle("PATCH /notifications/read-all", config.AuthMiddleware.RequireAuth(http.HandlerFunc(config.NotificationHandler.MarkAllAsRead)))
	mux.Handle("GET /notifications/unread-count", config.AuthMiddleware.RequireAuth(http.HandlerFunc(config.NotificationHandler.UnreadCount)))
	mux.Handle("GET /ws", config.AuthMiddleware.RequireAuth(http.HandlerFunc(config.NotificationHandler.Subscribe)))

	// Mortgage Routes
	mux.HandleFunc("POST /mortgage/calculate", config.MortgageHandler.Calculate)
	mux.HandleFunc("POST /mortgage/affordability", config.MortgageHandler.Affordability)

	return mux
}
