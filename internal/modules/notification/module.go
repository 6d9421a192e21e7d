package notification

import (
	"github.com/jmoiron/sqlx"

	"github.com/arjunm29/nestfind/internal/modules/notification/application"
	"github.com/arjunm29/nestfind/internal/modules/notification/infrastructure/persistence/postgres"
	"github.com/arjunm29/nestfind/internal/modules/notification/infrastructure/websocket"
	notification_http "github.com/arjunm29/nestfind/internal/modules/notification/interfaces/http"
)

type Module struct {
	service *application.NotificationService
	sink    *application.MatcherSink
	handler *notification_http.NotificationHandler
	hub     *websocket.Hub
}

func NewModule(db *sqlx.DB, preferences application.PreferenceSource) *Module {
	repo := postgres.NewPgNotificationRepository(db)
	hub := websocket.NewHub()
	go hub.Run()

	service := application.NewNotificationService(repo, hub)
	handler := notification_http.NewNotificationHandler(service, hub)

	return &Module{
		service: service,
		sink:    application.NewMatcherSink(service, preferences),
		handler: handler,
		hub:     hub,
	}
}

func (m *Module) HTTPHandler() *notification_http.NotificationHandler {
	return m.handler
}

func (m *Module) Service() *application.NotificationService {
	return m.service
}

// MatcherSink is the delivery surface the saved-search matcher writes to
func (m *Module) MatcherSink() *application.MatcherSink {
	return m.sink
}

// Stop shuts down the websocket hub
func (m *Module) Stop() {
	m.hub.Stop()
}
