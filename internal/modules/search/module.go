package search

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/arjunm29/nestfind/internal/modules/search/application"
	"github.com/arjunm29/nestfind/internal/modules/search/domain"
	persistence "github.com/arjunm29/nestfind/internal/modules/search/infrastructure/persistence/postgres"
	"github.com/arjunm29/nestfind/internal/modules/search/infrastructure/scheduler"
	searchHttp "github.com/arjunm29/nestfind/internal/modules/search/interfaces/http"
)

// Module represents the saved-search module: the CRUD surface plus the
// background matcher and its schedule.
type Module struct {
	repository *persistence.PgSavedSearchRepository
	matcher    *application.Matcher
	scheduler  *scheduler.Scheduler
	handler    *searchHttp.SearchHandler
}

// NewModule creates and initializes the Search module
func NewModule(
	db *sqlx.DB,
	properties application.PropertyStore,
	drops application.PriceDropStore,
	sink application.NotificationSink,
	interval time.Duration,
) *Module {
	repository := persistence.NewSavedSearchRepository(db)
	matcher := application.NewMatcher(repository, properties, drops, sink)

	return &Module{
		repository: repository,
		matcher:    matcher,
		scheduler:  scheduler.New(matcher, interval),
		handler:    searchHttp.NewSearchHandler(repository),
	}
}

// Repository returns the saved-search repository
func (m *Module) Repository() domain.SavedSearchRepository {
	return m.repository
}

// Matcher returns the saved-search matcher
func (m *Module) Matcher() *application.Matcher {
	return m.matcher
}

// Scheduler returns the matcher's cron schedule
func (m *Module) Scheduler() *scheduler.Scheduler {
	return m.scheduler
}

// HTTPHandler returns the HTTP handler
func (m *Module) HTTPHandler() *searchHttp.SearchHandler {
	return m.handler
}
