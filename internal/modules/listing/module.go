package listing

import (
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/arjunm29/nestfind/internal/modules/listing/application"
	"github.com/arjunm29/nestfind/internal/modules/listing/domain"
	persistence "github.com/arjunm29/nestfind/internal/modules/listing/infrastructure/persistence/postgres"
	listingHttp "github.com/arjunm29/nestfind/internal/modules/listing/interfaces/http"
)

// Module represents the Listing module
type Module struct {
	properties *persistence.PgPropertyRepository
	history    *persistence.PgPriceHistoryRepository
	service    application.ListingService
	handler    *listingHttp.PropertyHandler
}

// NewModule creates and initializes the Listing module
func NewModule(
	db *sqlx.DB,
	fileService listingHttp.FileService,
	users listingHttp.UserDirectory,
	redisClient *redis.Client,
) *Module {
	properties := persistence.NewPropertyRepository(db)
	reviews := persistence.NewReviewRepository(db)
	favorites := persistence.NewFavoriteRepository(db)
	history := persistence.NewPriceHistoryRepository(db)

	service := application.NewListingService(properties, reviews, favorites, history)
	handler := listingHttp.NewPropertyHandler(service, fileService, users, redisClient)

	return &Module{
		properties: properties,
		history:    history,
		service:    service,
		handler:    handler,
	}
}

// PropertyStore exposes the property repository to the search matcher
func (m *Module) PropertyStore() domain.PropertyRepository {
	return m.properties
}

// PriceHistory exposes the price-history repository to the search matcher
func (m *Module) PriceHistory() domain.PriceHistoryRepository {
	return m.history
}

// Service returns the listing service
func (m *Module) Service() application.ListingService {
	return m.service
}

// HTTPHandler returns the HTTP handler
func (m *Module) HTTPHandler() *listingHttp.PropertyHandler {
	return m.handler
}
