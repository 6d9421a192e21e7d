package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/arjunm29/nestfind/internal/gateway"
	"github.com/arjunm29/nestfind/internal/gateway/middleware"
	"github.com/arjunm29/nestfind/internal/modules/auth"
	"github.com/arjunm29/nestfind/internal/modules/filestorage"
	"github.com/arjunm29/nestfind/internal/modules/listing"
	"github.com/arjunm29/nestfind/internal/modules/mortgage"
	"github.com/arjunm29/nestfind/internal/modules/notification"
	"github.com/arjunm29/nestfind/internal/modules/search"
	"github.com/arjunm29/nestfind/internal/modules/user"
	"github.com/arjunm29/nestfind/internal/shared/infrastructure/config"
	"github.com/arjunm29/nestfind/internal/shared/infrastructure/database"
	"github.com/arjunm29/nestfind/pkg/migration"
)

func main() {
	migrateCmd := flag.String("migrate", "", "run a migration command (up, down, version, force=<n>) and exit")
	flag.Parse()

	cfg := config.Load()
	ctx := context.Background()

	// Migrations
	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "migrations"
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	migrator := migration.NewRunner(cfg.Database.URL(), migrationsPath, logger)

	if *migrateCmd != "" {
		if err := migrator.Run(*migrateCmd); err != nil {
			log.Fatalf("Migration command failed: %v", err)
		}
		return
	}

	// Database
	db, err := database.NewPostgresDB(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer db.Close()
	log.Println("Database connected")

	if err := migrator.Auto(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Redis
	redisClient, err := database.NewRedis(cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Redis connected")

	// Modules
	fileModule, err := filestorage.NewModule(ctx, cfg.FileStorage)
	if err != nil {
		log.Fatalf("Failed to initialize file storage: %v", err)
	}

	authModule := auth.NewModule(db, cfg.JWT.Secret, cfg.JWT.Expiry, cfg.Google.ClientID)
	userModule := user.NewModule(authModule.UserRepository(), authModule.UserFinder(), fileModule.Service())
	notificationModule := notification.NewModule(db, userModule.Service())
	defer notificationModule.Stop()

	listingModule := listing.NewModule(db, fileModule.Service(), userModule.ContactDirectory(), redisClient)
	mortgageModule := mortgage.NewModule()

	searchModule := search.NewModule(
		db,
		listingModule.PropertyStore(),
		listingModule.PriceHistory(),
		notificationModule.MatcherSink(),
		cfg.Matcher.Interval,
	)

	// Background matcher
	if cfg.Matcher.Enabled {
		if err := searchModule.Scheduler().Start(ctx); err != nil {
			log.Fatalf("Failed to start matcher scheduler: %v", err)
		}
		defer searchModule.Scheduler().Stop()
	} else {
		log.Println("Saved-search matcher disabled by configuration")
	}

	// Routing
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)
	mux := gateway.SetupRoutes(gateway.RouterConfig{
		AuthHandler:         authModule.HTTPHandler(),
		AuthMiddleware:      authMiddleware,
		PropertyHandler:     listingModule.HTTPHandler(),
		SearchHandler:       searchModule.HTTPHandler(),
		UserHandler:         userModule.HTTPHandler(),
		NotificationHandler: notificationModule.HTTPHandler(),
		MortgageHandler:     mortgageModule.HTTPHandler(),
	})

	handler := middleware.PrometheusMiddleware(
		middleware.CORSMiddleware(mux, cfg.Server.AllowedOrigins),
	)

	server := gateway.NewServer(cfg.Server.Port, handler)
	if err := server.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
