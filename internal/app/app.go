// Package app wires configuration, storage, services and handlers into a
// Fiber application.
package app

import (
	"context"
	"errors"
	"time"

	"rentdir/internal/apperror"
	"rentdir/internal/cache"
	"rentdir/internal/config"
	"rentdir/internal/geo"
	"rentdir/internal/handlers"
	"rentdir/internal/logging"
	"rentdir/internal/metrics"
	"rentdir/internal/middleware"
	"rentdir/internal/repositories"
	"rentdir/internal/services"
	"rentdir/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// Deps are the collaborators New does not build itself.
type Deps struct {
	Config *config.Config
	Store  *store.Store
	Logger *zap.SugaredLogger
	// Publisher receives domain events; nil disables them.
	Publisher services.EventPublisher
	// Locator maps properties to coordinates; nil selects the placeholder.
	Locator geo.Locator
}

// App is a wired application.
type App struct {
	Fiber   *fiber.App
	Metrics *metrics.Metrics
	Auth    *services.AuthService
	// Cache is nil unless REDIS_ADDR is set and reachable.
	Cache *cache.ListingCache
}

// Close releases the connections New opened.
func (a *App) Close() error {
	if a.Cache != nil {
		return a.Cache.Close()
	}
	return nil
}

// New builds the application. It seeds the fixture listings when the
// configuration asks for it.
func New(ctx context.Context, d Deps) (*App, error) {
	cfg, st, log := d.Config, d.Store, d.Logger
	log = logging.OrNop(log)

	m, metricsHandler, err := metrics.Setup("rentdir")
	if err != nil {
		return nil, err
	}

	// --- Repositories ---
	userRepo := repositories.NewStoreUserRepository(st.Users)
	propertyRepo := repositories.NewStorePropertyRepository(st.Properties)
	favoriteRepo := repositories.NewStoreFavoriteRepository(
		st.Favorites, st.Users, st.Properties, repositories.JoinPolicy(cfg.FavoritesJoinPolicy), m, log)
	savedSearchRepo := repositories.NewStoreSavedSearchRepository(st.SavedSearches, st.Users)
	alertRepo := repositories.NewStoreAlertRepository(st.Alerts, st.Users)
	activityRepo := repositories.NewStoreActivityRepository(st.Activities, st.Users, st.Properties)

	// --- Listing cache (optional) ---
	var listingCache *cache.ListingCache
	var propertyOpts []services.PropertyOption
	if cfg.CacheEnabled() {
		listingCache, err = cache.New(cache.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			TTL:      cfg.CacheTTL,
			Logger:   log,
			Observer: m,
		})
		if err != nil {
			log.Warnw("Listing cache unavailable, serving uncached", "error", err)
		} else {
			propertyOpts = append(propertyOpts, services.WithListingCache(listingCache))
		}
	}

	if cfg.SeedFixtures {
		n, err := SeedFixtures(ctx, propertyRepo)
		if err != nil {
			return nil, err
		}
		if n > 0 && listingCache != nil {
			listingCache.Invalidate(ctx)
		}
		log.Infow("Seeded fixture properties", "count", n)
	}

	// --- Services ---
	events := services.NewEvents(d.Publisher, m, log)
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL, log)
	activityService := services.NewActivityService(activityRepo, events, cfg.ActivityDefaultLimit, cfg.ActivityMaxLimit, log)
	propertyService := services.NewPropertyService(propertyRepo, d.Locator, propertyOpts...)
	favoriteService := services.NewFavoriteService(favoriteRepo, activityService)
	savedSearchService := services.NewSavedSearchService(savedSearchRepo, propertyRepo, activityService)
	alertService := services.NewAlertService(alertRepo, propertyRepo, events)

	// --- Fiber ---
	app := fiber.New(fiber.Config{
		AppName:      "rentdir",
		ErrorHandler: errorHandler(log),
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowedOrigins,
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
		MaxAge:       300,
	}))
	app.Use(middleware.RequestMetrics(m))
	if cfg.Env != "test" {
		app.Use(logger.New())
	}

	auth := middleware.AuthRequired(authService, log)
	apiV1 := app.Group("/api/v1")
	apiV1.Use("/auth", middleware.RateLimit(cfg.AuthRateLimitRPM))
	handlers.NewAuthHandler(authService, log).RegisterRoutes(apiV1, auth)
	handlers.NewPropertyHandler(propertyService, log).RegisterRoutes(apiV1, auth)
	handlers.NewFavoriteHandler(favoriteService, log).RegisterRoutes(apiV1, auth)
	handlers.NewSavedSearchHandler(savedSearchService, log).RegisterRoutes(apiV1, auth)
	handlers.NewAlertHandler(alertService, log).RegisterRoutes(apiV1, auth)
	handlers.NewActivityHandler(activityService, log).RegisterRoutes(apiV1, auth)

	cacheState := "disabled"
	if listingCache != nil {
		cacheState = "enabled"
	}
	eventsState := "disabled"
	if d.Publisher != nil {
		eventsState = "enabled"
	}
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"store":  cfg.StoreDriver,
			"events": eventsState,
			"cache":  cacheState,
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(metricsHandler))

	return &App{Fiber: app, Metrics: m, Auth: authService, Cache: listingCache}, nil
}

// errorHandler renders errors that escape a handler, such as unmatched
// routes, in the same shape the handlers use.
func errorHandler(log *zap.SugaredLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := apperror.StatusCode(err)
		message := apperror.Message(err)
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
			message = fe.Message
		}
		if status >= fiber.StatusInternalServerError {
			log.Errorw("Unhandled error", "method", c.Method(), "path", c.Path(), "error", err)
		}
		return c.Status(status).JSON(fiber.Map{"message": message})
	}
}
