package app

import (
	"context"
	"database/sql"
	"fmt"
	nethttp "net/http"

	"github.com/go-playground/validator/v10"
	"github.com/pressly/goose"
	redisClient "github.com/redis/go-redis/v9"

	"github.com/autolot/car-inventory-service/internal/adapter/handler/http"
	"github.com/autolot/car-inventory-service/internal/adapter/logger"
	"github.com/autolot/car-inventory-service/internal/adapter/notifier"
	"github.com/autolot/car-inventory-service/internal/adapter/postgres"
	"github.com/autolot/car-inventory-service/internal/adapter/prometheus"
	"github.com/autolot/car-inventory-service/internal/adapter/redis"
	"github.com/autolot/car-inventory-service/internal/adapter/storage"
	"github.com/autolot/car-inventory-service/internal/config"
	"github.com/autolot/car-inventory-service/internal/core/domain"
	"github.com/autolot/car-inventory-service/internal/core/ports"
	"github.com/autolot/car-inventory-service/internal/core/services"
)

type App struct {
	Config      *config.Container
	Logger      ports.LoggerPort
	DB          *sql.DB
	RedisClient *redisClient.Client
	Hub         ports.EventHub
	HTTPRouter  *http.Router

	server *nethttp.Server
}

func New(ctx context.Context, cfg *config.Container) (*App, error) {
	// Set logger
	loggerAdapter := logger.NewLoggerAdapter(cfg.App.Env)
	loggerAdapter.Info("Starting the application", map[string]interface{}{
		"app": cfg.App.Name,
		"env": cfg.App.Env,
	})

	// Set redis
	redisConn := redisClient.NewClient(&redisClient.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if _, err := redisConn.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	cacheAdapter := redis.NewRedisAdapter(redisConn)

	// Connect DB
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DB.Host, cfg.DB.Port, cfg.DB.User, cfg.DB.Password, cfg.DB.Name)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Migrate DB
	if err := goose.Up(db, cfg.DB.MigrationsDir); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Validate
	validate := validator.New()

	// Observability
	metrics := prometheus.NewPrometheusAdapter()

	// Image store
	imageStore, err := storage.NewImageStore(cfg.Storage.ImagesDir, loggerAdapter)
	if err != nil {
		return nil, err
	}

	// Realtime change fan-out
	hub := notifier.NewHub(loggerAdapter)

	// Repositories
	carRepo := postgres.NewCarRepository(db)
	userRepo := postgres.NewUserRepository(db)

	// Services
	carService := services.NewCarService(carRepo, imageStore, hub, loggerAdapter, validate, cacheAdapter, domain.RecommendedCriteria{
		Models:        cfg.Recommended.Models,
		Brands:        cfg.Recommended.Brands,
		Years:         cfg.Recommended.Years,
		Transmission:  cfg.Recommended.Transmission,
		FuelType:      cfg.Recommended.FuelType,
		PriceAnchor:   cfg.Recommended.PriceAnchor,
		PriceSpread:   cfg.Recommended.PriceSpread,
		MileageAnchor: cfg.Recommended.MileageAnchor,
		MileageSpread: cfg.Recommended.MileageSpread,
	})
	userService := services.NewUserService(userRepo, loggerAdapter, validate)

	// HTTP Handlers
	carHandler := http.NewCarHandler(carService, loggerAdapter, metrics)
	userHandler := http.NewUserHandler(userService, loggerAdapter, metrics)
	eventHandler := http.NewEventHandler(hub, loggerAdapter)

	// Init HTTP router
	router, err := http.NewRouter(
		cfg.HTTP,
		cfg.Storage.ImagesDir,
		carHandler,
		userHandler,
		eventHandler,
	)
	if err != nil {
		db.Close()
		redisConn.Close()
		return nil, fmt.Errorf("failed to initialize router: %w", err)
	}

	return &App{
		Config:      cfg,
		Logger:      loggerAdapter,
		DB:          db,
		RedisClient: redisConn,
		Hub:         hub,
		HTTPRouter:  router,
	}, nil
}

// Run starts the HTTP server in the background.
func (a *App) Run() {
	listenAddr := fmt.Sprintf("%s:%s", a.Config.HTTP.URL, a.Config.HTTP.Port)
	a.Logger.Info("Starting HTTP server", map[string]interface{}{
		"addr": listenAddr,
	})

	a.server = &nethttp.Server{
		Addr:    listenAddr,
		Handler: a.HTTPRouter.Handler(),
	}

	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != nethttp.ErrServerClosed {
			a.Logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()
}

// Stop drains in-flight requests, then closes the hub and connections.
func (a *App) Stop(ctx context.Context) error {
	a.Logger.Info("Shutting down gracefully...", nil)

	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			a.Logger.Error("HTTP server shutdown error", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	// Close the event hub so open SSE streams end
	a.Hub.Close()

	// Close database
	if err := a.DB.Close(); err != nil {
		a.Logger.Error("Database close error", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Close Redis
	if err := a.RedisClient.Close(); err != nil {
		a.Logger.Error("Redis close error", map[string]interface{}{
			"error": err.Error(),
		})
	}

	a.Logger.Info("Application stopped successfully", nil)
	return nil
}
