package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/alchemorsel-mealplan/backend/config"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/api"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/database"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/metrics"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/middleware"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/router"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/service"
)

// lockTTL bounds how long a crashed instance can hold a user's list
const lockTTL = 10 * time.Second

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
	redis  *redis.Client
	logger *zap.Logger
}

// New wires services, storage and routes. Redis and S3 are optional: without
// Redis locks and rate limits stay in process, without a bucket export
// answers 503.
func New(ctx context.Context, cfg *config.Config, db *gorm.DB, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.New(reg)

	var (
		redisClient *redis.Client
		locker      service.Locker = service.NewLocalLocker()
	)
	if cfg.RedisAddr() != "" || cfg.RedisURL != "" {
		client, err := database.NewRedisClient(cfg, logger)
		if err != nil {
			logger.Warn("Redis unavailable, using in-process locks and rate limits", zap.Error(err))
		} else {
			redisClient = client
			locker = service.NewRedisLocker(client, lockTTL)
		}
	}

	tokens := service.NewTokenService(cfg.JWTSecret)
	mealPlans := service.NewMealPlanService(db, locker, logger.Named("mealplan"))

	opts := []service.ShoppingListOption{
		service.WithLocker(locker),
		service.WithMetrics(collector),
		service.WithLogger(logger.Named("shopping_list")),
	}
	if cfg.S3BucketName != "" {
		store, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			logger.Warn("S3 unavailable, shopping list export disabled", zap.Error(err))
		} else {
			opts = append(opts, service.WithObjectStore(store))
		}
	}
	shoppingList := service.NewShoppingListService(db, mealPlans, opts...)

	engine, err := router.SetupRouter(router.Options{
		Logger:      logger,
		Metrics:     collector,
		CORSOrigins: cfg.CORSOrigins,
		Ready: func(ctx context.Context) error {
			return database.HealthCheck(ctx, db)
		},
		Services: api.Services{
			Tokens:       tokens,
			MealPlans:    mealPlans,
			ShoppingList: shoppingList,
			Recipes:      service.NewRecipeService(db, logger.Named("recipe")),
			Ingredients:  service.NewIngredientService(db),
			SyncLimiter:  middleware.NewSyncRateLimiter(redisClient, cfg.SyncRateLimit),
		},
	})
	if err != nil {
		if redisClient != nil {
			_ = redisClient.Close()
		}
		return nil, fmt.Errorf("failed to set up routes: %w", err)
	}

	return &Server{
		router: engine,
		http: &http.Server{
			Addr:              net.JoinHostPort(cfg.ServerHost, cfg.ServerPort),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
		db:     db,
		redis:  redisClient,
		logger: logger,
	}, nil
}

// Handler exposes the configured routes
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	s.logger.Info("Starting server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and releases Redis
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	if s.redis != nil {
		if cerr := s.redis.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
