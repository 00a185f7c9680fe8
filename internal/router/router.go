package router

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/alchemorsel-mealplan/backend/internal/api"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/metrics"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/middleware"
)

// Options configures the engine built by SetupRouter
type Options struct {
	Logger      *zap.Logger
	Metrics     *metrics.Collector
	CORSOrigins []string
	// Ready backs /ready. Nil leaves the route out.
	Ready    func(ctx context.Context) error
	Services api.Services
}

// SetupRouter configures the application routes
func SetupRouter(opts Options) (*gin.Engine, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.Recovery(log),
		middleware.Logger(log),
		middleware.CORS(opts.CORSOrigins),
	)

	if opts.Metrics != nil {
		router.Use(opts.Metrics.HTTPMiddleware())
		router.GET("/metrics", opts.Metrics.Handler())
	}

	// Health check endpoints (no auth required)
	router.GET("/health", api.HealthCheck)
	router.GET("/api/health", api.HealthCheck)
	if opts.Ready != nil {
		router.GET("/ready", api.ReadinessCheck(opts.Ready))
	}

	if err := api.SetupAPI(router, opts.Services); err != nil {
		return nil, err
	}
	return router, nil
}
