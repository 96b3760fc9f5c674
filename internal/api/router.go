package api

import (
	"net/http"

	"solar-finance/internal/api/handlers"
	"solar-finance/internal/api/middleware"
	"solar-finance/internal/config"
	"solar-finance/internal/data"
	"solar-finance/internal/finance"
	"solar-finance/internal/optimize"

	"github.com/gin-gonic/gin"
)

// Options controls router construction.
type Options struct {
	CORSOrigins string
	// Workers bounds sweep parallelism; 0 means GOMAXPROCS.
	Workers int
	// Quiet disables the request logger (tests).
	Quiet bool
}

// NewRouter wires handlers, middleware and routes. cache may be nil, in which case
// runs are not retained and lookups by ID return 404.
func NewRouter(cfg *config.Config, cache *data.RunCache, opts Options) *gin.Engine {
	if cfg == nil {
		cfg = config.Default()
	}

	router := gin.New()
	router.Use(middleware.CORS(opts.CORSOrigins))
	if !opts.Quiet {
		router.Use(middleware.Logger())
	}
	router.Use(middleware.ErrorHandler())

	engine := finance.New()
	optimizer := optimize.New(engine)
	if opts.Workers > 0 {
		optimizer = optimizer.WithWorkers(opts.Workers)
	}

	simulationHandler := handlers.NewSimulationHandler(engine, cache, cfg.Assumptions)
	optimizeHandler := handlers.NewOptimizeHandler(optimizer, cache, cfg.Assumptions, cfg.Sweep)
	portfolioHandler := handlers.NewPortfolioHandler(cfg.Pricing.VolumeDiscount, cache)
	assumptionsHandler := handlers.NewAssumptionsHandler(cfg.Assumptions)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "cached_runs": cache.Len()})
	})

	api := router.Group("/api/v1")
	{
		api.GET("/assumptions", assumptionsHandler.GetAssumptions)
		api.POST("/size", assumptionsHandler.RecommendSize)

		api.POST("/simulate", simulationHandler.Simulate)
		api.GET("/simulations/:id", simulationHandler.GetSimulation)
		api.GET("/simulations/:id/cashflow.csv", simulationHandler.GetCashflowCSV)

		api.POST("/optimize", optimizeHandler.Optimize)

		api.POST("/portfolio/recalculate", portfolioHandler.Recalculate)
		api.GET("/pricing/volume-discount", portfolioHandler.VolumeDiscount)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "route not found"}})
	})

	return router
}
