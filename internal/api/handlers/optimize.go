package handlers

import (
	"errors"
	"net/http"

	"solar-finance/internal/api/models"
	"solar-finance/internal/data"
	"solar-finance/internal/model"
	"solar-finance/internal/optimize"

	"github.com/gin-gonic/gin"
)

// OptimizeHandler handles sensitivity sweep requests
type OptimizeHandler struct {
	optimizer *optimize.Optimizer
	cache     *data.RunCache
	defaults  model.FinancialAssumptions
	sweep     optimize.Grid
}

// NewOptimizeHandler creates a new optimize handler. sweep is used when a request
// carries no grid of its own.
func NewOptimizeHandler(optimizer *optimize.Optimizer, cache *data.RunCache, defaults model.FinancialAssumptions, sweep optimize.Grid) *OptimizeHandler {
	if optimizer == nil {
		optimizer = optimize.New(nil)
	}
	return &OptimizeHandler{optimizer: optimizer, cache: cache, defaults: defaults, sweep: sweep}
}

// Optimize handles POST /api/v1/optimize
func (h *OptimizeHandler) Optimize(c *gin.Context) {
	var req models.OptimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}

	grid := req.Grid
	if grid.PVStepKW == 0 {
		grid = h.sweep
	}

	result, err := h.optimizer.Run(optimize.Request{
		Profile:        req.Profile,
		Grid:           grid,
		Assumptions:    req.Assumptions.Apply(h.defaults),
		WithIncentives: req.Options.WithIncentives(),
	})
	if err != nil {
		if errors.Is(err, optimize.ErrInvalidGrid) {
			abortWithError(c, http.StatusBadRequest, "INVALID_GRID", err)
			return
		}
		pipelineError(c, err, "OPTIMIZE_ERROR")
		return
	}

	resp := models.OptimizeResponse{
		Evaluated: len(result.Runs),
		Excluded:  result.Excluded,
		Champions: make(map[model.Objective]*models.ChampionResult, len(model.Objectives())),
	}
	for _, o := range model.Objectives() {
		run := result.Scenarios.Champion(o)
		if run == nil {
			resp.Champions[o] = nil
			continue
		}
		h.cache.Put(run)
		resp.Champions[o] = &models.ChampionResult{
			Objective: o,
			RunID:     run.ID,
			Design:    run.Design,
			Summary:   buildSummary(run),
		}
	}
	if req.Options.IncludeRuns {
		resp.Runs = make([]models.SimulationResponse, 0, len(result.Runs))
		// Returned IDs must resolve on GET /simulations/:id.
		for _, run := range result.Runs {
			h.cache.Put(run)
			resp.Runs = append(resp.Runs, buildSimulationResponse(run, false))
		}
	}

	c.JSON(http.StatusOK, resp)
}
