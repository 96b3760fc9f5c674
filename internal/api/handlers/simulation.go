package handlers

import (
	"fmt"
	"log"
	"net/http"

	"solar-finance/internal/api/models"
	"solar-finance/internal/data"
	"solar-finance/internal/finance"
	"solar-finance/internal/model"

	"github.com/gin-gonic/gin"
)

// SimulationHandler handles single-design simulation requests
type SimulationHandler struct {
	engine   *finance.Engine
	cache    *data.RunCache
	defaults model.FinancialAssumptions
}

// NewSimulationHandler creates a new simulation handler. Completed runs are stored in
// cache so they can be fetched later by ID.
func NewSimulationHandler(engine *finance.Engine, cache *data.RunCache, defaults model.FinancialAssumptions) *SimulationHandler {
	if engine == nil {
		engine = finance.New()
	}
	return &SimulationHandler{engine: engine, cache: cache, defaults: defaults}
}

// Simulate handles POST /api/v1/simulate
func (h *SimulationHandler) Simulate(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}

	run, err := h.engine.Run(finance.Request{
		Profile:        req.Profile,
		Design:         req.Design,
		Assumptions:    req.Assumptions.Apply(h.defaults),
		WithIncentives: req.Options.WithIncentives(),
	})
	if err != nil {
		pipelineError(c, err, "SIMULATION_ERROR")
		return
	}
	h.cache.Put(run)

	c.JSON(http.StatusOK, buildSimulationResponse(run, req.Options.IncludeCashflows))
}

// GetSimulation handles GET /api/v1/simulations/:id
func (h *SimulationHandler) GetSimulation(c *gin.Context) {
	run, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, run)
}

// GetCashflowCSV handles GET /api/v1/simulations/:id/cashflow.csv
func (h *SimulationHandler) GetCashflowCSV(c *gin.Context) {
	run, ok := h.lookup(c)
	if !ok {
		return
	}
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "cashflow-"+run.ID+".csv"))
	c.Status(http.StatusOK)
	if err := finance.WriteCashflowCSV(c.Writer, run.Cashflows); err != nil {
		log.Printf("SimulationHandler: writing cashflow csv for %s: %v", run.ID, err)
	}
}

func (h *SimulationHandler) lookup(c *gin.Context) (*model.SimulationRun, bool) {
	id := c.Param("id")
	run, ok := h.cache.Get(id)
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "NOT_FOUND",
				Message: "simulation not found or expired",
				Details: map[string]interface{}{"id": id},
			},
		})
		return nil, false
	}
	return run, true
}
