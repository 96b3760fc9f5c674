package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solar-finance/internal/api/models"
	"solar-finance/internal/config"
	"solar-finance/internal/data"
	"solar-finance/internal/model"
	"solar-finance/internal/optimize"
	"solar-finance/internal/portfolio"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const referenceSimulation = `{
  "profile": {"site_id": "site-1", "annual_consumption_kwh": 46212, "peak_demand_kw": 40, "tariff_rate": 0.0779},
  "design": {"pv_size_kw": 26},
  "options": {"include_cashflows": true}
}`

func newTestRouter(t *testing.T) (*gin.Engine, *data.RunCache) {
	t.Helper()
	cache := data.NewRunCache(time.Hour)
	t.Cleanup(cache.Close)
	return NewRouter(config.Default(), cache, Options{Quiet: true, Workers: 2}), cache
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func simulateReference(t *testing.T, r http.Handler) models.SimulationResponse {
	t.Helper()
	w := do(r, http.MethodPost, "/api/v1/simulate", referenceSimulation)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode[models.SimulationResponse](t, w)
}

func TestRouter_Health(t *testing.T) {
	r, _ := newTestRouter(t)
	w := do(r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestSimulate_ReferenceScenario(t *testing.T) {
	r, cache := newTestRouter(t)
	resp := simulateReference(t, r)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "completed", resp.Status)
	assert.InDelta(t, 36400, resp.Incentives.GrossCapex, 1e-6)
	assert.InDelta(t, 15288, resp.Incentives.NetCapex, 1e-6)
	assert.Equal(t, 6, resp.Summary.PaybackYear)
	assert.True(t, resp.Summary.BreaksEven)
	assert.InDelta(t, 24432.36, resp.Summary.NPV, 0.5)
	require.NotNil(t, resp.Summary.IRR)
	assert.InDelta(t, 0.1794, *resp.Summary.IRR, 1e-3)
	assert.Len(t, resp.Cashflows, 25)
	assert.Equal(t, 1, cache.Len())
}

func TestSimulate_IncentivesDisabled(t *testing.T) {
	r, _ := newTestRouter(t)
	body := strings.Replace(referenceSimulation, `"include_cashflows": true`, `"incentives": false`, 1)
	w := do(r, http.MethodPost, "/api/v1/simulate", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[models.SimulationResponse](t, w)
	assert.InDelta(t, 36400, resp.Incentives.NetCapex, 1e-6)
	assert.Zero(t, resp.Incentives.TotalIncentives())
	assert.Empty(t, resp.Cashflows)
}

func TestSimulate_ZeroAssumptionOverrideApplies(t *testing.T) {
	r, _ := newTestRouter(t)
	body := strings.Replace(referenceSimulation, `"options"`,
		`"assumptions": {"tariff_inflation_rate": 0, "degradation_rate": 0}, "options"`, 1)
	w := do(r, http.MethodPost, "/api/v1/simulate", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[models.SimulationResponse](t, w)

	require.Len(t, resp.Cashflows, 25)
	for _, e := range resp.Cashflows {
		assert.Equal(t, 0.0779, e.TariffRate)
		assert.Equal(t, 26*1250.0, e.ProductionKWh)
	}

	w = do(r, http.MethodGet, "/api/v1/simulations/"+resp.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	run := decode[model.SimulationRun](t, w)
	assert.Zero(t, run.Assumptions.TariffInflationRate)
	assert.Zero(t, run.Assumptions.DegradationRate)
	assert.Equal(t, model.DefaultAssumptions().DiscountRate, run.Assumptions.DiscountRate)
}

func TestSimulate_TaxShieldSwitchedOffPerRun(t *testing.T) {
	cfg := config.Default()
	cfg.Assumptions.TaxShieldEnabled = true
	r := NewRouter(cfg, nil, Options{Quiet: true})

	w := do(r, http.MethodPost, "/api/v1/simulate", referenceSimulation)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Positive(t, decode[models.SimulationResponse](t, w).Incentives.TaxShield)

	body := strings.Replace(referenceSimulation, `"options"`, `"assumptions": {"tax_shield_enabled": false}, "options"`, 1)
	w = do(r, http.MethodPost, "/api/v1/simulate", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Zero(t, decode[models.SimulationResponse](t, w).Incentives.TaxShield)
}

func TestSimulate_InvalidDesign(t *testing.T) {
	r, _ := newTestRouter(t)
	body := strings.Replace(referenceSimulation, `"pv_size_kw": 26`, `"pv_size_kw": -1`, 1)
	w := do(r, http.MethodPost, "/api/v1/simulate", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_DESIGN", decode[models.ErrorResponse](t, w).Error.Code)
}

func TestSimulate_InvalidProfile(t *testing.T) {
	r, _ := newTestRouter(t)
	body := strings.Replace(referenceSimulation, `"tariff_rate": 0.0779`, `"tariff_rate": 0`, 1)
	w := do(r, http.MethodPost, "/api/v1/simulate", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_PROFILE", decode[models.ErrorResponse](t, w).Error.Code)
}

func TestSimulate_MalformedBody(t *testing.T) {
	r, _ := newTestRouter(t)
	w := do(r, http.MethodPost, "/api/v1/simulate", `{"profile":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", decode[models.ErrorResponse](t, w).Error.Code)
}

func TestGetSimulation_AndCashflowCSV(t *testing.T) {
	r, _ := newTestRouter(t)
	resp := simulateReference(t, r)

	w := do(r, http.MethodGet, "/api/v1/simulations/"+resp.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	run := decode[model.SimulationRun](t, w)
	assert.Equal(t, "site-1", run.SiteID)
	assert.Len(t, run.Cashflows, 25)

	w = do(r, http.MethodGet, "/api/v1/simulations/"+resp.ID+"/cashflow.csv", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 26)
	assert.True(t, strings.HasPrefix(lines[0], "year,production_kwh"))
	assert.True(t, strings.HasPrefix(lines[1], "1,"))
}

func TestGetSimulation_NotFound(t *testing.T) {
	r, _ := newTestRouter(t)
	w := do(r, http.MethodGet, "/api/v1/simulations/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decode[models.ErrorResponse](t, w).Error.Code)
}

func TestOptimize_ChampionsPerObjective(t *testing.T) {
	r, cache := newTestRouter(t)
	req := models.OptimizeRequest{
		Profile: model.SiteEnergyProfile{
			SiteID:               "site-1",
			AnnualConsumptionKWh: 46212,
			PeakDemandKW:         40,
			TariffRate:           0.0779,
		},
		Grid: optimize.Grid{
			PVMinKW:            10,
			PVMaxKW:            30,
			PVStepKW:           10,
			BatteryEnergiesKWh: []float64{0, 40},
			BatteryPowersKW:    []float64{20},
		},
		Options: models.OptimizeOptions{IncludeRuns: true},
	}
	body, err := json.Marshal(req)
	require.NoError(t, err)

	w := do(r, http.MethodPost, "/api/v1/optimize", string(body))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[models.OptimizeResponse](t, w)

	assert.Equal(t, 6, resp.Evaluated)
	assert.Len(t, resp.Runs, 6)
	assert.Len(t, resp.Champions, len(model.Objectives()))
	best := resp.Champions[model.ObjectiveBestNPV]
	require.NotNil(t, best)
	for _, run := range resp.Runs {
		assert.LessOrEqual(t, run.Summary.NPV, best.Summary.NPV+0.005)
	}

	// Champions and every returned run are retrievable by ID.
	_, ok := cache.Get(best.RunID)
	assert.True(t, ok)
	for _, run := range resp.Runs {
		w := do(r, http.MethodGet, "/api/v1/simulations/"+run.ID+"/cashflow.csv", "")
		assert.Equal(t, http.StatusOK, w.Code, run.ID)
	}
}

func TestOptimize_InvalidGrid(t *testing.T) {
	r, _ := newTestRouter(t)
	body := `{"profile": {"annual_consumption_kwh": 1000, "tariff_rate": 0.1}, "grid": {"pv_step_kw": 5}}`
	w := do(r, http.MethodPost, "/api/v1/optimize", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_GRID", decode[models.ErrorResponse](t, w).Error.Code)
}

func TestPortfolio_Recalculate(t *testing.T) {
	r, _ := newTestRouter(t)
	sim := simulateReference(t, r)

	netCapex, npv := 10000.0, 5000.0
	req := models.PortfolioRequest{
		Name: "campus",
		Sites: []models.PortfolioSiteInput{
			{SiteID: "a", RunID: sim.ID},
			{SiteID: "b", Overrides: portfolio.Overrides{NetCapex: &netCapex, NPV: &npv}},
		},
	}
	body, err := json.Marshal(req)
	require.NoError(t, err)

	w := do(r, http.MethodPost, "/api/v1/portfolio/recalculate", string(body))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[models.PortfolioResponse](t, w)

	assert.Equal(t, "campus", resp.Name)
	assert.Equal(t, 2, resp.Totals.NumBuildings)
	assert.InDelta(t, 25288, resp.Totals.TotalNetCapex, 1e-6)
	assert.InDelta(t, sim.Summary.NPV+5000, resp.Totals.TotalNPV, 1e-6)
	assert.InDelta(t, 26, resp.Totals.TotalPVSizeKW, 1e-9)
	require.NotNil(t, resp.Totals.WeightedIRR)
	assert.InDelta(t, *sim.Summary.IRR, *resp.Totals.WeightedIRR, 1e-9)
	// Site b has a net CAPEX but no IRR.
	assert.Equal(t, 1, resp.Totals.IRRUndefinedSites)
	assert.InDelta(t, 10000, resp.Totals.IRRUndefinedNetCapex, 1e-9)
}

func TestPortfolio_UnknownRunID(t *testing.T) {
	r, _ := newTestRouter(t)
	w := do(r, http.MethodPost, "/api/v1/portfolio/recalculate", `{"sites": [{"site_id": "a", "run_id": "missing"}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPortfolio_EmptySites(t *testing.T) {
	r, _ := newTestRouter(t)
	w := do(r, http.MethodPost, "/api/v1/portfolio/recalculate", `{"sites": []}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVolumeDiscount(t *testing.T) {
	r, _ := newTestRouter(t)
	w := do(r, http.MethodGet, "/api/v1/pricing/volume-discount?buildings=5", "")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.VolumeDiscountResponse](t, w)
	assert.Equal(t, 5, resp.Buildings)
	assert.InDelta(t, 5, resp.Percent, 1e-9)
	assert.InDelta(t, 12, resp.CeilingPct, 1e-9)
}

func TestRecommendSize_FromMonthlyBill(t *testing.T) {
	r, _ := newTestRouter(t)
	body := `{"profile": {"tariff_rate": 0.0779}, "monthly_bill": 300, "offset_target": 0.7}`
	w := do(r, http.MethodPost, "/api/v1/size", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var sizing map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sizing))
	assert.InDelta(t, 46213.09, sizing["annual_consumption_kwh"].(float64), 0.01)
	assert.InDelta(t, 25.88, sizing["size_kw"].(float64), 0.01)
}

func TestRecommendSize_MissingConsumption(t *testing.T) {
	r, _ := newTestRouter(t)
	w := do(r, http.MethodPost, "/api/v1/size", `{"profile": {"tariff_rate": 0.1}, "offset_target": 0.5}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_PROFILE", decode[models.ErrorResponse](t, w).Error.Code)
}

func TestGetAssumptions(t *testing.T) {
	r, _ := newTestRouter(t)
	w := do(r, http.MethodGet, "/api/v1/assumptions", "")
	require.Equal(t, http.StatusOK, w.Code)
	a := decode[model.FinancialAssumptions](t, w)
	assert.Equal(t, model.DefaultAssumptions(), a)
}

func TestCORS_Preflight(t *testing.T) {
	r, _ := newTestRouter(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/simulate", bytes.NewReader(nil))
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
