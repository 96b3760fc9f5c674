package handlers

import (
	"fmt"
	"net/http"
	"sort"

	"solar-finance/internal/api/models"
	"solar-finance/internal/data"
	"solar-finance/internal/model"
	"solar-finance/internal/portfolio"

	"github.com/gin-gonic/gin"
)

// PortfolioHandler handles portfolio and pricing requests
type PortfolioHandler struct {
	aggregator *portfolio.Aggregator
	cache      *data.RunCache
}

// NewPortfolioHandler creates a new portfolio handler
func NewPortfolioHandler(policy portfolio.VolumeDiscountPolicy, cache *data.RunCache) *PortfolioHandler {
	return &PortfolioHandler{aggregator: portfolio.NewAggregator(policy), cache: cache}
}

// Recalculate handles POST /api/v1/portfolio/recalculate
func (h *PortfolioHandler) Recalculate(c *gin.Context) {
	var req models.PortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}

	sites, err := h.resolveSites(req.Sites)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}

	totals := h.aggregator.Recalculate(portfolio.Portfolio{Name: req.Name, Sites: sites})
	c.JSON(http.StatusOK, models.PortfolioResponse{Name: req.Name, Totals: totals})
}

// resolveSites turns request entries into one Site per site ID. Several entries may
// share a site ID; the newest run wins and the last non-empty override per field wins.
// Entries with neither run nor run_id contribute overrides only.
func (h *PortfolioHandler) resolveSites(inputs []models.PortfolioSiteInput) ([]portfolio.Site, error) {
	var runs []*model.SimulationRun
	overrides := map[string]portfolio.Overrides{}
	names := map[string]string{}

	for i, in := range inputs {
		run := in.Run
		if in.RunID != "" {
			cached, ok := h.cache.Get(in.RunID)
			if !ok {
				return nil, fmt.Errorf("sites[%d]: run %q not found or expired", i, in.RunID)
			}
			run = cached
		}
		if run != nil {
			// The portfolio entry owns the site identity.
			cp := *run
			cp.SiteID = in.SiteID
			runs = append(runs, &cp)
		}
		overrides[in.SiteID] = mergeOverrides(overrides[in.SiteID], in.Overrides)
		if in.Name != "" {
			names[in.SiteID] = in.Name
		}
	}

	sites := portfolio.SitesFromRuns(runs, overrides)
	seen := make(map[string]bool, len(sites))
	for _, s := range sites {
		seen[s.SiteID] = true
	}
	for id, o := range overrides {
		if !seen[id] {
			sites = append(sites, portfolio.Site{SiteID: id, Overrides: o})
		}
	}
	sort.Slice(sites, func(i, j int) bool { return sites[i].SiteID < sites[j].SiteID })
	for i := range sites {
		if n, ok := names[sites[i].SiteID]; ok {
			sites[i].Name = n
		}
	}
	return sites, nil
}

func mergeOverrides(base, o portfolio.Overrides) portfolio.Overrides {
	if o.PVSizeKW != nil {
		base.PVSizeKW = o.PVSizeKW
	}
	if o.BatteryEnergyKWh != nil {
		base.BatteryEnergyKWh = o.BatteryEnergyKWh
	}
	if o.NetCapex != nil {
		base.NetCapex = o.NetCapex
	}
	if o.NPV != nil {
		base.NPV = o.NPV
	}
	if o.IRR != nil {
		base.IRR = o.IRR
	}
	if o.AnnualSavings != nil {
		base.AnnualSavings = o.AnnualSavings
	}
	return base
}

// VolumeDiscount handles GET /api/v1/pricing/volume-discount?buildings=N
func (h *PortfolioHandler) VolumeDiscount(c *gin.Context) {
	var q models.VolumeDiscountQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWithError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}
	policy := h.aggregator.Policy
	c.JSON(http.StatusOK, models.VolumeDiscountResponse{
		Buildings:  q.Buildings,
		Percent:    policy.PercentFor(q.Buildings),
		CeilingPct: policy.CeilingPct,
	})
}
