package models

import (
	"solar-finance/internal/model"
	"solar-finance/internal/optimize"
	"solar-finance/internal/portfolio"
)

// SimulateRequest represents the request body for running one simulation
type SimulateRequest struct {
	Profile model.SiteEnergyProfile `json:"profile"`
	Design  model.SystemDesign      `json:"design"`
	// Set fields override the server defaults for this run only.
	Assumptions model.AssumptionOverrides `json:"assumptions,omitempty"`
	Options     SimulateOptions            `json:"options,omitempty"`
}

// SimulateOptions contains optional simulation parameters
type SimulateOptions struct {
	// Incentives defaults to true when omitted.
	Incentives       *bool `json:"incentives,omitempty"`
	IncludeCashflows bool  `json:"include_cashflows,omitempty"`
}

func (o SimulateOptions) WithIncentives() bool {
	return o.Incentives == nil || *o.Incentives
}

// SizeRequest asks for a recommended PV size. Either Profile.AnnualConsumptionKWh or
// MonthlyBill must be set.
type SizeRequest struct {
	Profile      model.SiteEnergyProfile   `json:"profile"`
	MonthlyBill  float64                   `json:"monthly_bill,omitempty"`
	OffsetTarget float64                   `json:"offset_target" binding:"required"`
	Assumptions  model.AssumptionOverrides `json:"assumptions,omitempty"`
}

// OptimizeRequest represents a sensitivity sweep over a grid of designs
type OptimizeRequest struct {
	Profile model.SiteEnergyProfile `json:"profile"`
	// Grid falls back to the configured sweep when PVStepKW is 0.
	Grid        optimize.Grid              `json:"grid,omitempty"`
	Assumptions model.AssumptionOverrides `json:"assumptions,omitempty"`
	Options     OptimizeOptions            `json:"options,omitempty"`
}

// OptimizeOptions contains optional sweep parameters
type OptimizeOptions struct {
	Incentives  *bool `json:"incentives,omitempty"`
	IncludeRuns bool  `json:"include_runs,omitempty"`
}

func (o OptimizeOptions) WithIncentives() bool {
	return o.Incentives == nil || *o.Incentives
}

// PortfolioRequest represents a portfolio recalculation
type PortfolioRequest struct {
	Name  string               `json:"name"`
	Sites []PortfolioSiteInput `json:"sites" binding:"required,min=1,dive"`
}

// PortfolioSiteInput references a site's latest run, inline or by cached run ID.
type PortfolioSiteInput struct {
	SiteID    string               `json:"site_id" binding:"required"`
	Name      string               `json:"name,omitempty"`
	RunID     string               `json:"run_id,omitempty"`
	Run       *model.SimulationRun `json:"run,omitempty"`
	Overrides portfolio.Overrides  `json:"overrides"`
}

// VolumeDiscountQuery is the query string for GET /api/v1/pricing/volume-discount
type VolumeDiscountQuery struct {
	Buildings int `form:"buildings" binding:"min=0"`
}
