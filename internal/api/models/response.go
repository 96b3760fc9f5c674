package models

import (
	"time"

	"solar-finance/internal/model"
	"solar-finance/internal/optimize"
	"solar-finance/internal/portfolio"
)

// SimulationResponse represents the response from a simulation run
type SimulationResponse struct {
	ID         string                   `json:"id"`
	Status     string                   `json:"status"`
	CreatedAt  time.Time                `json:"created_at"`
	Design     model.SystemDesign       `json:"design"`
	Incentives model.IncentiveBreakdown `json:"incentives"`
	Summary    SimulationSummary        `json:"summary"`
	Cashflows  []model.CashflowEntry    `json:"cashflows,omitempty"`
}

// SimulationSummary contains the headline metrics of a run
type SimulationSummary struct {
	NPV                 float64  `json:"npv"`
	IRR                 *float64 `json:"irr"`
	PaybackYear         int      `json:"payback_year"`
	BreaksEven          bool     `json:"breaks_even"`
	LCOE                *float64 `json:"lcoe"`
	AnnualProductionKWh float64  `json:"annual_production_kwh"`
	FirstYearSavings    float64  `json:"first_year_savings"`
	CO2AvoidedKgPerYear float64  `json:"co2_avoided_kg_per_year"`
	SelfSufficiencyPct  float64  `json:"self_sufficiency_pct"`
	CumulativeCashflow  float64  `json:"cumulative_cashflow"`
}

// ChampionResult is the winning run for one objective
type ChampionResult struct {
	Objective model.Objective    `json:"objective"`
	RunID     string             `json:"run_id"`
	Design    model.SystemDesign `json:"design"`
	Summary   SimulationSummary  `json:"summary"`
}

// OptimizeResponse represents the response from a sensitivity sweep
type OptimizeResponse struct {
	Evaluated int                  `json:"evaluated"`
	Excluded  []optimize.Exclusion `json:"excluded,omitempty"`
	// Champions holds one entry per objective; a nil entry means no candidate qualified.
	Champions map[model.Objective]*ChampionResult `json:"champions"`
	Runs      []SimulationResponse                `json:"runs,omitempty"`
}

// PortfolioResponse represents a recalculated portfolio
type PortfolioResponse struct {
	Name   string           `json:"name"`
	Totals portfolio.Totals `json:"totals"`
}

// VolumeDiscountResponse is the discount for a building count
type VolumeDiscountResponse struct {
	Buildings  int     `json:"buildings"`
	Percent    float64 `json:"percent"`
	CeilingPct float64 `json:"ceiling_pct"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
