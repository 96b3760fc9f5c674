package model

import "time"

// IncentiveBreakdown is the capital side of a simulation.
// NetCapex is clamped at 0; OverCredited records that clamping happened.
type IncentiveBreakdown struct {
	GrossCapex       float64 `json:"gross_capex"`
	UtilityIncentive float64 `json:"utility_incentive"`
	FederalCredit    float64 `json:"federal_credit"`
	TaxShield        float64 `json:"tax_shield"`
	NetCapex         float64 `json:"net_capex"`
	OverCredited     bool    `json:"over_credited,omitempty"`
}

func (b IncentiveBreakdown) TotalIncentives() float64 {
	return b.UtilityIncentive + b.FederalCredit + b.TaxShield
}

// CashflowEntry is one projected year. Year runs 1..horizon.
type CashflowEntry struct {
	Year          int     `json:"year"`
	ProductionKWh float64 `json:"production_kwh"`
	TariffRate    float64 `json:"tariff_rate"`
	EnergySavings float64 `json:"energy_savings"`
	DemandSavings float64 `json:"demand_savings"`
	Savings       float64 `json:"savings"`
	OMCost        float64 `json:"om_cost"`
	NetCashflow   float64 `json:"net_cashflow"`
	Cumulative    float64 `json:"cumulative"`
}

// Metrics are derived from the cashflow series.
// IRR and LCOE are nil when undefined (never-profitable system, zero production).
// PaybackYear equals the horizon with BreaksEven=false when the system never recovers
// its net cost inside the modeled period.
type Metrics struct {
	NPV                 float64  `json:"npv"`
	IRR                 *float64 `json:"irr"`
	PaybackYear         int      `json:"payback_year"`
	BreaksEven          bool     `json:"breaks_even"`
	LCOE                *float64 `json:"lcoe"`
	AnnualProductionKWh float64  `json:"annual_production_kwh"`
	FirstYearSavings    float64  `json:"first_year_savings"`
	CO2AvoidedKgPerYear float64  `json:"co2_avoided_kg_per_year"`
	SelfSufficiencyPct  float64  `json:"self_sufficiency_pct"`
}

// SimulationRun is the immutable output of one pipeline execution.
type SimulationRun struct {
	ID        string    `json:"id"`
	SiteID    string    `json:"site_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	Profile        SiteEnergyProfile    `json:"profile"`
	Design         SystemDesign         `json:"design"`
	Assumptions    FinancialAssumptions `json:"assumptions"`
	WithIncentives bool                 `json:"with_incentives"`

	Incentives IncentiveBreakdown `json:"incentives"`
	Cashflows  []CashflowEntry    `json:"cashflows"`
	Metrics    Metrics            `json:"metrics"`
}
