package model

import "errors"

// FinancialAssumptions are the process-wide defaults for a simulation.
// Every field may be overridden per run (see AssumptionOverrides).
//
// Rates are fractions (0.03 = 3 %). Money is in $.
type FinancialAssumptions struct {
	TariffInflationRate float64 `json:"tariff_inflation_rate" yaml:"tariff_inflation_rate"`
	DegradationRate     float64 `json:"degradation_rate" yaml:"degradation_rate"`
	OMRate              float64 `json:"om_rate" yaml:"om_rate"` // fraction of gross CAPEX per year
	DiscountRate        float64 `json:"discount_rate" yaml:"discount_rate"`
	HorizonYears        int     `json:"horizon_years" yaml:"horizon_years"`

	CostPerWatt             float64 `json:"cost_per_watt" yaml:"cost_per_watt"`
	IrradianceYieldKWhPerKW float64 `json:"irradiance_yield_kwh_per_kw" yaml:"irradiance_yield_kwh_per_kw"`

	UtilityIncentivePerKW       float64 `json:"utility_incentive_per_kw" yaml:"utility_incentive_per_kw"`
	UtilityIncentiveCapFraction float64 `json:"utility_incentive_cap_fraction" yaml:"utility_incentive_cap_fraction"`
	UtilityIncentiveAbsoluteCap float64 `json:"utility_incentive_absolute_cap" yaml:"utility_incentive_absolute_cap"`
	ITCRate                     float64 `json:"itc_rate" yaml:"itc_rate"`

	// Accelerated depreciation is off unless TaxShieldEnabled is set.
	TaxShieldEnabled    bool    `json:"tax_shield_enabled" yaml:"tax_shield_enabled"`
	DepreciableFraction float64 `json:"depreciable_fraction" yaml:"depreciable_fraction"`
	MarginalTaxRate     float64 `json:"marginal_tax_rate" yaml:"marginal_tax_rate"`

	// LCOE uses its own truncated horizon, not HorizonYears.
	LCOEHorizonYears           int     `json:"lcoe_horizon_years" yaml:"lcoe_horizon_years"`
	GridEmissionFactorKgPerKWh float64 `json:"grid_emission_factor_kg_per_kwh" yaml:"grid_emission_factor_kg_per_kwh"`

	BatteryCostPerKWh          float64 `json:"battery_cost_per_kwh" yaml:"battery_cost_per_kwh"`
	BatteryCostPerKW           float64 `json:"battery_cost_per_kw" yaml:"battery_cost_per_kw"`
	DemandChargePerKWMonth     float64 `json:"demand_charge_per_kw_month" yaml:"demand_charge_per_kw_month"`
	SelfConsumptionRatio       float64 `json:"self_consumption_ratio" yaml:"self_consumption_ratio"`
	BatteryCyclesPerYear       float64 `json:"battery_cycles_per_year" yaml:"battery_cycles_per_year"`
	BatteryRoundTripEfficiency float64 `json:"battery_round_trip_efficiency" yaml:"battery_round_trip_efficiency"`

	RoofKWPerM2 float64 `json:"roof_kw_per_m2" yaml:"roof_kw_per_m2"`
}

// DefaultAssumptions returns the process-wide defaults.
// The grid emission factor is for a hydroelectric grid, hence tiny.
func DefaultAssumptions() FinancialAssumptions {
	return FinancialAssumptions{
		TariffInflationRate: 0.03,
		DegradationRate:     0.005,
		OMRate:              0.005,
		DiscountRate:        0.06,
		HorizonYears:        25,

		CostPerWatt:             1.40,
		IrradianceYieldKWhPerKW: 1250,

		UtilityIncentivePerKW:       1000,
		UtilityIncentiveCapFraction: 0.40,
		UtilityIncentiveAbsoluteCap: 1_000_000,
		ITCRate:                     0.30,

		TaxShieldEnabled:    false,
		DepreciableFraction: 0.85,
		MarginalTaxRate:     0.265,

		LCOEHorizonYears:           20,
		GridEmissionFactorKgPerKWh: 0.0017,

		BatteryCostPerKWh:          500,
		BatteryCostPerKW:           300,
		DemandChargePerKWMonth:     14,
		SelfConsumptionRatio:       0.70,
		BatteryCyclesPerYear:       250,
		BatteryRoundTripEfficiency: 0.90,

		RoofKWPerM2: 0.2,
	}
}

func (a FinancialAssumptions) Validate() error {
	if a.TariffInflationRate <= -1 {
		return errors.New("TariffInflationRate must be > -1")
	}
	if a.DegradationRate < 0 || a.DegradationRate >= 1 {
		return errors.New("DegradationRate must be in [0, 1)")
	}
	if a.OMRate < 0 {
		return errors.New("OMRate must be >= 0")
	}
	if a.DiscountRate <= -1 {
		return errors.New("DiscountRate must be > -1")
	}
	if a.HorizonYears < 1 {
		return errors.New("HorizonYears must be >= 1")
	}
	if a.CostPerWatt <= 0 {
		return errors.New("CostPerWatt must be > 0")
	}
	if a.IrradianceYieldKWhPerKW <= 0 {
		return errors.New("IrradianceYieldKWhPerKW must be > 0")
	}
	if a.UtilityIncentivePerKW < 0 || a.UtilityIncentiveAbsoluteCap < 0 {
		return errors.New("utility incentive rate and cap must be >= 0")
	}
	if a.UtilityIncentiveCapFraction < 0 || a.UtilityIncentiveCapFraction > 1 {
		return errors.New("UtilityIncentiveCapFraction must be in [0, 1]")
	}
	if a.ITCRate < 0 || a.ITCRate > 1 {
		return errors.New("ITCRate must be in [0, 1]")
	}
	if a.DepreciableFraction < 0 || a.DepreciableFraction > 1 {
		return errors.New("DepreciableFraction must be in [0, 1]")
	}
	if a.MarginalTaxRate < 0 || a.MarginalTaxRate > 1 {
		return errors.New("MarginalTaxRate must be in [0, 1]")
	}
	if a.LCOEHorizonYears < 1 {
		return errors.New("LCOEHorizonYears must be >= 1")
	}
	if a.GridEmissionFactorKgPerKWh < 0 {
		return errors.New("GridEmissionFactorKgPerKWh must be >= 0")
	}
	if a.BatteryCostPerKWh < 0 || a.BatteryCostPerKW < 0 {
		return errors.New("battery costs must be >= 0")
	}
	if a.DemandChargePerKWMonth < 0 {
		return errors.New("DemandChargePerKWMonth must be >= 0")
	}
	if a.SelfConsumptionRatio < 0 || a.SelfConsumptionRatio > 1 {
		return errors.New("SelfConsumptionRatio must be in [0, 1]")
	}
	if a.BatteryCyclesPerYear < 0 {
		return errors.New("BatteryCyclesPerYear must be >= 0")
	}
	if a.BatteryRoundTripEfficiency <= 0 || a.BatteryRoundTripEfficiency > 1 {
		return errors.New("BatteryRoundTripEfficiency must be in (0, 1]")
	}
	if a.RoofKWPerM2 <= 0 {
		return errors.New("RoofKWPerM2 must be > 0")
	}
	return nil
}
