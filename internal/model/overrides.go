package model

// AssumptionOverrides is a partial FinancialAssumptions. A nil field keeps the base
// value; a set field replaces it, including with 0 or false.
type AssumptionOverrides struct {
	TariffInflationRate *float64 `json:"tariff_inflation_rate,omitempty" yaml:"tariff_inflation_rate"`
	DegradationRate     *float64 `json:"degradation_rate,omitempty" yaml:"degradation_rate"`
	OMRate              *float64 `json:"om_rate,omitempty" yaml:"om_rate"`
	DiscountRate        *float64 `json:"discount_rate,omitempty" yaml:"discount_rate"`
	HorizonYears        *int     `json:"horizon_years,omitempty" yaml:"horizon_years"`

	CostPerWatt             *float64 `json:"cost_per_watt,omitempty" yaml:"cost_per_watt"`
	IrradianceYieldKWhPerKW *float64 `json:"irradiance_yield_kwh_per_kw,omitempty" yaml:"irradiance_yield_kwh_per_kw"`

	UtilityIncentivePerKW       *float64 `json:"utility_incentive_per_kw,omitempty" yaml:"utility_incentive_per_kw"`
	UtilityIncentiveCapFraction *float64 `json:"utility_incentive_cap_fraction,omitempty" yaml:"utility_incentive_cap_fraction"`
	UtilityIncentiveAbsoluteCap *float64 `json:"utility_incentive_absolute_cap,omitempty" yaml:"utility_incentive_absolute_cap"`
	ITCRate                     *float64 `json:"itc_rate,omitempty" yaml:"itc_rate"`

	TaxShieldEnabled    *bool    `json:"tax_shield_enabled,omitempty" yaml:"tax_shield_enabled"`
	DepreciableFraction *float64 `json:"depreciable_fraction,omitempty" yaml:"depreciable_fraction"`
	MarginalTaxRate     *float64 `json:"marginal_tax_rate,omitempty" yaml:"marginal_tax_rate"`

	LCOEHorizonYears           *int     `json:"lcoe_horizon_years,omitempty" yaml:"lcoe_horizon_years"`
	GridEmissionFactorKgPerKWh *float64 `json:"grid_emission_factor_kg_per_kwh,omitempty" yaml:"grid_emission_factor_kg_per_kwh"`

	BatteryCostPerKWh          *float64 `json:"battery_cost_per_kwh,omitempty" yaml:"battery_cost_per_kwh"`
	BatteryCostPerKW           *float64 `json:"battery_cost_per_kw,omitempty" yaml:"battery_cost_per_kw"`
	DemandChargePerKWMonth     *float64 `json:"demand_charge_per_kw_month,omitempty" yaml:"demand_charge_per_kw_month"`
	SelfConsumptionRatio       *float64 `json:"self_consumption_ratio,omitempty" yaml:"self_consumption_ratio"`
	BatteryCyclesPerYear       *float64 `json:"battery_cycles_per_year,omitempty" yaml:"battery_cycles_per_year"`
	BatteryRoundTripEfficiency *float64 `json:"battery_round_trip_efficiency,omitempty" yaml:"battery_round_trip_efficiency"`

	RoofKWPerM2 *float64 `json:"roof_kw_per_m2,omitempty" yaml:"roof_kw_per_m2"`
}

// Apply returns base with every set field of o copied over it.
func (o AssumptionOverrides) Apply(base FinancialAssumptions) FinancialAssumptions {
	out := base
	setF := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	setI := func(dst *int, v *int) {
		if v != nil {
			*dst = *v
		}
	}

	setF(&out.TariffInflationRate, o.TariffInflationRate)
	setF(&out.DegradationRate, o.DegradationRate)
	setF(&out.OMRate, o.OMRate)
	setF(&out.DiscountRate, o.DiscountRate)
	setI(&out.HorizonYears, o.HorizonYears)

	setF(&out.CostPerWatt, o.CostPerWatt)
	setF(&out.IrradianceYieldKWhPerKW, o.IrradianceYieldKWhPerKW)

	setF(&out.UtilityIncentivePerKW, o.UtilityIncentivePerKW)
	setF(&out.UtilityIncentiveCapFraction, o.UtilityIncentiveCapFraction)
	setF(&out.UtilityIncentiveAbsoluteCap, o.UtilityIncentiveAbsoluteCap)
	setF(&out.ITCRate, o.ITCRate)

	if o.TaxShieldEnabled != nil {
		out.TaxShieldEnabled = *o.TaxShieldEnabled
	}
	setF(&out.DepreciableFraction, o.DepreciableFraction)
	setF(&out.MarginalTaxRate, o.MarginalTaxRate)

	setI(&out.LCOEHorizonYears, o.LCOEHorizonYears)
	setF(&out.GridEmissionFactorKgPerKWh, o.GridEmissionFactorKgPerKWh)

	setF(&out.BatteryCostPerKWh, o.BatteryCostPerKWh)
	setF(&out.BatteryCostPerKW, o.BatteryCostPerKW)
	setF(&out.DemandChargePerKWMonth, o.DemandChargePerKWMonth)
	setF(&out.SelfConsumptionRatio, o.SelfConsumptionRatio)
	setF(&out.BatteryCyclesPerYear, o.BatteryCyclesPerYear)
	setF(&out.BatteryRoundTripEfficiency, o.BatteryRoundTripEfficiency)

	setF(&out.RoofKWPerM2, o.RoofKWPerM2)
	return out
}
