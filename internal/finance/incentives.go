package finance

import (
	"math"

	"solar-finance/internal/model"
)

// GrossCapex is the installed cost of a design before incentives.
// PV is priced per installed watt; the battery per kWh of energy plus per kW of power.
func GrossCapex(d model.SystemDesign, a model.FinancialAssumptions) float64 {
	pv := d.PVSizeKW * 1000 * a.CostPerWatt
	batt := d.BatteryEnergyKWh*a.BatteryCostPerKWh + d.BatteryPowerKW*a.BatteryCostPerKW
	return pv + batt
}

// ComputeIncentives stacks incentives on the gross cost:
//  1. utility incentive = min(kW * rate, gross * capFraction, absoluteCap)
//  2. federal credit    = (gross - utility) * ITC
//  3. tax shield        = residual * depreciable fraction * marginal tax (only if enabled)
//
// When requested is false every incentive is 0 and NetCapex == GrossCapex.
func ComputeIncentives(grossCapex, systemSizeKW float64, requested bool, a model.FinancialAssumptions) model.IncentiveBreakdown {
	out := model.IncentiveBreakdown{
		GrossCapex: grossCapex,
		NetCapex:   grossCapex,
	}
	if !requested {
		return out
	}

	utility := math.Min(systemSizeKW*a.UtilityIncentivePerKW, grossCapex*a.UtilityIncentiveCapFraction)
	utility = math.Min(utility, a.UtilityIncentiveAbsoluteCap)
	utility = math.Max(0, utility)

	federal := math.Max(0, (grossCapex-utility)*a.ITCRate)

	shield := 0.0
	if a.TaxShieldEnabled {
		residual := grossCapex - utility - federal
		shield = math.Max(0, residual*a.DepreciableFraction*a.MarginalTaxRate)
	}

	out.UtilityIncentive = utility
	out.FederalCredit = federal
	out.TaxShield = shield

	net := grossCapex - utility - federal - shield
	if net < 0 {
		out.OverCredited = true
		net = 0
	}
	out.NetCapex = net
	return out
}
