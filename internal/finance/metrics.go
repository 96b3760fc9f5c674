package finance

import (
	"math"

	"solar-finance/internal/model"
)

const (
	irrLow       = 0.0
	irrHigh      = 10.0
	irrTolerance = 1e-10
	irrMaxIter   = 200
)

// NPV discounts each year's net cashflow at rate and subtracts the net cost.
func NPV(netCapex float64, entries []model.CashflowEntry, rate float64) float64 {
	npv := -netCapex
	discount := 1.0
	for _, e := range entries {
		discount /= 1 + rate
		npv += e.NetCashflow * discount
	}
	return npv
}

// IRR solves NPV(r) = 0 by bisection on [0, 10].
//
// nil is returned when there is no investment to recover, when the undiscounted
// cashflows never pay back the net cost, or when the root lies outside the bracket.
// A nil IRR is a normal outcome, not an error.
func IRR(netCapex float64, entries []model.CashflowEntry) *float64 {
	if netCapex <= 0 || len(entries) == 0 || !finite(netCapex) {
		return nil
	}
	for _, e := range entries {
		if !finite(e.NetCashflow) {
			return nil
		}
	}

	lo, hi := irrLow, irrHigh
	fLo := NPV(netCapex, entries, lo)
	fHi := NPV(netCapex, entries, hi)
	if fLo < 0 || fHi > 0 {
		return nil
	}
	if fLo == 0 {
		r := lo
		return &r
	}

	for i := 0; i < irrMaxIter && hi-lo > irrTolerance; i++ {
		mid := (lo + hi) / 2
		if NPV(netCapex, entries, mid) > 0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	r := (lo + hi) / 2
	return &r
}

// LifetimeProduction sums degraded output over years 1..years.
func LifetimeProduction(initialProductionKWh, degradationRate float64, years int) float64 {
	total := 0.0
	p := initialProductionKWh
	for y := 1; y <= years; y++ {
		p *= 1 - degradationRate
		total += p
	}
	return total
}

// LCOE is net cost over lifetime production, in $/kWh.
// The production window is LCOEHorizonYears (default 20), not HorizonYears.
func LCOE(netCapex, initialProductionKWh float64, a model.FinancialAssumptions) *float64 {
	lifetime := LifetimeProduction(initialProductionKWh, a.DegradationRate, a.LCOEHorizonYears)
	if lifetime <= 0 || !finite(lifetime) {
		return nil
	}
	v := netCapex / lifetime
	if !finite(v) {
		return nil
	}
	return &v
}

func CO2AvoidedKg(annualProductionKWh float64, a model.FinancialAssumptions) float64 {
	return annualProductionKWh * a.GridEmissionFactorKgPerKWh
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
