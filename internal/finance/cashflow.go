package finance

import "solar-finance/internal/model"

// ProjectionInput is everything the projector needs for one design.
type ProjectionInput struct {
	NetCapex   float64
	GrossCapex float64

	// Year-0 nameplate values; year 1 is already one step degraded/inflated.
	InitialProductionKWh float64
	InitialTariff        float64
	// Demand-charge savings at year-0 prices, inflated with the tariff.
	InitialDemandSavings float64

	Assumptions model.FinancialAssumptions
}

// ProjectCashflows produces one entry per year over the assumptions' horizon.
//
// Each year compounds degradation and tariff inflation *before* computing that year's
// savings. Cumulative cashflow starts at -NetCapex before year 1.
func ProjectCashflows(in ProjectionInput) []model.CashflowEntry {
	a := in.Assumptions
	horizon := a.HorizonYears
	if horizon < 1 {
		horizon = 1
	}

	entries := make([]model.CashflowEntry, 0, horizon)
	production := in.InitialProductionKWh
	tariff := in.InitialTariff
	demand := in.InitialDemandSavings
	om := in.GrossCapex * a.OMRate
	cum := -in.NetCapex

	for y := 1; y <= horizon; y++ {
		production *= 1 - a.DegradationRate
		tariff *= 1 + a.TariffInflationRate
		demand *= 1 + a.TariffInflationRate

		energy := production * tariff
		savings := energy + demand
		net := savings - om
		cum += net

		entries = append(entries, model.CashflowEntry{
			Year:          y,
			ProductionKWh: production,
			TariffRate:    tariff,
			EnergySavings: energy,
			DemandSavings: demand,
			Savings:       savings,
			OMCost:        om,
			NetCashflow:   net,
			Cumulative:    cum,
		})
	}
	return entries
}

// PaybackYear returns the first year whose cumulative cashflow is >= 0.
// If that never happens the horizon is returned with breaksEven=false; callers must not
// read that year as a real break-even.
func PaybackYear(entries []model.CashflowEntry) (year int, breaksEven bool) {
	for _, e := range entries {
		if e.Cumulative >= 0 {
			return e.Year, true
		}
	}
	return len(entries), false
}
