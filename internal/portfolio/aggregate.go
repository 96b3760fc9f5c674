package portfolio

import (
	"math"
)

// Totals are the derived portfolio KPIs. They are never stored as the source of truth;
// Recalculate rebuilds them from the sites.
type Totals struct {
	NumBuildings int `json:"num_buildings"`

	TotalPVSizeKW            float64  `json:"total_pv_size_kw"`
	TotalBatteryEnergyKWh    float64  `json:"total_battery_energy_kwh"`
	TotalNetCapex            float64  `json:"total_net_capex"`
	TotalNPV                 float64  `json:"total_npv"`
	WeightedIRR              *float64 `json:"weighted_irr"`
	TotalAnnualSavings       float64  `json:"total_annual_savings"`
	TotalCO2AvoidedKgPerYear float64  `json:"total_co2_avoided_kg_per_year"`

	// Sites with a positive net CAPEX but no IRR (they never pay back). They are left out
	// of WeightedIRR and counted here instead.
	IRRUndefinedSites    int     `json:"irr_undefined_sites"`
	IRRUndefinedNetCapex float64 `json:"irr_undefined_net_capex"`

	VolumeDiscountPct  float64 `json:"volume_discount_pct"`
	DiscountedNetCapex float64 `json:"discounted_net_capex"`
}

// Portfolio is a named set of sites.
type Portfolio struct {
	Name  string `json:"name"`
	Sites []Site `json:"sites"`
}

type Aggregator struct {
	Policy VolumeDiscountPolicy
}

func NewAggregator(policy VolumeDiscountPolicy) *Aggregator {
	return &Aggregator{Policy: policy}
}

// Recalculate derives totals from the portfolio's sites.
//
// The reduction runs in slice order so repeated calls over the same input produce
// bit-identical results. The weighted IRR only counts sites with a positive net CAPEX
// and a defined IRR; it is nil when no site qualifies. Positive-CAPEX sites without an
// IRR are reported in IRRUndefinedSites.
func (a *Aggregator) Recalculate(p Portfolio) Totals {
	t := Totals{NumBuildings: len(p.Sites)}

	var irrNum, irrDen float64
	for _, s := range p.Sites {
		t.TotalPVSizeKW += effective(s, KPIPVSizeKW)
		t.TotalBatteryEnergyKWh += effective(s, KPIBatteryEnergyKWh)
		t.TotalNetCapex += effective(s, KPINetCapex)
		t.TotalNPV += effective(s, KPINPV)
		t.TotalAnnualSavings += effective(s, KPIAnnualSavings)
		t.TotalCO2AvoidedKgPerYear += effective(s, KPICO2AvoidedKg)

		capex, okCapex := s.Effective(KPINetCapex)
		irr, okIRR := s.Effective(KPIIRR)
		if !okCapex || capex <= 0 || !finite(capex) {
			continue
		}
		if !okIRR || !finite(irr) {
			t.IRRUndefinedSites++
			t.IRRUndefinedNetCapex += capex
			continue
		}
		irrNum += irr * capex
		irrDen += capex
	}
	if irrDen > 0 {
		w := irrNum / irrDen
		if finite(w) {
			t.WeightedIRR = &w
		}
	}

	t.VolumeDiscountPct = a.Policy.PercentFor(t.NumBuildings)
	t.DiscountedNetCapex = t.TotalNetCapex * (1 - t.VolumeDiscountPct/100)
	return t
}

// effective returns the site's value for k, or 0 when it has none.
func effective(s Site, k KPI) float64 {
	v, ok := s.Effective(k)
	if !ok || !finite(v) {
		return 0
	}
	return v
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
