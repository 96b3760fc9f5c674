package finance

import (
	"errors"
	"math"

	"solar-finance/internal/model"
)

// AnnualProduction is the year-0 nameplate output of the PV array.
func AnnualProduction(d model.SystemDesign, a model.FinancialAssumptions) float64 {
	return d.PVSizeKW * a.IrradianceYieldKWhPerKW
}

// DemandSavings is the year-0 value of peak shaving: the battery can cut billed demand by
// at most its power rating and never below zero.
func DemandSavings(p model.SiteEnergyProfile, d model.SystemDesign, a model.FinancialAssumptions) float64 {
	if !d.HasBattery() {
		return 0
	}
	shaved := math.Min(d.BatteryPowerKW, p.PeakDemandKW)
	return math.Max(0, shaved) * a.DemandChargePerKWMonth * 12
}

// SelfSufficiency returns the percentage (0..100) of consumption met on site.
//
// Part of the PV output is used directly (SelfConsumptionRatio); the battery then shifts
// surplus into the remaining load, limited by its usable throughput and round-trip losses.
func SelfSufficiency(p model.SiteEnergyProfile, d model.SystemDesign, productionKWh float64, a model.FinancialAssumptions) float64 {
	if p.AnnualConsumptionKWh <= 0 || productionKWh <= 0 {
		return 0
	}
	direct := math.Min(productionKWh*a.SelfConsumptionRatio, p.AnnualConsumptionKWh)
	surplus := productionKWh - direct

	shifted := 0.0
	if d.HasBattery() && surplus > 0 {
		throughput := d.BatteryEnergyKWh * a.BatteryCyclesPerYear
		shifted = math.Min(surplus, throughput) * a.BatteryRoundTripEfficiency
		shifted = math.Min(shifted, p.AnnualConsumptionKWh-direct)
	}

	pct := (direct + shifted) / p.AnnualConsumptionKWh * 100
	return math.Min(100, math.Max(0, pct))
}

// AnnualConsumptionFromBill converts a monthly electricity bill into kWh/year.
func AnnualConsumptionFromBill(monthlyBill, tariffRate float64) (float64, error) {
	if monthlyBill <= 0 {
		return 0, errors.New("monthly bill must be > 0")
	}
	if tariffRate <= 0 {
		return 0, errors.New("tariff rate must be > 0")
	}
	return monthlyBill / tariffRate * 12, nil
}

// RoofCapKW is the largest array the roof can hold. ok=false means unconstrained.
func RoofCapKW(p model.SiteEnergyProfile, a model.FinancialAssumptions) (capKW float64, ok bool) {
	if p.RoofAreaM2 <= 0 {
		return 0, false
	}
	return p.RoofAreaM2 * a.RoofKWPerM2, true
}

// Sizing is a recommended PV size for an offset target.
type Sizing struct {
	AnnualConsumptionKWh float64 `json:"annual_consumption_kwh"`
	OffsetTarget         float64 `json:"offset_target"`
	TargetProductionKWh  float64 `json:"target_production_kwh"`
	UncappedSizeKW       float64 `json:"uncapped_size_kw"`
	RoofCapKW            float64 `json:"roof_cap_kw,omitempty"`
	SizeKW               float64 `json:"size_kw"`
	RoofCapped           bool    `json:"roof_capped"`
}

// RecommendSize sizes the array so its year-0 output covers offsetTarget (0..1] of the
// building's consumption, then applies the roof cap.
func RecommendSize(p model.SiteEnergyProfile, offsetTarget float64, a model.FinancialAssumptions) (Sizing, error) {
	if p.AnnualConsumptionKWh <= 0 {
		return Sizing{}, errors.New("AnnualConsumptionKWh must be > 0")
	}
	if offsetTarget <= 0 || offsetTarget > 1 {
		return Sizing{}, errors.New("offset target must be in (0, 1]")
	}
	if a.IrradianceYieldKWhPerKW <= 0 {
		return Sizing{}, errors.New("IrradianceYieldKWhPerKW must be > 0")
	}

	s := Sizing{
		AnnualConsumptionKWh: p.AnnualConsumptionKWh,
		OffsetTarget:         offsetTarget,
		TargetProductionKWh:  p.AnnualConsumptionKWh * offsetTarget,
	}
	s.UncappedSizeKW = s.TargetProductionKWh / a.IrradianceYieldKWhPerKW
	s.SizeKW = s.UncappedSizeKW
	if capKW, ok := RoofCapKW(p, a); ok {
		s.RoofCapKW = capKW
		if s.SizeKW > capKW {
			s.SizeKW = capKW
			s.RoofCapped = true
		}
	}
	return s, nil
}
