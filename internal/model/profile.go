package model

import "errors"

// SiteEnergyProfile is the per-building input to a simulation.
// Units:
// - AnnualConsumptionKWh: kWh/year
// - PeakDemandKW: kW
// - TariffRate: $/kWh
// - RoofAreaM2: usable roof area in m² (0 = unconstrained)
type SiteEnergyProfile struct {
	SiteID       string `json:"site_id,omitempty" yaml:"site_id"`
	Name         string `json:"name,omitempty" yaml:"name"`
	BuildingType string `json:"building_type,omitempty" yaml:"building_type"`

	AnnualConsumptionKWh float64 `json:"annual_consumption_kwh" yaml:"annual_consumption_kwh"`
	PeakDemandKW         float64 `json:"peak_demand_kw" yaml:"peak_demand_kw"`
	TariffRate           float64 `json:"tariff_rate" yaml:"tariff_rate"`
	RoofAreaM2           float64 `json:"roof_area_m2,omitempty" yaml:"roof_area_m2"`
}

func (p SiteEnergyProfile) Validate() error {
	if p.AnnualConsumptionKWh <= 0 {
		return errors.New("AnnualConsumptionKWh must be > 0")
	}
	if p.PeakDemandKW < 0 {
		return errors.New("PeakDemandKW must be >= 0")
	}
	if p.TariffRate <= 0 {
		return errors.New("TariffRate must be > 0")
	}
	if p.RoofAreaM2 < 0 {
		return errors.New("RoofAreaM2 must be >= 0")
	}
	return nil
}
