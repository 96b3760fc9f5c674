package portfolio

import (
	"sort"

	"solar-finance/internal/model"
)

// KPI names a per-site figure that feeds the portfolio totals.
type KPI string

const (
	KPIPVSizeKW         KPI = "pv_size_kw"
	KPIBatteryEnergyKWh KPI = "battery_energy_kwh"
	KPINetCapex         KPI = "net_capex"
	KPINPV              KPI = "npv"
	KPIIRR              KPI = "irr"
	KPIAnnualSavings    KPI = "annual_savings"
	KPICO2AvoidedKg     KPI = "co2_avoided_kg"
)

// Overrides are manual per-field values entered for a site. A nil field means
// "use the simulated value".
type Overrides struct {
	PVSizeKW         *float64 `json:"pv_size_kw,omitempty" yaml:"pv_size_kw"`
	BatteryEnergyKWh *float64 `json:"battery_energy_kwh,omitempty" yaml:"battery_energy_kwh"`
	NetCapex         *float64 `json:"net_capex,omitempty" yaml:"net_capex"`
	NPV              *float64 `json:"npv,omitempty" yaml:"npv"`
	IRR              *float64 `json:"irr,omitempty" yaml:"irr"`
	AnnualSavings    *float64 `json:"annual_savings,omitempty" yaml:"annual_savings"`
}

func (o Overrides) get(k KPI) *float64 {
	switch k {
	case KPIPVSizeKW:
		return o.PVSizeKW
	case KPIBatteryEnergyKWh:
		return o.BatteryEnergyKWh
	case KPINetCapex:
		return o.NetCapex
	case KPINPV:
		return o.NPV
	case KPIIRR:
		return o.IRR
	case KPIAnnualSavings:
		return o.AnnualSavings
	default:
		return nil
	}
}

// Site is one building in a portfolio: its latest run plus manual overrides.
type Site struct {
	SiteID    string               `json:"site_id"`
	Name      string               `json:"name,omitempty"`
	Run       *model.SimulationRun `json:"run,omitempty"`
	Overrides Overrides            `json:"overrides"`
}

// Effective is the single accessor for a site's KPI: the override when present, else
// the simulated value. ok=false means neither exists.
func (s Site) Effective(k KPI) (v float64, ok bool) {
	if o := s.Overrides.get(k); o != nil {
		return *o, true
	}
	return s.simulated(k)
}

func (s Site) simulated(k KPI) (float64, bool) {
	if s.Run == nil {
		return 0, false
	}
	r := s.Run
	switch k {
	case KPIPVSizeKW:
		return r.Design.PVSizeKW, true
	case KPIBatteryEnergyKWh:
		return r.Design.BatteryEnergyKWh, true
	case KPINetCapex:
		return r.Incentives.NetCapex, true
	case KPINPV:
		return r.Metrics.NPV, true
	case KPIIRR:
		if r.Metrics.IRR == nil {
			return 0, false
		}
		return *r.Metrics.IRR, true
	case KPIAnnualSavings:
		return r.Metrics.FirstYearSavings, true
	case KPICO2AvoidedKg:
		return r.Metrics.CO2AvoidedKgPerYear, true
	default:
		return 0, false
	}
}

// LatestRun returns the newest run by CreatedAt; equal timestamps fall back to the
// greater ID so the choice is stable. Older runs are superseded, not discarded.
func LatestRun(runs []*model.SimulationRun) *model.SimulationRun {
	var latest *model.SimulationRun
	for _, r := range runs {
		if r == nil {
			continue
		}
		if latest == nil ||
			r.CreatedAt.After(latest.CreatedAt) ||
			(r.CreatedAt.Equal(latest.CreatedAt) && r.ID > latest.ID) {
			latest = r
		}
	}
	return latest
}

// SitesFromRuns builds one Site per SiteID from a run history, using each site's latest
// run. Overrides are looked up by SiteID. Sites are ordered by SiteID.
func SitesFromRuns(runs []*model.SimulationRun, overrides map[string]Overrides) []Site {
	bySite := map[string][]*model.SimulationRun{}
	for _, r := range runs {
		if r == nil {
			continue
		}
		bySite[r.SiteID] = append(bySite[r.SiteID], r)
	}
	ids := make([]string, 0, len(bySite))
	for id := range bySite {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]Site, 0, len(ids))
	for _, id := range ids {
		latest := LatestRun(bySite[id])
		out = append(out, Site{
			SiteID:    id,
			Name:      latest.Profile.Name,
			Run:       latest,
			Overrides: overrides[id],
		})
	}
	return out
}
