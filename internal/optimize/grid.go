package optimize

import (
	"errors"
	"fmt"
	"math"

	"solar-finance/internal/model"
)

// Grid is the candidate search space.
//
// PV sizes run from PVMinKW to PVMaxKW in PVStepKW increments. A zero PVMaxKW means
// "up to the roof cap" and requires a roof area on the profile.
//
// Battery energy and power are independent dimensions unless CoupledDurationHours > 0,
// in which case power = energy / duration. Include 0 in BatteryEnergiesKWh to keep
// PV-only candidates; an empty list means PV-only.
type Grid struct {
	PVMinKW  float64 `json:"pv_min_kw" yaml:"pv_min_kw"`
	PVMaxKW  float64 `json:"pv_max_kw" yaml:"pv_max_kw"`
	PVStepKW float64 `json:"pv_step_kw" yaml:"pv_step_kw"`

	BatteryEnergiesKWh   []float64 `json:"battery_energies_kwh,omitempty" yaml:"battery_energies_kwh"`
	BatteryPowersKW      []float64 `json:"battery_powers_kw,omitempty" yaml:"battery_powers_kw"`
	CoupledDurationHours float64   `json:"coupled_duration_hours,omitempty" yaml:"coupled_duration_hours"`
}

// maxCandidates bounds the cost of one sweep.
const maxCandidates = 20000

func (g Grid) Validate() error {
	if g.PVMinKW < 0 {
		return errors.New("PVMinKW must be >= 0")
	}
	if g.PVStepKW <= 0 {
		return errors.New("PVStepKW must be > 0")
	}
	if g.PVMaxKW < 0 {
		return errors.New("PVMaxKW must be >= 0")
	}
	if g.PVMaxKW > 0 && g.PVMaxKW < g.PVMinKW {
		return errors.New("PVMaxKW must be >= PVMinKW")
	}
	if g.CoupledDurationHours < 0 {
		return errors.New("CoupledDurationHours must be >= 0")
	}
	for _, e := range g.BatteryEnergiesKWh {
		if e < 0 {
			return errors.New("BatteryEnergiesKWh must be >= 0")
		}
	}
	for _, p := range g.BatteryPowersKW {
		if p < 0 {
			return errors.New("BatteryPowersKW must be >= 0")
		}
	}
	return nil
}

// pvCount is the number of PV sizes from PVMinKW up to ceiling (inclusive, within float
// tolerance). It is computed without expanding the range.
func (g Grid) pvCount(ceiling float64) float64 {
	if g.PVStepKW <= 0 || ceiling < g.PVMinKW {
		return 0
	}
	return math.Floor((ceiling-g.PVMinKW)/g.PVStepKW+1e-9) + 1
}

func (g Grid) pvSizes(n int) []float64 {
	out := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		v := g.PVMinKW + float64(i)*g.PVStepKW
		out = append(out, math.Round(v*1e6)/1e6)
	}
	return out
}

// batteryCount is len(g.batteryPoints()) without building them.
func (g Grid) batteryCount() int {
	if len(g.BatteryEnergiesKWh) == 0 {
		return 1
	}
	powers := 0
	for _, p := range g.BatteryPowersKW {
		if p != 0 {
			powers++
		}
	}
	n := 0
	for _, e := range g.BatteryEnergiesKWh {
		switch {
		case e == 0, g.CoupledDurationHours > 0:
			n++
		default:
			n += powers
		}
	}
	return n
}

func (g Grid) batteryPoints() []model.SystemDesign {
	energies := g.BatteryEnergiesKWh
	if len(energies) == 0 {
		energies = []float64{0}
	}
	var out []model.SystemDesign
	for _, e := range energies {
		if e == 0 {
			out = append(out, model.SystemDesign{})
			continue
		}
		if g.CoupledDurationHours > 0 {
			out = append(out, model.SystemDesign{BatteryEnergyKWh: e, BatteryPowerKW: e / g.CoupledDurationHours})
			continue
		}
		for _, p := range g.BatteryPowersKW {
			if p == 0 {
				continue
			}
			out = append(out, model.SystemDesign{BatteryEnergyKWh: e, BatteryPowerKW: p})
		}
	}
	return out
}

// Candidates expands the grid into a plain sequence of designs, PV-major.
func (g Grid) Candidates(ceiling float64) ([]model.SystemDesign, error) {
	nBatt := g.batteryCount()
	if nBatt == 0 {
		return nil, nil
	}
	nPV := g.pvCount(ceiling)
	if n := nPV * float64(nBatt); n > maxCandidates {
		return nil, fmt.Errorf("grid has %.0f candidates, limit is %d", n, maxCandidates)
	}
	pv := g.pvSizes(int(nPV))
	batt := g.batteryPoints()
	out := make([]model.SystemDesign, 0, len(pv)*len(batt))
	for _, kw := range pv {
		for _, b := range batt {
			out = append(out, model.SystemDesign{
				PVSizeKW:         kw,
				BatteryEnergyKWh: b.BatteryEnergyKWh,
				BatteryPowerKW:   b.BatteryPowerKW,
			})
		}
	}
	return out, nil
}
