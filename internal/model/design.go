package model

import (
	"errors"
	"fmt"
)

// SystemDesign is one point in the sizing search space.
// Units:
// - PVSizeKW: kWp nameplate
// - BatteryEnergyKWh: kWh
// - BatteryPowerKW: kW
type SystemDesign struct {
	PVSizeKW         float64 `json:"pv_size_kw" yaml:"pv_size_kw"`
	BatteryEnergyKWh float64 `json:"battery_energy_kwh" yaml:"battery_energy_kwh"`
	BatteryPowerKW   float64 `json:"battery_power_kw" yaml:"battery_power_kw"`
}

func (d SystemDesign) Validate() error {
	if d.PVSizeKW < 0 {
		return errors.New("PVSizeKW must be >= 0")
	}
	if d.BatteryEnergyKWh < 0 {
		return errors.New("BatteryEnergyKWh must be >= 0")
	}
	if d.BatteryPowerKW < 0 {
		return errors.New("BatteryPowerKW must be >= 0")
	}
	if (d.BatteryEnergyKWh == 0) != (d.BatteryPowerKW == 0) {
		return errors.New("BatteryEnergyKWh and BatteryPowerKW must both be set or both be 0")
	}
	if d.PVSizeKW == 0 && !d.HasBattery() {
		return errors.New("design has no PV and no battery")
	}
	return nil
}

func (d SystemDesign) HasBattery() bool {
	return d.BatteryEnergyKWh > 0 && d.BatteryPowerKW > 0
}

// Less orders designs by PV size, then battery energy, then battery power.
func (d SystemDesign) Less(o SystemDesign) bool {
	if d.PVSizeKW != o.PVSizeKW {
		return d.PVSizeKW < o.PVSizeKW
	}
	if d.BatteryEnergyKWh != o.BatteryEnergyKWh {
		return d.BatteryEnergyKWh < o.BatteryEnergyKWh
	}
	return d.BatteryPowerKW < o.BatteryPowerKW
}

func (d SystemDesign) String() string {
	return fmt.Sprintf("pv=%.1fkW, batt=%.1fkWh/%.1fkW", d.PVSizeKW, d.BatteryEnergyKWh, d.BatteryPowerKW)
}
