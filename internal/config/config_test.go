package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solar-finance/internal/model"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestDefault_IsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "config.yaml", `
assumptions:
  discount_rate: 0.08
  cost_per_watt: 1.9
  tax_shield_enabled: true
sweep:
  pv_min_kw: 5
  pv_max_kw: 100
  pv_step_kw: 5
`)
	c, err := Load(p)
	require.NoError(t, err)

	def := model.DefaultAssumptions()
	assert.Equal(t, 0.08, c.Assumptions.DiscountRate)
	assert.Equal(t, 1.9, c.Assumptions.CostPerWatt)
	assert.True(t, c.Assumptions.TaxShieldEnabled)
	assert.Equal(t, def.HorizonYears, c.Assumptions.HorizonYears)
	assert.Equal(t, def.ITCRate, c.Assumptions.ITCRate)
	assert.Equal(t, 100.0, c.Sweep.PVMaxKW)
	assert.Equal(t, Default().Pricing, c.Pricing)
}

func TestLoad_AssumptionsFileRelativeToConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "assumptions"), 0o755))
	writeFile(t, filepath.Join(dir, "assumptions"), "quebec.yaml", `
assumptions:
  tariff_inflation_rate: 0.025
  irradiance_yield_kwh_per_kw: 1150
`)
	p := writeFile(t, dir, "config.yaml", `
assumptions_file: assumptions/quebec.yaml
assumptions:
  irradiance_yield_kwh_per_kw: 1200
`)
	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, 0.025, c.Assumptions.TariffInflationRate)
	// explicit value wins over the file
	assert.Equal(t, 1200.0, c.Assumptions.IrradianceYieldKWhPerKW)
}

func TestLoad_RejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "config.yaml", `
assumptions:
  itc_rate: 1.5
`)
	_, err := Load(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ITCRate")

	p = writeFile(t, dir, "pricing.yaml", `
pricing:
  volume_discount:
    ceiling_pct: 5
    steps:
      - {min_buildings: 1, percent: 0}
      - {min_buildings: 4, percent: 8}
`)
	_, err = Load(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "volume_discount")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_ExplicitZeroOverridesDefault(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "config.yaml", `
assumptions:
  tariff_inflation_rate: 0
  degradation_rate: 0
`)
	c, err := Load(p)
	require.NoError(t, err)
	assert.Zero(t, c.Assumptions.TariffInflationRate)
	assert.Zero(t, c.Assumptions.DegradationRate)
	assert.Equal(t, model.DefaultAssumptions().DiscountRate, c.Assumptions.DiscountRate)
}
