package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"solar-finance/internal/model"
	"solar-finance/internal/optimize"
	"solar-finance/internal/portfolio"

	"gopkg.in/yaml.v3"
)

// Config is the resolved configuration: defaults, then the assumptions file, then the
// YAML values.
type Config struct {
	// Optional: load assumptions from a separate YAML (e.g. examples/assumptions/*.yaml).
	// Explicit values under `assumptions` override the file.
	AssumptionsFile string                     `yaml:"assumptions_file"`
	Assumptions     model.FinancialAssumptions `yaml:"assumptions"`
	Pricing         PricingConfig              `yaml:"pricing"`
	Sweep           optimize.Grid              `yaml:"sweep"`
}

type PricingConfig struct {
	VolumeDiscount portfolio.VolumeDiscountPolicy `yaml:"volume_discount"`
}

// Default is the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Assumptions: model.DefaultAssumptions(),
		Pricing:     PricingConfig{VolumeDiscount: portfolio.DefaultVolumeDiscountPolicy()},
		Sweep: optimize.Grid{
			PVMinKW:            10,
			PVStepKW:           5,
			BatteryEnergiesKWh: []float64{0, 50, 100, 200},
			BatteryPowersKW:    []float64{25, 50, 100},
		},
	}
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config onto the defaults, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f fileConfig
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	c := Config{
		AssumptionsFile: f.AssumptionsFile,
		Pricing:         f.Pricing,
		Sweep:           f.Sweep,
	}

	base := model.DefaultAssumptions()
	if c.AssumptionsFile != "" {
		assumptionsPath := c.AssumptionsFile
		if !filepath.IsAbs(assumptionsPath) {
			// Prefer paths relative to the config file, fall back to cwd.
			cand := filepath.Join(filepath.Dir(path), assumptionsPath)
			if _, err := os.Stat(cand); err == nil {
				assumptionsPath = cand
			}
		}
		loaded, err := loadAssumptionsFile(assumptionsPath)
		if err != nil {
			return nil, err
		}
		base = loaded.Apply(base)
	}
	c.Assumptions = f.Assumptions.Apply(base)

	def := Default()
	if len(c.Pricing.VolumeDiscount.Steps) == 0 {
		c.Pricing.VolumeDiscount = def.Pricing.VolumeDiscount
	}
	if c.Sweep.PVStepKW == 0 {
		c.Sweep = def.Sweep
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if err := c.Assumptions.Validate(); err != nil {
		return fmt.Errorf("assumptions invalid: %w", err)
	}
	if err := c.Pricing.VolumeDiscount.Validate(); err != nil {
		return fmt.Errorf("pricing.volume_discount invalid: %w", err)
	}
	if err := c.Sweep.Validate(); err != nil {
		return fmt.Errorf("sweep invalid: %w", err)
	}
	return nil
}

// fileConfig is Config as written on disk: assumptions are partial and are applied over
// the defaults, so an explicit 0 is kept.
type fileConfig struct {
	AssumptionsFile string                    `yaml:"assumptions_file"`
	Assumptions     model.AssumptionOverrides `yaml:"assumptions"`
	Pricing         PricingConfig             `yaml:"pricing"`
	Sweep           optimize.Grid             `yaml:"sweep"`
}

type assumptionsFileWrapper struct {
	Assumptions model.AssumptionOverrides `yaml:"assumptions"`
}

func loadAssumptionsFile(path string) (model.AssumptionOverrides, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.AssumptionOverrides{}, err
	}
	var w assumptionsFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return model.AssumptionOverrides{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return w.Assumptions, nil
}
