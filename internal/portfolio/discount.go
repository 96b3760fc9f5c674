package portfolio

import (
	"errors"
	"fmt"
	"math"
)

// DiscountStep grants Percent once a portfolio has at least MinBuildings sites.
type DiscountStep struct {
	MinBuildings int     `json:"min_buildings" yaml:"min_buildings"`
	Percent      float64 `json:"percent" yaml:"percent"`
}

// VolumeDiscountPolicy is a monotonic step table with a hard ceiling.
type VolumeDiscountPolicy struct {
	Steps      []DiscountStep `json:"steps" yaml:"steps"`
	CeilingPct float64        `json:"ceiling_pct" yaml:"ceiling_pct"`
}

func DefaultVolumeDiscountPolicy() VolumeDiscountPolicy {
	return VolumeDiscountPolicy{
		Steps: []DiscountStep{
			{MinBuildings: 1, Percent: 0},
			{MinBuildings: 3, Percent: 3},
			{MinBuildings: 5, Percent: 5},
			{MinBuildings: 10, Percent: 8},
			{MinBuildings: 20, Percent: 10},
		},
		CeilingPct: 12,
	}
}

func (p VolumeDiscountPolicy) Validate() error {
	if p.CeilingPct < 0 || p.CeilingPct > 100 {
		return errors.New("CeilingPct must be in [0, 100]")
	}
	for i, s := range p.Steps {
		if s.MinBuildings < 1 {
			return fmt.Errorf("step %d: MinBuildings must be >= 1", i)
		}
		if s.Percent < 0 || s.Percent > p.CeilingPct {
			return fmt.Errorf("step %d: Percent must be in [0, CeilingPct]", i)
		}
		if i == 0 {
			continue
		}
		prev := p.Steps[i-1]
		if s.MinBuildings <= prev.MinBuildings {
			return fmt.Errorf("step %d: MinBuildings must increase", i)
		}
		if s.Percent < prev.Percent {
			return fmt.Errorf("step %d: Percent must not decrease", i)
		}
	}
	return nil
}

// PercentFor looks up the discount for a building count. The result is never negative,
// never above the ceiling, and non-decreasing in numBuildings even if the table is not.
func (p VolumeDiscountPolicy) PercentFor(numBuildings int) float64 {
	pct := 0.0
	for _, s := range p.Steps {
		if numBuildings >= s.MinBuildings {
			pct = math.Max(pct, s.Percent)
		}
	}
	return math.Min(math.Max(pct, 0), math.Max(p.CeilingPct, 0))
}
