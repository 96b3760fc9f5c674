package optimize

import (
	"math"

	"solar-finance/internal/model"

	"github.com/shopspring/decimal"
)

// Rounding applied to objective values before comparison, so runs that differ only in
// floating-point noise compare equal and fall through to the tie-break.
const (
	currencyPlaces = 2
	ratePlaces     = 4
	percentPlaces  = 2
)

// candidate is a run with its rounded comparison keys.
type candidate struct {
	run *model.SimulationRun

	primary decimal.Decimal
	// secondary is the tie-break metric; hasSecondary=false ranks below any value.
	secondary    decimal.Decimal
	hasSecondary bool
}

// SelectChampions judges each objective independently over the whole batch.
// A run may be champion for several objectives.
func SelectChampions(runs []*model.SimulationRun) model.OptimalScenarios {
	var out model.OptimalScenarios
	for _, o := range model.Objectives() {
		out = out.WithChampion(o, SelectChampion(runs, o))
	}
	return out
}

// SelectChampion picks the best run for one objective, or nil if none qualifies.
//
//  1. round the objective metric
//  2. keep runs with a strictly positive value (payback: runs that break even)
//  3. take the max (min for payback)
//  4. break ties on the secondary metric: IRR for NPV, NPV for everything else
//  5. remaining ties go to the smaller design, then the lower run ID
func SelectChampion(runs []*model.SimulationRun, o model.Objective) *model.SimulationRun {
	var best *candidate
	for _, r := range runs {
		if r == nil {
			continue
		}
		c, ok := score(r, o)
		if !ok {
			continue
		}
		if best == nil || beats(c, *best, o) {
			cc := c
			best = &cc
		}
	}
	if best == nil {
		return nil
	}
	return best.run
}

func score(r *model.SimulationRun, o model.Objective) (candidate, bool) {
	m := r.Metrics
	c := candidate{run: r}
	// decimal.NewFromFloat panics on NaN/Inf.
	if !finite(m.NPV) || !finite(m.SelfSufficiencyPct) || (m.IRR != nil && !finite(*m.IRR)) {
		return c, false
	}
	switch o {
	case model.ObjectiveBestNPV:
		c.primary = roundCurrency(m.NPV)
		if m.IRR != nil {
			c.secondary = roundRate(*m.IRR)
			c.hasSecondary = true
		}
		return c, c.primary.IsPositive()
	case model.ObjectiveBestIRR:
		if m.IRR == nil {
			return c, false
		}
		c.primary = roundRate(*m.IRR)
		c.secondary, c.hasSecondary = roundCurrency(m.NPV), true
		return c, c.primary.IsPositive()
	case model.ObjectiveMaxSelfSufficiency:
		c.primary = decimal.NewFromFloat(m.SelfSufficiencyPct).Round(percentPlaces)
		c.secondary, c.hasSecondary = roundCurrency(m.NPV), true
		return c, c.primary.IsPositive()
	case model.ObjectiveFastestPayback:
		if !m.BreaksEven {
			return c, false
		}
		c.primary = decimal.NewFromInt(int64(m.PaybackYear))
		c.secondary, c.hasSecondary = roundCurrency(m.NPV), true
		return c, true
	default:
		return c, false
	}
}

// beats reports whether a ranks strictly ahead of b.
func beats(a, b candidate, o model.Objective) bool {
	if cmp := a.primary.Cmp(b.primary); cmp != 0 {
		if o == model.ObjectiveFastestPayback {
			return cmp < 0
		}
		return cmp > 0
	}
	if a.hasSecondary != b.hasSecondary {
		return a.hasSecondary
	}
	if cmp := a.secondary.Cmp(b.secondary); cmp != 0 {
		return cmp > 0
	}
	da, db := a.run.Design, b.run.Design
	if da != db {
		return da.Less(db)
	}
	return a.run.ID < b.run.ID
}

func roundCurrency(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(currencyPlaces)
}

func roundRate(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(ratePlaces)
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
