package optimize

import (
	"errors"
	"fmt"
	"runtime"

	"solar-finance/internal/finance"
	"solar-finance/internal/model"

	"golang.org/x/sync/errgroup"
)

var ErrInvalidGrid = errors.New("invalid grid")

// Request describes one sweep over a reference site.
type Request struct {
	Profile        model.SiteEnergyProfile
	Grid           Grid
	Assumptions    model.FinancialAssumptions
	WithIncentives bool
}

// Exclusion is a candidate that failed validation and was left out of champion
// selection.
type Exclusion struct {
	Design model.SystemDesign `json:"design"`
	Reason string             `json:"reason"`
}

type Result struct {
	Runs      []*model.SimulationRun
	Excluded  []Exclusion
	Scenarios model.OptimalScenarios
}

type Optimizer struct {
	engine  *finance.Engine
	workers int
}

func New(engine *finance.Engine) *Optimizer {
	if engine == nil {
		engine = finance.New()
	}
	return &Optimizer{engine: engine, workers: runtime.GOMAXPROCS(0)}
}

// WithWorkers bounds the number of candidates evaluated concurrently.
func (o *Optimizer) WithWorkers(n int) *Optimizer {
	cp := *o
	if n < 1 {
		n = 1
	}
	cp.workers = n
	return &cp
}

// Run evaluates every grid candidate and selects one champion per objective.
//
// Candidates are evaluated in parallel into fixed slots; champion selection is
// order-independent, so results do not depend on scheduling. Candidates that fail
// validation (including the roof cap) are excluded. Any other pipeline failure aborts
// the sweep with the candidate's index and design in the error.
func (o *Optimizer) Run(req Request) (*Result, error) {
	if err := req.Profile.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", finance.ErrInvalidProfile, err)
	}
	if err := req.Assumptions.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", finance.ErrInvalidAssumptions, err)
	}
	if err := req.Grid.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidGrid, err)
	}

	roofCap, hasRoofCap := finance.RoofCapKW(req.Profile, req.Assumptions)
	ceiling := req.Grid.PVMaxKW
	if ceiling == 0 {
		if !hasRoofCap {
			return nil, fmt.Errorf("%w: PVMaxKW is 0 and the profile has no roof area", ErrInvalidGrid)
		}
		ceiling = roofCap
	}

	candidates, err := req.Grid.Candidates(ceiling)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidGrid, err)
	}

	var excluded []Exclusion
	eligible := make([]model.SystemDesign, 0, len(candidates))
	for _, d := range candidates {
		if err := d.Validate(); err != nil {
			excluded = append(excluded, Exclusion{Design: d, Reason: err.Error()})
			continue
		}
		if hasRoofCap && d.PVSizeKW > roofCap+1e-9 {
			excluded = append(excluded, Exclusion{
				Design: d,
				Reason: fmt.Sprintf("PV size exceeds roof cap of %.1f kW", roofCap),
			})
			continue
		}
		eligible = append(eligible, d)
	}

	runs := make([]*model.SimulationRun, len(eligible))
	var g errgroup.Group
	g.SetLimit(o.workers)
	for i, d := range eligible {
		i, d := i, d
		g.Go(func() error {
			run, err := o.engine.Run(finance.Request{
				Profile:        req.Profile,
				Design:         d,
				Assumptions:    req.Assumptions,
				WithIncentives: req.WithIncentives,
			})
			if err != nil {
				return fmt.Errorf("candidate %d (%s): %w", i, d, err)
			}
			runs[i] = run
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Result{
		Runs:      runs,
		Excluded:  excluded,
		Scenarios: SelectChampions(runs),
	}, nil
}
