package finance

import (
	"errors"
	"fmt"
	"time"

	"solar-finance/internal/model"

	"github.com/google/uuid"
)

var (
	ErrInvalidProfile     = errors.New("invalid site profile")
	ErrInvalidDesign      = errors.New("invalid system design")
	ErrInvalidAssumptions = errors.New("invalid assumptions")
)

// Request is one "run simulation" call.
type Request struct {
	Profile        model.SiteEnergyProfile
	Design         model.SystemDesign
	Assumptions    model.FinancialAssumptions
	WithIncentives bool
}

type Engine struct {
	now   func() time.Time
	newID func() string
}

func New() *Engine {
	return &Engine{
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
}

// WithClock replaces the timestamp source. Used by tests and batch jobs that need
// reproducible CreatedAt values.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	cp := *e
	cp.now = now
	return &cp
}

// Run executes incentives -> cashflows -> metrics for a single design.
// Any validation failure is returned before the pipeline starts; a partial run is never
// returned.
func (e *Engine) Run(req Request) (*model.SimulationRun, error) {
	if err := req.Profile.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}
	if err := req.Design.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDesign, err)
	}
	if err := req.Assumptions.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAssumptions, err)
	}

	a := req.Assumptions
	gross := GrossCapex(req.Design, a)
	incentives := ComputeIncentives(gross, req.Design.PVSizeKW, req.WithIncentives, a)

	production := AnnualProduction(req.Design, a)
	cashflows := ProjectCashflows(ProjectionInput{
		NetCapex:             incentives.NetCapex,
		GrossCapex:           gross,
		InitialProductionKWh: production,
		InitialTariff:        req.Profile.TariffRate,
		InitialDemandSavings: DemandSavings(req.Profile, req.Design, a),
		Assumptions:          a,
	})

	metrics := ComputeMetrics(incentives.NetCapex, cashflows, production, a)
	metrics.SelfSufficiencyPct = SelfSufficiency(req.Profile, req.Design, production, a)
	if err := checkFinite(metrics); err != nil {
		return nil, fmt.Errorf("design %s: %w", req.Design, err)
	}

	return &model.SimulationRun{
		ID:             e.newID(),
		SiteID:         req.Profile.SiteID,
		CreatedAt:      e.now().UTC(),
		Profile:        req.Profile,
		Design:         req.Design,
		Assumptions:    a,
		WithIncentives: req.WithIncentives,
		Incentives:     incentives,
		Cashflows:      cashflows,
		Metrics:        metrics,
	}, nil
}

// ComputeMetrics derives the financial summary from a projected series.
func ComputeMetrics(netCapex float64, cashflows []model.CashflowEntry, annualProductionKWh float64, a model.FinancialAssumptions) model.Metrics {
	payback, breaksEven := PaybackYear(cashflows)
	m := model.Metrics{
		NPV:                 NPV(netCapex, cashflows, a.DiscountRate),
		IRR:                 IRR(netCapex, cashflows),
		PaybackYear:         payback,
		BreaksEven:          breaksEven,
		LCOE:                LCOE(netCapex, annualProductionKWh, a),
		AnnualProductionKWh: annualProductionKWh,
		CO2AvoidedKgPerYear: CO2AvoidedKg(annualProductionKWh, a),
	}
	if len(cashflows) > 0 {
		m.FirstYearSavings = cashflows[0].Savings
	}
	return m
}

func checkFinite(m model.Metrics) error {
	switch {
	case !finite(m.NPV):
		return errors.New("NPV is not finite")
	case !finite(m.FirstYearSavings):
		return errors.New("first-year savings is not finite")
	case !finite(m.SelfSufficiencyPct):
		return errors.New("self-sufficiency is not finite")
	}
	return nil
}
