package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solar-finance/internal/model"
)

func referenceProjection() ProjectionInput {
	a := model.DefaultAssumptions()
	return ProjectionInput{
		NetCapex:             15288,
		GrossCapex:           36400,
		InitialProductionKWh: 26 * 1250,
		InitialTariff:        0.0779,
		Assumptions:          a,
	}
}

func TestProjectCashflows_CompoundsBeforeFirstYear(t *testing.T) {
	in := referenceProjection()
	entries := ProjectCashflows(in)
	require.Len(t, entries, 25)

	first := entries[0]
	assert.Equal(t, 1, first.Year)
	assert.InDelta(t, 32500*0.995, first.ProductionKWh, 1e-9)
	assert.InDelta(t, 0.0779*1.03, first.TariffRate, 1e-12)
	assert.InDelta(t, 2594.66, first.EnergySavings, 0.01)
	assert.InDelta(t, 182, first.OMCost, 1e-9)
	assert.InDelta(t, 2412.66, first.NetCashflow, 0.01)
	assert.InDelta(t, -12875.34, first.Cumulative, 0.01)

	for i, e := range entries {
		assert.Equal(t, i+1, e.Year)
		if i > 0 {
			assert.InDelta(t, entries[i-1].Cumulative+e.NetCashflow, e.Cumulative, 1e-6)
		}
	}
}

func TestProjectCashflows_Deterministic(t *testing.T) {
	in := referenceProjection()
	assert.Equal(t, ProjectCashflows(in), ProjectCashflows(in))
}

func TestProjectCashflows_DemandSavingsInflate(t *testing.T) {
	in := referenceProjection()
	in.InitialDemandSavings = 1000
	entries := ProjectCashflows(in)
	assert.InDelta(t, 1030, entries[0].DemandSavings, 1e-9)
	assert.InDelta(t, entries[0].EnergySavings+1030, entries[0].Savings, 1e-9)
}

func TestPaybackYear_ReferenceSite(t *testing.T) {
	entries := ProjectCashflows(referenceProjection())
	year, ok := PaybackYear(entries)
	assert.True(t, ok)
	assert.Equal(t, 6, year)
	assert.Less(t, entries[4].Cumulative, 0.0)
	assert.GreaterOrEqual(t, entries[5].Cumulative, 0.0)
}

func TestPaybackYear_NeverBreaksEven(t *testing.T) {
	in := referenceProjection()
	in.NetCapex = 1e7
	entries := ProjectCashflows(in)
	year, ok := PaybackYear(entries)
	assert.False(t, ok)
	assert.Equal(t, 25, year)
}

func TestPaybackYear_ZeroNetCost(t *testing.T) {
	in := referenceProjection()
	in.NetCapex = 0
	year, ok := PaybackYear(ProjectCashflows(in))
	assert.True(t, ok)
	assert.Equal(t, 1, year)
}
