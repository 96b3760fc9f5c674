package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solar-finance/internal/model"
)

func flatCashflows(cf float64, years int) []model.CashflowEntry {
	out := make([]model.CashflowEntry, years)
	for i := range out {
		out[i] = model.CashflowEntry{Year: i + 1, NetCashflow: cf}
	}
	return out
}

func TestNPV_ReferenceSite(t *testing.T) {
	entries := ProjectCashflows(referenceProjection())
	assert.InDelta(t, 24432.36, NPV(15288, entries, 0.06), 0.01)
}

func TestNPV_AnnuityClosedForm(t *testing.T) {
	// 1000/yr for 10 years at 5%: annuity factor 7.721735
	npv := NPV(5000, flatCashflows(1000, 10), 0.05)
	assert.InDelta(t, 7721.73-5000, npv, 0.01)
}

func TestNPV_StrictlyDecreasingInRate(t *testing.T) {
	entries := ProjectCashflows(referenceProjection())
	rates := []float64{-0.02, 0, 0.02, 0.05, 0.08, 0.12, 0.2, 0.5}
	prev := NPV(15288, entries, rates[0])
	for _, r := range rates[1:] {
		cur := NPV(15288, entries, r)
		assert.Less(t, cur, prev, "rate %v", r)
		prev = cur
	}
}

func TestIRR_ReferenceSite(t *testing.T) {
	entries := ProjectCashflows(referenceProjection())
	irr := IRR(15288, entries)
	require.NotNil(t, irr)
	assert.InDelta(t, 0.179414, *irr, 1e-5)
	assert.InDelta(t, 0, NPV(15288, entries, *irr), 1e-4)
}

func TestIRR_NeverRecovers(t *testing.T) {
	assert.Nil(t, IRR(100000, flatCashflows(100, 25)))
	assert.Nil(t, IRR(100000, flatCashflows(-50, 25)))
}

func TestIRR_NoInvestment(t *testing.T) {
	assert.Nil(t, IRR(0, flatCashflows(100, 25)))
	assert.Nil(t, IRR(1000, nil))
}

func TestIRR_ExactBreakEvenIsZero(t *testing.T) {
	irr := IRR(1000, flatCashflows(100, 10))
	require.NotNil(t, irr)
	assert.Equal(t, 0.0, *irr)
}

func TestLCOE_UsesTruncatedHorizon(t *testing.T) {
	a := model.DefaultAssumptions()
	lcoe := LCOE(15288, 32500, a)
	require.NotNil(t, lcoe)
	assert.InDelta(t, 0.024781, *lcoe, 1e-6)

	a.LCOEHorizonYears = 25
	longer := LCOE(15288, 32500, a)
	require.NotNil(t, longer)
	assert.Less(t, *longer, *lcoe)
}

func TestLCOE_ZeroProduction(t *testing.T) {
	assert.Nil(t, LCOE(15288, 0, model.DefaultAssumptions()))
}

func TestCO2AvoidedKg(t *testing.T) {
	a := model.DefaultAssumptions()
	assert.InDelta(t, 32500*0.0017, CO2AvoidedKg(32500, a), 1e-9)
}
