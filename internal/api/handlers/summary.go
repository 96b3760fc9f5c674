package handlers

import (
	"solar-finance/internal/api/models"
	"solar-finance/internal/model"
)

func buildSummary(run *model.SimulationRun) models.SimulationSummary {
	m := run.Metrics
	s := models.SimulationSummary{
		NPV:                 m.NPV,
		IRR:                 m.IRR,
		PaybackYear:         m.PaybackYear,
		BreaksEven:          m.BreaksEven,
		LCOE:                m.LCOE,
		AnnualProductionKWh: m.AnnualProductionKWh,
		FirstYearSavings:    m.FirstYearSavings,
		CO2AvoidedKgPerYear: m.CO2AvoidedKgPerYear,
		SelfSufficiencyPct:  m.SelfSufficiencyPct,
	}
	if n := len(run.Cashflows); n > 0 {
		s.CumulativeCashflow = run.Cashflows[n-1].Cumulative
	}
	return s
}

func buildSimulationResponse(run *model.SimulationRun, includeCashflows bool) models.SimulationResponse {
	resp := models.SimulationResponse{
		ID:         run.ID,
		Status:     "completed",
		CreatedAt:  run.CreatedAt,
		Design:     run.Design,
		Incentives: run.Incentives,
		Summary:    buildSummary(run),
	}
	if includeCashflows {
		resp.Cashflows = run.Cashflows
	}
	return resp
}
