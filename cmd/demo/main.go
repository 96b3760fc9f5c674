package main

import (
	"fmt"
	"math"
	"os"

	"solar-finance/internal/config"
	"solar-finance/internal/finance"
	"solar-finance/internal/model"
	"solar-finance/internal/optimize"
	"solar-finance/internal/portfolio"

	"github.com/spf13/pflag"
)

// Demo:
// - Size a PV array from a monthly bill and offset target
// - Simulate it with and without incentives
// - Sweep nearby sizes with a battery option and report the champions
// - Roll three copies of the site into a portfolio
func main() {
	cfgPath := pflag.String("config", "", "Path to YAML config (optional)")
	bill := pflag.Float64("bill", 300, "Monthly electricity bill ($)")
	tariff := pflag.Float64("tariff", 0.0779, "Tariff ($/kWh)")
	offset := pflag.Float64("offset", 0.7, "Offset target (0..1]")
	outCSV := pflag.String("out", "", "Optional path to write the cashflow CSV")
	pflag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			panic(err)
		}
	}
	a := cfg.Assumptions

	consumption, err := finance.AnnualConsumptionFromBill(*bill, *tariff)
	if err != nil {
		panic(err)
	}
	profile := model.SiteEnergyProfile{
		SiteID:               "demo-site",
		Name:                 "Demo office",
		BuildingType:         "office",
		AnnualConsumptionKWh: consumption,
		PeakDemandKW:         40,
		TariffRate:           *tariff,
	}

	sizing, err := finance.RecommendSize(profile, *offset, a)
	if err != nil {
		panic(err)
	}
	sizeKW := math.Round(sizing.SizeKW)
	fmt.Printf("Consumption %.0f kWh/yr, target %.0f kWh -> %.2f kW (simulating %.0f kW)\n\n",
		sizing.AnnualConsumptionKWh, sizing.TargetProductionKWh, sizing.SizeKW, sizeKW)

	engine := finance.New()
	design := model.SystemDesign{PVSizeKW: sizeKW}
	for _, withIncentives := range []bool{true, false} {
		run, err := engine.Run(finance.Request{Profile: profile, Design: design, Assumptions: a, WithIncentives: withIncentives})
		if err != nil {
			panic(err)
		}
		m := run.Metrics
		fmt.Printf("incentives=%-5v net capex=$%-10.2f npv=$%-10.2f irr=%-7s payback=%d breaks_even=%v\n",
			withIncentives, run.Incentives.NetCapex, m.NPV, pct(m.IRR), m.PaybackYear, m.BreaksEven)

		if withIncentives && *outCSV != "" {
			if err := finance.WriteCashflowCSVFile(*outCSV, run.Cashflows); err != nil {
				panic(err)
			}
			fmt.Fprintf(os.Stderr, "wrote %s\n", *outCSV)
		}
	}

	res, err := optimize.New(engine).Run(optimize.Request{
		Profile: profile,
		Grid: optimize.Grid{
			PVMinKW:              math.Max(sizeKW-10, 5),
			PVMaxKW:              sizeKW + 10,
			PVStepKW:             5,
			BatteryEnergiesKWh:   []float64{0, 40, 80},
			CoupledDurationHours: 2,
		},
		Assumptions:    a,
		WithIncentives: true,
	})
	if err != nil {
		panic(err)
	}
	fmt.Printf("\nSweep: %d designs\n", len(res.Runs))
	for _, o := range model.Objectives() {
		r := res.Scenarios.Champion(o)
		if r == nil {
			fmt.Printf("  %-22s none\n", o)
			continue
		}
		fmt.Printf("  %-22s %-34s npv=$%.2f payback=%d\n", o, r.Design, r.Metrics.NPV, r.Metrics.PaybackYear)
	}

	best := res.Scenarios.Champion(model.ObjectiveBestNPV)
	if best == nil {
		return
	}
	var runs []*model.SimulationRun
	for i := 1; i <= 3; i++ {
		cp := *best
		cp.SiteID = fmt.Sprintf("demo-site-%d", i)
		runs = append(runs, &cp)
	}
	totals := portfolio.NewAggregator(cfg.Pricing.VolumeDiscount).Recalculate(portfolio.Portfolio{
		Name:  "demo",
		Sites: portfolio.SitesFromRuns(runs, nil),
	})
	fmt.Printf("\nPortfolio of %d: net capex=$%.2f discount=%.1f%% -> $%.2f, npv=$%.2f\n",
		totals.NumBuildings, totals.TotalNetCapex, totals.VolumeDiscountPct, totals.DiscountedNetCapex, totals.TotalNPV)
}

func pct(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", *v*100)
}
