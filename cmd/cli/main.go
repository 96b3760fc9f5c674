package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"solar-finance/internal/config"
	"solar-finance/internal/data"
	"solar-finance/internal/finance"
	"solar-finance/internal/model"
	"solar-finance/internal/optimize"
	"solar-finance/internal/portfolio"

	"github.com/spf13/pflag"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "simulate":
		cmdSimulate(os.Args[2:])
	case "optimize":
		cmdOptimize(os.Args[2:])
	case "portfolio":
		cmdPortfolio(os.Args[2:])
	case "size":
		cmdSize(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli simulate --profile site.json --pv 26 [--battery-kwh 100 --battery-kw 50] [--out results/cashflow.csv]")
	fmt.Println("  cli optimize --profile site.json [--pv-min 10 --pv-max 100 --pv-step 5]")
	fmt.Println("  cli portfolio --file portfolio.json [--save]")
	fmt.Println("  cli size --bill 300 --tariff 0.0779 --offset 0.7 [--roof 200]")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - every command accepts --config path/to/config.yaml; defaults are used otherwise")
	fmt.Println("  - simulate writes the yearly cashflow table as CSV when --out is given")
}

func loadConfig(path string) *config.Config {
	if path == "" {
		return config.Default()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fail(err)
	}
	return cfg
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}

func cmdSimulate(args []string) {
	fs := pflag.NewFlagSet("simulate", pflag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	profilePath := fs.String("profile", "", "Path to site profile JSON")
	pv := fs.Float64("pv", 0, "PV size (kW)")
	battKWh := fs.Float64("battery-kwh", 0, "Battery energy (kWh)")
	battKW := fs.Float64("battery-kw", 0, "Battery power (kW)")
	noIncentives := fs.Bool("no-incentives", false, "Ignore utility incentive and tax credits")
	outPath := fs.String("out", "", "Optional path to write the cashflow CSV")
	_ = fs.Parse(args)

	if *profilePath == "" {
		fmt.Println("--profile is required")
		os.Exit(2)
	}
	cfg := loadConfig(*cfgPath)
	profile, err := data.LoadProfile(*profilePath)
	if err != nil {
		fail(err)
	}

	run, err := finance.New().Run(finance.Request{
		Profile:        *profile,
		Design:         model.SystemDesign{PVSizeKW: *pv, BatteryEnergyKWh: *battKWh, BatteryPowerKW: *battKW},
		Assumptions:    cfg.Assumptions,
		WithIncentives: !*noIncentives,
	})
	if err != nil {
		fail(err)
	}

	printRun(run)
	fmt.Println()
	printCashflows(run.Cashflows)

	if *outPath != "" {
		if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
			fail(err)
		}
		if err := finance.WriteCashflowCSVFile(*outPath, run.Cashflows); err != nil {
			fail(err)
		}
		fmt.Printf("\nWrote %d rows to %s\n", len(run.Cashflows), *outPath)
	}
}

func cmdOptimize(args []string) {
	fs := pflag.NewFlagSet("optimize", pflag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	profilePath := fs.String("profile", "", "Path to site profile JSON")
	pvMin := fs.Float64("pv-min", -1, "Smallest PV size (kW); overrides the configured sweep")
	pvMax := fs.Float64("pv-max", -1, "Largest PV size (kW); 0 = roof cap")
	pvStep := fs.Float64("pv-step", -1, "PV step (kW)")
	workers := fs.Int("workers", 0, "Parallel evaluations (0 = GOMAXPROCS)")
	noIncentives := fs.Bool("no-incentives", false, "Ignore utility incentive and tax credits")
	_ = fs.Parse(args)

	if *profilePath == "" {
		fmt.Println("--profile is required")
		os.Exit(2)
	}
	cfg := loadConfig(*cfgPath)
	profile, err := data.LoadProfile(*profilePath)
	if err != nil {
		fail(err)
	}

	grid := cfg.Sweep
	if *pvMin >= 0 {
		grid.PVMinKW = *pvMin
	}
	if *pvMax >= 0 {
		grid.PVMaxKW = *pvMax
	}
	if *pvStep > 0 {
		grid.PVStepKW = *pvStep
	}

	opt := optimize.New(nil)
	if *workers > 0 {
		opt = opt.WithWorkers(*workers)
	}
	start := time.Now()
	res, err := opt.Run(optimize.Request{
		Profile:        *profile,
		Grid:           grid,
		Assumptions:    cfg.Assumptions,
		WithIncentives: !*noIncentives,
	})
	if err != nil {
		fail(err)
	}

	fmt.Printf("Evaluated %d designs in %s (%d excluded)\n\n", len(res.Runs), time.Since(start).Round(time.Millisecond), len(res.Excluded))
	fmt.Printf("%-22s %-34s %-12s %-8s %-8s %-8s\n", "objective", "design", "npv$", "irr", "payback", "self%")
	for _, o := range model.Objectives() {
		r := res.Scenarios.Champion(o)
		if r == nil {
			fmt.Printf("%-22s %s\n", o, "(no qualifying design)")
			continue
		}
		fmt.Printf("%-22s %-34s %-12.2f %-8s %-8s %-8.2f\n",
			o, r.Design, r.Metrics.NPV, fmtRate(r.Metrics.IRR), fmtPayback(r.Metrics), r.Metrics.SelfSufficiencyPct)
	}
	for _, e := range res.Excluded {
		fmt.Printf("excluded %s: %s\n", e.Design, e.Reason)
	}
}

func cmdPortfolio(args []string) {
	fs := pflag.NewFlagSet("portfolio", pflag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	filePath := fs.String("file", "", "Path to portfolio JSON")
	save := fs.Bool("save", false, "Rewrite the portfolio file with updated_at set to now")
	noIncentives := fs.Bool("no-incentives", false, "Ignore utility incentive and tax credits")
	_ = fs.Parse(args)

	if *filePath == "" {
		fmt.Println("--file is required")
		os.Exit(2)
	}
	cfg := loadConfig(*cfgPath)
	pf, err := data.LoadPortfolio(*filePath)
	if err != nil {
		fail(err)
	}

	engine := finance.New()
	runs := make([]*model.SimulationRun, 0, len(pf.Sites))
	overrides := map[string]portfolio.Overrides{}
	for _, s := range pf.Sites {
		run, err := engine.Run(finance.Request{
			Profile:        s.Profile,
			Design:         s.Design,
			Assumptions:    cfg.Assumptions,
			WithIncentives: !*noIncentives,
		})
		if err != nil {
			fail(fmt.Errorf("site %s: %w", s.Profile.SiteID, err))
		}
		runs = append(runs, run)
		overrides[s.Profile.SiteID] = s.Overrides
	}

	sites := portfolio.SitesFromRuns(runs, overrides)
	totals := portfolio.NewAggregator(cfg.Pricing.VolumeDiscount).Recalculate(portfolio.Portfolio{Name: pf.Name, Sites: sites})

	fmt.Printf("%-12s %-20s %-10s %-12s %-12s %-8s\n", "site", "name", "pv_kw", "net_capex$", "npv$", "irr")
	for _, s := range sites {
		pvKW, _ := s.Effective(portfolio.KPIPVSizeKW)
		capex, _ := s.Effective(portfolio.KPINetCapex)
		npv, _ := s.Effective(portfolio.KPINPV)
		var irr *float64
		if v, ok := s.Effective(portfolio.KPIIRR); ok {
			irr = &v
		}
		fmt.Printf("%-12s %-20s %-10.1f %-12.2f %-12.2f %-8s\n", s.SiteID, s.Name, pvKW, capex, npv, fmtRate(irr))
	}
	fmt.Println()
	fmt.Printf("Portfolio %q: %d buildings\n", pf.Name, totals.NumBuildings)
	fmt.Printf("  PV=%.1f kW  Battery=%.1f kWh\n", totals.TotalPVSizeKW, totals.TotalBatteryEnergyKWh)
	fmt.Printf("  Net CAPEX=$%.2f  Volume discount=%.1f%%  Discounted=$%.2f\n", totals.TotalNetCapex, totals.VolumeDiscountPct, totals.DiscountedNetCapex)
	fmt.Printf("  NPV=$%.2f  Weighted IRR=%s  Annual savings=$%.2f\n", totals.TotalNPV, fmtRate(totals.WeightedIRR), totals.TotalAnnualSavings)
	fmt.Printf("  CO2 avoided=%.1f kg/yr\n", totals.TotalCO2AvoidedKgPerYear)
	if totals.IRRUndefinedSites > 0 {
		fmt.Printf("  %d site(s) with $%.2f net CAPEX never pay back and are not in the weighted IRR\n",
			totals.IRRUndefinedSites, totals.IRRUndefinedNetCapex)
	}

	if *save {
		pf.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
		if err := data.SavePortfolio(pf, *filePath); err != nil {
			fail(err)
		}
		fmt.Printf("\nSaved %s (updated_at %s)\n", *filePath, pf.UpdatedAt)
	}
}

func cmdSize(args []string) {
	fs := pflag.NewFlagSet("size", pflag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	bill := fs.Float64("bill", 0, "Average monthly electricity bill ($)")
	consumption := fs.Float64("consumption", 0, "Annual consumption (kWh); used when --bill is not set")
	tariff := fs.Float64("tariff", 0, "Tariff ($/kWh)")
	offset := fs.Float64("offset", 1, "Fraction of consumption to offset (0..1]")
	roof := fs.Float64("roof", 0, "Usable roof area (m²); 0 = uncapped")
	_ = fs.Parse(args)

	cfg := loadConfig(*cfgPath)
	kwh := *consumption
	if *bill > 0 {
		v, err := finance.AnnualConsumptionFromBill(*bill, *tariff)
		if err != nil {
			fail(err)
		}
		kwh = v
	}

	s, err := finance.RecommendSize(model.SiteEnergyProfile{
		AnnualConsumptionKWh: kwh,
		TariffRate:           *tariff,
		RoofAreaM2:           *roof,
	}, *offset, cfg.Assumptions)
	if err != nil {
		fail(err)
	}

	fmt.Printf("Annual consumption: %.0f kWh\n", s.AnnualConsumptionKWh)
	fmt.Printf("Target production:  %.0f kWh (%.0f%% offset)\n", s.TargetProductionKWh, s.OffsetTarget*100)
	fmt.Printf("Recommended size:   %.2f kW", s.SizeKW)
	if s.RoofCapped {
		fmt.Printf(" (roof cap; uncapped %.2f kW)", s.UncappedSizeKW)
	}
	fmt.Println()
}

func printRun(r *model.SimulationRun) {
	inc := r.Incentives
	m := r.Metrics
	fmt.Printf("Design: %s\n", r.Design)
	fmt.Printf("Gross CAPEX=$%.2f  Utility=$%.2f  ITC=$%.2f  Tax shield=$%.2f  Net CAPEX=$%.2f\n",
		inc.GrossCapex, inc.UtilityIncentive, inc.FederalCredit, inc.TaxShield, inc.NetCapex)
	fmt.Printf("NPV=$%.2f  IRR=%s  Payback=%s  LCOE=%s\n", m.NPV, fmtRate(m.IRR), fmtPayback(m), fmtLCOE(m.LCOE))
	fmt.Printf("Production=%.0f kWh/yr  Year-1 savings=$%.2f  CO2 avoided=%.1f kg/yr  Self-sufficiency=%.1f%%\n",
		m.AnnualProductionKWh, m.FirstYearSavings, m.CO2AvoidedKgPerYear, m.SelfSufficiencyPct)
}

func printCashflows(entries []model.CashflowEntry) {
	fmt.Printf("%-5s %-12s %-9s %-11s %-9s %-12s %-12s\n", "year", "kwh", "tariff", "savings$", "o&m$", "net$", "cumulative$")
	for _, e := range entries {
		fmt.Printf("%-5d %-12.0f %-9.4f %-11.2f %-9.2f %-12.2f %-12.2f\n",
			e.Year, e.ProductionKWh, e.TariffRate, e.Savings, e.OMCost, e.NetCashflow, e.Cumulative)
	}
}

func fmtRate(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f%%", *v*100)
}

func fmtLCOE(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("$%.4f/kWh", *v)
}

func fmtPayback(m model.Metrics) string {
	if !m.BreaksEven {
		return fmt.Sprintf(">%d yr", m.PaybackYear)
	}
	return fmt.Sprintf("%d yr", m.PaybackYear)
}
