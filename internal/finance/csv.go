package finance

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"solar-finance/internal/model"
)

var cashflowHeader = []string{
	"year",
	"production_kwh",
	"tariff_rate",
	"energy_savings",
	"demand_savings",
	"savings",
	"om_cost",
	"net_cashflow",
	"cumulative",
}

// WriteCashflowCSV writes one row per projected year.
func WriteCashflowCSV(out io.Writer, entries []model.CashflowEntry) error {
	w := csv.NewWriter(out)
	if err := w.Write(cashflowHeader); err != nil {
		return err
	}
	for _, e := range entries {
		row := []string{
			strconv.Itoa(e.Year),
			fmtFloat(e.ProductionKWh),
			fmtFloat(e.TariffRate),
			fmtFloat(e.EnergySavings),
			fmtFloat(e.DemandSavings),
			fmtFloat(e.Savings),
			fmtFloat(e.OMCost),
			fmtFloat(e.NetCashflow),
			fmtFloat(e.Cumulative),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func WriteCashflowCSVFile(path string, entries []model.CashflowEntry) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteCashflowCSV(f, entries)
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
