package cmd

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/forward415/client"
	"github.com/rustyeddy/forward415/exposure"
	"github.com/rustyeddy/forward415/internal/id"
	"github.com/rustyeddy/forward415/journal"
	"github.com/rustyeddy/forward415/loader"
	"github.com/rustyeddy/forward415/sim"
	"github.com/rustyeddy/forward415/trade"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Evaluate a hypothetical forward against a counterparty's book",
	Long: `Price a hypothetical forward, merge it into the counterparty's
real book from the 415 extract, and report outstanding exposure before
and after, together with credit-line and legal-lending-limit headroom
when a counterparty catalog is available.

The exposure formula is non-linear, so the merged book is always
re-aggregated as a whole; the delta is never the deal's standalone
exposure.

Examples:
  forward415 simulate --report 415.csv --counterparty 900.123.456 \
    --side Compra --notional 1000000 --spot 4100 --points 85.5 \
    --rate 4185.5 --ibr 0.095 --tenor 90`,
	RunE: runSimulate,
}

var (
	simReport       string
	simCatalog      string
	simCounterparty string
	simSide         string
	simNotional     float64
	simSpot         float64
	simPoints       float64
	simRate         float64
	simIBR          float64
	simTenor        int
	simSettlement   string
	simFactor       float64
	simLine         float64
	simCushion      float64
)

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().StringVarP(&simReport, "report", "r", "", "path to the 415 extract (required)")
	simulateCmd.Flags().StringVar(&simCatalog, "catalog", "", "counterparty catalog CSV (enables line checks)")
	simulateCmd.Flags().StringVar(&simCounterparty, "counterparty", "", "counterparty tax id (required)")
	simulateCmd.Flags().StringVar(&simSide, "side", "Compra", "client side: Compra or Venta")
	simulateCmd.Flags().Float64Var(&simNotional, "notional", 0, "notional in USD (required)")
	simulateCmd.Flags().Float64Var(&simSpot, "spot", 0, "spot rate")
	simulateCmd.Flags().Float64Var(&simPoints, "points", 0, "forward points")
	simulateCmd.Flags().Float64Var(&simRate, "rate", 0, "contracted forward rate (defaults to spot+points)")
	simulateCmd.Flags().Float64Var(&simIBR, "ibr", 0, "domestic IBR rate, decimal (defaults to the configured curve)")
	simulateCmd.Flags().IntVar(&simTenor, "tenor", 0, "tenor in days (overrides the calendar)")
	simulateCmd.Flags().StringVar(&simSettlement, "settlement", "", "settlement date YYYY-MM-DD (used when --tenor is absent)")
	simulateCmd.Flags().Float64Var(&simFactor, "factor", 0, "conversion factor (defaults to the book's)")
	simulateCmd.Flags().Float64Var(&simLine, "line", 0, "approved credit line (LCA)")
	simulateCmd.Flags().Float64Var(&simCushion, "cushion", 0, "credit-line cushion, fraction (0.10 = 10%)")
	simulateCmd.MarkFlagRequired("report")
	simulateCmd.MarkFlagRequired("counterparty")
	simulateCmd.MarkFlagRequired("notional")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	rep := loader.Report415{}
	if cfg.Report.Separator != "" {
		rep.Separator = rune(cfg.Report.Separator[0])
	}
	trades, err := rep.Load(simReport)
	if err != nil {
		return fmt.Errorf("load report: %w", err)
	}

	cal := businessCalendar()
	trades = trade.Enrich(cal, trades)

	cpID := trade.NormalizeTaxID(simCounterparty)
	var book []trade.Trade
	name := ""
	for _, t := range trades {
		if t.CounterpartyID != cpID {
			continue
		}
		book = append(book, t)
		if name == "" {
			name = t.CounterpartyName
		}
	}

	row := sim.Row{
		ClientSide:     simSide,
		NotionalUSD:    simNotional,
		Spot:           simSpot,
		ForwardPoints:  simPoints,
		ForwardRate:    simRate,
		IBRRate:        simIBR,
		SimulationDate: today(),
	}
	if simTenor > 0 {
		td := simTenor
		row.TenorDays = &td
	}
	if simSettlement != "" {
		d, err := time.Parse("2006-01-02", simSettlement)
		if err != nil {
			return fmt.Errorf("parse settlement date: %w", err)
		}
		row.SettlementDate = d
	}
	if row.TenorDays == nil && row.SettlementDate.IsZero() {
		return fmt.Errorf("either --tenor or --settlement is required")
	}
	if row.ForwardRate == 0 {
		row.ForwardRate = row.Spot + row.ForwardPoints
	}
	if row.IBRRate == 0 && cfg.Report.IBRCurve != "" && row.TenorDays != nil {
		curve, err := loader.LoadIBRCurve(cfg.Report.IBRCurve)
		if err != nil {
			return fmt.Errorf("load IBR curve: %w", err)
		}
		row.IBRRate = curve.Rate(*row.TenorDays)
	}

	factor := simFactor
	if factor == 0 {
		factor = bookFactor(book)
	}

	var pricing sim.Pricing
	if row.Spot > 0 {
		pricing = sim.Price(row)
		row.Right = trade.Some(pricing.Right)
		row.Obligation = trade.Some(pricing.Obligation)
	}

	baseline, merged := sim.Evaluate(cal, book, []sim.Row{row}, cpID, name, factor)
	delta := merged.OutstandingExposure - baseline.OutstandingExposure

	fmt.Printf("Counterparty %s (%s), %d live forwards\n\n", name, cpID, len(book))
	if row.Spot > 0 {
		fmt.Printf("Pricing (company %s):\n", sim.CompanySide(simSide))
		fmt.Printf("  forward rate: %.4f\n", pricing.ForwardRate)
		fmt.Printf("  right:        %.2f\n", pricing.Right)
		fmt.Printf("  obligation:   %.2f\n", pricing.Obligation)
		fmt.Printf("  fair value:   %.2f\n\n", pricing.FairValue)
	}
	fmt.Printf("Outstanding exposure:\n")
	fmt.Printf("  baseline: %.2f\n", baseline.OutstandingExposure)
	fmt.Printf("  merged:   %.2f\n", merged.OutstandingExposure)
	fmt.Printf("  delta:    %+.2f\n", delta)

	cp := client.Counterparty{TaxID: cpID, Name: name}
	if catalogPath := catalogFor(simCatalog); catalogPath != "" {
		entries, err := loader.LoadCounterparties(catalogPath)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		if found, ok := client.NewRegistry(entries).Lookup(cpID); ok {
			cp = found
		}
	}
	// The catalog carries no limit figures; flags and config supply them.
	if simLine > 0 {
		cp.CreditLine = simLine
		cp.CushionPct = simCushion
	}
	if cp.LLL == 0 {
		cp.LLL = cfg.Report.LargeExposure
	}
	if cp.CreditLine > 0 || cp.LLL > 0 {
		printLimits(cp, baseline.OutstandingExposure, delta)
	}

	j, err := openJournal()
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	if j != nil {
		defer j.Close()
		tenor := 0
		if row.TenorDays != nil {
			tenor = *row.TenorDays
		}
		err := j.RecordDeal(journal.DealRecord{
			DealID:           id.NewDeal(),
			CounterpartyID:   cpID,
			CounterpartyName: name,
			ClientSide:       simSide,
			NotionalUSD:      simNotional,
			Spot:             simSpot,
			ForwardPoints:    simPoints,
			ForwardRate:      row.ForwardRate,
			TenorDays:        tenor,
			RightValue:       row.Right.Or(0),
			ObligationValue:  row.Obligation.Or(0),
			NetValue:         row.Right.Or(0) - row.Obligation.Or(0),
		})
		if err != nil {
			return fmt.Errorf("journal: %w", err)
		}
	}

	return nil
}

// bookFactor takes the conversion factor from the first real trade
// carrying one.
func bookFactor(book []trade.Trade) float64 {
	for _, t := range book {
		if t.ConversionFactor.Valid {
			return t.ConversionFactor.Value
		}
	}
	logrus.Warn("no conversion factor in book, defaulting to 1.0")
	return 1.0
}

func catalogFor(flag string) string {
	if flag != "" {
		return flag
	}
	return cfg.Report.Catalog
}

func printLimits(cp client.Counterparty, outstanding, simulated float64) {
	if cp.CreditLine > 0 {
		fmt.Println("\nCredit line:")
		av := exposure.CreditLineAvailability(outstanding, simulated, cp.CreditLine, cp.CushionPct)
		fmt.Printf("  max limit:   %.2f\n", av.MaxLimit)
		fmt.Printf("  headroom:    %.2f\n", av.Headroom)
		fmt.Printf("  utilization: %.1f%%\n", av.UtilizationPct)
	}

	if cp.LLL > 0 {
		headroom, pct := exposure.LLLHeadroom(cp.LLL, outstanding+simulated)
		fmt.Printf("\nLegal lending limit:\n")
		fmt.Printf("  headroom: %.2f (%.1f%%)\n", headroom, pct)
	}
}

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
