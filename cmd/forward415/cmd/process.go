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
	"github.com/rustyeddy/forward415/trade"
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Compute outstanding exposure from a Format 415 extract",
	Long: `Load a Format 415 extract, enrich every active forward with its
business-day tenor and equivalent notional, and aggregate outstanding
exposure per counterparty and per connected economic group.

The report may be plain CSV or compressed (.gz, .xz, .zip).

Examples:
  forward415 process --report 415_20250303.csv
  forward415 process --report 415_20250303.csv.gz --catalog clients.csv`,
	RunE: runProcess,
}

var (
	processReport  string
	processCatalog string
)

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVarP(&processReport, "report", "r", "", "path to the 415 extract (required)")
	processCmd.Flags().StringVar(&processCatalog, "catalog", "", "counterparty catalog CSV (enables group aggregation)")
	processCmd.MarkFlagRequired("report")
}

func runProcess(cmd *cobra.Command, args []string) error {
	rep := loader.Report415{}
	if cfg.Report.Separator != "" {
		rep.Separator = rune(cfg.Report.Separator[0])
	}

	trades, err := rep.Load(processReport)
	if err != nil {
		return fmt.Errorf("load report: %w", err)
	}

	cal := businessCalendar()
	trades = trade.Enrich(cal, trades)

	catalogPath := processCatalog
	if catalogPath == "" {
		catalogPath = cfg.Report.Catalog
	}
	var registry *client.Registry
	if catalogPath != "" {
		entries, err := loader.LoadCounterparties(catalogPath)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		registry = client.NewRegistry(entries)
	}

	j, err := openJournal()
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	if j != nil {
		defer j.Close()
	}

	runID := id.New()
	now := time.Now()

	byID := make(map[string][]trade.Trade)
	names := make(map[string]string)
	for _, t := range trades {
		byID[t.CounterpartyID] = append(byID[t.CounterpartyID], t)
		if names[t.CounterpartyID] == "" {
			names[t.CounterpartyID] = t.CounterpartyName
		}
	}

	results := make(map[string]exposure.Result, len(byID))
	for cp, ts := range byID {
		res, err := exposure.AggregateStrict(ts)
		if err != nil {
			logrus.WithField("counterparty", cp).Warn(err)
			res = exposure.Aggregate(ts)
		}
		results[cp] = res
	}

	fmt.Printf("Loaded %d active forwards, %d counterparties\n\n", len(trades), len(results))
	fmt.Println("Per counterparty:")
	for _, cp := range exposure.SortedKeys(results) {
		res := results[cp]
		printResult(cp, names[cp], res)
		if j != nil {
			if err := j.RecordRun(journal.RunRecord{
				RunID: runID, Scope: journal.ScopeCounterparty,
				ScopeID: cp, ScopeName: names[cp],
				Result: res, CreatedAt: now,
			}); err != nil {
				return fmt.Errorf("journal: %w", err)
			}
		}
	}

	if registry != nil {
		groups := exposure.ByGroup(registry, trades)
		if len(groups) > 0 {
			fmt.Println("\nPer connected group:")
			for _, g := range exposure.SortedKeys(groups) {
				res := groups[g]
				printResult(g, "", res)
				if j != nil {
					if err := j.RecordRun(journal.RunRecord{
						RunID: runID, Scope: journal.ScopeGroup,
						ScopeID: g, Result: res, CreatedAt: now,
					}); err != nil {
						return fmt.Errorf("journal: %w", err)
					}
				}
			}
		}
	}

	return nil
}

func printResult(scopeID, name string, res exposure.Result) {
	label := scopeID
	if name != "" {
		label = fmt.Sprintf("%s (%s)", name, scopeID)
	}
	fmt.Printf("  %s\n", label)
	fmt.Printf("    operations:  %d\n", res.OperationsCount)
	fmt.Printf("    net value:   %.2f\n", res.TotalNetValue)
	fmt.Printf("    total VNE:   %.6f\n", res.TotalEquivalentNotional)
	fmt.Printf("    PFE:         %.6f\n", res.PotentialFutureExposure)
	fmt.Printf("    MGP:         %.6f", res.MarketGapProvision)
	if res.MGPSaturated {
		fmt.Printf("  (saturated)")
	}
	fmt.Println()
	fmt.Printf("    outstanding: %.2f\n", res.OutstandingExposure)
}
