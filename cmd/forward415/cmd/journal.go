package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/forward415/journal"
	"github.com/rustyeddy/forward415/trade"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query journaled runs and simulated deals",
	Long: `Query exposure runs and simulated deals from the SQLite journal.

Subcommands:
  runs  - List saved runs for a counterparty or group
  deals - List simulated deals for a counterparty

Examples:
  forward415 journal runs 900123456
  forward415 journal runs "Grupo Sur" --group
  forward415 journal deals 900123456`,
}

var journalRunsCmd = &cobra.Command{
	Use:   "runs <scope-id>",
	Short: "List saved exposure runs for one counterparty or group",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalRuns,
}

var journalDealsCmd = &cobra.Command{
	Use:   "deals <counterparty>",
	Short: "List simulated deals for one counterparty",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalDeals,
}

var (
	journalDBPath string
	journalGroup  bool
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalRunsCmd)
	journalCmd.AddCommand(journalDealsCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "", "path to SQLite journal DB (defaults to the configured one)")
	journalRunsCmd.Flags().BoolVar(&journalGroup, "group", false, "treat the scope id as a connected group name")
}

func openQueryJournal() (*journal.SQLiteJournal, error) {
	path := journalDBPath
	if path == "" {
		path = cfg.Journal.DBPath
	}
	if path == "" {
		return nil, fmt.Errorf("no SQLite journal configured; pass --db")
	}
	return journal.NewSQLite(path)
}

func runJournalRuns(cmd *cobra.Command, args []string) error {
	j, err := openQueryJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	scope := journal.ScopeCounterparty
	scopeID := trade.NormalizeTaxID(args[0])
	if journalGroup {
		scope = journal.ScopeGroup
		scopeID = args[0]
	}

	runs, err := j.ListRuns(scope, scopeID)
	if err != nil {
		return fmt.Errorf("query runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Printf("No runs recorded for %s %q\n", scope, scopeID)
		return nil
	}

	for _, r := range runs {
		fmt.Printf("%s  run %s  ops=%d  outstanding=%.2f  mgp=%.6f\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.RunID,
			r.Result.OperationsCount, r.Result.OutstandingExposure,
			r.Result.MarketGapProvision)
	}
	return nil
}

func runJournalDeals(cmd *cobra.Command, args []string) error {
	j, err := openQueryJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	deals, err := j.ListDeals(trade.NormalizeTaxID(args[0]))
	if err != nil {
		return fmt.Errorf("query deals: %w", err)
	}
	if len(deals) == 0 {
		fmt.Printf("No simulated deals for %q\n", args[0])
		return nil
	}

	for _, d := range deals {
		fmt.Printf("%s  %s  %s %s  USD %.0f @ %.4f  tenor=%dd  net=%.2f\n",
			d.CreatedAt.Format("2006-01-02 15:04"), d.DealID,
			d.ClientSide, d.CounterpartyName, d.NotionalUSD,
			d.ForwardRate, d.TenorDays, d.NetValue)
	}
	return nil
}
