package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/forward415/calendar"
	"github.com/rustyeddy/forward415/config"
	"github.com/rustyeddy/forward415/journal"
	"github.com/rustyeddy/forward415/logger"
)

var rootCmd = &cobra.Command{
	Use:   "forward415",
	Short: "Credit-exposure engine for FX forward books reported on Format 415",
	Long: `Forward415 computes regulatory credit exposure for peso/dollar
forward books reported on the Format 415 regulatory extract.

It provides tools for:
  - Loading and filtering Format 415 extracts (plain, gzip, xz or zip)
  - Enriching trades with business-day tenors on the Colombian calendar
  - Aggregating outstanding exposure per counterparty and economic group
  - Simulating hypothetical deals against credit lines and the legal
    lending limit
  - Journaling runs and simulated deals to SQLite or CSV`,
	SilenceUsage: true,
}

var (
	cfgPath  string
	logLevel string
	cfg      *config.Config
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		var err error
		if cfgPath != "" {
			cfg, err = config.LoadFromFile(cfgPath)
			if err != nil {
				return err
			}
		} else {
			cfg = config.Default()
		}
		level := cfg.Logging.Level
		if logLevel != "" {
			level = logLevel
		}
		return logger.Configure(level, cfg.Logging.File)
	}
}

// businessCalendar builds the calendar selected by the configuration.
func businessCalendar() *calendar.Calendar {
	var cal *calendar.Calendar
	switch {
	case cfg.Calendar.Country == "none":
		cal = calendar.New()
	case cfg.Calendar.Years > 0:
		years := make([]int, 0, cfg.Calendar.Years)
		// Start the holiday window one year back so late settlements
		// of last year's trades still resolve.
		start := currentYear() - 1
		for y := start; y < start+cfg.Calendar.Years; y++ {
			years = append(years, y)
		}
		cal = calendar.NewColombia(years...)
	default:
		cal = calendar.NewColombia()
	}

	for _, d := range cfg.Calendar.ExtraHolidays {
		// Validated on load; unparseable dates cannot reach here.
		if t, err := time.Parse("2006-01-02", d); err == nil {
			cal.AddHolidays(t)
		}
	}
	return cal
}

func currentYear() int {
	return time.Now().Year()
}

// openJournal returns the configured journal, or nil when disabled.
func openJournal() (journal.Journal, error) {
	switch cfg.Journal.Type {
	case "sqlite":
		return journal.NewSQLite(cfg.Journal.DBPath)
	case "csv":
		return journal.NewCSV(cfg.Journal.Dir)
	case "none", "":
		return nil, nil
	}
	return nil, fmt.Errorf("unknown journal type %q", cfg.Journal.Type)
}
