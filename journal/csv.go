package journal

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// CSVJournal appends runs and deals to two plain CSV files in a
// directory. It is the zero-setup alternative to SQLiteJournal.
type CSVJournal struct {
	runsFile  *os.File
	dealsFile *os.File
	runs      *csv.Writer
	deals     *csv.Writer
}

var runHeader = []string{
	"run_id", "scope", "scope_id", "scope_name", "operations",
	"total_vne", "total_net_value", "total_epfp", "conversion_factor",
	"mgp", "mgp_saturated", "crp", "outstanding", "created_at",
}

var dealHeader = []string{
	"deal_id", "counterparty_id", "counterparty_name", "client_side",
	"notional_usd", "spot", "forward_points", "forward_rate", "tenor_days",
	"right_value", "obligation_value", "net_value", "created_at",
}

// NewCSV creates (or appends to) runs.csv and deals.csv under dir.
// Headers are written only when a file is new.
func NewCSV(dir string) (*CSVJournal, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create journal dir: %w", err)
	}

	j := &CSVJournal{}
	var err error
	j.runsFile, j.runs, err = openCSV(filepath.Join(dir, "runs.csv"), runHeader)
	if err != nil {
		return nil, err
	}
	j.dealsFile, j.deals, err = openCSV(filepath.Join(dir, "deals.csv"), dealHeader)
	if err != nil {
		j.runsFile.Close()
		return nil, err
	}
	return j, nil
}

func openCSV(path string, header []string) (*os.File, *csv.Writer, error) {
	fi, err := os.Stat(path)
	fresh := err != nil || fi.Size() == 0

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	if fresh {
		if err := w.Write(header); err != nil {
			f.Close()
			return nil, nil, fmt.Errorf("write header %s: %w", path, err)
		}
		w.Flush()
	}
	return f, w, nil
}

func (j *CSVJournal) RecordRun(r RunRecord) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	rec := []string{
		r.RunID, r.Scope, r.ScopeID, r.ScopeName,
		strconv.Itoa(r.Result.OperationsCount),
		f(r.Result.TotalEquivalentNotional),
		f(r.Result.TotalNetValue),
		f(r.Result.PotentialFutureExposure),
		f(r.Result.ConversionFactor),
		f(r.Result.MarketGapProvision),
		strconv.FormatBool(r.Result.MGPSaturated),
		f(r.Result.CreditRiskPremium),
		f(r.Result.OutstandingExposure),
		r.CreatedAt.Format(time.RFC3339),
	}
	if err := j.runs.Write(rec); err != nil {
		return fmt.Errorf("write run record: %w", err)
	}
	j.runs.Flush()
	return j.runs.Error()
}

func (j *CSVJournal) RecordDeal(d DealRecord) error {
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now()
	}
	rec := []string{
		d.DealID, d.CounterpartyID, d.CounterpartyName, d.ClientSide,
		f(d.NotionalUSD), f(d.Spot), f(d.ForwardPoints), f(d.ForwardRate),
		strconv.Itoa(d.TenorDays),
		f(d.RightValue), f(d.ObligationValue), f(d.NetValue),
		d.CreatedAt.Format(time.RFC3339),
	}
	if err := j.deals.Write(rec); err != nil {
		return fmt.Errorf("write deal record: %w", err)
	}
	j.deals.Flush()
	return j.deals.Error()
}

func (j *CSVJournal) Close() error {
	j.runs.Flush()
	j.deals.Flush()
	err1 := j.runsFile.Close()
	err2 := j.dealsFile.Close()
	if err1 != nil {
		return err1
	}
	return err2
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
