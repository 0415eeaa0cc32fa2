package journal

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/forward415/exposure"
)

// SQLiteJournal stores runs and deals in a local SQLite file.
type SQLiteJournal struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the database at path and ensures the schema.
func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open journal db: %w", err)
	}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create journal schema: %w", err)
	}
	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordRun(r RunRecord) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	sat := 0
	if r.Result.MGPSaturated {
		sat = 1
	}
	_, err := j.db.Exec(`INSERT OR REPLACE INTO exposure_runs
		(run_id, scope, scope_id, scope_name, trade_count,
		 total_vne, total_net_value, total_epfp, conversion_factor,
		 mgp, mgp_saturated, crp, outstanding, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Scope, r.ScopeID, r.ScopeName, r.Result.OperationsCount,
		r.Result.TotalEquivalentNotional, r.Result.TotalNetValue,
		r.Result.PotentialFutureExposure, r.Result.ConversionFactor,
		r.Result.MarketGapProvision, sat, r.Result.CreditRiskPremium,
		r.Result.OutstandingExposure, r.CreatedAt)
	if err != nil {
		return fmt.Errorf("record run %s/%s: %w", r.Scope, r.ScopeID, err)
	}
	return nil
}

func (j *SQLiteJournal) RecordDeal(d DealRecord) error {
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now()
	}
	_, err := j.db.Exec(`INSERT OR REPLACE INTO simulated_deals
		(deal_id, counterparty_id, counterparty_name, client_side,
		 notional_usd, spot, forward_points, forward_rate, tenor_days,
		 right_value, obligation_value, net_value, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.DealID, d.CounterpartyID, d.CounterpartyName, d.ClientSide,
		d.NotionalUSD, d.Spot, d.ForwardPoints, d.ForwardRate, d.TenorDays,
		d.RightValue, d.ObligationValue, d.NetValue, d.CreatedAt)
	if err != nil {
		return fmt.Errorf("record deal %s: %w", d.DealID, err)
	}
	return nil
}

// ListRuns returns the saved runs for one scope id, newest first.
func (j *SQLiteJournal) ListRuns(scope, scopeID string) ([]RunRecord, error) {
	rows, err := j.db.Query(`SELECT run_id, scope, scope_id, scope_name,
		trade_count, total_vne, total_net_value, total_epfp,
		conversion_factor, mgp, mgp_saturated, crp, outstanding, created_at
		FROM exposure_runs
		WHERE scope = ? AND scope_id = ?
		ORDER BY created_at DESC`, scope, scopeID)
	if err != nil {
		return nil, fmt.Errorf("list runs %s/%s: %w", scope, scopeID, err)
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var r RunRecord
		var res exposure.Result
		var sat int
		err := rows.Scan(&r.RunID, &r.Scope, &r.ScopeID, &r.ScopeName,
			&res.OperationsCount, &res.TotalEquivalentNotional, &res.TotalNetValue,
			&res.PotentialFutureExposure, &res.ConversionFactor,
			&res.MarketGapProvision, &sat, &res.CreditRiskPremium,
			&res.OutstandingExposure, &r.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		res.MGPSaturated = sat != 0
		r.Result = res
		out = append(out, r)
	}
	return out, rows.Err()
}

// ListDeals returns the simulated deals for one counterparty, newest first.
func (j *SQLiteJournal) ListDeals(counterpartyID string) ([]DealRecord, error) {
	rows, err := j.db.Query(`SELECT deal_id, counterparty_id, counterparty_name,
		client_side, notional_usd, spot, forward_points, forward_rate,
		tenor_days, right_value, obligation_value, net_value, created_at
		FROM simulated_deals
		WHERE counterparty_id = ?
		ORDER BY created_at DESC`, counterpartyID)
	if err != nil {
		return nil, fmt.Errorf("list deals %s: %w", counterpartyID, err)
	}
	defer rows.Close()

	var out []DealRecord
	for rows.Next() {
		var d DealRecord
		err := rows.Scan(&d.DealID, &d.CounterpartyID, &d.CounterpartyName,
			&d.ClientSide, &d.NotionalUSD, &d.Spot, &d.ForwardPoints,
			&d.ForwardRate, &d.TenorDays, &d.RightValue, &d.ObligationValue,
			&d.NetValue, &d.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan deal: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
