package journal

// Schema creates the journal tables. Safe to run on an existing database.
const Schema = `
CREATE TABLE IF NOT EXISTS exposure_runs (
    run_id           TEXT NOT NULL,
    scope            TEXT NOT NULL,
    scope_id         TEXT NOT NULL,
    scope_name       TEXT,
    trade_count      INTEGER NOT NULL,
    total_vne        REAL NOT NULL,
    total_net_value  REAL NOT NULL,
    total_epfp       REAL NOT NULL,
    conversion_factor REAL NOT NULL,
    mgp              REAL NOT NULL,
    mgp_saturated    INTEGER NOT NULL,
    crp              REAL NOT NULL,
    outstanding      REAL NOT NULL,
    created_at       TIMESTAMP NOT NULL,
    PRIMARY KEY (run_id, scope, scope_id)
);

CREATE TABLE IF NOT EXISTS simulated_deals (
    deal_id           TEXT NOT NULL PRIMARY KEY,
    counterparty_id   TEXT NOT NULL,
    counterparty_name TEXT,
    client_side       TEXT NOT NULL,
    notional_usd      REAL NOT NULL,
    spot              REAL NOT NULL,
    forward_points    REAL NOT NULL,
    forward_rate      REAL NOT NULL,
    tenor_days        INTEGER NOT NULL,
    right_value       REAL NOT NULL,
    obligation_value  REAL NOT NULL,
    net_value         REAL NOT NULL,
    created_at        TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_scope ON exposure_runs (scope, scope_id);
CREATE INDEX IF NOT EXISTS idx_deals_cpty ON simulated_deals (counterparty_id);
`
