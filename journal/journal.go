// Package journal persists exposure runs and simulated deals, either to
// SQLite or to plain CSV files.
package journal

import (
	"time"

	"github.com/rustyeddy/forward415/exposure"
)

// Scope of an exposure run.
const (
	ScopeCounterparty = "counterparty"
	ScopeGroup        = "group"
)

// RunRecord is one aggregation outcome for one counterparty or group.
type RunRecord struct {
	RunID     string
	Scope     string // ScopeCounterparty or ScopeGroup
	ScopeID   string // tax id or group name
	ScopeName string
	Result    exposure.Result
	CreatedAt time.Time
}

// DealRecord is one simulated deal as evaluated.
type DealRecord struct {
	DealID           string
	CounterpartyID   string
	CounterpartyName string
	ClientSide       string
	NotionalUSD      float64
	Spot             float64
	ForwardPoints    float64
	ForwardRate      float64
	TenorDays        int
	RightValue       float64
	ObligationValue  float64
	NetValue         float64
	CreatedAt        time.Time
}

// Journal records exposure runs and simulated deals.
type Journal interface {
	RecordRun(RunRecord) error
	RecordDeal(DealRecord) error
	Close() error
}
