// Package sim converts analyst-entered hypothetical forward trades into
// the 415 trade schema and re-evaluates credit exposure with the
// hypothetical book merged in.
package sim

import (
	"strings"
	"time"

	"github.com/rustyeddy/forward415/trade"
)

// Row is one hypothetical trade as entered by the analyst. The
// direction is the CLIENT side; the engine always derives signs from
// the company side, which is the logical opposite.
type Row struct {
	ClientSide    string // "Compra" or "Venta", client perspective
	NotionalUSD   float64
	Spot          float64
	ForwardPoints float64
	ForwardRate   float64
	IBRRate       float64 // domestic annual rate, decimal

	// Tenor, either explicit or derived from the dates.
	TenorDays      *int
	SimulationDate time.Time
	SettlementDate time.Time

	// Pre-priced legs when the caller already ran pricing; both absent
	// degrades the net value to the forward-points approximation.
	Right      trade.Maybe
	Obligation trade.Maybe
}

// CompanySide returns the company-side direction for a client-side
// label, preserving the label's casing style. The company side is
// always the opposite of the client side.
func CompanySide(clientSide string) string {
	s := strings.TrimSpace(clientSide)
	if s == "" {
		return ""
	}

	var opposite string
	switch strings.ToUpper(s) {
	case "COMPRA":
		opposite = "Venta"
	case "VENTA":
		opposite = "Compra"
	case "BUY":
		opposite = "Sell"
	case "SELL":
		opposite = "Buy"
	default:
		return ""
	}

	switch {
	case s == strings.ToUpper(s):
		return strings.ToUpper(opposite)
	case s == strings.ToLower(s):
		return strings.ToLower(opposite)
	default:
		return opposite
	}
}
