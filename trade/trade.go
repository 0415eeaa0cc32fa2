// Package trade defines the forward-trade record shared by the whole
// exposure engine and the enrichment pipeline that derives its risk
// factors.
package trade

import (
	"regexp"
	"strings"
	"time"
)

// Direction signs, anchored to the company's side of the trade. The
// client side is always the logical opposite.
const (
	SignBuy     = 1
	SignSell    = -1
	SignInvalid = 0
)

// Trade is one forward operation, real or simulated. Raw fields come
// from the 415 report (or from a simulation row reshaped to match);
// derived fields are computed by Enrich and never supplied externally.
type Trade struct {
	DealID           string
	CounterpartyID   string // tax id, normalized
	CounterpartyName string

	// Raw regulatory inputs.
	DirectionLabel     string // company side, "Compra"/"Venta" in the 415
	RightValue         Maybe  // local-currency right leg
	ObligationValue    Maybe  // local-currency obligation leg
	ConversionFactor   Maybe  // regulatory factor (82FC)
	NotionalRight      Maybe  // foreign-currency notional, right leg
	NotionalObligation Maybe  // foreign-currency notional, obligation leg
	MarketRate         Maybe  // FX rate at valuation (85TRM)
	SettlementDate     time.Time
	ValuationDate      time.Time

	// Derived by Enrich.
	NetValue                Maybe // right - obligation
	DirectionSign           int   // +1 buy, -1 sell, 0 invalid label
	AdjustedNotional        Maybe
	TenorBusinessDays       *int
	TimeFactor              Maybe
	EquivalentNotional      Maybe
	PotentialFutureExposure Maybe
}

// ParseDirection maps a company-side direction label to its sign.
// Matching is case-insensitive and accepts both the English labels and
// the Compra/Venta spellings the 415 report actually carries. Anything
// else is a data-quality failure and maps to SignInvalid, which
// propagates as an absent value downstream rather than being coerced.
func ParseDirection(label string) int {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "BUY", "COMPRA":
		return SignBuy
	case "SELL", "VENTA":
		return SignSell
	default:
		return SignInvalid
	}
}

var leadingZeros = regexp.MustCompile(`^0+(\d)`)

// NormalizeTaxID strips separators (spaces, dots, dashes) and leading
// zeros from a tax identifier so the same counterparty matches across
// the 415 report, the counterparty catalog and the simulation input.
func NormalizeTaxID(s string) string {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer(" ", "", ".", "", "-", "").Replace(s)
	return leadingZeros.ReplaceAllString(s, "$1")
}
