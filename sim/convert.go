package sim

import (
	"github.com/rustyeddy/forward415/calendar"
	"github.com/rustyeddy/forward415/exposure"
	"github.com/rustyeddy/forward415/internal/id"
	"github.com/rustyeddy/forward415/trade"
)

// ToTrade reshapes a hypothetical row into the 415 trade schema so it
// can be concatenated with the real book before aggregation. Pricing is
// the caller's job; this only reshapes.
//
// The direction sign is derived from the COMPANY side, the opposite of
// the side stored in the row: a client buy is a company sell and
// therefore carries sign -1. Getting this backwards silently flips the
// sign of every downstream figure.
func ToTrade(cal *calendar.Calendar, row Row, counterpartyID, counterpartyName string, conversionFactor float64) trade.Trade {
	companySide := CompanySide(row.ClientSide)

	t := trade.Trade{
		DealID:           id.NewDeal(),
		CounterpartyID:   trade.NormalizeTaxID(counterpartyID),
		CounterpartyName: counterpartyName,
		DirectionLabel:   companySide,
		ConversionFactor: trade.Some(conversionFactor),
		MarketRate:       trade.Some(row.Spot),
		ValuationDate:    row.SimulationDate,
		SettlementDate:   row.SettlementDate,

		// The hypothetical notional plays both legs; the company-side
		// sign selects it either way.
		NotionalRight:      trade.Some(row.NotionalUSD),
		NotionalObligation: trade.Some(row.NotionalUSD),

		// Priced legs pass through; unpriced rows default both to 0 and
		// the net value degrades to an approximation below.
		RightValue:      trade.Some(row.Right.Or(0)),
		ObligationValue: trade.Some(row.Obligation.Or(0)),
	}

	t = trade.EnrichOne(cal, t)

	// An explicit tenor from the analyst overrides the calendar.
	if row.TenorDays != nil && *row.TenorDays >= 0 {
		td := *row.TenorDays
		t.TenorBusinessDays = &td
		t.TimeFactor = trade.Some(trade.TimeFactor(td))
		if t.AdjustedNotional.Valid && t.MarketRate.Valid && t.DirectionSign != trade.SignInvalid {
			t.EquivalentNotional = trade.Some(trade.EquivalentNotional(
				t.AdjustedNotional.Value, t.MarketRate.Value,
				t.DirectionSign, t.TimeFactor.Value))
			t.PotentialFutureExposure = trade.Some(conversionFactor * t.EquivalentNotional.Value)
		}
	}

	// Without priced legs the net value approximates as
	// points * notional * sign.
	if !row.Right.Valid && !row.Obligation.Valid && t.DirectionSign != trade.SignInvalid {
		t.NetValue = trade.Some(row.ForwardPoints * row.NotionalUSD * float64(t.DirectionSign))
	}

	return t
}

// Evaluate aggregates the real book alone (baseline) and then the real
// book with every hypothetical row merged in. The merged set goes
// through one single aggregation call; the formula's non-linearity
// rules out any incremental shortcut.
func Evaluate(cal *calendar.Calendar, real []trade.Trade, rows []Row, counterpartyID, counterpartyName string, conversionFactor float64) (baseline, merged exposure.Result) {
	baseline = exposure.Aggregate(real)

	all := make([]trade.Trade, 0, len(real)+len(rows))
	all = append(all, real...)
	for _, row := range rows {
		all = append(all, ToTrade(cal, row, counterpartyID, counterpartyName, conversionFactor))
	}
	merged = exposure.Aggregate(all)
	return baseline, merged
}
