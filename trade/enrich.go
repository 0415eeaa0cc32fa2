package trade

import (
	"math"
	"time"

	"github.com/rustyeddy/forward415/calendar"
)

// TenorCapDays caps the tenor at one trading year; beyond it the time
// factor no longer grows under the model.
const TenorCapDays = 252

// Enrich computes the derived risk factors for every trade in ts and
// returns a new slice; inputs are never mutated. Each row is derived
// independently, so a bad date or missing field in one trade never
// affects the rest of the batch.
func Enrich(cal *calendar.Calendar, ts []Trade) []Trade {
	out := make([]Trade, len(ts))
	for i, t := range ts {
		out[i] = EnrichOne(cal, t)
	}
	return out
}

// EnrichOne derives the risk factors of a single trade, in order: net
// value, direction sign, adjusted notional, tenor, time factor,
// equivalent notional and potential future exposure. Any missing or
// invalid input leaves the dependent fields absent.
func EnrichOne(cal *calendar.Calendar, t Trade) Trade {
	// Net value = right - obligation.
	if t.RightValue.Valid && t.ObligationValue.Valid {
		t.NetValue = Some(t.RightValue.Value - t.ObligationValue.Value)
	} else {
		t.NetValue = None()
	}

	// Sign from the company's side of the trade.
	t.DirectionSign = ParseDirection(t.DirectionLabel)

	// Adjusted notional follows the leg the company holds.
	switch t.DirectionSign {
	case SignBuy:
		t.AdjustedNotional = t.NotionalRight
	case SignSell:
		t.AdjustedNotional = t.NotionalObligation
	default:
		t.AdjustedNotional = None()
	}

	// Tenor in business days, absent if either date is missing or
	// settlement does not fall after valuation.
	t.TenorBusinessDays = tenor(cal, t.ValuationDate, t.SettlementDate)

	if t.TenorBusinessDays != nil {
		t.TimeFactor = Some(TimeFactor(*t.TenorBusinessDays))
	} else {
		t.TimeFactor = None()
	}

	if t.AdjustedNotional.Valid && t.MarketRate.Valid &&
		t.DirectionSign != SignInvalid && t.TimeFactor.Valid {
		t.EquivalentNotional = Some(EquivalentNotional(
			t.AdjustedNotional.Value, t.MarketRate.Value,
			t.DirectionSign, t.TimeFactor.Value))
	} else {
		t.EquivalentNotional = None()
	}

	if t.ConversionFactor.Valid && t.EquivalentNotional.Valid {
		t.PotentialFutureExposure = Some(t.ConversionFactor.Value * t.EquivalentNotional.Value)
	} else {
		t.PotentialFutureExposure = None()
	}

	return t
}

func tenor(cal *calendar.Calendar, valuation, settlement time.Time) *int {
	if valuation.IsZero() || settlement.IsZero() {
		return nil
	}
	vd := time.Date(valuation.Year(), valuation.Month(), valuation.Day(), 0, 0, 0, 0, time.UTC)
	sd := time.Date(settlement.Year(), settlement.Month(), settlement.Day(), 0, 0, 0, 0, time.UTC)
	if !sd.After(vd) {
		return nil
	}
	td := calendar.ApplyTenorRule(cal.BusinessDaysBetween(valuation, settlement))
	return &td
}

// TimeFactor is sqrt(min(td, 252)/252) rounded to 14 decimal places.
func TimeFactor(tenorBusinessDays int) float64 {
	capped := tenorBusinessDays
	if capped > TenorCapDays {
		capped = TenorCapDays
	}
	return roundTo(math.Sqrt(float64(capped)/float64(TenorCapDays)), 14)
}

// EquivalentNotional is vna * rate * sign * t rounded to 6 decimal
// places.
func EquivalentNotional(adjustedNotional, marketRate float64, sign int, timeFactor float64) float64 {
	return roundTo(adjustedNotional*marketRate*float64(sign)*timeFactor, 6)
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
