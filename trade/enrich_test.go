package trade

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/forward415/calendar"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func validTrade() Trade {
	return Trade{
		DealID:             "D-1",
		CounterpartyID:     "9001234567",
		CounterpartyName:   "Cliente Ejemplo S.A.",
		DirectionLabel:     "Compra",
		RightValue:         Some(425_050_000),
		ObligationValue:    Some(427_625_000),
		ConversionFactor:   Some(0.09),
		NotionalRight:      Some(100_000),
		NotionalObligation: Some(101_000),
		MarketRate:         Some(4250),
		ValuationDate:      date(2025, 3, 3),
		SettlementDate:     date(2025, 6, 3),
	}
}

func TestEnrichOneCompanyBuy(t *testing.T) {
	t.Parallel()

	cal := calendar.New()
	got := EnrichOne(cal, validTrade())

	// Scenario from the 415 book: right 425,050,000 against obligation
	// 427,625,000 on the company buy side.
	assert.True(t, got.NetValue.Valid)
	assert.InDelta(t, -2_575_000, got.NetValue.Value, 1e-6)
	assert.Equal(t, SignBuy, got.DirectionSign)

	// Buy side takes the right-leg notional.
	assert.True(t, got.AdjustedNotional.Valid)
	assert.InDelta(t, 100_000, got.AdjustedNotional.Value, 1e-9)

	// 2025-03-03..2025-06-03 has 67 weekdays and no holidays on an
	// empty calendar; the tenor rule drops the settlement day.
	if assert.NotNil(t, got.TenorBusinessDays) {
		assert.Equal(t, 66, *got.TenorBusinessDays)
	}

	wantT := math.Sqrt(66.0 / 252.0)
	assert.True(t, got.TimeFactor.Valid)
	assert.InDelta(t, wantT, got.TimeFactor.Value, 1e-12)

	wantVNE := 100_000 * 4250 * wantT
	assert.True(t, got.EquivalentNotional.Valid)
	assert.InDelta(t, wantVNE, got.EquivalentNotional.Value, 1e-3)

	assert.True(t, got.PotentialFutureExposure.Valid)
	assert.InDelta(t, 0.09*got.EquivalentNotional.Value, got.PotentialFutureExposure.Value, 1e-9)
}

func TestEnrichOneCompanySell(t *testing.T) {
	t.Parallel()

	tr := validTrade()
	tr.DirectionLabel = "Venta"
	got := EnrichOne(calendar.New(), tr)

	assert.Equal(t, SignSell, got.DirectionSign)
	// Sell side takes the obligation-leg notional.
	assert.InDelta(t, 101_000, got.AdjustedNotional.Value, 1e-9)
	// The sign flips the equivalent notional negative.
	assert.True(t, got.EquivalentNotional.Valid)
	assert.Negative(t, got.EquivalentNotional.Value)
}

func TestEnrichOneInvalidDirection(t *testing.T) {
	t.Parallel()

	tr := validTrade()
	tr.DirectionLabel = "ALGO RARO"
	got := EnrichOne(calendar.New(), tr)

	assert.Equal(t, SignInvalid, got.DirectionSign)
	assert.False(t, got.AdjustedNotional.Valid)
	assert.False(t, got.EquivalentNotional.Valid)
	assert.False(t, got.PotentialFutureExposure.Valid)
	// Fields that do not depend on the sign are still derived.
	assert.True(t, got.NetValue.Valid)
	assert.NotNil(t, got.TenorBusinessDays)
}

func TestEnrichOneMissingInputsPropagate(t *testing.T) {
	t.Parallel()

	cal := calendar.New()

	t.Run("missing_settlement_date", func(t *testing.T) {
		t.Parallel()
		tr := validTrade()
		tr.SettlementDate = time.Time{}
		got := EnrichOne(cal, tr)

		assert.Nil(t, got.TenorBusinessDays)
		assert.False(t, got.TimeFactor.Valid)
		assert.False(t, got.EquivalentNotional.Valid)
		assert.False(t, got.PotentialFutureExposure.Valid)
		assert.True(t, got.NetValue.Valid)
	})

	t.Run("settlement_before_valuation", func(t *testing.T) {
		t.Parallel()
		tr := validTrade()
		tr.SettlementDate = date(2025, 3, 1)
		got := EnrichOne(cal, tr)
		assert.Nil(t, got.TenorBusinessDays)
	})

	t.Run("settlement_equals_valuation", func(t *testing.T) {
		t.Parallel()
		tr := validTrade()
		tr.SettlementDate = tr.ValuationDate
		got := EnrichOne(cal, tr)
		assert.Nil(t, got.TenorBusinessDays)
	})

	t.Run("missing_market_rate", func(t *testing.T) {
		t.Parallel()
		tr := validTrade()
		tr.MarketRate = None()
		got := EnrichOne(cal, tr)
		assert.False(t, got.EquivalentNotional.Valid)
		assert.True(t, got.TimeFactor.Valid)
	})

	t.Run("missing_right_value", func(t *testing.T) {
		t.Parallel()
		tr := validTrade()
		tr.RightValue = None()
		got := EnrichOne(cal, tr)
		assert.False(t, got.NetValue.Valid)
		// Notional path is independent of the valuation legs.
		assert.True(t, got.EquivalentNotional.Valid)
	})

	t.Run("missing_conversion_factor", func(t *testing.T) {
		t.Parallel()
		tr := validTrade()
		tr.ConversionFactor = None()
		got := EnrichOne(cal, tr)
		assert.True(t, got.EquivalentNotional.Valid)
		assert.False(t, got.PotentialFutureExposure.Valid)
	})
}

func TestEnrichBadRowDoesNotAbortBatch(t *testing.T) {
	t.Parallel()

	good := validTrade()
	bad := validTrade()
	bad.DealID = "D-2"
	bad.SettlementDate = time.Time{}

	out := Enrich(calendar.New(), []Trade{bad, good})

	assert.Len(t, out, 2)
	assert.False(t, out[0].EquivalentNotional.Valid)
	assert.True(t, out[1].EquivalentNotional.Valid)
}

func TestTimeFactor(t *testing.T) {
	t.Parallel()

	// One trading year caps the factor at exactly 1.
	assert.Equal(t, 1.0, TimeFactor(252))
	assert.Equal(t, 1.0, TimeFactor(300))

	assert.InDelta(t, math.Sqrt(10.0/252.0), TimeFactor(10), 1e-12)
	assert.InDelta(t, math.Sqrt(14.0/252.0), TimeFactor(14), 1e-12)
}

func TestEquivalentNotionalRounding(t *testing.T) {
	t.Parallel()

	got := EquivalentNotional(1, 1.0/3.0, SignBuy, 1)
	assert.Equal(t, 0.333333, got)

	got = EquivalentNotional(1, 1.0/3.0, SignSell, 1)
	assert.Equal(t, -0.333333, got)
}
