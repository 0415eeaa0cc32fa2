// Package exposure reduces a set of enriched forward trades into the
// regulatory credit-exposure figures for a counterparty or a connected
// group of counterparties.
package exposure

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/rustyeddy/forward415/trade"
)

// Formula constants from the regulatory outstanding-exposure model.
const (
	mgpFloor      = 0.05
	mgpScale      = 0.95
	mgpDivisor    = 1.9
	outstandingK  = 1.4
	defaultFactor = 1.0
)

// Result is the aggregate credit exposure of one trade set.
type Result struct {
	OperationsCount         int
	TotalNetValue           float64
	TotalEquivalentNotional float64
	PotentialFutureExposure float64
	MarketGapProvision      float64 // 0, or within [0.05, 1.0]
	CreditRiskPremium       float64 // >= 0
	OutstandingExposure     float64 // >= 0
	ConversionFactor        float64

	// MGPSaturated reports that the exponential term of the market gap
	// provision overflowed and the provision was clamped to 1.0. The
	// clamp is a deliberate saturation policy, not a failure.
	MGPSaturated bool
}

// Aggregate reduces trades into a Result. An empty input yields the
// zero Result. Absent per-trade values contribute 0 to the sums. The
// conversion factor is taken from the first trade carrying one; the
// caller must ensure all trades in the set share the same factor (see
// AggregateStrict for the checked variant).
//
// The formula is non-linear in the set's totals, so the result of a
// merged set is never the sum of separately aggregated subsets.
func Aggregate(trades []trade.Trade) Result {
	if len(trades) == 0 {
		return Result{}
	}

	var totalVNE, totalNet float64
	factor := defaultFactor
	factorSet := false
	for _, t := range trades {
		totalVNE += t.EquivalentNotional.Or(0)
		totalNet += t.NetValue.Or(0)
		if !factorSet && t.ConversionFactor.Valid {
			factor = t.ConversionFactor.Value
			factorSet = true
		}
	}

	pfe := math.Abs(totalVNE * factor)
	mgp, saturated := marketGapProvision(totalNet, pfe)
	crp := math.Max(totalNet, 0)

	return Result{
		OperationsCount:         len(trades),
		TotalNetValue:           totalNet,
		TotalEquivalentNotional: totalVNE,
		PotentialFutureExposure: pfe,
		MarketGapProvision:      mgp,
		CreditRiskPremium:       crp,
		OutstandingExposure:     outstandingK * (crp + mgp*pfe),
		ConversionFactor:        factor,
		MGPSaturated:            saturated,
	}
}

// marketGapProvision is min(0.05 + 0.95*exp(net/(1.9*pfe)), 1.0) when
// pfe is positive and 0 otherwise. When the exponential overflows the
// provision saturates at 1.0.
func marketGapProvision(totalNet, pfe float64) (mgp float64, saturated bool) {
	if pfe <= 0 {
		return 0, false
	}

	e := math.Exp(totalNet / (mgpDivisor * pfe))
	if math.IsInf(e, 1) {
		logrus.WithFields(logrus.Fields{
			"total_net_value": totalNet,
			"pfe_total":       pfe,
		}).Warn("market gap provision saturated at 1.0")
		return 1.0, true
	}

	mgp = mgpFloor + mgpScale*e
	if mgp > 1.0 {
		mgp = 1.0
	}
	return mgp, false
}

// AggregateStrict is Aggregate with the precondition checked: every
// trade carrying a conversion factor must carry the same one. A mixed
// set is a caller bug and is reported with the offending deal IDs.
func AggregateStrict(trades []trade.Trade) (Result, error) {
	var first trade.Maybe
	var offending []string
	for _, t := range trades {
		if !t.ConversionFactor.Valid {
			continue
		}
		if !first.Valid {
			first = t.ConversionFactor
			continue
		}
		if t.ConversionFactor.Value != first.Value {
			offending = append(offending, t.DealID)
		}
	}
	if len(offending) > 0 {
		return Result{}, fmt.Errorf(
			"inconsistent conversion factors in aggregation set (expected %v): deals %s",
			first.Value, strings.Join(offending, ", "))
	}
	return Aggregate(trades), nil
}

// ByCounterparty aggregates trades per counterparty tax id.
func ByCounterparty(trades []trade.Trade) map[string]Result {
	byID := make(map[string][]trade.Trade)
	for _, t := range trades {
		byID[t.CounterpartyID] = append(byID[t.CounterpartyID], t)
	}

	out := make(map[string]Result, len(byID))
	for id, ts := range byID {
		out[id] = Aggregate(ts)
	}
	return out
}

// GroupResolver maps a counterparty tax id to its connected economic
// group. An empty group name or a false ok means the counterparty is
// not part of a multi-member group.
type GroupResolver interface {
	GroupOf(taxID string) (group string, ok bool)
}

// ByGroup aggregates the union of all member books per connected
// group. Counterparties outside any multi-member group are skipped;
// their exposure is already covered by ByCounterparty.
func ByGroup(groups GroupResolver, trades []trade.Trade) map[string]Result {
	byGroup := make(map[string][]trade.Trade)
	for _, t := range trades {
		g, ok := groups.GroupOf(t.CounterpartyID)
		if !ok || g == "" {
			continue
		}
		byGroup[g] = append(byGroup[g], t)
	}

	out := make(map[string]Result, len(byGroup))
	for g, ts := range byGroup {
		out[g] = Aggregate(ts)
	}
	return out
}

// SortedKeys returns map keys in stable order, for deterministic
// reporting.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
