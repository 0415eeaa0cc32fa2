package sim

import "strings"

// Pricing holds the priced legs of a hypothetical forward.
type Pricing struct {
	ForwardRate    float64
	Points         float64
	DiscountFactor float64
	Right          float64 // local-currency right leg
	Obligation     float64 // local-currency obligation leg
	FairValue      float64 // right - obligation
}

// ForwardRate prices a forward via interest-rate parity on a 360-day
// money-market basis:
//
//	fwd = spot * (1 + dom*days/360) / (1 + for*days/360)
func ForwardRate(spot, domesticRate, foreignRate float64, days int) float64 {
	d := float64(days) / 360.0
	return spot * (1 + domesticRate*d) / (1 + foreignRate*d)
}

// Price values both legs of a hypothetical forward from the analyst's
// row. The discount factor uses the domestic IBR rate on a 360-day
// basis. Leg assignment follows the COMPANY side:
//
//	client buys  (company sells): right = (spot+points)/df * notional
//	                              obligation = fwdRate/df * notional
//	client sells (company buys):  legs swapped
func Price(row Row) Pricing {
	days := 0
	if row.TenorDays != nil {
		days = *row.TenorDays
	} else if !row.SimulationDate.IsZero() && !row.SettlementDate.IsZero() {
		days = int(row.SettlementDate.Sub(row.SimulationDate).Hours() / 24)
	}

	df := 1.0 + row.IBRRate*float64(days)/360.0

	p := Pricing{
		ForwardRate:    row.ForwardRate,
		Points:         row.ForwardPoints,
		DiscountFactor: df,
	}
	if df == 0 {
		return p
	}

	market := (row.Spot + row.ForwardPoints) / df * row.NotionalUSD
	contract := row.ForwardRate / df * row.NotionalUSD

	if strings.EqualFold(strings.TrimSpace(row.ClientSide), "Compra") ||
		strings.EqualFold(strings.TrimSpace(row.ClientSide), "Buy") {
		// Company sells: its right is the market leg.
		p.Right = market
		p.Obligation = contract
	} else {
		p.Right = contract
		p.Obligation = market
	}
	p.FairValue = p.Right - p.Obligation
	return p
}
