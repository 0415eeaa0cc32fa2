package exposure

// Availability is the headroom of an approved credit line (LCA) after
// current and simulated exposure, net of the internal cushion.
type Availability struct {
	Outstanding    float64
	Simulated      float64
	TotalWithSim   float64
	MaxLimit       float64 // line * (1 - cushion)
	Headroom       float64 // may be negative when the line is blown
	UtilizationPct float64
}

// CreditLineAvailability computes line headroom. cushionPct is the
// internal buffer as a fraction of the line (0.10 = 10%).
func CreditLineAvailability(outstanding, simulated, creditLine, cushionPct float64) Availability {
	maxLimit := creditLine * (1 - cushionPct)
	total := outstanding + simulated

	util := 0.0
	if maxLimit > 0 {
		util = total / maxLimit * 100
	}

	return Availability{
		Outstanding:    outstanding,
		Simulated:      simulated,
		TotalWithSim:   total,
		MaxLimit:       maxLimit,
		Headroom:       maxLimit - total,
		UtilizationPct: util,
	}
}

// LLLHeadroom computes the legal lending limit availability in
// currency and as a percentage of the limit. With no outstanding
// exposure the full limit is available (100%); a non-positive limit
// has no headroom to report.
func LLLHeadroom(lll, outstanding float64) (headroom, pct float64) {
	headroom = lll - outstanding
	if lll > 0 {
		pct = headroom / lll * 100
	}
	return headroom, pct
}
