package trade

// Maybe is a float64 that may be absent. A required input that is
// missing or unparseable yields an absent value, and absence propagates
// through every derived field instead of raising an error.
type Maybe struct {
	Value float64
	Valid bool
}

// Some wraps a present value.
func Some(v float64) Maybe { return Maybe{Value: v, Valid: true} }

// None is the absent value.
func None() Maybe { return Maybe{} }

// Or returns the value when present, def otherwise.
func (m Maybe) Or(def float64) float64 {
	if m.Valid {
		return m.Value
	}
	return def
}
