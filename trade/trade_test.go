package trade

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDirection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		label string
		want  int
	}{
		{"BUY", SignBuy},
		{"buy", SignBuy},
		{"Compra", SignBuy},
		{"COMPRA", SignBuy},
		{"SELL", SignSell},
		{"Venta", SignSell},
		{" venta ", SignSell},
		{"", SignInvalid},
		{"HOLD", SignInvalid},
		{"C0MPRA", SignInvalid},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseDirection(tt.label), "ParseDirection(%q)", tt.label)
	}
}

func TestNormalizeTaxID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"900.123.456-7", "9001234567"},
		{"0000123456", "123456"},
		{"900123456", "900123456"},
		{" 800 100 200 ", "800100200"},
		{"0", "0"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeTaxID(tt.in), "NormalizeTaxID(%q)", tt.in)
	}
}

func TestMaybeOr(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 2.5, Some(2.5).Or(0))
	assert.Equal(t, 0.0, None().Or(0))
	assert.Equal(t, -1.0, None().Or(-1))
}
