package loader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// IBRCurve maps tenors in days to annual IBR rates in decimal form.
type IBRCurve struct {
	days  []int // sorted
	rates map[int]float64
}

// LoadIBRCurve reads a headerless ';'-separated file where the first
// column is the tenor in days and the second the decimal rate.
func LoadIBRCurve(path string) (*IBRCurve, error) {
	data, err := readMaybeCompressed(path)
	if err != nil {
		return nil, err
	}
	return ParseIBRCurve(data)
}

// ParseIBRCurve decodes raw curve bytes; Latin-1 falls back like the
// 415 report.
func ParseIBRCurve(data []byte) (*IBRCurve, error) {
	if !utf8.Valid(data) {
		data = decodeLatin1(data)
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = ';'
	cr.FieldsPerRecord = -1

	curve := &IBRCurve{rates: make(map[int]float64)}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read IBR record: %w", err)
		}
		if len(rec) < 2 {
			return nil, fmt.Errorf("IBR record needs 2 columns, got %d", len(rec))
		}

		days, err := strconv.Atoi(strings.TrimSpace(rec[0]))
		if err != nil {
			return nil, fmt.Errorf("IBR tenor %q: %w", rec[0], err)
		}
		rate, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(rec[1]), ",", "."), 64)
		if err != nil {
			return nil, fmt.Errorf("IBR rate %q: %w", rec[1], err)
		}

		if _, dup := curve.rates[days]; !dup {
			curve.days = append(curve.days, days)
		}
		curve.rates[days] = rate
	}

	if len(curve.days) == 0 {
		return nil, fmt.Errorf("empty IBR curve")
	}
	sort.Ints(curve.days)
	return curve, nil
}

// Rate returns the rate for a tenor, linearly interpolating between
// the surrounding curve points and clamping outside the curve's range.
func (c *IBRCurve) Rate(days int) float64 {
	if r, ok := c.rates[days]; ok {
		return r
	}
	if days <= c.days[0] {
		return c.rates[c.days[0]]
	}
	last := c.days[len(c.days)-1]
	if days >= last {
		return c.rates[last]
	}

	i := sort.SearchInts(c.days, days)
	lo, hi := c.days[i-1], c.days[i]
	frac := float64(days-lo) / float64(hi-lo)
	return c.rates[lo] + frac*(c.rates[hi]-c.rates[lo])
}

// Tenors returns the curve's tenor points, sorted.
func (c *IBRCurve) Tenors() []int {
	return append([]int(nil), c.days...)
}
