// Package loader reads the external files the exposure engine consumes:
// the 415 regulatory report, IBR rate curves and the counterparty
// catalog. Files may arrive plain or compressed (.gz, .xz, .zip).
package loader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/rustyeddy/forward415/trade"
)

// Column headers of the 415 report mapped onto Trade fields.
const (
	colName        = "14Nom_Cont"
	colTaxID       = "13Nro_Cont"
	colDeal        = "04Num_Cont"
	colDirection   = "71Oper"
	colRight       = "49Vlr_DerP"
	colObligation  = "50Vlr_OblP"
	colFactor      = "82FC"
	colNotionalR   = "23Nomi_Der"
	colNotionalO   = "25Nomi_Obl"
	colMarketRate  = "85TRM"
	colSettlement  = "89FVcto"
	colValuation   = "90FCorte"
	colActiveFlag  = "UCaptura"
)

// Report415 loads trades from a 415 report file. The zero value reads
// the standard ';'-separated layout.
type Report415 struct {
	Separator rune // defaults to ';'
}

// Load reads the report at path, keeping only active operations
// (UCaptura == 1). Unparseable numerics and dates become absent fields
// on the trade, never load errors; a missing UCaptura column is a
// malformed file and fails the load.
func (r Report415) Load(path string) ([]trade.Trade, error) {
	data, err := readMaybeCompressed(path)
	if err != nil {
		return nil, err
	}
	return r.Parse(data)
}

// Parse decodes raw report bytes. Input is expected in UTF-8; files
// that fail UTF-8 validation fall back to Latin-1, which the upstream
// system still emits.
func (r Report415) Parse(data []byte) ([]trade.Trade, error) {
	if !utf8.Valid(data) {
		data = decodeLatin1(data)
	}

	sep := r.Separator
	if sep == 0 {
		sep = ';'
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = sep
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read 415 header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[cleanHeader(h)] = i
	}
	if _, ok := idx[colActiveFlag]; !ok {
		return nil, fmt.Errorf("column %q not found in 415 report", colActiveFlag)
	}

	var trades []trade.Trade
	total := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read 415 record: %w", err)
		}
		total++

		if !isActive(field(rec, idx, colActiveFlag)) {
			continue
		}

		trades = append(trades, trade.Trade{
			DealID:             field(rec, idx, colDeal),
			CounterpartyID:     trade.NormalizeTaxID(field(rec, idx, colTaxID)),
			CounterpartyName:   field(rec, idx, colName),
			DirectionLabel:     field(rec, idx, colDirection),
			RightValue:         parseMaybe(field(rec, idx, colRight)),
			ObligationValue:    parseMaybe(field(rec, idx, colObligation)),
			ConversionFactor:   parseMaybe(field(rec, idx, colFactor)),
			NotionalRight:      parseMaybe(field(rec, idx, colNotionalR)),
			NotionalObligation: parseMaybe(field(rec, idx, colNotionalO)),
			MarketRate:         parseMaybe(field(rec, idx, colMarketRate)),
			SettlementDate:     parseDate(field(rec, idx, colSettlement)),
			ValuationDate:      parseDate(field(rec, idx, colValuation)),
		})
	}

	logrus.WithFields(logrus.Fields{
		"rows":   total,
		"active": len(trades),
	}).Debug("415 report parsed")

	return trades, nil
}

func cleanHeader(h string) string {
	return strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF"))
}

func field(rec []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func isActive(v string) bool {
	f, err := strconv.ParseFloat(v, 64)
	return err == nil && f == 1
}

var missingTokens = map[string]struct{}{
	"": {}, "NA": {}, "N/A": {}, "null": {}, "NULL": {},
}

func parseMaybe(s string) trade.Maybe {
	if _, missing := missingTokens[s]; missing {
		return trade.None()
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return trade.None()
	}
	return trade.Some(f)
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02/01/2006",
	"20060102",
}

func parseDate(s string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// decodeLatin1 maps Latin-1 bytes one-to-one onto runes.
func decodeLatin1(data []byte) []byte {
	var b strings.Builder
	b.Grow(len(data))
	for _, c := range data {
		b.WriteRune(rune(c))
	}
	return []byte(b.String())
}
