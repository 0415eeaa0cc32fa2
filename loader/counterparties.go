package loader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/rustyeddy/forward415/client"
	"github.com/rustyeddy/forward415/trade"
)

// Counterparty catalog headers. Extra columns in the file are ignored.
const (
	catColTaxID = "NIT"
	catColName  = "Contraparte"
	catColGroup = "Grupo Conectado de Contrapartes"
)

// LoadCounterparties reads the counterparty catalog CSV into registry
// entries. Credit limits are not part of the catalog; callers attach
// them from configuration before building the registry.
func LoadCounterparties(path string) ([]client.Counterparty, error) {
	data, err := readMaybeCompressed(path)
	if err != nil {
		return nil, err
	}
	return ParseCounterparties(data)
}

// ParseCounterparties decodes raw catalog bytes.
func ParseCounterparties(data []byte) ([]client.Counterparty, error) {
	if !utf8.Valid(data) {
		data = decodeLatin1(data)
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = ';'
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read catalog header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[cleanHeader(h)] = i
	}
	for _, required := range []string{catColTaxID, catColName, catColGroup} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("column %q not found in counterparty catalog", required)
		}
	}

	var entries []client.Counterparty
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read catalog record: %w", err)
		}

		taxID := trade.NormalizeTaxID(field(rec, idx, catColTaxID))
		if taxID == "" {
			continue
		}
		entries = append(entries, client.Counterparty{
			TaxID: taxID,
			Name:  strings.TrimSpace(field(rec, idx, catColName)),
			Group: strings.TrimSpace(field(rec, idx, catColGroup)),
		})
	}
	return entries, nil
}
