package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/forward415/exposure"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCSVJournalWritesHeadersAndRows(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	j, err := NewCSV(dir)
	require.NoError(t, err)

	run := RunRecord{
		RunID:   "R1",
		Scope:   ScopeCounterparty,
		ScopeID: "900123456",
		Result: exposure.Result{
			OperationsCount:     2,
			MarketGapProvision:  0.05,
			OutstandingExposure: 1234.5,
		},
	}
	require.NoError(t, j.RecordRun(run))
	require.NoError(t, j.RecordDeal(DealRecord{
		DealID:         "SIM-01XYZ",
		CounterpartyID: "900123456",
		ClientSide:     "Venta",
		NotionalUSD:    500000,
		TenorDays:      30,
	}))
	require.NoError(t, j.Close())

	runs := readCSV(t, filepath.Join(dir, "runs.csv"))
	require.Len(t, runs, 2)
	assert.Equal(t, runHeader, runs[0])
	assert.Equal(t, "R1", runs[1][0])
	assert.Equal(t, "2", runs[1][4])
	assert.Equal(t, "1234.500000", runs[1][12])

	deals := readCSV(t, filepath.Join(dir, "deals.csv"))
	require.Len(t, deals, 2)
	assert.Equal(t, dealHeader, deals[0])
	assert.Equal(t, "SIM-01XYZ", deals[1][0])
	assert.Equal(t, "30", deals[1][8])
}

func TestCSVJournalAppendsWithoutDuplicateHeader(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	j, err := NewCSV(dir)
	require.NoError(t, err)
	require.NoError(t, j.RecordRun(RunRecord{RunID: "R1", Scope: ScopeGroup, ScopeID: "G"}))
	require.NoError(t, j.Close())

	j, err = NewCSV(dir)
	require.NoError(t, err)
	require.NoError(t, j.RecordRun(RunRecord{RunID: "R2", Scope: ScopeGroup, ScopeID: "G"}))
	require.NoError(t, j.Close())

	rows := readCSV(t, filepath.Join(dir, "runs.csv"))
	require.Len(t, rows, 3)
	assert.Equal(t, "R1", rows[1][0])
	assert.Equal(t, "R2", rows[2][0])
}
