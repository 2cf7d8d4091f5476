package cmd

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/cfoot/internal/config"
	"github.com/theirongolddev/cfoot/internal/model"
)

func records(n int) []model.SessionRecord {
	recs := make([]model.SessionRecord, n)
	for i := range recs {
		recs[i] = model.SessionRecord{
			ID:          string(rune('A' + i)),
			Timestamp:   time.Date(2026, 1, i+1, 0, 0, 0, 0, time.UTC),
			AnnualTotal: float64(i) * 10000,
		}
	}
	return recs
}

func TestLimitRecords(t *testing.T) {
	recs := records(4)
	assert.Len(t, limitRecords(recs, 0), 4)
	assert.Len(t, limitRecords(recs, 10), 4)

	last := limitRecords(recs, 2)
	require.Len(t, last, 2)
	assert.Equal(t, "C", last[0].ID)
	assert.Equal(t, "D", last[1].ID)
}

func TestHistoryTable_SignedDelta(t *testing.T) {
	tbl := historyTable(records(3))
	require.Len(t, tbl.Rows, 3)
	assert.Equal(t, "-16,000 kg", tbl.Rows[0][5])
	assert.Equal(t, "+4,000 kg", tbl.Rows[2][5])
}

func TestHistoryPath_FlagWins(t *testing.T) {
	t.Setenv("CFOOT_HISTORY_DB", filepath.Join(t.TempDir(), "env.db"))
	flagDB = filepath.Join(t.TempDir(), "flag.db")
	t.Cleanup(func() { flagDB = "" })

	assert.Equal(t, flagDB, historyPath())

	flagDB = ""
	assert.True(t, strings.HasSuffix(historyPath(), "env.db"))
}

func TestSaveRecord_RoundTrip(t *testing.T) {
	flagDB = filepath.Join(t.TempDir(), "history.db")
	flagQuiet = true
	t.Cleanup(func() { flagDB = ""; flagQuiet = false })

	rec := records(1)[0]
	rec.ID = "01JTESTRECORD0000000000000"
	rec.Profile = model.NewUserProfile("Ada", "UK")
	require.NoError(t, saveRecord(rec))

	got, err := loadHistory()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, rec.ID, got[0].ID)
}

func TestFactorTable_MarksOverrides(t *testing.T) {
	defaults := config.DefaultFactors()
	table, err := defaults.WithOverrides(config.FactorOverrides{
		Electricity: map[string]float64{"coal": 1.1, "geothermal": 0.04},
	})
	require.NoError(t, err)

	tbl := factorTable(model.CategoryElectricity, table, defaults)
	marks := map[string]string{}
	for _, row := range tbl.Rows {
		marks[row[0]] = row[2]
	}
	assert.Equal(t, "*", marks["Coal"])
	assert.Equal(t, "*", marks["Geothermal"])
	assert.Equal(t, "", marks["Solar"])
}
