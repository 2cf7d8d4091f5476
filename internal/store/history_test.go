package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/cfoot/internal/config"
	"github.com/theirongolddev/cfoot/internal/estimator"
	"github.com/theirongolddev/cfoot/internal/history"
	"github.com/theirongolddev/cfoot/internal/model"
)

func openTestHistory(t *testing.T) (*History, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "history.db")
	h, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })
	return h, path
}

func TestHistory_RoundTrip(t *testing.T) {
	h, path := openTestHistory(t)
	base := time.Date(2025, 6, 1, 8, 0, 0, 123456789, time.UTC)

	var saved []model.SessionRecord
	for i, kwh := range []float64{30, 10, 20} {
		s := estimator.New(config.DefaultFactors(), model.UserProfile{Name: "Waithira", Country: "United States", HouseholdSize: 2})
		s.RecordElectricity(estimator.ElectricityInput{Source: "grid_average", DailyKWh: kwh})
		s.RecordFood(estimator.FoodInput{Diet: "average_meat"})
		s.RecordShopping(map[string]float64{"clothing": float64(i)})
		rec := s.Snapshot(base.Add(time.Duration(i) * time.Minute))
		require.NoError(t, h.Append(rec))
		saved = append(saved, rec)
	}

	got, err := h.List()
	require.NoError(t, err)
	require.Len(t, got, len(saved))
	for i := range saved {
		assert.Equal(t, saved[i].ID, got[i].ID)
		assert.Equal(t, saved[i].Breakdown, got[i].Breakdown)
		assert.Equal(t, saved[i].Profile, got[i].Profile)
		assert.Equal(t, saved[i].MonthlyTotal, got[i].MonthlyTotal)
		assert.True(t, saved[i].Timestamp.Equal(got[i].Timestamp), "timestamp %d", i)
	}

	// Reopening runs migrations again without error and sees the same data.
	require.NoError(t, h.Close())
	h2, err := Open(path)
	require.NoError(t, err)
	defer h2.Close()

	n, err := h2.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestHistory_AppendIsImmutable(t *testing.T) {
	h, _ := openTestHistory(t)
	rec := model.SessionRecord{ID: "01JABCDEFGHJKMNPQRSTVWXYZ0", Timestamp: time.Now(), Profile: model.NewUserProfile("", "")}

	require.NoError(t, h.Append(rec))
	assert.ErrorIs(t, h.Append(rec), history.ErrDuplicate)
}

func TestHistory_GetByPrefix(t *testing.T) {
	h, _ := openTestHistory(t)
	now := time.Now()
	require.NoError(t, h.Append(model.SessionRecord{ID: "01JAAAAAAAAAAAAAAAAAAAAAA1", Timestamp: now}))
	require.NoError(t, h.Append(model.SessionRecord{ID: "01JAAAAAAAAAAAAAAAAAAAAAA2", Timestamp: now}))
	require.NoError(t, h.Append(model.SessionRecord{ID: "01JBBBBBBBBBBBBBBBBBBBBBB3", Timestamp: now}))

	rec, err := h.Get("01jb")
	require.NoError(t, err)
	assert.Equal(t, "01JBBBBBBBBBBBBBBBBBBBBBB3", rec.ID)

	_, err = h.Get("01JA")
	assert.ErrorIs(t, err, history.ErrAmbiguous)

	_, err = h.Get("ZZ")
	assert.ErrorIs(t, err, history.ErrNotFound)
}
