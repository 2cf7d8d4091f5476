// Package store provides a SQLite-backed history of finished sessions.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/theirongolddev/cfoot/internal/history"
	"github.com/theirongolddev/cfoot/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// History is a durable history.Log.
type History struct {
	db *sql.DB
}

var _ history.Log = (*History)(nil)

// Open opens or creates the history database at the given path and applies
// pending migrations.
func Open(dbPath string) (*History, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}

	return &History{db: db}, nil
}

// Close closes the history database.
func (h *History) Close() error {
	return h.db.Close()
}

// Append inserts rec. Records are never updated once written.
func (h *History) Append(rec model.SessionRecord) error {
	_, err := h.db.Exec(`INSERT INTO session_records
		(id, recorded_at, name, country, household_size,
		 transport_kg, electricity_kg, food_kg, shopping_kg,
		 monthly_total_kg, annual_total_kg)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Timestamp.UTC().Format(time.RFC3339Nano),
		rec.Profile.Name, rec.Profile.Country, rec.Profile.HouseholdSize,
		rec.Breakdown.Transport, rec.Breakdown.Electricity, rec.Breakdown.Food, rec.Breakdown.Shopping,
		rec.MonthlyTotal, rec.AnnualTotal,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return history.ErrDuplicate
		}
		return fmt.Errorf("saving session %s: %w", rec.ID, err)
	}
	return nil
}

const selectRecords = `SELECT
	id, recorded_at, name, country, household_size,
	transport_kg, electricity_kg, food_kg, shopping_kg,
	monthly_total_kg, annual_total_kg
	FROM session_records`

// List returns every record in insertion order.
func (h *History) List() ([]model.SessionRecord, error) {
	return h.query(selectRecords + " ORDER BY seq")
}

// Get returns the record whose id starts with idPrefix.
func (h *History) Get(idPrefix string) (model.SessionRecord, error) {
	prefix := strings.ToUpper(strings.TrimSpace(idPrefix))
	if prefix == "" {
		return model.SessionRecord{}, history.ErrNotFound
	}
	recs, err := h.query(selectRecords+" WHERE id LIKE ? ORDER BY seq", prefix+"%")
	if err != nil {
		return model.SessionRecord{}, err
	}
	return history.Match(recs, prefix)
}

// Count returns the number of stored records.
func (h *History) Count() (int, error) {
	var count int
	err := h.db.QueryRow("SELECT COUNT(*) FROM session_records").Scan(&count)
	return count, err
}

func (h *History) query(q string, args ...any) ([]model.SessionRecord, error) {
	rows, err := h.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var recs []model.SessionRecord
	for rows.Next() {
		var r model.SessionRecord
		var recordedAt string
		err := rows.Scan(
			&r.ID, &recordedAt, &r.Profile.Name, &r.Profile.Country, &r.Profile.HouseholdSize,
			&r.Breakdown.Transport, &r.Breakdown.Electricity, &r.Breakdown.Food, &r.Breakdown.Shopping,
			&r.MonthlyTotal, &r.AnnualTotal,
		)
		if err != nil {
			return nil, fmt.Errorf("reading history row: %w", err)
		}
		r.Timestamp, err = time.Parse(time.RFC3339Nano, recordedAt)
		if err != nil {
			return nil, fmt.Errorf("session %s: bad timestamp %q: %w", r.ID, recordedAt, err)
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}
