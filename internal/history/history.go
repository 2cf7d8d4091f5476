// Package history keeps finished sessions in insertion order.
package history

import (
	"errors"
	"strings"

	"github.com/theirongolddev/cfoot/internal/model"
)

var (
	// ErrNotFound is returned when no record matches an id.
	ErrNotFound = errors.New("session record not found")

	// ErrAmbiguous is returned when an id prefix matches several records.
	ErrAmbiguous = errors.New("session id prefix is ambiguous")

	// ErrDuplicate is returned when appending a record whose id already exists.
	ErrDuplicate = errors.New("session record already exists")
)

// Log is an append-only, insertion-ordered list of session records.
type Log interface {
	Append(rec model.SessionRecord) error
	List() ([]model.SessionRecord, error)
	Get(idPrefix string) (model.SessionRecord, error)
}

// Memory is an in-process Log. Not safe for concurrent use.
type Memory struct {
	records []model.SessionRecord
}

// NewMemory returns an empty in-memory log.
func NewMemory() *Memory {
	return &Memory{}
}

// Append stores a copy of rec.
func (m *Memory) Append(rec model.SessionRecord) error {
	for _, r := range m.records {
		if r.ID == rec.ID {
			return ErrDuplicate
		}
	}
	m.records = append(m.records, rec)
	return nil
}

// List returns all records, oldest first.
func (m *Memory) List() ([]model.SessionRecord, error) {
	return append([]model.SessionRecord(nil), m.records...), nil
}

// Get returns the record whose id starts with idPrefix.
func (m *Memory) Get(idPrefix string) (model.SessionRecord, error) {
	return Match(m.records, idPrefix)
}

// Match finds the single record in recs whose id starts with idPrefix
// (case-insensitive, since ULIDs are Crockford base32).
func Match(recs []model.SessionRecord, idPrefix string) (model.SessionRecord, error) {
	prefix := strings.ToUpper(strings.TrimSpace(idPrefix))
	if prefix == "" {
		return model.SessionRecord{}, ErrNotFound
	}

	var found []model.SessionRecord
	for _, r := range recs {
		if r.ID == prefix {
			return r, nil
		}
		if strings.HasPrefix(r.ID, prefix) {
			found = append(found, r)
		}
	}
	switch len(found) {
	case 0:
		return model.SessionRecord{}, ErrNotFound
	case 1:
		return found[0], nil
	default:
		return model.SessionRecord{}, ErrAmbiguous
	}
}
