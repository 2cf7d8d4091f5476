package model

import "time"

// SessionRecord is an immutable snapshot of a finished estimate.
type SessionRecord struct {
	ID           string      `json:"id" yaml:"id"`
	Timestamp    time.Time   `json:"timestamp" yaml:"timestamp"`
	Profile      UserProfile `json:"profile" yaml:"profile"`
	Breakdown    Breakdown   `json:"breakdown" yaml:"breakdown"`
	MonthlyTotal float64     `json:"monthly_total_kg" yaml:"monthly_total_kg"`
	AnnualTotal  float64     `json:"annual_total_kg" yaml:"annual_total_kg"`
}
