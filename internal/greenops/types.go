// Package greenops translates carbon footprints into everyday equivalents
// such as miles driven or smartphones charged, using EPA factors.
package greenops

import "fmt"

// EquivalencyType represents a category of carbon emission equivalency.
type EquivalencyType int

const (
	EquivalencyMilesDriven EquivalencyType = iota
	EquivalencySmartphonesCharged
	EquivalencyTreeSeedlings
	EquivalencyHomeDays
)

// String returns a human-readable representation of the EquivalencyType.
func (e EquivalencyType) String() string {
	switch e {
	case EquivalencyMilesDriven:
		return "MilesDriven"
	case EquivalencySmartphonesCharged:
		return "SmartphonesCharged"
	case EquivalencyTreeSeedlings:
		return "TreeSeedlings"
	case EquivalencyHomeDays:
		return "HomeDays"
	default:
		return fmt.Sprintf("EquivalencyType(%d)", e)
	}
}

// EquivalencyResult is a single calculated equivalency.
type EquivalencyResult struct {
	Type           EquivalencyType `json:"type" yaml:"type"`
	Value          float64         `json:"value" yaml:"value"`
	FormattedValue string          `json:"formatted_value" yaml:"formatted_value"`
	Label          string          `json:"label" yaml:"label"`
}

// EquivalencyOutput contains all equivalencies for one carbon value.
type EquivalencyOutput struct {
	InputKg float64             `json:"input_kg" yaml:"input_kg"`
	Results []EquivalencyResult `json:"results" yaml:"results"`

	// DisplayText is the prose line for the summary report.
	// Example: "Equivalent to driving ~7,328 miles or charging ~232,258 smartphones"
	DisplayText string `json:"display_text" yaml:"display_text"`

	IsEmpty bool `json:"is_empty" yaml:"is_empty"`
}
