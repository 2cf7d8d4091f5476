package model

// Direction says where an annual total sits relative to the benchmark.
type Direction string

const (
	DirectionAbove Direction = "above"
	DirectionBelow Direction = "below"
	DirectionEqual Direction = "equal"
)

// Comparison holds the signed gap between an annual total and the benchmark.
type Comparison struct {
	BenchmarkKg  float64   `json:"benchmark_kg" yaml:"benchmark_kg"`
	DifferenceKg float64   `json:"difference_kg" yaml:"difference_kg"` // annual - benchmark
	Direction    Direction `json:"direction" yaml:"direction"`
}

// Summary is the finalized view of a session.
type Summary struct {
	Profile      UserProfile `json:"profile" yaml:"profile"`
	Breakdown    Breakdown   `json:"breakdown" yaml:"breakdown"`
	MonthlyTotal float64     `json:"monthly_total_kg" yaml:"monthly_total_kg"`
	AnnualTotal  float64     `json:"annual_total_kg" yaml:"annual_total_kg"`
	AnnualTonnes float64     `json:"annual_total_t" yaml:"annual_total_t"`
	PerCapita    float64     `json:"per_capita_kg" yaml:"per_capita_kg"`
	Comparison   Comparison  `json:"comparison" yaml:"comparison"`

	// MonthlyBenchmark is the benchmark spread over twelve months,
	// used as a reference line on charts.
	MonthlyBenchmark float64 `json:"monthly_benchmark_kg" yaml:"monthly_benchmark_kg"`

	Warnings     []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Unrecognized int      `json:"unrecognized_entries" yaml:"unrecognized_entries"`
}

// ChartData returns the entries a chart may draw: positive and finite only.
func (s Summary) ChartData() []Entry {
	return s.Breakdown.Positive()
}
