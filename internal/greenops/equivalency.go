package greenops

import (
	"fmt"
	"math"
)

// Calculate converts kg CO2e into EPA-based everyday equivalents.
//
// Values below MinEquivalencyThresholdKg return an empty output without error.
// Negative input returns ErrNegativeValue; NaN, infinite or overflowing
// results return ErrCalculationOverflow.
func Calculate(kg float64) (EquivalencyOutput, error) {
	if math.IsNaN(kg) || math.IsInf(kg, 0) {
		return EquivalencyOutput{IsEmpty: true}, ErrCalculationOverflow
	}
	if kg < 0 {
		return EquivalencyOutput{IsEmpty: true}, ErrNegativeValue
	}
	if kg < MinEquivalencyThresholdKg {
		return EquivalencyOutput{InputKg: kg, IsEmpty: true}, nil
	}

	specs := []struct {
		typ    EquivalencyType
		factor float64
		label  string
	}{
		{EquivalencyMilesDriven, MilesDrivenFactor, "miles driven"},
		{EquivalencySmartphonesCharged, SmartphoneChargeFactor, "smartphones charged"},
		{EquivalencyTreeSeedlings, TreeSeedlingFactor, "tree seedlings grown for 10 years"},
		{EquivalencyHomeDays, HomeDayFactor, "days of home energy use"},
	}

	results := make([]EquivalencyResult, 0, len(specs))
	for _, s := range specs {
		v := kg / s.factor
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return EquivalencyOutput{IsEmpty: true}, ErrCalculationOverflow
		}
		results = append(results, EquivalencyResult{
			Type:           s.typ,
			Value:          v,
			FormattedValue: formatEquivalencyValue(v),
			Label:          s.label,
		})
	}

	return EquivalencyOutput{
		InputKg: kg,
		Results: results,
		DisplayText: fmt.Sprintf("Equivalent to driving ~%s miles or charging ~%s smartphones",
			results[0].FormattedValue, results[1].FormattedValue),
	}, nil
}

// Find returns the result of the given type, if present.
func (o EquivalencyOutput) Find(t EquivalencyType) (EquivalencyResult, bool) {
	for _, r := range o.Results {
		if r.Type == t {
			return r, true
		}
	}
	return EquivalencyResult{}, false
}

func formatEquivalencyValue(v float64) string {
	if v >= LargeNumberThreshold {
		return FormatLarge(v)
	}
	return FormatNumber(int64(math.Round(v)))
}
