package config

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/theirongolddev/cfoot/internal/model"
)

// FactorTable maps category -> subtype -> kg CO2 per unit.
// Units: transport per km, electricity per kWh, food per serving,
// shopping per item. Diets holds kg CO2 per day for coarse diet classes.
//
// A table is treated as immutable once built; WithOverrides returns a copy.
type FactorTable struct {
	Transport   map[string]float64
	Electricity map[string]float64
	Food        map[string]float64
	Shopping    map[string]float64
	Diets       map[string]float64
}

var defaultTransport = map[string]float64{
	"car_petrol":    0.192,
	"car_diesel":    0.171,
	"car_hybrid":    0.120,
	"car_electric":  0.053,
	"motorbike":     0.114,
	"bus":           0.105,
	"train":         0.041,
	"bicycle":       0,
	"walk":          0,
	"flight_short":  0.255,
	"flight_medium": 0.156,
	"flight_long":   0.150,
}

var defaultElectricity = map[string]float64{
	"grid_average": 0.45,
	"coal":         0.95,
	"natural_gas":  0.45,
	"oil":          0.65,
	"solar":        0.05,
	"wind":         0.02,
	"hydro":        0.02,
	"nuclear":      0.012,
}

var defaultFood = map[string]float64{
	"beef":       6.6,
	"lamb":       5.8,
	"pork":       1.7,
	"chicken":    1.3,
	"fish":       1.2,
	"cheese":     1.1,
	"eggs":       0.45,
	"milk":       0.6,
	"rice":       0.35,
	"legumes":    0.2,
	"vegetables": 0.15,
	"fruit":      0.1,
	"bread":      0.2,
}

var defaultShopping = map[string]float64{
	"clothing":    15,
	"electronics": 50,
	"furniture":   90,
	"books":       2.5,
	"household":   5,
}

var defaultDiets = map[string]float64{
	"heavy_meat":   12,
	"average_meat": 8,
	"vegetarian":   5,
	"vegan":        3,
}

// DefaultFactors returns a fresh copy of the built-in factor table.
func DefaultFactors() FactorTable {
	return FactorTable{
		Transport:   cloneFactors(defaultTransport),
		Electricity: cloneFactors(defaultElectricity),
		Food:        cloneFactors(defaultFood),
		Shopping:    cloneFactors(defaultShopping),
		Diets:       cloneFactors(defaultDiets),
	}
}

func cloneFactors(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (t FactorTable) category(c model.Category) map[string]float64 {
	switch c {
	case model.CategoryTransport:
		return t.Transport
	case model.CategoryElectricity:
		return t.Electricity
	case model.CategoryFood:
		return t.Food
	case model.CategoryShopping:
		return t.Shopping
	}
	return nil
}

// NormalizeSubtype lowercases a subtype key and folds spaces and hyphens
// into underscores, e.g. "Natural Gas" -> "natural_gas".
func NormalizeSubtype(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "-", "_")
	return strings.Join(strings.Fields(s), "_")
}

// Lookup returns the factor for a subtype, normalizing the key first.
// Returns 0 and false if the category or subtype is unknown.
func (t FactorTable) Lookup(c model.Category, subtype string) (float64, bool) {
	factors := t.category(c)
	if factors == nil {
		return 0, false
	}
	f, ok := factors[NormalizeSubtype(subtype)]
	return f, ok
}

// DietDaily returns the daily kg CO2 estimate for a diet class.
func (t FactorTable) DietDaily(class string) (float64, bool) {
	f, ok := t.Diets[NormalizeSubtype(class)]
	return f, ok
}

// Subtypes lists the known subtypes of a category, sorted.
func (t FactorTable) Subtypes(c model.Category) []string {
	return sortedKeys(t.category(c))
}

// DietClasses lists the known diet classes ordered from highest to lowest
// daily estimate.
func (t FactorTable) DietClasses() []string {
	keys := sortedKeys(t.Diets)
	sort.SliceStable(keys, func(i, j int) bool {
		return t.Diets[keys[i]] > t.Diets[keys[j]]
	})
	return keys
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// WithOverrides returns a copy of t with user-defined factors applied.
// Overrides may add new subtypes. Negative or non-finite values are rejected.
func (t FactorTable) WithOverrides(o FactorOverrides) (FactorTable, error) {
	if err := o.Validate(); err != nil {
		return t, err
	}

	out := FactorTable{
		Transport:   cloneFactors(t.Transport),
		Electricity: cloneFactors(t.Electricity),
		Food:        cloneFactors(t.Food),
		Shopping:    cloneFactors(t.Shopping),
		Diets:       cloneFactors(t.Diets),
	}
	apply := func(dst, src map[string]float64) {
		for k, v := range src {
			dst[NormalizeSubtype(k)] = v
		}
	}
	apply(out.Transport, o.Transport)
	apply(out.Electricity, o.Electricity)
	apply(out.Food, o.Food)
	apply(out.Shopping, o.Shopping)
	apply(out.Diets, o.Diets)
	return out, nil
}

// MaxFactor bounds a user override in kg CO2 per unit.
const MaxFactor = 1e6

// Validate rejects factors that would produce negative, NaN or overflowing
// emissions.
func (o FactorOverrides) Validate() error {
	sections := []struct {
		name string
		m    map[string]float64
	}{
		{"transport", o.Transport},
		{"electricity", o.Electricity},
		{"food", o.Food},
		{"shopping", o.Shopping},
		{"diet", o.Diets},
	}
	for _, s := range sections {
		for k, v := range s.m {
			if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) || v > MaxFactor {
				return fmt.Errorf("factor override %s.%s: invalid value %v", s.name, k, v)
			}
		}
	}
	return nil
}
