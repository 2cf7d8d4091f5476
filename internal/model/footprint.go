// Package model defines domain types for cfoot estimates and sessions.
package model

import "math"

// Category identifies one slice of the monthly footprint.
type Category string

const (
	CategoryTransport   Category = "transport"
	CategoryElectricity Category = "electricity"
	CategoryFood        Category = "food"
	CategoryShopping    Category = "shopping"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryTransport,
	CategoryElectricity,
	CategoryFood,
	CategoryShopping,
}

// Label returns the capitalised display name.
func (c Category) Label() string {
	switch c {
	case CategoryTransport:
		return "Transport"
	case CategoryElectricity:
		return "Electricity"
	case CategoryFood:
		return "Food"
	case CategoryShopping:
		return "Shopping"
	default:
		return string(c)
	}
}

// Breakdown holds monthly emissions per category in kg CO2.
// All values are non-negative.
type Breakdown struct {
	Transport   float64 `json:"transport" yaml:"transport"`
	Electricity float64 `json:"electricity" yaml:"electricity"`
	Food        float64 `json:"food" yaml:"food"`
	Shopping    float64 `json:"shopping" yaml:"shopping"`
}

// Get returns the value for a category, or 0 for an unknown one.
func (b Breakdown) Get(c Category) float64 {
	switch c {
	case CategoryTransport:
		return b.Transport
	case CategoryElectricity:
		return b.Electricity
	case CategoryFood:
		return b.Food
	case CategoryShopping:
		return b.Shopping
	}
	return 0
}

// Total sums every category.
func (b Breakdown) Total() float64 {
	return b.Transport + b.Electricity + b.Food + b.Shopping
}

// Entry is one category/value pair handed to renderers.
type Entry struct {
	Category Category
	Value    float64
}

// Positive returns the strictly positive, finite entries in display order.
// Renderers never see zero, negative or NaN values.
func (b Breakdown) Positive() []Entry {
	var out []Entry
	for _, c := range Categories {
		v := b.Get(c)
		if v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v) {
			out = append(out, Entry{Category: c, Value: v})
		}
	}
	return out
}

// UserProfile describes who the estimate is for.
type UserProfile struct {
	Name          string `json:"name" yaml:"name"`
	Country       string `json:"country" yaml:"country"`
	HouseholdSize int    `json:"household_size" yaml:"household_size"`
}

// NewUserProfile returns a profile with a single-person household.
func NewUserProfile(name, country string) UserProfile {
	return UserProfile{Name: name, Country: country, HouseholdSize: 1}
}
