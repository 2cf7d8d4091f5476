package estimator

import "github.com/theirongolddev/cfoot/internal/model"

// TransportMode is the kind of vehicle for a transport entry.
type TransportMode string

const (
	ModeCar       TransportMode = "car"
	ModeMotorbike TransportMode = "motorbike"
	ModeBus       TransportMode = "bus"
	ModeTrain     TransportMode = "train"
	ModeBicycle   TransportMode = "bicycle"
	ModeWalk      TransportMode = "walk"
	ModeAir       TransportMode = "air"
)

// Modes lists the supported transport modes.
var Modes = []TransportMode{ModeCar, ModeMotorbike, ModeBus, ModeTrain, ModeBicycle, ModeWalk, ModeAir}

func knownMode(m TransportMode) bool {
	for _, k := range Modes {
		if k == m {
			return true
		}
	}
	return false
}

// FlightBuckets are the accepted flight-duration buckets for ModeAir.
var FlightBuckets = []string{"short", "medium", "long"}

// CarFuels are the fuel types with a car_<fuel> factor in the default table.
var CarFuels = []string{"petrol", "diesel", "hybrid", "electric"}

// TransportEntry is one vehicle or trip.
type TransportEntry struct {
	Mode TransportMode `json:"mode" yaml:"mode"`
	// Subtype is the factor key, e.g. "car_petrol". Empty means the mode
	// name itself. Ignored for ModeAir.
	Subtype string `json:"subtype,omitempty" yaml:"subtype,omitempty"`
	// FlightBucket is short, medium or long. ModeAir only.
	FlightBucket string `json:"flight_bucket,omitempty" yaml:"flight_bucket,omitempty"`
	// DistanceKm is a daily distance unless Monthly is set.
	// For ModeAir it is the total distance flown in the month.
	DistanceKm float64 `json:"distance_km" yaml:"distance_km"`
	Monthly    bool    `json:"monthly,omitempty" yaml:"monthly,omitempty"`
}

// CarEntry returns a daily car commute for the given fuel.
func CarEntry(fuel string, dailyKm float64) TransportEntry {
	return TransportEntry{Mode: ModeCar, Subtype: "car_" + fuel, DistanceKm: dailyKm}
}

// FlightEntry returns a flight of km in the given duration bucket.
func FlightEntry(bucket string, km float64) TransportEntry {
	return TransportEntry{Mode: ModeAir, FlightBucket: bucket, DistanceKm: km}
}

// Appliance is one device with its rated power and daily use.
type Appliance struct {
	Watts       float64 `json:"watts" yaml:"watts"`
	HoursPerDay float64 `json:"hours_per_day" yaml:"hours_per_day"`
}

// ElectricityInput describes household electricity use. When Appliances is
// non-empty it takes precedence over DailyKWh.
type ElectricityInput struct {
	Source     string      `json:"source" yaml:"source"`
	DailyKWh   float64     `json:"daily_kwh,omitempty" yaml:"daily_kwh,omitempty"`
	Appliances []Appliance `json:"appliances,omitempty" yaml:"appliances,omitempty"`
}

// DietCustom selects per-item servings instead of a fixed diet estimate.
const DietCustom = "custom"

// FoodInput describes diet either by class or by daily servings per item.
type FoodInput struct {
	Diet     string             `json:"diet,omitempty" yaml:"diet,omitempty"`
	Servings map[string]float64 `json:"servings,omitempty" yaml:"servings,omitempty"`
}

// IntakeResult reports what one intake operation contributed.
type IntakeResult struct {
	Category     model.Category
	Emissions    float64
	Warnings     []string
	Unrecognized int
}
