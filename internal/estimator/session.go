// Package estimator accumulates monthly emissions per category from
// structured inputs and computes the derived totals.
//
// Every intake operation is total: bad or unknown inputs contribute zero and
// are reported as warnings, never as errors. Finalize is the only operation
// that can fail.
package estimator

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"

	"github.com/theirongolddev/cfoot/internal/config"
	"github.com/theirongolddev/cfoot/internal/input"
	"github.com/theirongolddev/cfoot/internal/model"
)

const (
	// DaysPerMonth converts daily figures to monthly ones.
	DaysPerMonth = 30

	// MonthsPerYear converts monthly figures to annual ones.
	MonthsPerYear = 12

	// MaxQuantity bounds any single distance, kWh, wattage, serving or item
	// count. Larger values are counted as zero with a warning.
	MaxQuantity = 1e12

	// BenchmarkAnnualKg is the reference annual footprint (average US resident).
	BenchmarkAnnualKg = 16000.0

	equalTolerance = 1e-6
)

// Session holds the running breakdown for one user. It is not safe for
// concurrent use; each user gets their own Session.
type Session struct {
	table        config.FactorTable
	profile      model.UserProfile
	breakdown    model.Breakdown
	warnings     []string
	unrecognized int
}

// New starts a session with an all-zero breakdown.
func New(table config.FactorTable, profile model.UserProfile) *Session {
	return &Session{table: table, profile: profile}
}

// Profile returns the session's user profile.
func (s *Session) Profile() model.UserProfile { return s.profile }

// Breakdown returns a copy of the current breakdown.
func (s *Session) Breakdown() model.Breakdown { return s.breakdown }

// Warnings returns a copy of all warnings raised so far.
func (s *Session) Warnings() []string {
	return append([]string(nil), s.warnings...)
}

// Unrecognized returns how many entries were skipped for unknown keys.
func (s *Session) Unrecognized() int { return s.unrecognized }

// intake collects warnings for one operation and mirrors them to the session.
type intake struct {
	s   *Session
	res IntakeResult
}

func (s *Session) begin(c model.Category) *intake {
	return &intake{s: s, res: IntakeResult{Category: c}}
}

func (in *intake) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Warn().Str("category", string(in.res.Category)).Msg(msg)
	in.res.Warnings = append(in.res.Warnings, msg)
	in.s.warnings = append(in.s.warnings, msg)
}

func (in *intake) unknown(format string, args ...any) {
	in.res.Unrecognized++
	in.s.unrecognized++
	in.warn(format, args...)
}

// validQuantity reports whether v can be summed into a breakdown.
func validQuantity(v float64) bool {
	return v >= 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

// validInput is validQuantity with the MaxQuantity bound applied.
func validInput(v float64) bool {
	return validQuantity(v) && v <= MaxQuantity
}

// addFinite adds v to *sum when both v and the new sum are valid
// quantities. Overflowing input leaves *sum unchanged and reports false.
func addFinite(sum *float64, v float64) bool {
	next := *sum + v
	if !validQuantity(v) || !validQuantity(next) {
		return false
	}
	*sum = next
	return true
}

var flightBucketOptions = input.OptionsFromKeys(FlightBuckets)

// RecordTransport adds the monthly emissions of each entry to the transport
// total. Entries accumulate across calls.
func (s *Session) RecordTransport(entries []TransportEntry) IntakeResult {
	in := s.begin(model.CategoryTransport)

	var total float64
	for i, e := range entries {
		if !knownMode(e.Mode) {
			in.unknown("transport entry %d: unknown mode %q, counted as zero", i+1, e.Mode)
			continue
		}
		if !validInput(e.DistanceKm) {
			in.warn("transport entry %d: invalid distance %v, counted as zero", i+1, e.DistanceKm)
			continue
		}

		subtype := e.Subtype
		if subtype == "" {
			subtype = string(e.Mode)
		}
		if e.Mode == ModeAir {
			// An unknown bucket falls back to "" so the lookup below misses and
			// the flight is counted as zero with a warning.
			bucket, err := input.ChoiceOrFallback(e.FlightBucket, flightBucketOptions, "")
			if err != nil {
				in.unknown("transport entry %d: %v, flight counted as zero", i+1, err)
				continue
			}
			subtype = "flight_" + bucket
		}

		factor, ok := s.table.Lookup(model.CategoryTransport, subtype)
		if !ok {
			in.unknown("transport entry %d: unknown subtype %q, counted as zero", i+1, subtype)
			continue
		}

		if !addFinite(&total, monthlyDistance(e)*factor) {
			in.warn("transport entry %d: emissions overflow for distance %v, counted as zero", i+1, e.DistanceKm)
		}
	}

	if !validQuantity(s.breakdown.Transport + total) {
		in.warn("transport total overflows, new entries counted as zero")
		total = 0
	}
	s.breakdown.Transport += total
	in.res.Emissions = total
	return in.res
}

// monthlyDistance applies the daily->monthly multiplier except for flights
// and entries already expressed per month.
func monthlyDistance(e TransportEntry) float64 {
	if e.Mode == ModeAir || e.Monthly {
		return e.DistanceKm
	}
	return e.DistanceKm * DaysPerMonth
}

// RecordElectricity sets the electricity total from a daily kWh figure or an
// appliance list. Only the resulting emissions are kept.
func (s *Session) RecordElectricity(e ElectricityInput) IntakeResult {
	in := s.begin(model.CategoryElectricity)

	var daily float64
	if len(e.Appliances) > 0 {
		for i, a := range e.Appliances {
			if !validInput(a.Watts) || !validInput(a.HoursPerDay) {
				in.warn("appliance %d: invalid watts/hours %v/%v, counted as zero", i+1, a.Watts, a.HoursPerDay)
				continue
			}
			if a.HoursPerDay > 24 {
				in.warn("appliance %d: %v hours per day exceeds 24, counted as zero", i+1, a.HoursPerDay)
				continue
			}
			if !addFinite(&daily, a.Watts/1000*a.HoursPerDay) {
				in.warn("appliance %d: usage overflows at %v W, counted as zero", i+1, a.Watts)
			}
		}
	} else {
		if !validInput(e.DailyKWh) {
			in.warn("invalid daily usage %v kWh, counted as zero", e.DailyKWh)
		} else {
			daily = e.DailyKWh
		}
	}

	// An unknown source has no factor: electricity is recorded as zero with
	// a warning rather than guessing a grid mix.
	factor, ok := s.table.Lookup(model.CategoryElectricity, e.Source)
	if !ok {
		in.unknown("unknown energy source %q, electricity counted as zero", e.Source)
	}

	emissions := daily * DaysPerMonth * factor
	if !validQuantity(emissions) {
		in.warn("electricity emissions overflow for %v kWh per day, counted as zero", daily)
		emissions = 0
	}
	s.breakdown.Electricity = emissions
	in.res.Emissions = emissions
	return in.res
}

// RecordFood sets the food total from a diet class or from daily servings.
func (s *Session) RecordFood(f FoodInput) IntakeResult {
	in := s.begin(model.CategoryFood)

	diet := config.NormalizeSubtype(f.Diet)
	var daily float64
	switch {
	case diet == "" && len(f.Servings) == 0:
		// nothing reported
	case diet == DietCustom || diet == "":
		daily = s.dailyServings(in, f.Servings)
	default:
		est, ok := s.table.DietDaily(diet)
		if !ok {
			in.unknown("unknown diet class %q, food counted as zero", f.Diet)
		}
		daily = est
	}

	emissions := daily * DaysPerMonth
	if !validQuantity(emissions) {
		in.warn("food emissions overflow for %v kg per day, counted as zero", daily)
		emissions = 0
	}
	s.breakdown.Food = emissions
	in.res.Emissions = emissions
	return in.res
}

func (s *Session) dailyServings(in *intake, servings map[string]float64) float64 {
	items := make([]string, 0, len(servings))
	for item := range servings {
		items = append(items, item)
	}
	sort.Strings(items)

	var daily float64
	for _, item := range items {
		n := servings[item]
		if !validInput(n) {
			in.warn("food %q: invalid servings %v, counted as zero", item, n)
			continue
		}
		factor, ok := s.table.Lookup(model.CategoryFood, item)
		if !ok {
			in.unknown("unknown food item %q, counted as zero", item)
			continue
		}
		if !addFinite(&daily, n*factor) {
			in.warn("food %q: servings %v overflow, counted as zero", item, n)
		}
	}
	return daily
}

// RecordShopping sets the shopping total from monthly item quantities.
func (s *Session) RecordShopping(items map[string]float64) IntakeResult {
	in := s.begin(model.CategoryShopping)

	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var total float64
	for _, k := range keys {
		q := items[k]
		if !validInput(q) {
			in.warn("shopping %q: invalid quantity %v, counted as zero", k, q)
			continue
		}
		factor, ok := s.table.Lookup(model.CategoryShopping, k)
		if !ok {
			in.unknown("unknown shopping item %q, counted as zero", k)
			continue
		}
		if !addFinite(&total, q*factor) {
			in.warn("shopping %q: quantity %v overflows, counted as zero", k, q)
		}
	}

	s.breakdown.Shopping = total
	in.res.Emissions = total
	return in.res
}

// Finalize computes totals and the benchmark comparison. It fails with
// ErrInvalidProfile when the household size is not positive; the size is
// never silently corrected.
func (s *Session) Finalize() (model.Summary, error) {
	sum, err := Summarize(s.profile, s.breakdown)
	if err != nil {
		return sum, err
	}
	sum.Warnings = s.Warnings()
	sum.Unrecognized = s.unrecognized
	return sum, nil
}

// Summarize derives totals and the benchmark comparison from a profile and
// a breakdown. It backs Finalize and re-summarizes saved records.
func Summarize(profile model.UserProfile, b model.Breakdown) (model.Summary, error) {
	if profile.HouseholdSize <= 0 {
		return model.Summary{}, fmt.Errorf("%w: household size %d", ErrInvalidProfile, profile.HouseholdSize)
	}

	monthly := b.Total()
	annual := monthly * MonthsPerYear

	return model.Summary{
		Profile:          profile,
		Breakdown:        b,
		MonthlyTotal:     monthly,
		AnnualTotal:      annual,
		AnnualTonnes:     annual / 1000,
		PerCapita:        annual / float64(profile.HouseholdSize),
		Comparison:       Compare(annual),
		MonthlyBenchmark: BenchmarkAnnualKg / MonthsPerYear,
	}, nil
}

// Compare reports the signed gap between an annual total and the benchmark.
func Compare(annualKg float64) model.Comparison {
	diff := annualKg - BenchmarkAnnualKg
	dir := model.DirectionEqual
	switch {
	case diff > equalTolerance:
		dir = model.DirectionAbove
	case diff < -equalTolerance:
		dir = model.DirectionBelow
	}
	return model.Comparison{
		BenchmarkKg:  BenchmarkAnnualKg,
		DifferenceKg: diff,
		Direction:    dir,
	}
}

// Snapshot captures the session as an immutable history record.
func (s *Session) Snapshot(now time.Time) model.SessionRecord {
	monthly := s.breakdown.Total()
	return model.SessionRecord{
		ID:           ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String(),
		Timestamp:    now,
		Profile:      s.profile,
		Breakdown:    s.breakdown,
		MonthlyTotal: monthly,
		AnnualTotal:  monthly * MonthsPerYear,
	}
}
