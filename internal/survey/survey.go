// Package survey runs the footprint interview: it asks questions through an
// Asker and turns the answers into typed estimator inputs.
package survey

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/theirongolddev/cfoot/internal/config"
	"github.com/theirongolddev/cfoot/internal/estimator"
	"github.com/theirongolddev/cfoot/internal/input"
	"github.com/theirongolddev/cfoot/internal/model"
)

// Asker is a front end that can ask one validated question at a time.
// input.LinePrompter and the huh-based asker in internal/tui implement it.
type Asker interface {
	Text(title string) (string, error)
	Quantity(title string) (float64, error)
	HouseholdSize(title string) (int, error)
	Choose(title string, options []input.Option) (string, error)
	Confirm(title string) (bool, error)
}

// Answers holds everything the interview collected.
type Answers struct {
	Profile     model.UserProfile          `json:"profile" yaml:"profile"`
	Transport   []estimator.TransportEntry `json:"transport" yaml:"transport"`
	Electricity estimator.ElectricityInput `json:"electricity" yaml:"electricity"`
	Food        estimator.FoodInput        `json:"food" yaml:"food"`
	Shopping    map[string]float64         `json:"shopping" yaml:"shopping"`
}

// Apply records every answer on sess, in category order.
func (a Answers) Apply(sess *estimator.Session) []estimator.IntakeResult {
	return []estimator.IntakeResult{
		sess.RecordTransport(a.Transport),
		sess.RecordElectricity(a.Electricity),
		sess.RecordFood(a.Food),
		sess.RecordShopping(a.Shopping),
	}
}

// Survey asks the interview questions against one factor table.
type Survey struct {
	ask   Asker
	table config.FactorTable
}

// New returns a survey that offers the subtypes present in table.
func New(ask Asker, table config.FactorTable) *Survey {
	return &Survey{ask: ask, table: table}
}

// Run asks every section. When askProfile is false the given profile is
// used as-is.
func (s *Survey) Run(profile model.UserProfile, askProfile bool) (Answers, error) {
	var (
		a   Answers
		err error
	)
	a.Profile = profile
	if askProfile {
		if a.Profile, err = s.Profile(profile); err != nil {
			return a, err
		}
	}
	if a.Transport, err = s.Transport(); err != nil {
		return a, fmt.Errorf("transport: %w", err)
	}
	if a.Electricity, err = s.Electricity(); err != nil {
		return a, fmt.Errorf("electricity: %w", err)
	}
	if a.Food, err = s.Food(); err != nil {
		return a, fmt.Errorf("food: %w", err)
	}
	if a.Shopping, err = s.Shopping(); err != nil {
		return a, fmt.Errorf("shopping: %w", err)
	}
	log.Debug().
		Int("transport_entries", len(a.Transport)).
		Int("appliances", len(a.Electricity.Appliances)).
		Str("diet", a.Food.Diet).
		Msg("survey complete")
	return a, nil
}

// Profile asks for name, country and household size. Empty text answers
// keep the corresponding default.
func (s *Survey) Profile(defaults model.UserProfile) (model.UserProfile, error) {
	p := defaults
	name, err := s.ask.Text("Your name")
	if err != nil {
		return p, err
	}
	if name != "" {
		p.Name = name
	}
	country, err := s.ask.Text("Country")
	if err != nil {
		return p, err
	}
	if country != "" {
		p.Country = country
	}
	if p.HouseholdSize, err = s.ask.HouseholdSize("People in your household"); err != nil {
		return p, err
	}
	return p, nil
}

const none = "none"

// Transport asks about a car, other regular transport and flights.
func (s *Survey) Transport() ([]estimator.TransportEntry, error) {
	var entries []estimator.TransportEntry

	drives, err := s.ask.Confirm("Do you drive a car?")
	if err != nil {
		return nil, err
	}
	if drives {
		fuel, err := s.ask.Choose("Fuel type", Options(estimator.CarFuels))
		if err != nil {
			return nil, err
		}
		km, err := s.ask.Quantity("Kilometres driven per day")
		if err != nil {
			return nil, err
		}
		entries = append(entries, estimator.CarEntry(fuel, km))
	}

	other := []string{
		string(estimator.ModeMotorbike), string(estimator.ModeBus), string(estimator.ModeTrain),
		string(estimator.ModeBicycle), string(estimator.ModeWalk),
	}
	opts := append(Options(other), input.Option{Key: none, Label: "Nothing else"})
	for {
		mode, err := s.ask.Choose("Other regular transport", opts)
		if err != nil {
			return nil, err
		}
		if mode == none {
			break
		}
		km, err := s.ask.Quantity(fmt.Sprintf("Kilometres by %s per day", mode))
		if err != nil {
			return nil, err
		}
		entries = append(entries, estimator.TransportEntry{Mode: estimator.TransportMode(mode), DistanceKm: km})
	}

	flew, err := s.ask.Confirm("Did you fly this month?")
	if err != nil {
		return nil, err
	}
	for flew {
		bucket, err := s.ask.Choose("Flight length", Options(estimator.FlightBuckets))
		if err != nil {
			return nil, err
		}
		km, err := s.ask.Quantity("Distance flown (km)")
		if err != nil {
			return nil, err
		}
		entries = append(entries, estimator.FlightEntry(bucket, km))
		if flew, err = s.ask.Confirm("Another flight?"); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

const (
	methodKWh        = "kwh"
	methodAppliances = "appliances"
)

// Electricity asks for the supply source and either a daily kWh figure or
// a list of appliances.
func (s *Survey) Electricity() (estimator.ElectricityInput, error) {
	var in estimator.ElectricityInput
	var err error

	if in.Source, err = s.ask.Choose("Main electricity source", Options(s.table.Subtypes(model.CategoryElectricity))); err != nil {
		return in, err
	}
	method, err := s.ask.Choose("How do you want to report usage?", []input.Option{
		{Key: methodKWh, Label: "Daily kWh from my bill"},
		{Key: methodAppliances, Label: "List my appliances"},
	})
	if err != nil {
		return in, err
	}
	if method == methodKWh {
		in.DailyKWh, err = s.ask.Quantity("kWh per day")
		return in, err
	}

	for {
		var a estimator.Appliance
		if a.Watts, err = s.ask.Quantity("Appliance power (watts)"); err != nil {
			return in, err
		}
		if a.HoursPerDay, err = s.ask.Quantity("Hours used per day"); err != nil {
			return in, err
		}
		in.Appliances = append(in.Appliances, a)
		more, err := s.ask.Confirm("Add another appliance?")
		if err != nil {
			return in, err
		}
		if !more {
			return in, nil
		}
	}
}

// Food asks for a diet class, or daily servings per food item for a custom
// diet.
func (s *Survey) Food() (estimator.FoodInput, error) {
	var in estimator.FoodInput
	opts := Options(s.table.DietClasses())
	opts = append(opts, input.Option{Key: estimator.DietCustom, Label: "Custom (count servings)"})

	diet, err := s.ask.Choose("Which best describes your diet?", opts)
	if err != nil {
		return in, err
	}
	in.Diet = diet
	if diet != estimator.DietCustom {
		return in, nil
	}

	in.Servings = make(map[string]float64)
	for _, item := range s.table.Subtypes(model.CategoryFood) {
		n, err := s.ask.Quantity(fmt.Sprintf("Daily servings of %s", Label(item)))
		if err != nil {
			return in, err
		}
		if n > 0 {
			in.Servings[item] = n
		}
	}
	return in, nil
}

// Shopping asks how many items of each kind are bought per month.
func (s *Survey) Shopping() (map[string]float64, error) {
	items := make(map[string]float64)
	for _, sub := range s.table.Subtypes(model.CategoryShopping) {
		n, err := s.ask.Quantity(fmt.Sprintf("%s items bought per month", Label(sub)))
		if err != nil {
			return nil, err
		}
		if n > 0 {
			items[sub] = n
		}
	}
	return items, nil
}

var titleCaser = cases.Title(language.English)

// Label turns a factor key into display text: "natural_gas" -> "Natural Gas".
func Label(key string) string {
	return titleCaser.String(strings.ReplaceAll(key, "_", " "))
}

// Options builds choice options labelled with Label.
func Options(keys []string) []input.Option {
	opts := make([]input.Option, len(keys))
	for i, k := range keys {
		opts[i] = input.Option{Key: k, Label: Label(k)}
	}
	return opts
}
