package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/theirongolddev/cfoot/internal/config"
	"github.com/theirongolddev/cfoot/internal/estimator"
	"github.com/theirongolddev/cfoot/internal/greenops"
	"github.com/theirongolddev/cfoot/internal/input"
	"github.com/theirongolddev/cfoot/internal/model"
	"github.com/theirongolddev/cfoot/internal/survey"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	flagCalcCars       []string
	flagCalcVehicles   []string
	flagCalcFlights    []string
	flagCalcKWh        string
	flagCalcSource     string
	flagCalcAppliances []string
	flagCalcDiet       string
	flagCalcServings   []string
	flagCalcItems      []string
	flagCalcName       string
	flagCalcCountry    string
	flagCalcHousehold  string
	flagCalcSave       bool
	flagCalcFormat     string
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Estimate a footprint from flags, without prompts",
	Example: `  cfoot calc --car petrol:25 --flight long:5500 --kwh 9 --diet vegetarian
  cfoot calc --vehicle train:40 --appliance 1500:2 --appliance 60:5 --source solar
  cfoot calc --diet custom --serving beef=1 --serving rice=2 --item clothing=3 --format json`,
	Args: cobra.NoArgs,
	RunE: runCalc,
}

func init() {
	f := calcCmd.Flags()
	f.StringArrayVar(&flagCalcCars, "car", nil, "Daily car travel as fuel:km (petrol, diesel, hybrid, electric)")
	f.StringArrayVar(&flagCalcVehicles, "vehicle", nil, "Daily travel as subtype:km (bus, train, motorbike, ...)")
	f.StringArrayVar(&flagCalcFlights, "flight", nil, "Flight this month as bucket:km (short, medium, long)")
	f.StringVar(&flagCalcKWh, "kwh", "", "Daily electricity use in kWh")
	f.StringVar(&flagCalcSource, "source", "grid_average", "Electricity source")
	f.StringArrayVar(&flagCalcAppliances, "appliance", nil, "Appliance as watts:hours per day (overrides --kwh)")
	f.StringVar(&flagCalcDiet, "diet", "", "Diet class (heavy_meat, average_meat, vegetarian, vegan, custom)")
	f.StringArrayVar(&flagCalcServings, "serving", nil, "Daily servings as item=n (custom diet)")
	f.StringArrayVar(&flagCalcItems, "item", nil, "Items bought per month as subtype=n")
	f.StringVar(&flagCalcName, "name", "", "Name (default from config)")
	f.StringVar(&flagCalcCountry, "country", "", "Country (default from config)")
	f.StringVar(&flagCalcHousehold, "household", "", "Household size (default from config)")
	f.BoolVar(&flagCalcSave, "save", false, "Save the result to history")
	f.StringVarP(&flagCalcFormat, "format", "f", "text", "Output format: text, yaml or json")
	rootCmd.AddCommand(calcCmd)
}

// calcRequest is the raw flag input for calc.
type calcRequest struct {
	Cars       []string
	Vehicles   []string
	Flights    []string
	KWh        string
	Source     string
	Appliances []string
	Diet       string
	Servings   []string
	Items      []string
	Name       string
	Country    string
	Household  string
}

// calcOutput is the machine-readable calc result.
type calcOutput struct {
	ID            string                     `json:"id,omitempty" yaml:"id,omitempty"`
	Summary       model.Summary              `json:"summary" yaml:"summary"`
	Equivalencies greenops.EquivalencyOutput `json:"equivalencies" yaml:"equivalencies"`
}

func runCalc(cmd *cobra.Command, _ []string) error {
	format, err := input.ParseChoice(flagCalcFormat, input.OptionsFromKeys([]string{"text", "yaml", "json"}))
	if err != nil {
		return fmt.Errorf("--format: %w", err)
	}

	answers, err := parseCalcRequest(calcRequest{
		Cars:       flagCalcCars,
		Vehicles:   flagCalcVehicles,
		Flights:    flagCalcFlights,
		KWh:        flagCalcKWh,
		Source:     flagCalcSource,
		Appliances: flagCalcAppliances,
		Diet:       flagCalcDiet,
		Servings:   flagCalcServings,
		Items:      flagCalcItems,
		Name:       flagCalcName,
		Country:    flagCalcCountry,
		Household:  flagCalcHousehold,
	}, appCfg.UserProfile())
	if err != nil {
		return err
	}

	table, err := appCfg.FactorTable()
	if err != nil {
		return fmt.Errorf("building factor table: %w", err)
	}
	sess := estimator.New(table, answers.Profile)
	answers.Apply(sess)
	sum, err := sess.Finalize()
	if err != nil {
		return err
	}

	now := time.Now()
	out := calcOutput{Summary: sum}
	if flagCalcSave {
		rec := sess.Snapshot(now)
		h, err := openHistory()
		if err != nil {
			return err
		}
		defer h.Close()
		if err := h.Append(rec); err != nil {
			return fmt.Errorf("saving estimate: %w", err)
		}
		out.ID = rec.ID
	}

	if format == "text" {
		printReport(sum, now)
		if out.ID != "" {
			infof("  Saved as %s\n", out.ID)
		}
		return nil
	}

	out.Equivalencies = equivalencies(sum.AnnualTotal)
	return encode(cmd.OutOrStdout(), format, out)
}

// encode writes v as yaml or json.
func encode(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported format %q", format)
}

// parseCalcRequest turns calc flags into interview answers. Malformed
// values fail the command; unknown subtypes are left for the session to
// count as unrecognized.
func parseCalcRequest(req calcRequest, profile model.UserProfile) (survey.Answers, error) {
	var a survey.Answers

	a.Profile = profile
	if req.Name != "" {
		a.Profile.Name = req.Name
	}
	if req.Country != "" {
		a.Profile.Country = req.Country
	}
	if req.Household != "" {
		n, err := input.ParseHouseholdSize(req.Household)
		if err != nil {
			return a, fmt.Errorf("--household: %w", err)
		}
		a.Profile.HouseholdSize = n
	}

	for _, raw := range req.Cars {
		fuel, km, err := splitQuantity(raw, ":")
		if err != nil {
			return a, fmt.Errorf("--car: %w", err)
		}
		a.Transport = append(a.Transport, estimator.CarEntry(config.NormalizeSubtype(fuel), km))
	}
	for _, raw := range req.Vehicles {
		sub, km, err := splitQuantity(raw, ":")
		if err != nil {
			return a, fmt.Errorf("--vehicle: %w", err)
		}
		a.Transport = append(a.Transport, vehicleEntry(config.NormalizeSubtype(sub), km))
	}
	for _, raw := range req.Flights {
		bucket, km, err := splitQuantity(raw, ":")
		if err != nil {
			return a, fmt.Errorf("--flight: %w", err)
		}
		a.Transport = append(a.Transport, estimator.FlightEntry(bucket, km))
	}

	a.Electricity.Source = req.Source
	if req.KWh != "" {
		kwh, err := input.ParseQuantity(req.KWh)
		if err != nil {
			return a, fmt.Errorf("--kwh: %w", err)
		}
		a.Electricity.DailyKWh = kwh
	}
	for _, raw := range req.Appliances {
		watts, hours, err := splitPair(raw, ":")
		if err != nil {
			return a, fmt.Errorf("--appliance: %w", err)
		}
		w, err := input.ParseQuantity(watts)
		if err != nil {
			return a, fmt.Errorf("--appliance watts: %w", err)
		}
		h, err := input.ParseQuantity(hours)
		if err != nil {
			return a, fmt.Errorf("--appliance hours: %w", err)
		}
		a.Electricity.Appliances = append(a.Electricity.Appliances, estimator.Appliance{Watts: w, HoursPerDay: h})
	}

	a.Food.Diet = config.NormalizeSubtype(req.Diet)
	if len(req.Servings) > 0 {
		servings, err := parseQuantities(req.Servings)
		if err != nil {
			return a, fmt.Errorf("--serving: %w", err)
		}
		a.Food.Servings = servings
		if a.Food.Diet == "" {
			a.Food.Diet = estimator.DietCustom
		}
	}

	items, err := parseQuantities(req.Items)
	if err != nil {
		return a, fmt.Errorf("--item: %w", err)
	}
	a.Shopping = items

	return a, nil
}

// vehicleEntry maps a factor subtype to its transport mode: car_* keys are
// cars, anything else names its own mode.
func vehicleEntry(subtype string, km float64) estimator.TransportEntry {
	if strings.HasPrefix(subtype, "car_") {
		return estimator.TransportEntry{Mode: estimator.ModeCar, Subtype: subtype, DistanceKm: km}
	}
	return estimator.TransportEntry{Mode: estimator.TransportMode(subtype), DistanceKm: km}
}

func splitPair(raw, sep string) (string, string, error) {
	key, val, ok := strings.Cut(raw, sep)
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", "", &input.ParseError{Input: raw, Reason: fmt.Sprintf("expected key%svalue", sep)}
	}
	return key, strings.TrimSpace(val), nil
}

func splitQuantity(raw, sep string) (string, float64, error) {
	key, val, err := splitPair(raw, sep)
	if err != nil {
		return "", 0, err
	}
	q, err := input.ParseQuantity(val)
	if err != nil {
		return "", 0, err
	}
	return key, q, nil
}

// parseQuantities parses key=n pairs, summing repeated keys.
func parseQuantities(raws []string) (map[string]float64, error) {
	out := make(map[string]float64, len(raws))
	for _, raw := range raws {
		key, q, err := splitQuantity(raw, "=")
		if err != nil {
			return nil, err
		}
		out[config.NormalizeSubtype(key)] += q
	}
	return out, nil
}
