package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/cfoot/internal/config"
	"github.com/theirongolddev/cfoot/internal/input"
	"github.com/theirongolddev/cfoot/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// SetupValues holds the answers bound to the setup form.
type SetupValues struct {
	Name      string
	Country   string
	Household string
	Theme     string
	SaveRuns  bool
}

// NewSetupValues seeds the form from an existing config.
func NewSetupValues(cfg config.Config) SetupValues {
	household := cfg.Profile.HouseholdSize
	if household < 1 {
		household = 1
	}
	themeName := cfg.Appearance.Theme
	if themeName == "" {
		themeName = theme.FlexokiDark.Name
	}
	return SetupValues{
		Name:      cfg.Profile.Name,
		Country:   cfg.Profile.Country,
		Household: strconv.Itoa(household),
		Theme:     themeName,
		SaveRuns:  cfg.History.AutoSave,
	}
}

// NewSetupForm builds the profile wizard bound to vals.
func NewSetupForm(vals *SetupValues) *huh.Form {
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to cfoot").
				Description("These answers prefill every estimate.\nRun `cfoot setup` again anytime."),
			huh.NewInput().
				Title("Your name").
				Value(&vals.Name),
			huh.NewInput().
				Title("Country").
				Value(&vals.Country),
			huh.NewInput().
				Title("People in your household").
				Validate(func(s string) error {
					_, err := input.ParseHouseholdSize(s)
					return err
				}).
				Value(&vals.Household),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.Theme),
			huh.NewConfirm().
				Title("Save every estimate to history?").
				Affirmative("Yes").
				Negative("No").
				Value(&vals.SaveRuns),
		),
	)
}

// Apply copies the form answers into cfg.
func (v SetupValues) Apply(cfg *config.Config) error {
	household, err := input.ParseHouseholdSize(v.Household)
	if err != nil {
		return err
	}
	cfg.Profile.Name = strings.TrimSpace(v.Name)
	cfg.Profile.Country = strings.TrimSpace(v.Country)
	cfg.Profile.HouseholdSize = household
	cfg.Appearance.Theme = v.Theme
	cfg.History.AutoSave = v.SaveRuns
	return nil
}

// RunSetup runs the setup form, then saves the result. The active theme is
// switched immediately so the rest of the run uses it.
func RunSetup(cfg config.Config) (config.Config, error) {
	vals := NewSetupValues(cfg)
	if err := NewSetupForm(&vals).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return cfg, ErrAborted
		}
		return cfg, fmt.Errorf("running setup form: %w", err)
	}
	if err := vals.Apply(&cfg); err != nil {
		return cfg, err
	}
	theme.SetActive(cfg.Appearance.Theme)
	if err := config.Save(cfg); err != nil {
		return cfg, fmt.Errorf("saving config: %w", err)
	}
	return cfg, nil
}
