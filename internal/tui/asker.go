package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/cfoot/internal/input"

	"github.com/charmbracelet/huh"
)

// ErrAborted is returned when the user cancels a form with ctrl+c or esc.
var ErrAborted = errors.New("aborted")

// FormAsker asks each interview question as a one-field huh form. Input
// fields validate with the same parse functions the line prompter uses,
// so invalid answers are rejected in place.
type FormAsker struct {
	accessible bool
}

// NewFormAsker returns a form asker. Accessible mode renders plain
// prompts for screen readers.
func NewFormAsker(accessible bool) *FormAsker {
	return &FormAsker{accessible: accessible}
}

func (a *FormAsker) run(field huh.Field) error {
	err := huh.NewForm(huh.NewGroup(field)).
		WithAccessible(a.accessible).
		WithShowHelp(false).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrAborted
	}
	if err != nil {
		return fmt.Errorf("running form: %w", err)
	}
	return nil
}

// Text asks for free text. Empty answers are allowed.
func (a *FormAsker) Text(title string) (string, error) {
	var v string
	err := a.run(huh.NewInput().Title(title).Value(&v))
	return strings.TrimSpace(v), err
}

// Quantity asks for a non-negative number.
func (a *FormAsker) Quantity(title string) (float64, error) {
	raw, err := a.validated(title, "0", func(s string) error {
		_, err := input.ParseQuantity(s)
		return err
	})
	if err != nil {
		return 0, err
	}
	return input.ParseQuantity(raw)
}

// HouseholdSize asks for a positive whole number.
func (a *FormAsker) HouseholdSize(title string) (int, error) {
	raw, err := a.validated(title, "1", func(s string) error {
		_, err := input.ParseHouseholdSize(s)
		return err
	})
	if err != nil {
		return 0, err
	}
	return input.ParseHouseholdSize(raw)
}

func (a *FormAsker) validated(title, placeholder string, validate func(string) error) (string, error) {
	var v string
	err := a.run(huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Validate(validate).
		Value(&v))
	return v, err
}

// Choose asks for one of options. The select cannot produce a key outside
// the set.
func (a *FormAsker) Choose(title string, options []input.Option) (string, error) {
	if len(options) == 0 {
		return "", &input.InvalidOptionError{Input: "", Options: nil}
	}
	opts := make([]huh.Option[string], len(options))
	for i, o := range options {
		opts[i] = huh.NewOption(o.Label, o.Key)
	}
	v := options[0].Key
	err := a.run(huh.NewSelect[string]().Title(title).Options(opts...).Value(&v))
	return v, err
}

// Confirm asks a yes/no question.
func (a *FormAsker) Confirm(title string) (bool, error) {
	var v bool
	err := a.run(huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&v))
	return v, err
}
