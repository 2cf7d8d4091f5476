// Package input converts raw user strings into the typed values the
// estimator accepts.
//
// The parse functions are pure and total: they return a value or an error
// and never prompt. LinePrompter layers the interactive retry policy on top.
package input

import (
	"math"
	"strconv"
	"strings"

	"github.com/theirongolddev/cfoot/internal/config"
)

// ParseQuantity parses a non-negative finite number such as a distance,
// kWh figure, serving count or item quantity. A decimal comma is accepted.
func ParseQuantity(s string) (float64, error) {
	raw := s
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, &ParseError{Input: raw, Reason: "empty"}
	}
	if i := strings.LastIndex(s, ","); i >= 0 && isThousandsGroup(s[i+1:]) {
		return 0, &ParseError{Input: raw, Reason: "ambiguous comma, write 1000 or 1.5"}
	}
	s = strings.ReplaceAll(s, ",", ".")

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &ParseError{Input: raw, Reason: "not a number"}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ParseError{Input: raw, Reason: "not a finite number"}
	}
	if v < 0 {
		return 0, &ParseError{Input: raw, Reason: "must not be negative"}
	}
	return v, nil
}

// isThousandsGroup reports whether s is exactly three digits, as after the
// comma in "1,000".
func isThousandsGroup(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ParseHouseholdSize parses a positive whole number of people.
func ParseHouseholdSize(s string) (int, error) {
	raw := s
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &ParseError{Input: raw, Reason: "not a whole number"}
	}
	if n <= 0 {
		return 0, &ParseError{Input: raw, Reason: "must be at least 1"}
	}
	return n, nil
}

// Option is one entry of a closed choice set.
type Option struct {
	Key   string
	Label string
}

// Keys returns the option keys in order.
func Keys(options []Option) []string {
	keys := make([]string, len(options))
	for i, o := range options {
		keys[i] = o.Key
	}
	return keys
}

// OptionsFromKeys builds options whose labels are the keys themselves.
func OptionsFromKeys(keys []string) []Option {
	opts := make([]Option, len(keys))
	for i, k := range keys {
		opts[i] = Option{Key: k, Label: k}
	}
	return opts
}

// ParseChoice resolves s against options. It accepts a key (compared after
// subtype normalization, so "Natural Gas" matches "natural_gas") or a 1-based
// index into options.
func ParseChoice(s string, options []Option) (string, error) {
	trimmed := strings.TrimSpace(s)
	if idx, err := strconv.Atoi(trimmed); err == nil {
		if idx >= 1 && idx <= len(options) {
			return options[idx-1].Key, nil
		}
		return "", &InvalidOptionError{Input: s, Options: Keys(options)}
	}

	want := config.NormalizeSubtype(trimmed)
	for _, o := range options {
		if config.NormalizeSubtype(o.Key) == want {
			return o.Key, nil
		}
	}
	return "", &InvalidOptionError{Input: s, Options: Keys(options)}
}

// ChoiceOrFallback applies the default-with-warning policy: an invalid choice
// resolves to fallback and the error is returned alongside so the caller can
// surface a warning.
func ChoiceOrFallback(s string, options []Option, fallback string) (string, error) {
	key, err := ParseChoice(s, options)
	if err != nil {
		return fallback, err
	}
	return key, nil
}
