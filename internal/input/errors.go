package input

import (
	"fmt"
	"strings"
)

type constError string

func (e constError) Error() string { return string(e) }

var (
	// ErrParse matches any *ParseError via errors.Is.
	ErrParse = constError("parse error")

	// ErrInvalidOption matches any *InvalidOptionError via errors.Is.
	ErrInvalidOption = constError("invalid option")

	// ErrNoInput is returned by LinePrompter when the reader is exhausted.
	ErrNoInput = constError("no more input")
)

// ParseError reports an unparsable or out-of-range numeric input.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid number %q: %s", e.Input, e.Reason)
}

// Is lets callers match with errors.Is(err, ErrParse).
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// InvalidOptionError reports a value outside a closed set of choices.
type InvalidOptionError struct {
	Input   string
	Options []string
}

func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("invalid option %q: choose one of %s", e.Input, strings.Join(e.Options, ", "))
}

// Is lets callers match with errors.Is(err, ErrInvalidOption).
func (e *InvalidOptionError) Is(target error) bool { return target == ErrInvalidOption }
