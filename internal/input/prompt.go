package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// LinePrompter asks questions on a line-oriented console and re-prompts
// until each answer parses.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter returns a prompter reading answers from r and writing
// prompts and validation messages to w.
func NewLinePrompter(r io.Reader, w io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(r), out: w}
}

func (p *LinePrompter) readLine(prompt string) (string, error) {
	fmt.Fprintf(p.out, "  %s ", prompt)
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(p.out)
			return "", ErrNoInput
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// retry loops until parse accepts the line read for prompt.
func retry[T any](p *LinePrompter, prompt string, parse func(string) (T, error)) (T, error) {
	for {
		line, err := p.readLine(prompt)
		if err != nil {
			var zero T
			return zero, err
		}
		v, err := parse(line)
		if err == nil {
			return v, nil
		}
		fmt.Fprintf(p.out, "  %s, try again.\n", err)
	}
}

// Text reads a free-text answer. Empty answers are allowed.
func (p *LinePrompter) Text(title string) (string, error) {
	return p.readLine(title + ":")
}

// Quantity reads a non-negative number.
func (p *LinePrompter) Quantity(title string) (float64, error) {
	return retry(p, title+":", ParseQuantity)
}

// HouseholdSize reads a positive whole number.
func (p *LinePrompter) HouseholdSize(title string) (int, error) {
	return retry(p, title+":", ParseHouseholdSize)
}

// Choose lists options with 1-based numbers and reads a selection.
func (p *LinePrompter) Choose(title string, options []Option) (string, error) {
	fmt.Fprintf(p.out, "  %s\n", title)
	for i, o := range options {
		fmt.Fprintf(p.out, "     (%d) %s\n", i+1, o.Label)
	}
	return retry(p, ">", func(s string) (string, error) {
		return ParseChoice(s, options)
	})
}

// Confirm reads a yes/no answer.
func (p *LinePrompter) Confirm(title string) (bool, error) {
	return retry(p, title+" [y/n]:", func(s string) (bool, error) {
		switch strings.ToLower(s) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		return false, &InvalidOptionError{Input: s, Options: []string{"y", "n"}}
	})
}
