package input

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinePrompter_QuantityRetriesUntilValid(t *testing.T) {
	var out bytes.Buffer
	p := NewLinePrompter(strings.NewReader("abc\n-5\n42.5\n"), &out)

	got, err := p.Quantity("Daily distance (km)")
	require.NoError(t, err)
	assert.InDelta(t, 42.5, got, 1e-12)
	assert.Equal(t, 2, strings.Count(out.String(), "try again"))
}

func TestLinePrompter_ChooseByIndexAndKey(t *testing.T) {
	var out bytes.Buffer
	opts := OptionsFromKeys([]string{"petrol", "diesel"})
	p := NewLinePrompter(strings.NewReader("9\n2\ndiesel\n"), &out)

	got, err := p.Choose("Fuel type", opts)
	require.NoError(t, err)
	assert.Equal(t, "diesel", got)
	assert.Contains(t, out.String(), "(1) petrol")

	got, err = p.Choose("Fuel type", opts)
	require.NoError(t, err)
	assert.Equal(t, "diesel", got)
}

func TestLinePrompter_Confirm(t *testing.T) {
	p := NewLinePrompter(strings.NewReader("maybe\nY\nno\n"), &bytes.Buffer{})

	yes, err := p.Confirm("Add another?")
	require.NoError(t, err)
	assert.True(t, yes)

	yes, err = p.Confirm("Add another?")
	require.NoError(t, err)
	assert.False(t, yes)
}

func TestLinePrompter_EOF(t *testing.T) {
	p := NewLinePrompter(strings.NewReader("x\n"), &bytes.Buffer{})

	_, err := p.Quantity("kWh")
	assert.ErrorIs(t, err, ErrNoInput)
}

func TestLinePrompter_LastLineWithoutNewline(t *testing.T) {
	p := NewLinePrompter(strings.NewReader("3"), &bytes.Buffer{})

	n, err := p.HouseholdSize("Household size")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
