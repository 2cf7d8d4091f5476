package survey

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/cfoot/internal/config"
	"github.com/theirongolddev/cfoot/internal/estimator"
	"github.com/theirongolddev/cfoot/internal/input"
	"github.com/theirongolddev/cfoot/internal/model"
)

func script(lines ...string) *input.LinePrompter {
	return input.NewLinePrompter(strings.NewReader(strings.Join(lines, "\n")+"\n"), io.Discard)
}

func TestRun_DrivesSessionEndToEnd(t *testing.T) {
	ask := script(
		// profile
		"Ada", "UK", "2",
		// transport
		"y", "petrol", "10",
		"bus", "5",
		"none",
		"y", "long", "5000", "n",
		// electricity
		"grid average", "2",
		"1500", "4", "y",
		"100", "5", "n",
		// food
		"average_meat",
		// shopping: books, clothing, electronics, furniture, household
		"0", "2", "0", "0", "1",
	)
	table := config.DefaultFactors()

	answers, err := New(ask, table).Run(model.NewUserProfile("", ""), true)
	require.NoError(t, err)

	assert.Equal(t, "Ada", answers.Profile.Name)
	assert.Equal(t, "UK", answers.Profile.Country)
	assert.Equal(t, 2, answers.Profile.HouseholdSize)
	require.Len(t, answers.Transport, 3)
	assert.Equal(t, "car_petrol", answers.Transport[0].Subtype)
	assert.Equal(t, estimator.ModeBus, answers.Transport[1].Mode)
	assert.Equal(t, "long", answers.Transport[2].FlightBucket)
	assert.Equal(t, "grid_average", answers.Electricity.Source)
	assert.Len(t, answers.Electricity.Appliances, 2)
	assert.Equal(t, map[string]float64{"clothing": 2, "household": 1}, answers.Shopping)

	sess := estimator.New(table, answers.Profile)
	answers.Apply(sess)
	sum, err := sess.Finalize()
	require.NoError(t, err)

	assert.InDelta(t, 10*30*0.192+5*30*0.105+5000*0.150, sum.Breakdown.Transport, 1e-9)
	assert.InDelta(t, 6.5*30*0.45, sum.Breakdown.Electricity, 1e-9)
	assert.InDelta(t, 240, sum.Breakdown.Food, 1e-9)
	assert.InDelta(t, 35, sum.Breakdown.Shopping, 1e-9)
	assert.Empty(t, sum.Warnings)
}

func TestRun_SkipsProfileWhenKnown(t *testing.T) {
	ask := script(
		"n", "none", "n",
		"coal", "1", "10",
		"vegan",
		"0", "0", "0", "0", "0",
	)
	profile := model.UserProfile{Name: "Grace", Country: "US", HouseholdSize: 3}

	answers, err := New(ask, config.DefaultFactors()).Run(profile, false)
	require.NoError(t, err)

	assert.Equal(t, profile, answers.Profile)
	assert.Empty(t, answers.Transport)
	assert.Equal(t, 10.0, answers.Electricity.DailyKWh)
	assert.Equal(t, "vegan", answers.Food.Diet)
	assert.Empty(t, answers.Shopping)
}

func TestFood_CustomServings(t *testing.T) {
	// beef, bread, cheese, chicken, eggs, fish, fruit, lamb, legumes, milk,
	// pork, rice, vegetables
	ask := script("custom", "1", "0", "0", "2", "0", "0", "0", "0", "0", "0", "0", "0", "3")

	in, err := New(ask, config.DefaultFactors()).Food()
	require.NoError(t, err)

	assert.Equal(t, estimator.DietCustom, in.Diet)
	assert.Equal(t, map[string]float64{"beef": 1, "chicken": 2, "vegetables": 3}, in.Servings)
}

func TestRun_RepromptsOnBadAnswer(t *testing.T) {
	ask := script(
		"maybe", "n", // confirm retries
		"spaceship", "none", // choice retries
		"n",
		"solar", "1", "-3", "4",
		"vegetarian",
		"0", "0", "0", "0", "0",
	)

	answers, err := New(ask, config.DefaultFactors()).Run(model.NewUserProfile("x", "y"), false)
	require.NoError(t, err)
	assert.Equal(t, 4.0, answers.Electricity.DailyKWh)
}

func TestRun_EOFStopsWithNoInput(t *testing.T) {
	_, err := New(script("y"), config.DefaultFactors()).Run(model.NewUserProfile("", ""), false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, input.ErrNoInput))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Natural Gas", Label("natural_gas"))
	assert.Equal(t, "Beef", Label("beef"))
}
