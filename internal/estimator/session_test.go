package estimator

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/cfoot/internal/config"
	"github.com/theirongolddev/cfoot/internal/model"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	return New(config.DefaultFactors(), model.NewUserProfile("Waithira", "United States"))
}

func TestRecordTransport_CarIsDistanceTimesThirtyTimesFactor(t *testing.T) {
	table := config.DefaultFactors()
	for _, fuel := range CarFuels {
		for _, d := range []float64{0, 1, 12.5, 42, 1000} {
			s := New(table, model.NewUserProfile("", ""))
			res := s.RecordTransport([]TransportEntry{CarEntry(fuel, d)})

			factor := table.Transport["car_"+fuel]
			want := d * 30 * factor
			assert.Equal(t, want, res.Emissions, "fuel=%s d=%v", fuel, d)
			assert.Equal(t, want, s.Breakdown().Transport)
			assert.Empty(t, res.Warnings)
		}
	}
}

func TestRecordTransport_UnknownSubtypeCountsZero(t *testing.T) {
	s := newTestSession(t)

	res := s.RecordTransport([]TransportEntry{
		{Mode: ModeCar, Subtype: "car_hydrogen", DistanceKm: 20},
		CarEntry("petrol", 10),
	})

	assert.Equal(t, 1, res.Unrecognized)
	assert.Equal(t, 1, s.Unrecognized())
	assert.InDelta(t, 10*30*0.192, res.Emissions, 1e-9)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "car_hydrogen")
}

func TestRecordTransport_UnknownModeCountsZero(t *testing.T) {
	s := newTestSession(t)

	res := s.RecordTransport([]TransportEntry{{Mode: "hovercraft", DistanceKm: 5}})

	assert.Equal(t, 0.0, res.Emissions)
	assert.Equal(t, 1, res.Unrecognized)
}

func TestRecordTransport_FlightsUseRawDistance(t *testing.T) {
	s := newTestSession(t)

	res := s.RecordTransport([]TransportEntry{
		FlightEntry("long", 6000),
		FlightEntry("Short", 800),
	})

	want := 6000*0.150 + 800*0.255
	assert.InDelta(t, want, res.Emissions, 1e-9)
	assert.Zero(t, res.Unrecognized)
}

func TestRecordTransport_InvalidFlightBucketDoesNotAbort(t *testing.T) {
	s := newTestSession(t)

	res := s.RecordTransport([]TransportEntry{
		FlightEntry("orbital", 5000),
		{Mode: ModeBus, DistanceKm: 10},
	})

	assert.InDelta(t, 10*30*0.105, res.Emissions, 1e-9)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "orbital")
}

func TestRecordTransport_AccumulatesAcrossCalls(t *testing.T) {
	s := newTestSession(t)

	s.RecordTransport([]TransportEntry{CarEntry("diesel", 20)})
	s.RecordTransport([]TransportEntry{{Mode: ModeTrain, DistanceKm: 15}})
	s.RecordTransport([]TransportEntry{{Mode: ModeBus, DistanceKm: 300, Monthly: true}})

	want := 20*30*0.171 + 15*30*0.041 + 300*0.105
	assert.InDelta(t, want, s.Breakdown().Transport, 1e-9)
}

func TestRecordTransport_RejectsNegativeDistance(t *testing.T) {
	s := newTestSession(t)

	res := s.RecordTransport([]TransportEntry{CarEntry("petrol", -10), CarEntry("petrol", math.NaN())})

	assert.Equal(t, 0.0, res.Emissions)
	assert.Len(t, res.Warnings, 2)
	assert.Zero(t, res.Unrecognized)
}

func TestRecordElectricity_ApplianceScenario(t *testing.T) {
	s := newTestSession(t)

	res := s.RecordElectricity(ElectricityInput{
		Source: "grid_average",
		Appliances: []Appliance{
			{Watts: 1500, HoursPerDay: 8},
			{Watts: 100, HoursPerDay: 4},
		},
	})

	assert.InDelta(t, 167.4, res.Emissions, 1e-6)
	assert.InDelta(t, 167.4, s.Breakdown().Electricity, 1e-6)
}

func TestRecordElectricity_DailyKWh(t *testing.T) {
	s := newTestSession(t)

	res := s.RecordElectricity(ElectricityInput{Source: "natural gas", DailyKWh: 30})

	assert.InDelta(t, 30*30*0.45, res.Emissions, 1e-9)
}

func TestRecordElectricity_UnknownSourceIsZero(t *testing.T) {
	s := newTestSession(t)

	res := s.RecordElectricity(ElectricityInput{Source: "fusion", DailyKWh: 30})

	assert.Equal(t, 0.0, res.Emissions)
	assert.Equal(t, 1, res.Unrecognized)
}

func TestRecordElectricity_SkipsInvalidAppliance(t *testing.T) {
	s := newTestSession(t)

	res := s.RecordElectricity(ElectricityInput{
		Source: "solar",
		Appliances: []Appliance{
			{Watts: -100, HoursPerDay: 2},
			{Watts: 100, HoursPerDay: 30},
			{Watts: 2000, HoursPerDay: 1},
		},
	})

	assert.InDelta(t, 2*30*0.05, res.Emissions, 1e-9)
	assert.Len(t, res.Warnings, 2)
}

func TestRecordElectricity_ReplacesPreviousValue(t *testing.T) {
	s := newTestSession(t)

	s.RecordElectricity(ElectricityInput{Source: "coal", DailyKWh: 10})
	s.RecordElectricity(ElectricityInput{Source: "wind", DailyKWh: 10})

	assert.InDelta(t, 10*30*0.02, s.Breakdown().Electricity, 1e-9)
}

func TestRecordFood_DietClasses(t *testing.T) {
	tests := []struct {
		diet string
		want float64
	}{
		{"heavy_meat", 360},
		{"average_meat", 240},
		{"vegetarian", 150},
		{"vegan", 90},
	}
	for _, tt := range tests {
		s := newTestSession(t)
		res := s.RecordFood(FoodInput{Diet: tt.diet})
		assert.Equal(t, tt.want, res.Emissions, tt.diet)
	}
}

func TestRecordFood_CustomServings(t *testing.T) {
	s := newTestSession(t)

	res := s.RecordFood(FoodInput{
		Diet: DietCustom,
		Servings: map[string]float64{
			"beef":       1,
			"vegetables": 4,
			"unicorn":    2,
			"rice":       -1,
		},
	})

	assert.InDelta(t, (6.6+4*0.15)*30, res.Emissions, 1e-9)
	assert.Equal(t, 1, res.Unrecognized)
	assert.Len(t, res.Warnings, 2)
}

func TestRecordFood_EmptyDietWithServingsUsesServings(t *testing.T) {
	s := newTestSession(t)

	res := s.RecordFood(FoodInput{Servings: map[string]float64{"chicken": 2}})

	assert.InDelta(t, 2*1.3*30, res.Emissions, 1e-9)
}

func TestRecordFood_UnknownDietIsZero(t *testing.T) {
	s := newTestSession(t)

	res := s.RecordFood(FoodInput{Diet: "carnivore"})

	assert.Equal(t, 0.0, res.Emissions)
	assert.Equal(t, 1, res.Unrecognized)
}

func TestRecordShopping(t *testing.T) {
	s := newTestSession(t)

	res := s.RecordShopping(map[string]float64{
		"clothing": 10,
		"books":    2,
		"yachts":   1,
	})

	assert.InDelta(t, 10*15+2*2.5, res.Emissions, 1e-9)
	assert.Equal(t, 1, res.Unrecognized)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "yachts")
}

func TestFinalize_Totals(t *testing.T) {
	s := New(config.DefaultFactors(), model.UserProfile{Name: "Waithira", Country: "United States", HouseholdSize: 2})

	s.RecordTransport([]TransportEntry{CarEntry("petrol", 25)})
	s.RecordElectricity(ElectricityInput{Source: "natural_gas", DailyKWh: 30})
	s.RecordFood(FoodInput{Diet: "average_meat"})
	s.RecordShopping(map[string]float64{"clothing": 10})

	sum, err := s.Finalize()
	require.NoError(t, err)

	b := s.Breakdown()
	assert.InDelta(t, b.Transport+b.Electricity+b.Food+b.Shopping, sum.MonthlyTotal, 1e-6)
	assert.InDelta(t, sum.MonthlyTotal*12, sum.AnnualTotal, 1e-6)
	assert.InDelta(t, sum.AnnualTotal/2, sum.PerCapita, 1e-6)
	assert.InDelta(t, sum.AnnualTotal/1000, sum.AnnualTonnes, 1e-9)
	assert.InDelta(t, 16000.0/12, sum.MonthlyBenchmark, 1e-9)
	assert.Equal(t, 16000.0, sum.Comparison.BenchmarkKg)
	assert.InDelta(t, sum.AnnualTotal-16000, sum.Comparison.DifferenceKg, 1e-6)
}

func TestFinalize_HouseholdSize(t *testing.T) {
	for _, n := range []int{0, -1} {
		s := New(config.DefaultFactors(), model.UserProfile{HouseholdSize: n})
		_, err := s.Finalize()
		assert.ErrorIs(t, err, ErrInvalidProfile, "household %d", n)
	}

	for _, n := range []int{1, 3, 7} {
		s := New(config.DefaultFactors(), model.UserProfile{HouseholdSize: n})
		s.RecordFood(FoodInput{Diet: "vegan"})
		sum, err := s.Finalize()
		require.NoError(t, err)
		assert.InDelta(t, sum.AnnualTotal/float64(n), sum.PerCapita, 1e-9)
	}
}

func TestCompare(t *testing.T) {
	above := Compare(18000)
	assert.Equal(t, model.DirectionAbove, above.Direction)
	assert.Equal(t, 2000.0, above.DifferenceKg)

	below := Compare(9000)
	assert.Equal(t, model.DirectionBelow, below.Direction)
	assert.Equal(t, -7000.0, below.DifferenceKg)

	assert.Equal(t, model.DirectionEqual, Compare(16000).Direction)
}

func TestFinalize_ChartDataOnlyPositive(t *testing.T) {
	s := newTestSession(t)
	s.RecordFood(FoodInput{Diet: "vegan"})
	s.RecordElectricity(ElectricityInput{Source: "fusion", DailyKWh: 10})

	sum, err := s.Finalize()
	require.NoError(t, err)

	entries := sum.ChartData()
	require.Len(t, entries, 1)
	assert.Equal(t, model.CategoryFood, entries[0].Category)
	assert.Equal(t, 1, sum.Unrecognized)
	assert.Len(t, sum.Warnings, 1)
}

func TestSnapshot(t *testing.T) {
	s := newTestSession(t)
	s.RecordFood(FoodInput{Diet: "average_meat"})

	now := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	rec := s.Snapshot(now)

	assert.Len(t, rec.ID, 26)
	assert.Equal(t, now, rec.Timestamp)
	assert.Equal(t, 240.0, rec.Breakdown.Food)
	assert.Equal(t, 240.0, rec.MonthlyTotal)
	assert.Equal(t, 2880.0, rec.AnnualTotal)

	// later intake must not leak into the snapshot
	s.RecordFood(FoodInput{Diet: "vegan"})
	assert.Equal(t, 240.0, rec.Breakdown.Food)
}

func TestSessionsAreIsolated(t *testing.T) {
	table := config.DefaultFactors()
	a := New(table, model.NewUserProfile("a", ""))
	b := New(table, model.NewUserProfile("b", ""))

	a.RecordShopping(map[string]float64{"electronics": 1})

	assert.Equal(t, 50.0, a.Breakdown().Shopping)
	assert.Equal(t, 0.0, b.Breakdown().Shopping)
}

func TestSummarize_MatchesSnapshot(t *testing.T) {
	s := newTestSession(t)
	s.RecordTransport([]TransportEntry{CarEntry("diesel", 20)})
	s.RecordFood(FoodInput{Diet: "vegan"})

	rec := s.Snapshot(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	sum, err := Summarize(rec.Profile, rec.Breakdown)
	require.NoError(t, err)

	assert.InDelta(t, rec.MonthlyTotal, sum.MonthlyTotal, 1e-9)
	assert.InDelta(t, rec.AnnualTotal, sum.AnnualTotal, 1e-9)
	assert.Empty(t, sum.Warnings)

	_, err = Summarize(model.UserProfile{HouseholdSize: -1}, rec.Breakdown)
	assert.ErrorIs(t, err, ErrInvalidProfile)
}

func TestRecordFood_NothingReportedIsSilentZero(t *testing.T) {
	s := newTestSession(t)
	res := s.RecordFood(FoodInput{})

	assert.Zero(t, res.Emissions)
	assert.Empty(t, res.Warnings)
	assert.Zero(t, res.Unrecognized)
}

func TestRecordTransport_OverflowingDistanceCountsZero(t *testing.T) {
	s := newTestSession(t)

	res := s.RecordTransport([]TransportEntry{
		{Mode: ModeBicycle, DistanceKm: 1e308},
		CarEntry("petrol", 1),
	})

	assert.InDelta(t, 1*30*0.192, res.Emissions, 1e-9)
	assert.InDelta(t, 1*30*0.192, s.Breakdown().Transport, 1e-9)
	assert.Len(t, res.Warnings, 1)
}

func TestRecordElectricity_OverflowingUsageCountsZero(t *testing.T) {
	s := newTestSession(t)

	res := s.RecordElectricity(ElectricityInput{Source: "coal", DailyKWh: 1e308})
	assert.Zero(t, res.Emissions)
	assert.NotEmpty(t, res.Warnings)

	res = s.RecordElectricity(ElectricityInput{Source: "coal", Appliances: []Appliance{
		{Watts: math.MaxFloat64, HoursPerDay: 2},
		{Watts: 1000, HoursPerDay: 1},
	}})
	assert.InDelta(t, 1*30*0.95, res.Emissions, 1e-9)
}

func TestRecordFoodAndShopping_OverflowingQuantitiesCountZero(t *testing.T) {
	s := newTestSession(t)

	food := s.RecordFood(FoodInput{Diet: DietCustom, Servings: map[string]float64{"beef": 1e308, "rice": 1}})
	assert.InDelta(t, 0.35*30, food.Emissions, 1e-9)
	assert.NotEmpty(t, food.Warnings)

	shop := s.RecordShopping(map[string]float64{"furniture": 1e308, "books": 2})
	assert.InDelta(t, 5, shop.Emissions, 1e-9)
	assert.NotEmpty(t, shop.Warnings)
}

func TestFinalize_HugeInputsStayFinite(t *testing.T) {
	s := newTestSession(t)
	s.RecordTransport([]TransportEntry{{Mode: ModeBicycle, DistanceKm: 1e308}, CarEntry("petrol", 1)})
	s.RecordElectricity(ElectricityInput{Source: "coal", DailyKWh: 1e308})

	sum, err := s.Finalize()
	require.NoError(t, err)

	assert.False(t, math.IsNaN(sum.MonthlyTotal) || math.IsInf(sum.MonthlyTotal, 0))
	assert.Equal(t, model.DirectionBelow, sum.Comparison.Direction)
	assert.NotEmpty(t, sum.Warnings)

	_, err = json.Marshal(sum)
	assert.NoError(t, err)
}
