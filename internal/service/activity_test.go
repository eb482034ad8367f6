package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/footprint/internal/emissions"
)

func TestActivityCreate(t *testing.T) {
	e := newEnv(t)
	e.freeze(midJune)
	u := e.user(t, "Pema Sherpa")

	result, err := e.activities.QuickLog(u.ID, "walked_to_work")
	require.NoError(t, err)
	assert.Equal(t, "walk", result.Activity.ActivityType)
	assert.InDelta(t, 0.342, result.Activity.CO2Kg, 0.0001)
	assert.Equal(t, 3, result.Activity.Points)
	assert.Equal(t, "2026-06-17", result.Activity.ActivityDate)
	assert.Equal(t, 1, result.Outcome.Stats.CurrentStreak)

	// emitting activities are stored but earn nothing
	result, err = e.activities.Create(u.ID, ActivityInput{Activity: emissions.Activity{
		Category: emissions.CategoryFood,
		MealType: "buff",
	}})
	require.NoError(t, err)
	assert.InDelta(t, -5.5, result.Activity.CO2Kg, 0.0001)
	assert.Equal(t, 0, result.Activity.Points)
	assert.InDelta(t, 0.342, result.Outcome.Stats.CarbonSaved, 0.0001)

	list, err := e.activities.List(u.ID, "", 0)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	food, err := e.activities.List(u.ID, emissions.CategoryFood, 10)
	require.NoError(t, err)
	assert.Len(t, food, 1)
}

func TestActivityValidation(t *testing.T) {
	e := newEnv(t)
	u := e.user(t, "Pema Sherpa")

	tests := []struct {
		name string
		in   ActivityInput
	}{
		{"unknown category", ActivityInput{Activity: emissions.Activity{Category: "space"}}},
		{"unknown mode", ActivityInput{Activity: emissions.Activity{Category: emissions.CategoryTransport, TransportMode: "rocket"}}},
		{"negative distance", ActivityInput{Activity: emissions.Activity{Category: emissions.CategoryTransport, TransportMode: "bus", DistanceKm: -1}}},
		{"bad date", ActivityInput{Activity: emissions.Activity{Category: emissions.CategoryWaste, WasteType: "recycled"}, Date: "17/06/2026"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.activities.Create(u.ID, tt.in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	_, err := e.activities.QuickLog(u.ID, "flew_to_moon")
	assert.ErrorIs(t, err, ErrUnknownTemplate)

	_, err = e.activities.Summary(u.ID, "year")
	assert.ErrorIs(t, err, ErrUnknownPeriod)
}

func TestActivitySummary(t *testing.T) {
	e := newEnv(t)
	e.freeze(midJune)
	u := e.user(t, "Pema Sherpa")

	_, err := e.activities.QuickLog(u.ID, "cycled_to_work")
	require.NoError(t, err)
	_, err = e.activities.QuickLog(u.ID, "vegetarian_lunch")
	require.NoError(t, err)
	_, err = e.activities.Create(u.ID, ActivityInput{
		Activity: emissions.Activity{Category: emissions.CategoryWaste, WasteType: "composted", WeightKg: 4},
		Date:     "2026-06-15",
	})
	require.NoError(t, err)
	// outside the week
	_, err = e.activities.Create(u.ID, ActivityInput{
		Activity: emissions.Activity{Category: emissions.CategoryWaste, WasteType: "composted", WeightKg: 4},
		Date:     "2026-06-01",
	})
	require.NoError(t, err)

	week, err := e.activities.Summary(u.ID, PeriodWeek)
	require.NoError(t, err)
	assert.Equal(t, "2026-06-15", week.From)
	assert.Equal(t, "2026-06-21", week.To)
	assert.Len(t, week.Daily, 7)
	assert.Equal(t, 3, week.TotalActivities)
	assert.InDelta(t, 0.513+1.5+2.0, week.TotalCO2Saved, 0.0001)
	assert.Equal(t, 1, week.Categories[emissions.CategoryWaste].Count)
	assert.Equal(t, 0, week.Categories[emissions.CategoryEnergy].Count)
	require.NotNil(t, week.BestDay)
	assert.Equal(t, "2026-06-17", week.BestDay.Date)
	assert.Equal(t, 2, week.Daily[2].Activities)

	day, err := e.activities.Summary(u.ID, "")
	require.NoError(t, err)
	assert.Equal(t, PeriodDay, day.Period)
	assert.Equal(t, 2, day.TotalActivities)

	month, err := e.activities.Summary(u.ID, PeriodMonth)
	require.NoError(t, err)
	assert.Equal(t, "2026-06-01", month.From)
	assert.Equal(t, "2026-06-30", month.To)
	assert.Equal(t, 4, month.TotalActivities)
}

func TestPeriodRange(t *testing.T) {
	sunday := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

	from, to, err := periodRange(PeriodWeek, sunday)
	require.NoError(t, err)
	assert.Equal(t, "2026-02-23", from.Format("2006-01-02"))
	assert.Equal(t, "2026-03-01", to.Format("2006-01-02"))

	from, to, err = periodRange(PeriodMonth, time.Date(2028, time.February, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "2028-02-01", from.Format("2006-01-02"))
	assert.Equal(t, "2028-02-29", to.Format("2006-01-02"))
}

func TestCompare(t *testing.T) {
	c, err := Compare(10, 2)
	require.NoError(t, err)
	assert.InDelta(t, 1.71, c.Transport["car"], 0.0001)
	assert.InDelta(t, 11.0, c.Food["buff"], 0.0001)

	_, err = Compare(-1, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
