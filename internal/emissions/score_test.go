package emissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name string
		kg   float64
		want Level
	}{
		{"zero", 0, LevelGood},
		{"just below first threshold", 29.9, LevelGood},
		{"first threshold", 30, LevelAverage},
		{"just below second threshold", 49.99, LevelAverage},
		{"second threshold", 50, LevelHigh},
		{"large", 900, LevelHigh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.kg).Level)
		})
	}
}

func TestCompare(t *testing.T) {
	assert.Equal(t, BandExcellent, Compare(AnnualTons(400)).Band)
	assert.Equal(t, BandGood, Compare(AnnualTons(500)).Band)
	assert.Equal(t, BandAboveAverage, Compare(AnnualTons(900)).Band)
}

func TestAnnualTons(t *testing.T) {
	assert.InDelta(t, 1.2, AnnualTons(100), 1e-9)
	assert.InDelta(t, 0, AnnualTons(0), 1e-9)
}

func TestPercentages(t *testing.T) {
	got := Percentages(Result{Transport: 50, Energy: 25, Lifestyle: 25, Total: 100})
	assert.Equal(t, Share{Transport: 50, Energy: 25, Lifestyle: 25}, got)

	assert.Equal(t, Share{}, Percentages(Result{}))
}

func TestTreesNeeded(t *testing.T) {
	assert.Equal(t, 0, TreesNeeded(0))
	assert.Equal(t, 1, TreesNeeded(22))
	assert.Equal(t, 2, TreesNeeded(22.1))
	assert.Equal(t, 24, TreesNeeded(510))
}

func TestVersusNepalAverage(t *testing.T) {
	assert.InDelta(t, 0, VersusNepalAverage(NepalAverageMonthly), 1e-9)
	assert.InDelta(t, 100, VersusNepalAverage(85), 1e-9)
	assert.InDelta(t, -100, VersusNepalAverage(0), 1e-9)
}

func TestOffsetCost(t *testing.T) {
	assert.InDelta(t, 25.0, OffsetCost(1000), 1e-9)
	assert.InDelta(t, 2.5, OffsetCost(100), 1e-9)
	assert.InDelta(t, 0, OffsetCost(0), 1e-9)
}

func TestSuggest(t *testing.T) {
	in := Input{CarKm: 20, FlightHours: 2, ElectricityKWh: 300, Diet: DietMeatHeavy, WasteKg: 10}
	got := Suggest(in, Calculate(in))

	titles := make([]string, 0, len(got))
	for _, s := range got {
		titles = append(titles, s.Title)
	}
	assert.Equal(t, []string{
		"Switch to public transport",
		"Fly less",
		"Switch to renewable electricity",
		"Eat less meat",
		"Start recycling",
		"Plant trees",
	}, titles)
}

func TestSuggestLowFootprintOnlyPlantsTrees(t *testing.T) {
	in := Input{BikeKm: 10, Diet: DietVegan, Recycling: true, RenewableEnergy: true, ElectricityKWh: 400}
	got := Suggest(in, Calculate(in))
	assert.Len(t, got, 1)
	assert.Equal(t, "Plant trees", got[0].Title)
}
