package emissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateHousehold(t *testing.T) {
	in := HouseholdInput{
		MotorbikeKm:     10,
		ElectricityKWh:  100,
		LPGCylinders:    1,
		WasteManagement: WasteComposting,
	}
	got := CalculateHousehold(in)

	assert.InDelta(t, 30, got.Breakdown.Transport, 1e-9)
	assert.InDelta(t, 44.3, got.Breakdown.Energy, 1e-9)
	assert.InDelta(t, 8, got.Breakdown.Waste, 1e-9)
	assert.InDelta(t, 82.3, got.TotalMonthly, 1e-9)
	assert.InDelta(t, 0.988, got.TotalAnnualTons, 1e-9)
	assert.Equal(t, 45, got.TreesNeeded)
	assert.Equal(t, LevelHigh, got.EcoScore.Level)
	assert.Greater(t, got.ComparisonPercent, 0.0)
}

func TestCalculateHouseholdBiogasCredit(t *testing.T) {
	got := CalculateHousehold(HouseholdInput{Biogas: true, WasteManagement: WasteFullRecycling})
	assert.InDelta(t, -15, got.Breakdown.Energy, 1e-9)
	assert.InDelta(t, -10, got.TotalMonthly, 1e-9)
	assert.Equal(t, 0, got.TreesNeeded)
	assert.Equal(t, LevelGood, got.EcoScore.Level)
}

func TestCalculateHouseholdUnknownWasteCountsAsMixed(t *testing.T) {
	got := CalculateHousehold(HouseholdInput{WasteManagement: "landfill"})
	assert.InDelta(t, 25, got.Breakdown.Waste, 1e-9)
}

func TestSuggestHousehold(t *testing.T) {
	in := HouseholdInput{CarKm: 10, ElectricityKWh: 200, LPGCylinders: 2, FirewoodKg: 60, WasteManagement: WasteMixed}
	got := SuggestHousehold(in, CalculateHousehold(in))
	assert.Len(t, got, 7)
	assert.Equal(t, "Plant trees and support reforestation", got[len(got)-1].Title)
}
