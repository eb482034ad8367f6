package emissions

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImpact(t *testing.T) {
	tests := []struct {
		name string
		in   Activity
		want float64
	}{
		{"walking saves the car trip", Activity{Category: CategoryTransport, TransportMode: "walk", DistanceKm: 2}, 0.342},
		{"ebike saves the difference", Activity{Category: CategoryTransport, TransportMode: "ebike", DistanceKm: 10}, 1.51},
		{"motorcycle emits", Activity{Category: CategoryTransport, TransportMode: "motorcycle", DistanceKm: 10}, -1.03},
		{"zero distance", Activity{Category: CategoryTransport, TransportMode: "car"}, 0},
		{"vegetarian meal", Activity{Category: CategoryFood, MealType: "vegetarian"}, 1.5},
		{"two dal bhat servings", Activity{Category: CategoryFood, MealType: "dal_bhat", Servings: 2}, 2.6},
		{"buff emits", Activity{Category: CategoryFood, MealType: "buff"}, -5.5},
		{"lights off for an hour", Activity{Category: CategoryEnergy, EnergyType: "lights_off"}, 0.04},
		{"measured kwh wins", Activity{Category: CategoryEnergy, EnergyType: "ac_off", EnergySavedKWh: 10}, 6.7},
		{"ac off three hours", Activity{Category: CategoryEnergy, EnergyType: "ac_off", Hours: 3}, 3.015},
		{"recycled default weight", Activity{Category: CategoryWaste, WasteType: "recycled"}, 0.15},
		{"composted two kilos", Activity{Category: CategoryWaste, WasteType: "composted", WeightKg: 2}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Impact(tt.in)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestImpactErrors(t *testing.T) {
	_, err := Impact(Activity{Category: "shopping"})
	assert.ErrorIs(t, err, ErrUnknownCategory)

	_, err = Impact(Activity{Category: CategoryTransport, TransportMode: "rocket", DistanceKm: 1})
	assert.ErrorIs(t, err, ErrUnknownType)

	_, err = Impact(Activity{Category: CategoryWaste, WasteType: "recycled", WeightKg: -1})
	assert.ErrorIs(t, err, ErrNegativeValue)

	_, err = Impact(Activity{Category: CategoryEnergy, EnergyType: "solar_used", EnergySavedKWh: 1e19})
	assert.ErrorIs(t, err, ErrValueTooLarge)

	_, err = Impact(Activity{Category: CategoryFood, MealType: "vegan", Servings: MaxActivityValue + 1})
	assert.ErrorIs(t, err, ErrValueTooLarge)

	_, err = Impact(Activity{Category: CategoryTransport, TransportMode: "bicycle", DistanceKm: MaxActivityValue})
	assert.NoError(t, err)
}

func TestPoints(t *testing.T) {
	assert.Equal(t, 3, Points(0.342))
	assert.Equal(t, 15, Points(1.5))
	assert.Equal(t, 0, Points(0))
	assert.Equal(t, 0, Points(-5.5))
	assert.Equal(t, MaxActivityPoints, Points(1e19))
	assert.Equal(t, MaxActivityPoints, Points(math.Inf(1)))
}

func TestTransportComparison(t *testing.T) {
	got := TransportComparison(10)
	assert.Len(t, got, len(TransportFactors))
	assert.InDelta(t, 1.71, got["car"], 1e-9)
	assert.InDelta(t, 0, got["walk"], 1e-9)
}

func TestFoodComparison(t *testing.T) {
	got := FoodComparison(0)
	assert.InDelta(t, 5.9, got["pork"], 1e-9)
}
