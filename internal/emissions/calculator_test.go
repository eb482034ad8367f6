package emissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want Result
	}{
		{
			name: "car distance only",
			in:   Input{CarKm: 100, Diet: DietVegan},
			want: Result{Transport: 12, Energy: 0, Lifestyle: 30, Total: 42},
		},
		{
			name: "all transport modes",
			in:   Input{CarKm: 100, BikeKm: 50, PublicTransportKm: 100, FlightHours: 1, Diet: DietVegan},
			want: Result{Transport: 108, Energy: 0, Lifestyle: 30, Total: 138},
		},
		{
			name: "grid electricity",
			in:   Input{ElectricityKWh: 200, NaturalGasM3: 10, HeatingLiters: 10, Diet: DietVegan},
			want: Result{Transport: 0, Energy: 146, Lifestyle: 30, Total: 176},
		},
		{
			name: "renewable electricity",
			in:   Input{ElectricityKWh: 200, RenewableEnergy: true, Diet: DietVegan},
			want: Result{Transport: 0, Energy: 20, Lifestyle: 30, Total: 50},
		},
		{
			name: "weekly waste scaled to month",
			in:   Input{Diet: DietVegetarian, Shopping: 100, WasteKg: 5},
			want: Result{Lifestyle: 110, Total: 110},
		},
		{
			name: "empty diet counts as average",
			in:   Input{},
			want: Result{Lifestyle: 100, Total: 100},
		},
		{
			name: "unknown diet counts as average",
			in:   Input{Diet: "carnivore"},
			want: Result{Lifestyle: 100, Total: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Calculate(tt.in))
		})
	}
}

func TestCalculateDietTiers(t *testing.T) {
	tests := map[string]int{
		DietMeatHeavy:  150,
		DietAverage:    100,
		DietLowMeat:    70,
		DietVegetarian: 50,
		DietVegan:      30,
	}
	for diet, want := range tests {
		t.Run(diet, func(t *testing.T) {
			got := Calculate(Input{Diet: diet})
			assert.Equal(t, want, got.Lifestyle)
		})
	}
}

func TestCalculateVeganIgnoresOtherCategories(t *testing.T) {
	in := Input{
		CarKm:          250,
		FlightHours:    3,
		ElectricityKWh: 400,
		Diet:           DietVegan,
	}
	got := Calculate(in)
	assert.Equal(t, 30, got.Lifestyle)
	assert.Equal(t, 30, Calculate(Input{Diet: DietVegan}).Lifestyle)
}

func TestCalculateRecyclingAppliesBeforeRounding(t *testing.T) {
	// 100 + 1*0.5 = 100.5; 100.5*0.7 = 70.35 rounds to 70.
	// Rounding first would give round(100.5)*0.7 = 70.7, i.e. 71.
	got := Calculate(Input{Diet: DietAverage, Shopping: 1, Recycling: true})
	assert.Equal(t, 70, got.Lifestyle)

	got = Calculate(Input{Diet: DietMeatHeavy, Recycling: true})
	assert.Equal(t, 105, got.Lifestyle)
}

func TestCalculateTotalIsSumOfRoundedParts(t *testing.T) {
	in := Input{
		CarKm:             12.3,
		BikeKm:            7.7,
		PublicTransportKm: 33.3,
		ElectricityKWh:    1.3,
		NaturalGasM3:      0.7,
		Diet:              DietLowMeat,
		Shopping:          3.3,
		WasteKg:           0.9,
		Recycling:         true,
	}
	got := Calculate(in)
	assert.Equal(t, got.Transport+got.Energy+got.Lifestyle, got.Total)
}

func TestRoundKgHalfAwayFromZero(t *testing.T) {
	assert.Equal(t, 3, roundKg(2.5))
	assert.Equal(t, 2, roundKg(2.49))
	assert.Equal(t, 0, roundKg(0))
	assert.Equal(t, maxRoundedKg, roundKg(1e300))
	assert.Equal(t, -maxRoundedKg, roundKg(-1e300))
}

func TestValidDiet(t *testing.T) {
	assert.True(t, ValidDiet(DietVegan))
	assert.False(t, ValidDiet(""))
	assert.False(t, ValidDiet("keto"))
}
