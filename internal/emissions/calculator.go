// Package emissions converts activity data into CO2-equivalent estimates.
// Every figure is kilograms of CO2e unless a name says otherwise.
package emissions

import "math"

// Per-unit emission factors for the monthly footprint calculator.
const (
	FactorCarKm             = 0.12
	FactorBikeKm            = 0.06
	FactorPublicTransportKm = 0.03
	FactorFlightHour        = 90.0

	FactorElectricityKWh          = 0.5
	FactorRenewableElectricityKWh = 0.1
	FactorNaturalGasM3            = 2.0
	FactorHeatingLiter            = 2.6

	FactorShopping = 0.5
	FactorWasteKg  = 0.5
	WeeksPerMonth  = 4

	RecyclingMultiplier = 0.7
)

const (
	DietMeatHeavy  = "meat-heavy"
	DietAverage    = "average"
	DietLowMeat    = "low-meat"
	DietVegetarian = "vegetarian"
	DietVegan      = "vegan"
)

var dietFactors = map[string]float64{
	DietMeatHeavy:  150,
	DietAverage:    100,
	DietLowMeat:    70,
	DietVegetarian: 50,
	DietVegan:      30,
}

// Input is one month of activity. Zero values mean the activity is absent.
type Input struct {
	CarKm             float64 `json:"car_km"`
	BikeKm            float64 `json:"bike_km"`
	PublicTransportKm float64 `json:"public_transport_km"`
	FlightHours       float64 `json:"flight_hours"`

	ElectricityKWh  float64 `json:"electricity_kwh"`
	NaturalGasM3    float64 `json:"natural_gas_m3"`
	HeatingLiters   float64 `json:"heating_liters"`
	RenewableEnergy bool    `json:"renewable_energy"`

	Diet      string  `json:"diet"`
	Shopping  float64 `json:"shopping"`
	WasteKg   float64 `json:"waste_kg"`
	Recycling bool    `json:"recycling"`
}

// Result is the monthly breakdown. Total is always the sum of the three
// rounded categories.
type Result struct {
	Transport int `json:"transport"`
	Energy    int `json:"energy"`
	Lifestyle int `json:"lifestyle"`
	Total     int `json:"total"`
}

// DietFactor returns the monthly kg for a diet tier. Unknown tiers count as average.
func DietFactor(diet string) float64 {
	f, ok := dietFactors[diet]
	if !ok {
		return dietFactors[DietAverage]
	}
	return f
}

// ValidDiet reports whether diet is one of the five known tiers.
func ValidDiet(diet string) bool {
	_, ok := dietFactors[diet]
	return ok
}

func Calculate(in Input) Result {
	transport := in.CarKm*FactorCarKm +
		in.BikeKm*FactorBikeKm +
		in.PublicTransportKm*FactorPublicTransportKm +
		in.FlightHours*FactorFlightHour

	electricity := FactorElectricityKWh
	if in.RenewableEnergy {
		electricity = FactorRenewableElectricityKWh
	}
	energy := in.ElectricityKWh*electricity +
		in.NaturalGasM3*FactorNaturalGasM3 +
		in.HeatingLiters*FactorHeatingLiter

	lifestyle := DietFactor(in.Diet) +
		in.Shopping*FactorShopping +
		in.WasteKg*FactorWasteKg*WeeksPerMonth
	if in.Recycling {
		lifestyle *= RecyclingMultiplier
	}

	r := Result{
		Transport: roundKg(transport),
		Energy:    roundKg(energy),
		Lifestyle: roundKg(lifestyle),
	}
	r.Total = r.Transport + r.Energy + r.Lifestyle
	return r
}

// maxRoundedKg keeps three rounded categories summable without overflow.
const maxRoundedKg = math.MaxInt32

// roundKg rounds half away from zero, saturating at maxRoundedKg.
func roundKg(v float64) int {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= maxRoundedKg:
		return maxRoundedKg
	case v <= -maxRoundedKg:
		return -maxRoundedKg
	}
	return int(math.Round(v))
}

// Round3 rounds to three decimal places.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
