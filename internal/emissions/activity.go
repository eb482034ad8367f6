package emissions

import "math"

const (
	CategoryTransport = "transport"
	CategoryFood      = "food"
	CategoryEnergy    = "energy"
	CategoryWaste     = "waste"
)

// Transport factors in kg per km.
var TransportFactors = map[string]float64{
	"walk":       0,
	"bicycle":    0,
	"rickshaw":   0,
	"ebike":      0.02,
	"safa_tempo": 0.02,
	"microbus":   0.089,
	"motorcycle": 0.103,
	"car":        0.171,
	"bus":        0.068,
	"taxi":       0.171,
}

var greenModes = map[string]bool{
	"walk":       true,
	"bicycle":    true,
	"rickshaw":   true,
	"ebike":      true,
	"safa_tempo": true,
}

// Food factors in kg per serving.
var FoodFactors = map[string]float64{
	"vegan":           0.5,
	"vegetarian":      1.0,
	"dal_bhat":        1.2,
	"vegetable_curry": 0.8,
	"chicken":         2.9,
	"buff":            5.5,
	"pork":            5.9,
	"fish":            2.7,
	"egg":             1.6,
	"dairy":           1.3,
}

var plantMeals = map[string]bool{
	"vegan":           true,
	"vegetarian":      true,
	"dal_bhat":        true,
	"vegetable_curry": true,
}

// AverageMealKg is a typical Nepali meal.
const AverageMealKg = 2.5

// GridFactorKWh is applied to saved electricity.
const GridFactorKWh = 0.67

// Default kWh saved per hour (or per use) when no measurement is given.
var EnergySavings = map[string]float64{
	"lights_off":       0.06,
	"ac_off":           1.5,
	"unplugged":        0.01,
	"energy_efficient": 0.5,
	"solar_used":       1.0,
}

// Waste factors in kg saved per kg handled.
var WasteSavings = map[string]float64{
	"recycled":        0.3,
	"composted":       0.5,
	"reused":          0.4,
	"avoided_plastic": 0.2,
}

const defaultWasteKg = 0.5

// MaxActivityValue bounds each numeric activity field.
const MaxActivityValue = 1_000_000

// MaxActivityPoints caps the points a single activity earns.
const MaxActivityPoints = 100_000

// Activity is a single tracked action. Only the fields of its category are read.
type Activity struct {
	Category string `json:"category"`

	TransportMode string  `json:"transport_mode,omitempty"`
	DistanceKm    float64 `json:"distance_km,omitempty"`

	MealType string `json:"meal_type,omitempty"`
	Servings int    `json:"servings,omitempty"`

	EnergyType     string  `json:"energy_type,omitempty"`
	EnergySavedKWh float64 `json:"energy_saved_kwh,omitempty"`
	Hours          float64 `json:"hours,omitempty"`

	WasteType string  `json:"waste_type,omitempty"`
	WeightKg  float64 `json:"weight_kg,omitempty"`
}

// Impact returns kg saved (positive) or emitted (negative), rounded to grams.
func Impact(a Activity) (float64, error) {
	if a.DistanceKm < 0 || a.Servings < 0 || a.EnergySavedKWh < 0 || a.Hours < 0 || a.WeightKg < 0 {
		return 0, ErrNegativeValue
	}
	if a.DistanceKm > MaxActivityValue || a.Servings > MaxActivityValue || a.EnergySavedKWh > MaxActivityValue ||
		a.Hours > MaxActivityValue || a.WeightKg > MaxActivityValue {
		return 0, ErrValueTooLarge
	}

	switch a.Category {
	case CategoryTransport:
		return transportImpact(a)
	case CategoryFood:
		return foodImpact(a)
	case CategoryEnergy:
		return energyImpact(a)
	case CategoryWaste:
		return wasteImpact(a)
	default:
		return 0, ErrUnknownCategory
	}
}

func transportImpact(a Activity) (float64, error) {
	factor, ok := TransportFactors[a.TransportMode]
	if !ok {
		return 0, ErrUnknownType
	}
	if a.DistanceKm == 0 {
		return 0, nil
	}
	if greenModes[a.TransportMode] {
		return Round3(TransportFactors["car"]*a.DistanceKm - factor*a.DistanceKm), nil
	}
	return Round3(-factor * a.DistanceKm), nil
}

func foodImpact(a Activity) (float64, error) {
	factor, ok := FoodFactors[a.MealType]
	if !ok {
		return 0, ErrUnknownType
	}
	servings := float64(a.Servings)
	if servings == 0 {
		servings = 1
	}
	meal := factor * servings
	if plantMeals[a.MealType] {
		return Round3(AverageMealKg*servings - meal), nil
	}
	return Round3(-meal), nil
}

func energyImpact(a Activity) (float64, error) {
	kwh := a.EnergySavedKWh
	if kwh == 0 {
		perHour, ok := EnergySavings[a.EnergyType]
		if !ok {
			return 0, ErrUnknownType
		}
		hours := a.Hours
		if hours == 0 {
			hours = 1
		}
		kwh = perHour * hours
	}
	return Round3(kwh * GridFactorKWh), nil
}

func wasteImpact(a Activity) (float64, error) {
	factor, ok := WasteSavings[a.WasteType]
	if !ok {
		return 0, ErrUnknownType
	}
	weight := a.WeightKg
	if weight == 0 {
		weight = defaultWasteKg
	}
	return Round3(factor * weight), nil
}

// Points awards ten points per kg saved. Emitting activities earn nothing.
func Points(impactKg float64) int {
	if impactKg <= 0 || math.IsNaN(impactKg) {
		return 0
	}
	if impactKg*10 >= MaxActivityPoints {
		return MaxActivityPoints
	}
	return int(impactKg * 10)
}

// TransportComparison lists the kg each mode would emit over distanceKm.
func TransportComparison(distanceKm float64) map[string]float64 {
	out := make(map[string]float64, len(TransportFactors))
	for mode, f := range TransportFactors {
		out[mode] = Round3(f * distanceKm)
	}
	return out
}

// FoodComparison lists the kg each meal type emits for the given servings.
func FoodComparison(servings int) map[string]float64 {
	if servings <= 0 {
		servings = 1
	}
	out := make(map[string]float64, len(FoodFactors))
	for meal, f := range FoodFactors {
		out[meal] = Round3(f * float64(servings))
	}
	return out
}
