package emissions

import "fmt"

// Suggestion is one reduction idea with its estimated effect.
type Suggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
}

// Suggest returns reduction ideas for a monthly calculator input.
func Suggest(in Input, r Result) []Suggestion {
	var out []Suggestion

	if in.CarKm > 5 {
		out = append(out, Suggestion{
			Title:       "Switch to public transport",
			Description: "Buses and trains emit a quarter of what a private car does per kilometre.",
			Impact:      fmt.Sprintf("Save up to %.1f kg CO2/month", in.CarKm*(FactorCarKm-FactorPublicTransportKm)),
		})
	}
	if in.FlightHours > 0 {
		out = append(out, Suggestion{
			Title:       "Fly less",
			Description: "Replace short flights with rail or video calls where you can.",
			Impact:      fmt.Sprintf("Each avoided flight hour saves %.0f kg CO2", FactorFlightHour),
		})
	}
	if in.ElectricityKWh > 150 && !in.RenewableEnergy {
		out = append(out, Suggestion{
			Title:       "Switch to renewable electricity",
			Description: "A green tariff or rooftop solar cuts the emissions of every kWh you use.",
			Impact:      fmt.Sprintf("Save ~%.1f kg CO2/month", in.ElectricityKWh*(FactorElectricityKWh-FactorRenewableElectricityKWh)),
		})
	}
	if in.Diet == DietMeatHeavy || in.Diet == DietAverage || in.Diet == "" {
		out = append(out, Suggestion{
			Title:       "Eat less meat",
			Description: "Moving to a vegetarian diet is one of the largest personal reductions available.",
			Impact:      fmt.Sprintf("Save ~%.0f kg CO2/month", DietFactor(in.Diet)-DietFactor(DietVegetarian)),
		})
	}
	if in.WasteKg > 5 && !in.Recycling {
		out = append(out, Suggestion{
			Title:       "Start recycling",
			Description: "Separating recyclables reduces your lifestyle emissions by 30%.",
			Impact:      fmt.Sprintf("Save ~%.0f kg CO2/month", float64(r.Lifestyle)*(1-RecyclingMultiplier)),
		})
	}

	annualKg := AnnualTons(float64(r.Total)) * 1000
	out = append(out, Suggestion{
		Title:       "Plant trees",
		Description: fmt.Sprintf("Plant %d trees to offset your annual emissions.", TreesNeeded(annualKg)),
		Impact:      fmt.Sprintf("Offset %.2f tons CO2/year", AnnualTons(float64(r.Total))),
	})
	return out
}
