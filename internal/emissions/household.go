package emissions

import "fmt"

// Household factors for Nepal, where the grid is almost entirely hydropower.
const (
	FactorMotorbikeKm    = 0.10
	FactorHouseholdCarKm = 0.20
	FactorBusKm          = 0.05
	FactorEVKm           = 0.006

	FactorNepalElectricityKWh = 0.02
	FactorLPGCylinder         = 42.3
	FactorFirewoodKg          = 1.8
	FactorBiogasDaily         = -0.5

	DaysPerMonth = 30
)

const (
	WasteMixed         = "mixed"
	WasteSomeRecycling = "some-recycling"
	WasteComposting    = "composting"
	WasteFullRecycling = "full-recycling"
)

var wasteMonthly = map[string]float64{
	WasteMixed:         25,
	WasteSomeRecycling: 15,
	WasteComposting:    8,
	WasteFullRecycling: 5,
}

// HouseholdInput takes daily distances and monthly household energy use.
type HouseholdInput struct {
	LocationType    string  `json:"location_type"`
	MotorbikeKm     float64 `json:"motorbike_km"`
	CarKm           float64 `json:"car_km"`
	BusKm           float64 `json:"bus_km"`
	EVKm            float64 `json:"ev_km"`
	ElectricityKWh  float64 `json:"electricity_kwh"`
	LPGCylinders    float64 `json:"lpg_cylinders"`
	FirewoodKg      float64 `json:"firewood_kg"`
	Biogas          bool    `json:"biogas"`
	WasteManagement string  `json:"waste_management"`
}

type HouseholdBreakdown struct {
	Transport float64 `json:"transport"`
	Energy    float64 `json:"energy"`
	Waste     float64 `json:"waste"`
}

type HouseholdResult struct {
	TotalMonthly      float64            `json:"total_monthly"`
	TotalAnnualTons   float64            `json:"total_annual_tons"`
	ComparisonPercent float64            `json:"comparison_percent"`
	TreesNeeded       int                `json:"trees_needed"`
	EcoScore          EcoScore           `json:"eco_score"`
	Breakdown         HouseholdBreakdown `json:"breakdown"`
}

func CalculateHousehold(in HouseholdInput) HouseholdResult {
	transport := (in.MotorbikeKm*FactorMotorbikeKm +
		in.CarKm*FactorHouseholdCarKm +
		in.BusKm*FactorBusKm +
		in.EVKm*FactorEVKm) * DaysPerMonth

	energy := in.ElectricityKWh*FactorNepalElectricityKWh +
		in.LPGCylinders*FactorLPGCylinder +
		in.FirewoodKg*FactorFirewoodKg
	if in.Biogas {
		energy += FactorBiogasDaily * DaysPerMonth
	}

	waste, ok := wasteMonthly[in.WasteManagement]
	if !ok {
		waste = wasteMonthly[WasteMixed]
	}

	total := transport + energy + waste
	annual := AnnualTons(total)

	return HouseholdResult{
		TotalMonthly:      Round3(total),
		TotalAnnualTons:   Round3(annual),
		ComparisonPercent: Round3(VersusNepalAverage(total)),
		TreesNeeded:       TreesNeeded(annual * 1000),
		EcoScore:          Score(total),
		Breakdown: HouseholdBreakdown{
			Transport: Round3(transport),
			Energy:    Round3(energy),
			Waste:     waste,
		},
	}
}

// SuggestHousehold returns reduction ideas for a household input.
func SuggestHousehold(in HouseholdInput, r HouseholdResult) []Suggestion {
	var out []Suggestion

	if in.MotorbikeKm > 5 || in.CarKm > 5 {
		out = append(out, Suggestion{
			Title:       "Switch to public transportation",
			Description: "Buses and microbuses can reduce your transport emissions by up to 75%. Sajha Bus and local routes are affordable alternatives.",
			Impact:      fmt.Sprintf("Save up to %.1f kg CO2/month", in.MotorbikeKm*DaysPerMonth*FactorMotorbikeKm*0.75),
		})
	}
	if in.CarKm > 3 && in.EVKm == 0 {
		out = append(out, Suggestion{
			Title:       "Consider electric vehicles",
			Description: "EVs in Nepal run on hydropower and have 97% lower emissions than petrol vehicles.",
			Impact:      fmt.Sprintf("Reduce emissions by %.1f kg CO2/month", in.CarKm*DaysPerMonth*(FactorHouseholdCarKm-FactorEVKm)),
		})
	}
	if in.ElectricityKWh > 150 {
		out = append(out, Suggestion{
			Title:       "Improve energy efficiency",
			Description: "LED bulbs, efficient appliances and unplugging idle devices cut electricity use by 20-30%.",
			Impact:      fmt.Sprintf("Save ~%.1f kg CO2/month", in.ElectricityKWh*0.25*FactorNepalElectricityKWh),
		})
	}
	if in.LPGCylinders >= 1 {
		out = append(out, Suggestion{
			Title:       "Optimize cooking practices",
			Description: "Use pressure cookers, keep lids on pots, or move to induction on the clean grid.",
			Impact:      "Reduce LPG use by 15-20%",
		})
	}
	if in.FirewoodKg > 50 {
		out = append(out, Suggestion{
			Title:       "Switch to biogas or improved cookstoves",
			Description: "Biogas systems and improved cookstoves reduce emissions and indoor air pollution.",
			Impact:      "Cut emissions by 60-80%",
		})
	}
	if in.WasteManagement == WasteMixed || in.WasteManagement == "" {
		out = append(out, Suggestion{
			Title:       "Start waste segregation",
			Description: "Separate biodegradable, recyclable and residual waste and compost kitchen scraps.",
			Impact:      fmt.Sprintf("Save ~%.1f kg CO2/month", wasteMonthly[WasteMixed]-wasteMonthly[WasteComposting]),
		})
	}

	out = append(out, Suggestion{
		Title:       "Plant trees and support reforestation",
		Description: fmt.Sprintf("Plant %d trees to offset your annual emissions.", r.TreesNeeded),
		Impact:      fmt.Sprintf("Offset %.2f tons CO2/year", r.TotalAnnualTons),
	})
	return out
}
