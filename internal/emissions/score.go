package emissions

import "math"

const (
	// NepalAverageMonthly is the national average footprint per person.
	NepalAverageMonthly = 42.5
	// TreeAbsorptionAnnual is what one mature tree absorbs in a year.
	TreeAbsorptionAnnual = 22.0
	// OffsetPricePerTon is the voluntary market price used for offset quotes, in USD.
	OffsetPricePerTon = 25.0
)

type Band string

const (
	BandExcellent    Band = "excellent"
	BandGood         Band = "good"
	BandAboveAverage Band = "above_average"
)

// Comparison places an annual footprint against typical per-capita levels.
type Comparison struct {
	Band    Band   `json:"band"`
	Message string `json:"message"`
}

type Level string

const (
	LevelGood    Level = "good"
	LevelAverage Level = "average"
	LevelHigh    Level = "high"
)

// EcoScore is the three tier badge derived from a monthly total.
type EcoScore struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
	Badge string `json:"badge"`
}

// AnnualTons converts a monthly kg total to tonnes per year.
func AnnualTons(monthlyKg float64) float64 {
	return monthlyKg * 12 / 1000
}

func Compare(annualTons float64) Comparison {
	switch {
	case annualTons < 6:
		return Comparison{Band: BandExcellent, Message: "Excellent! Your footprint is well below the global average."}
	case annualTons < 10:
		return Comparison{Band: BandGood, Message: "Good! Your footprint is around the global average."}
	default:
		return Comparison{Band: BandAboveAverage, Message: "Your footprint is above average. Check the tips to reduce it."}
	}
}

func Score(monthlyKg float64) EcoScore {
	switch {
	case monthlyKg < 30:
		return EcoScore{Level: LevelGood, Text: "Excellent! Low Carbon Footprint", Badge: "Excellent"}
	case monthlyKg < 50:
		return EcoScore{Level: LevelAverage, Text: "Average - Room for Improvement", Badge: "Good"}
	default:
		return EcoScore{Level: LevelHigh, Text: "High Emissions - Action Needed", Badge: "Needs Improvement"}
	}
}

// Share is each category's percentage of the total.
type Share struct {
	Transport float64 `json:"transport"`
	Energy    float64 `json:"energy"`
	Lifestyle float64 `json:"lifestyle"`
}

func Percentages(r Result) Share {
	if r.Total == 0 {
		return Share{}
	}
	total := float64(r.Total)
	return Share{
		Transport: math.Round(float64(r.Transport)/total*1000) / 10,
		Energy:    math.Round(float64(r.Energy)/total*1000) / 10,
		Lifestyle: math.Round(float64(r.Lifestyle)/total*1000) / 10,
	}
}

// VersusNepalAverage is the percent difference from the national monthly average.
func VersusNepalAverage(monthlyKg float64) float64 {
	return (monthlyKg - NepalAverageMonthly) / NepalAverageMonthly * 100
}

// TreesNeeded is the number of trees whose yearly absorption covers annualKg.
func TreesNeeded(annualKg float64) int {
	if annualKg <= 0 {
		return 0
	}
	return int(math.Ceil(annualKg / TreeAbsorptionAnnual))
}

// OffsetCost is the USD price of offsetting kg at OffsetPricePerTon.
func OffsetCost(kg float64) float64 {
	return math.Round(kg/1000*OffsetPricePerTon*100) / 100
}
