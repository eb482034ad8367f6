package emissions

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Equivalence factors used to make saved CO2 tangible.
const (
	TreeKgPerYear = 21.0
	CarKgPerMile  = 0.404
	PhoneChargeKg = 0.008
)

type Equivalents struct {
	Trees          float64 `json:"trees"`
	CarMiles       float64 `json:"car_miles"`
	PhoneCharges   float64 `json:"phone_charges"`
	TreesText      string  `json:"trees_text"`
	CarMilesText   string  `json:"car_miles_text"`
	PhoneChargeTxt string  `json:"phone_charges_text"`
}

func Equivalent(kg float64) Equivalents {
	trees := math.Round(kg/TreeKgPerYear*100) / 100
	miles := math.Round(kg/CarKgPerMile*10) / 10
	charges := math.Round(kg / PhoneChargeKg)
	return Equivalents{
		Trees:          trees,
		CarMiles:       miles,
		PhoneCharges:   charges,
		TreesText:      printer.Sprintf("%.2f trees absorbing CO2 for a year", trees),
		CarMilesText:   printer.Sprintf("%.1f miles not driven", miles),
		PhoneChargeTxt: printer.Sprintf("%d smartphone charges", int64(charges)),
	}
}

// FormatKg renders kilograms with thousand separators, e.g. "1,234 kg".
func FormatKg(kg float64) string {
	if kg == math.Trunc(kg) {
		return printer.Sprintf("%d kg", int64(kg))
	}
	return printer.Sprintf("%.1f kg", kg)
}

// FormatTons renders tonnes with two decimals.
func FormatTons(tons float64) string {
	return fmt.Sprintf("%.2f t", tons)
}

// FormatUSD renders a dollar amount with thousand separators.
func FormatUSD(amount float64) string {
	return printer.Sprintf("$%.2f", amount)
}
