package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/templui/footprint/internal/emissions"
	"github.com/templui/footprint/internal/service"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var title = cases.Title(language.English)

func CalcCmd() *cobra.Command {
	var (
		in     emissions.Input
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate a monthly footprint offline",
		Example: `  do calc --car-km 400 --electricity-kwh 200 --diet vegetarian
  do calc --flight-hours 6 --recycling --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !emissions.ValidDiet(in.Diet) {
				return fmt.Errorf("unknown diet %q", in.Diet)
			}

			// Estimate never touches storage.
			report, err := (&service.FootprintService{}).Estimate(in)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			printReport(report)
			return nil
		},
	}

	f := cmd.Flags()
	f.Float64Var(&in.CarKm, "car-km", 0, "kilometres driven per month")
	f.Float64Var(&in.BikeKm, "bike-km", 0, "kilometres cycled per month")
	f.Float64Var(&in.PublicTransportKm, "public-transport-km", 0, "kilometres by bus or train per month")
	f.Float64Var(&in.FlightHours, "flight-hours", 0, "hours flown per month")
	f.Float64Var(&in.ElectricityKWh, "electricity-kwh", 0, "electricity used per month")
	f.Float64Var(&in.NaturalGasM3, "natural-gas-m3", 0, "natural gas used per month")
	f.Float64Var(&in.HeatingLiters, "heating-liters", 0, "heating oil used per month")
	f.BoolVar(&in.RenewableEnergy, "renewable", false, "electricity comes from renewables")
	f.StringVar(&in.Diet, "diet", emissions.DietAverage, "diet tier")
	f.Float64Var(&in.Shopping, "shopping", 0, "shopping spend per month")
	f.Float64Var(&in.WasteKg, "waste-kg", 0, "waste per week")
	f.BoolVar(&in.Recycling, "recycling", false, "household recycles")
	f.BoolVar(&asJSON, "json", false, "print the full report as JSON")

	return cmd
}

func printReport(r *service.FootprintReport) {
	total := float64(r.Result.Total)
	fmt.Printf("Transport   %s (%.1f%%)\n", emissions.FormatKg(float64(r.Result.Transport)), r.Percentages.Transport)
	fmt.Printf("Energy      %s (%.1f%%)\n", emissions.FormatKg(float64(r.Result.Energy)), r.Percentages.Energy)
	fmt.Printf("Lifestyle   %s (%.1f%%)\n", emissions.FormatKg(float64(r.Result.Lifestyle)), r.Percentages.Lifestyle)
	fmt.Printf("Total       %s per month, %s per year\n", emissions.FormatKg(total), emissions.FormatTons(r.AnnualTons))
	fmt.Println()
	fmt.Printf("%s: %s\n", r.EcoScore.Badge, r.EcoScore.Text)
	fmt.Println(r.Comparison.Message)
	fmt.Printf("Offsetting a year costs %s\n", emissions.FormatUSD(r.OffsetCostUSD))

	eq := emissions.Equivalent(total)
	fmt.Println()
	fmt.Println("One month equals:")
	fmt.Println("  " + eq.TreesText)
	fmt.Println("  " + eq.CarMilesText)
	fmt.Println("  " + eq.PhoneChargeTxt)

	if len(r.Suggestions) > 0 {
		fmt.Println()
		fmt.Println("Suggestions:")
		for _, s := range r.Suggestions {
			fmt.Printf("  - %s [%s]: %s\n", s.Title, title.String(s.Impact+" impact"), s.Description)
		}
	}
}
