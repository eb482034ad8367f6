package ui

import (
	"fmt"
	"time"

	"github.com/templui/footprint/internal/emissions"
	"github.com/templui/footprint/internal/model"
)

// ReportData is everything a footprint report shows.
type ReportData struct {
	AppName      string
	Name         string
	GeneratedAt  time.Time
	Calculation  *model.Calculation
	Score        emissions.EcoScore
	Comparison   emissions.Comparison
	Percentages  emissions.Share
	Summary      emissions.Summary
	CarbonSaved  float64
	Achievements []string
}

func formatDate(t time.Time) string {
	return t.Format("2 January 2006")
}

func withShare(kg, percent float64) string {
	return fmt.Sprintf("%s (%.1f%%)", emissions.FormatKg(kg), percent)
}

func trend(s emissions.Summary) string {
	return fmt.Sprintf("%s (%+.1f%%)", s.Trend, s.PercentChange)
}
