package ui

import (
	"context"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/footprint/internal/emissions"
	"github.com/templui/footprint/internal/model"
)

func TestFootprintReport(t *testing.T) {
	data := ReportData{
		AppName:      "Footprint",
		Name:         "Sita <script>",
		GeneratedAt:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Calculation:  &model.Calculation{Transport: 20, Energy: 10, Lifestyle: 10, Total: 40},
		Score:        emissions.Score(40),
		Comparison:   emissions.Compare(emissions.AnnualTons(40)),
		Summary:      emissions.Summary{Count: 2, Average: 45, Lowest: 40, Highest: 50, Trend: emissions.TrendDecreasing},
		CarbonSaved:  21,
		Achievements: []string{"First Steps"},
	}

	ctx := templ.WithNonce(context.Background(), "abc123")
	html, err := Bytes(ctx, FootprintReport(data))
	require.NoError(t, err)

	out := string(html)
	assert.Contains(t, out, `<style nonce="abc123">`)
	assert.Contains(t, out, "Sita &lt;script&gt;")
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "40 kg")
	assert.Contains(t, out, "First Steps")
	assert.Contains(t, out, "1 March 2026")
}

func TestFootprintReportWithoutCalculation(t *testing.T) {
	html, err := Bytes(context.Background(), FootprintReport(ReportData{Name: "Ram"}))
	require.NoError(t, err)

	assert.Contains(t, string(html), "No footprint calculated yet")
	assert.Contains(t, string(html), "<style>")
}

func TestPledgeCertificate(t *testing.T) {
	p := &model.Pledge{Name: "Hari", District: "Kaski", Number: 128, CreatedAt: time.Now()}

	html, err := Bytes(context.Background(), PledgeCertificate("Footprint", p))
	require.NoError(t, err)

	assert.Contains(t, string(html), "Hari")
	assert.Contains(t, string(html), "#128")
}
