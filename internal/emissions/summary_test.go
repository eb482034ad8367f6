package emissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name   string
		totals []int
		want   Summary
	}{
		{
			name:   "empty history",
			totals: nil,
			want:   Summary{Trend: TrendStable},
		},
		{
			name:   "single record has no change",
			totals: []int{300},
			want:   Summary{Count: 1, Latest: 300, Average: 300, Lowest: 300, Highest: 300, Trend: TrendStable},
		},
		{
			name:   "decreasing",
			totals: []int{270, 300, 330},
			want:   Summary{Count: 3, Latest: 270, Average: 300, Lowest: 270, Highest: 330, Trend: TrendDecreasing, PercentChange: -10},
		},
		{
			name:   "increasing",
			totals: []int{400, 200},
			want:   Summary{Count: 2, Latest: 400, Average: 300, Lowest: 200, Highest: 400, Trend: TrendIncreasing, PercentChange: 100},
		},
		{
			name:   "previous zero leaves percent at zero",
			totals: []int{50, 0},
			want:   Summary{Count: 2, Latest: 50, Average: 25, Lowest: 0, Highest: 50, Trend: TrendIncreasing},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summarize(tt.totals))
		})
	}
}

func TestEquivalent(t *testing.T) {
	got := Equivalent(42)
	assert.InDelta(t, 2, got.Trees, 1e-9)
	assert.InDelta(t, 104, got.CarMiles, 1e-9)
	assert.InDelta(t, 5250, got.PhoneCharges, 1e-9)
	assert.Equal(t, "5,250 smartphone charges", got.PhoneChargeTxt)
}

func TestFormatKg(t *testing.T) {
	assert.Equal(t, "1,234 kg", FormatKg(1234))
	assert.Equal(t, "12.5 kg", FormatKg(12.5))
	assert.Equal(t, "$1,250.00", FormatUSD(1250))
}
