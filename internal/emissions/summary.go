package emissions

import "math"

type Trend string

const (
	TrendDecreasing Trend = "decreasing"
	TrendIncreasing Trend = "increasing"
	TrendStable     Trend = "stable"
)

// Summary aggregates a footprint history.
type Summary struct {
	Count         int     `json:"count"`
	Latest        int     `json:"latest"`
	Average       float64 `json:"average"`
	Lowest        int     `json:"lowest"`
	Highest       int     `json:"highest"`
	Trend         Trend   `json:"trend"`
	PercentChange float64 `json:"percent_change"`
}

// Summarize takes monthly totals ordered newest first.
func Summarize(totals []int) Summary {
	s := Summary{Trend: TrendStable}
	if len(totals) == 0 {
		return s
	}

	s.Count = len(totals)
	s.Latest = totals[0]
	s.Lowest = totals[0]
	s.Highest = totals[0]
	sum := 0
	for _, t := range totals {
		sum += t
		if t < s.Lowest {
			s.Lowest = t
		}
		if t > s.Highest {
			s.Highest = t
		}
	}
	s.Average = math.Round(float64(sum)/float64(len(totals))*10) / 10

	if len(totals) < 2 {
		return s
	}
	previous := totals[1]
	switch {
	case s.Latest < previous:
		s.Trend = TrendDecreasing
	case s.Latest > previous:
		s.Trend = TrendIncreasing
	}
	if previous != 0 {
		s.PercentChange = math.Round(float64(s.Latest-previous)/float64(previous)*1000) / 10
	}
	return s
}
