package gamification

import "time"

// DateLayout is how active days are stored.
const DateLayout = "2006-01-02"

// Streak is a run of consecutive active days.
type Streak struct {
	Current  int
	Longest  int
	LastDate string
}

// Touch records activity on day. A gap of exactly one day extends the run,
// a longer gap restarts it at one, the same day leaves it unchanged.
func (s Streak) Touch(day time.Time) Streak {
	today := day.Format(DateLayout)

	last, err := time.Parse(DateLayout, s.LastDate)
	if s.LastDate == "" || err != nil {
		s.Current = 1
	} else {
		d := daysBetween(last, day)
		switch {
		case d == 0:
			if s.Current == 0 {
				s.Current = 1
			}
		case d == 1:
			s.Current++
		case d > 1:
			s.Current = 1
		}
	}

	if s.Current > s.Longest {
		s.Longest = s.Current
	}
	s.LastDate = today
	return s
}

// Lapsed reports whether the run is already broken as of day.
func (s Streak) Lapsed(day time.Time) bool {
	last, err := time.Parse(DateLayout, s.LastDate)
	if err != nil {
		return s.Current > 0
	}
	return daysBetween(last, day) > 1
}

func daysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
