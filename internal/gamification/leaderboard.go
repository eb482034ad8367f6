package gamification

import "sort"

const (
	CategoryWorkers  = "workers"
	CategoryStudents = "students"
	CategoryFree     = "free"
)

type Entry struct {
	Rank         int     `json:"rank"`
	UserID       string  `json:"user_id,omitempty"`
	Name         string  `json:"name"`
	Avatar       string  `json:"avatar"`
	District     string  `json:"district"`
	Category     string  `json:"category"`
	Points       int     `json:"points"`
	TreesPlanted int     `json:"trees_planted"`
	CarbonSaved  float64 `json:"carbon_saved"`
	ActionsCount int     `json:"actions_count"`
	Level        int     `json:"level"`
	Demo         bool    `json:"demo"`
}

// Rank sorts entries by points, highest first, breaking ties by name, and
// numbers them from 1.
func Rank(entries []Entry) []Entry {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].Name < entries[j].Name
	})
	for i := range entries {
		entries[i].Rank = i + 1
		entries[i].Level = Level(entries[i].Points)
	}
	return entries
}

// Podium returns the first three ranked entries.
func Podium(ranked []Entry) []Entry {
	if len(ranked) > 3 {
		return ranked[:3]
	}
	return ranked
}

// Initials builds a two letter avatar from a display name.
func Initials(name string) string {
	var out []rune
	start := true
	for _, r := range name {
		if r == ' ' {
			start = true
			continue
		}
		if start {
			out = append(out, r)
			start = false
			if len(out) == 2 {
				break
			}
		}
	}
	return string(out)
}
