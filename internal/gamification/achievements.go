package gamification

const (
	RequirementActions     = "action_count"
	RequirementTrees       = "tree_count"
	RequirementPoints      = "points"
	RequirementCarbonSaved = "carbon_saved"
	RequirementDaysActive  = "days_active"
	RequirementLevel       = "level"
	RequirementStreak      = "longest_streak"
	RequirementFootprints  = "footprints"
	RequirementTips        = "implemented_tips"
)

type Requirement struct {
	Type  string  `json:"type"`
	Value float64 `json:"value"`
}

type Achievement struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Icon        string      `json:"icon"`
	Requirement Requirement `json:"requirement"`
}

// Snapshot is the profile state achievements are checked against.
type Snapshot struct {
	Points          int
	TreesPlanted    int
	CarbonSaved     float64
	ActionsCount    int
	DaysActive      int
	LongestStreak   int
	Footprints      int
	ImplementedTips int
}

var achievements = []Achievement{
	{ID: "first_action", Name: "First Step", Description: "Log your first action", Icon: "✨", Requirement: Requirement{RequirementActions, 1}},
	{ID: "tree_planter", Name: "Tree Planter", Description: "Plant 10 trees", Icon: "🌳", Requirement: Requirement{RequirementTrees, 10}},
	{ID: "point_master", Name: "Point Master", Description: "Earn 500 points", Icon: "🏆", Requirement: Requirement{RequirementPoints, 500}},
	{ID: "eco_warrior", Name: "Eco Warrior", Description: "Save 100kg CO₂", Icon: "🛡️", Requirement: Requirement{RequirementCarbonSaved, 100}},
	{ID: "consistent", Name: "Consistent", Description: "Log actions for 7 days", Icon: "📅", Requirement: Requirement{RequirementDaysActive, 7}},
	{ID: "green_champion", Name: "Green Champion", Description: "Reach level 10", Icon: "👑", Requirement: Requirement{RequirementLevel, 10}},
	{ID: "carbon_tracker", Name: "Carbon Tracker", Description: "Save your first footprint calculation", Icon: "📊", Requirement: Requirement{RequirementFootprints, 1}},
	{ID: "streak_master", Name: "Streak Master", Description: "Stay active 30 days in a row", Icon: "🔥", Requirement: Requirement{RequirementStreak, 30}},
	{ID: "tip_adopter", Name: "Tip Adopter", Description: "Implement 5 eco tips", Icon: "💡", Requirement: Requirement{RequirementTips, 5}},
}

// Achievements returns every definition in display order.
func Achievements() []Achievement {
	out := make([]Achievement, len(achievements))
	copy(out, achievements)
	return out
}

// Met reports whether s satisfies a requirement.
func (r Requirement) Met(s Snapshot) bool {
	var have float64
	switch r.Type {
	case RequirementActions:
		have = float64(s.ActionsCount)
	case RequirementTrees:
		have = float64(s.TreesPlanted)
	case RequirementPoints:
		have = float64(s.Points)
	case RequirementCarbonSaved:
		have = s.CarbonSaved
	case RequirementDaysActive:
		have = float64(s.DaysActive)
	case RequirementLevel:
		have = float64(Level(s.Points))
	case RequirementStreak:
		have = float64(s.LongestStreak)
	case RequirementFootprints:
		have = float64(s.Footprints)
	case RequirementTips:
		have = float64(s.ImplementedTips)
	default:
		return false
	}
	return have >= r.Value
}

// Evaluate returns achievements newly met by s. Anything in unlocked is
// skipped, so earlier unlocks are never re-reported or revoked.
func Evaluate(s Snapshot, unlocked map[string]bool) []Achievement {
	var out []Achievement
	for _, a := range achievements {
		if unlocked[a.ID] {
			continue
		}
		if a.Requirement.Met(s) {
			out = append(out, a)
		}
	}
	return out
}
