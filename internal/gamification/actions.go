// Package gamification holds the rules behind points, levels, achievements
// and streaks. It has no storage of its own.
package gamification

import "sort"

const (
	ActionTree      = "tree"
	ActionTransport = "transport"
	ActionEnergy    = "energy"
	ActionRecycle   = "recycle"
	ActionCarpool   = "carpool"
	ActionCompost   = "compost"
)

// Action is a loggable eco action. Points and CarbonKg are per unit.
type Action struct {
	Type     string  `json:"type"`
	Name     string  `json:"name"`
	Icon     string  `json:"icon"`
	Points   int     `json:"points"`
	CarbonKg float64 `json:"carbon_kg"`
}

var actions = map[string]Action{
	ActionTree:      {Type: ActionTree, Name: "Plant a Tree", Icon: "🌳", Points: 50, CarbonKg: 21.77},
	ActionTransport: {Type: ActionTransport, Name: "Use Public Transport", Icon: "🚌", Points: 20, CarbonKg: 2.5},
	ActionEnergy:    {Type: ActionEnergy, Name: "Save Energy", Icon: "💡", Points: 15, CarbonKg: 1.2},
	ActionRecycle:   {Type: ActionRecycle, Name: "Recycle Waste", Icon: "♻️", Points: 10, CarbonKg: 0.5},
	ActionCarpool:   {Type: ActionCarpool, Name: "Carpool", Icon: "🚗", Points: 25, CarbonKg: 3.2},
	ActionCompost:   {Type: ActionCompost, Name: "Compost Organic Waste", Icon: "🌱", Points: 15, CarbonKg: 0.8},
}

func LookupAction(actionType string) (Action, error) {
	a, ok := actions[actionType]
	if !ok {
		return Action{}, ErrUnknownAction
	}
	return a, nil
}

// Actions returns the catalog ordered by points, highest first.
func Actions() []Action {
	out := make([]Action, 0, len(actions))
	for _, a := range actions {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return out[i].Type < out[j].Type
	})
	return out
}

// Reward is what logging quantity units of an action earns.
type Reward struct {
	Points       int
	CarbonKg     float64
	TreesPlanted int
}

// MaxQuantity bounds the units logged in one action.
const MaxQuantity = 1000

// Apply computes the reward for quantity units of an action.
func Apply(actionType string, quantity int) (Reward, error) {
	if quantity <= 0 || quantity > MaxQuantity {
		return Reward{}, ErrInvalidQuantity
	}
	a, err := LookupAction(actionType)
	if err != nil {
		return Reward{}, err
	}
	r := Reward{
		Points:   a.Points * quantity,
		CarbonKg: a.CarbonKg * float64(quantity),
	}
	if actionType == ActionTree {
		r.TreesPlanted = quantity
	}
	return r, nil
}
