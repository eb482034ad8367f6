package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/footprint/internal/model"
)

func TestGoalLifecycle(t *testing.T) {
	e := newEnv(t)
	u := e.user(t, "Gita Adhikari")

	// carbon saved before the goal doesn't count towards it
	_, err := e.gamification.Credit(u.ID, Gain{CarbonKg: 30})
	require.NoError(t, err)

	goal, err := e.goals.Create(u.ID, GoalInput{Title: "  Save 10 kg  ", TargetKg: 10, Deadline: "2026-12-31"})
	require.NoError(t, err)
	assert.Equal(t, "Save 10 kg", goal.Title)
	assert.Equal(t, 0.0, goal.Progress)

	_, err = e.gamification.Credit(u.ID, Gain{CarbonKg: 4})
	require.NoError(t, err)
	view, err := e.goals.ByID(u.ID, goal.ID)
	require.NoError(t, err)
	assert.InDelta(t, 40.0, view.Progress, 0.001)
	assert.InDelta(t, 4.0, view.SavedKg, 0.001)

	n, err := e.goals.CompleteReached()
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	_, err = e.gamification.Credit(u.ID, Gain{CarbonKg: 8})
	require.NoError(t, err)
	n, err = e.goals.CompleteReached()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	view, err = e.goals.ByID(u.ID, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, model.GoalStatusCompleted, view.Status)
	assert.NotNil(t, view.CompletedAt)
	assert.Equal(t, 100.0, view.Progress)

	_, err = e.goals.Update(u.ID, goal.ID, GoalInput{Title: "More", TargetKg: 50})
	assert.ErrorIs(t, err, ErrGoalAlreadyCompleted)

	require.NoError(t, e.goals.Delete(u.ID, goal.ID))
	goals, err := e.goals.Goals(u.ID, "")
	require.NoError(t, err)
	assert.Empty(t, goals)
}

func TestGoalValidation(t *testing.T) {
	e := newEnv(t)
	u := e.user(t, "Gita Adhikari")

	tests := []struct {
		name string
		in   GoalInput
	}{
		{"missing title", GoalInput{TargetKg: 5}},
		{"zero target", GoalInput{Title: "Goal"}},
		{"huge target", GoalInput{Title: "Goal", TargetKg: maxGoalKg + 1}},
		{"bad deadline", GoalInput{Title: "Goal", TargetKg: 5, Deadline: "soon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.goals.Create(u.ID, tt.in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestGoalLimit(t *testing.T) {
	e := newEnv(t)
	u := e.user(t, "Gita Adhikari")

	for i := 0; i < MaxActiveGoals; i++ {
		_, err := e.goals.Create(u.ID, GoalInput{Title: fmt.Sprintf("Goal %d", i), TargetKg: 5})
		require.NoError(t, err)
	}
	_, err := e.goals.Create(u.ID, GoalInput{Title: "One too many", TargetKg: 5})
	assert.ErrorIs(t, err, ErrGoalLimitReached)
}
