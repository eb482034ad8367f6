package logger

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitSetsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	flush := Init(true, "")
	flush()

	assert.NotNil(t, Log)
	assert.Same(t, Log, slog.Default())
	assert.True(t, Log.Enabled(t.Context(), slog.LevelDebug))
}

func TestProductionSkipsDebug(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	Init(false, "")
	assert.False(t, Log.Enabled(t.Context(), slog.LevelDebug))
	assert.True(t, Log.Enabled(t.Context(), slog.LevelInfo))
}

func TestComponent(t *testing.T) {
	assert.NotNil(t, Component("jobs"))
}
