package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/footprint/internal/emissions"
	"github.com/templui/footprint/internal/model"
)

func TestReportData(t *testing.T) {
	e := newEnv(t)
	u := e.user(t, "Sabina KC")

	data, err := e.reports.Data(u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sabina KC", data.Name)
	assert.Nil(t, data.Calculation)

	_, err = e.footprints.Calculate(u.ID, emissions.Input{CarKm: 300, Diet: emissions.DietAverage})
	require.NoError(t, err)

	data, err = e.reports.Data(u.ID)
	require.NoError(t, err)
	require.NotNil(t, data.Calculation)
	assert.Equal(t, 1, data.Summary.Count)
	assert.Contains(t, data.Achievements, "Carbon Tracker")
}

func TestReportStore(t *testing.T) {
	e := newEnv(t)
	u := e.user(t, "Sabina KC")
	_, err := e.footprints.Calculate(u.ID, emissions.Input{CarKm: 300})
	require.NoError(t, err)

	stored, err := e.reports.Store(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, model.FileTypeReport, stored.File.Type)
	assert.True(t, strings.HasPrefix(stored.File.OriginalName, "footprint-report-"))
	assert.True(t, strings.HasPrefix(stored.URL, "memory://private/"))

	body, contentType, ok := e.store.Object(stored.File.StoragePath)
	require.True(t, ok)
	assert.Equal(t, "text/html; charset=utf-8", contentType)
	assert.Contains(t, string(body), "Sabina KC")

	reports, err := e.reports.List(u.ID)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, stored.File.ID, reports[0].File.ID)
}
