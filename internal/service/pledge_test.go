package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPledge(t *testing.T) {
	e := newEnv(t)

	count, err := e.pledges.Count()
	require.NoError(t, err)
	assert.Equal(t, 127, count)

	first, err := e.pledges.Pledge(" Hari Poudel ", "Kaski", "")
	require.NoError(t, err)
	assert.Equal(t, 128, first.Number)
	assert.Equal(t, "Hari Poudel", first.Name)
	assert.Nil(t, first.UserID)

	u := e.user(t, "Laxmi Bhatta")
	second, err := e.pledges.Pledge("Laxmi Bhatta", "Lalitpur", u.ID)
	require.NoError(t, err)
	assert.Equal(t, 129, second.Number)
	require.NotNil(t, second.UserID)
	assert.Equal(t, u.ID, *second.UserID)
	assert.Equal(t, "http://localhost:8090/api/pledges/"+second.ID+"/certificate", e.pledges.CertificateURL(second))

	count, err = e.pledges.Count()
	require.NoError(t, err)
	assert.Equal(t, 129, count)

	got, err := e.pledges.ByID(first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kaski", got.District)
}

func TestPledgeValidation(t *testing.T) {
	e := newEnv(t)

	_, err := e.pledges.Pledge("", "Kaski", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = e.pledges.Pledge("Hari", "  ", "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	count, err := e.pledges.Count()
	require.NoError(t, err)
	assert.Equal(t, 127, count)
}
