package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRoundTrip(t *testing.T) {
	m := NewMemory()

	require.NoError(t, m.Save("private/reports/r.html", "text/html", strings.NewReader("<h1>ok</h1>")))
	b, ct, ok := m.Object("private/reports/r.html")
	require.True(t, ok)
	assert.Equal(t, "<h1>ok</h1>", string(b))
	assert.Equal(t, "text/html", ct)

	url, err := m.URL("private/reports/r.html", false)
	require.NoError(t, err)
	assert.Equal(t, "memory://private/private/reports/r.html", url)

	require.NoError(t, m.Delete("private/reports/r.html"))
	assert.Equal(t, 0, m.Len())
}

func TestBaseURL(t *testing.T) {
	assert.Equal(t, "https://eco.s3.ap-south-1.amazonaws.com", baseURL(S3Config{Bucket: "eco", Region: "ap-south-1"}))
	assert.Equal(t, "http://localhost:9000/eco", baseURL(S3Config{Bucket: "eco", Endpoint: "http://localhost:9000/"}))
}
