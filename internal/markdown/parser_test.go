package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	source := []byte(`---
title: Take the bus
order: 3
---

Buses emit **far less** per passenger.
`)

	var meta struct {
		Title string `yaml:"title"`
		Order int    `yaml:"order"`
	}
	html, err := NewParser().Render(source, &meta)
	require.NoError(t, err)

	assert.Equal(t, "Take the bus", meta.Title)
	assert.Equal(t, 3, meta.Order)
	assert.Contains(t, string(html), "<strong>far less</strong>")
	assert.NotContains(t, string(html), "title:")
}

func TestRenderWithoutFrontmatter(t *testing.T) {
	var meta struct {
		Title string `yaml:"title"`
	}
	html, err := NewParser().Render([]byte("# Hello"), &meta)
	require.NoError(t, err)

	assert.Empty(t, meta.Title)
	assert.Contains(t, string(html), "Hello</h1>")
}
