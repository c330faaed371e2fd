package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadContentDefaults(t *testing.T) {
	c, err := loadContent("")
	require.NoError(t, err)
	assert.Len(t, c.Projects, 3)
	assert.NotEmpty(t, c.About)
}

func TestLoadContentOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.toml")
	data := `
headline = "Go Developer"

[[projects]]
title = "Walship"
blurb = "Ships write-ahead logs."
tags = ["Go"]
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	c, err := loadContent(path)
	require.NoError(t, err)
	assert.Equal(t, "Go Developer", c.Headline)
	require.Len(t, c.Projects, 1)
	assert.Equal(t, "Walship", c.Projects[0].Title)
	// Untouched sections keep their defaults.
	assert.Equal(t, defaultContent().Skills, c.Skills)
}

func TestLoadContentErrors(t *testing.T) {
	_, err := loadContent(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("headline = "), 0o644))
	_, err = loadContent(path)
	assert.ErrorContains(t, err, "parse content")
}
