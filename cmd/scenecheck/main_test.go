package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckBundledScene(t *testing.T) {
	report, err := check(filepath.Join("..", "..", "data", "yaml", "scene.yaml"), 120)
	require.NoError(t, err)

	assert.Len(t, report.Checksum, 64)
	assert.Equal(t, 120, report.Frames)
	assert.Equal(t, 11, report.Declared)
	assert.GreaterOrEqual(t, report.Entities, report.Declared)

	byName := map[string]EntityReport{}
	for _, e := range report.Named {
		byName[e.Name] = e
	}
	require.Contains(t, byName, "player")
	require.Contains(t, byName, "player_particles")
	player := byName["player"]
	assert.Greater(t, player.Y, 100.0, "player fell")
	assert.Equal(t, player.X+32, byName["player_particles"].X)
	assert.Equal(t, player.Y+32, byName["player_particles"].Y)
	assert.Equal(t, 1400.0, byName["ground"].Y)
	assert.True(t, player.OnScreen, "camera follows the player")
	assert.GreaterOrEqual(t, player.ScreenX, 0)
	assert.Less(t, player.ScreenX, 800)
}

func TestCheckMissingScene(t *testing.T) {
	_, err := check(filepath.Join(t.TempDir(), "missing.yaml"), 1)
	assert.Error(t, err)
}
