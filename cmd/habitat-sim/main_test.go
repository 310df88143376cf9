package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sceneCommand(t *testing.T, flags ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	sceneFlags(cmd)
	require.NoError(t, cmd.ParseFlags(flags))
	return cmd
}

func TestResolveConfigPhysicsFlag(t *testing.T) {
	cfg, err := resolveConfig(sceneCommand(t, "--physics", "--headless"), []string{"room.glb"})
	require.NoError(t, err)
	assert.True(t, cfg.EnablePhysics)
	assert.False(t, cfg.CreateRenderer)
	assert.Equal(t, "room.glb", cfg.Scene.ID)

	cfg, err = resolveConfig(sceneCommand(t), []string{"room.glb"})
	require.NoError(t, err)
	assert.False(t, cfg.EnablePhysics)
	assert.True(t, cfg.CreateRenderer)
}

func TestResolveConfigPresetKeepsUnsetFlags(t *testing.T) {
	cfg, err := resolveConfig(sceneCommand(t, "--preset", "mp3d/physics", "--physics=false", "--width", "64"), nil)
	require.NoError(t, err)
	assert.False(t, cfg.EnablePhysics, "explicit flag overrides the preset")
	assert.Equal(t, 64, cfg.Width)
	assert.Equal(t, 240, cfg.Height)
	assert.Equal(t, "mp3d", cfg.Scene.Dataset)
}

func TestResolveConfigErrors(t *testing.T) {
	_, err := resolveConfig(sceneCommand(t), nil)
	assert.Error(t, err, "no scene")

	_, err = resolveConfig(sceneCommand(t, "--preset", "mp3d"), []string{"room.glb"})
	assert.Error(t, err)

	_, err = resolveConfig(sceneCommand(t, "--preset", "mp3d/missing"), []string{"room.glb"})
	assert.Error(t, err)
}
