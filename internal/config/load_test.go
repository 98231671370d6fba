package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadWithPath(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ModeOnStart, cfg.Detector.Mode)
	assert.Equal(t, 10*time.Second, cfg.Detector.Interval())
	assert.Equal(t, FOVMax, cfg.Detector.MaxAngle())
	assert.InDelta(t, DetectDistance, cfg.Detector.DetectDistance, 1e-12)
	assert.True(t, cfg.Viewer.TrackingValid)
	assert.Equal(t, TargetFPS, cfg.Host.FPS)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `
detector:
  mode: intervalDesktop
  intervalSeconds: 5
  headsetAware: true
viewer:
  verticalFOV: 90
  immersive: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := LoadWithPath(dir)
	require.NoError(t, err)
	assert.Equal(t, ModeIntervalDesktop, cfg.Detector.Mode)
	assert.Equal(t, 5*time.Second, cfg.Detector.Interval())
	assert.Equal(t, FOVMaxHeadset, cfg.Detector.MaxAngle())
	assert.InDelta(t, 90.0, cfg.Viewer.VerticalFOV, 1e-12)
	assert.True(t, cfg.Viewer.Immersive)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("FOVDETECT_DETECTOR_MODE", ModeManually)
	cfg, err := LoadWithPath(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, ModeManually, cfg.Detector.Mode)
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	yaml := "detector:\n  mode: sometimes\nviewer:\n  verticalFOV: 200\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	_, err := LoadWithPath(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "detector.mode")
	assert.Contains(t, err.Error(), "viewer.verticalFOV")
}

func TestClampInterval(t *testing.T) {
	tests := []struct {
		in   float64
		want time.Duration
	}{
		{0, 3 * time.Second},
		{2.5, 3 * time.Second},
		{10, 10 * time.Second},
		{60, 60 * time.Second},
		{600, 60 * time.Second},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampInterval(tt.in), "seconds=%v", tt.in)
	}
}

func TestFrameDelta(t *testing.T) {
	assert.Equal(t, time.Second/30, HostConfig{FPS: 30}.FrameDelta())
	assert.Equal(t, time.Second/TargetFPS, HostConfig{}.FrameDelta())
}
