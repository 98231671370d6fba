package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-fov-detector/internal/config"
	"go-fov-detector/internal/logger"
)

func testConfig(mode string) *config.Config {
	return &config.Config{
		Detector: config.DetectorConfig{
			Mode:            mode,
			IntervalSeconds: config.DefaultDetectInterval,
			DetectDistance:  config.DetectDistance,
		},
		Viewer: config.ViewerConfig{
			VerticalFOV:   70,
			Aspect:        config.DefaultViewerAspect,
			Near:          config.DefaultNearClip,
			Far:           config.DefaultFarClip,
			EyeHeight:     config.DefaultEyeHeight,
			TrackingValid: true,
		},
		Host: config.HostConfig{FPS: 60},
	}
}

func step(t *testing.T, m tea.Model, msg tea.Msg) tea.Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next
}

func TestTicksDriveDetection(t *testing.T) {
	m, err := New(testConfig(config.ModeOnStart), logger.NewNop())
	require.NoError(t, err)
	require.NotNil(t, m.Init())
	assert.Contains(t, m.View(), "Detecting...")

	var model tea.Model = m
	for i := 0; i < 31; i++ {
		model = step(t, model, TickMsg(time.Now()))
	}

	det := m.Host().Detector
	assert.False(t, det.Detecting())
	assert.Equal(t, 70, det.DetectedFOV())
	view := model.View()
	assert.Contains(t, view, "70°")
	assert.Contains(t, view, "last sweeps")
}

func TestKeysControlViewer(t *testing.T) {
	m, err := New(testConfig(config.ModeManually), logger.NewNop())
	require.NoError(t, err)
	m.Init()

	var model tea.Model = m
	model = step(t, model, tea.KeyMsg{Type: tea.KeyUp})
	model = step(t, model, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("h")})
	assert.InDelta(t, 71.0, m.Host().Viewer.VerticalFOV(), 1e-9)
	assert.True(t, m.Host().Viewer.IsImmersive())
	assert.Contains(t, model.View(), "Idle")

	model = step(t, model, tea.KeyMsg{Type: tea.KeySpace})
	assert.True(t, m.Host().Detector.Detecting())

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestGaugeShrinksDuringSweep(t *testing.T) {
	m, err := New(testConfig(config.ModeOnStart), logger.NewNop())
	require.NoError(t, err)
	m.Init()

	var model tea.Model = m
	model = step(t, model, TickMsg(time.Now()))
	full := m.gauge()
	for i := 0; i < 20; i++ {
		model = step(t, model, TickMsg(time.Now()))
	}
	assert.Greater(t, len([]rune(full)), 0)
	assert.Contains(t, full, "████████████████████████████████████████")
	assert.NotContains(t, m.gauge(), "████████████████████████████████████████")
	_ = model
}
