// Package tui runs the detector in a terminal. Every bubbletea tick is one
// host frame.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-fov-detector/internal/config"
	"go-fov-detector/internal/detector"
	"go-fov-detector/internal/event"
	"go-fov-detector/internal/logger"
	"go-fov-detector/internal/sim"
)

// TickMsg triggers one frame.
type TickMsg time.Time

const (
	gaugeWidth  = 40
	historySize = 5
)

// statusLine is the detector's display surface. Model copies share it.
type statusLine struct {
	text    string
	changes int
}

func (s *statusLine) SetText(text string) { s.text = text }

// Model is the root bubbletea model.
type Model struct {
	host   *sim.Host
	status *statusLine
	delta  time.Duration
	width  int
}

// New builds a host from cfg with a terminal status line bound as display.
func New(cfg *config.Config, log *logger.Logger) (Model, error) {
	status := &statusLine{}
	host, err := sim.NewHost(cfg, log, detector.WithDisplay(status))
	if err != nil {
		return Model{}, err
	}
	host.Detector.Register(event.ListenerFunc(func(event.Event) { status.changes++ }))
	return Model{
		host:   host,
		status: status,
		delta:  cfg.Host.FrameDelta(),
	}, nil
}

// Host exposes the underlying simulation.
func (m Model) Host() *sim.Host { return m.host }

func (m Model) Init() tea.Cmd {
	m.host.Start()
	return m.tickCmd()
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.delta, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		m.host.Step(m.delta)
		return m, m.tickCmd()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v := m.host.Viewer
	switch msg.String() {
	case "q", "Q", "ctrl+c", "esc":
		m.host.Close()
		return m, tea.Quit
	case " ", "s":
		m.host.Detector.StartDetection()
	case "up", "k":
		v.SetVerticalFOV(v.VerticalFOV() + 1)
	case "down", "j":
		v.SetVerticalFOV(v.VerticalFOV() - 1)
	case "h":
		v.SetImmersive(!v.IsImmersive())
	case "t":
		v.SetValid(!v.IsValid())
	}
	return m, nil
}

func (m Model) View() string {
	det := m.host.Detector
	v := m.host.Viewer

	var b strings.Builder
	b.WriteString(StyleTitle.Render("FOV DETECTOR"))
	b.WriteString("\n")

	rows := [][2]string{
		{"status", statusStyle(det.Detecting(), det.DetectedFOV()).Render(m.statusText())},
		{"candidate", fmt.Sprintf("%d", det.Candidate())},
		{"detected", fmt.Sprintf("%d°", det.DetectedFOV())},
		{"changes", fmt.Sprintf("%d", m.status.changes)},
		{"viewer fov", fmt.Sprintf("%.0f°", v.VerticalFOV())},
		{"headset", fmt.Sprintf("%v", v.IsImmersive())},
		{"tracking", fmt.Sprintf("%v", v.IsValid())},
		{"mode", det.Mode().String()},
	}
	var panel strings.Builder
	for i, r := range rows {
		if i > 0 {
			panel.WriteString("\n")
		}
		panel.WriteString(StyleLabel.Render(fmt.Sprintf("%-11s", r[0])))
		panel.WriteString(StyleValue.Render(r[1]))
	}
	panel.WriteString("\n\n")
	panel.WriteString(m.gauge())

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		StylePanel.Render(panel.String()),
		StylePanel.Render(m.history()),
	))
	b.WriteString("\n")
	b.WriteString(StyleHelp.Render("space start  ↑/↓ viewer fov  h headset  t tracking  q quit"))
	return b.String()
}

func (m Model) statusText() string {
	if m.status.text == "" {
		return "Idle"
	}
	return m.status.text
}

// gauge renders the sweep position between max (left) and min (right).
func (m Model) gauge() string {
	opts := m.host.Detector.Options()
	c := m.host.Detector.Candidate()
	filled := 0
	if c > 0 && opts.MaxAngle > opts.MinAngle {
		filled = gaugeWidth * (c - opts.MinAngle) / (opts.MaxAngle - opts.MinAngle)
	}
	return fmt.Sprintf("%d° [%s%s] %d°",
		opts.MinAngle,
		strings.Repeat("█", filled),
		strings.Repeat("░", gaugeWidth-filled),
		opts.MaxAngle)
}

func (m Model) history() string {
	results := m.host.Results()
	var b strings.Builder
	b.WriteString(StyleLabel.Render("last sweeps"))
	start := len(results) - historySize
	if start < 0 {
		start = 0
	}
	for i := len(results) - 1; i >= start; i-- {
		b.WriteString("\n")
		r := results[i]
		if r.Success {
			b.WriteString(lipgloss.NewStyle().Foreground(ColorDetected).Render(fmt.Sprintf("%d°", r.FOV)))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(ColorFailed).Render("failed"))
		}
	}
	return b.String()
}
