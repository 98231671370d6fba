// internal/state/detect_state.go
package state

import (
	"fmt"
	"image/color"
	"time"

	"go-fov-detector/internal/config"
	"go-fov-detector/internal/event"
	"go-fov-detector/internal/render"
	"go-fov-detector/internal/sim"
	"go-fov-detector/internal/ui"
	"go-fov-detector/pkg/geom"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Убеждаемся, что DetectState соответствует интерфейсу State
var _ State = (*DetectState)(nil)

// DetectState runs the detector. Update advances time and the head, Draw
// runs the late tick and the render stage: the probe counts as rendered when
// its projection lands on screen.
type DetectState struct {
	sm   *StateMachine
	host *sim.Host

	indicator *ui.StateIndicator
	gauge     *ui.SweepGauge
	status    *ui.StatusText

	changes int
	started bool
}

// NewDetectState creates the detection screen. status must be the display
// the host's detector was built with.
func NewDetectState(sm *StateMachine, host *sim.Host, status *ui.StatusText) *DetectState {
	opts := host.Detector.Options()
	return &DetectState{
		sm:        sm,
		host:      host,
		indicator: ui.NewStateIndicator(config.ScreenWidth-30, 30, 10),
		gauge:     ui.NewSweepGauge(config.TextOffsetX, config.ScreenHeight-40, opts.MinAngle, opts.MaxAngle),
		status:    status,
	}
}

func (s *DetectState) Enter() {
	if s.started {
		return
	}
	s.started = true
	s.host.Pass.SetOracle(render.OracleFunc(s.onScreen))
	s.host.Detector.Register(event.ListenerFunc(func(event.Event) { s.changes++ }))
	s.host.Start()
}

func (s *DetectState) Update(deltaTime float64) {
	s.handleInput()
	s.host.Update(time.Duration(deltaTime * float64(time.Second)))
}

func (s *DetectState) handleInput() {
	v := s.host.Viewer
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		s.host.Detector.StartDetection()
	case inpututil.IsKeyJustPressed(ebiten.KeyUp):
		v.SetVerticalFOV(v.VerticalFOV() + 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyDown):
		v.SetVerticalFOV(v.VerticalFOV() - 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		v.SetImmersive(!v.IsImmersive())
	case inpututil.IsKeyJustPressed(ebiten.KeyT):
		v.SetValid(!v.IsValid())
	}
}

// onScreen is the render signal: project and test against the target size.
func (s *DetectState) onScreen(probe geom.Transform, viewer geom.Pose) bool {
	o := render.ScreenOracle{
		Frustum: s.host.Viewer.Frustum(),
		Width:   config.ScreenWidth,
		Height:  config.ScreenHeight,
		Margin:  config.ProbeScreenSize / 2,
	}
	return o.IsVisible(probe, viewer)
}

func (s *DetectState) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	s.drawHorizon(screen)

	// Один шаг перебора на кадр, затем стадия рендера: здесь детектор
	// узнаёт, что зонд попал в кадр
	s.host.Frame()
	s.drawProbe(screen)

	det := s.host.Detector
	s.indicator.Draw(screen, s.stateColor())
	s.status.Draw(screen)
	s.gauge.Draw(screen, det.Candidate(), det.DetectedFOV())

	v := s.host.Viewer
	info := fmt.Sprintf("viewer FOV: %.0f°  headset: %v  tracking: %v\nmode: %s  interval: %v\ncandidate: %d  detected: %d°  changes: %d",
		v.VerticalFOV(), v.IsImmersive(), v.IsValid(),
		det.Mode(), det.Interval(),
		det.Candidate(), det.DetectedFOV(), s.changes)
	ebitenutil.DebugPrintAt(screen, info, config.TextOffsetX, config.TextOffsetY)
}

func (s *DetectState) drawHorizon(screen *ebiten.Image) {
	f := s.host.Viewer.Frustum()
	head := s.host.Viewer.HeadPose()
	ahead := head.Position.Add(head.Forward.Mul(10))
	_, y, ok := f.Project(head, ahead, config.ScreenWidth, config.ScreenHeight)
	if !ok {
		return
	}
	vector.StrokeLine(screen, 0, float32(y), config.ScreenWidth, float32(y), 1, config.HorizonColor, true)
}

func (s *DetectState) drawProbe(screen *ebiten.Image) {
	p := s.host.Detector.Probe()
	if !p.Visible {
		return
	}
	x, y, ok := s.host.Viewer.Frustum().Project(s.host.Viewer.HeadPose(), p.Transform.Position, config.ScreenWidth, config.ScreenHeight)
	if !ok {
		return
	}
	half := float32(config.ProbeScreenSize / 2)
	vector.DrawFilledRect(screen, float32(x)-half, float32(y)-half, half*2, half*2, config.ProbeColor, true)
}

func (s *DetectState) stateColor() color.RGBA {
	det := s.host.Detector
	switch {
	case det.Detecting():
		return config.DetectingColor
	case det.DetectedFOV() > 0:
		return config.DetectedColor
	default:
		return config.FailedColor
	}
}

func (s *DetectState) Exit() {}
