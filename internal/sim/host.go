// internal/sim/host.go
package sim

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"go-fov-detector/internal/config"
	"go-fov-detector/internal/detector"
	"go-fov-detector/internal/event"
	"go-fov-detector/internal/logger"
	"go-fov-detector/internal/render"
	"go-fov-detector/internal/scheduler"
)

// Host is a headless frame loop driving a detector against a simulated
// viewer. Each Step is one frame: timers, head movement, late tick, render.
type Host struct {
	Viewer    *Viewer
	Scheduler *scheduler.FrameScheduler
	Detector  *detector.Detector
	Pass      *render.Pass

	log     *logger.Logger
	delta   time.Duration
	frames  int
	results []detector.Result
}

// NewHost wires a detector, scheduler, viewer and render pass from cfg.
// Extra detector options (display, dispatcher) are applied after the
// host's own.
func NewHost(cfg *config.Config, log *logger.Logger, opts ...detector.Option) (*Host, error) {
	detOpts, err := detector.OptionsFromConfig(cfg.Detector)
	if err != nil {
		return nil, fmt.Errorf("detector options: %w", err)
	}
	if log == nil {
		log = logger.Default()
	}

	h := &Host{
		Viewer:    NewViewer(cfg.Viewer),
		Scheduler: scheduler.New(),
		log:       log,
		delta:     cfg.Host.FrameDelta(),
	}
	h.Pass = render.NewPass(h.Viewer.Oracle(cfg.Probe.Radius))

	all := append([]detector.Option{
		detector.WithPlatform(h.Viewer),
		detector.WithLogger(log),
	}, opts...)
	h.Detector = detector.New(detOpts, h.Viewer, h.Scheduler, all...)
	h.Detector.Events().Subscribe(event.DetectionFinished, event.ListenerFunc(h.onFinished))
	return h, nil
}

func (h *Host) onFinished(e event.Event) {
	if res, ok := e.Data.(detector.Result); ok {
		h.results = append(h.results, res)
	}
}

// Start runs the detector's start hook.
func (h *Host) Start() {
	h.Detector.Start()
}

// Step runs one frame of dt.
func (h *Host) Step(dt time.Duration) {
	h.Update(dt)
	h.Frame()
}

// Update advances simulated time: timers, then head movement. Windowed hosts
// call it from their update callback, which may run several times (or not at
// all) between two drawn frames.
func (h *Host) Update(dt time.Duration) {
	h.Scheduler.Advance(dt)
	h.Viewer.Update(dt)
}

// Frame is one rendered frame: the detector's late tick followed by the
// render stage. Exactly one tick happens per render.
func (h *Host) Frame() int {
	h.Detector.Tick()
	h.frames++
	return h.Render()
}

// Render is the render stage of a frame.
func (h *Host) Render() int {
	return h.Pass.Render(h.Viewer.HeadPose(), h.Detector)
}

// Frames returns how many rendered frames have run.
func (h *Host) Frames() int { return h.frames }

// FrameDelta returns the configured frame duration.
func (h *Host) FrameDelta() time.Duration { return h.delta }

// Results returns every finished sweep in order.
func (h *Host) Results() []detector.Result { return h.results }

// RunSweeps steps frames with the configured delta until sweeps sweeps have
// finished, maxFrames frames have run, or ctx is cancelled. It does not
// sleep: time is simulated.
func (h *Host) RunSweeps(ctx context.Context, sweeps, maxFrames int) ([]detector.Result, error) {
	if sweeps < 1 {
		return nil, fmt.Errorf("sweeps must be at least 1, got %d", sweeps)
	}
	start := len(h.results)
	for i := 0; maxFrames <= 0 || i < maxFrames; i++ {
		if err := ctx.Err(); err != nil {
			return h.results[start:], err
		}
		if len(h.results)-start >= sweeps {
			break
		}
		if !h.Detector.Detecting() && h.Scheduler.Pending() == 0 {
			h.log.Debug("nothing left to run", zap.Int("frames", h.frames))
			break
		}
		h.Step(h.delta)
	}
	return h.results[start:], nil
}

// Close shuts the detector down and drops pending timers.
func (h *Host) Close() {
	h.Detector.Close()
	h.Scheduler.Clear()
}
