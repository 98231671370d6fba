package detector

import (
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"go.uber.org/zap"

	"go-fov-detector/internal/event"
)

const (
	detectingText = "Detecting..."
	failedText    = "Failed"
)

// Result is attached to DetectionFinished events.
type Result struct {
	FOV     int
	Success bool
}

// Events exposes the dispatcher for DetectionStarted/DetectionFinished
// subscribers. FOV change listeners should use Register.
func (d *Detector) Events() *event.Dispatcher {
	return d.events
}

// StartDetection begins a sweep. It is a no-op without a valid tracking
// source, while a sweep is already running, or after Close.
func (d *Detector) StartDetection() {
	if d.closed || d.detecting || d.tracker == nil || !d.tracker.IsValid() {
		return
	}

	d.log.Info("start fov detection",
		zap.Int("from", d.opts.MaxAngle), zap.Int("to", d.opts.MinAngle))
	d.detecting = true
	d.detectedFOV = 0
	d.probe.Visible = true
	d.active = true
	d.setText(detectingText)

	d.events.Dispatch(event.Event{Type: event.DetectionStarted, Data: d})
}

// Tick advances the sweep by one angle step and repositions the probe. The
// host calls it once per frame after head movement for the frame has been
// applied and before the render stage.
func (d *Detector) Tick() {
	if !d.active || !d.detecting {
		return
	}

	switch {
	case d.candidate == 0:
		d.candidate = d.opts.MaxAngle
	case d.candidate > d.opts.MinAngle:
		d.candidate--
	default:
		d.log.Warn("fov detection failed", zap.Int("min", d.opts.MinAngle))
		d.setText(failedText)
		d.terminate(Result{})
		return
	}

	d.placeProbe()
}

// placeProbe puts the probe on the lower edge of a frustum whose vertical
// aperture equals the candidate angle.
func (d *Detector) placeProbe() {
	head := d.tracker.HeadPose()

	d.probe.Transform.SetPositionAndRotation(head)
	d.probe.Transform = d.probe.Transform.
		Pitch(s1.Angle(float64(d.candidate)/2) * s1.Degree).
		Translate(r3.Vector{Z: d.opts.Distance})
}

// terminate ends the running sweep. Calling it without a sweep does nothing.
func (d *Detector) terminate(res Result) {
	if !d.detecting {
		return
	}
	d.detecting = false
	d.candidate = 0
	d.probe.Visible = false
	d.active = false

	d.events.Dispatch(event.Event{Type: event.DetectionFinished, Data: res})

	if d.shouldRearm() {
		d.scheduleRearm()
	}
}

func (d *Detector) shouldRearm() bool {
	if d.closed || d.scheduler == nil {
		return false
	}
	switch d.opts.Mode {
	case Interval:
		return true
	case IntervalDesktop:
		return !d.immersive()
	default:
		return false
	}
}

func (d *Detector) scheduleRearm() {
	if d.cancelRearm != nil {
		d.cancelRearm()
	}
	d.log.Debug("fov detection re-armed", zap.Duration("in", d.opts.Interval))
	d.cancelRearm = d.scheduler.Schedule(d.opts.Interval, d.rearm)
}

func (d *Detector) rearm() {
	d.cancelRearm = nil
	// Зритель мог надеть шлем, пока ждали таймер
	if d.opts.Mode == IntervalDesktop && d.immersive() {
		d.log.Debug("fov re-arm skipped, viewer is immersive")
		return
	}
	d.StartDetection()
}

func (d *Detector) immersive() bool {
	return d.platform != nil && d.platform.IsImmersive()
}

func (d *Detector) setText(text string) {
	if d.display != nil {
		d.display.SetText(text)
	}
}
