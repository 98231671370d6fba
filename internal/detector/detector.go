// Package detector estimates a viewer's vertical field of view by sweeping a
// probe from a wide angle toward a narrow one until the render stage first
// draws it.
package detector

import (
	"time"

	"go-fov-detector/internal/config"
	"go-fov-detector/internal/event"
	"go-fov-detector/internal/logger"
	"go-fov-detector/pkg/geom"
)

// Tracker supplies the viewer's head pose.
type Tracker interface {
	HeadPose() geom.Pose
	IsValid() bool
}

// Platform answers whether the viewer wears an immersive headset.
type Platform interface {
	IsImmersive() bool
}

// Scheduler runs fn once after delay on the host frame loop.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) (cancel func())
}

// Display is an optional status text surface.
type Display interface {
	SetText(text string)
}

// Probe is the marker the detector positions each tick.
type Probe struct {
	Transform geom.Transform
	Visible   bool
}

// Options configures a Detector. Zero values fall back to the defaults in
// internal/config.
type Options struct {
	Mode     Mode
	Interval time.Duration
	MinAngle int
	MaxAngle int
	Distance float64
}

// DefaultOptions returns a desktop configuration running once on start.
func DefaultOptions() Options {
	return Options{
		Mode:     OnStart,
		Interval: config.ClampInterval(config.DefaultDetectInterval),
		MinAngle: config.FOVMin,
		MaxAngle: config.FOVMax,
		Distance: config.DetectDistance,
	}
}

// OptionsFromConfig converts the detector section of a loaded config.
func OptionsFromConfig(cfg config.DetectorConfig) (Options, error) {
	mode, err := ParseMode(cfg.Mode)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Mode:     mode,
		Interval: cfg.Interval(),
		MinAngle: config.FOVMin,
		MaxAngle: cfg.MaxAngle(),
		Distance: cfg.DetectDistance,
	}, nil
}

// Detector owns the sweep state and the probe. It is not safe for concurrent
// use: every method must be called from the host frame loop.
type Detector struct {
	opts      Options
	tracker   Tracker
	scheduler Scheduler
	platform  Platform
	display   Display
	events    *event.Dispatcher
	log       *logger.Logger

	detecting   bool
	active      bool
	candidate   int
	detectedFOV int
	previousFOV int
	probe       Probe

	cancelRearm func()
	closed      bool
}

// Option customises optional collaborators.
type Option func(*Detector)

// WithDisplay binds a status text surface.
func WithDisplay(d Display) Option {
	return func(det *Detector) { det.display = d }
}

// WithPlatform binds the headset query used by IntervalDesktop.
func WithPlatform(p Platform) Option {
	return func(det *Detector) { det.platform = p }
}

// WithLogger replaces the default logger.
func WithLogger(l *logger.Logger) Option {
	return func(det *Detector) { det.log = l }
}

// New creates a detector. tracker may be nil, in which case StartDetection
// never starts a sweep.
func New(opts Options, tracker Tracker, scheduler Scheduler, options ...Option) *Detector {
	def := DefaultOptions()
	if opts.Interval <= 0 {
		opts.Interval = def.Interval
	}
	opts.Interval = config.ClampInterval(opts.Interval.Seconds())
	if opts.MinAngle <= 0 {
		opts.MinAngle = def.MinAngle
	}
	if opts.MaxAngle <= 0 {
		opts.MaxAngle = def.MaxAngle
	}
	if opts.MaxAngle < opts.MinAngle {
		opts.MaxAngle = opts.MinAngle
	}
	if opts.Distance <= 0 {
		opts.Distance = def.Distance
	}

	d := &Detector{
		opts:      opts,
		tracker:   tracker,
		scheduler: scheduler,
		events:    event.NewDispatcher(),
		probe:     Probe{Transform: geom.Identity()},
	}
	for _, o := range options {
		o(d)
	}
	if d.log == nil {
		d.log = logger.Default()
	}
	d.log = d.log.Named("fov")
	return d
}

// Start is the host's one-time start hook. It hides the probe and begins
// detection unless the mode is Manually.
func (d *Detector) Start() {
	d.probe.Visible = false
	d.active = false

	if d.opts.Mode != Manually {
		d.StartDetection()
	}
}

// Close cancels a pending re-arm and stops the detector from ticking.
func (d *Detector) Close() {
	d.closed = true
	d.active = false
	if d.cancelRearm != nil {
		d.cancelRearm()
		d.cancelRearm = nil
	}
}

// Register adds a listener for FOV changes. Registration is append-only.
func (d *Detector) Register(l event.Listener) {
	d.events.Subscribe(event.FOVChanged, l)
}

// Detecting reports whether a sweep is running.
func (d *Detector) Detecting() bool { return d.detecting }

// DetectedFOV is the last detected vertical FOV in degrees, 0 if none yet.
func (d *Detector) DetectedFOV() int { return d.detectedFOV }

// Candidate is the angle under test, 0 outside a sweep.
func (d *Detector) Candidate() int { return d.candidate }

// Active reports whether the per-frame step is enabled.
func (d *Detector) Active() bool { return d.active }

// Probe returns a copy of the probe state.
func (d *Detector) Probe() Probe { return d.probe }

// Mode returns the configured detect mode.
func (d *Detector) Mode() Mode { return d.opts.Mode }

// Interval returns the clamped re-arm delay.
func (d *Detector) Interval() time.Duration { return d.opts.Interval }

// Options returns the effective options after defaults and clamping.
func (d *Detector) Options() Options { return d.opts }
