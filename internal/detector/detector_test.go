package detector

import (
	"testing"
	"time"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-fov-detector/internal/config"
	"go-fov-detector/internal/event"
	"go-fov-detector/internal/logger"
	"go-fov-detector/internal/scheduler"
	"go-fov-detector/pkg/geom"
)

type fakeTracker struct {
	pose  geom.Pose
	valid bool
}

func (f *fakeTracker) HeadPose() geom.Pose { return f.pose }
func (f *fakeTracker) IsValid() bool       { return f.valid }

type fakePlatform struct{ immersive bool }

func (f *fakePlatform) IsImmersive() bool { return f.immersive }

type fakeDisplay struct{ texts []string }

func (f *fakeDisplay) SetText(text string) { f.texts = append(f.texts, text) }

func (f *fakeDisplay) last() string {
	if len(f.texts) == 0 {
		return ""
	}
	return f.texts[len(f.texts)-1]
}

type fixture struct {
	det      *Detector
	tracker  *fakeTracker
	sched    *scheduler.FrameScheduler
	display  *fakeDisplay
	platform *fakePlatform
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()
	f := &fixture{
		tracker: &fakeTracker{
			pose:  geom.LookRotation(r3.Vector{Y: 1.6}, geom.WorldForward, geom.WorldUp),
			valid: true,
		},
		sched:    scheduler.New(),
		display:  &fakeDisplay{},
		platform: &fakePlatform{},
	}
	f.det = New(opts, f.tracker, f.sched,
		WithDisplay(f.display),
		WithPlatform(f.platform),
		WithLogger(logger.NewNop()),
	)
	return f
}

// frame runs one host frame: late tick, then the render stage.
func (f *fixture) frame(visible func(p Probe) bool) {
	f.det.Tick()
	if p := f.det.Probe(); p.Visible && visible(p) {
		f.det.OnWillRender()
	}
}

// viewerFOV returns a geometric oracle for a viewer with the given vertical FOV.
func (f *fixture) viewerFOV(deg float64) func(p Probe) bool {
	frustum := geom.NewFrustum(deg, 16.0/9.0, 0.01, 1000)
	return func(p Probe) bool {
		return frustum.Contains(f.tracker.pose, p.Transform.Position)
	}
}

func never(Probe) bool { return false }

func (f *fixture) runSweep(visible func(p Probe) bool) (frames int, candidates []int) {
	for f.det.Detecting() && frames < 1000 {
		f.frame(visible)
		frames++
		if c := f.det.Candidate(); c > 0 {
			candidates = append(candidates, c)
		}
	}
	return frames, candidates
}

func TestDetectsViewerFOV(t *testing.T) {
	f := newFixture(t, Options{Mode: OnStart})
	f.det.Start()
	require.True(t, f.det.Detecting())

	frames, candidates := f.runSweep(f.viewerFOV(70))

	assert.Equal(t, 31, frames)
	assert.Equal(t, 100, candidates[0])
	assert.Equal(t, 71, candidates[len(candidates)-1])
	assert.Equal(t, 70, f.det.DetectedFOV())
	assert.False(t, f.det.Detecting())
	assert.Equal(t, 0, f.det.Candidate())
	assert.Equal(t, []string{"Detecting...", "70°"}, f.display.texts)
}

func TestFailsWhenNeverVisible(t *testing.T) {
	f := newFixture(t, Options{Mode: OnStart})
	f.det.Start()

	frames, candidates := f.runSweep(never)

	assert.Equal(t, 52, frames)
	assert.Len(t, candidates, 51)
	assert.Equal(t, 50, candidates[len(candidates)-1])
	assert.Equal(t, 0, f.det.DetectedFOV())
	assert.False(t, f.det.Detecting())
	assert.Equal(t, "Failed", f.display.last())
}

func TestCandidateStrictlyDecreasesWithinRange(t *testing.T) {
	f := newFixture(t, Options{Mode: Manually})
	f.det.Start()
	f.det.StartDetection()

	_, candidates := f.runSweep(never)
	for i, c := range candidates {
		assert.GreaterOrEqual(t, c, config.FOVMin)
		assert.LessOrEqual(t, c, config.FOVMax)
		if i > 0 {
			assert.Less(t, c, candidates[i-1])
		}
	}
}

func TestExactlyOneTerminationPerSweep(t *testing.T) {
	for name, visible := range map[string]func(Probe) bool{
		"success": func(Probe) bool { return true },
		"failure": never,
	} {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, Options{Mode: Manually})
			var finished []Result
			f.det.Events().Subscribe(event.DetectionFinished, event.ListenerFunc(func(e event.Event) {
				finished = append(finished, e.Data.(Result))
			}))

			f.det.StartDetection()
			f.runSweep(visible)

			// Поздний сигнал рендера в том же кадре ничего не меняет
			f.det.OnWillRender()
			f.det.Tick()

			require.Len(t, finished, 1)
			assert.Equal(t, name == "success", finished[0].Success)
		})
	}
}

func TestExhaustionCheckedBeforeVisibilityInSameFrame(t *testing.T) {
	f := newFixture(t, Options{Mode: Manually})
	f.det.StartDetection()
	for f.det.Candidate() != config.FOVMin {
		f.frame(never)
	}

	// Probe would be visible this frame, but the tick fails first.
	f.frame(func(Probe) bool { return true })
	assert.False(t, f.det.Detecting())
	assert.Equal(t, 0, f.det.DetectedFOV())
	assert.Equal(t, "Failed", f.display.last())
}

func TestStartDetectionIsIdempotentWhileDetecting(t *testing.T) {
	f := newFixture(t, Options{Mode: Manually})
	f.det.StartDetection()
	for i := 0; i < 5; i++ {
		f.frame(never)
	}
	before := *f.det
	texts := len(f.display.texts)

	f.det.StartDetection()

	assert.Equal(t, before.candidate, f.det.candidate)
	assert.Equal(t, before.detectedFOV, f.det.detectedFOV)
	assert.Equal(t, before.probe, f.det.probe)
	assert.Equal(t, before.detecting, f.det.detecting)
	assert.Equal(t, texts, len(f.display.texts))
}

func TestManualModeWaitsForStartDetection(t *testing.T) {
	f := newFixture(t, Options{Mode: Manually})
	f.det.Start()

	assert.False(t, f.det.Detecting())
	f.det.Tick()
	assert.Equal(t, 0, f.det.Candidate())
	assert.False(t, f.det.Probe().Visible)

	f.det.StartDetection()
	assert.True(t, f.det.Detecting())
	assert.True(t, f.det.Probe().Visible)
	assert.Equal(t, "Detecting...", f.display.last())
}

func TestListenersNotifiedInOrder(t *testing.T) {
	f := newFixture(t, Options{Mode: Manually})
	var got []string
	f.det.Register(event.ListenerFunc(func(e event.Event) {
		got = append(got, "first")
		assert.Equal(t, event.FOVChanged, e.Type)
		assert.Equal(t, 70, e.Data.(*Detector).DetectedFOV())
	}))
	f.det.Register(event.ListenerFunc(func(event.Event) { got = append(got, "second") }))

	f.det.StartDetection()
	f.runSweep(f.viewerFOV(70))

	assert.Equal(t, []string{"first", "second"}, got)
}

func TestSameResultNotifiesOnce(t *testing.T) {
	f := newFixture(t, Options{Mode: Manually})
	calls := 0
	f.det.Register(event.ListenerFunc(func(event.Event) { calls++ }))

	f.det.StartDetection()
	f.runSweep(f.viewerFOV(80))
	f.det.StartDetection()
	f.runSweep(f.viewerFOV(80))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 80, f.det.DetectedFOV())

	// Неудачная попытка не меняет previousFOV
	f.det.StartDetection()
	f.runSweep(never)
	f.det.StartDetection()
	f.runSweep(f.viewerFOV(80))
	assert.Equal(t, 1, calls)

	f.det.StartDetection()
	f.runSweep(f.viewerFOV(60))
	assert.Equal(t, 2, calls)
}

func TestDuplicateRegistrationNotifiesTwice(t *testing.T) {
	f := newFixture(t, Options{Mode: Manually})
	calls := 0
	l := event.ListenerFunc(func(event.Event) { calls++ })
	f.det.Register(l)
	f.det.Register(l)

	f.det.StartDetection()
	f.runSweep(f.viewerFOV(90))
	assert.Equal(t, 2, calls)
}

func TestIntervalModeRearms(t *testing.T) {
	f := newFixture(t, Options{Mode: Interval, Interval: 5 * time.Second})
	f.det.Start()
	f.runSweep(f.viewerFOV(70))
	require.False(t, f.det.Detecting())
	require.Equal(t, 1, f.sched.Pending())

	f.sched.Advance(5*time.Second - time.Millisecond)
	assert.False(t, f.det.Detecting())
	f.sched.Advance(time.Millisecond)
	assert.True(t, f.det.Detecting())
	assert.Equal(t, 0, f.det.DetectedFOV())

	// Failure also re-arms.
	f.runSweep(never)
	assert.Equal(t, 1, f.sched.Pending())
}

func TestOnStartModeDoesNotRearm(t *testing.T) {
	f := newFixture(t, Options{Mode: OnStart})
	f.det.Start()
	f.runSweep(never)
	assert.Equal(t, 0, f.sched.Pending())
}

func TestIntervalDesktopSkipsImmersiveViewer(t *testing.T) {
	f := newFixture(t, Options{Mode: IntervalDesktop, Interval: 3 * time.Second})
	f.platform.immersive = true
	f.det.Start()
	f.runSweep(f.viewerFOV(100))
	assert.Equal(t, 0, f.sched.Pending())

	f.platform.immersive = false
	f.det.StartDetection()
	f.runSweep(f.viewerFOV(100))
	require.Equal(t, 1, f.sched.Pending())

	// Шлем надет во время ожидания
	f.platform.immersive = true
	f.sched.Advance(3 * time.Second)
	assert.False(t, f.det.Detecting())
	assert.Equal(t, 0, f.sched.Pending())
}

func TestInvalidTrackingIsIgnored(t *testing.T) {
	f := newFixture(t, Options{Mode: OnStart})
	f.tracker.valid = false
	f.det.Start()
	assert.False(t, f.det.Detecting())

	nilTracker := New(Options{}, nil, f.sched, WithLogger(logger.NewNop()))
	nilTracker.StartDetection()
	assert.False(t, nilTracker.Detecting())
}

func TestCloseCancelsRearm(t *testing.T) {
	f := newFixture(t, Options{Mode: Interval, Interval: 3 * time.Second})
	f.det.Start()
	f.runSweep(never)
	require.Equal(t, 1, f.sched.Pending())

	f.det.Close()
	assert.Equal(t, 0, f.sched.Pending())
	f.sched.Advance(time.Minute)
	assert.False(t, f.det.Detecting())

	f.det.StartDetection()
	assert.False(t, f.det.Detecting())
}

func TestManualStartDuringPendingRearmKeepsSingleTimer(t *testing.T) {
	f := newFixture(t, Options{Mode: Interval, Interval: 10 * time.Second})
	f.det.Start()
	f.runSweep(never)
	f.det.StartDetection()
	f.runSweep(never)

	assert.Equal(t, 1, f.sched.Pending())
}

func TestProbePlacement(t *testing.T) {
	f := newFixture(t, Options{Mode: Manually})
	f.det.StartDetection()
	f.det.Tick()

	p := f.det.Probe()
	head := f.tracker.pose
	require.True(t, p.Visible)
	assert.InDelta(t, 0.2, p.Transform.Position.Sub(head.Position).Norm(), 1e-9)
	assert.InDelta(t, 50.0, p.Transform.PitchFrom(head).Degrees(), 1e-9)
	assert.Less(t, p.Transform.Position.Y, head.Position.Y)
}

func TestProbeVisibleIffDetecting(t *testing.T) {
	f := newFixture(t, Options{Mode: Manually})
	assert.False(t, f.det.Probe().Visible)
	f.det.StartDetection()
	for f.det.Detecting() {
		assert.True(t, f.det.Probe().Visible)
		assert.True(t, f.det.Active())
		f.frame(f.viewerFOV(75))
	}
	assert.False(t, f.det.Probe().Visible)
	assert.False(t, f.det.Active())
}

func TestRenderBeforeFirstTickIsIgnored(t *testing.T) {
	f := newFixture(t, Options{Mode: Manually})
	f.det.StartDetection()
	f.det.OnWillRender()
	assert.True(t, f.det.Detecting())
	assert.Equal(t, 0, f.det.DetectedFOV())
}

func TestNewClampsOptions(t *testing.T) {
	tests := []struct {
		in, want time.Duration
	}{
		{0, 10 * time.Second},
		{time.Second, 3 * time.Second},
		{2 * time.Minute, time.Minute},
		{7 * time.Second, 7 * time.Second},
	}
	for _, tt := range tests {
		d := New(Options{Interval: tt.in}, nil, nil, WithLogger(logger.NewNop()))
		assert.Equal(t, tt.want, d.Interval())
	}

	d := New(Options{}, nil, nil, WithLogger(logger.NewNop()))
	assert.Equal(t, config.FOVMin, d.Options().MinAngle)
	assert.Equal(t, config.FOVMax, d.Options().MaxAngle)
	assert.InDelta(t, config.DetectDistance, d.Options().Distance, 1e-12)
}

func TestHeadsetAwareSweepStartsAt120(t *testing.T) {
	opts, err := OptionsFromConfig(config.DetectorConfig{
		Mode:            config.ModeIntervalDesktop,
		IntervalSeconds: 10,
		HeadsetAware:    true,
		DetectDistance:  config.DetectDistance,
	})
	require.NoError(t, err)
	assert.Equal(t, IntervalDesktop, opts.Mode)

	f := newFixture(t, opts)
	f.det.Start()
	_, candidates := f.runSweep(f.viewerFOV(110))
	assert.Equal(t, 120, candidates[0])
	assert.Equal(t, 110, f.det.DetectedFOV())
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{OnStart, Interval, IntervalDesktop, Manually} {
		got, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := ParseMode("sometimes")
	assert.Error(t, err)
	assert.Equal(t, "Mode(9)", Mode(9).String())
}
