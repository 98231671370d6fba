// internal/sim/viewer.go
package sim

import (
	"math"
	"time"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"

	"go-fov-detector/internal/config"
	"go-fov-detector/internal/render"
	"go-fov-detector/internal/utils"
	"go-fov-detector/pkg/geom"
)

// Viewer is a simulated head: it serves as tracking source and platform for
// the detector and carries the "true" FOV the render stage culls against.
type Viewer struct {
	base      geom.Pose
	pose      geom.Pose
	valid     bool
	immersive bool

	verticalFOV float64
	aspect      float64
	near, far   float64

	sway       s1.Angle
	swayPeriod time.Duration
	elapsed    time.Duration

	jitter s1.Angle
	rng    *utils.PRNGService
}

// NewViewer creates a viewer standing at the origin at eye height.
func NewViewer(cfg config.ViewerConfig) *Viewer {
	base := geom.LookRotation(r3.Vector{Y: cfg.EyeHeight}, geom.WorldForward, geom.WorldUp)
	return &Viewer{
		base:        base,
		pose:        base,
		valid:       cfg.TrackingValid,
		immersive:   cfg.Immersive,
		verticalFOV: cfg.VerticalFOV,
		aspect:      cfg.Aspect,
		near:        cfg.Near,
		far:         cfg.Far,
		sway:        s1.Angle(cfg.SwayDegrees) * s1.Degree,
		swayPeriod:  time.Duration(cfg.SwayPeriod * float64(time.Second)),
		jitter:      s1.Angle(cfg.JitterDegrees) * s1.Degree,
		rng:         utils.NewPRNGService(cfg.Seed),
	}
}

// HeadPose implements detector.Tracker.
func (v *Viewer) HeadPose() geom.Pose { return v.pose }

// IsValid implements detector.Tracker.
func (v *Viewer) IsValid() bool { return v.valid }

// IsImmersive implements detector.Platform.
func (v *Viewer) IsImmersive() bool { return v.immersive }

// SetValid switches tracking availability on or off.
func (v *Viewer) SetValid(valid bool) { v.valid = valid }

// SetImmersive puts the viewer in or out of a headset.
func (v *Viewer) SetImmersive(immersive bool) { v.immersive = immersive }

// VerticalFOV returns the simulated FOV in degrees.
func (v *Viewer) VerticalFOV() float64 { return v.verticalFOV }

// SetVerticalFOV changes the simulated FOV, clamped to (1, 179) degrees.
func (v *Viewer) SetVerticalFOV(deg float64) {
	v.verticalFOV = utils.Clamp(deg, 1, 179)
}

// Frustum returns the viewer's current view volume.
func (v *Viewer) Frustum() geom.Frustum {
	return geom.NewFrustum(v.verticalFOV, v.aspect, v.near, v.far)
}

// Update moves the head for one frame. With sway configured the head yaws
// back and forth sinusoidally; jitter adds seeded per-frame tremor on top.
func (v *Viewer) Update(dt time.Duration) {
	v.elapsed += dt
	var yaw s1.Angle
	if v.sway != 0 && v.swayPeriod > 0 {
		phase := 2 * math.Pi * v.elapsed.Seconds() / v.swayPeriod.Seconds()
		yaw = v.sway * s1.Angle(math.Sin(phase))
	}
	if v.jitter != 0 {
		yaw += s1.Angle(v.rng.Symmetric(float64(v.jitter)))
	}
	if yaw == 0 {
		v.pose = v.base
		return
	}
	v.pose = v.base.Yaw(yaw)
}

// Oracle returns a frustum oracle that always uses the current FOV.
func (v *Viewer) Oracle(radius float64) render.Oracle {
	return render.OracleFunc(func(probe geom.Transform, viewer geom.Pose) bool {
		return v.Frustum().ContainsSphere(viewer, probe.Position, radius)
	})
}
