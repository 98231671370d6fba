// internal/render/oracle.go
package render

import "go-fov-detector/pkg/geom"

// Oracle decides whether a probe placed at probe is drawn for a viewer at
// viewer.
type Oracle interface {
	IsVisible(probe geom.Transform, viewer geom.Pose) bool
}

// OracleFunc adapts a function to Oracle.
type OracleFunc func(probe geom.Transform, viewer geom.Pose) bool

// IsVisible calls f.
func (f OracleFunc) IsVisible(probe geom.Transform, viewer geom.Pose) bool {
	return f(probe, viewer)
}

// FrustumOracle is the geometric visibility test: the probe is drawn when
// its bounding sphere intersects the viewer's view frustum.
type FrustumOracle struct {
	Frustum geom.Frustum
	Radius  float64
}

// NewFrustumOracle builds an oracle for a viewer with the given vertical FOV
// in degrees.
func NewFrustumOracle(verticalDeg, aspect, near, far, radius float64) *FrustumOracle {
	return &FrustumOracle{
		Frustum: geom.NewFrustum(verticalDeg, aspect, near, far),
		Radius:  radius,
	}
}

// IsVisible implements Oracle.
func (o *FrustumOracle) IsVisible(probe geom.Transform, viewer geom.Pose) bool {
	return o.Frustum.ContainsSphere(viewer, probe.Position, o.Radius)
}

// ScreenOracle mimics a rasterising pipeline: the probe is drawn when its
// projection lands inside the target image.
type ScreenOracle struct {
	Frustum       geom.Frustum
	Width, Height int
	// Margin in pixels around the screen still counted as drawn (probe size).
	Margin float64
}

// IsVisible implements Oracle.
func (o *ScreenOracle) IsVisible(probe geom.Transform, viewer geom.Pose) bool {
	x, y, ok := o.Frustum.Project(viewer, probe.Position, o.Width, o.Height)
	if !ok {
		return false
	}
	const eps = 1e-6
	m := o.Margin + eps
	return x >= -m && x <= float64(o.Width)+m && y >= -m && y <= float64(o.Height)+m
}
