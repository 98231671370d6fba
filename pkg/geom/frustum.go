// pkg/geom/frustum.go
package geom

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
)

// planeEpsilon absorbs float error for points that sit exactly on a side plane.
const planeEpsilon = 1e-9

// Frustum describes a symmetric perspective view volume.
type Frustum struct {
	VerticalFOV s1.Angle
	Aspect      float64 // width / height
	Near        float64
	Far         float64
}

// NewFrustum builds a frustum from a vertical FOV in degrees.
func NewFrustum(verticalDeg, aspect, near, far float64) Frustum {
	return Frustum{
		VerticalFOV: s1.Angle(verticalDeg) * s1.Degree,
		Aspect:      aspect,
		Near:        near,
		Far:         far,
	}
}

// HalfVertical returns half of the vertical aperture.
func (f Frustum) HalfVertical() s1.Angle {
	return f.VerticalFOV / 2
}

// HalfHorizontal derives the horizontal half-angle from the aspect ratio.
func (f Frustum) HalfHorizontal() s1.Angle {
	return s1.Angle(math.Atan(math.Tan(f.HalfVertical().Radians()) * f.Aspect))
}

// ContainsSphere reports whether a sphere intersects the frustum of a
// viewer placed at view. A zero radius tests a single point.
func (f Frustum) ContainsSphere(view Transform, center r3.Vector, radius float64) bool {
	l := view.ToLocal(center)

	if l.Z < f.Near-radius || l.Z > f.Far+radius {
		return false
	}

	sinV, cosV := math.Sincos(f.HalfVertical().Radians())
	sinH, cosH := math.Sincos(f.HalfHorizontal().Radians())

	// Расстояния до боковых плоскостей (положительные — снаружи)
	distances := [4]float64{
		l.Y*cosV - l.Z*sinV,  // top
		-l.Y*cosV - l.Z*sinV, // bottom
		l.X*cosH - l.Z*sinH,  // right
		-l.X*cosH - l.Z*sinH, // left
	}
	for _, d := range distances {
		if d > radius+planeEpsilon {
			return false
		}
	}
	return true
}

// Contains is ContainsSphere for a point.
func (f Frustum) Contains(view Transform, p r3.Vector) bool {
	return f.ContainsSphere(view, p, 0)
}

// Project maps a world point to screen pixels for a width x height target.
// ok is false when the point is behind the near plane.
func (f Frustum) Project(view Transform, p r3.Vector, width, height int) (x, y float64, ok bool) {
	l := view.ToLocal(p)
	if l.Z < f.Near {
		return 0, 0, false
	}
	tanV := math.Tan(f.HalfVertical().Radians())
	tanH := math.Tan(f.HalfHorizontal().Radians())

	ndcX := l.X / (l.Z * tanH)
	ndcY := l.Y / (l.Z * tanV)

	x = (ndcX + 1) / 2 * float64(width)
	y = (1 - ndcY) / 2 * float64(height)
	return x, y, true
}
