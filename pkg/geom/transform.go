// pkg/geom/transform.go
package geom

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
)

var (
	// WorldForward is +Z, WorldUp is +Y, lateral axis is +X.
	WorldForward = r3.Vector{X: 0, Y: 0, Z: 1}
	WorldUp      = r3.Vector{X: 0, Y: 1, Z: 0}
)

// Transform is a position plus an orthonormal orientation given by its
// forward and up axes. It is used both for the viewer's head pose and for
// the probe.
type Transform struct {
	Position r3.Vector
	Forward  r3.Vector
	Up       r3.Vector
}

// Pose is the head pose reported by a tracking source.
type Pose = Transform

// Identity returns a transform at the origin looking down +Z.
func Identity() Transform {
	return Transform{Forward: WorldForward, Up: WorldUp}
}

// LookRotation builds a transform at position facing forward. up only has to
// be roughly perpendicular, it is re-orthogonalised.
func LookRotation(position, forward, up r3.Vector) Transform {
	f := forward.Normalize()
	r := up.Cross(f).Normalize()
	return Transform{
		Position: position,
		Forward:  f,
		Up:       f.Cross(r),
	}
}

// Right returns the local lateral axis.
func (t Transform) Right() r3.Vector {
	return t.Up.Cross(t.Forward)
}

// SetPositionAndRotation copies both position and orientation from src.
func (t *Transform) SetPositionAndRotation(src Transform) {
	*t = src
}

// Pitch rotates the orientation about the local lateral axis. Positive
// angles tilt forward downward.
func (t Transform) Pitch(angle s1.Angle) Transform {
	axis := t.Right()
	t.Forward = rotate(t.Forward, axis, angle)
	t.Up = rotate(t.Up, axis, angle)
	return t
}

// Yaw rotates the orientation about the local up axis. Positive angles turn
// right.
func (t Transform) Yaw(angle s1.Angle) Transform {
	t.Forward = rotate(t.Forward, t.Up, angle)
	return t
}

// Translate moves the transform by offset expressed in local space
// (X lateral, Y up, Z forward).
func (t Transform) Translate(offset r3.Vector) Transform {
	t.Position = t.Position.
		Add(t.Right().Mul(offset.X)).
		Add(t.Up.Mul(offset.Y)).
		Add(t.Forward.Mul(offset.Z))
	return t
}

// ToLocal expresses a world point in this transform's local space.
func (t Transform) ToLocal(p r3.Vector) r3.Vector {
	d := p.Sub(t.Position)
	return r3.Vector{
		X: d.Dot(t.Right()),
		Y: d.Dot(t.Up),
		Z: d.Dot(t.Forward),
	}
}

// PitchFrom returns the signed elevation of t's forward axis relative to
// the reference transform (positive = below the reference forward).
func (t Transform) PitchFrom(ref Transform) s1.Angle {
	l := ref.ToLocal(ref.Position.Add(t.Forward))
	return s1.Angle(math.Atan2(-l.Y, l.Z))
}

// rotate applies Rodrigues' rotation of v around the unit axis k.
func rotate(v, k r3.Vector, angle s1.Angle) r3.Vector {
	sin, cos := math.Sincos(angle.Radians())
	return v.Mul(cos).
		Add(k.Cross(v).Mul(sin)).
		Add(k.Mul(k.Dot(v) * (1 - cos)))
}
