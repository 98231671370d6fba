package geom

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/stretchr/testify/assert"
)

func probeAt(head Transform, fullAngle float64) r3.Vector {
	return head.Pitch(s1.Angle(fullAngle/2) * s1.Degree).Translate(r3.Vector{Z: 0.2}).Position
}

func TestFrustumEdgeIsInclusive(t *testing.T) {
	f := NewFrustum(70, 16.0/9.0, 0.01, 1000)
	head := Identity()

	tests := []struct {
		angle   float64
		visible bool
	}{
		{100, false},
		{71, false},
		{70, true},
		{60, true},
		{50, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.visible, f.Contains(head, probeAt(head, tt.angle)), "angle %v", tt.angle)
	}
}

func TestFrustumFollowsHead(t *testing.T) {
	f := NewFrustum(90, 1, 0.01, 100)
	head := LookRotation(r3.Vector{X: 3, Y: 1.5, Z: 2}, r3.Vector{X: -1, Z: 0.2}, WorldUp)

	assert.True(t, f.Contains(head, probeAt(head, 90)))
	assert.False(t, f.Contains(head, probeAt(head, 92)))
	// Точка позади головы
	assert.False(t, f.Contains(head, head.Translate(r3.Vector{Z: -1}).Position))
}

func TestFrustumSphereRadius(t *testing.T) {
	f := NewFrustum(60, 1, 0.01, 100)
	head := Identity()
	p := probeAt(head, 64)

	assert.False(t, f.Contains(head, p))
	assert.True(t, f.ContainsSphere(head, p, 0.01))
}

func TestFrustumNearFar(t *testing.T) {
	f := NewFrustum(90, 1, 0.5, 2)
	head := Identity()
	assert.False(t, f.Contains(head, r3.Vector{Z: 0.2}))
	assert.True(t, f.Contains(head, r3.Vector{Z: 1}))
	assert.False(t, f.Contains(head, r3.Vector{Z: 3}))
}

func TestHalfHorizontalFromAspect(t *testing.T) {
	f := NewFrustum(90, 1, 0.01, 10)
	assert.InDelta(t, 45.0, f.HalfHorizontal().Degrees(), 1e-9)
}

func TestProject(t *testing.T) {
	f := NewFrustum(90, 1, 0.01, 10)
	head := Identity()

	x, y, ok := f.Project(head, r3.Vector{Z: 1}, 200, 100)
	assert.True(t, ok)
	assert.InDelta(t, 100.0, x, 1e-9)
	assert.InDelta(t, 50.0, y, 1e-9)

	// Нижний край кадра
	_, y, ok = f.Project(head, probeAt(head, 90), 200, 100)
	assert.True(t, ok)
	assert.InDelta(t, 100.0, y, 1e-6)

	_, _, ok = f.Project(head, r3.Vector{Z: -1}, 200, 100)
	assert.False(t, ok)
}
