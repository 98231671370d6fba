// internal/render/pass.go
package render

import (
	"go-fov-detector/internal/detector"
	"go-fov-detector/pkg/geom"
)

// Target is an object the render stage may draw and notify.
type Target interface {
	Probe() detector.Probe
	OnWillRender()
}

// Pass is the render stage of a host frame. For every target whose probe is
// enabled and passes the oracle it fires OnWillRender synchronously.
type Pass struct {
	oracle Oracle
	drawn  int
}

// NewPass creates a render pass using oracle.
func NewPass(oracle Oracle) *Pass {
	return &Pass{oracle: oracle}
}

// SetOracle swaps the visibility oracle.
func (p *Pass) SetOracle(oracle Oracle) {
	p.oracle = oracle
}

// Render runs the pass for one frame and returns how many targets were drawn.
func (p *Pass) Render(viewer geom.Pose, targets ...Target) int {
	n := 0
	for _, t := range targets {
		probe := t.Probe()
		if !probe.Visible {
			continue
		}
		if p.oracle.IsVisible(probe.Transform, viewer) {
			t.OnWillRender()
			n++
		}
	}
	p.drawn += n
	return n
}

// Drawn returns the total number of draws since creation.
func (p *Pass) Drawn() int {
	return p.drawn
}
