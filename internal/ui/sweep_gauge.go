// internal/ui/sweep_gauge.go
package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"go-fov-detector/internal/utils"
)

const (
	gaugeWidth  = 180
	gaugeHeight = 12
	borderWidth = 1
)

var (
	gaugeColorFill = color.RGBA{70, 100, 120, 220}
	borderColor    = color.White
)

// SweepGauge shows how far the current sweep has narrowed between the max
// and min angles, plus a tick at the last detected FOV.
type SweepGauge struct {
	X, Y     float32
	Min, Max int
}

func NewSweepGauge(x, y float32, min, max int) *SweepGauge {
	return &SweepGauge{X: x, Y: y, Min: min, Max: max}
}

// Draw отрисовывает шкалу. candidate 0 means no sweep is running.
func (g *SweepGauge) Draw(screen *ebiten.Image, candidate, detected int) {
	vector.StrokeRect(screen, g.X, g.Y, gaugeWidth, gaugeHeight, borderWidth, borderColor, true)

	if candidate > 0 {
		fill := g.ratio(candidate)
		w := float32(float64(gaugeWidth-borderWidth*2) * fill)
		if w > 0 {
			vector.DrawFilledRect(screen, g.X+borderWidth, g.Y+borderWidth, w, gaugeHeight-borderWidth*2, gaugeColorFill, true)
		}
	}

	if detected > 0 {
		x := g.X + float32(float64(gaugeWidth)*g.ratio(detected))
		vector.StrokeLine(screen, x, g.Y-3, x, g.Y+gaugeHeight+3, 2, color.RGBA{50, 205, 50, 255}, true)
	}
}

// ratio maps an angle to [0,1], 1 at Max.
func (g *SweepGauge) ratio(angle int) float64 {
	if g.Max <= g.Min {
		return 1
	}
	r := utils.InverseLerp(float64(g.Min), float64(g.Max), float64(angle))
	return utils.Clamp(r, 0, 1)
}
