// internal/ui/indicator.go
package ui

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"go-fov-detector/internal/utils"
)

// StateIndicator — кружок состояния детектора, пульсирует при смене цвета
type StateIndicator struct {
	X, Y       float32
	Radius     float32
	lastColor  color.RGBA
	lastChange time.Time
}

func NewStateIndicator(x, y, radius float32) *StateIndicator {
	return &StateIndicator{
		X:      x,
		Y:      y,
		Radius: radius,
	}
}

// Draw отрисовывает индикатор
func (i *StateIndicator) Draw(screen *ebiten.Image, stateColor color.RGBA) {
	if stateColor != i.lastColor {
		i.lastColor = stateColor
		i.lastChange = time.Now()
	}
	elapsed := time.Since(i.lastChange).Seconds()
	scale := utils.Lerp(1.0, 1.3, math.Exp(-elapsed*8))
	currentRadius := i.Radius * float32(scale)

	vector.DrawFilledCircle(screen, i.X, i.Y, currentRadius, stateColor, true)
	vector.StrokeCircle(screen, i.X, i.Y, currentRadius, 1.5, DarkenColor(stateColor), true)
}
