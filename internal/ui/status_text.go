// internal/ui/status_text.go
package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// StatusText is the detector's display surface in the window host. SetText
// is called from the detector, Draw from the frame's draw pass.
type StatusText struct {
	X, Y             int
	Face             font.Face
	Color            color.Color
	OutlineColor     color.Color
	OutlineThickness int

	text string
}

// NewStatusText creates a status line using the built-in 7x13 face.
func NewStatusText(x, y int, clr color.Color) *StatusText {
	return &StatusText{
		X:                x,
		Y:                y,
		Face:             basicfont.Face7x13,
		Color:            clr,
		OutlineColor:     color.Black,
		OutlineThickness: 1,
	}
}

// SetText implements detector.Display.
func (s *StatusText) SetText(t string) {
	s.text = t
}

// Draw отрисовывает текст с обводкой
func (s *StatusText) Draw(screen *ebiten.Image) {
	if s.text == "" {
		return
	}
	for y := -s.OutlineThickness; y <= s.OutlineThickness; y++ {
		for x := -s.OutlineThickness; x <= s.OutlineThickness; x++ {
			if x == 0 && y == 0 {
				continue
			}
			text.Draw(screen, s.text, s.Face, s.X+x, s.Y+y, s.OutlineColor)
		}
	}
	text.Draw(screen, s.text, s.Face, s.X, s.Y, s.Color)
}
