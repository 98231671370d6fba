// internal/state/menu_state.go
package state

import (
	"go-fov-detector/internal/config"
	"go-fov-detector/internal/sim"
	"go-fov-detector/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const menuText = `FOV DETECTOR

The screen is the simulated viewer's view.
A probe is placed on the edge of a candidate
frustum and narrowed until it becomes visible.

SPACE   start / restart detection
UP/DOWN change the viewer's vertical FOV
H       toggle headset (immersive) viewer
T       toggle tracking availability

Press SPACE to begin.`

// MenuState — стартовый экран с подсказками
type MenuState struct {
	sm     *StateMachine
	host   *sim.Host
	status *ui.StatusText
}

func NewMenuState(sm *StateMachine, host *sim.Host, status *ui.StatusText) *MenuState {
	return &MenuState{sm: sm, host: host, status: status}
}

func (m *MenuState) Enter() {}

func (m *MenuState) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		m.sm.SetState(NewDetectState(m.sm, m.host, m.status))
	}
}

func (m *MenuState) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	ebitenutil.DebugPrintAt(screen, menuText, config.TextOffsetX, config.TextOffsetY)
}

func (m *MenuState) Exit() {}
