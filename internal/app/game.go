// internal/app/game.go
package app

import (
	"fmt"
	"time"

	"go-fov-detector/internal/config"
	"go-fov-detector/internal/detector"
	"go-fov-detector/internal/logger"
	"go-fov-detector/internal/sim"
	"go-fov-detector/internal/state"
	"go-fov-detector/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
)

// Game adapts the state machine to ebiten's Update/Draw loop.
type Game struct {
	stateMachine   *state.StateMachine
	lastUpdateTime time.Time
}

// NewGame builds the window host around host. With skipMenu the detection
// screen is shown immediately.
func NewGame(host *sim.Host, status *ui.StatusText, skipMenu bool) *Game {
	sm := state.NewStateMachine() // Создаём машину состояний
	if skipMenu {
		sm.SetState(state.NewDetectState(sm, host, status))
	} else {
		sm.SetState(state.NewMenuState(sm, host, status))
	}
	return &Game{
		stateMachine:   sm,
		lastUpdateTime: time.Now(),
	}
}

func (g *Game) Update() error {
	now := time.Now()
	deltaTime := now.Sub(g.lastUpdateTime).Seconds()
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	g.lastUpdateTime = now
	g.stateMachine.Update(deltaTime)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.stateMachine.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

// Run opens the window and blocks until it is closed.
func Run(cfg *config.Config, log *logger.Logger, skipMenu bool) error {
	status := ui.NewStatusText(config.ScreenWidth-160, 35, config.TextLightColor)
	host, err := sim.NewHost(cfg, log, detector.WithDisplay(status))
	if err != nil {
		return fmt.Errorf("create host: %w", err)
	}
	defer host.Close()

	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("FOV Detector")
	ebiten.SetTPS(cfg.Host.FPS)

	if err := ebiten.RunGame(NewGame(host, status, skipMenu)); err != nil {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}
