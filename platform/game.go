// Package platform runs the editor in an ebiten window. It is the only
// package that imports ebiten.
package platform

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/trafficgrid/config"
	"github.com/milk9111/trafficgrid/loop"
	"github.com/milk9111/trafficgrid/scene"
)

// Game implements ebiten.Game on top of the frame loop.
type Game struct {
	cfg    config.Config
	loop   *loop.Loop
	scene  *scene.Registry
	screen *Screen
	hud    *HUD
}

func NewGame(cfg config.Config, l *loop.Loop, reg *scene.Registry) *Game {
	return &Game{
		cfg:    cfg,
		loop:   l,
		scene:  reg,
		screen: NewScreen(),
		hud:    NewHUD(cfg),
	}
}

func (g *Game) Update() error {
	if err := g.loop.Update(); err != nil {
		if errors.Is(err, loop.ErrTerminated) {
			return ebiten.Termination
		}
		return err
	}
	g.hud.Update(Status(g.loop.Controller(), len(g.scene.Placed())))
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.screen.Target(screen)
	g.loop.Draw(g.screen)
	g.hud.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.WindowSize()
}

// Run opens the window and blocks until it is closed.
func Run(cfg config.Config, g *Game) error {
	w, h := cfg.WindowSize()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetTPS(cfg.Window.TPS)
	ebiten.SetWindowClosingHandled(true)
	return ebiten.RunGame(g)
}
