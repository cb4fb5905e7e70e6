// Package session wires the grid, registry, controller, coordinator and
// frame loop together for one editing session.
package session

import (
	"fmt"

	"github.com/milk9111/trafficgrid/config"
	"github.com/milk9111/trafficgrid/ecs/component"
	"github.com/milk9111/trafficgrid/grid"
	"github.com/milk9111/trafficgrid/input"
	"github.com/milk9111/trafficgrid/interaction"
	"github.com/milk9111/trafficgrid/logging"
	"github.com/milk9111/trafficgrid/loop"
	"github.com/milk9111/trafficgrid/render"
	"github.com/milk9111/trafficgrid/scene"
)

// Template is a palette entry: a sprite name and its loaded image.
type Template struct {
	Name  string
	Image component.Image
}

type Session struct {
	Config      config.Config
	Grid        *grid.Grid
	Scene       *scene.Registry
	Controller  *interaction.Controller
	Coordinator *render.Coordinator
	Loop        *loop.Loop
}

// New validates cfg, registers templates in palette order and returns a
// session reading events from src.
func New(cfg config.Config, templates []Template, src input.Source, log *logging.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := grid.New(cfg.Grid)
	reg := scene.New(cfg)
	for _, t := range templates {
		if _, err := reg.AddTemplate(t.Name, t.Image); err != nil {
			return nil, fmt.Errorf("session: template %s: %w", t.Name, err)
		}
	}
	ctrl, err := interaction.New(cfg, g, reg, log)
	if err != nil {
		return nil, err
	}
	coord := render.New(cfg, reg)
	log.Infof("session: %dx%d grid, cell %d, %d templates", g.Width(), g.Height(), g.CellSize(), len(templates))
	return &Session{
		Config:      cfg,
		Grid:        g,
		Scene:       reg,
		Controller:  ctrl,
		Coordinator: coord,
		Loop:        loop.New(src, ctrl, coord, log),
	}, nil
}
