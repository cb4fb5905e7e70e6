// Package render derives the draw order from the scene registry and presents
// it to a Sink.
package render

import (
	"image/color"

	"github.com/milk9111/trafficgrid/common"
	"github.com/milk9111/trafficgrid/config"
	"github.com/milk9111/trafficgrid/ecs"
	"github.com/milk9111/trafficgrid/ecs/component"
	"github.com/milk9111/trafficgrid/scene"
)

// Item is one entry of the draw list.
type Item struct {
	ID     ecs.Entity
	Rect   common.Rect
	Sprite component.Sprite
}

type palette struct {
	background color.RGBA
	gridLines  color.RGBA
	separator  color.RGBA
	highlight  color.RGBA
}

// Coordinator owns no scene state; the draw list is rebuilt from the
// registry on every call.
type Coordinator struct {
	cfg    config.Config
	scene  *scene.Registry
	colors palette

	zonesReady bool
	mapZone    common.Rect
	listZone   common.Rect
}

func New(cfg config.Config, reg *scene.Registry) *Coordinator {
	return &Coordinator{
		cfg:   cfg,
		scene: reg,
		colors: palette{
			background: config.MustColor(cfg.Window.Background),
			gridLines:  config.MustColor(cfg.Window.GridLines),
			separator:  config.MustColor(cfg.Window.Separator),
			highlight:  config.MustColor(cfg.Window.Highlight),
		},
	}
}

// Zones returns the map zone (the grid) and the list zone (the palette
// column to its right). Computed once.
func (c *Coordinator) Zones() (common.Rect, common.Rect) {
	if !c.zonesReady {
		gw, gh := c.cfg.Grid.PixelWidth(), c.cfg.Grid.PixelHeight()
		c.mapZone = common.Rect{Width: gw, Height: gh}
		c.listZone = common.Rect{X: gw, Width: c.cfg.Palette.Width, Height: gh}
		c.zonesReady = true
	}
	return c.mapZone, c.listZone
}

// Separator is the vertical boundary between the map and list zones.
func (c *Coordinator) Separator() Line {
	mapZone, _ := c.Zones()
	return Line{X0: mapZone.Right(), Y0: 0, X1: mapZone.Right(), Y1: mapZone.Bottom()}
}

// GridLines returns the inner cell boundaries of the map zone.
func (c *Coordinator) GridLines() []Line {
	mapZone, _ := c.Zones()
	size := c.cfg.Grid.CellSize
	lines := make([]Line, 0, c.cfg.Grid.WidthCells+c.cfg.Grid.HeightCells)
	for col := 1; col < c.cfg.Grid.WidthCells; col++ {
		x := col * size
		lines = append(lines, Line{X0: x, Y0: 0, X1: x, Y1: mapZone.Bottom()})
	}
	for row := 1; row < c.cfg.Grid.HeightCells; row++ {
		y := row * size
		lines = append(lines, Line{X0: 0, Y0: y, X1: mapZone.Right(), Y1: y})
	}
	return lines
}

// DrawList returns every live instance, templates first, then placed
// instances in creation order.
func (c *Coordinator) DrawList() []Item {
	ordered := c.scene.Ordered()
	items := make([]Item, 0, len(ordered))
	for _, inst := range ordered {
		items = append(items, Item{ID: inst.ID, Rect: inst.Rect, Sprite: inst.Sprite})
	}
	return items
}

// Present draws one frame. highlight, when non-nil, outlines the cell an
// active drag would drop into.
func (c *Coordinator) Present(sink Sink, highlight *common.Rect) {
	sink.Fill(c.colors.background)
	for _, l := range c.GridLines() {
		sink.Line(l, c.colors.gridLines)
	}
	for _, it := range c.DrawList() {
		sink.Blit(it.Sprite, it.Rect)
	}
	sink.Line(c.Separator(), c.colors.separator)
	if highlight != nil {
		sink.StrokeRect(*highlight, c.colors.highlight)
	}
}
