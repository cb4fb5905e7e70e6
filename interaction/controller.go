// Package interaction turns pointer and key events into grid placements: drag
// out of the palette, drag to move, confirmed right-click delete, and rotate.
package interaction

import (
	"fmt"

	"github.com/milk9111/trafficgrid/common"
	"github.com/milk9111/trafficgrid/config"
	"github.com/milk9111/trafficgrid/ecs"
	"github.com/milk9111/trafficgrid/grid"
	"github.com/milk9111/trafficgrid/input"
	"github.com/milk9111/trafficgrid/logging"
	"github.com/milk9111/trafficgrid/scene"
)

type State uint8

const (
	StateIdle State = iota
	StateDragging
	StatePendingDelete
)

func (s State) String() string {
	switch s {
	case StateDragging:
		return "dragging"
	case StatePendingDelete:
		return "pending_delete"
	default:
		return "idle"
	}
}

// dragSession exists between a left press on a draggable target and the
// matching release.
type dragSession struct {
	id      ecs.Entity
	offsetX int
	offsetY int
	// fresh is set when the instance was duplicated from a template by this
	// drag and has never been in the grid.
	fresh bool
	start common.Rect
}

// Controller owns the only mutable interaction state. It is not safe for
// concurrent use; the frame loop drives it from one goroutine.
type Controller struct {
	grid      *grid.Grid
	scene     *scene.Registry
	window    common.Rect
	rotateKey input.Key
	cancelKey input.Key
	log       *logging.Logger

	pointerX, pointerY int

	drag          *dragSession
	pendingDelete *ecs.Entity
	closed        bool
}

func New(cfg config.Config, g *grid.Grid, reg *scene.Registry, log *logging.Logger) (*Controller, error) {
	rotateKey, err := input.ParseKey(cfg.Controls.RotateKey)
	if err != nil {
		return nil, fmt.Errorf("interaction: rotate key: %w", err)
	}
	cancelKey, err := input.ParseKey(cfg.Controls.CancelKey)
	if err != nil {
		return nil, fmt.Errorf("interaction: cancel key: %w", err)
	}
	w, h := cfg.WindowSize()
	return &Controller{
		grid:      g,
		scene:     reg,
		window:    common.Rect{Width: w, Height: h},
		rotateKey: rotateKey,
		cancelKey: cancelKey,
		log:       log,
	}, nil
}

// State reports the current state machine state.
func (c *Controller) State() State {
	switch {
	case c.drag != nil:
		return StateDragging
	case c.pendingDelete != nil:
		return StatePendingDelete
	default:
		return StateIdle
	}
}

// Closed reports whether a close event was seen. It is terminal.
func (c *Controller) Closed() bool {
	return c.closed
}

// Pointer returns the last pointer position, clamped to the window.
func (c *Controller) Pointer() (int, int) {
	return c.pointerX, c.pointerY
}

// Dragged returns the instance under an active drag.
func (c *Controller) Dragged() (ecs.Entity, bool) {
	if c.drag == nil {
		return 0, false
	}
	return c.drag.id, true
}

// DeleteCandidate returns the instance awaiting right-button release.
func (c *Controller) DeleteCandidate() (ecs.Entity, bool) {
	if c.pendingDelete == nil {
		return 0, false
	}
	return *c.pendingDelete, true
}

// Hover returns the cell under the pointer when it is over the map zone.
func (c *Controller) Hover() (int, int, bool) {
	if !c.grid.Contains(c.pointerX, c.pointerY) {
		return 0, 0, false
	}
	col, row := c.grid.CellOf(c.pointerX, c.pointerY)
	return col, row, true
}

// DropTarget returns the cell an active drag would land in if released now.
func (c *Controller) DropTarget() (common.Rect, bool) {
	if c.drag == nil {
		return common.Rect{}, false
	}
	return c.grid.CellRect(c.grid.CellOf(c.pointerX, c.pointerY)), true
}

// HandleAll applies events strictly in order.
func (c *Controller) HandleAll(events []input.Event) {
	for _, ev := range events {
		c.Handle(ev)
	}
}

// Handle applies one event. Nothing here reports an error: out of range
// positions are clamped and events without a valid target are no-ops.
func (c *Controller) Handle(ev input.Event) {
	if c.closed {
		return
	}
	switch ev.Kind {
	case input.KindClose:
		c.closed = true
		c.log.Debugf("interaction: close requested in state %s", c.State())
	case input.KindPointerMove:
		c.pointerTo(ev.X, ev.Y)
		if c.drag != nil {
			c.dragTo(c.drag, c.pointerX, c.pointerY)
		}
	case input.KindPointerDown:
		c.pointerTo(ev.X, ev.Y)
		switch ev.Button {
		case input.ButtonLeft:
			c.pressLeft(c.pointerX, c.pointerY)
		case input.ButtonRight:
			c.pressRight(c.pointerX, c.pointerY)
		}
	case input.KindPointerUp:
		c.pointerTo(ev.X, ev.Y)
		switch ev.Button {
		case input.ButtonLeft:
			c.releaseLeft(c.pointerX, c.pointerY)
		case input.ButtonRight:
			c.releaseRight(c.pointerX, c.pointerY)
		}
	case input.KindKeyDown:
		c.keyDown(ev.Key, ev.Mods)
	}
}

func (c *Controller) pointerTo(x, y int) {
	c.pointerX, c.pointerY = c.window.ClampPoint(x, y)
}

func (c *Controller) pressLeft(x, y int) {
	if c.State() != StateIdle {
		return
	}
	target, ok := c.scene.TopmostAt(x, y)
	if !ok {
		return
	}
	if target.IsTemplate() {
		id, err := c.scene.Duplicate(target.ID)
		if err != nil {
			c.log.Warnf("interaction: duplicate %s: %v", target.ID, err)
			return
		}
		c.startDrag(id, target.Rect, x, y, true)
		return
	}
	c.startDrag(target.ID, target.Rect, x, y, false)
}

func (c *Controller) startDrag(id ecs.Entity, rect common.Rect, x, y int, fresh bool) {
	c.drag = &dragSession{
		id:      id,
		offsetX: rect.X - x,
		offsetY: rect.Y - y,
		fresh:   fresh,
		start:   rect,
	}
	c.log.Debugf("interaction: drag %s start at (%d,%d) fresh=%v", id, x, y, fresh)
}

func (c *Controller) dragTo(s *dragSession, x, y int) {
	if err := c.scene.Move(s.id, x+s.offsetX, y+s.offsetY); err != nil {
		c.log.Warnf("interaction: drag %s: %v", s.id, err)
	}
}

// releaseLeft drops the dragged instance into the cell under the pointer.
// The pre-move cell entry is removed first so a move never leaves a copy
// behind.
func (c *Controller) releaseLeft(x, y int) {
	s := c.drag
	if s == nil {
		return
	}
	c.drag = nil

	col, row := c.grid.CellOf(x, y)
	c.grid.Remove(s.id)
	ox, oy := c.grid.Origin(col, row)
	if err := c.scene.Move(s.id, ox, oy); err != nil {
		c.log.Warnf("interaction: drop %s: %v", s.id, err)
		return
	}
	if err := c.grid.Place(col, row, s.id); err != nil {
		c.log.Warnf("interaction: drop %s: %v", s.id, err)
		return
	}
	c.log.Debugf("interaction: drop %s at cell (%d,%d)", s.id, col, row)
}

// cancelDrag abandons the drag: a fresh duplicate is discarded, a moved
// instance goes back to where it started. The grid was never touched while
// dragging, so the old cell entry is still in place.
func (c *Controller) cancelDrag() {
	s := c.drag
	if s == nil {
		return
	}
	c.drag = nil
	if s.fresh {
		if err := c.scene.Destroy(s.id); err != nil {
			c.log.Warnf("interaction: cancel %s: %v", s.id, err)
		}
		c.log.Debugf("interaction: drag %s cancelled, duplicate discarded", s.id)
		return
	}
	if err := c.scene.Move(s.id, s.start.X, s.start.Y); err != nil {
		c.log.Warnf("interaction: cancel %s: %v", s.id, err)
	}
	c.log.Debugf("interaction: drag %s cancelled, restored to %v", s.id, s.start)
}

func (c *Controller) pressRight(x, y int) {
	if c.drag != nil {
		return
	}
	target, ok := c.scene.TopmostAt(x, y)
	if !ok || !target.IsPlaced() {
		c.pendingDelete = nil
		return
	}
	id := target.ID
	c.pendingDelete = &id
	c.log.Debugf("interaction: delete candidate %s", id)
}

// releaseRight confirms the delete only when the button comes up over the
// candidate's current rectangle.
func (c *Controller) releaseRight(x, y int) {
	if c.pendingDelete == nil {
		return
	}
	id := *c.pendingDelete
	c.pendingDelete = nil

	inst, ok := c.scene.Get(id)
	if !ok || !inst.Rect.Contains(x, y) {
		c.log.Debugf("interaction: delete %s discarded", id)
		return
	}
	if err := c.scene.Destroy(id); err != nil {
		c.log.Warnf("interaction: delete %s: %v", id, err)
		return
	}
	c.grid.Remove(id)
	c.log.Debugf("interaction: deleted %s", id)
}

func (c *Controller) keyDown(k input.Key, mods input.Modifier) {
	switch k {
	case c.cancelKey:
		if c.drag != nil {
			c.cancelDrag()
		} else {
			c.pendingDelete = nil
		}
	case c.rotateKey:
		if c.State() != StateIdle {
			return
		}
		target, ok := c.scene.TopmostPlacedAt(c.pointerX, c.pointerY)
		if !ok {
			return
		}
		dir := scene.Clockwise
		if mods.Has(input.ModShift) {
			dir = scene.CounterClockwise
		}
		if err := c.scene.Rotate(target.ID, dir); err != nil {
			c.log.Warnf("interaction: rotate %s: %v", target.ID, err)
			return
		}
		c.log.Debugf("interaction: rotated %s %s", target.ID, dir)
	}
}
