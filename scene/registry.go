// Package scene keeps the live sprite instances: the fixed palette templates
// and the instances placed on the grid.
package scene

import (
	"errors"
	"fmt"

	"github.com/milk9111/trafficgrid/common"
	"github.com/milk9111/trafficgrid/config"
	"github.com/milk9111/trafficgrid/ecs"
	"github.com/milk9111/trafficgrid/ecs/component"
)

var (
	ErrUnknownInstance   = errors.New("scene: unknown instance")
	ErrNotTemplate       = errors.New("scene: instance is not a template")
	ErrTemplateImmutable = errors.New("scene: templates cannot be destroyed")
	ErrNilImage          = errors.New("scene: nil image")
)

type Direction int

const (
	Clockwise Direction = iota
	CounterClockwise
)

func (d Direction) String() string {
	if d == CounterClockwise {
		return "counterclockwise"
	}
	return "clockwise"
}

// Instance is a snapshot of one sprite instance.
type Instance struct {
	ID       ecs.Entity
	Category component.Category
	Sprite   component.Sprite
	Rect     common.Rect
}

func (i Instance) IsTemplate() bool { return i.Category == component.CategoryTemplate }
func (i Instance) IsPlaced() bool   { return i.Category == component.CategoryPlaced }

// Registry stores instances in an ECS world. Iteration order is insertion
// order, templates before placed instances.
type Registry struct {
	cfg      config.Config
	world    *ecs.World
	paletteY int
}

func New(cfg config.Config) *Registry {
	return &Registry{
		cfg:      cfg,
		world:    ecs.NewWorld(),
		paletteY: cfg.Palette.Padding,
	}
}

// AddTemplate registers a palette entry. Templates are stacked top to bottom
// in the list zone, centered horizontally.
func (r *Registry) AddTemplate(name string, img component.Image) (ecs.Entity, error) {
	if img == nil {
		return 0, fmt.Errorf("scene: add template %s: %w", name, ErrNilImage)
	}
	size := img.Bounds().Size()
	listX := r.cfg.Grid.PixelWidth()
	x := listX + (r.cfg.Palette.Width-size.X)/2
	if x < listX {
		x = listX
	}
	rect := common.Rect{X: x, Y: r.paletteY, Width: size.X, Height: size.Y}
	r.paletteY += size.Y + r.cfg.Palette.Padding

	e := r.world.CreateEntity()
	if err := r.attach(e, component.CategoryTemplate, component.Sprite{Name: name, Image: img}, rect); err != nil {
		return 0, fmt.Errorf("scene: add template %s: %w", name, err)
	}
	return e, nil
}

func (r *Registry) attach(e ecs.Entity, cat component.Category, sprite component.Sprite, rect common.Rect) error {
	if err := ecs.Add(r.world, e, component.SpriteComponent, sprite); err != nil {
		return err
	}
	if err := ecs.Add(r.world, e, component.BoundsComponent, component.Bounds{Rect: rect}); err != nil {
		return err
	}
	return ecs.Add(r.world, e, component.CategoryComponent, cat)
}

// Duplicate creates a placed instance with the template's visual and
// rectangle. The caller repositions it.
func (r *Registry) Duplicate(template ecs.Entity) (ecs.Entity, error) {
	src, ok := r.Get(template)
	if !ok {
		return 0, fmt.Errorf("scene: duplicate %s: %w", template, ErrUnknownInstance)
	}
	if !src.IsTemplate() {
		return 0, fmt.Errorf("scene: duplicate %s: %w", template, ErrNotTemplate)
	}
	e := r.world.CreateEntity()
	if err := r.attach(e, component.CategoryPlaced, src.Sprite, src.Rect); err != nil {
		r.world.DestroyEntity(e)
		return 0, fmt.Errorf("scene: duplicate %s: %w", template, err)
	}
	return e, nil
}

// Destroy removes a placed instance.
func (r *Registry) Destroy(id ecs.Entity) error {
	inst, ok := r.Get(id)
	if !ok {
		return fmt.Errorf("scene: destroy %s: %w", id, ErrUnknownInstance)
	}
	if inst.IsTemplate() {
		return fmt.Errorf("scene: destroy %s: %w", id, ErrTemplateImmutable)
	}
	r.world.DestroyEntity(id)
	return nil
}

// Rotate turns the instance a quarter turn about its rectangle center.
// Width and height swap; with an odd size difference the origin rounds
// toward the old one, and two opposite turns restore it exactly.
func (r *Registry) Rotate(id ecs.Entity, dir Direction) error {
	inst, ok := r.Get(id)
	if !ok {
		return fmt.Errorf("scene: rotate %s: %w", id, ErrUnknownInstance)
	}
	sprite := inst.Sprite
	if dir == CounterClockwise {
		sprite.Quarter = (sprite.Quarter + 3) % 4
	} else {
		sprite.Quarter = (sprite.Quarter + 1) % 4
	}
	rect := inst.Rect
	w, h := rect.Width, rect.Height
	rect.X += (w - h) / 2
	rect.Y += (h - w) / 2
	rect.Width, rect.Height = h, w

	if err := ecs.Add(r.world, id, component.SpriteComponent, sprite); err != nil {
		return fmt.Errorf("scene: rotate %s: %w", id, err)
	}
	return ecs.Add(r.world, id, component.BoundsComponent, component.Bounds{Rect: rect})
}

// Move sets the rectangle origin.
func (r *Registry) Move(id ecs.Entity, x, y int) error {
	b, ok := ecs.Get(r.world, id, component.BoundsComponent)
	if !ok {
		return fmt.Errorf("scene: move %s: %w", id, ErrUnknownInstance)
	}
	b.Rect = b.Rect.MoveTo(x, y)
	return ecs.Add(r.world, id, component.BoundsComponent, b)
}

// Get returns a snapshot of the instance.
func (r *Registry) Get(id ecs.Entity) (Instance, bool) {
	cat, ok := ecs.Get(r.world, id, component.CategoryComponent)
	if !ok {
		return Instance{}, false
	}
	sprite, _ := ecs.Get(r.world, id, component.SpriteComponent)
	bounds, _ := ecs.Get(r.world, id, component.BoundsComponent)
	return Instance{ID: id, Category: cat, Sprite: sprite, Rect: bounds.Rect}, true
}

func (r *Registry) IsTemplate(id ecs.Entity) bool {
	inst, ok := r.Get(id)
	return ok && inst.IsTemplate()
}

func (r *Registry) IsPlaced(id ecs.Entity) bool {
	inst, ok := r.Get(id)
	return ok && inst.IsPlaced()
}

func (r *Registry) byCategory(cat component.Category) []Instance {
	var out []Instance
	ecs.ForEach(r.world, component.CategoryComponent, func(e ecs.Entity, c component.Category) {
		if c != cat {
			return
		}
		if inst, ok := r.Get(e); ok {
			out = append(out, inst)
		}
	})
	return out
}

// Templates returns palette templates in insertion order.
func (r *Registry) Templates() []Instance {
	return r.byCategory(component.CategoryTemplate)
}

// Placed returns placed instances in insertion order.
func (r *Registry) Placed() []Instance {
	return r.byCategory(component.CategoryPlaced)
}

// Ordered returns templates then placed instances: draw order, bottom first.
func (r *Registry) Ordered() []Instance {
	return append(r.Templates(), r.Placed()...)
}

// TopmostAt returns the last drawn instance containing the pixel.
func (r *Registry) TopmostAt(x, y int) (Instance, bool) {
	return topmost(r.Ordered(), x, y)
}

// TopmostPlacedAt is TopmostAt restricted to placed instances.
func (r *Registry) TopmostPlacedAt(x, y int) (Instance, bool) {
	return topmost(r.Placed(), x, y)
}

func topmost(list []Instance, x, y int) (Instance, bool) {
	for i := len(list) - 1; i >= 0; i-- {
		if list[i].Rect.Contains(x, y) {
			return list[i], true
		}
	}
	return Instance{}, false
}

// Len returns the number of live instances.
func (r *Registry) Len() int {
	return r.world.Len()
}
