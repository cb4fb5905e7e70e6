package interaction

import (
	"image"
	"testing"

	"github.com/milk9111/trafficgrid/common"
	"github.com/milk9111/trafficgrid/config"
	"github.com/milk9111/trafficgrid/ecs"
	"github.com/milk9111/trafficgrid/grid"
	"github.com/milk9111/trafficgrid/input"
	"github.com/milk9111/trafficgrid/logging"
	"github.com/milk9111/trafficgrid/scene"
)

type fixture struct {
	cfg   config.Config
	grid  *grid.Grid
	scene *scene.Registry
	ctrl  *Controller
	car   ecs.Entity // template at (645,10) 30x30
	truck ecs.Entity // template at (645,50) 30x60
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := config.Default()
	cfg.Grid = config.Grid{WidthCells: 20, HeightCells: 20, CellSize: 30}
	cfg.Palette = config.Palette{Width: 120, Padding: 10}

	g := grid.New(cfg.Grid)
	reg := scene.New(cfg)
	car, err := reg.AddTemplate("car_red", image.NewRGBA(image.Rect(0, 0, 30, 30)))
	if err != nil {
		t.Fatal(err)
	}
	truck, err := reg.AddTemplate("truck", image.NewRGBA(image.Rect(0, 0, 30, 60)))
	if err != nil {
		t.Fatal(err)
	}
	ctrl, err := New(cfg, g, reg, logging.Discard())
	if err != nil {
		t.Fatal(err)
	}
	return &fixture{cfg: cfg, grid: g, scene: reg, ctrl: ctrl, car: car, truck: truck}
}

func (f *fixture) do(events ...input.Event) {
	f.ctrl.HandleAll(events)
}

// place drags the car template to the cell containing (x, y).
func (f *fixture) place(t *testing.T, x, y int) ecs.Entity {
	t.Helper()
	before := len(f.scene.Placed())
	f.do(
		input.Down(input.ButtonLeft, 650, 15),
		input.Move(x, y),
		input.Up(input.ButtonLeft, x, y),
	)
	placed := f.scene.Placed()
	if len(placed) != before+1 {
		t.Fatalf("expected %d placed instances, got %d", before+1, len(placed))
	}
	return placed[len(placed)-1].ID
}

func (f *fixture) rect(t *testing.T, id ecs.Entity) common.Rect {
	t.Helper()
	inst, ok := f.scene.Get(id)
	if !ok {
		t.Fatalf("instance %s missing", id)
	}
	return inst.Rect
}

func TestDragTemplateOutPlacesOneInstance(t *testing.T) {
	f := newFixture(t)
	tplBefore, _ := f.scene.Get(f.car)

	f.do(input.Down(input.ButtonLeft, 650, 15))
	if f.ctrl.State() != StateDragging {
		t.Fatalf("expected dragging, got %s", f.ctrl.State())
	}
	f.do(input.Move(95, 125))
	if f.grid.Len() != 0 {
		t.Fatalf("grid must not change while dragging")
	}
	id, _ := f.ctrl.Dragged()
	if r := f.rect(t, id); r.X != 90 || r.Y != 120 {
		t.Fatalf("floating rect should follow pointer+offset, got %v", r)
	}
	f.do(input.Up(input.ButtonLeft, 95, 125))

	if f.ctrl.State() != StateIdle {
		t.Fatalf("expected idle after drop, got %s", f.ctrl.State())
	}
	placed := f.scene.Placed()
	if len(placed) != 1 {
		t.Fatalf("expected exactly one placed instance, got %d", len(placed))
	}
	if placed[0].Rect.X != 90 || placed[0].Rect.Y != 120 {
		t.Fatalf("expected origin (90,120), got %v", placed[0].Rect)
	}
	occ := f.grid.Occupants(3, 4)
	if len(occ) != 1 || occ[0] != placed[0].ID {
		t.Fatalf("cell (3,4) should hold only %s, got %v", placed[0].ID, occ)
	}

	tplAfter, _ := f.scene.Get(f.car)
	if tplAfter.Rect != tplBefore.Rect || tplAfter.Sprite != tplBefore.Sprite {
		t.Fatalf("template modified: %+v -> %+v", tplBefore, tplAfter)
	}
	second := f.place(t, 155, 155)
	if second == placed[0].ID {
		t.Fatalf("template should still be duplicable into a new instance")
	}
}

func TestMovePlacedInstanceLeavesNoResidue(t *testing.T) {
	f := newFixture(t)
	id := f.place(t, 95, 125)

	f.do(input.Down(input.ButtonLeft, 100, 130))
	if got, _ := f.ctrl.Dragged(); got != id {
		t.Fatalf("expected to drag the placed instance %s, got %s", id, got)
	}
	if len(f.scene.Placed()) != 1 {
		t.Fatalf("dragging a placed instance must not duplicate it")
	}
	f.do(input.Move(160, 160))
	if occ := f.grid.Occupants(3, 4); len(occ) != 1 {
		t.Fatalf("old cell membership is kept until the drop, got %v", occ)
	}
	f.do(input.Up(input.ButtonLeft, 160, 160))

	if occ := f.grid.Occupants(3, 4); len(occ) != 0 {
		t.Fatalf("cell (3,4) still holds %v", occ)
	}
	occ := f.grid.Occupants(5, 5)
	if len(occ) != 1 || occ[0] != id {
		t.Fatalf("cell (5,5) should hold %s exactly once, got %v", id, occ)
	}
	if f.grid.Len() != 1 {
		t.Fatalf("expected one grid entry overall, got %d", f.grid.Len())
	}
	if r := f.rect(t, id); r.X != 150 || r.Y != 150 {
		t.Fatalf("expected snapped origin (150,150), got %v", r)
	}
}

func TestDropInSameCellKeepsSingleEntry(t *testing.T) {
	f := newFixture(t)
	id := f.place(t, 95, 125)
	f.do(
		input.Down(input.ButtonLeft, 95, 125),
		input.Move(97, 127),
		input.Up(input.ButtonLeft, 97, 127),
	)
	occ := f.grid.Occupants(3, 4)
	if len(occ) != 1 || occ[0] != id {
		t.Fatalf("expected single entry, got %v", occ)
	}
}

func TestDropOutsideMapIsClamped(t *testing.T) {
	cases := []struct {
		name     string
		x, y     int
		col, row int
	}{
		{"over_palette", 700, 125, 19, 4},
		{"below_map", 95, 610, 3, 19},
		{"outside_window", -100, -100, 0, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newFixture(t)
			id := f.place(t, c.x, c.y)
			occ := f.grid.Occupants(c.col, c.row)
			if len(occ) != 1 || occ[0] != id {
				t.Fatalf("expected %s in (%d,%d), grid:\n%s", id, c.col, c.row, f.grid)
			}
			if r := f.rect(t, id); r.X != c.col*30 || r.Y != c.row*30 {
				t.Fatalf("expected origin (%d,%d), got %v", c.col*30, c.row*30, r)
			}
		})
	}
}

func TestDeleteRequiresConfirmationOnSameTarget(t *testing.T) {
	f := newFixture(t)
	id := f.place(t, 95, 125)

	f.do(input.Down(input.ButtonRight, 95, 125))
	if f.ctrl.State() != StatePendingDelete {
		t.Fatalf("expected pending_delete, got %s", f.ctrl.State())
	}
	f.do(input.Up(input.ButtonRight, 300, 300))

	if f.ctrl.State() != StateIdle {
		t.Fatalf("expected idle, got %s", f.ctrl.State())
	}
	if _, ok := f.scene.Get(id); !ok {
		t.Fatalf("instance deleted without confirmation")
	}
	if occ := f.grid.Occupants(3, 4); len(occ) != 1 || occ[0] != id {
		t.Fatalf("grid changed: %v", occ)
	}
}

func TestConfirmedDeleteRemovesEverywhere(t *testing.T) {
	f := newFixture(t)
	keep := f.place(t, 155, 155)
	id := f.place(t, 95, 125)

	f.do(
		input.Down(input.ButtonRight, 95, 125),
		input.Move(110, 140),
		input.Up(input.ButtonRight, 110, 140),
	)
	if _, ok := f.scene.Get(id); ok {
		t.Fatalf("instance still registered")
	}
	if _, _, ok := f.grid.Locate(id); ok {
		t.Fatalf("instance still in grid")
	}
	for _, inst := range f.scene.Ordered() {
		if inst.ID == id {
			t.Fatalf("deleted instance still in draw order")
		}
	}
	if _, ok := f.scene.Get(keep); !ok {
		t.Fatalf("unrelated instance removed")
	}
}

func TestRightClickOnTemplateDoesNothing(t *testing.T) {
	f := newFixture(t)
	f.do(input.Down(input.ButtonRight, 650, 15), input.Up(input.ButtonRight, 650, 15))
	if _, ok := f.scene.Get(f.car); !ok {
		t.Fatalf("template must never be deleted")
	}
	if f.ctrl.State() != StateIdle {
		t.Fatalf("expected idle, got %s", f.ctrl.State())
	}
}

func TestRotateKey(t *testing.T) {
	f := newFixture(t)
	id := f.place(t, 95, 125)
	start := f.rect(t, id)
	cx, cy := start.Center()

	for i := 1; i <= 4; i++ {
		f.do(input.KeyDown(input.KeyR, 0))
		inst, _ := f.scene.Get(id)
		if inst.Sprite.Quarter != i%4 {
			t.Fatalf("turn %d: expected quarter %d, got %d", i, i%4, inst.Sprite.Quarter)
		}
		if x, y := inst.Rect.Center(); x != cx || y != cy {
			t.Fatalf("turn %d: center moved to (%v,%v)", i, x, y)
		}
		if f.ctrl.State() != StateIdle {
			t.Fatalf("rotate must not change state")
		}
	}

	f.do(input.KeyDown(input.KeyR, input.ModShift))
	if inst, _ := f.scene.Get(id); inst.Sprite.Quarter != 3 {
		t.Fatalf("shift should rotate counterclockwise, got quarter %d", inst.Sprite.Quarter)
	}
}

func TestRotateIgnoredWithoutPlacedTarget(t *testing.T) {
	f := newFixture(t)
	id := f.place(t, 95, 125)

	// over a template
	f.do(input.Move(650, 15), input.KeyDown(input.KeyR, 0))
	if inst, _ := f.scene.Get(f.car); inst.Sprite.Quarter != 0 {
		t.Fatalf("templates must not rotate")
	}

	// during pending delete
	f.do(input.Down(input.ButtonRight, 95, 125), input.KeyDown(input.KeyR, 0))
	if inst, _ := f.scene.Get(id); inst.Sprite.Quarter != 0 {
		t.Fatalf("rotate only applies when idle")
	}
}

func TestSecondLeftDownWhileDragging(t *testing.T) {
	f := newFixture(t)
	f.do(input.Down(input.ButtonLeft, 650, 15))
	first, _ := f.ctrl.Dragged()

	f.do(input.Down(input.ButtonLeft, 650, 15))
	f.do(input.Down(input.ButtonLeft, 650, 60))
	if got, _ := f.ctrl.Dragged(); got != first {
		t.Fatalf("drag session replaced: %s -> %s", first, got)
	}
	if n := len(f.scene.Placed()); n != 1 {
		t.Fatalf("expected one in-flight instance, got %d", n)
	}
}

func TestRightDownWhileDraggingIgnored(t *testing.T) {
	f := newFixture(t)
	f.do(input.Down(input.ButtonLeft, 650, 15), input.Down(input.ButtonRight, 650, 15))
	if f.ctrl.State() != StateDragging {
		t.Fatalf("expected to keep dragging, got %s", f.ctrl.State())
	}
	if _, ok := f.ctrl.DeleteCandidate(); ok {
		t.Fatalf("no delete candidate expected while dragging")
	}
}

func TestLeftDownOnEmptySpace(t *testing.T) {
	f := newFixture(t)
	f.do(input.Down(input.ButtonLeft, 10, 10), input.Up(input.ButtonLeft, 10, 10))
	if f.ctrl.State() != StateIdle || len(f.scene.Placed()) != 0 || f.grid.Len() != 0 {
		t.Fatalf("click on empty space must be a no-op")
	}
}

func TestCancelDrag(t *testing.T) {
	t.Run("fresh_duplicate_discarded", func(t *testing.T) {
		f := newFixture(t)
		f.do(input.Down(input.ButtonLeft, 650, 15), input.Move(95, 125), input.KeyDown(input.KeyEscape, 0))
		if f.ctrl.State() != StateIdle {
			t.Fatalf("expected idle, got %s", f.ctrl.State())
		}
		if len(f.scene.Placed()) != 0 {
			t.Fatalf("cancelled duplicate should be gone")
		}
		// the release that follows is a no-op
		f.do(input.Up(input.ButtonLeft, 95, 125))
		if f.grid.Len() != 0 {
			t.Fatalf("grid should be empty")
		}
	})
	t.Run("moved_instance_restored", func(t *testing.T) {
		f := newFixture(t)
		id := f.place(t, 95, 125)
		f.do(input.Down(input.ButtonLeft, 95, 125), input.Move(300, 300), input.KeyDown(input.KeyEscape, 0))
		if r := f.rect(t, id); r.X != 90 || r.Y != 120 {
			t.Fatalf("expected restore to (90,120), got %v", r)
		}
		if occ := f.grid.Occupants(3, 4); len(occ) != 1 || occ[0] != id {
			t.Fatalf("cell membership lost: %v", occ)
		}
	})
}

func TestPointerClampedToWindow(t *testing.T) {
	f := newFixture(t)
	w, h := f.cfg.WindowSize()
	f.do(input.Move(-50, 5000))
	x, y := f.ctrl.Pointer()
	if x != 0 || y != h-1 {
		t.Fatalf("expected (0,%d), got (%d,%d)", h-1, x, y)
	}
	f.do(input.Move(w+10, -3))
	x, y = f.ctrl.Pointer()
	if x != w-1 || y != 0 {
		t.Fatalf("expected (%d,0), got (%d,%d)", w-1, x, y)
	}
}

func TestHoverAndDropTarget(t *testing.T) {
	f := newFixture(t)
	f.do(input.Move(95, 125))
	col, row, ok := f.ctrl.Hover()
	if !ok || col != 3 || row != 4 {
		t.Fatalf("Hover = (%d,%d,%v)", col, row, ok)
	}
	f.do(input.Move(650, 15))
	if _, _, ok := f.ctrl.Hover(); ok {
		t.Fatalf("palette is not part of the map zone")
	}
	if _, ok := f.ctrl.DropTarget(); ok {
		t.Fatalf("no drop target without a drag")
	}
	f.do(input.Down(input.ButtonLeft, 650, 15), input.Move(160, 160))
	r, ok := f.ctrl.DropTarget()
	if !ok || r != (common.Rect{X: 150, Y: 150, Width: 30, Height: 30}) {
		t.Fatalf("DropTarget = %v,%v", r, ok)
	}
}

func TestCloseIsTerminal(t *testing.T) {
	f := newFixture(t)
	f.do(input.Close(), input.Down(input.ButtonLeft, 650, 15))
	if !f.ctrl.Closed() {
		t.Fatalf("expected closed")
	}
	if f.ctrl.State() != StateIdle || len(f.scene.Placed()) != 0 {
		t.Fatalf("events after close must be ignored")
	}
}

func TestNewRejectsUnknownKeys(t *testing.T) {
	cfg := config.Default()
	cfg.Controls.RotateKey = "hyper"
	if _, err := New(cfg, grid.New(cfg.Grid), scene.New(cfg), nil); err == nil {
		t.Fatalf("expected error for unknown rotate key")
	}
}
