// Package grid maps pixel positions onto a fixed cell layout and tracks which
// instances occupy each cell.
package grid

import (
	"errors"
	"fmt"
	"strings"

	"github.com/milk9111/trafficgrid/common"
	"github.com/milk9111/trafficgrid/config"
	"github.com/milk9111/trafficgrid/ecs"
)

var ErrOutOfBounds = errors.New("grid: cell out of bounds")

// Grid holds an ordered occupant list per cell, indexed [row][col].
// More than one occupant per cell is allowed.
type Grid struct {
	cfg   config.Grid
	cells [][][]ecs.Entity
}

func New(cfg config.Grid) *Grid {
	cells := make([][][]ecs.Entity, cfg.HeightCells)
	for row := range cells {
		cells[row] = make([][]ecs.Entity, cfg.WidthCells)
	}
	return &Grid{cfg: cfg, cells: cells}
}

func (g *Grid) Width() int    { return g.cfg.WidthCells }
func (g *Grid) Height() int   { return g.cfg.HeightCells }
func (g *Grid) CellSize() int { return g.cfg.CellSize }

// Bounds is the map zone in pixels.
func (g *Grid) Bounds() common.Rect {
	return common.Rect{Width: g.cfg.PixelWidth(), Height: g.cfg.PixelHeight()}
}

// Contains reports whether the pixel lies inside the map zone. CellOf clamps
// exactly the pixels for which Contains is false.
func (g *Grid) Contains(px, py int) bool {
	return g.Bounds().Contains(px, py)
}

// InBounds reports whether (col, row) is a valid cell.
func (g *Grid) InBounds(col, row int) bool {
	return col >= 0 && col < g.cfg.WidthCells && row >= 0 && row < g.cfg.HeightCells
}

// CellOf maps a pixel to its cell. Pixels outside the map zone are clamped to
// the nearest edge cell, so the result is always in bounds.
func (g *Grid) CellOf(px, py int) (int, int) {
	col := floorDiv(px, g.cfg.CellSize)
	row := floorDiv(py, g.cfg.CellSize)
	return common.Clamp(col, 0, g.cfg.WidthCells-1), common.Clamp(row, 0, g.cfg.HeightCells-1)
}

// Origin returns the top-left pixel of a cell.
func (g *Grid) Origin(col, row int) (int, int) {
	return col * g.cfg.CellSize, row * g.cfg.CellSize
}

// CellRect returns the pixel rectangle of a cell.
func (g *Grid) CellRect(col, row int) common.Rect {
	x, y := g.Origin(col, row)
	return common.Rect{X: x, Y: y, Width: g.cfg.CellSize, Height: g.cfg.CellSize}
}

// Snap returns the origin of the cell containing the pixel.
func (g *Grid) Snap(px, py int) (int, int) {
	return g.Origin(g.CellOf(px, py))
}

// Place appends id to the cell's occupants.
func (g *Grid) Place(col, row int, id ecs.Entity) error {
	if !g.InBounds(col, row) {
		return fmt.Errorf("%w: (%d,%d) on %dx%d", ErrOutOfBounds, col, row, g.cfg.WidthCells, g.cfg.HeightCells)
	}
	g.cells[row][col] = append(g.cells[row][col], id)
	return nil
}

// Remove deletes id from whichever cell holds it.
func (g *Grid) Remove(id ecs.Entity) bool {
	col, row, ok := g.Locate(id)
	if !ok {
		return false
	}
	cell := g.cells[row][col]
	for i, e := range cell {
		if e == id {
			g.cells[row][col] = append(cell[:i:i], cell[i+1:]...)
			break
		}
	}
	return true
}

// Locate finds the cell holding id.
func (g *Grid) Locate(id ecs.Entity) (int, int, bool) {
	for row := range g.cells {
		for col, cell := range g.cells[row] {
			for _, e := range cell {
				if e == id {
					return col, row, true
				}
			}
		}
	}
	return 0, 0, false
}

// Occupants returns a copy of the cell's occupants in placement order.
func (g *Grid) Occupants(col, row int) []ecs.Entity {
	if !g.InBounds(col, row) {
		return nil
	}
	return append([]ecs.Entity(nil), g.cells[row][col]...)
}

// Len returns the total number of occupant entries.
func (g *Grid) Len() int {
	n := 0
	for row := range g.cells {
		for _, cell := range g.cells[row] {
			n += len(cell)
		}
	}
	return n
}

// String renders non-empty cells, one per line, row-major.
func (g *Grid) String() string {
	var b strings.Builder
	for row := range g.cells {
		for col, cell := range g.cells[row] {
			if len(cell) == 0 {
				continue
			}
			ids := make([]string, len(cell))
			for i, e := range cell {
				ids[i] = e.String()
			}
			fmt.Fprintf(&b, "(%d,%d): %s\n", col, row, strings.Join(ids, " "))
		}
	}
	return b.String()
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
