package render

import (
	"fmt"
	"image/color"

	"github.com/milk9111/trafficgrid/common"
	"github.com/milk9111/trafficgrid/ecs/component"
)

// Sink is the drawing surface a frame is presented to. The platform package
// backs it with an ebiten screen; Recorder keeps the calls in memory.
type Sink interface {
	Fill(c color.Color)
	Blit(sprite component.Sprite, dst common.Rect)
	StrokeRect(r common.Rect, c color.Color)
	Line(l Line, c color.Color)
}

// Line is a segment in window pixels.
type Line struct {
	X0, Y0 int
	X1, Y1 int
}

type OpKind uint8

const (
	OpFill OpKind = iota
	OpBlit
	OpStroke
	OpLine
)

func (k OpKind) String() string {
	switch k {
	case OpFill:
		return "fill"
	case OpBlit:
		return "blit"
	case OpStroke:
		return "stroke"
	case OpLine:
		return "line"
	default:
		return fmt.Sprintf("op(%d)", uint8(k))
	}
}

// Op is one recorded drawing call.
type Op struct {
	Kind   OpKind
	Color  color.Color
	Sprite component.Sprite
	Rect   common.Rect
	Line   Line
}

// Recorder is a Sink that stores the calls of the last frames.
type Recorder struct {
	Ops    []Op
	Frames int
}

func (r *Recorder) Fill(c color.Color) {
	r.Frames++
	r.Ops = append(r.Ops, Op{Kind: OpFill, Color: c})
}

func (r *Recorder) Blit(sprite component.Sprite, dst common.Rect) {
	r.Ops = append(r.Ops, Op{Kind: OpBlit, Sprite: sprite, Rect: dst})
}

func (r *Recorder) StrokeRect(rect common.Rect, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpStroke, Rect: rect, Color: c})
}

func (r *Recorder) Line(l Line, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpLine, Line: l, Color: c})
}

// Reset drops everything recorded so far.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
	r.Frames = 0
}

// Blits returns the blit calls in order.
func (r *Recorder) Blits() []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == OpBlit {
			out = append(out, op)
		}
	}
	return out
}

// LastFrame returns the calls made since the most recent Fill.
func (r *Recorder) LastFrame() []Op {
	for i := len(r.Ops) - 1; i >= 0; i-- {
		if r.Ops[i].Kind == OpFill {
			return r.Ops[i:]
		}
	}
	return nil
}
