// Package input defines the events the interaction controller consumes and
// the sources that produce them one batch per tick.
package input

import (
	"fmt"
	"strings"
)

type Kind uint8

const (
	KindClose Kind = iota + 1
	KindPointerDown
	KindPointerUp
	KindPointerMove
	KindKeyDown
)

func (k Kind) String() string {
	switch k {
	case KindClose:
		return "close"
	case KindPointerDown:
		return "down"
	case KindPointerUp:
		return "up"
	case KindPointerMove:
		return "move"
	case KindKeyDown:
		return "key"
	default:
		return "unknown"
	}
}

type Button uint8

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonRight
	ButtonMiddle
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	default:
		return "none"
	}
}

// ParseButton accepts left, right and middle.
func ParseButton(s string) (Button, error) {
	switch strings.ToLower(s) {
	case "left":
		return ButtonLeft, nil
	case "right":
		return ButtonRight, nil
	case "middle":
		return ButtonMiddle, nil
	}
	return ButtonNone, fmt.Errorf("input: unknown button %q", s)
}

// Modifier is a bit mask of held modifier keys.
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
)

func (m Modifier) Has(flag Modifier) bool {
	return m&flag != 0
}

// Event is one input occurrence. X and Y are window pixels; Key and Mods are
// only set for key events.
type Event struct {
	Kind   Kind
	Button Button
	X, Y   int
	Key    Key
	Mods   Modifier
}

func (e Event) String() string {
	switch e.Kind {
	case KindPointerDown, KindPointerUp:
		return fmt.Sprintf("%s(%s %d,%d)", e.Kind, e.Button, e.X, e.Y)
	case KindPointerMove:
		return fmt.Sprintf("move(%d,%d)", e.X, e.Y)
	case KindKeyDown:
		return fmt.Sprintf("key(%s mods=%d)", e.Key, e.Mods)
	default:
		return e.Kind.String()
	}
}

func Close() Event {
	return Event{Kind: KindClose}
}

func Down(b Button, x, y int) Event {
	return Event{Kind: KindPointerDown, Button: b, X: x, Y: y}
}

func Up(b Button, x, y int) Event {
	return Event{Kind: KindPointerUp, Button: b, X: x, Y: y}
}

func Move(x, y int) Event {
	return Event{Kind: KindPointerMove, X: x, Y: y}
}

func KeyDown(k Key, mods Modifier) Event {
	return Event{Kind: KindKeyDown, Key: k, Mods: mods}
}

// Source yields the ordered batch of events for one tick.
type Source interface {
	Poll() []Event
}
