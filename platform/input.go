package platform

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/trafficgrid/input"
)

var keyMap = map[ebiten.Key]input.Key{
	ebiten.KeyR:      input.KeyR,
	ebiten.KeyQ:      input.KeyQ,
	ebiten.KeyE:      input.KeyE,
	ebiten.KeyEscape: input.KeyEscape,
	ebiten.KeyDelete: input.KeyDelete,
	ebiten.KeySpace:  input.KeySpace,
	ebiten.KeyEnter:  input.KeyEnter,
}

var buttonMap = []struct {
	ebiten ebiten.MouseButton
	button input.Button
}{
	{ebiten.MouseButtonLeft, input.ButtonLeft},
	{ebiten.MouseButtonRight, input.ButtonRight},
	{ebiten.MouseButtonMiddle, input.ButtonMiddle},
}

// Input polls ebiten once per tick and reports what changed since the last
// tick. Within a tick the order is close, move, presses, releases, keys.
type Input struct {
	lastX, lastY int
	seeded       bool
	keys         []ebiten.Key
}

func NewInput() *Input {
	return &Input{}
}

func (in *Input) Poll() []input.Event {
	var events []input.Event
	if ebiten.IsWindowBeingClosed() {
		events = append(events, input.Close())
	}

	x, y := ebiten.CursorPosition()
	if !in.seeded || x != in.lastX || y != in.lastY {
		events = append(events, input.Move(x, y))
		in.lastX, in.lastY, in.seeded = x, y, true
	}

	for _, b := range buttonMap {
		if inpututil.IsMouseButtonJustPressed(b.ebiten) {
			events = append(events, input.Down(b.button, x, y))
		}
	}
	for _, b := range buttonMap {
		if inpututil.IsMouseButtonJustReleased(b.ebiten) {
			events = append(events, input.Up(b.button, x, y))
		}
	}

	in.keys = inpututil.AppendJustPressedKeys(in.keys[:0])
	if len(in.keys) > 0 {
		mods := modifiers()
		for _, k := range in.keys {
			if key, ok := keyMap[k]; ok {
				events = append(events, input.KeyDown(key, mods))
			}
		}
	}
	return events
}

func modifiers() input.Modifier {
	var m input.Modifier
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		m |= input.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		m |= input.ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		m |= input.ModAlt
	}
	return m
}
