package input

import (
	"context"
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// ScriptSource replays events produced by a tengo script. The script runs
// once, up front, and builds batches with these globals:
//
//	down(button, x, y)   up(button, x, y)   move(x, y)
//	key(name, mods...)   close()            tick()
//
// tick() ends the current batch. Events after the last tick form a final
// batch. Once drained the source reports close.
type ScriptSource struct {
	*Batches
}

// NewScriptSource compiles and runs src.
func NewScriptSource(ctx context.Context, src []byte) (*ScriptSource, error) {
	b := &scriptBuilder{}
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	for name, fn := range b.functions() {
		if err := script.Add(name, &tengo.UserFunction{Name: name, Value: fn}); err != nil {
			return nil, fmt.Errorf("input: script add %s: %w", name, err)
		}
	}
	if _, err := script.RunContext(ctx); err != nil {
		return nil, fmt.Errorf("input: script run: %w", err)
	}
	b.flush()
	return &ScriptSource{Batches: NewBatches(b.batches...)}, nil
}

type scriptBuilder struct {
	batches [][]Event
	current []Event
}

func (b *scriptBuilder) flush() {
	if len(b.current) == 0 {
		return
	}
	b.batches = append(b.batches, b.current)
	b.current = nil
}

func (b *scriptBuilder) functions() map[string]tengo.CallableFunc {
	pointer := func(kind Kind) tengo.CallableFunc {
		return func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) != 3 {
				return nil, tengo.ErrWrongNumArguments
			}
			name, ok := tengo.ToString(args[0])
			if !ok {
				return nil, tengo.ErrInvalidArgumentType{Name: "button", Expected: "string", Found: args[0].TypeName()}
			}
			button, err := ParseButton(name)
			if err != nil {
				return nil, err
			}
			x, y, err := scriptPoint(args[1], args[2])
			if err != nil {
				return nil, err
			}
			b.current = append(b.current, Event{Kind: kind, Button: button, X: x, Y: y})
			return tengo.UndefinedValue, nil
		}
	}

	return map[string]tengo.CallableFunc{
		"down": pointer(KindPointerDown),
		"up":   pointer(KindPointerUp),
		"move": func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) != 2 {
				return nil, tengo.ErrWrongNumArguments
			}
			x, y, err := scriptPoint(args[0], args[1])
			if err != nil {
				return nil, err
			}
			b.current = append(b.current, Move(x, y))
			return tengo.UndefinedValue, nil
		},
		"key": func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) < 1 {
				return nil, tengo.ErrWrongNumArguments
			}
			name, ok := tengo.ToString(args[0])
			if !ok {
				return nil, tengo.ErrInvalidArgumentType{Name: "key", Expected: "string", Found: args[0].TypeName()}
			}
			k, err := ParseKey(name)
			if err != nil {
				return nil, err
			}
			var mods Modifier
			for _, a := range args[1:] {
				s, _ := tengo.ToString(a)
				switch strings.ToLower(s) {
				case "shift":
					mods |= ModShift
				case "ctrl", "control":
					mods |= ModCtrl
				case "alt":
					mods |= ModAlt
				default:
					return nil, fmt.Errorf("input: unknown modifier %q", s)
				}
			}
			b.current = append(b.current, KeyDown(k, mods))
			return tengo.UndefinedValue, nil
		},
		"close": func(args ...tengo.Object) (tengo.Object, error) {
			b.current = append(b.current, Close())
			return tengo.UndefinedValue, nil
		},
		"tick": func(args ...tengo.Object) (tengo.Object, error) {
			b.flush()
			return tengo.UndefinedValue, nil
		},
	}
}

func scriptPoint(xo, yo tengo.Object) (int, int, error) {
	x, ok := tengo.ToInt(xo)
	if !ok {
		return 0, 0, tengo.ErrInvalidArgumentType{Name: "x", Expected: "int", Found: xo.TypeName()}
	}
	y, ok := tengo.ToInt(yo)
	if !ok {
		return 0, 0, tengo.ErrInvalidArgumentType{Name: "y", Expected: "int", Found: yo.TypeName()}
	}
	return x, y, nil
}
