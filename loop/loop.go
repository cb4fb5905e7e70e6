// Package loop drives one tick at a time: drain input, apply it to the
// controller, present the frame.
package loop

import (
	"context"
	"errors"
	"time"

	"github.com/milk9111/trafficgrid/common"
	"github.com/milk9111/trafficgrid/input"
	"github.com/milk9111/trafficgrid/interaction"
	"github.com/milk9111/trafficgrid/logging"
	"github.com/milk9111/trafficgrid/render"
)

// ErrTerminated is returned by Update once a close event was handled.
var ErrTerminated = errors.New("loop: terminated")

type Loop struct {
	src   input.Source
	ctrl  *interaction.Controller
	coord *render.Coordinator
	log   *logging.Logger

	frames int
}

func New(src input.Source, ctrl *interaction.Controller, coord *render.Coordinator, log *logging.Logger) *Loop {
	return &Loop{src: src, ctrl: ctrl, coord: coord, log: log}
}

// Frames returns the number of ticks run so far.
func (l *Loop) Frames() int {
	return l.frames
}

func (l *Loop) Controller() *interaction.Controller {
	return l.ctrl
}

// Update drains one batch of events from the source in arrival order.
func (l *Loop) Update() error {
	if l.ctrl.Closed() {
		return ErrTerminated
	}
	l.frames++
	events := l.src.Poll()
	if len(events) > 0 && l.log.Enabled(logging.LevelDebug) {
		for _, ev := range events {
			l.log.Debugf("loop: frame %d event %s", l.frames, ev)
		}
	}
	l.ctrl.HandleAll(events)
	if l.ctrl.Closed() {
		l.log.Infof("loop: close after %d frames", l.frames)
		return ErrTerminated
	}
	return nil
}

// Draw presents the current state, highlighting the drop cell while a drag
// is active.
func (l *Loop) Draw(sink render.Sink) {
	var highlight *common.Rect
	if r, ok := l.ctrl.DropTarget(); ok {
		highlight = &r
	}
	l.coord.Present(sink, highlight)
}

// Run paces Update and Draw at tps without a window. It returns nil when the
// source closes and ctx.Err() when ctx is done first.
func (l *Loop) Run(ctx context.Context, sink render.Sink, tps int) error {
	if tps <= 0 {
		tps = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(tps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		err := l.Update()
		if errors.Is(err, ErrTerminated) {
			l.Draw(sink)
			return nil
		}
		if err != nil {
			return err
		}
		l.Draw(sink)
	}
}
