package selection_test

import (
	"fmt"
	"iter"
	"slices"

	"github.com/plus3/marquee/selection"
)

// testWorld is a host with named entities placed directly in screen space.
type testWorld struct {
	order    []string
	pos      map[string]selection.Point
	hidden   map[string]bool
	additive bool
	events   []string
}

func newTestWorld() *testWorld {
	return &testWorld{
		pos:    make(map[string]selection.Point),
		hidden: make(map[string]bool),
	}
}

func (w *testWorld) place(name string, x, y float64) *testWorld {
	w.order = append(w.order, name)
	w.pos[name] = selection.Pt(x, y)
	return w
}

func (w *testWorld) hide(name string) *testWorld {
	w.hidden[name] = true
	return w
}

func (w *testWorld) capabilities() selection.Capabilities[string] {
	return selection.Capabilities[string]{
		Enumerate: func() iter.Seq[string] {
			return slices.Values(w.order)
		},
		ResolveAnchor: func(name string) (selection.Vec3, bool) {
			p, ok := w.pos[name]
			if !ok || w.hidden[name] {
				return selection.Vec3{}, false
			}
			return selection.Vec3{X: p.X, Y: p.Y}, true
		},
		Project: func(v selection.Vec3) (selection.Point, bool) {
			return selection.Pt(v.X, v.Y), true
		},
		AdditiveHeld: func() bool {
			return w.additive
		},
		SetEffect: func(name string, on bool) {
			if on {
				w.events = append(w.events, "on "+name)
			} else {
				w.events = append(w.events, "off "+name)
			}
		},
	}
}

// newEngine builds an engine over w and records every notification into w.events.
func (w *testWorld) newEngine() *selection.Engine[string] {
	return w.record(selection.New(w.capabilities()))
}

func (w *testWorld) record(engine *selection.Engine[string]) *selection.Engine[string] {
	engine.OnSelected(func(name string) {
		w.events = append(w.events, "selected "+name)
	})
	engine.OnCleared(func() {
		w.events = append(w.events, "cleared")
	})
	engine.OnRectChanged(func(r selection.Rect) {
		w.events = append(w.events, fmt.Sprintf("rect %s", r))
	})
	return engine
}

func (w *testWorld) reset() {
	w.events = nil
}

func (w *testWorld) count(event string) int {
	n := 0
	for _, e := range w.events {
		if e == event {
			n++
		}
	}
	return n
}
