// Package gesture turns per-frame pointer samples into drag and click selections on a
// selection.Engine. It knows nothing about a particular input library; adapters such
// as ebitenselect provide the samples.
package gesture

import (
	"math"

	"github.com/plus3/marquee/selection"
)

// DefaultDeadZone is how far, in pixels, the pointer must travel while pressed
// before a press becomes a drag.
const DefaultDeadZone = 4.0

// Pointer is the pointer state sampled once per frame.
type Pointer struct {
	Cursor  selection.Point
	Pressed bool
	// Cancel abandons the current drag; the gesture is ignored until release.
	Cancel bool
}

// Source produces one Pointer sample per frame.
type Source interface {
	Pointer() Pointer
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func() Pointer

func (f SourceFunc) Pointer() Pointer {
	return f()
}

// Controller drives an engine from pointer samples. A press that moves further than
// DeadZone becomes a drag and is committed on release; a press released inside the
// dead zone is a click and commits a square of ClickTolerance around the press point.
type Controller[T comparable] struct {
	DeadZone       float64
	ClickTolerance float64

	engine      *selection.Engine[T]
	prevPressed bool
	pressedAt   selection.Point
	dragging    bool
	cancelled   bool
}

// NewController creates a controller with DefaultDeadZone and exact clicks.
func NewController[T comparable](engine *selection.Engine[T]) *Controller[T] {
	return &Controller[T]{
		DeadZone: DefaultDeadZone,
		engine:   engine,
	}
}

// Dragging reports whether the current press has turned into a drag.
func (c *Controller[T]) Dragging() bool {
	return c.dragging
}

// Step consumes one frame of pointer state.
func (c *Controller[T]) Step(p Pointer) {
	switch {
	case p.Pressed && !c.prevPressed:
		c.press(p)
	case p.Pressed:
		c.hold(p)
	case c.prevPressed:
		c.release(p)
	}
	c.prevPressed = p.Pressed
}

func (c *Controller[T]) press(p Pointer) {
	c.pressedAt = p.Cursor
	c.dragging = false
	c.cancelled = p.Cancel
}

func (c *Controller[T]) hold(p Pointer) {
	if c.cancelled {
		return
	}
	if p.Cancel {
		c.Cancel()
		return
	}

	if !c.dragging && distance(c.pressedAt, p.Cursor) > c.DeadZone {
		c.dragging = true
		c.engine.StartSelection(c.pressedAt)
	}
	if c.dragging {
		c.engine.UpdateSelection(p.Cursor)
	}
}

func (c *Controller[T]) release(p Pointer) {
	defer func() {
		c.dragging = false
		c.cancelled = false
	}()

	if c.cancelled || p.Cancel {
		c.engine.CancelSelection()
		return
	}

	if c.dragging {
		c.engine.FinishSelection(p.Cursor)
		c.engine.SelectUnitsInArea(c.pressedAt, p.Cursor)
		return
	}

	area := selection.NormalizeRect(c.pressedAt, c.pressedAt).Inset(c.ClickTolerance)
	c.engine.SelectUnitsInArea(area.Min, area.Max)
}

// Cancel abandons the current gesture without committing anything.
func (c *Controller[T]) Cancel() {
	c.cancelled = true
	c.dragging = false
	c.engine.CancelSelection()
}

func distance(a, b selection.Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}
