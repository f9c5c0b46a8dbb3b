package selection

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"slices"

	"github.com/ErikKalkoken/go-set"
)

// Stats counts engine activity since construction.
type Stats struct {
	PreviewPasses int
	Commits       int
	Enumerations  int
	Unresolved    int
}

type dragSession struct {
	anchor Point
	active bool
	rect   Rect
}

// Engine owns a selection set and the drag state machine that feeds it.
// It is not safe for concurrent use; drive it from the host's update loop.
type Engine[T comparable] struct {
	caps    Capabilities[T]
	resolve func(T) (Vec3, bool)
	logger  *slog.Logger
	ctx     context.Context

	selected []T
	members  set.Set[T]
	drag     dragSession
	stats    Stats

	onSelected  *notifier[T]
	onCleared   *notifier[struct{}]
	onRect      *notifier[Rect]
	onEnumerate *notifier[struct{}]
}

// New creates an engine with an empty selection.
// It panics if Enumerate or Project is missing from caps.
func New[T comparable](caps Capabilities[T], opts ...Option) *Engine[T] {
	if err := caps.validate(); err != nil {
		panic(err)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	resolve, mode := caps.anchorResolver()
	cfg.logger.Debug("selection engine created", "anchors", mode)

	return &Engine[T]{
		caps:        caps,
		resolve:     resolve,
		logger:      cfg.logger,
		ctx:         cfg.ctx,
		members:     set.Of[T](),
		onSelected:  newNotifier[T](),
		onCleared:   newNotifier[struct{}](),
		onRect:      newNotifier[Rect](),
		onEnumerate: newNotifier[struct{}](),
	}
}

// OnSelected registers fn to run whenever an entity is added to the selection
// by SelectUnit or an area commit.
func (e *Engine[T]) OnSelected(fn func(T)) Subscription {
	return e.onSelected.subscribe(fn)
}

// OnCleared registers fn to run after every ClearSelection.
func (e *Engine[T]) OnCleared(fn func()) Subscription {
	return e.onCleared.subscribe(func(struct{}) { fn() })
}

// OnRectChanged registers fn to receive the drag rectangle on every update.
// When the drag ends fn receives the zero Rect. A drag anchored at the origin
// and held there also reports the zero Rect, so use Dragging to tell the two apart.
func (e *Engine[T]) OnRectChanged(fn func(Rect)) Subscription {
	return e.onRect.subscribe(fn)
}

// OnEnumerate registers fn to run right before the engine enumerates entities,
// giving hosts with expensive enumeration a chance to refresh a cache.
func (e *Engine[T]) OnEnumerate(fn func()) Subscription {
	return e.onEnumerate.subscribe(func(struct{}) { fn() })
}

// Phase returns the current drag state.
func (e *Engine[T]) Phase() Phase {
	if e.drag.active {
		return PhaseDragging
	}
	return PhaseIdle
}

// Dragging reports whether a drag session is open.
func (e *Engine[T]) Dragging() bool {
	return e.drag.active
}

// Rect returns the current drag rectangle, or the zero Rect when idle.
func (e *Engine[T]) Rect() Rect {
	return e.drag.rect
}

// DragAnchor returns the point the current drag started from.
func (e *Engine[T]) DragAnchor() Point {
	return e.drag.anchor
}

// Len returns the number of selected entities.
func (e *Engine[T]) Len() int {
	return len(e.selected)
}

// Contains reports whether entity is selected.
func (e *Engine[T]) Contains(entity T) bool {
	return e.members.Contains(entity)
}

// Selection returns a copy of the selected entities in insertion order.
func (e *Engine[T]) Selection() []T {
	return slices.Clone(e.selected)
}

// All returns an iterator over the selected entities in insertion order.
// The selection must not be modified while iterating.
func (e *Engine[T]) All() iter.Seq[T] {
	return slices.Values(e.selected)
}

// Stats returns activity counters.
func (e *Engine[T]) Stats() Stats {
	return e.stats
}

// StartSelection opens a drag session anchored at p.
func (e *Engine[T]) StartSelection(p Point) {
	e.drag = dragSession{
		anchor: p,
		active: true,
	}
	e.logger.Debug("drag started", "at", p)
}

// UpdateSelection grows the drag rectangle to p and marks every entity inside it
// with the selected effect. Entities that leave the rectangle keep their effect
// until the drag finishes. Does nothing when no drag is open.
func (e *Engine[T]) UpdateSelection(p Point) {
	if !e.drag.active {
		return
	}

	e.drag.rect = NormalizeRect(e.drag.anchor, p)
	e.stats.PreviewPasses++

	e.eachInRect(e.drag.rect, func(entity T) {
		e.setEffect(entity, true)
	})

	e.onRect.emit(e.ctx, e.drag.rect)
}

// FinishSelection settles the rectangle at p, removes the preview effect from every
// known entity and closes the drag. It does not commit anything: call
// SelectUnitsInArea afterwards to apply the selection. Does nothing when no drag is open.
func (e *Engine[T]) FinishSelection(p Point) {
	if !e.drag.active {
		return
	}

	e.UpdateSelection(p)
	e.logger.Debug("drag finished", "rect", e.drag.rect)
	e.endDrag(false)
}

// CancelSelection abandons the drag without committing. Preview effects are removed
// the same way FinishSelection removes them, then the selected entities get their
// effect back since no commit follows. Does nothing when no drag is open.
func (e *Engine[T]) CancelSelection() {
	if !e.drag.active {
		return
	}

	e.logger.Debug("drag cancelled", "rect", e.drag.rect)
	e.endDrag(true)
}

func (e *Engine[T]) endDrag(restore bool) {
	for entity := range e.enumerate() {
		e.setEffect(entity, false)
	}
	if restore {
		for _, entity := range e.selected {
			e.setEffect(entity, true)
		}
	}

	e.drag = dragSession{}
	e.onRect.emit(e.ctx, Rect{})
}

// Candidates returns the entities whose projected position lies inside r,
// in enumeration order.
func (e *Engine[T]) Candidates(r Rect) []T {
	var candidates []T
	e.eachInRect(r, func(entity T) {
		candidates = append(candidates, entity)
	})
	return candidates
}

// SelectUnitsInArea commits the entities inside the rectangle spanned by start and
// end. With the additive modifier held the candidates are appended to the current
// selection; otherwise they replace it. Clicking empty space without the modifier
// clears the selection, with the modifier it changes nothing.
func (e *Engine[T]) SelectUnitsInArea(start, end Point) {
	rect := NormalizeRect(start, end)
	candidates := e.Candidates(rect)
	additive := e.caps.AdditiveHeld != nil && e.caps.AdditiveHeld()
	e.stats.Commits++

	e.logger.Debug("area commit",
		"rect", rect,
		"candidates", len(candidates),
		"additive", additive,
	)

	if len(candidates) == 0 {
		if !additive {
			e.ClearSelection()
		}
		return
	}

	if !additive {
		e.ClearSelection()
	}

	for _, entity := range candidates {
		if !e.members.Contains(entity) {
			e.add(entity)
			e.setEffect(entity, true)
			e.onSelected.emit(e.ctx, entity)
		}
	}
}

// SelectUnit appends entity to the selection and fires the selected notification.
// It applies no effect. The zero value of T is ignored.
func (e *Engine[T]) SelectUnit(entity T) {
	var zero T
	if entity == zero {
		return
	}

	if !e.members.Contains(entity) {
		e.add(entity)
	}
	e.onSelected.emit(e.ctx, entity)
}

// AddToSelection appends entity unless it is already selected and applies the
// selected effect. It fires no notification. The zero value of T is ignored.
func (e *Engine[T]) AddToSelection(entity T) {
	var zero T
	if entity == zero || e.members.Contains(entity) {
		return
	}

	e.add(entity)
	e.setEffect(entity, true)
}

// ClearSelection removes the selected effect from every selected entity, empties the
// selection and fires the cleared notification. It panics with ErrNoEffectSink if
// there is something to deselect but no SetEffect capability.
func (e *Engine[T]) ClearSelection() {
	if len(e.selected) > 0 && e.caps.SetEffect == nil {
		panic(fmt.Errorf("clear %d selected entities: %w", len(e.selected), ErrNoEffectSink))
	}

	for _, entity := range e.selected {
		e.caps.SetEffect(entity, false)
	}

	clear(e.selected)
	e.selected = e.selected[:0]
	e.members = set.Of[T]()

	e.onCleared.emit(e.ctx, struct{}{})
}

func (e *Engine[T]) add(entity T) {
	e.selected = append(e.selected, entity)
	e.members.Add(entity)
}

func (e *Engine[T]) setEffect(entity T, selected bool) {
	if e.caps.SetEffect != nil {
		e.caps.SetEffect(entity, selected)
	}
}

func (e *Engine[T]) enumerate() iter.Seq[T] {
	e.stats.Enumerations++
	e.onEnumerate.emit(e.ctx, struct{}{})

	entities := e.caps.Enumerate()
	if entities == nil {
		return func(func(T) bool) {}
	}
	return entities
}

func (e *Engine[T]) eachInRect(r Rect, fn func(T)) {
	for entity := range e.enumerate() {
		p, ok := e.screenPosition(entity)
		if !ok {
			continue
		}
		if r.Contains(p) {
			fn(entity)
		}
	}
}

// screenPosition resolves and projects one entity. Failures are logged and
// reported as absent so a single bad entity never aborts a pass.
func (e *Engine[T]) screenPosition(entity T) (Point, bool) {
	anchor, ok := e.resolve(entity)
	if !ok {
		e.stats.Unresolved++
		e.logger.Debug("entity has no anchor", "entity", entity)
		return Point{}, false
	}

	p, ok := e.caps.Project(anchor)
	if !ok {
		e.stats.Unresolved++
		e.logger.Debug("entity anchor not on screen", "entity", entity, "anchor", anchor)
		return Point{}, false
	}
	return p, true
}
