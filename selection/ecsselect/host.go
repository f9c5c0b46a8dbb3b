package ecsselect

import (
	"iter"
	"slices"

	"github.com/kamstrup/intmap"
	"github.com/plus3/ooftn/ecs"

	"github.com/plus3/marquee/selection"
)

// Host adapts an ECS storage to the capabilities a selection engine needs.
//
// Walking every archetype for each preview pass would be wasteful, so the host keeps
// a cache of selectable ids and their world positions. The cache is rebuilt lazily,
// the first time the engine enumerates after Invalidate. Call Invalidate whenever
// entities were spawned, moved or deleted; SelectionSystem does so every frame.
type Host struct {
	storage *ecs.Storage
	camera  *Camera

	units *ecs.View[unitView]
	marks *ecs.View[markView]

	ids      []ecs.EntityId
	anchors  *intmap.Map[ecs.EntityId, selection.Vec3]
	stale    bool
	rebuilds int
}

// NewHost creates a host reading from storage and projecting through camera.
func NewHost(storage *ecs.Storage, camera *Camera) *Host {
	return &Host{
		storage: storage,
		camera:  camera,
		units:   ecs.NewView[unitView](storage),
		marks:   ecs.NewView[markView](storage),
		anchors: intmap.New[ecs.EntityId, selection.Vec3](256),
		stale:   true,
	}
}

// Camera returns the camera used for projection.
func (h *Host) Camera() *Camera {
	return h.camera
}

// Invalidate marks the entity cache out of date.
func (h *Host) Invalidate() {
	h.stale = true
}

// Rebuilds returns how many times the cache has been rebuilt.
func (h *Host) Rebuilds() int {
	return h.rebuilds
}

// Capabilities returns the capability bundle for an engine over this host.
// additive may be nil when there is no modifier key.
func (h *Host) Capabilities(additive func() bool) selection.Capabilities[ecs.EntityId] {
	return selection.Capabilities[ecs.EntityId]{
		Enumerate:     h.enumerate,
		Project:       h.camera.WorldToScreen,
		ResolveAnchor: h.anchor,
		AdditiveHeld:  additive,
		SetEffect:     h.highlight,
	}
}

// Attach subscribes the host's cache to engine's enumeration requests.
func (h *Host) Attach(engine *selection.Engine[ecs.EntityId]) selection.Subscription {
	return engine.OnEnumerate(h.sync)
}

// NewEngine creates an engine over h and attaches the host to it.
func NewEngine(h *Host, additive func() bool, opts ...selection.Option) *selection.Engine[ecs.EntityId] {
	engine := selection.New(h.Capabilities(additive), opts...)
	h.Attach(engine)
	return engine
}

// Highlighted reports whether id currently carries the selected effect.
func (h *Host) Highlighted(id ecs.EntityId) bool {
	mark := h.marks.Get(id)
	return mark != nil && mark.Selectable.Highlighted
}

func (h *Host) sync() {
	if !h.stale {
		return
	}

	h.ids = h.ids[:0]
	h.anchors.Clear()
	for id, unit := range h.units.Iter() {
		h.ids = append(h.ids, id)
		h.anchors.Put(id, selection.Vec3{
			X: float64(unit.Position.X),
			Y: float64(unit.Position.Y),
		})
	}
	// archetype iteration order is random
	slices.Sort(h.ids)

	h.stale = false
	h.rebuilds++
}

func (h *Host) enumerate() iter.Seq[ecs.EntityId] {
	return slices.Values(h.ids)
}

func (h *Host) anchor(id ecs.EntityId) (selection.Vec3, bool) {
	return h.anchors.Get(id)
}

func (h *Host) highlight(id ecs.EntityId, on bool) {
	if mark := h.marks.Get(id); mark != nil {
		mark.Selectable.Highlighted = on
	}
}
