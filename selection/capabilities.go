package selection

import (
	"fmt"
	"iter"
	"reflect"
)

// Capabilities is the set of host services an Engine depends on.
// Enumerate and Project are required, everything else is optional.
type Capabilities[T comparable] struct {
	// Enumerate returns every entity that can currently be selected.
	// It is called at least once per UpdateSelection, so it must be cheap or cached.
	Enumerate func() iter.Seq[T]

	// Project maps a world anchor to screen space. Returning false excludes the
	// entity from the current pass, e.g. when it is behind the camera.
	Project func(Vec3) (Point, bool)

	// ResolveAnchor maps an entity to its world anchor. When nil, entities that
	// implement Anchored are asked directly.
	ResolveAnchor func(T) (Vec3, bool)

	// AdditiveHeld reports whether the "add to selection" modifier is held.
	// A nil func means the modifier is never held.
	AdditiveHeld func() bool

	// SetEffect shows (true) or hides (false) the selected effect on an entity.
	// Only ClearSelection insists on it; other call sites skip it when nil.
	SetEffect func(entity T, selected bool)
}

// Anchored is implemented by entities that know their own world position.
type Anchored interface {
	WorldAnchor() Vec3
}

func (c Capabilities[T]) validate() error {
	if c.Enumerate == nil {
		return fmt.Errorf("Enumerate: %w", ErrMissingCapability)
	}
	if c.Project == nil {
		return fmt.Errorf("Project: %w", ErrMissingCapability)
	}
	return nil
}

// anchorResolver picks the anchor lookup once, at construction time.
func (c Capabilities[T]) anchorResolver() (func(T) (Vec3, bool), string) {
	if c.ResolveAnchor != nil {
		return c.ResolveAnchor, "resolver"
	}

	if reflect.TypeFor[T]().Implements(reflect.TypeFor[Anchored]()) {
		return func(entity T) (Vec3, bool) {
			anchored, ok := any(entity).(Anchored)
			if !ok {
				return Vec3{}, false
			}
			return anchored.WorldAnchor(), true
		}, "anchored"
	}

	return func(T) (Vec3, bool) {
		return Vec3{}, false
	}, "none"
}
