// Package ecsselect hosts a selection engine on top of an ooftn ECS storage.
// Entities with both a Position and a Selectable component can be picked; the
// selected effect is the Selectable.Highlighted flag.
package ecsselect

import (
	"github.com/plus3/ooftn/ecs"
)

// Position is an entity's location in world cells.
type Position struct {
	X, Y float32
}

// Selectable marks an entity as pickable. Highlighted is set while the entity is
// selected or inside a drag preview.
type Selectable struct {
	Highlighted bool
}

// Register adds the selection components to registry.
func Register(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Selectable](registry)
}

type unitView struct {
	*Position
	*Selectable
}

type markView struct {
	*Selectable
}
