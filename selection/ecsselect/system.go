package ecsselect

import (
	"github.com/plus3/ooftn/ecs"

	"github.com/plus3/marquee/selection/gesture"
)

// SelectionSystem feeds one pointer sample per frame into a gesture controller.
type SelectionSystem struct {
	Host       *Host
	Controller *gesture.Controller[ecs.EntityId]
	Source     gesture.Source

	// Suspended, when set and true, skips input for the frame, e.g. while a debug
	// window has the mouse.
	Suspended func() bool
}

func (s *SelectionSystem) Execute(frame *ecs.UpdateFrame) {
	s.Host.Invalidate()

	if s.Suspended != nil && s.Suspended() {
		return
	}

	s.Controller.Step(s.Source.Pointer())
}
