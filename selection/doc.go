// Package selection implements rectangle ("marquee") and click selection of entities
// viewed through a 2D screen.
//
// An Engine is generic over the entity reference type and never inspects entities
// itself. Hosts hand it a Capabilities bundle: how to enumerate selectable entities,
// where each entity sits in the world, how world positions project to the screen,
// whether the additive modifier is held, and how to show or hide the "selected"
// effect on an entity.
//
// A typical frame loop drives a drag with StartSelection, UpdateSelection and
// FinishSelection, and commits the final rectangle with SelectUnitsInArea:
//
//	engine := selection.New(caps)
//	engine.OnSelected(func(e Unit) { ... })
//
//	// mouse pressed
//	engine.StartSelection(cursor)
//	// mouse held, once per frame
//	engine.UpdateSelection(cursor)
//	// mouse released
//	engine.FinishSelection(cursor)
//	engine.SelectUnitsInArea(pressedAt, cursor)
//
// The drag preview only toggles effects. The committed selection changes through
// SelectUnitsInArea, SelectUnit, AddToSelection and ClearSelection.
package selection
