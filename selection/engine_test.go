package selection_test

import (
	"context"
	"iter"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/marquee/selection"
)

func abcWorld() *testWorld {
	return newTestWorld().
		place("A", 10, 10).
		place("B", 50, 50).
		place("C", 200, 200)
}

func TestNew(t *testing.T) {
	t.Run("starts idle and empty", func(t *testing.T) {
		engine := selection.New(abcWorld().capabilities())
		assert.Equal(t, selection.PhaseIdle, engine.Phase())
		assert.False(t, engine.Dragging())
		assert.Equal(t, 0, engine.Len())
		assert.Empty(t, engine.Selection())
		assert.True(t, engine.Rect().IsZero())
	})

	t.Run("panics without enumerator", func(t *testing.T) {
		caps := abcWorld().capabilities()
		caps.Enumerate = nil
		assert.PanicsWithError(t, "Enumerate: selection: missing required capability", func() {
			selection.New(caps)
		})
	})

	t.Run("panics without projector", func(t *testing.T) {
		caps := abcWorld().capabilities()
		caps.Project = nil
		assert.PanicsWithError(t, "Project: selection: missing required capability", func() {
			selection.New(caps)
		})
	})
}

func TestAddToSelection(t *testing.T) {
	t.Run("never duplicates", func(t *testing.T) {
		w := abcWorld()
		engine := w.newEngine()

		for _, name := range []string{"A", "B", "A", "A", "C", "B"} {
			engine.AddToSelection(name)
		}

		assert.Equal(t, []string{"A", "B", "C"}, engine.Selection())
		assert.Equal(t, []string{"on A", "on B", "on C"}, w.events)
	})

	t.Run("ignores the zero entity", func(t *testing.T) {
		w := abcWorld()
		engine := w.newEngine()
		engine.AddToSelection("")
		assert.Equal(t, 0, engine.Len())
		assert.Empty(t, w.events)
	})

	t.Run("works without an effect sink", func(t *testing.T) {
		caps := abcWorld().capabilities()
		caps.SetEffect = nil
		engine := selection.New(caps)
		engine.AddToSelection("A")
		assert.True(t, engine.Contains("A"))
	})
}

func TestSelectUnit(t *testing.T) {
	t.Run("notifies without applying an effect", func(t *testing.T) {
		w := abcWorld()
		engine := w.newEngine()
		engine.SelectUnit("B")
		assert.Equal(t, []string{"B"}, engine.Selection())
		assert.Equal(t, []string{"selected B"}, w.events)
	})

	t.Run("keeps the set unique but notifies every call", func(t *testing.T) {
		w := abcWorld()
		engine := w.newEngine()
		engine.SelectUnit("B")
		engine.SelectUnit("B")
		assert.Equal(t, []string{"B"}, engine.Selection())
		assert.Equal(t, 2, w.count("selected B"))
	})

	t.Run("ignores the zero entity", func(t *testing.T) {
		w := abcWorld()
		engine := w.newEngine()
		engine.SelectUnit("")
		assert.Equal(t, 0, engine.Len())
		assert.Empty(t, w.events)
	})
}

func TestClearSelection(t *testing.T) {
	t.Run("deselects each entity once and notifies once", func(t *testing.T) {
		w := abcWorld()
		engine := w.newEngine()
		engine.AddToSelection("A")
		engine.AddToSelection("C")
		w.reset()

		engine.ClearSelection()

		assert.Equal(t, 0, engine.Len())
		assert.False(t, engine.Contains("A"))
		assert.Equal(t, []string{"off A", "off C", "cleared"}, w.events)
	})

	t.Run("empty selection still notifies", func(t *testing.T) {
		w := abcWorld()
		engine := w.newEngine()
		engine.ClearSelection()
		assert.Equal(t, []string{"cleared"}, w.events)
	})

	t.Run("no listeners is fine", func(t *testing.T) {
		engine := selection.New(abcWorld().capabilities())
		engine.AddToSelection("A")
		assert.NotPanics(t, engine.ClearSelection)
		assert.Equal(t, 0, engine.Len())
	})

	t.Run("empty selection tolerates a missing sink", func(t *testing.T) {
		caps := abcWorld().capabilities()
		caps.SetEffect = nil
		engine := selection.New(caps)
		assert.NotPanics(t, engine.ClearSelection)
	})

	t.Run("missing sink with a selection panics", func(t *testing.T) {
		caps := abcWorld().capabilities()
		caps.SetEffect = nil
		engine := selection.New(caps)
		engine.SelectUnit("A")

		assert.PanicsWithError(t, "clear 1 selected entities: selection: no effect sink configured", engine.ClearSelection)
	})

	t.Run("selection can be rebuilt afterwards", func(t *testing.T) {
		w := abcWorld()
		engine := w.newEngine()
		engine.AddToSelection("A")
		engine.ClearSelection()
		engine.AddToSelection("A")
		assert.Equal(t, []string{"A"}, engine.Selection())
	})
}

func TestSelectUnitsInArea(t *testing.T) {
	t.Run("replace selects the contained entities", func(t *testing.T) {
		w := abcWorld()
		engine := w.newEngine()

		engine.SelectUnitsInArea(selection.Pt(0, 0), selection.Pt(60, 60))

		assert.Equal(t, []string{"A", "B"}, engine.Selection())
		assert.False(t, engine.Contains("C"))
		assert.Equal(t, []string{
			"cleared",
			"on A", "selected A",
			"on B", "selected B",
		}, w.events)
	})

	t.Run("replace drops the previous selection", func(t *testing.T) {
		w := abcWorld()
		engine := w.newEngine()
		engine.AddToSelection("C")
		w.reset()

		engine.SelectUnitsInArea(selection.Pt(60, 60), selection.Pt(0, 0))

		assert.Equal(t, []string{"A", "B"}, engine.Selection())
		assert.Equal(t, []string{
			"off C", "cleared",
			"on A", "selected A",
			"on B", "selected B",
		}, w.events)
	})

	t.Run("additive appends after the existing selection", func(t *testing.T) {
		w := abcWorld()
		engine := w.newEngine()
		engine.AddToSelection("A")
		w.additive = true
		w.reset()

		engine.SelectUnitsInArea(selection.Pt(0, 0), selection.Pt(60, 60))

		assert.Equal(t, []string{"A", "B"}, engine.Selection())
		assert.Equal(t, []string{"on B", "selected B"}, w.events)
	})

	t.Run("additive never removes", func(t *testing.T) {
		w := abcWorld()
		engine := w.newEngine()
		engine.AddToSelection("C")
		w.additive = true

		engine.SelectUnitsInArea(selection.Pt(0, 0), selection.Pt(60, 60))

		assert.Equal(t, []string{"C", "A", "B"}, engine.Selection())
	})

	t.Run("empty area without modifier clears", func(t *testing.T) {
		w := abcWorld()
		engine := w.newEngine()
		engine.AddToSelection("A")
		engine.AddToSelection("B")
		w.reset()

		engine.SelectUnitsInArea(selection.Pt(100, 0), selection.Pt(120, 20))

		assert.Equal(t, 0, engine.Len())
		assert.Equal(t, 1, w.count("cleared"))
	})

	t.Run("empty area with modifier changes nothing", func(t *testing.T) {
		w := abcWorld()
		engine := w.newEngine()
		engine.AddToSelection("A")
		w.additive = true
		w.reset()

		engine.SelectUnitsInArea(selection.Pt(100, 0), selection.Pt(120, 20))

		assert.Equal(t, []string{"A"}, engine.Selection())
		assert.Empty(t, w.events)
	})

	t.Run("zero area selects exactly at the point", func(t *testing.T) {
		w := abcWorld()
		engine := w.newEngine()

		engine.SelectUnitsInArea(selection.Pt(50, 50), selection.Pt(50, 50))
		assert.Equal(t, []string{"B"}, engine.Selection())

		engine.SelectUnitsInArea(selection.Pt(51, 50), selection.Pt(51, 50))
		assert.Equal(t, 0, engine.Len())
	})

	t.Run("edges are inclusive", func(t *testing.T) {
		w := abcWorld()
		engine := w.newEngine()
		engine.SelectUnitsInArea(selection.Pt(10, 10), selection.Pt(50, 50))
		assert.Equal(t, []string{"A", "B"}, engine.Selection())
	})

	t.Run("modifier not set means replace", func(t *testing.T) {
		caps := abcWorld().capabilities()
		caps.AdditiveHeld = nil
		engine := selection.New(caps)
		engine.AddToSelection("C")

		engine.SelectUnitsInArea(selection.Pt(0, 0), selection.Pt(60, 60))
		assert.Equal(t, []string{"A", "B"}, engine.Selection())
	})

	t.Run("replace result equals the candidate set", func(t *testing.T) {
		areas := []selection.Rect{
			{Min: selection.Pt(0, 0), Max: selection.Pt(300, 300)},
			{Min: selection.Pt(40, 40), Max: selection.Pt(250, 250)},
			{Min: selection.Pt(0, 0), Max: selection.Pt(10, 10)},
			{Min: selection.Pt(199, 0), Max: selection.Pt(0, 199)},
		}
		for _, area := range areas {
			w := abcWorld()
			engine := w.newEngine()
			engine.AddToSelection("C")

			want := engine.Candidates(selection.NormalizeRect(area.Min, area.Max))
			engine.SelectUnitsInArea(area.Min, area.Max)

			assert.Equal(t, len(want), engine.Len(), "area %s", area)
			for _, name := range want {
				assert.True(t, engine.Contains(name), "area %s missing %s", area, name)
			}
		}
	})

	t.Run("duplicate enumeration does not duplicate the selection", func(t *testing.T) {
		w := abcWorld()
		w.order = append(w.order, "A")
		engine := w.newEngine()
		engine.SelectUnitsInArea(selection.Pt(0, 0), selection.Pt(60, 60))
		assert.Equal(t, []string{"A", "B"}, engine.Selection())
	})

	t.Run("counts commits", func(t *testing.T) {
		engine := abcWorld().newEngine()
		engine.SelectUnitsInArea(selection.Pt(0, 0), selection.Pt(1, 1))
		engine.SelectUnitsInArea(selection.Pt(0, 0), selection.Pt(60, 60))
		assert.Equal(t, 2, engine.Stats().Commits)
	})
}

func TestAnchorResolution(t *testing.T) {
	t.Run("unresolved anchors are skipped per entity", func(t *testing.T) {
		w := abcWorld().hide("A")
		engine := w.newEngine()

		engine.SelectUnitsInArea(selection.Pt(0, 0), selection.Pt(300, 300))

		assert.Equal(t, []string{"B", "C"}, engine.Selection())
		assert.Equal(t, 1, engine.Stats().Unresolved)
	})

	t.Run("projection failures are skipped per entity", func(t *testing.T) {
		w := abcWorld()
		caps := w.capabilities()
		caps.Project = func(v selection.Vec3) (selection.Point, bool) {
			if v.X > 100 {
				return selection.Point{}, false
			}
			return selection.Pt(v.X, v.Y), true
		}
		engine := selection.New(caps)

		engine.SelectUnitsInArea(selection.Pt(0, 0), selection.Pt(300, 300))

		assert.Equal(t, []string{"A", "B"}, engine.Selection())
		assert.Equal(t, 1, engine.Stats().Unresolved)
	})

	t.Run("entities can carry their own anchor", func(t *testing.T) {
		a := &anchoredUnit{name: "a", at: selection.Vec3{X: 5, Y: 5}}
		b := &anchoredUnit{name: "b", at: selection.Vec3{X: 500, Y: 5}}
		engine := selection.New(selection.Capabilities[*anchoredUnit]{
			Enumerate: func() iter.Seq[*anchoredUnit] {
				return slices.Values([]*anchoredUnit{a, b})
			},
			Project: func(v selection.Vec3) (selection.Point, bool) {
				return selection.Pt(v.X, v.Y), true
			},
			SetEffect: func(u *anchoredUnit, on bool) {
				u.highlighted = on
			},
		})

		engine.SelectUnitsInArea(selection.Pt(0, 0), selection.Pt(10, 10))

		assert.Equal(t, []*anchoredUnit{a}, engine.Selection())
		assert.True(t, a.highlighted)
		assert.False(t, b.highlighted)
	})

	t.Run("explicit resolver wins over the entity anchor", func(t *testing.T) {
		a := &anchoredUnit{name: "a", at: selection.Vec3{X: 5, Y: 5}}
		engine := selection.New(selection.Capabilities[*anchoredUnit]{
			Enumerate: func() iter.Seq[*anchoredUnit] {
				return slices.Values([]*anchoredUnit{a})
			},
			ResolveAnchor: func(*anchoredUnit) (selection.Vec3, bool) {
				return selection.Vec3{X: 1000, Y: 1000}, true
			},
			Project: func(v selection.Vec3) (selection.Point, bool) {
				return selection.Pt(v.X, v.Y), true
			},
		})

		assert.Empty(t, engine.Candidates(selection.NormalizeRect(selection.Pt(0, 0), selection.Pt(10, 10))))
	})

	t.Run("no anchor source excludes everything", func(t *testing.T) {
		caps := abcWorld().capabilities()
		caps.ResolveAnchor = nil
		engine := selection.New(caps)

		engine.SelectUnitsInArea(selection.Pt(0, 0), selection.Pt(300, 300))

		assert.Equal(t, 0, engine.Len())
		assert.Equal(t, 3, engine.Stats().Unresolved)
	})

	t.Run("nil enumeration is empty", func(t *testing.T) {
		caps := abcWorld().capabilities()
		caps.Enumerate = func() iter.Seq[string] { return nil }
		engine := selection.New(caps)
		assert.NotPanics(t, func() {
			engine.SelectUnitsInArea(selection.Pt(0, 0), selection.Pt(300, 300))
		})
	})
}

type anchoredUnit struct {
	name        string
	at          selection.Vec3
	highlighted bool
}

func (u *anchoredUnit) WorldAnchor() selection.Vec3 {
	return u.at
}

func TestDrag(t *testing.T) {
	t.Run("growing drag previews without committing", func(t *testing.T) {
		w := abcWorld()
		engine := w.newEngine()
		engine.AddToSelection("C")
		w.reset()

		engine.StartSelection(selection.Pt(0, 0))
		assert.Equal(t, selection.PhaseDragging, engine.Phase())
		assert.True(t, engine.Rect().IsZero())

		engine.UpdateSelection(selection.Pt(20, 20))
		engine.UpdateSelection(selection.Pt(40, 40))
		engine.UpdateSelection(selection.Pt(60, 60))
		assert.Equal(t, selection.NormalizeRect(selection.Pt(0, 0), selection.Pt(60, 60)), engine.Rect())

		engine.FinishSelection(selection.Pt(60, 60))

		assert.Equal(t, selection.PhaseIdle, engine.Phase())
		assert.Equal(t, []string{"C"}, engine.Selection())
		assert.Equal(t, []string{
			"on A", "rect (0,0)-(20,20)",
			"on A", "rect (0,0)-(40,40)",
			"on A", "on B", "rect (0,0)-(60,60)",
			"on A", "on B", "rect (0,0)-(60,60)",
			"off A", "off B", "off C", "rect (0,0)-(0,0)",
		}, w.events)
		assert.Equal(t, 4, engine.Stats().PreviewPasses)
	})

	t.Run("entities leaving the rectangle keep their preview until finish", func(t *testing.T) {
		w := abcWorld()
		engine := w.newEngine()

		engine.StartSelection(selection.Pt(0, 0))
		engine.UpdateSelection(selection.Pt(60, 60))
		engine.UpdateSelection(selection.Pt(20, 20))

		assert.Zero(t, w.count("off B"), "B left the rectangle but is not reverted mid-drag")

		engine.FinishSelection(selection.Pt(20, 20))
		assert.Equal(t, 1, w.count("off B"))
	})

	t.Run("drags in any direction normalize", func(t *testing.T) {
		engine := abcWorld().newEngine()
		engine.StartSelection(selection.Pt(60, 0))
		engine.UpdateSelection(selection.Pt(0, 60))
		assert.Equal(t, selection.Rect{Min: selection.Pt(0, 0), Max: selection.Pt(60, 60)}, engine.Rect())
		assert.Equal(t, selection.Pt(60, 0), engine.DragAnchor())
	})

	t.Run("finish then commit", func(t *testing.T) {
		w := abcWorld()
		engine := w.newEngine()
		start := selection.Pt(0, 0)

		engine.StartSelection(start)
		engine.UpdateSelection(selection.Pt(60, 60))
		engine.FinishSelection(selection.Pt(60, 60))
		engine.SelectUnitsInArea(start, selection.Pt(60, 60))

		assert.Equal(t, []string{"A", "B"}, engine.Selection())
	})

	t.Run("update and finish are ignored when idle", func(t *testing.T) {
		w := abcWorld()
		engine := w.newEngine()

		engine.UpdateSelection(selection.Pt(60, 60))
		engine.FinishSelection(selection.Pt(60, 60))
		engine.CancelSelection()

		assert.Empty(t, w.events)
		assert.Equal(t, 0, engine.Stats().Enumerations)
	})

	t.Run("cancel clears previews without committing", func(t *testing.T) {
		w := abcWorld()
		engine := w.newEngine()

		engine.StartSelection(selection.Pt(0, 0))
		engine.UpdateSelection(selection.Pt(60, 60))
		w.reset()
		engine.CancelSelection()

		assert.False(t, engine.Dragging())
		assert.Equal(t, 0, engine.Len())
		assert.Equal(t, []string{"off A", "off B", "off C", "rect (0,0)-(0,0)"}, w.events)
	})

	t.Run("cancel restores the effect on the selection", func(t *testing.T) {
		w := abcWorld()
		engine := w.newEngine()
		engine.SelectUnit("C")

		engine.StartSelection(selection.Pt(0, 0))
		engine.UpdateSelection(selection.Pt(60, 60))
		w.reset()
		engine.CancelSelection()

		assert.Equal(t, []string{"C"}, engine.Selection())
		assert.Equal(t, []string{"off A", "off B", "off C", "on C", "rect (0,0)-(0,0)"}, w.events)
	})

	t.Run("restarting re-anchors the drag", func(t *testing.T) {
		engine := abcWorld().newEngine()
		engine.StartSelection(selection.Pt(0, 0))
		engine.UpdateSelection(selection.Pt(60, 60))
		engine.StartSelection(selection.Pt(100, 100))

		assert.True(t, engine.Dragging())
		assert.True(t, engine.Rect().IsZero())
		assert.Equal(t, selection.Pt(100, 100), engine.DragAnchor())
	})

	t.Run("preview works without an effect sink", func(t *testing.T) {
		caps := abcWorld().capabilities()
		caps.SetEffect = nil
		engine := selection.New(caps)

		var rects []selection.Rect
		engine.OnRectChanged(func(r selection.Rect) { rects = append(rects, r) })

		engine.StartSelection(selection.Pt(0, 0))
		engine.UpdateSelection(selection.Pt(60, 60))
		engine.FinishSelection(selection.Pt(60, 60))

		require.Len(t, rects, 3)
		assert.True(t, rects[2].IsZero())
	})
}

func TestNotifications(t *testing.T) {
	t.Run("listeners run in registration order", func(t *testing.T) {
		engine := selection.New(abcWorld().capabilities())

		var order []int
		for i := range 3 {
			engine.OnSelected(func(string) { order = append(order, i) })
		}

		engine.SelectUnit("A")
		assert.Equal(t, []int{0, 1, 2}, order)
	})

	t.Run("registration order survives a cancel", func(t *testing.T) {
		engine := selection.New(abcWorld().capabilities())

		var order []int
		var subs []selection.Subscription
		for i := range 4 {
			subs = append(subs, engine.OnSelected(func(string) { order = append(order, i) }))
		}

		subs[0].Cancel()
		engine.SelectUnit("A")
		assert.Equal(t, []int{1, 2, 3}, order)

		order = nil
		subs[2].Cancel()
		engine.OnSelected(func(string) { order = append(order, 4) })
		engine.SelectUnit("A")
		assert.Equal(t, []int{1, 3, 4}, order)
	})

	t.Run("cancelled context still delivers", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		w := abcWorld()
		engine := w.record(selection.New(w.capabilities(), selection.WithContext(ctx)))

		var hooks int
		engine.OnEnumerate(func() { hooks++ })

		engine.SelectUnit("A")
		engine.ClearSelection()
		engine.SelectUnitsInArea(selection.Pt(0, 0), selection.Pt(1, 1))

		assert.Equal(t, 1, w.count("selected A"))
		assert.Equal(t, 2, w.count("cleared"))
		assert.Equal(t, 1, hooks)
	})

	t.Run("cancelled listeners stop receiving", func(t *testing.T) {
		engine := selection.New(abcWorld().capabilities())

		var first, second int
		sub := engine.OnCleared(func() { first++ })
		engine.OnCleared(func() { second++ })

		engine.ClearSelection()
		sub.Cancel()
		sub.Cancel()
		engine.ClearSelection()

		assert.Equal(t, 1, first)
		assert.Equal(t, 2, second)
	})

	t.Run("zero subscription cancel is harmless", func(t *testing.T) {
		var sub selection.Subscription
		assert.NotPanics(t, sub.Cancel)
	})

	t.Run("enumerate hook fires before enumeration", func(t *testing.T) {
		w := abcWorld()
		var calls []string
		caps := w.capabilities()
		enumerate := caps.Enumerate
		caps.Enumerate = func() iter.Seq[string] {
			calls = append(calls, "enumerate")
			return enumerate()
		}
		engine := selection.New(caps)
		engine.OnEnumerate(func() { calls = append(calls, "hook") })

		engine.SelectUnitsInArea(selection.Pt(0, 0), selection.Pt(1, 1))

		assert.Equal(t, []string{"hook", "enumerate"}, calls)
		assert.Equal(t, 1, engine.Stats().Enumerations)
	})
}

func TestSelectionReadOnly(t *testing.T) {
	engine := abcWorld().newEngine()
	engine.AddToSelection("A")
	engine.AddToSelection("B")

	snapshot := engine.Selection()
	snapshot[0] = "Z"

	assert.Equal(t, []string{"A", "B"}, engine.Selection())
	assert.Equal(t, []string{"A", "B"}, slices.Collect(engine.All()))
}
