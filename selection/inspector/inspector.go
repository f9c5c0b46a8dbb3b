// Package inspector renders a Dear ImGui window showing the state of a selection engine.
package inspector

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/marquee/selection"
)

// Summary is a point-in-time view of an engine, as shown by the window.
type Summary struct {
	Phase    selection.Phase
	Rect     selection.Rect
	Anchor   selection.Point
	Stats    selection.Stats
	Selected []string
}

// Summarize captures engine's state, naming entities with label.
func Summarize[T comparable](engine *selection.Engine[T], label func(T) string) Summary {
	s := Summary{
		Phase:    engine.Phase(),
		Rect:     engine.Rect(),
		Stats:    engine.Stats(),
		Selected: make([]string, 0, engine.Len()),
	}
	if engine.Dragging() {
		s.Anchor = engine.DragAnchor()
	}
	for entity := range engine.All() {
		s.Selected = append(s.Selected, label(entity))
	}
	return s
}

// Window is an ImGui window titled "Selection".
type Window[T comparable] struct {
	engine *selection.Engine[T]
	label  func(T) string

	historyFrames int
	history       []float32
	historyIndex  int
}

// NewWindow creates a window for engine. label names entities in the table; nil
// falls back to fmt's %v. historyFrames sizes the selection-size graph.
func NewWindow[T comparable](engine *selection.Engine[T], label func(T) string, historyFrames int) *Window[T] {
	if label == nil {
		label = func(entity T) string { return fmt.Sprintf("%v", entity) }
	}
	historyFrames = max(historyFrames, 1)
	return &Window[T]{
		engine:        engine,
		label:         label,
		historyFrames: historyFrames,
		history:       make([]float32, historyFrames),
	}
}

// History returns the recorded selection sizes, oldest first. This is the order
// the graph plots them in.
func (w *Window[T]) History() []float32 {
	out := make([]float32, 0, w.historyFrames)
	out = append(out, w.history[w.historyIndex:]...)
	return append(out, w.history[:w.historyIndex]...)
}

// Sample records the current selection size into the history graph.
// Render calls it once per frame.
func (w *Window[T]) Sample() {
	w.history[w.historyIndex] = float32(w.engine.Len())
	w.historyIndex = (w.historyIndex + 1) % w.historyFrames
}

// Render draws the window. Call it once per frame inside an ImGui frame.
func (w *Window[T]) Render() {
	s := Summarize(w.engine, w.label)
	w.Sample()

	if !imgui.BeginV("Selection", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Phase: %s", s.Phase))
	if s.Phase == selection.PhaseDragging {
		imgui.Text(fmt.Sprintf("Anchor: (%g,%g)", s.Anchor.X, s.Anchor.Y))
		imgui.Text(fmt.Sprintf("Rect: %s", s.Rect))
	}

	imgui.Separator()
	imgui.Text(fmt.Sprintf("Commits: %d", s.Stats.Commits))
	imgui.Text(fmt.Sprintf("Preview passes: %d", s.Stats.PreviewPasses))
	imgui.Text(fmt.Sprintf("Enumerations: %d", s.Stats.Enumerations))
	imgui.Text(fmt.Sprintf("Unresolved anchors: %d", s.Stats.Unresolved))

	imgui.Separator()
	imgui.Text("Selection size")
	plot := w.History()
	imgui.PlotLinesFloatPtr("##selsize", &plot[0], int32(len(plot)))

	imgui.Text(fmt.Sprintf("Selected: %d", len(s.Selected)))
	if imgui.Button("Clear") {
		w.engine.ClearSelection()
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("SelectionTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("#")
		imgui.TableSetupColumn("Entity")
		imgui.TableHeadersRow()

		for i, name := range s.Selected {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", i))
			imgui.TableNextColumn()
			imgui.Text(name)
		}

		imgui.EndTable()
	}

	imgui.End()
}
