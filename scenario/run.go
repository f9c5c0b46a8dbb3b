package scenario

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/plus3/marquee/selection"
)

// Trace is the ordered record of a run: step markers (prefixed with "> "),
// effects, notifications and rectangle updates.
type Trace []string

// String renders one event per line.
func (t Trace) String() string {
	var b strings.Builder
	for _, line := range t {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// Result is the outcome of a run.
type Result struct {
	Name      string
	Trace     Trace
	Selection []string
	Phase     selection.Phase
	Stats     selection.Stats
}

// ExpectationError reports an expect step that did not hold.
type ExpectationError struct {
	Scenario string
	Step     int
	Want     []string
	Got      []string

	WantPhase string
	GotPhase  string
}

func (e *ExpectationError) Error() string {
	if e.WantPhase != "" && e.WantPhase != e.GotPhase {
		return fmt.Sprintf("scenario %q step %d: expected phase %s, got %s",
			e.Scenario, e.Step, e.WantPhase, e.GotPhase)
	}
	return fmt.Sprintf("scenario %q step %d: expected selection %v, got %v",
		e.Scenario, e.Step, e.Want, e.Got)
}

// stage is the in-memory world a scenario runs against.
type stage struct {
	order    []string
	pos      map[string]selection.Point
	hidden   map[string]bool
	additive bool
	trace    Trace
}

func newStage(entities []Entity) *stage {
	st := &stage{
		pos:    make(map[string]selection.Point, len(entities)),
		hidden: make(map[string]bool),
	}
	for _, e := range entities {
		st.order = append(st.order, e.Name)
		st.pos[e.Name] = selection.Pt(e.X, e.Y)
		if e.Hidden {
			st.hidden[e.Name] = true
		}
	}
	return st
}

func (st *stage) record(format string, args ...any) {
	st.trace = append(st.trace, fmt.Sprintf(format, args...))
}

func (st *stage) capabilities() selection.Capabilities[string] {
	return selection.Capabilities[string]{
		Enumerate: func() iter.Seq[string] {
			return slices.Values(st.order)
		},
		ResolveAnchor: func(name string) (selection.Vec3, bool) {
			p, ok := st.pos[name]
			if !ok || st.hidden[name] {
				return selection.Vec3{}, false
			}
			return selection.Vec3{X: p.X, Y: p.Y}, true
		},
		Project: func(v selection.Vec3) (selection.Point, bool) {
			return selection.Pt(v.X, v.Y), true
		},
		AdditiveHeld: func() bool {
			return st.additive
		},
		SetEffect: func(name string, on bool) {
			if on {
				st.record("effect %s on", name)
			} else {
				st.record("effect %s off", name)
			}
		},
	}
}

// Run replays s against a fresh engine. It stops at the first expect step that does
// not hold and returns the partial result together with an *ExpectationError.
func Run(s *Scenario, opts ...selection.Option) (*Result, error) {
	st := newStage(s.Entities)
	engine := selection.New(st.capabilities(), opts...)

	engine.OnSelected(func(name string) {
		st.record("selected %s", name)
	})
	engine.OnCleared(func() {
		st.record("cleared")
	})
	engine.OnRectChanged(func(r selection.Rect) {
		st.record("rect %s", r)
	})

	result := func() *Result {
		return &Result{
			Name:      s.Name,
			Trace:     st.trace,
			Selection: engine.Selection(),
			Phase:     engine.Phase(),
			Stats:     engine.Stats(),
		}
	}

	for i, step := range s.Steps {
		if err := st.apply(engine, step); err != nil {
			var expectErr *ExpectationError
			if errors.As(err, &expectErr) {
				expectErr.Scenario = s.Name
				expectErr.Step = i
			}
			return result(), err
		}
	}
	return result(), nil
}

func (st *stage) apply(engine *selection.Engine[string], step Step) error {
	at := selection.Pt(step.X, step.Y)

	switch step.Op {
	case OpStart:
		st.record("> start %s", at)
		engine.StartSelection(at)
	case OpUpdate:
		st.record("> update %s", at)
		engine.UpdateSelection(at)
	case OpFinish:
		st.record("> finish %s", at)
		engine.FinishSelection(at)
	case OpCancel:
		st.record("> cancel")
		engine.CancelSelection()
	case OpArea:
		from := selection.Pt(step.From[0], step.From[1])
		to := selection.Pt(step.To[0], step.To[1])
		if step.Additive {
			st.record("> area %s %s additive", from, to)
		} else {
			st.record("> area %s %s", from, to)
		}
		st.additive = step.Additive
		engine.SelectUnitsInArea(from, to)
		st.additive = false
	case OpSelect:
		st.record("> select %s", step.Entity)
		engine.SelectUnit(step.Entity)
	case OpAdd:
		st.record("> add %s", step.Entity)
		engine.AddToSelection(step.Entity)
	case OpClear:
		st.record("> clear")
		engine.ClearSelection()
	case OpExpect:
		return st.expect(engine, step)
	default:
		return fmt.Errorf("unknown op %q", step.Op)
	}
	return nil
}

func (st *stage) expect(engine *selection.Engine[string], step Step) error {
	want := step.Selection
	if want == nil {
		want = []string{}
	}
	if step.Phase != "" {
		st.record("> expect %v %s", want, step.Phase)
	} else {
		st.record("> expect %v", want)
	}

	got := engine.Selection()
	if got == nil {
		got = []string{}
	}
	gotPhase := engine.Phase().String()

	if !slices.Equal(want, got) || (step.Phase != "" && step.Phase != gotPhase) {
		return &ExpectationError{
			Want:      want,
			Got:       got,
			WantPhase: step.Phase,
			GotPhase:  gotPhase,
		}
	}
	return nil
}
