// Package scenario replays scripted selection sessions against an engine and records
// everything the engine does. Scenarios are YAML files; traces are plain text, one
// event per line, so they diff well in golden files.
package scenario

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is a scripted selection session.
type Scenario struct {
	// Name identifies the scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what the scenario demonstrates.
	Description string `yaml:"description"`

	// Entities are placed directly in screen space, in enumeration order.
	Entities []Entity `yaml:"entities"`

	// Steps run in order against a fresh engine.
	Steps []Step `yaml:"steps"`
}

// Entity is a named unit in a scenario.
type Entity struct {
	Name string  `yaml:"name"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`

	// Hidden entities have no resolvable anchor.
	Hidden bool `yaml:"hidden,omitempty"`
}

// Step is one engine call, or an expectation about the engine's state.
type Step struct {
	Op string `yaml:"op"`

	// X and Y are the pointer for start, update and finish.
	X float64 `yaml:"x,omitempty"`
	Y float64 `yaml:"y,omitempty"`

	// From and To are the [x, y] corners for area.
	From []float64 `yaml:"from,omitempty"`
	To   []float64 `yaml:"to,omitempty"`

	// Additive holds the modifier for the duration of an area step.
	Additive bool `yaml:"additive,omitempty"`

	// Entity is the target of select and add.
	Entity string `yaml:"entity,omitempty"`

	// Selection is the expected selection, in order, for expect.
	Selection []string `yaml:"selection,omitempty"`

	// Phase optionally checks the drag phase ("Idle" or "Dragging") for expect.
	Phase string `yaml:"phase,omitempty"`
}

// Step operations.
const (
	OpStart  = "start"
	OpUpdate = "update"
	OpFinish = "finish"
	OpCancel = "cancel"
	OpArea   = "area"
	OpSelect = "select"
	OpAdd    = "add"
	OpClear  = "clear"
	OpExpect = "expect"
)

// Load reads a scenario file. Unknown fields are rejected so typos fail loudly.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a scenario document.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %q: %w", s.Name, err)
	}
	return &s, nil
}

// Validate checks that every step is well formed and refers to declared entities.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	declared := make(map[string]bool, len(s.Entities))
	for i, e := range s.Entities {
		if e.Name == "" {
			return fmt.Errorf("entities[%d]: name is required", i)
		}
		if declared[e.Name] {
			return fmt.Errorf("entities[%d]: duplicate name %q", i, e.Name)
		}
		declared[e.Name] = true
	}

	for i, step := range s.Steps {
		if err := validateStep(step, declared); err != nil {
			return fmt.Errorf("steps[%d]: %w", i, err)
		}
	}
	return nil
}

func validateStep(step Step, declared map[string]bool) error {
	switch step.Op {
	case OpStart, OpUpdate, OpFinish, OpCancel, OpClear:
		return nil
	case OpArea:
		if len(step.From) != 2 || len(step.To) != 2 {
			return fmt.Errorf("area needs from and to as [x, y]")
		}
		return nil
	case OpSelect, OpAdd:
		if step.Entity == "" {
			return fmt.Errorf("%s needs an entity", step.Op)
		}
		if !declared[step.Entity] {
			return fmt.Errorf("%s: unknown entity %q", step.Op, step.Entity)
		}
		return nil
	case OpExpect:
		for _, name := range step.Selection {
			if !declared[name] {
				return fmt.Errorf("expect: unknown entity %q", name)
			}
		}
		if step.Phase != "" && step.Phase != "Idle" && step.Phase != "Dragging" {
			return fmt.Errorf("expect: unknown phase %q", step.Phase)
		}
		return nil
	case "":
		return fmt.Errorf("op is required")
	default:
		return fmt.Errorf("unknown op %q", step.Op)
	}
}
