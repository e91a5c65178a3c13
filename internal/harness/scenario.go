package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/homeslot/internal/zone"
)

// Scenario defines one gesture test.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Grid is the number of grid slots. Zero means grid.DefaultSize.
	Grid int `yaml:"grid,omitempty"`

	// Dock is the dock capacity. Zero means dock.DefaultCapacity.
	Dock int `yaml:"dock,omitempty"`

	// Setup seeds the containers before the first step.
	Setup Setup `yaml:"setup,omitempty"`

	// Steps are gesture events replayed in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final state and trace.
	Assertions []Assertion `yaml:"assertions"`
}

// Setup is the initial layout. Item labels equal their ids.
type Setup struct {
	Grid map[int]string `yaml:"grid,omitempty"`
	Dock []string       `yaml:"dock,omitempty"`
}

// Step is one gesture event. Exactly one of the event fields is set.
type Step struct {
	Start *StartStep `yaml:"start,omitempty"`
	Enter string     `yaml:"enter,omitempty"`
	Exit  string     `yaml:"exit,omitempty"`
	Drop  *DropStep  `yaml:"drop,omitempty"`
	End   *EndStep   `yaml:"end,omitempty"`

	// Move is the id of a dock item to quick-move onto the grid.
	Move string `yaml:"move,omitempty"`

	// Expect is checked against the step's result, if present.
	Expect *Expect `yaml:"expect,omitempty"`
}

// StartStep begins a drag.
type StartStep struct {
	Item string `yaml:"item"`

	// From is the origin: home, dock, drawer or dockref.
	From string `yaml:"from"`

	// Slot is the grid slot for a home origin.
	Slot *int `yaml:"slot,omitempty"`
}

// DropStep drops onto a zone.
type DropStep struct {
	Zone string `yaml:"zone"`

	// Target is the slot under the pointer for the cell zone.
	Target *int `yaml:"target,omitempty"`
}

// EndStep ends the drag with the host-reported drop result.
type EndStep struct {
	Accepted bool `yaml:"accepted"`
}

// Expect is a subset match on a step result. Unset fields are not checked.
type Expect struct {
	// Accepted checks a drop decision or the session outcome.
	Accepted *bool `yaml:"accepted,omitempty"`

	// Reason checks a drop rejection reason.
	Reason string `yaml:"reason,omitempty"`

	// Index checks the drop landing slot, the restore position or the
	// quick-move slot.
	Index *int `yaml:"index,omitempty"`

	// Restored checks whether End rolled the item back.
	Restored *bool `yaml:"restored,omitempty"`

	// Error checks the error code the step failed with, e.g. NO_SESSION.
	Error string `yaml:"error,omitempty"`
}

// Assertion validates the final state or the trace.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Slots is the expected occupied slots (final_grid).
	Slots map[int]string `yaml:"slots,omitempty"`

	// Items is the expected ids (final_dock, registry).
	Items []string `yaml:"items,omitempty"`

	// Text is the expected trace line fragment (trace_contains).
	Text string `yaml:"text,omitempty"`

	// Kind is the trace event kind to count (trace_count).
	Kind string `yaml:"kind,omitempty"`

	// Count is the expected number of occurrences (trace_count, journal_count).
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertFinalGrid     = "final_grid"
	AssertFinalDock     = "final_dock"
	AssertRegistry      = "registry"
	AssertTraceContains = "trace_contains"
	AssertTraceCount    = "trace_count"
	AssertJournalCount  = "journal_count"
)

// Kind returns the name of the step's event, or "" if none is set.
func (s Step) Kind() string {
	switch {
	case s.Start != nil:
		return "start"
	case s.Enter != "":
		return "enter"
	case s.Exit != "":
		return "exit"
	case s.Drop != nil:
		return "drop"
	case s.End != nil:
		return "end"
	case s.Move != "":
		return "move"
	default:
		return ""
	}
}

func (s Step) eventCount() int {
	n := 0
	for _, set := range []bool{s.Start != nil, s.Enter != "", s.Exit != "", s.Drop != nil, s.End != nil, s.Move != ""} {
		if set {
			n++
		}
	}
	return n
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Grid < 0 || s.Dock < 0 {
		return fmt.Errorf("grid and dock sizes must be non-negative")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if n := step.eventCount(); n != 1 {
			return fmt.Errorf("steps[%d]: exactly one event is required, got %d", i, n)
		}
		if step.Start != nil {
			if step.Start.Item == "" {
				return fmt.Errorf("steps[%d].start: item is required", i)
			}
			origin, err := zone.ParseOrigin(step.Start.From)
			if err != nil {
				return fmt.Errorf("steps[%d].start: %w", i, err)
			}
			if origin == zone.OriginHomeGrid && step.Start.Slot == nil {
				return fmt.Errorf("steps[%d].start: slot is required for a home origin", i)
			}
		}
		if step.Drop != nil && step.Drop.Zone == "" {
			return fmt.Errorf("steps[%d].drop: zone is required", i)
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertFinalGrid, AssertFinalDock, AssertRegistry:
	case AssertTraceContains:
		if a.Text == "" {
			return fmt.Errorf("assertions[%d]: text is required for trace_contains", index)
		}
	case AssertTraceCount:
		if a.Kind == "" {
			return fmt.Errorf("assertions[%d]: kind is required for trace_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	case AssertJournalCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for journal_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
