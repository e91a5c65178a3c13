package harness

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/roach88/homeslot/internal/session"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string               // Assertion type for categorization
	Expected string               // Human-readable expected outcome
	Actual   string               // Human-readable actual outcome
	Trace    []session.TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFull trace:\n")
	for _, event := range e.Trace {
		fmt.Fprintf(&buf, "  %s\n", event)
	}

	return buf.String()
}

// assertFinalGrid checks every slot: listed slots hold the named item,
// all other slots are empty.
func assertFinalGrid(result *Result, assertion Assertion) error {
	expected := make([]string, len(result.Grid))
	for slot, id := range assertion.Slots {
		if slot < 0 || slot >= len(expected) {
			return &AssertionError{
				Type:     AssertFinalGrid,
				Expected: fmt.Sprintf("slot %d holds %s", slot, id),
				Actual:   fmt.Sprintf("grid has %d slots", len(expected)),
				Trace:    result.Trace,
			}
		}
		expected[slot] = id
	}

	if !slices.Equal(expected, result.Grid) {
		return &AssertionError{
			Type:     AssertFinalGrid,
			Expected: formatCells(expected),
			Actual:   formatCells(result.Grid),
			Trace:    result.Trace,
		}
	}
	return nil
}

// assertFinalDock checks the dock entries in order.
func assertFinalDock(result *Result, assertion Assertion) error {
	if !slices.Equal(assertion.Items, result.Dock) {
		return &AssertionError{
			Type:     AssertFinalDock,
			Expected: fmt.Sprintf("%v", assertion.Items),
			Actual:   fmt.Sprintf("%v", result.Dock),
			Trace:    result.Trace,
		}
	}
	return nil
}

// assertRegistry checks the registry as a set.
func assertRegistry(result *Result, assertion Assertion) error {
	expected := slices.Clone(assertion.Items)
	sort.Strings(expected)

	if !slices.Equal(expected, result.Registry) {
		return &AssertionError{
			Type:     AssertRegistry,
			Expected: fmt.Sprintf("%v", expected),
			Actual:   fmt.Sprintf("%v", result.Registry),
			Trace:    result.Trace,
		}
	}
	return nil
}

// assertTraceContains checks that some trace line contains the text.
func assertTraceContains(result *Result, assertion Assertion) error {
	for _, line := range result.TraceLines() {
		if strings.Contains(line, assertion.Text) {
			return nil
		}
	}

	return &AssertionError{
		Type:     AssertTraceContains,
		Expected: fmt.Sprintf("a line containing %q", assertion.Text),
		Actual:   "not found in trace",
		Trace:    result.Trace,
	}
}

// assertTraceCount checks the number of events of one kind.
func assertTraceCount(result *Result, assertion Assertion) error {
	count := 0
	for _, event := range result.Trace {
		if string(event.Kind) == assertion.Kind {
			count++
		}
	}

	if count != assertion.Count {
		return &AssertionError{
			Type:     AssertTraceCount,
			Expected: fmt.Sprintf("%d occurrences of %s", assertion.Count, assertion.Kind),
			Actual:   fmt.Sprintf("%d occurrences", count),
			Trace:    result.Trace,
		}
	}
	return nil
}

// assertJournalCount checks the number of journaled sessions.
func assertJournalCount(result *Result, assertion Assertion) error {
	if len(result.Sessions) != assertion.Count {
		return &AssertionError{
			Type:     AssertJournalCount,
			Expected: fmt.Sprintf("%d sessions", assertion.Count),
			Actual:   fmt.Sprintf("%d sessions", len(result.Sessions)),
			Trace:    result.Trace,
		}
	}
	return nil
}

// formatCells renders slots as "A . B", with "." for empty.
func formatCells(cells []string) string {
	out := make([]string, len(cells))
	for i, id := range cells {
		if id == "" {
			out[i] = "."
		} else {
			out[i] = id
		}
	}
	return strings.Join(out, " ")
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertFinalGrid:
			err = assertFinalGrid(result, assertion)
		case AssertFinalDock:
			err = assertFinalDock(result, assertion)
		case AssertRegistry:
			err = assertRegistry(result, assertion)
		case AssertTraceContains:
			err = assertTraceContains(result, assertion)
		case AssertTraceCount:
			err = assertTraceCount(result, assertion)
		case AssertJournalCount:
			err = assertJournalCount(result, assertion)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
