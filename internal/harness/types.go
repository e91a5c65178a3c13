package harness

import (
	"github.com/roach88/homeslot/internal/session"
	"github.com/roach88/homeslot/internal/store"
)

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every expectation, invariant and assertion held.
	Pass bool `json:"pass"`

	// Trace contains every coordinator event in seq order.
	Trace []session.TraceEvent `json:"trace"`

	// Errors contains failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Grid holds the final item id per slot, "" for empty.
	Grid []string `json:"grid"`

	// Dock holds the final dock ids in order.
	Dock []string `json:"dock"`

	// Registry holds the final registry ids, sorted.
	Registry []string `json:"registry"`

	// Sessions is the journal read back from the store.
	Sessions []store.SessionRecord `json:"sessions"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:     true,
		Trace:    []session.TraceEvent{},
		Errors:   []string{},
		Grid:     []string{},
		Dock:     []string{},
		Registry: []string{},
		Sessions: []store.SessionRecord{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// TraceLines renders the trace one event per line.
func (r *Result) TraceLines() []string {
	lines := make([]string, len(r.Trace))
	for i, ev := range r.Trace {
		lines[i] = ev.String()
	}
	return lines
}
