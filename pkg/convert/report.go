package convert

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SkippedElement records one element that produced no primitives,
// whether by failure or by having nothing to render.
type SkippedElement struct {
	Name   string
	Reason string
}

// Report summarizes one conversion run.
type Report struct {
	RunID    string
	Model    string
	Elements int
	// Primitives is the number of heads emitted.
	Primitives int
	Skipped    []SkippedElement
	// Clamped names elements whose subdivision plans hit the sub-cube
	// ceiling and were coarsened.
	Clamped []string
	// DegradedHeads counts heads painted with at least one fallback tile.
	DegradedHeads int
	Duration      time.Duration
}

// NewReport starts a report for a model with a fresh run id.
func NewReport(model string, elements int) Report {
	return Report{
		RunID:    uuid.NewString(),
		Model:    model,
		Elements: elements,
	}
}

// Summary renders the user-facing run summary.
func (r Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d elements -> %d heads in %s\n",
		r.Model, r.Elements, r.Primitives, r.Duration.Round(time.Millisecond))

	if r.DegradedHeads > 0 {
		fmt.Fprintf(&b, "  %d heads painted with the fallback texture\n", r.DegradedHeads)
	}
	for _, name := range r.Clamped {
		fmt.Fprintf(&b, "  clamped: %s (subdivision capped, fidelity reduced)\n", name)
	}
	for _, s := range r.Skipped {
		fmt.Fprintf(&b, "  skipped: %s (%s)\n", s.Name, s.Reason)
	}
	return b.String()
}
