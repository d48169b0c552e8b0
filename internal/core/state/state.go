// Package state defines the snapshot the store owns and publishes.
package state

import (
	"github.com/colonyops/seqmark/internal/core/annotation"
	"github.com/colonyops/seqmark/internal/core/selection"
	"github.com/colonyops/seqmark/internal/core/sequence"
)

// State is the complete editor state. Collections inside it are immutable
// values, so a copy of State is a consistent snapshot: later store mutations
// replace fields in the store's own copy and never reach into this one.
type State struct {
	Sequence          sequence.Sequence            `json:"sequence"`
	Bounds            sequence.Bounds              `json:"bounds"`
	Labels            annotation.Labels            `json:"labels"`
	Selection         selection.Selection          `json:"selection"`
	CurrentAnnotation annotation.CurrentAnnotation `json:"current_annotation"`
	Source            string                       `json:"source,omitempty"`
	// Version increases by one with every change the store makes. Snapshots
	// published from different goroutines may arrive out of order; the one
	// with the higher Version is the newer.
	Version uint64 `json:"version"`
}

// New returns an empty state holding labels.
func New(labels annotation.Labels) State {
	return State{
		Labels:            labels,
		Bounds:            sequence.Bounds{},
		Selection:         selection.Empty,
		CurrentAnnotation: annotation.NoCurrentAnnotation,
	}
}

// SelectedText returns the symbols covered by a complete selection.
func (s State) SelectedText() (string, bool) {
	from, to, ok := s.Selection.Span()
	if !ok {
		return "", false
	}
	return s.Sequence.Slice(from+1, to+1), true
}

// ActiveLabels returns the labels whose IsActive flag is set.
func (s State) ActiveLabels() []annotation.Label {
	var out []annotation.Label
	for _, l := range s.Labels.All() {
		if l.IsActive {
			out = append(out, l)
		}
	}
	return out
}

// AnnotationCount returns the number of annotations across all labels.
func (s State) AnnotationCount() int {
	n := 0
	for _, l := range s.Labels.All() {
		n += len(l.Annotations)
	}
	return n
}
