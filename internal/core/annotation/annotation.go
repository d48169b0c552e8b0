// Package annotation defines labels, their annotations, and the copy-on-write
// label collection the store mutates.
package annotation

import (
	"errors"
	"slices"

	"github.com/google/uuid"
)

// NoIndex marks an absent label or annotation index.
const NoIndex = -1

var (
	// ErrIndexOutOfRange is returned when an index does not address an element.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrNoLabel is returned when an operation is given NoIndex for its label.
	ErrNoLabel = errors.New("no label given")
	// ErrNoAnnotation is returned when an operation is given NoIndex for its annotation.
	ErrNoAnnotation = errors.New("no annotation given")
	// ErrAnnotationNotFound is returned when a value lookup matches nothing.
	ErrAnnotationNotFound = errors.New("annotation not found")
	// ErrLabelNotFound is returned when a label ID is unknown.
	ErrLabelNotFound = errors.New("label not found")
)

// Annotation is a labeled sub-range of the sequence. Positions are 1-based
// and inclusive; a range with PositionFrom > PositionTo runs in reverse.
type Annotation struct {
	ID           string `json:"id"            yaml:"id,omitempty"`
	PositionFrom int    `json:"position_from" yaml:"from"`
	PositionTo   int    `json:"position_to"   yaml:"to"`
	Reverse      bool   `json:"reverse"       yaml:"reverse,omitempty"`
	Note         string `json:"note,omitempty" yaml:"note,omitempty"`
}

// IsReverse reports whether the annotation runs against the sequence direction.
func (a Annotation) IsReverse() bool {
	return a.Reverse || a.PositionFrom > a.PositionTo
}

// Span returns the annotation's positions ordered low to high.
func (a Annotation) Span() (lo, hi int) {
	if a.PositionFrom > a.PositionTo {
		return a.PositionTo, a.PositionFrom
	}
	return a.PositionFrom, a.PositionTo
}

// Len returns the number of positions the annotation covers.
func (a Annotation) Len() int {
	lo, hi := a.Span()
	return hi - lo + 1
}

// SameRange reports whether both annotations cover the same positions in the
// same order.
func (a Annotation) SameRange(other Annotation) bool {
	return a.PositionFrom == other.PositionFrom && a.PositionTo == other.PositionTo
}

// Label is a named, colored, toggleable category owning annotations.
type Label struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Color       string       `json:"color"`
	IsActive    bool         `json:"is_active"`
	Annotations []Annotation `json:"annotations"`
}

// LabelPatch carries the fields UpdateAt rebuilds a label from.
type LabelPatch struct {
	Name        string
	Color       string
	Annotations []Annotation
}

// CurrentAnnotation identifies the annotation focused for editing. It never
// owns data and is not repaired when the referenced label or annotation is
// later removed.
type CurrentAnnotation struct {
	LabelIndex      int        `json:"label_index"`
	Annotation      Annotation `json:"annotation"`
	AnnotationIndex int        `json:"annotation_index"`
}

// NoCurrentAnnotation is the empty focus reference.
var NoCurrentAnnotation = CurrentAnnotation{LabelIndex: NoIndex, AnnotationIndex: NoIndex}

// Valid reports whether both indexes are set.
func (c CurrentAnnotation) Valid() bool {
	return c.LabelIndex != NoIndex && c.AnnotationIndex != NoIndex
}

func newID() string {
	return uuid.NewString()
}

// withID returns a with a fresh ID when it has none.
func (a Annotation) withID() Annotation {
	if a.ID == "" {
		a.ID = newID()
	}
	return a
}

// withIDs returns a copy of l with IDs assigned to it and every annotation
// lacking one. The annotation slice is always cloned.
func (l Label) withIDs() Label {
	if l.ID == "" {
		l.ID = newID()
	}
	anns := make([]Annotation, len(l.Annotations))
	for i, a := range l.Annotations {
		anns[i] = a.withID()
	}
	l.Annotations = anns
	return l
}

// clone returns a deep copy of l.
func (l Label) clone() Label {
	l.Annotations = slices.Clone(l.Annotations)
	return l
}
