package annotation

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Labels is an immutable ordered collection of labels. Every method that
// changes the collection returns a new Labels; the receiver, and any slice
// previously obtained from it, is left untouched.
type Labels struct {
	items []Label
}

// NewLabels builds a collection from labels, assigning IDs where missing.
func NewLabels(labels ...Label) Labels {
	items := make([]Label, len(labels))
	for i, l := range labels {
		items[i] = l.withIDs()
	}
	return Labels{items: items}
}

// Len returns the number of labels.
func (ls Labels) Len() int {
	return len(ls.items)
}

// At returns a copy of the label at index i.
func (ls Labels) At(i int) (Label, error) {
	if err := ls.checkLabel(i); err != nil {
		return Label{}, err
	}
	return ls.items[i].clone(), nil
}

// All returns a copy of every label.
func (ls Labels) All() []Label {
	out := make([]Label, len(ls.items))
	for i, l := range ls.items {
		out[i] = l.clone()
	}
	return out
}

// IndexOf returns the current index of the label with the given ID.
func (ls Labels) IndexOf(id string) (int, error) {
	for i, l := range ls.items {
		if l.ID == id {
			return i, nil
		}
	}
	return NoIndex, fmt.Errorf("label %q: %w", id, ErrLabelNotFound)
}

// IndexByName returns the index of the first label named name.
func (ls Labels) IndexByName(name string) (int, bool) {
	for i, l := range ls.items {
		if l.Name == name {
			return i, true
		}
	}
	return NoIndex, false
}

// Names returns the label names in order.
func (ls Labels) Names() []string {
	names := make([]string, len(ls.items))
	for i, l := range ls.items {
		names[i] = l.Name
	}
	return names
}

// AnnotationIndexOf returns the index of the annotation with the given ID
// within label i.
func (ls Labels) AnnotationIndexOf(i int, annotationID string) (int, error) {
	if err := ls.checkLabel(i); err != nil {
		return NoIndex, err
	}
	for j, a := range ls.items[i].Annotations {
		if a.ID == annotationID {
			return j, nil
		}
	}
	return NoIndex, fmt.Errorf("annotation %q: %w", annotationID, ErrAnnotationNotFound)
}

// Append returns a collection with label added at the end.
func (ls Labels) Append(label Label) Labels {
	items := make([]Label, len(ls.items), len(ls.items)+1)
	copy(items, ls.items)
	return Labels{items: append(items, label.withIDs())}
}

// UpdateAt returns a collection where label i is rebuilt from patch. Editing
// always re-activates the label; its ID is preserved.
func (ls Labels) UpdateAt(i int, patch LabelPatch) (Labels, error) {
	if err := ls.checkLabel(i); err != nil {
		return ls, err
	}
	return ls.replace(i, Label{
		ID:          ls.items[i].ID,
		Name:        patch.Name,
		Color:       patch.Color,
		IsActive:    true,
		Annotations: patch.Annotations,
	}.withIDs()), nil
}

// RemoveAt returns a collection without label i. Later labels shift down by
// one, so indexes held elsewhere may go stale.
func (ls Labels) RemoveAt(i int) (Labels, error) {
	if err := ls.checkLabel(i); err != nil {
		return ls, err
	}
	return Labels{items: slices.Delete(slices.Clone(ls.items), i, i+1)}, nil
}

// ToggleAt returns a collection where label i has IsActive flipped.
func (ls Labels) ToggleAt(i int) (Labels, error) {
	if err := ls.checkLabel(i); err != nil {
		return ls, err
	}
	l := ls.items[i]
	l.IsActive = !l.IsActive
	return ls.replace(i, l), nil
}

// AppendAnnotation returns a collection where a is appended to label i.
func (ls Labels) AppendAnnotation(i int, a Annotation) (Labels, error) {
	if i == NoIndex {
		return ls, ErrNoLabel
	}
	if err := ls.checkLabel(i); err != nil {
		return ls, err
	}
	l := ls.items[i]
	anns := make([]Annotation, len(l.Annotations), len(l.Annotations)+1)
	copy(anns, l.Annotations)
	l.Annotations = append(anns, a.withID())
	return ls.replace(i, l), nil
}

// UpdateAnnotationAt returns a collection where annotation j of label i is
// replaced by a. The replaced annotation's ID carries over when a has none.
func (ls Labels) UpdateAnnotationAt(i, j int, a Annotation) (Labels, error) {
	if i == NoIndex {
		return ls, ErrNoLabel
	}
	if j == NoIndex {
		return ls, ErrNoAnnotation
	}
	if err := ls.checkAnnotation(i, j); err != nil {
		return ls, err
	}
	l := ls.items[i]
	if a.ID == "" {
		a.ID = l.Annotations[j].ID
	}
	l.Annotations = slices.Clone(l.Annotations)
	l.Annotations[j] = a
	return ls.replace(i, l), nil
}

// FindAnnotation returns the index of the first annotation in label i whose
// positions equal those of a. It returns NoIndex and ErrAnnotationNotFound
// when nothing matches.
func (ls Labels) FindAnnotation(i int, a Annotation) (int, error) {
	if i == NoIndex {
		return NoIndex, ErrNoLabel
	}
	if err := ls.checkLabel(i); err != nil {
		return NoIndex, err
	}
	idx := slices.IndexFunc(ls.items[i].Annotations, a.SameRange)
	if idx < 0 {
		return NoIndex, fmt.Errorf("label %d range %d..%d: %w", i, a.PositionFrom, a.PositionTo, ErrAnnotationNotFound)
	}
	return idx, nil
}

func (ls Labels) replace(i int, l Label) Labels {
	items := slices.Clone(ls.items)
	items[i] = l
	return Labels{items: items}
}

func (ls Labels) checkLabel(i int) error {
	if i < 0 || i >= len(ls.items) {
		return fmt.Errorf("label %d of %d: %w", i, len(ls.items), ErrIndexOutOfRange)
	}
	return nil
}

func (ls Labels) checkAnnotation(i, j int) error {
	if err := ls.checkLabel(i); err != nil {
		return err
	}
	if n := len(ls.items[i].Annotations); j < 0 || j >= n {
		return fmt.Errorf("annotation %d of %d in label %d: %w", j, n, i, ErrIndexOutOfRange)
	}
	return nil
}

// MarshalJSON encodes the collection as a JSON array of labels.
func (ls Labels) MarshalJSON() ([]byte, error) {
	if ls.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(ls.items)
}
