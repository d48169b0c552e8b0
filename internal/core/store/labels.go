package store

import (
	"errors"

	"github.com/colonyops/seqmark/internal/core/annotation"
	"github.com/colonyops/seqmark/internal/core/eventbus"
)

// updateLabels applies fn to the label collection and publishes
// state-changed when it succeeds.
func (s *Store) updateLabels(op string, fn func(annotation.Labels) (annotation.Labels, error)) error {
	s.mu.Lock()
	next, err := fn(s.state.Labels)
	if err != nil {
		s.mu.Unlock()
		s.log.Debug().Str("op", op).Err(err).Msg("operation rejected")
		return err
	}
	s.state.Labels = next
	s.state.Version++
	snap := s.state
	s.mu.Unlock()

	s.log.Debug().Str("op", op).Int("labels", next.Len()).Msg("labels changed")
	s.bus.PublishStateChanged(eventbus.StateChangedPayload{State: snap})
	return nil
}

// AddLabel appends label and returns the ID it was stored under.
func (s *Store) AddLabel(label annotation.Label) string {
	var id string
	_ = s.updateLabels("add-label", func(ls annotation.Labels) (annotation.Labels, error) {
		next := ls.Append(label)
		added, err := next.At(next.Len() - 1)
		id = added.ID
		return next, err
	})
	return id
}

// UpdateLabelAt rebuilds label i from patch and re-activates it.
func (s *Store) UpdateLabelAt(i int, patch annotation.LabelPatch) error {
	return s.updateLabels("update-label", func(ls annotation.Labels) (annotation.Labels, error) {
		return ls.UpdateAt(i, patch)
	})
}

// RemoveLabelAt deletes label i. Later labels shift down by one.
func (s *Store) RemoveLabelAt(i int) error {
	return s.updateLabels("remove-label", func(ls annotation.Labels) (annotation.Labels, error) {
		return ls.RemoveAt(i)
	})
}

// ToggleLabelAt flips the active flag of label i.
func (s *Store) ToggleLabelAt(i int) error {
	return s.updateLabels("toggle-label", func(ls annotation.Labels) (annotation.Labels, error) {
		return ls.ToggleAt(i)
	})
}

// AddAnnotation appends a to label i and returns the annotation's ID.
// Passing annotation.NoIndex fails with annotation.ErrNoLabel.
func (s *Store) AddAnnotation(i int, a annotation.Annotation) (string, error) {
	var id string
	err := s.updateLabels("add-annotation", func(ls annotation.Labels) (annotation.Labels, error) {
		next, err := ls.AppendAnnotation(i, a)
		if err != nil {
			return ls, err
		}
		l, _ := next.At(i)
		id = l.Annotations[len(l.Annotations)-1].ID
		return next, nil
	})
	return id, err
}

// UpdateAnnotationAt replaces annotation j of label i with a.
func (s *Store) UpdateAnnotationAt(i, j int, a annotation.Annotation) error {
	return s.updateLabels("update-annotation", func(ls annotation.Labels) (annotation.Labels, error) {
		return ls.UpdateAnnotationAt(i, j, a)
	})
}

// UpdateLabel is UpdateLabelAt addressed by label ID.
func (s *Store) UpdateLabel(id string, patch annotation.LabelPatch) error {
	return s.updateLabels("update-label", func(ls annotation.Labels) (annotation.Labels, error) {
		i, err := ls.IndexOf(id)
		if err != nil {
			return ls, err
		}
		return ls.UpdateAt(i, patch)
	})
}

// RemoveLabel is RemoveLabelAt addressed by label ID.
func (s *Store) RemoveLabel(id string) error {
	return s.updateLabels("remove-label", func(ls annotation.Labels) (annotation.Labels, error) {
		i, err := ls.IndexOf(id)
		if err != nil {
			return ls, err
		}
		return ls.RemoveAt(i)
	})
}

// ToggleLabel is ToggleLabelAt addressed by label ID.
func (s *Store) ToggleLabel(id string) error {
	return s.updateLabels("toggle-label", func(ls annotation.Labels) (annotation.Labels, error) {
		i, err := ls.IndexOf(id)
		if err != nil {
			return ls, err
		}
		return ls.ToggleAt(i)
	})
}

// AddAnnotationTo is AddAnnotation addressed by label ID.
func (s *Store) AddAnnotationTo(labelID string, a annotation.Annotation) (string, error) {
	var id string
	err := s.updateLabels("add-annotation", func(ls annotation.Labels) (annotation.Labels, error) {
		i, err := ls.IndexOf(labelID)
		if err != nil {
			return ls, err
		}
		next, err := ls.AppendAnnotation(i, a)
		if err != nil {
			return ls, err
		}
		l, _ := next.At(i)
		id = l.Annotations[len(l.Annotations)-1].ID
		return next, nil
	})
	return id, err
}

// SelectAnnotation focuses the first annotation of label i covering the same
// positions as a and publishes current-annotation-changed. When no annotation
// matches, the focus is still published with annotation.NoIndex and
// annotation.ErrAnnotationNotFound is returned. Other failures publish
// nothing.
func (s *Store) SelectAnnotation(i int, a annotation.Annotation) (annotation.CurrentAnnotation, error) {
	s.mu.Lock()
	j, err := s.state.Labels.FindAnnotation(i, a)
	if err != nil && !errors.Is(err, annotation.ErrAnnotationNotFound) {
		s.mu.Unlock()
		s.log.Debug().Str("op", "select-annotation").Err(err).Msg("operation rejected")
		return annotation.NoCurrentAnnotation, err
	}
	current := annotation.CurrentAnnotation{
		LabelIndex:      i,
		Annotation:      a,
		AnnotationIndex: j,
	}
	s.state.CurrentAnnotation = current
	s.state.Version++
	version := s.state.Version
	s.mu.Unlock()

	s.log.Debug().Int("label", i).Int("annotation", j).Msg("annotation selected")
	s.bus.PublishCurrentAnnotationChanged(eventbus.CurrentAnnotationChangedPayload{Current: current, Version: version})
	return current, err
}
