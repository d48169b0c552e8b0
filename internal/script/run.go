package script

import (
	"context"
	"errors"
	"fmt"

	"github.com/colonyops/seqmark/internal/core/annotation"
	"github.com/colonyops/seqmark/internal/core/store"
	"github.com/rs/zerolog"
)

// ErrUnknownLabel is returned when a step names a label that does not exist.
var ErrUnknownLabel = errors.New("unknown label")

// Step statuses reported in results.
const (
	StatusApplied = "applied" // StatusApplied indicates the operation succeeded.
	StatusFailed  = "failed"  // StatusFailed indicates the operation returned an error.
	StatusSkipped = "skipped" // StatusSkipped indicates the step ran after a failure with StopOnError set.
)

// StepResult reports the outcome of one step.
type StepResult struct {
	Index  int    `json:"index"`
	Op     Op     `json:"op"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// StepError ties an operation error to its step.
type StepError struct {
	Index int
	Op    Op
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index, e.Op, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Runner applies scripts to a store.
type Runner struct {
	Store *store.Store
	Log   zerolog.Logger
	// StopOnError skips the remaining steps after the first failure.
	StopOnError bool
}

// Run applies every step in order and returns per-step results. The error
// joins every StepError; it is nil when all steps applied.
func (r *Runner) Run(ctx context.Context, s *Script) ([]StepResult, error) {
	results := make([]StepResult, 0, len(s.Steps))
	var errs []error

	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		res := StepResult{Index: i, Op: step.Op}
		if r.StopOnError && len(errs) > 0 {
			res.Status = StatusSkipped
			results = append(results, res)
			continue
		}

		if err := r.apply(step); err != nil {
			res.Status = StatusFailed
			res.Error = err.Error()
			errs = append(errs, &StepError{Index: i, Op: step.Op, Err: err})
			r.Log.Debug().Int("step", i).Str("op", string(step.Op)).Err(err).Msg("step failed")
		} else {
			res.Status = StatusApplied
			r.Log.Debug().Int("step", i).Str("op", string(step.Op)).Msg("step applied")
		}
		results = append(results, res)
	}

	return results, errors.Join(errs...)
}

func (r *Runner) apply(st Step) error {
	s := r.Store

	switch st.Op {
	case OpAddLabel:
		active := st.Active == nil || *st.Active
		s.AddLabel(annotation.Label{Name: st.Name, Color: st.Color, IsActive: active})
		return nil

	case OpUpdateLabel:
		i, err := r.resolve(st.Label)
		if err != nil {
			return err
		}
		cur, err := s.State().Labels.At(i)
		if err != nil {
			return err
		}
		patch := annotation.LabelPatch{Name: cur.Name, Color: cur.Color, Annotations: cur.Annotations}
		if st.Name != "" {
			patch.Name = st.Name
		}
		if st.Color != "" {
			patch.Color = st.Color
		}
		return s.UpdateLabelAt(i, patch)

	case OpRemoveLabel:
		i, err := r.resolve(st.Label)
		if err != nil {
			return err
		}
		return s.RemoveLabelAt(i)

	case OpToggleLabel:
		i, err := r.resolve(st.Label)
		if err != nil {
			return err
		}
		return s.ToggleLabelAt(i)

	case OpAddAnnotation:
		i, err := r.resolve(st.Label)
		if err != nil {
			return err
		}
		_, err = s.AddAnnotation(i, st.toAnnotation())
		return err

	case OpUpdateAnnotation:
		i, err := r.resolve(st.Label)
		if err != nil {
			return err
		}
		j := annotation.NoIndex
		if st.Annotation != nil {
			j = *st.Annotation
		}
		return s.UpdateAnnotationAt(i, j, st.toAnnotation())

	case OpSelectAnnotation:
		i, err := r.resolve(st.Label)
		if err != nil {
			return err
		}
		_, err = s.SelectAnnotation(i, st.toAnnotation())
		return err

	case OpClick:
		s.ClickPosition(st.Position - 1)
		return nil

	case OpFromBound:
		s.SetSelectionFromBound(st.Position)
		return nil

	case OpToBound:
		s.SetSelectionToBound(st.Position)
		return nil

	case OpClearSelection:
		s.ClearSelection()
		return nil
	}

	return fmt.Errorf("unknown op %q", st.Op)
}

// resolve maps a label reference to an index in the store's current labels.
// Index references are passed through so the store reports range errors.
func (r *Runner) resolve(ref LabelRef) (int, error) {
	if !ref.Set {
		return annotation.NoIndex, annotation.ErrNoLabel
	}
	if ref.Name == "" {
		return ref.Index, nil
	}

	labels := r.Store.State().Labels
	if i, ok := labels.IndexByName(ref.Name); ok {
		return i, nil
	}
	if s := Suggest(ref.Name, labels.Names()); s != "" {
		return annotation.NoIndex, fmt.Errorf("%w %q, did you mean %q?", ErrUnknownLabel, ref.Name, s)
	}
	return annotation.NoIndex, fmt.Errorf("%w %q", ErrUnknownLabel, ref.Name)
}

func (st Step) toAnnotation() annotation.Annotation {
	return annotation.Annotation{
		PositionFrom: st.From,
		PositionTo:   st.To,
		Reverse:      st.Reverse,
		Note:         st.Note,
	}
}
