package store

import (
	"github.com/colonyops/seqmark/internal/core/eventbus"
	"github.com/colonyops/seqmark/internal/core/selection"
)

func (s *Store) updateSelection(op string, fn func(selection.Selection) selection.Selection) selection.Selection {
	s.mu.Lock()
	next := fn(s.state.Selection)
	s.state.Selection = next
	s.state.Version++
	version := s.state.Version
	s.mu.Unlock()

	s.log.Debug().Str("op", op).Stringer("selection", next).Msg("selection changed")
	s.bus.PublishSelectionChanged(eventbus.SelectionChangedPayload{Selection: next, Version: version})
	return next
}

// ClickPosition advances the selection state machine with the zero-based
// position p.
func (s *Store) ClickPosition(p int) selection.Selection {
	return s.updateSelection("click", func(cur selection.Selection) selection.Selection {
		return cur.Click(p)
	})
}

// SetSelectionFromBound sets the selection start from the 1-based display
// position pos without touching the end.
func (s *Store) SetSelectionFromBound(pos int) selection.Selection {
	return s.updateSelection("from-bound", func(cur selection.Selection) selection.Selection {
		return cur.WithFromBound(pos)
	})
}

// SetSelectionToBound sets the selection end from the 1-based display
// position pos without touching the start.
func (s *Store) SetSelectionToBound(pos int) selection.Selection {
	return s.updateSelection("to-bound", func(cur selection.Selection) selection.Selection {
		return cur.WithToBound(pos)
	})
}

// ClearSelection resets the selection to empty.
func (s *Store) ClearSelection() selection.Selection {
	return s.updateSelection("clear-selection", func(selection.Selection) selection.Selection {
		return selection.Empty
	})
}
