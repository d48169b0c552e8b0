// Package selection implements the click-driven range selection over
// sequence positions.
//
// A selection moves between three states:
//
//	Empty    {from: -, to: -}
//	Anchored {from: p, to: -}
//	Complete {from: lo, to: hi}   lo <= hi
//
// Clicking an existing endpoint resets to Empty. Clicking while Empty or
// Complete starts a fresh anchor. Clicking while Anchored completes the range,
// normalized so From holds the smaller position. Positions are zero-based.
package selection

import (
	"encoding/json"
	"fmt"
)

// State names the shape of a selection.
type State string

const (
	StateEmpty    State = "empty"
	StateAnchored State = "anchored"
	StateComplete State = "complete"
	// StateToOnly is reachable only through the direct bound setters.
	StateToOnly State = "to-only"
)

// Position is an optional zero-based sequence index.
type Position struct {
	Index int
	Set   bool
}

// At returns a set Position for index i.
func At(i int) Position {
	return Position{Index: i, Set: true}
}

// Unset is the absent Position.
var Unset = Position{}

// Is reports whether p is set to i.
func (p Position) Is(i int) bool {
	return p.Set && p.Index == i
}

func (p Position) String() string {
	if !p.Set {
		return "-"
	}
	return fmt.Sprint(p.Index)
}

// MarshalJSON encodes an unset position as null.
func (p Position) MarshalJSON() ([]byte, error) {
	if !p.Set {
		return []byte("null"), nil
	}
	return json.Marshal(p.Index)
}

// UnmarshalJSON decodes null as an unset position.
func (p *Position) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*p = Unset
		return nil
	}
	var i int
	if err := json.Unmarshal(b, &i); err != nil {
		return err
	}
	*p = At(i)
	return nil
}

// Selection is an in-progress or completed range over sequence positions.
// The zero value is the empty selection.
type Selection struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// Empty is the cleared selection.
var Empty = Selection{}

// Anchor returns the selection anchored at p.
func Anchor(p int) Selection {
	return Selection{From: At(p)}
}

// Range returns the completed selection over a and b, normalized.
func Range(a, b int) Selection {
	if a > b {
		a, b = b, a
	}
	return Selection{From: At(a), To: At(b)}
}

// State reports which state the selection is in.
func (s Selection) State() State {
	switch {
	case s.From.Set && s.To.Set:
		return StateComplete
	case s.From.Set:
		return StateAnchored
	case s.To.Set:
		return StateToOnly
	default:
		return StateEmpty
	}
}

// Click returns the selection after the user picks position p.
func (s Selection) Click(p int) Selection {
	switch {
	case s.From.Is(p) || s.To.Is(p):
		return Empty
	case !s.From.Set || s.To.Set:
		return Anchor(p)
	default:
		return Range(s.From.Index, p)
	}
}

// WithFromBound returns s with From set to the 1-based display position
// pos, leaving To untouched. No ordering is enforced.
func (s Selection) WithFromBound(pos int) Selection {
	s.From = At(pos - 1)
	return s
}

// WithToBound returns s with To set to the 1-based display position pos,
// leaving From untouched. No ordering is enforced.
func (s Selection) WithToBound(pos int) Selection {
	s.To = At(pos - 1)
	return s
}

// Span returns the selected zero-based indexes when the selection is
// complete.
func (s Selection) Span() (from, to int, ok bool) {
	if s.State() != StateComplete {
		return 0, 0, false
	}
	return s.From.Index, s.To.Index, true
}

func (s Selection) String() string {
	return fmt.Sprintf("%s..%s", s.From, s.To)
}
