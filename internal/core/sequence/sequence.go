// Package sequence holds the immutable symbol sequence shown by the editor
// and its 1-based display bounds.
package sequence

import "strings"

// Sequence is an ordered, immutable run of single-character symbols.
// The zero value is an empty sequence.
type Sequence struct {
	symbols []rune
}

// New builds a Sequence with one symbol per character of s.
func New(s string) Sequence {
	return Sequence{symbols: []rune(s)}
}

// FromRunes builds a Sequence from a copy of symbols.
func FromRunes(symbols []rune) Sequence {
	out := make([]rune, len(symbols))
	copy(out, symbols)
	return Sequence{symbols: out}
}

// Len returns the number of symbols.
func (s Sequence) Len() int {
	return len(s.symbols)
}

// IsEmpty reports whether the sequence has no symbols.
func (s Sequence) IsEmpty() bool {
	return len(s.symbols) == 0
}

// At returns the symbol at the zero-based index i.
func (s Sequence) At(i int) (rune, bool) {
	if i < 0 || i >= len(s.symbols) {
		return 0, false
	}
	return s.symbols[i], true
}

// Slice returns the symbols between the 1-based inclusive positions from and
// to, clamped to the sequence. Reversed positions are swapped.
func (s Sequence) Slice(from, to int) string {
	if from > to {
		from, to = to, from
	}
	from = max(from, 1)
	to = min(to, len(s.symbols))
	if from > to {
		return ""
	}
	return string(s.symbols[from-1 : to])
}

// Symbols returns a copy of the underlying symbols.
func (s Sequence) Symbols() []rune {
	out := make([]rune, len(s.symbols))
	copy(out, s.symbols)
	return out
}

// String returns the sequence as text.
func (s Sequence) String() string {
	return string(s.symbols)
}

// Preview returns at most n leading symbols, with an ellipsis when truncated.
func (s Sequence) Preview(n int) string {
	if n <= 0 || len(s.symbols) <= n {
		return string(s.symbols)
	}
	var b strings.Builder
	b.WriteString(string(s.symbols[:n]))
	b.WriteString("…")
	return b.String()
}

// MarshalText encodes the sequence as its plain text form.
func (s Sequence) MarshalText() ([]byte, error) {
	return []byte(string(s.symbols)), nil
}

// UnmarshalText decodes a plain text sequence.
func (s *Sequence) UnmarshalText(b []byte) error {
	s.symbols = []rune(string(b))
	return nil
}

// Bounds are the inclusive 1-based display positions over a sequence.
type Bounds struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// BoundsFor returns the full-range bounds for s, (1, s.Len()). An empty
// sequence yields (1, 0).
func BoundsFor(s Sequence) Bounds {
	return Bounds{From: 1, To: s.Len()}
}

// Len returns the number of positions covered by the bounds.
func (b Bounds) Len() int {
	if b.To < b.From {
		return 0
	}
	return b.To - b.From + 1
}
