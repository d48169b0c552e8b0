package store_test

import (
	"testing"

	"github.com/colonyops/seqmark/internal/core/eventbus"
	"github.com/colonyops/seqmark/internal/core/eventbus/testbus"
	"github.com/colonyops/seqmark/internal/core/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lastSelection(t *testing.T, tb *testbus.Bus) selection.Selection {
	t.Helper()
	p, ok := tb.Last(eventbus.EventSelectionChanged)
	require.True(t, ok, "selection-changed not published")
	return p.(eventbus.SelectionChangedPayload).Selection
}

func TestClickPosition_Transitions(t *testing.T) {
	s, tb := newStore(t)

	got := s.ClickPosition(9)
	assert.Equal(t, selection.Anchor(9), got)

	got = s.ClickPosition(4)
	assert.Equal(t, selection.Range(4, 9), got)
	assert.Equal(t, 4, got.From.Index, "completed ranges are ordered")

	got = s.ClickPosition(12)
	assert.Equal(t, selection.Anchor(12), got, "clicking after a complete range starts a new anchor")

	got = s.ClickPosition(12)
	assert.Equal(t, selection.Empty, got, "clicking the anchor clears")

	assert.Equal(t, 4, tb.Count(eventbus.EventSelectionChanged))
	assert.Equal(t, selection.Empty, lastSelection(t, tb))
	assert.Equal(t, selection.Empty, s.State().Selection)
	tb.AssertNotPublished(t, eventbus.EventStateChanged)
}

func TestClickPosition_EndpointClears(t *testing.T) {
	s, _ := newStore(t)
	s.ClickPosition(2)
	s.ClickPosition(6)

	assert.Equal(t, selection.Empty, s.ClickPosition(6))
}

func TestSelectionBounds(t *testing.T) {
	s, tb := newStore(t)

	got := s.SetSelectionToBound(3)
	assert.Equal(t, selection.StateToOnly, got.State())
	assert.Equal(t, 2, got.To.Index)

	got = s.SetSelectionFromBound(10)
	assert.Equal(t, selection.StateComplete, got.State())
	assert.Equal(t, 9, got.From.Index)
	assert.Equal(t, 2, got.To.Index, "setters do not normalize")

	assert.Equal(t, 2, tb.Count(eventbus.EventSelectionChanged))
	assert.Equal(t, got, lastSelection(t, tb))
}

func TestClearSelection(t *testing.T) {
	s, tb := newStore(t)
	s.ClickPosition(1)
	s.ClickPosition(5)
	tb.Reset()

	assert.Equal(t, selection.Empty, s.ClearSelection())
	assert.Equal(t, selection.Empty, s.ClearSelection(), "clearing twice still notifies")

	tb.AssertOrder(t, eventbus.EventSelectionChanged, eventbus.EventSelectionChanged)
}

func TestSelectedText(t *testing.T) {
	s, _ := newStore(t)
	require.NoError(t, s.LoadFromDemo())

	s.ClickPosition(0)
	s.ClickPosition(3)

	text, ok := s.State().SelectedText()
	require.True(t, ok)
	assert.Equal(t, s.State().Sequence.Slice(1, 4), text)
	assert.Len(t, text, 4)
}
