package annotation_test

import (
	"testing"

	"github.com/colonyops/seqmark/internal/core/annotation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exon() annotation.Label {
	return annotation.Label{Name: "exon", Color: "#f00", IsActive: true}
}

func intron() annotation.Label {
	return annotation.Label{
		Name:     "intron",
		Color:    "#00f",
		IsActive: false,
		Annotations: []annotation.Annotation{
			{PositionFrom: 10, PositionTo: 20},
			{PositionFrom: 30, PositionTo: 25},
		},
	}
}

func TestLabels_AppendAssignsIDs(t *testing.T) {
	ls := annotation.NewLabels().Append(intron())

	l, err := ls.At(0)
	require.NoError(t, err)
	assert.NotEmpty(t, l.ID)
	for _, a := range l.Annotations {
		assert.NotEmpty(t, a.ID)
	}

	idx, err := ls.IndexOf(l.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
}

func TestLabels_AppendLeavesOriginalUntouched(t *testing.T) {
	before := annotation.NewLabels(exon())
	after := before.Append(intron())

	assert.Equal(t, 1, before.Len())
	assert.Equal(t, 2, after.Len())
}

func TestLabels_AddAnnotationThenFind(t *testing.T) {
	ls := annotation.NewLabels().Append(exon())

	ls, err := ls.AppendAnnotation(0, annotation.Annotation{PositionFrom: 2, PositionTo: 5})
	require.NoError(t, err)

	l, err := ls.At(0)
	require.NoError(t, err)
	require.Len(t, l.Annotations, 1)
	assert.Equal(t, 2, l.Annotations[0].PositionFrom)
	assert.Equal(t, 5, l.Annotations[0].PositionTo)

	idx, err := ls.FindAnnotation(0, annotation.Annotation{PositionFrom: 2, PositionTo: 5})
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
}

func TestLabels_FindAnnotation_FirstValueMatch(t *testing.T) {
	ls := annotation.NewLabels(annotation.Label{
		Name: "dup",
		Annotations: []annotation.Annotation{
			{PositionFrom: 1, PositionTo: 2, Note: "first"},
			{PositionFrom: 3, PositionTo: 4},
			{PositionFrom: 1, PositionTo: 2, Note: "second"},
		},
	})

	idx, err := ls.FindAnnotation(0, annotation.Annotation{PositionFrom: 1, PositionTo: 2})
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	idx, err = ls.FindAnnotation(0, annotation.Annotation{PositionFrom: 2, PositionTo: 1})
	assert.ErrorIs(t, err, annotation.ErrAnnotationNotFound)
	assert.Equal(t, annotation.NoIndex, idx)
}

func TestLabels_RemoveShiftsLaterLabels(t *testing.T) {
	ls := annotation.NewLabels(exon(), intron())
	second, err := ls.At(1)
	require.NoError(t, err)

	ls, err = ls.RemoveAt(0)
	require.NoError(t, err)

	require.Equal(t, 1, ls.Len())
	got, err := ls.At(0)
	require.NoError(t, err)
	assert.Equal(t, second, got)
}

func TestLabels_UpdateAtForcesActive(t *testing.T) {
	ls := annotation.NewLabels(intron())
	orig, err := ls.At(0)
	require.NoError(t, err)

	ls, err = ls.UpdateAt(0, annotation.LabelPatch{Name: "renamed", Color: "#0f0"})
	require.NoError(t, err)

	l, err := ls.At(0)
	require.NoError(t, err)
	assert.Equal(t, "renamed", l.Name)
	assert.Equal(t, "#0f0", l.Color)
	assert.True(t, l.IsActive)
	assert.Empty(t, l.Annotations)
	assert.Equal(t, orig.ID, l.ID)
}

func TestLabels_ToggleTwiceRestores(t *testing.T) {
	ls := annotation.NewLabels(intron())
	orig, err := ls.At(0)
	require.NoError(t, err)

	once, err := ls.ToggleAt(0)
	require.NoError(t, err)
	twice, err := once.ToggleAt(0)
	require.NoError(t, err)

	mid, _ := once.At(0)
	assert.Equal(t, !orig.IsActive, mid.IsActive)

	got, err := twice.At(0)
	require.NoError(t, err)
	assert.Equal(t, orig, got)
}

func TestLabels_UpdateAnnotationAtKeepsID(t *testing.T) {
	ls := annotation.NewLabels(intron())
	before, _ := ls.At(0)

	ls, err := ls.UpdateAnnotationAt(0, 1, annotation.Annotation{PositionFrom: 31, PositionTo: 40})
	require.NoError(t, err)

	after, _ := ls.At(0)
	assert.Equal(t, before.Annotations[1].ID, after.Annotations[1].ID)
	assert.Equal(t, 31, after.Annotations[1].PositionFrom)
	assert.Equal(t, before.Annotations[0], after.Annotations[0])
}

func TestLabels_OldSnapshotsStayStale(t *testing.T) {
	ls := annotation.NewLabels(exon())
	snapshot := ls.All()

	next, err := ls.AppendAnnotation(0, annotation.Annotation{PositionFrom: 1, PositionTo: 3})
	require.NoError(t, err)

	assert.Empty(t, snapshot[0].Annotations)
	old, _ := ls.At(0)
	assert.Empty(t, old.Annotations)
	updated, _ := next.At(0)
	assert.Len(t, updated.Annotations, 1)
}

func TestLabels_ReturnedLabelsAreCopies(t *testing.T) {
	ls := annotation.NewLabels(intron())

	l, _ := ls.At(0)
	l.Annotations[0].PositionFrom = 99

	again, _ := ls.At(0)
	assert.Equal(t, 10, again.Annotations[0].PositionFrom)
}

func TestLabels_Errors(t *testing.T) {
	ls := annotation.NewLabels(intron())

	tests := []struct {
		name string
		run  func() error
		want error
	}{
		{"remove out of range", func() error { _, err := ls.RemoveAt(3); return err }, annotation.ErrIndexOutOfRange},
		{"remove negative", func() error { _, err := ls.RemoveAt(-2); return err }, annotation.ErrIndexOutOfRange},
		{"update out of range", func() error { _, err := ls.UpdateAt(1, annotation.LabelPatch{}); return err }, annotation.ErrIndexOutOfRange},
		{"toggle out of range", func() error { _, err := ls.ToggleAt(5); return err }, annotation.ErrIndexOutOfRange},
		{"add annotation no label", func() error {
			_, err := ls.AppendAnnotation(annotation.NoIndex, annotation.Annotation{})
			return err
		}, annotation.ErrNoLabel},
		{"add annotation out of range", func() error {
			_, err := ls.AppendAnnotation(4, annotation.Annotation{})
			return err
		}, annotation.ErrIndexOutOfRange},
		{"update annotation no label", func() error {
			_, err := ls.UpdateAnnotationAt(annotation.NoIndex, 0, annotation.Annotation{})
			return err
		}, annotation.ErrNoLabel},
		{"update annotation no annotation", func() error {
			_, err := ls.UpdateAnnotationAt(0, annotation.NoIndex, annotation.Annotation{})
			return err
		}, annotation.ErrNoAnnotation},
		{"update annotation out of range", func() error {
			_, err := ls.UpdateAnnotationAt(0, 2, annotation.Annotation{})
			return err
		}, annotation.ErrIndexOutOfRange},
		{"unknown label id", func() error { _, err := ls.IndexOf("missing"); return err }, annotation.ErrLabelNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.run(), tt.want)
		})
	}

	assert.Equal(t, 1, ls.Len())
}

func TestLabels_LengthChangesOnlyOnAddRemove(t *testing.T) {
	ls := annotation.NewLabels()
	steps := []struct {
		op   func(annotation.Labels) (annotation.Labels, error)
		want int
	}{
		{func(l annotation.Labels) (annotation.Labels, error) { return l.Append(exon()), nil }, 1},
		{func(l annotation.Labels) (annotation.Labels, error) { return l.Append(intron()), nil }, 2},
		{func(l annotation.Labels) (annotation.Labels, error) { return l.ToggleAt(0) }, 2},
		{func(l annotation.Labels) (annotation.Labels, error) {
			return l.UpdateAt(1, annotation.LabelPatch{Name: "x"})
		}, 2},
		{func(l annotation.Labels) (annotation.Labels, error) { return l.RemoveAt(0) }, 1},
		{func(l annotation.Labels) (annotation.Labels, error) { return l.ToggleAt(0) }, 1},
		{func(l annotation.Labels) (annotation.Labels, error) { return l.RemoveAt(0) }, 0},
	}

	for i, step := range steps {
		next, err := step.op(ls)
		require.NoError(t, err, "step %d", i)
		assert.Equal(t, step.want, next.Len(), "step %d", i)
		ls = next
	}
}

func TestAnnotation_IsReverse(t *testing.T) {
	assert.False(t, annotation.Annotation{PositionFrom: 1, PositionTo: 5}.IsReverse())
	assert.True(t, annotation.Annotation{PositionFrom: 5, PositionTo: 1}.IsReverse())
	assert.True(t, annotation.Annotation{PositionFrom: 1, PositionTo: 5, Reverse: true}.IsReverse())

	lo, hi := annotation.Annotation{PositionFrom: 9, PositionTo: 4}.Span()
	assert.Equal(t, 4, lo)
	assert.Equal(t, 9, hi)
	assert.Equal(t, 6, annotation.Annotation{PositionFrom: 9, PositionTo: 4}.Len())
}
