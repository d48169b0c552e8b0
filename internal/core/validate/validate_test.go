package validate

import (
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid name", "exon", false},
		{"valid with spaces", "coding region", false},
		{"empty string", "", true},
		{"only spaces", "   ", true},
		{"only tabs", "\t\t", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := LabelName(tt.input)
			assert.Equal(t, tt.wantErr, err != nil, "LabelName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		})
	}
}

func TestColor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"short hex", "#f00", false},
		{"long hex", "#00ff7F", false},
		{"missing hash", "ff0000", true},
		{"four digits", "#ff00", true},
		{"not hex", "#gg0000", true},
		{"named color", "red", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Color(tt.input)
			assert.Equal(t, tt.wantErr, err != nil, "Color(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		})
	}
}

func TestPosition(t *testing.T) {
	assert.NoError(t, Position(1))
	assert.NoError(t, Position(10_000))
	assert.Error(t, Position(0))
	assert.Error(t, Position(-3))
}

func TestFieldValidators(t *testing.T) {
	err := criterio.ValidateStruct(
		LabelNameField("labels[0].name", ""),
		ColorField("labels[0].color", "blue"),
		PositionField("labels[0].annotations[0].from", 0),
		ColorField("labels[1].color", "#abc"),
	)

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 3)
	assert.Equal(t, "labels[0].name", fieldErrs[0].Field)
	assert.Equal(t, "labels[0].color", fieldErrs[1].Field)
	assert.Equal(t, "labels[0].annotations[0].from", fieldErrs[2].Field)
}
