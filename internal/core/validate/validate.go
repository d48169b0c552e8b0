// Package validate provides shared validation functions.
package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hay-kot/criterio"
)

var colorRe = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// LabelName validates a label name is non-empty after trimming whitespace.
func LabelName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

// LabelNameField returns a criterio validator for label names.
func LabelNameField(field, name string) error {
	return criterio.Run(field, name, LabelName)
}

// Color validates a #rgb or #rrggbb hex color.
func Color(color string) error {
	if !colorRe.MatchString(color) {
		return fmt.Errorf("color %q must be #rgb or #rrggbb", color)
	}
	return nil
}

// ColorField returns a criterio validator for label colors.
func ColorField(field, color string) error {
	return criterio.Run(field, color, Color)
}

// Position validates a 1-based sequence position.
func Position(pos int) error {
	if pos < 1 {
		return fmt.Errorf("position must be at least 1, got %d", pos)
	}
	return nil
}

// PositionField returns a criterio validator for sequence positions.
func PositionField(field string, pos int) error {
	return criterio.Run(field, pos, Position)
}
