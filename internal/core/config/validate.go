package config

import (
	"fmt"
	"os"

	"github.com/colonyops/seqmark/internal/core/styles"
	"github.com/colonyops/seqmark/internal/core/validate"
	"github.com/hay-kot/criterio"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if c.Loader.ChunkSize < 1 {
		errs = errs.Append("loader.chunk_size", fmt.Errorf("must be at least 1, got %d", c.Loader.ChunkSize))
	}

	if _, ok := styles.GetPalette(c.Theme); !ok {
		errs = errs.Append("theme", fmt.Errorf("unknown theme %q, available: %v", c.Theme, styles.ThemeNames()))
	}

	return criterio.ValidateStruct(
		errs.ToError(),
		validateLabels("labels", c.Labels),
		validateLabels("demo.labels", c.Demo.Labels),
	)
}

// ValidateDeep performs Validate plus checks against the config file itself.
// The configPath argument specifies the config file location to validate
// (empty string skips the config file check).
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		c.validateDemoRanges(),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	check := func(category string, labels []LabelConfig) {
		seen := make(map[string]bool, len(labels))
		for i, l := range labels {
			if seen[l.Name] {
				warnings = append(warnings, ValidationWarning{
					Category: category,
					Item:     fmt.Sprintf("label %d", i),
					Message:  fmt.Sprintf("duplicate label name %q; name lookups resolve to the first", l.Name),
				})
			}
			seen[l.Name] = true

			if !l.IsActive() && len(l.Annotations) == 0 {
				warnings = append(warnings, ValidationWarning{
					Category: category,
					Item:     l.Name,
					Message:  "label is inactive and has no annotations",
				})
			}
		}
	}

	check("Labels", c.Labels)
	check("Demo", c.Demo.Labels)

	if c.Demo.SequenceData().IsEmpty() {
		warnings = append(warnings, ValidationWarning{
			Category: "Demo",
			Message:  "demo sequence is empty",
		})
	}

	return warnings
}

func validateLabels(prefix string, labels []LabelConfig) error {
	var errs []error
	for i, l := range labels {
		field := fmt.Sprintf("%s[%d]", prefix, i)
		errs = append(errs,
			validate.LabelNameField(field+".name", l.Name),
			validate.ColorField(field+".color", l.Color),
		)
		for j, a := range l.Annotations {
			afield := fmt.Sprintf("%s.annotations[%d]", field, j)
			errs = append(errs,
				validate.PositionField(afield+".from", a.From),
				validate.PositionField(afield+".to", a.To),
			)
		}
	}
	return criterio.ValidateStruct(errs...)
}

// validateDemoRanges checks that demo annotations fit inside the demo
// sequence.
func (c *Config) validateDemoRanges() error {
	n := c.Demo.SequenceData().Len()
	var errs criterio.FieldErrorsBuilder
	for i, l := range c.Demo.Labels {
		for j, a := range l.Annotations {
			if max(a.From, a.To) > n {
				errs = errs.Append(
					fmt.Sprintf("demo.labels[%d].annotations[%d]", i, j),
					fmt.Errorf("range %d-%d exceeds sequence length %d", a.From, a.To, n),
				)
			}
		}
	}
	return errs.ToError()
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}
