// Package config handles configuration loading and validation for seqmark.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/colonyops/seqmark/internal/core/annotation"
	"github.com/colonyops/seqmark/internal/core/loader"
	"github.com/colonyops/seqmark/internal/core/sequence"
	"github.com/colonyops/seqmark/internal/core/styles"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

//go:embed demo.yaml
var demoYAML []byte

// Config holds the application configuration.
type Config struct {
	Loader LoaderConfig  `yaml:"loader" toml:"loader"`
	Labels []LabelConfig `yaml:"labels" toml:"labels"`
	Demo   Demo          `yaml:"demo"   toml:"demo"`
	Theme  string        `yaml:"theme"  toml:"theme"`
}

// LoaderConfig controls chunked file ingestion.
type LoaderConfig struct {
	ChunkSize int  `yaml:"chunk_size" toml:"chunk_size"`
	Strict    bool `yaml:"strict"     toml:"strict"` // drop invalid UTF-8 instead of replacing it
}

// LabelConfig declares a label and its initial annotations.
type LabelConfig struct {
	Name        string             `yaml:"name"        toml:"name"`
	Color       string             `yaml:"color"       toml:"color"`
	Active      *bool              `yaml:"active"      toml:"active"` // nil means active
	Annotations []AnnotationConfig `yaml:"annotations" toml:"annotations"`
}

// AnnotationConfig declares an annotation by its 1-based positions.
type AnnotationConfig struct {
	From    int    `yaml:"from"    toml:"from"`
	To      int    `yaml:"to"      toml:"to"`
	Reverse bool   `yaml:"reverse" toml:"reverse"`
	Note    string `yaml:"note"    toml:"note"`
}

// Demo is the data set loaded by the demo operation.
type Demo struct {
	Sequence string        `yaml:"sequence" toml:"sequence"`
	Labels   []LabelConfig `yaml:"labels"   toml:"labels"`
}

// IsZero reports whether the demo declares nothing.
func (d Demo) IsZero() bool {
	return d.Sequence == "" && len(d.Labels) == 0
}

// SequenceData returns the demo sequence with all whitespace removed, so long
// sequences may be wrapped across lines in the config file.
func (d Demo) SequenceData() sequence.Sequence {
	return sequence.New(strings.Join(strings.Fields(d.Sequence), ""))
}

// LabelSet returns the demo labels as a label collection.
func (d Demo) LabelSet() annotation.Labels {
	return BuildLabels(d.Labels)
}

// Annotation converts the declaration to an annotation.
func (a AnnotationConfig) Annotation() annotation.Annotation {
	return annotation.Annotation{
		PositionFrom: a.From,
		PositionTo:   a.To,
		Reverse:      a.Reverse,
		Note:         a.Note,
	}
}

// IsActive reports the declared active flag, defaulting to true.
func (l LabelConfig) IsActive() bool {
	return l.Active == nil || *l.Active
}

// Label converts the declaration to a label.
func (l LabelConfig) Label() annotation.Label {
	anns := make([]annotation.Annotation, len(l.Annotations))
	for i, a := range l.Annotations {
		anns[i] = a.Annotation()
	}
	return annotation.Label{
		Name:        l.Name,
		Color:       l.Color,
		IsActive:    l.IsActive(),
		Annotations: anns,
	}
}

// BuildLabels converts declarations to a label collection in order.
func BuildLabels(decls []LabelConfig) annotation.Labels {
	labels := make([]annotation.Label, len(decls))
	for i, d := range decls {
		labels[i] = d.Label()
	}
	return annotation.NewLabels(labels...)
}

// InitialLabels returns the configured starting label collection.
func (c *Config) InitialLabels() annotation.Labels {
	return BuildLabels(c.Labels)
}

// LoaderOptions returns loader options for the configured ingestion settings.
func (c *Config) LoaderOptions() []loader.Option {
	return []loader.Option{
		loader.WithChunkSize(c.Loader.ChunkSize),
		loader.WithDecoder(loader.UTF8{Strict: c.Loader.Strict}),
	}
}

// BuiltinDemo returns the embedded demo data set.
func BuiltinDemo() (Demo, error) {
	var d Demo
	if err := yaml.Unmarshal(demoYAML, &d); err != nil {
		return Demo{}, fmt.Errorf("parse built-in demo: %w", err)
	}
	return d, nil
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Loader: LoaderConfig{
			ChunkSize: loader.DefaultChunkSize,
		},
		Labels: []LabelConfig{},
		Theme:  styles.DefaultTheme,
	}
}

// Load reads and validates configuration from the given path. YAML is
// assumed unless the file ends in .toml. If configPath is empty or doesn't
// exist, returns defaults.
func Load(configPath string) (*Config, error) {
	cfg, err := Read(configPath)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Read is Load without validation, for callers that report validation
// errors themselves.
func Read(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := unmarshal(configPath, data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func unmarshal(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Unmarshal(data, cfg)
	default:
		return yaml.Unmarshal(data, cfg)
	}
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() error {
	defaults := DefaultConfig()
	if c.Loader.ChunkSize == 0 {
		c.Loader.ChunkSize = defaults.Loader.ChunkSize
	}
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
	if c.Labels == nil {
		c.Labels = defaults.Labels
	}
	if c.Demo.IsZero() {
		demo, err := BuiltinDemo()
		if err != nil {
			return err
		}
		c.Demo = demo
	}
	return nil
}
