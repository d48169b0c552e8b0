package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/colonyops/seqmark/internal/core/loader"
	"github.com/colonyops/seqmark/internal/core/styles"
	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, loader.DefaultChunkSize, cfg.Loader.ChunkSize)
	assert.Equal(t, styles.DefaultTheme, cfg.Theme)
	assert.Empty(t, cfg.Labels)
	assert.False(t, cfg.Demo.IsZero(), "built-in demo applied")
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, loader.DefaultChunkSize, cfg.Loader.ChunkSize)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "seqmark.yaml", `
loader:
  chunk_size: 64
  strict: true
theme: gruvbox
labels:
  - name: exon
    color: "#f00"
    annotations:
      - {from: 2, to: 5}
  - name: intron
    color: "#00ff00"
    active: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 64, cfg.Loader.ChunkSize)
	assert.True(t, cfg.Loader.Strict)
	assert.Equal(t, "gruvbox", cfg.Theme)

	labels := cfg.InitialLabels()
	require.Equal(t, 2, labels.Len())

	exon, err := labels.At(0)
	require.NoError(t, err)
	assert.Equal(t, "exon", exon.Name)
	assert.True(t, exon.IsActive, "active defaults to true")
	require.Len(t, exon.Annotations, 1)
	assert.Equal(t, 2, exon.Annotations[0].PositionFrom)
	assert.Equal(t, 5, exon.Annotations[0].PositionTo)
	assert.NotEmpty(t, exon.ID)

	intron, err := labels.At(1)
	require.NoError(t, err)
	assert.False(t, intron.IsActive)
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, "seqmark.toml", `
theme = "mono"

[loader]
chunk_size = 128

[[labels]]
name = "exon"
color = "#abcdef"

[[labels.annotations]]
from = 9
to = 3
reverse = true

[demo]
sequence = "ACGT ACGT"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 128, cfg.Loader.ChunkSize)
	assert.Equal(t, "mono", cfg.Theme)
	require.Len(t, cfg.Labels, 1)
	require.Len(t, cfg.Labels[0].Annotations, 1)

	a := cfg.Labels[0].Annotations[0].Annotation()
	assert.Equal(t, 9, a.PositionFrom)
	assert.Equal(t, 3, a.PositionTo)
	assert.True(t, a.IsReverse())

	assert.Equal(t, "ACGTACGT", cfg.Demo.SequenceData().String())
	assert.Equal(t, 0, cfg.Demo.LabelSet().Len())
}

func TestLoad_ParseError(t *testing.T) {
	path := writeFile(t, "bad.yaml", "loader: [not, a, map")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestLoad_Invalid(t *testing.T) {
	path := writeFile(t, "bad.yaml", `
loader:
  chunk_size: -4
theme: neon
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 2)
	assert.Equal(t, "loader.chunk_size", fieldErrs[0].Field)
	assert.Equal(t, "theme", fieldErrs[1].Field)
}

func TestRead_SkipsValidation(t *testing.T) {
	path := writeFile(t, "bad.yaml", "theme: neon\n")

	cfg, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "neon", cfg.Theme)
	assert.Equal(t, loader.DefaultChunkSize, cfg.Loader.ChunkSize, "defaults still applied")
	require.Error(t, cfg.Validate())
}

func TestBuiltinDemo(t *testing.T) {
	demo, err := BuiltinDemo()
	require.NoError(t, err)

	seq := demo.SequenceData()
	assert.Equal(t, 204, seq.Len())
	assert.NotContains(t, seq.String(), " ")

	labels := demo.LabelSet()
	assert.Equal(t, []string{"promoter", "exon", "intron", "primer"}, labels.Names())

	cfg := DefaultConfig()
	cfg.Demo = demo
	assert.NoError(t, cfg.ValidateDeep(""), "built-in demo must satisfy its own rules")
}

func TestLoaderOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Loader.ChunkSize = 7
	cfg.Loader.Strict = true

	l := loader.New(cfg.LoaderOptions()...)
	assert.Equal(t, 7, l.ChunkSize)
	assert.Equal(t, loader.UTF8{Strict: true}, l.Decoder)
}
