package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestComponent(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)

	logger := Component("store")
	logger.Info().Msg("test message")

	entry := decode(t, &buf)
	assert.Equal(t, "store", entry["cmp"])
	assert.Equal(t, "test message", entry["message"])
}

func TestComponentOf(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf).With().Str("app", "seqmark").Logger()

	logger := ComponentOf(base, "loader")
	logger.Info().Msg("window read")

	entry := decode(t, &buf)
	assert.Equal(t, "loader", entry["cmp"])
	assert.Equal(t, "seqmark", entry["app"])
}
