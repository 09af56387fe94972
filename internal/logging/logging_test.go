package logging

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanpaul/studentdb/internal/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("info"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("bogus"))
}

func TestJSONLoggerCarriesSession(t *testing.T) {
	var buf bytes.Buffer
	log := New(config.LogConfig{Level: "info", Format: "json"}, &buf)
	log.Info().Int64("id", 3).Msg("record added")
	log.Debug().Msg("filtered out")

	var event map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &event))
	assert.Equal(t, "record added", event["message"])
	assert.Equal(t, float64(3), event["id"])
	assert.NotEmpty(t, event["session"])
	assert.NotContains(t, buf.String(), "filtered out")
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studentdb.log")
	log, closer, err := Open(config.LogConfig{Level: "warn", Format: "json", File: path})
	require.NoError(t, err)
	log.Warn().Msg("hello")
	require.NoError(t, closer.Close())
	assert.FileExists(t, path)
}
