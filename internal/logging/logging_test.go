package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moffa90/go-arduboot/internal/config"
)

func decode(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &m), line)
		out = append(out, m)
	}
	return out
}

func TestAdapterFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(config.LogConfig{Level: "debug", Format: "json"}, &buf)
	require.NoError(t, err)
	a := NewAdapter(logger)

	a.Debug("page written", "page", 3)
	a.Info("found device", "port", "/dev/ttyACM0")
	a.Error("streaming failed", "error", errors.New("boom"))

	entries := decode(t, &buf)
	require.Len(t, entries, 3)

	assert.Equal(t, "debug", entries[0]["level"])
	assert.Equal(t, "page written", entries[0]["message"])
	assert.Equal(t, float64(3), entries[0]["page"])

	assert.Equal(t, "info", entries[1]["level"])
	assert.Equal(t, "/dev/ttyACM0", entries[1]["port"])

	assert.Equal(t, "error", entries[2]["level"])
	assert.Equal(t, "boom", entries[2]["error"])
}

func TestAdapterOddKeyValues(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(config.LogConfig{Level: "info", Format: "json"}, &buf)
	require.NoError(t, err)

	NewAdapter(logger).Info("odd", "lonely")

	entries := decode(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "(missing)", entries[0]["lonely"])
}

func TestLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(config.LogConfig{Level: "INFO", Format: "json"}, &buf)
	require.NoError(t, err)
	a := NewAdapter(logger)

	a.Debug("hidden")
	a.Info("shown")

	entries := decode(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "shown", entries[0]["message"])
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(config.LogConfig{Level: "info"}, &buf)
	require.NoError(t, err)

	NewAdapter(logger).Info("found device", "port", "COM3")

	out := buf.String()
	assert.Contains(t, out, "found device")
	assert.Contains(t, out, "port=COM3")
}

func TestNewErrors(t *testing.T) {
	_, err := New(config.LogConfig{Level: "loud"}, &bytes.Buffer{})
	assert.Error(t, err)

	_, err = New(config.LogConfig{Level: "info", Format: "xml"}, &bytes.Buffer{})
	assert.Error(t, err)
}
