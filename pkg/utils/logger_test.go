package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithOutput("warn", "text", &buf)

	logger.Info("hidden")
	assert.Empty(t, buf.String())

	logger.Warn("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestLogger_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithOutput("debug", "json", &buf)

	logger.WithField("fixes", 3).
		WithFields(map[string]interface{}{"run_id": "abc"}).
		WithError(errors.New("boom")).
		Debug("stage done")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "stage done", entry["msg"])
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, float64(3), entry["fixes"])
	assert.Equal(t, "abc", entry["run_id"])
	assert.Equal(t, "boom", entry["error"])
}

func TestLogger_WithFieldDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLoggerWithOutput("info", "json", &buf)
	_ = parent.WithField("child", true)

	parent.Info("parent")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	_, ok := entry["child"]
	assert.False(t, ok)
}

func TestParseLevel_Unknown(t *testing.T) {
	logger := NewLoggerWithOutput("verbose", "text", &bytes.Buffer{})
	assert.False(t, logger.IsDebug())
	assert.True(t, NewLoggerWithOutput("DEBUG", "text", &bytes.Buffer{}).IsDebug())
}
