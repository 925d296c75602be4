package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf).WithComponent("auth").WithRequestID("req-1").WithError(errors.New("boom"))

	l.Info("submitted")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "auth", entry["component"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "submitted", entry["message"])
	assert.Equal(t, "info", entry["level"])
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).WithFields(map[string]interface{}{"range": "24h", "points": 100}).Warn("generated")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "24h", entry["range"])
	assert.EqualValues(t, 100, entry["points"])
}
