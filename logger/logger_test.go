package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	for _, env := range []string{"production", "development", ""} {
		log, err := New(env)
		require.NoError(t, err, env)
		assert.NotNil(t, log)
	}
}

func TestConfig_ProductionUsesTimestampKey(t *testing.T) {
	cfg := config("production")
	assert.Equal(t, "timestamp", cfg.EncoderConfig.TimeKey)
	assert.Equal(t, "json", cfg.Encoding)

	dev := config("development")
	assert.Equal(t, "console", dev.Encoding)
	assert.True(t, dev.Development)
}

func TestNewWithWriter_TeesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("production", &buf)
	log.Info("Bill paid", zap.Uint("bill_id", 7))
	_ = log.Sync()

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "Bill paid", line["msg"])
	assert.Equal(t, "info", line["level"])
	assert.EqualValues(t, 7, line["bill_id"])
	assert.Contains(t, line, "timestamp")
}
