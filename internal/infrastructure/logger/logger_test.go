package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure_JSON(t *testing.T) {
	var buf bytes.Buffer
	Configure("debug", "JSON", &buf)
	t.Cleanup(func() { Configure("info", "text", &bytes.Buffer{}) })

	Log.WithField("map", "map-01").Debug("loaded")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "loaded", line["msg"])
	assert.Equal(t, "map-01", line["map"])
	assert.Equal(t, "debug", line["level"])
}

func TestConfigure_BadLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	Configure("loud", "", &buf)

	assert.Equal(t, logrus.InfoLevel, Log.GetLevel())
	Log.Debug("hidden")
	assert.Empty(t, buf.String())

	Log.Info("shown")
	assert.Contains(t, buf.String(), "shown")
}
