package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"numerology_fortune_bot/internal/infra/config"
)

func TestInitWithOutput_ProductionIsJSON(t *testing.T) {
	var buf bytes.Buffer
	InitWithOutput(&config.AppConfig{LogLevel: "warn", Environment: "production"}, &buf)

	assert.Equal(t, logrus.WarnLevel, Log.GetLevel())

	Component("scheduler").Info("dropped")
	Component("scheduler").Warn("kept")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "kept", line["msg"])
	assert.Equal(t, "scheduler", line["component"])
}

func TestInitWithOutput_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	InitWithOutput(&config.AppConfig{LogLevel: "chatty", Environment: "development"}, &buf)

	assert.Equal(t, logrus.InfoLevel, Log.GetLevel())
	assert.Contains(t, buf.String(), "Invalid log level")
}
