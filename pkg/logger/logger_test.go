package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gst-invoicing-api/pkg/logger"
)

func TestComponentAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewWithWriter(&buf, "warn")

	l.Info().Msg("hidden")
	comp := l.Component("billing")
	comp.Warn().Str("factory_id", "f1").Msg("shown")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "billing", line["component"])
	assert.Equal(t, "f1", line["factory_id"])
	assert.Equal(t, "shown", line["message"])
	assert.Equal(t, "warn", line["level"])
}

func TestNop(t *testing.T) {
	l := logger.Nop()
	assert.NotPanics(t, func() { l.Error().Msg("dropped") })
}
