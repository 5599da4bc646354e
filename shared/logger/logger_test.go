package logger_test

import (
	"agenda/config"
	"agenda/shared/logger"
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restore(t *testing.T) {
	t.Helper()

	originalLogger := log.Logger
	originalLevel := zerolog.GlobalLevel()

	t.Cleanup(func() {
		log.Logger = originalLogger
		zerolog.SetGlobalLevel(originalLevel)
	})
}

func TestInitLogger(t *testing.T) {
	restore(t)

	logger.InitLogger()

	assert.Equal(t, zerolog.TimeFormatUnix, zerolog.TimeFieldFormat)
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
}

func TestErrorWithStack(t *testing.T) {
	restore(t)

	var buf bytes.Buffer
	log.Logger = log.Output(&buf)

	logger.ErrorWithStack(errors.New("snapshot decode failed"))

	assert.Contains(t, buf.String(), "snapshot decode failed")
	assert.Contains(t, buf.String(), "logger_test.go", "stack trace should point at the caller")
}

func TestSetLogLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":    zerolog.DebugLevel,
		"warn":     zerolog.WarnLevel,
		"disabled": zerolog.Disabled,
		"loud":     zerolog.TraceLevel,
		"":         zerolog.NoLevel,
	}

	for level, want := range tests {
		t.Run("level "+level, func(t *testing.T) {
			restore(t)

			cfg := &config.Config{}
			cfg.Server.LogLevel = level

			logger.SetLogLevel(cfg)

			assert.Equal(t, want, zerolog.GlobalLevel())
		})
	}
}

func TestComponent(t *testing.T) {
	restore(t)

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	l := logger.Component("mirror")
	l.Info().Str("collection", "appointments").Msg("subscribed")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "mirror", line["component"])
	assert.Equal(t, "appointments", line["collection"])
}
