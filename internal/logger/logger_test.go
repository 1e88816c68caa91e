package logger_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/openingroi/internal/logger"
)

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithLevel(logger.WARN), logger.WithColors(false))

	log.Debug("debug %d", 1)
	log.Info("info")
	log.Warn("warn %s", "x")
	log.Error("error")

	out := buf.String()
	assert.NotContains(t, out, "debug 1")
	assert.NotContains(t, out, "info")
	assert.Contains(t, out, "WARN  ")
	assert.Contains(t, out, "warn x")
	assert.Contains(t, out, "ERROR")
}

func TestLogger_FieldsAreSorted(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithColors(false)).
		WithFields(map[string]any{"zeta": 1, "alpha": "a", "mid": true})

	log.Info("hello")

	line := strings.TrimSpace(buf.String())
	assert.True(t, strings.HasSuffix(line, "hello alpha=a mid=true zeta=1"), line)
}

func TestLogger_WithFieldDoesNotLeak(t *testing.T) {
	var buf bytes.Buffer
	base := logger.New(logger.WithOutput(&buf), logger.WithColors(false))
	_ = base.WithField("request_id", "abc")

	base.Info("plain")
	assert.NotContains(t, buf.String(), "request_id")
}

func TestLogger_Prefix(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithColors(false)).WithPrefix("db")

	log.Info("ready")
	assert.Contains(t, buf.String(), "[db] ")
}

func TestContext(t *testing.T) {
	log := logger.New()
	ctx := logger.NewContext(context.Background(), log)

	assert.Same(t, log, logger.FromContext(ctx))
	assert.Same(t, logger.Default(), logger.FromContext(context.Background()))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logger.DEBUG, logger.ParseLevel("debug"))
	assert.Equal(t, logger.WARN, logger.ParseLevel("WARNING"))
	assert.Equal(t, logger.INFO, logger.ParseLevel("nonsense"))
	assert.True(t, logger.ValidLevel("error"))
	assert.False(t, logger.ValidLevel("trace"))
}
