package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestNew_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, log.InfoLevel)

	logger.Debug("hidden")
	logger.Info("analysis complete", "unused", 3)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "analysis complete")
	assert.Contains(t, buf.String(), "unused=3")
}

func TestLevel(t *testing.T) {
	assert.Equal(t, log.DebugLevel, Level(true))
	assert.Equal(t, defaultLevel, Level(false))
}

func TestFromContext(t *testing.T) {
	logger := New(&bytes.Buffer{}, log.InfoLevel)

	ctx := WithLogger(context.Background(), logger)

	assert.Same(t, logger, FromContext(ctx))
	assert.Same(t, log.Default(), FromContext(context.Background()))
}
