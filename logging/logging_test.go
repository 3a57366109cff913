package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, Level(true, false, "error"))
	assert.Equal(t, zapcore.DebugLevel, Level(true, true, ""))
	assert.Equal(t, zapcore.ErrorLevel, Level(false, true, "debug"))
	assert.Equal(t, zapcore.InfoLevel, Level(false, false, "info"))
	assert.Equal(t, zapcore.WarnLevel, Level(false, false, ""))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel(" DEBUG "))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("chatty"))
}

func TestNew(t *testing.T) {
	log := New(zapcore.InfoLevel)
	assert.True(t, log.Desugar().Core().Enabled(zapcore.InfoLevel))
	assert.False(t, log.Desugar().Core().Enabled(zapcore.DebugLevel))
}
