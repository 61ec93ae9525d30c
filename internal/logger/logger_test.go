package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		for _, level := range []string{"debug", "info", "warn", "error", "bogus"} {
			log := New(level, format)
			assert.NotNil(t, log, "level=%s format=%s", level, format)
		}
	}
}

func TestNew_LevelIsApplied(t *testing.T) {
	log := New("error", "json")
	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.ErrorLevel))
}
