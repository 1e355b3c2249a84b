package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		debug   bool
		warning bool
	}{
		{"quiet console", Options{}, false, true},
		{"verbose console", Options{Verbose: true}, true, true},
		{"quiet json", Options{JSON: true}, false, true},
		{"verbose json", Options{Verbose: true, JSON: true}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.opts)
			require.NoError(t, err)
			require.NotNil(t, logger)

			assert.Equal(t, tt.debug, logger.Core().Enabled(zapcore.DebugLevel))
			assert.Equal(t, tt.warning, logger.Core().Enabled(zapcore.WarnLevel))
		})
	}
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))

	logger := zap.NewExample()
	assert.Same(t, logger, OrNop(logger))
}
