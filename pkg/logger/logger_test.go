package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, ParseLevel("debug"))
	assert.Equal(t, WarnLevel, ParseLevel("warn"))
	assert.Equal(t, InfoLevel, ParseLevel("info"))

	// Unknown or empty input falls back to info.
	assert.Equal(t, InfoLevel, ParseLevel("verbose"))
	assert.Equal(t, InfoLevel, ParseLevel(""))
}

func TestSetupConfiguresGlobalLogger(t *testing.T) {
	var buf bytes.Buffer
	Setup(&Config{Level: WarnLevel, Output: &buf})
	t.Cleanup(func() { Setup(nil) })

	log.Info().Msg("below threshold")
	assert.Zero(t, buf.Len())

	log.Warn().Msg("storage degraded")
	assert.Contains(t, buf.String(), "storage degraded")
}
