package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New("warn", &buf)

	log.Info().Msg("hidden")
	assert.Empty(t, buf.String())

	log.Warn().Str("cmd", "go").Msg("shown")
	assert.Contains(t, buf.String(), `"cmd":"go"`)
	assert.Contains(t, buf.String(), `"message":"shown"`)
}

func TestNewDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New("nonsense", &buf)

	log.Debug().Msg("debug")
	assert.Empty(t, buf.String())
	log.Info().Msg("info")
	assert.NotEmpty(t, buf.String())
}
