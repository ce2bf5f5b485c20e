package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSetup_Level(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	Setup("development", "debug")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	Setup("production", "warn")
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	Setup("production", "shouting")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	Setup("development", "")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
