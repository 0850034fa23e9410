package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixedGenerator(t *testing.T) {
	gen := NewFixedGenerator("x", "y")
	assert.Equal(t, 2, gen.Remaining())
	assert.Equal(t, "x", gen.Generate())
	assert.Equal(t, "y", gen.Generate())
	assert.Equal(t, 0, gen.Remaining())
	assert.Panics(t, func() { gen.Generate() })
}

func TestSequentialGenerator(t *testing.T) {
	gen := SequentialGenerator(2)
	assert.Equal(t, "build-001", gen.Generate())
	assert.Equal(t, "build-002", gen.Generate())
}

func TestCaptureLogger(t *testing.T) {
	logger, buf := CaptureLogger()
	logger.Debug("compiled", "roots", 2)
	assert.Contains(t, buf.String(), "msg=compiled")
	assert.Contains(t, buf.String(), "roots=2")

	DiscardLogger().Error("dropped")
}
