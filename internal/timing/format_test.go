package timing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDuration(t *testing.T) {
	assert.Equal(t, "0s", Duration(0))
	assert.Equal(t, "0s", Duration(-20))
	assert.Equal(t, "1500ms", Duration(1500))
	assert.Equal(t, "0.5ms", Duration(0.5))
}

func TestMillisRoundTrips(t *testing.T) {
	for _, ms := range []float64{1, 250, 1500, 3723000} {
		assert.Equal(t, ms, Parse(Millis(ms), 0))
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "55%", Percent("50%", 5, DefaultPercentPrecision))
	assert.Equal(t, "-2%", Percent("", -2, DefaultPercentPrecision))
	assert.Equal(t, "33.3333%", Percent("0", 100.0/3, DefaultPercentPrecision))
	assert.Equal(t, "33%", Percent("33.3333", 0, 0))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "0", FormatNumber(0))
	assert.Equal(t, "1", FormatNumber(1))
	assert.Equal(t, "0.25", FormatNumber(0.25))
	assert.Equal(t, "-12", FormatNumber(-12))
	assert.Equal(t, "3723000", FormatNumber(3723000))
}
