package timing

import (
	"math"
	"strconv"
)

// DefaultPercentPrecision is the number of decimals kept by Percent.
const DefaultPercentPrecision = 4

// Duration renders ms as "<n>ms". Negative values clamp to 0 and an exact 0
// renders in seconds ("0s").
func Duration(ms float64) string {
	if ms <= 0 {
		return "0s"
	}
	return FormatNumber(ms) + "ms"
}

// Millis renders ms as "<n>ms" without clamping. The result parses back to
// the same increment.
func Millis(ms float64) string {
	return FormatNumber(ms) + "ms"
}

// Percent adds delta to the numeric prefix of source and renders the result
// as a percentage rounded to precision decimals.
func Percent(source string, delta float64, precision int) string {
	return FormatNumber(Round(LeadingFloat(source)+delta, precision)) + "%"
}

// Round rounds f to precision decimals, half away from zero.
func Round(f float64, precision int) float64 {
	scale := math.Pow(10, float64(precision))
	return math.Round(f*scale) / scale
}

// FormatNumber renders f in its shortest decimal form: 1 -> "1", 0.5 -> "0.5".
// Very large or very small magnitudes fall back to exponent notation.
func FormatNumber(f float64) string {
	if f == 0 {
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
