package timing

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Unit sizes in milliseconds.
const (
	Millisecond float64 = 1
	Second              = 1000 * Millisecond
	Minute              = 60 * Second
	Hour                = 60 * Minute
)

// unitToken matches a numeric run followed by a unit. Alternation is
// leftmost-first, so "ms" wins over "m" and "s".
var unitToken = regexp.MustCompile(`(?i)([0-9.]+)(ms|h|m|s)`)

// Parse converts text into milliseconds.
//
// Colon form returns an absolute value and ignores baseline. Unit form sums
// the first occurrence of each unit and adds baseline.
func Parse(text string, baseline float64) float64 {
	if strings.Contains(text, ":") {
		return parseColon(text)
	}
	return baseline + parseUnits(text)
}

func parseColon(text string) float64 {
	parts := strings.Split(text, ":")
	if len(parts) > 3 {
		parts = parts[len(parts)-3:]
	}

	var sum float64
	for pos := 0; pos < len(parts); pos++ {
		part := parts[len(parts)-1-pos]
		if part == "" {
			continue
		}
		sum += math.Abs(LeadingFloat(part)) * math.Pow(60, float64(pos))
	}
	return sum * 1000
}

func parseUnits(text string) float64 {
	seen := make(map[string]bool, 4)
	var sum float64
	for _, m := range unitToken.FindAllStringSubmatch(text, -1) {
		unit := strings.ToLower(m[2])
		if seen[unit] {
			continue
		}
		seen[unit] = true
		sum += LeadingFloat(m[1]) * unitSize(unit)
	}
	return sum
}

func unitSize(unit string) float64 {
	switch unit {
	case "h":
		return Hour
	case "m":
		return Minute
	case "s":
		return Second
	default:
		return Millisecond
	}
}

// Elapsed returns target, or baseline when target would move time backwards.
func Elapsed(target, baseline float64) float64 {
	if target < baseline {
		return baseline
	}
	return target
}

// LeadingFloat parses the longest numeric prefix of s after leading spaces,
// the way a lenient float reader does. Anything non-numeric or non-finite yields 0.
func LeadingFloat(s string) float64 {
	s = strings.TrimLeft(s, " \t\n\r")
	end := 0
	digits := false
	dot := false
	exp := false
scan:
	for end < len(s) {
		c := s[end]
		switch {
		case c >= '0' && c <= '9':
			digits = true
		case (c == '+' || c == '-') && (end == 0 || s[end-1] == 'e' || s[end-1] == 'E'):
		case c == '.' && !dot && !exp:
			dot = true
		case (c == 'e' || c == 'E') && digits && !exp:
			exp = true
		default:
			break scan
		}
		end++
	}
	for end > 0 {
		f, err := strconv.ParseFloat(s[:end], 64)
		if err == nil {
			if math.IsInf(f, 0) || math.IsNaN(f) {
				return 0
			}
			return f
		}
		end--
	}
	return 0
}
