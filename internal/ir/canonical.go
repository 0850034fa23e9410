package ir

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Canonical returns s in Unicode NFC form. Quoted attribute values (glyph
// content, font names, path data) are normalized before they are written so
// that visually identical input produces byte-identical programs.
func Canonical(s string) string {
	if norm.NFC.IsNormalString(s) {
		return s
	}
	return norm.NFC.String(s)
}

// CanonicalProgram normalizes a whole program text for hashing: NFC form,
// "\n" line endings and no trailing newline.
func CanonicalProgram(program string) string {
	program = strings.ReplaceAll(program, "\r\n", "\n")
	program = strings.TrimRight(program, "\n")
	return Canonical(program)
}
