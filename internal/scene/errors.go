package scene

import (
	"errors"
	"fmt"
)

// Error codes for scene loading and validation.
const (
	ErrCodeRead      = "E201" // Scene file unreadable
	ErrCodeFormat    = "E202" // Unsupported file extension
	ErrCodeParse     = "E203" // YAML syntax or shape error
	ErrCodeCUE       = "E204" // CUE evaluation failed
	ErrCodeNoItems   = "E205" // Scene has no items
	ErrCodeKind      = "E210" // Unknown item kind
	ErrCodeOperation = "E211" // Operation with zero or several kinds
	ErrCodeCurve     = "E212" // Unknown timing curve
	ErrCodePlacement = "E213" // Operation not allowed where it appears
	ErrCodeAsset     = "E214" // Asset missing, unreadable or on a text item
	ErrCodeName      = "E215" // Scene has no name
)

// LoadError is a scene error with a code and the location it refers to.
type LoadError struct {
	Code    string
	Message string

	// Path locates the offending node, e.g. "items[0].ops[2].animate.curve".
	// Empty for file-level errors.
	Path string

	// Err is the underlying cause, if any.
	Err error
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Path, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// IsLoadError reports whether err is or wraps a *LoadError.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}

// ErrorCode returns the code of the first *LoadError in err's chain, or "".
func ErrorCode(err error) string {
	var le *LoadError
	if errors.As(err, &le) {
		return le.Code
	}
	return ""
}
