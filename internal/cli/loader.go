package cli

import (
	"errors"
	"log/slog"

	"github.com/roach88/basc/internal/scene"
	"github.com/roach88/basc/internal/timeline"
)

// Error code constants shared by CLI commands. Scene errors carry their own
// codes (E2xx, see package scene).
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeWriteFailed = "E007" // File write error
	ErrCodeArchive     = "E008" // Program archive error
	ErrCodeSample      = "E009" // Sampling error
)

// LoadResult is a loaded scene and the problems found while loading it.
type LoadResult struct {
	// File is nil when the scene could not be read or parsed.
	File *scene.File

	// Errors holds every problem, one entry per scene.LoadError.
	Errors []error
}

// Valid reports whether the scene loaded without problems.
func (r *LoadResult) Valid() bool {
	return r.File != nil && len(r.Errors) == 0
}

// LoadScene reads and validates a scene file, collecting all errors.
func LoadScene(path string) *LoadResult {
	f, err := scene.LoadFile(path)
	return &LoadResult{File: f, Errors: splitErrors(err)}
}

// CompileScene loads a scene and compiles it.
// Returns the load result so callers can report problems.
func CompileScene(path string, logger *slog.Logger) (*timeline.Program, *LoadResult) {
	res := LoadScene(path)
	if !res.Valid() {
		return nil, res
	}
	prog, err := scene.Compile(res.File, scene.WithLogger(logger))
	if err != nil {
		res.Errors = splitErrors(err)
		return nil, res
	}
	return prog, res
}

// splitErrors flattens an errors.Join tree into its leaves.
func splitErrors(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []error
		for _, e := range joined.Unwrap() {
			out = append(out, splitErrors(e)...)
		}
		return out
	}
	return []error{err}
}

// errorCode returns the scene error code of err, or ErrCodeGeneric.
func errorCode(err error) string {
	if code := scene.ErrorCode(err); code != "" {
		return code
	}
	return ErrCodeGeneric
}

// Issue is one reported scene problem.
type Issue struct {
	Code    string `json:"code"`
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

// issues converts errors to reportable problems.
func issues(errs []error) []Issue {
	out := make([]Issue, len(errs))
	for i, err := range errs {
		var le *scene.LoadError
		if errors.As(err, &le) {
			out[i] = Issue{Code: le.Code, Path: le.Path, Message: le.Message}
			continue
		}
		out[i] = Issue{Code: errorCode(err), Message: err.Error()}
	}
	return out
}
