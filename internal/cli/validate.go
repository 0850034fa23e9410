package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid     bool    `json:"valid"`
	Scene     string  `json:"scene,omitempty"`
	ItemCount int     `json:"item_count,omitempty"`
	Errors    []Issue `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <scene>",
		Short: "Validate a scene without compiling it",
		Long: `Validate a scene file without compiling it.

Reports every problem found (unknown kinds, curves, misplaced operations,
missing assets) rather than stopping at the first one.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, scenePath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	loaded := LoadScene(scenePath)

	// Unreadable or unparsable scenes are command errors
	if loaded.File == nil {
		err := loaded.Errors[0]
		return outputValidateError(formatter, errorCode(err), err.Error(), nil)
	}

	formatter.VerboseLog("Loaded scene %q from %s", loaded.File.Name, scenePath)

	if len(loaded.Errors) > 0 {
		return outputValidationErrors(formatter, loaded.File.Name, issues(loaded.Errors))
	}

	return outputValidateSuccess(formatter, loaded.File.Name, len(loaded.File.Items))
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, name string, items int) error {
	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, Scene: name, ItemCount: items})
	}

	fmt.Fprintf(formatter.Writer, "✓ Scene %q valid (%d root item(s))\n", name, items)
	return nil
}

// outputValidateError outputs a single validation error.
func outputValidateError(formatter *OutputFormatter, code, message string, details interface{}) error {
	_ = formatter.Error(code, message, details)
	// Validation errors are command-level errors (exit code 2)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}

// outputValidationErrors outputs multiple validation errors.
func outputValidationErrors(formatter *OutputFormatter, name string, errs []Issue) error {
	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data: ValidationResult{
				Valid:  false,
				Scene:  name,
				Errors: errs,
			},
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
		}
		if err := formatter.encode(response); err != nil {
			return err
		}

		// Validation failures = exit code 1
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	// Text format
	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)
	writeIssues(formatter, errs)

	// Validation failures = exit code 1
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
