package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/basc/internal/preview"
	"github.com/roach88/basc/internal/store"
	"github.com/roach88/basc/internal/timeline"
	"github.com/roach88/basc/internal/timing"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Output  string // output file path
	Archive string // program archive path
}

// CompilationResult describes a compiled scene.
type CompilationResult struct {
	Scene      string       `json:"scene"`
	Hash       string       `json:"hash"`
	ItemCount  int          `json:"item_count"`
	DurationMS float64      `json:"duration_ms"`
	Program    string       `json:"program"`
	Output     string       `json:"output,omitempty"`
	Build      *store.Build `json:"build,omitempty"`
	Archived   bool         `json:"archived,omitempty"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <scene>",
		Short: "Compile a scene to an animation script",
		Long: `Compile a scene file (.yaml, .yml or .cue) to an animation script.

The script is printed to stdout unless --output is given. With --archive
the program is also recorded in a SQLite archive; recompiling an unchanged
scene does not create a new build.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")
	cmd.Flags().StringVar(&opts.Archive, "archive", rootOpts.Archive, "program archive path (SQLite)")

	return cmd
}

func runCompile(opts *CompileOptions, scenePath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := opts.logger(formatter.GetErrWriter()).With("trace_id", formatter.TraceID)

	prog, loaded := CompileScene(scenePath, logger)
	if prog == nil {
		return outputCompileErrors(formatter, loaded.Errors)
	}
	formatter.VerboseLog("Compiled scene %q from %s", loaded.File.Name, scenePath)

	text := prog.String()
	result := &CompilationResult{
		Scene:      loaded.File.Name,
		Hash:       prog.Hash(),
		ItemCount:  len(prog.Definitions()),
		DurationMS: preview.New(prog).Duration(),
		Program:    text,
		Output:     opts.Output,
	}

	// Write to file if --output specified
	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, []byte(text+"\n"), 0644); err != nil {
			return outputCompileError(formatter, ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err), nil)
		}
	}

	if opts.Archive != "" {
		if err := archiveProgram(cmd, opts, result, prog); err != nil {
			return outputCompileError(formatter, ErrCodeArchive, err.Error(), nil)
		}
	}

	return outputCompileSuccess(formatter, result)
}

// archiveProgram records prog in the archive at opts.Archive.
func archiveProgram(cmd *cobra.Command, opts *CompileOptions, result *CompilationResult, prog *timeline.Program) error {
	st, err := store.Open(opts.Archive, store.WithLogger(opts.logger(cmd.ErrOrStderr())))
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer st.Close()

	b, created, err := st.SaveProgram(cmd.Context(), result.Scene, prog)
	if err != nil {
		return err
	}
	result.Build = &b
	result.Archived = created
	return nil
}

// outputCompileSuccess outputs successful compilation results.
func outputCompileSuccess(formatter *OutputFormatter, result *CompilationResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	w := formatter.Writer
	if result.Output == "" {
		fmt.Fprintln(w, result.Program)
		// Keep stdout a clean script; status goes to stderr.
		w = formatter.GetErrWriter()
	} else {
		fmt.Fprintf(w, "✓ Compiled %q: %d item(s), %s\n",
			result.Scene, result.ItemCount, timing.Duration(result.DurationMS))
		fmt.Fprintf(w, "Wrote program to %s\n", result.Output)
	}

	if result.Build != nil {
		if result.Archived {
			fmt.Fprintf(w, "Archived build %s (seq %d)\n", result.Build.ID, result.Build.Seq)
		} else {
			fmt.Fprintf(w, "Program unchanged since build %s\n", result.Build.ID)
		}
	}

	return nil
}

// outputCompileError outputs a single compilation error.
func outputCompileError(formatter *OutputFormatter, code, message string, details interface{}) error {
	_ = formatter.Error(code, message, details)
	// Compilation errors are command-level errors (exit code 2)
	return WrapExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message), nil)
}

// outputCompileErrors outputs every scene problem.
func outputCompileErrors(formatter *OutputFormatter, errs []error) error {
	problems := issues(errs)

	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    problems[0].Code,
				Message: problems[0].Message,
			},
			Data: problems, // Include all errors in data
		}
		if err := formatter.encode(response); err != nil {
			return err
		}

		// Compilation errors are command-level errors (exit code 2)
		return NewExitError(ExitCommandError, fmt.Sprintf("compilation failed with %d error(s)", len(errs)))
	}

	// Text format
	fmt.Fprintln(formatter.Writer, "✗ Compilation failed")
	fmt.Fprintln(formatter.Writer)
	writeIssues(formatter, problems)

	// Compilation errors are command-level errors (exit code 2)
	return NewExitError(ExitCommandError, fmt.Sprintf("compilation failed with %d error(s)", len(errs)))
}

// writeIssues prints problems in text form.
func writeIssues(formatter *OutputFormatter, problems []Issue) {
	for _, p := range problems {
		if p.Path != "" {
			fmt.Fprintln(formatter.Writer, p.Path)
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", p.Code, p.Message)
	}
}
