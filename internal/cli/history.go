package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/basc/internal/store"
	"github.com/roach88/basc/internal/timing"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Archive string // program archive path
}

// HistoryResult lists a scene's archived builds.
type HistoryResult struct {
	Scene  string        `json:"scene"`
	Builds []store.Build `json:"builds"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history <scene-name>",
		Short: "List archived builds of a scene",
		Long: `List the archived builds of a scene, oldest first.

The scene is identified by its name field, not its file path.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Archive, "archive", rootOpts.Archive, "program archive path (SQLite)")

	return cmd
}

func runHistory(opts *HistoryOptions, sceneName string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	if opts.Archive == "" {
		_ = formatter.Error(ErrCodeArchive, "no archive: pass --archive or set BASC_ARCHIVE", nil)
		return NewExitError(ExitCommandError, "no archive configured")
	}
	// Don't create an empty archive as a side effect of reading
	if _, err := os.Stat(opts.Archive); os.IsNotExist(err) {
		msg := fmt.Sprintf("archive not found: %s", opts.Archive)
		_ = formatter.Error(ErrCodeNotFound, msg, nil)
		return NewExitError(ExitCommandError, msg)
	}

	st, err := store.Open(opts.Archive, store.WithLogger(opts.logger(cmd.ErrOrStderr())))
	if err != nil {
		_ = formatter.Error(ErrCodeArchive, err.Error(), nil)
		return WrapExitError(ExitCommandError, "opening archive", err)
	}
	defer st.Close()

	builds, err := st.History(cmd.Context(), sceneName)
	if err != nil {
		_ = formatter.Error(ErrCodeArchive, err.Error(), nil)
		return WrapExitError(ExitCommandError, "reading history", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(HistoryResult{Scene: sceneName, Builds: builds})
	}

	w := formatter.Writer
	if len(builds) == 0 {
		fmt.Fprintf(w, "No builds for scene %q\n", sceneName)
		return nil
	}
	fmt.Fprintf(w, "%d build(s) of %q\n", len(builds), sceneName)
	for _, b := range builds {
		fmt.Fprintf(w, "  #%d %s %s %d item(s) %s\n",
			b.Seq, b.ID, shortHash(b.ProgramHash), b.ItemCount, timing.Duration(b.DurationMS))
	}
	return nil
}

// shortHash trims a content hash for display.
func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
