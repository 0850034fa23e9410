package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/basc/internal/preview"
	"github.com/roach88/basc/internal/timeline"
	"github.com/roach88/basc/internal/timing"
)

// SampleOptions holds flags for the sample command.
type SampleOptions struct {
	*RootOptions
	At   string // sample time, duration or colon form
	Item string // single item id (optional)
}

// FrameResult is one item's state at the sampled time.
type FrameResult struct {
	ID    string `json:"id"`
	Kind  string `json:"kind"`
	Attrs string `json:"attrs"`
}

// SampleResult holds the sampled frames.
type SampleResult struct {
	Scene      string        `json:"scene"`
	AtMS       float64       `json:"at_ms"`
	DurationMS float64       `json:"duration_ms"`
	Frames     []FrameResult `json:"frames"`
}

// NewSampleCommand creates the sample command.
func NewSampleCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SampleOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sample <scene> --at <time>",
		Short: "Show item attributes at a point in time",
		Long: `Compile a scene and evaluate every item's attributes at a point in time.

Numbers, percentages and colors are interpolated along their curves; other
values switch when their command completes.

Examples:
  basc sample intro.yaml --at 1.5s
  basc sample intro.yaml --at 0:02 --item b`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSample(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.At, "at", "", "time to sample (e.g. 1500ms, 1.5s, 0:01.5)")
	cmd.Flags().StringVar(&opts.Item, "item", "", "sample a single item id")
	_ = cmd.MarkFlagRequired("at")

	return cmd
}

func runSample(opts *SampleOptions, scenePath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := opts.logger(formatter.GetErrWriter()).With("trace_id", formatter.TraceID)

	prog, loaded := CompileScene(scenePath, logger)
	if prog == nil {
		return outputCompileErrors(formatter, loaded.Errors)
	}

	sampler := preview.New(prog)
	at := timing.Parse(opts.At, 0)
	result := SampleResult{
		Scene:      loaded.File.Name,
		AtMS:       at,
		DurationMS: sampler.Duration(),
	}
	formatter.VerboseLog("Sampling %q at %s", result.Scene, timing.Millis(at))

	var frames []preview.Frame
	if opts.Item != "" {
		attrs, err := sampler.At(opts.Item, at)
		if err != nil {
			_ = formatter.Error(ErrCodeSample, err.Error(), nil)
			return WrapExitError(ExitCommandError, ErrCodeSample, err)
		}
		frames = []preview.Frame{{ID: opts.Item, Kind: prog.Find(opts.Item).Definition.Kind, Attrs: attrs}}
	} else {
		frames = sampler.All(at)
	}

	result.Frames = make([]FrameResult, len(frames))
	for i, f := range frames {
		result.Frames[i] = FrameResult{
			ID:    f.ID,
			Kind:  string(f.Kind),
			Attrs: timeline.RulesFor(f.Kind).FormatAttrs(f.Attrs),
		}
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "%s at %s of %s\n", result.Scene, timing.Millis(result.AtMS), timing.Millis(result.DurationMS))
	for _, f := range result.Frames {
		fmt.Fprintf(w, "  %s %s{%s}\n", f.ID, f.Kind, f.Attrs)
	}
	return nil
}
