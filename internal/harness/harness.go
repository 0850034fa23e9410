package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/basc/internal/scene"
	"github.com/roach88/basc/internal/store"
	"github.com/roach88/basc/internal/testutil"
	"github.com/roach88/basc/internal/timeline"
)

// Harness is the scenario execution engine.
type Harness struct {
	logger *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Execution flow:
//  1. Load and validate the scene file
//  2. Build the scene into a fresh registry and compile it twice
//  3. Archive the program twice in a fresh in-memory store
//  4. Evaluate the scenario's assertions against the program
//
// Returns an error only for infrastructure failures (unreadable scene,
// store failure). Assertion failures are reported in Result.Errors.
func Run(scenario *Scenario) (*Result, error) {
	h := &Harness{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	return h.run(context.Background(), scenario)
}

func (h *Harness) run(ctx context.Context, scenario *Scenario) (*Result, error) {
	f, err := scene.LoadFile(scenario.Scene)
	if err != nil {
		return nil, fmt.Errorf("load scene: %w", err)
	}

	reg := timeline.NewRegistry(timeline.WithLogger(h.logger))
	if _, err := scene.Build(f, reg, scene.WithLogger(h.logger)); err != nil {
		return nil, fmt.Errorf("build scene: %w", err)
	}

	prog := reg.Compile()
	result := NewResult()
	result.Program = prog.String()
	result.Hash = prog.Hash()

	if again := reg.Compile().String(); again != result.Program {
		result.AddError(fmt.Sprintf("compile is not repeatable:\nfirst:\n%s\nsecond:\n%s", result.Program, again))
	}

	id, err := h.archive(ctx, scenario.Name, prog, result)
	if err != nil {
		return nil, err
	}
	result.BuildID = id

	for i, a := range scenario.Assertions {
		if err := evaluate(a, prog); err != nil {
			result.AddError(fmt.Sprintf("assertion %d (%s) failed: %v", i, a.Type, err))
		}
	}

	return result, nil
}

// archive saves prog twice and checks the second save is deduplicated.
func (h *Harness) archive(ctx context.Context, name string, prog *timeline.Program, result *Result) (string, error) {
	st, err := store.Open(":memory:",
		store.WithIDGenerator(testutil.SequentialGenerator(2)),
		store.WithLogger(h.logger),
	)
	if err != nil {
		return "", fmt.Errorf("open archive: %w", err)
	}
	defer st.Close()

	first, _, err := st.SaveProgram(ctx, name, prog)
	if err != nil {
		return "", fmt.Errorf("archive program: %w", err)
	}
	second, created, err := st.SaveProgram(ctx, name, prog)
	if err != nil {
		return "", fmt.Errorf("archive program: %w", err)
	}
	if created || second.ID != first.ID {
		result.AddError(fmt.Sprintf("unchanged program archived twice: %s then %s", first.ID, second.ID))
	}
	if first.ProgramHash != result.Hash {
		result.AddError(fmt.Sprintf("archived hash %s, want %s", first.ProgramHash, result.Hash))
	}
	return first.ID, nil
}
