package harness

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/roach88/basc/internal/ir"
	"github.com/roach88/basc/internal/preview"
	"github.com/roach88/basc/internal/timeline"
	"github.com/roach88/basc/internal/timing"
)

// AssertionError provides structured information about assertion failures.
type AssertionError struct {
	Type     string
	Expected any
	Actual   any
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("%s: expected %v, got %v", e.Type, e.Expected, e.Actual)
}

// evaluate dispatches to the appropriate assertion checker based on type.
func evaluate(a Assertion, prog *timeline.Program) error {
	switch a.Type {
	case AssertProgramContains:
		return assertProgramContains(a, prog)
	case AssertDefinition:
		return assertDefinition(a, prog)
	case AssertElapsed:
		return assertElapsed(a, prog)
	case AssertSample:
		return assertSample(a, prog)
	case AssertItemCount:
		return assertItemCount(a, prog)
	default:
		return fmt.Errorf("unknown assertion type: %s", a.Type)
	}
}

func assertProgramContains(a Assertion, prog *timeline.Program) error {
	lines := strings.Split(prog.String(), "\n")
	if slices.Contains(lines, a.Line) {
		return nil
	}
	return &AssertionError{Type: a.Type, Expected: a.Line, Actual: "no such line"}
}

func assertDefinition(a Assertion, prog *timeline.Program) error {
	blk := prog.Find(a.Item)
	if blk == nil {
		return fmt.Errorf("item %q is not defined", a.Item)
	}
	def := blk.Definition.String()
	for _, frag := range a.Contains {
		if !strings.Contains(def, frag) {
			return &AssertionError{Type: a.Type, Expected: frag, Actual: def}
		}
	}
	return nil
}

func assertElapsed(a Assertion, prog *timeline.Program) error {
	blk := prog.Find(a.Item)
	if blk == nil {
		return fmt.Errorf("item %q is not defined", a.Item)
	}
	if blk.Elapsed != *a.MS {
		return &AssertionError{Type: a.Type, Expected: timing.Millis(*a.MS), Actual: timing.Millis(blk.Elapsed)}
	}
	return nil
}

func assertSample(a Assertion, prog *timeline.Program) error {
	attrs, err := preview.New(prog).At(a.Item, timing.Parse(a.At, 0))
	if err != nil {
		return err
	}
	for _, key := range slices.Sorted(maps.Keys(a.Expect)) {
		want := ir.Text(ir.Of(a.Expect[key]))
		got := ir.Text(attrs.Get(key))
		if got != want {
			return &AssertionError{
				Type:     a.Type,
				Expected: fmt.Sprintf("%s=%s at %s", key, want, a.At),
				Actual:   fmt.Sprintf("%s=%s", key, got),
			}
		}
	}
	return nil
}

func assertItemCount(a Assertion, prog *timeline.Program) error {
	if n := len(prog.Definitions()); n != a.Count {
		return &AssertionError{Type: a.Type, Expected: a.Count, Actual: n}
	}
	return nil
}
