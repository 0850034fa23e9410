package timeline

import (
	"log/slog"
	"slices"

	"github.com/roach88/basc/internal/ir"
)

// frame is the accumulated fold state at one point of a timeline. Frames
// are values: every step returns a new one and state is never modified in
// place (ir.Attrs methods copy).
type frame struct {
	elapsed float64
	state   ir.Attrs
}

// fragment is the output of one operation.
type fragment struct {
	main     []Command
	parallel []Branch
	sub      []*Block
}

func (f *fragment) add(o fragment) {
	f.main = append(f.main, o.main...)
	f.parallel = append(f.parallel, o.parallel...)
	f.sub = append(f.sub, o.sub...)
}

// compiler carries per-compile bookkeeping through the recursive fold.
type compiler struct {
	logger *slog.Logger

	// visiting holds the items on the current recursion path. An item
	// reachable from itself is cut at the re-entry point.
	visiting map[*Item]bool
}

func newCompiler(logger *slog.Logger) *compiler {
	if logger == nil {
		logger = slog.Default()
	}
	return &compiler{logger: logger, visiting: make(map[*Item]bool)}
}

// compileItem compiles it with the given ambient state, parent (for the
// definition backreference) and anchor (extra delay for this compile only,
// used by Effect item members).
func (c *compiler) compileItem(it *Item, ambient ir.Attrs, parent *Item, anchor float64) *Block {
	if c.visiting[it] {
		c.logger.Warn("item contains itself, skipping re-entry", "id", it.id)
		return nil
	}
	c.visiting[it] = true
	defer delete(c.visiting, it)

	state := it.initialState(ambient)
	delay := it.delay + anchor
	immediate := delay <= 0

	ops := it.sequence
	if !immediate {
		ops = append(it.rules.preamble(delay, state), ops...)
	}

	c.logger.Debug("compiling item",
		"id", it.id,
		"kind", it.kind,
		"operations", len(ops),
		"children", len(it.children),
		"delay_ms", delay,
	)

	f := frame{elapsed: 0, state: state}
	var out fragment
	for _, op := range slices.Clone(ops) {
		o, next := op.apply(c, it, f)
		out.add(o)
		f = next
	}

	for _, child := range slices.Clone(it.children) {
		if b := c.compileItem(child, nil, it, 0); b != nil {
			out.sub = append(out.sub, b)
		}
	}

	return &Block{
		Definition: Definition{
			Kind:  it.kind,
			ID:    it.id,
			Attrs: it.rules.definitionAttrs(state, immediate, parent),
		},
		Main:     out.main,
		Parallel: out.parallel,
		Sub:      out.sub,
		Elapsed:  f.elapsed,
	}
}
