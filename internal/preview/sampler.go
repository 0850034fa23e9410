// Package preview evaluates a compiled program at a point in time, the way
// a renderer would see it, without rendering anything.
package preview

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/tanema/gween"

	"github.com/roach88/basc/internal/ir"
	"github.com/roach88/basc/internal/timeline"
	"github.com/roach88/basc/internal/timing"
)

// ErrUnknownItem is returned when sampling an id the program does not define.
var ErrUnknownItem = errors.New("unknown item")

// Frame is one item's attributes at a sampled time.
type Frame struct {
	ID    string
	Kind  timeline.Kind
	Attrs ir.Attrs
}

// Sampler answers "what are the attributes of item X at time t" for a
// compiled program.
type Sampler struct {
	prog *timeline.Program
}

// New creates a Sampler over prog.
func New(prog *timeline.Program) *Sampler {
	return &Sampler{prog: prog}
}

// Duration returns the end of the latest command in the program, in
// milliseconds.
func (s *Sampler) Duration() float64 {
	var end float64
	for _, b := range s.prog.Blocks {
		b.Walk(func(blk *timeline.Block) {
			for _, cmd := range commands(blk) {
				end = max(end, cmd.End)
			}
		})
	}
	return end
}

// At returns the attributes of item id at t milliseconds.
func (s *Sampler) At(id string, t float64) (ir.Attrs, error) {
	blk := s.prog.Find(id)
	if blk == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownItem, id)
	}
	return sample(blk, t), nil
}

// All samples every item of the program at t, in definition order.
func (s *Sampler) All(t float64) []Frame {
	var frames []Frame
	for _, b := range s.prog.Blocks {
		b.Walk(func(blk *timeline.Block) {
			frames = append(frames, Frame{
				ID:    blk.Definition.ID,
				Kind:  blk.Definition.Kind,
				Attrs: sample(blk, t),
			})
		})
	}
	return frames
}

// commands returns the block's parallel and main commands ordered by start
// time. Ties keep parallel branches ahead of the main chain.
func commands(blk *timeline.Block) []timeline.Command {
	var cmds []timeline.Command
	for _, br := range blk.Parallel {
		cmds = append(cmds, br...)
	}
	cmds = append(cmds, blk.Main...)
	slices.SortStableFunc(cmds, func(a, b timeline.Command) int {
		switch {
		case a.Start < b.Start:
			return -1
		case a.Start > b.Start:
			return 1
		}
		return 0
	})
	return cmds
}

func sample(blk *timeline.Block, t float64) ir.Attrs {
	rules := timeline.RulesFor(blk.Definition.Kind)
	state := blk.Definition.Attrs.Clone()
	for _, cmd := range commands(blk) {
		if cmd.Start > t {
			break
		}
		for _, p := range cmd.Attrs {
			if t >= cmd.End {
				state = state.With(p.Key, p.Value)
				continue
			}
			progress := float32(t - cmd.Start)
			from := state.Get(p.Key)
			v := interpolate(rules.Class(p.Key), from, p.Value, progress, float32(cmd.Duration()), cmd.Curve)
			state = state.With(p.Key, v)
		}
	}
	return state
}

// interpolate returns the value between from and to after elapsed of
// duration milliseconds. Numbers, percentages and colors interpolate;
// anything else holds from until the command completes.
func interpolate(class timeline.Class, from, to ir.Value, elapsed, duration float32, curve timeline.Curve) ir.Value {
	fn := Ease(curve)
	tween := func(a, b float64) float64 {
		v, _ := gween.New(float32(a), float32(b), duration, fn).Update(elapsed)
		return float64(v)
	}

	if class == timeline.ClassColor {
		a, okA := parseColor(ir.Text(from))
		b, okB := parseColor(ir.Text(to))
		if okA && okB {
			var out [3]float64
			for i := range out {
				out[i] = tween(float64(a[i]), float64(b[i]))
			}
			return ir.String(formatColor(out, ir.Text(to)))
		}
		return from
	}

	switch dst := to.(type) {
	case ir.Number:
		if ir.IsAbsent(from) {
			return ir.Number(tween(0, float64(dst)))
		}
		if n, ok := from.(ir.Number); ok {
			return ir.Number(tween(float64(n), float64(dst)))
		}
	case ir.String:
		if !strings.HasSuffix(string(dst), "%") {
			break
		}
		src := "0%"
		if !ir.IsAbsent(from) {
			src = ir.Text(from)
		}
		if !strings.HasSuffix(src, "%") {
			break
		}
		v := tween(timing.LeadingFloat(src), timing.LeadingFloat(string(dst)))
		return ir.String(timing.Percent("0", v, timing.DefaultPercentPrecision))
	}
	return from
}

// parseColor reads "#rrggbb", "0xrrggbb" or "rrggbb".
func parseColor(s string) ([3]uint8, bool) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "#"), "0x")
	if len(s) != 6 {
		return [3]uint8{}, false
	}
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return [3]uint8{}, false
	}
	return [3]uint8{uint8(n >> 16), uint8(n >> 8), uint8(n)}, true
}

// formatColor renders channels in the notation of like.
func formatColor(c [3]float64, like string) string {
	prefix := ""
	switch {
	case strings.HasPrefix(like, "#"):
		prefix = "#"
	case strings.HasPrefix(like, "0x"):
		prefix = "0x"
	}
	var b strings.Builder
	b.WriteString(prefix)
	for _, ch := range c {
		fmt.Fprintf(&b, "%02x", uint8(min(max(ch+0.5, 0), 255)))
	}
	return b.String()
}
