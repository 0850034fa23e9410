package timeline

import (
	"slices"

	"github.com/roach88/basc/internal/ir"
	"github.com/roach88/basc/internal/timing"
)

// Member is anything an Effect can hold: an *Item or an Operation.
type Member interface {
	effectMember()
}

// Operation is one timeline step. Implementations are *Animate,
// *ParallelAnimate and *Effect.
type Operation interface {
	Member

	// apply folds the operation into frame f of item it.
	apply(c *compiler, it *Item, f frame) (fragment, frame)
}

// defaultTimestamp is the duration of an operation built without one: an
// absolute zero, which the non-regression rule turns into "no time passes".
const defaultTimestamp = ":0"

// Animate transitions attributes over a duration.
type Animate struct {
	attrs               ir.Attrs
	durationOrTimestamp string
	curve               Curve
}

// NewAnimate builds an Animate. Empty durationOrTimestamp means ":0" and
// empty curve means Linear.
func NewAnimate(attrs ir.Attrs, durationOrTimestamp string, curve Curve) *Animate {
	if durationOrTimestamp == "" {
		durationOrTimestamp = defaultTimestamp
	}
	return &Animate{
		attrs:               attrs.Clone(),
		durationOrTimestamp: durationOrTimestamp,
		curve:               curve.orLinear(),
	}
}

func (*Animate) effectMember() {}

// Attrs returns a copy of the attribute deltas.
func (a *Animate) Attrs() ir.Attrs { return a.attrs.Clone() }

// DurationOrTimestamp returns the time expression.
func (a *Animate) DurationOrTimestamp() string { return a.durationOrTimestamp }

// Curve returns the timing curve.
func (a *Animate) Curve() Curve { return a.curve }

func (a *Animate) apply(_ *compiler, it *Item, f frame) (fragment, frame) {
	target := timing.Elapsed(timing.Parse(a.durationOrTimestamp, f.elapsed), f.elapsed)
	deltas := ir.ResolveIn(a.attrs, f.state)

	cmd := Command{
		ItemID: it.id,
		Kind:   it.kind,
		Attrs:  deltas,
		Start:  f.elapsed,
		End:    target,
		Curve:  a.curve,
	}
	return fragment{main: []Command{cmd}}, frame{elapsed: target, state: f.state.Merge(deltas)}
}

// ParallelAnimate runs several transitions side by side over one shared
// duration. Each descriptor's own duration is ignored; its curve is kept.
type ParallelAnimate struct {
	animates            []*Animate
	durationOrTimestamp string
}

// NewParallelAnimate builds a ParallelAnimate. Nil descriptors are dropped.
func NewParallelAnimate(animates []*Animate, durationOrTimestamp string) *ParallelAnimate {
	if durationOrTimestamp == "" {
		durationOrTimestamp = defaultTimestamp
	}
	return &ParallelAnimate{
		animates:            slices.DeleteFunc(slices.Clone(animates), func(a *Animate) bool { return a == nil }),
		durationOrTimestamp: durationOrTimestamp,
	}
}

func (*ParallelAnimate) effectMember() {}

// Animates returns a copy of the descriptors.
func (p *ParallelAnimate) Animates() []*Animate { return slices.Clone(p.animates) }

// DurationOrTimestamp returns the shared time expression.
func (p *ParallelAnimate) DurationOrTimestamp() string { return p.durationOrTimestamp }

// apply simulates each descriptor as its own branch starting at time zero:
// a wait up to the group start, then the descriptor over the shared
// duration. State threads from one branch to the next. The main chain gets
// a single wait to the shared target so later steps stay aligned.
func (p *ParallelAnimate) apply(c *compiler, it *Item, f frame) (fragment, frame) {
	if len(p.animates) == 0 {
		return fragment{}, f
	}
	target := timing.Elapsed(timing.Parse(p.durationOrTimestamp, f.elapsed), f.elapsed)

	state := f.state
	branches := make([]Branch, 0, len(p.animates))
	for _, a := range p.animates {
		steps := []*Animate{
			NewAnimate(nil, timing.Millis(f.elapsed), Linear),
			NewAnimate(a.attrs, p.durationOrTimestamp, a.curve),
		}
		sim := frame{elapsed: 0, state: state}
		var branch Branch
		for _, step := range steps {
			out, next := step.apply(c, it, sim)
			branch = append(branch, out.main...)
			sim = next
		}
		state = sim.state
		branches = append(branches, branch)
	}

	wait := Command{
		ItemID: it.id,
		Kind:   it.kind,
		Start:  f.elapsed,
		End:    target,
		Curve:  Linear,
	}
	return fragment{main: []Command{wait}, parallel: branches}, frame{elapsed: target, state: state}
}

// Effect is a branch of mixed members run from the current point.
//
// Item members compile independently, anchored at the current elapsed time
// as an absolute offset and inheriting the current state; all item members
// of one Effect share that anchor. Operation members fold into the
// current (elapsed, state) like top-level steps, but only Animate members
// advance elapsed for later members.
type Effect struct {
	members []Member
}

// NewEffect builds an Effect and adopts every Item member, detaching it
// from its previous owner. Nil members are dropped.
func NewEffect(members ...Member) *Effect {
	e := &Effect{}
	for _, m := range members {
		switch v := m.(type) {
		case nil:
			continue
		case *Item:
			if v == nil {
				continue
			}
			adopt(e, v)
		case Operation:
			if isNilOperation(v) {
				continue
			}
		}
		e.members = append(e.members, m)
	}
	return e
}

func (*Effect) effectMember() {}

// Members returns a copy of the members.
func (e *Effect) Members() []Member { return slices.Clone(e.members) }

func (e *Effect) release(it *Item) {
	e.members = slices.DeleteFunc(e.members, func(m Member) bool {
		item, ok := m.(*Item)
		return ok && item == it
	})
}

func (e *Effect) apply(c *compiler, it *Item, f frame) (fragment, frame) {
	var out fragment
	for _, m := range e.members {
		switch v := m.(type) {
		case *Item:
			if b := c.compileItem(v, f.state, nil, f.elapsed); b != nil {
				out.sub = append(out.sub, b)
			}
		case Operation:
			o, next := v.apply(c, it, f)
			out.add(o)
			if _, ok := v.(*Animate); ok {
				f.elapsed = next.elapsed
			}
			f.state = next.state
		}
	}
	return out, f
}

// isNilOperation catches typed nil pointers stored in an Operation.
func isNilOperation(op Operation) bool {
	switch v := op.(type) {
	case *Animate:
		return v == nil
	case *ParallelAnimate:
		return v == nil
	case *Effect:
		return v == nil
	}
	return false
}
