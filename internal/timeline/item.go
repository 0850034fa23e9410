package timeline

import (
	"slices"

	"github.com/roach88/basc/internal/ir"
	"github.com/roach88/basc/internal/timing"
)

// owner is anything that holds Items exclusively: the Registry, a parent
// Item (children) or an Effect (item members).
type owner interface {
	release(it *Item)
}

// adopt moves it under o, detaching it from its previous owner first.
func adopt(o owner, it *Item) {
	if it.owner != nil {
		it.owner.release(it)
	}
	it.owner = o
}

// Item is an animatable overlay object (text glyph or vector path) with its
// own initial attributes and timeline.
//
// Items are created by a Registry. The builder methods return the receiver
// so calls chain:
//
//	reg.Text(ir.NewAttrs(ir.P("content", ir.String("hi"))), "1s").
//		Animate(ir.NewAttrs(ir.P("x", ir.String("50%"))), "500ms", timeline.EaseOut).
//		Sleep("2s")
type Item struct {
	id    string
	kind  Kind
	rules *Rules

	// initial is ir.Attrs or *ir.Deferred (applied to the ambient state).
	initial ir.Value

	sequence []Operation
	children []*Item

	// delay is the accumulated initial delay in milliseconds. An item with
	// a positive delay is not immediate: it starts hidden and is revealed
	// by a synthesized preamble.
	delay float64

	owner owner
}

func (*Item) effectMember() {}

// ID returns the item id.
func (it *Item) ID() string {
	return it.id
}

// Kind returns the item kind.
func (it *Item) Kind() Kind {
	return it.kind
}

// Initial returns the initial snapshot: ir.Attrs, *ir.Deferred or nil.
func (it *Item) Initial() ir.Value {
	return it.initial
}

// InitialDelay returns the accumulated initial delay in milliseconds.
func (it *Item) InitialDelay() float64 {
	return it.delay
}

// Immediate reports whether the item is visible from time zero.
func (it *Item) Immediate() bool {
	return it.delay <= 0
}

// Operations returns a copy of the operation sequence.
func (it *Item) Operations() []Operation {
	return slices.Clone(it.sequence)
}

// ChildItems returns a copy of the children list.
func (it *Item) ChildItems() []*Item {
	return slices.Clone(it.children)
}

// Owned reports whether the item currently has an owner.
func (it *Item) Owned() bool {
	return it.owner != nil
}

// Delay pushes the item's start back by expr (parsed with a zero baseline)
// on top of any earlier delay. The reveal preamble is synthesized at
// compile time from the total, so repeated calls never stack preambles.
func (it *Item) Delay(expr string) *Item {
	if expr == "" {
		return it
	}
	total := timing.Parse(expr, 0) + it.delay
	if total > 0 {
		it.delay = total
	} else {
		it.delay = 0
	}
	return it
}

// Append adds prebuilt operations to the sequence. Nil operations are skipped.
func (it *Item) Append(ops ...Operation) *Item {
	for _, op := range ops {
		if op == nil || isNilOperation(op) {
			continue
		}
		it.sequence = append(it.sequence, op)
	}
	return it
}

// Animate appends an attribute transition. durationOrTimestamp is a unit
// expression (relative) or a colon timestamp (absolute); empty means ":0".
func (it *Item) Animate(attrs ir.Attrs, durationOrTimestamp string, curve Curve) *Item {
	return it.Append(NewAnimate(attrs, durationOrTimestamp, curve))
}

// ParallelAnimate appends a group of transitions sharing one duration.
func (it *Item) ParallelAnimate(animates []*Animate, durationOrTimestamp string) *Item {
	return it.Append(NewParallelAnimate(animates, durationOrTimestamp))
}

// Effect appends a branch of mixed members. Item members are detached from
// their previous owners immediately.
func (it *Item) Effect(members ...Member) *Item {
	return it.Append(NewEffect(members...))
}

// Replace hands over to next at the current point of the timeline and
// returns next for further chaining.
func (it *Item) Replace(next *Item) *Item {
	it.Effect(next)
	return next
}

// Sleep appends an attribute-less wait.
func (it *Item) Sleep(durationOrTimestamp string) *Item {
	return it.Animate(nil, durationOrTimestamp, Linear)
}

// Children adopts items as children, detaching each from its previous
// owner. Nil items and the receiver itself are ignored.
func (it *Item) Children(items ...*Item) *Item {
	for _, child := range items {
		if child == nil || child == it {
			continue
		}
		adopt(it, child)
		it.children = append(it.children, child)
	}
	return it
}

// Detach removes the item from its current owner. It is a no-op for an
// item without owner.
func (it *Item) Detach() {
	if it == nil || it.owner == nil {
		return
	}
	it.owner.release(it)
	it.owner = nil
}

func (it *Item) release(child *Item) {
	it.children = slices.DeleteFunc(it.children, func(c *Item) bool { return c == child })
}

// initialState resolves the initial snapshot against the ambient state:
// a whole-set Deferred first, then every attribute-level Deferred.
func (it *Item) initialState(ambient ir.Attrs) ir.Attrs {
	var state ir.Attrs
	switch v := it.initial.(type) {
	case *ir.Deferred:
		state = v.ResolveAttrs(ambient)
	case ir.Attrs:
		state = v.Clone()
	}
	return ir.ResolveIn(state, ambient)
}

// Compile compiles the item as a standalone root: baseline zero, no parent
// and no ambient state.
func (it *Item) Compile() *Block {
	c := newCompiler(nil)
	return c.compileItem(it, nil, nil, 0)
}
