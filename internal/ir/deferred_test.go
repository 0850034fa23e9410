package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeferredWithoutTransformReturnsLookup(t *testing.T) {
	state := NewAttrs(P("x", String("10%")), P("alpha", Number(0.5)))

	assert.Equal(t, String("10%"), Extend().Resolve(state, "x"))
	assert.Nil(t, Extend().Resolve(state, "missing"))
	assert.Equal(t, state, Extend().Resolve(state, ""))
}

func TestDeferredWithTransform(t *testing.T) {
	state := NewAttrs(P("rotateZ", Number(10)))
	spin := Relative(func(prior Value) Value {
		n, _ := prior.(Number)
		return n + 20
	})

	assert.Equal(t, Number(30), spin.Resolve(state, "rotateZ"))
	// Missing prior: the transform still runs with nil.
	assert.Equal(t, Number(20), spin.Resolve(nil, "rotateZ"))
}

func TestDeferredResolveIsRepeatable(t *testing.T) {
	state := NewAttrs(P("x", Number(1)))
	inc := Relative(func(prior Value) Value {
		n, _ := prior.(Number)
		return n + 1
	})

	first := inc.Resolve(state, "x")
	second := inc.Resolve(state, "x")
	assert.Equal(t, first, second)
	assert.Equal(t, Number(1), state.Get("x"))
}

func TestRelativeAttrs(t *testing.T) {
	ambient := NewAttrs(P("x", String("5%")), P("content", String("a")))
	d := RelativeAttrs(func(prior Attrs) Attrs {
		return prior.With("content", String("b"))
	})

	got := d.ResolveAttrs(ambient)
	assert.Equal(t, NewAttrs(P("x", String("5%")), P("content", String("b"))), got)
	assert.Equal(t, String("a"), ambient.Get("content"))

	// No ambient snapshot at all.
	assert.Equal(t, NewAttrs(P("content", String("b"))), d.ResolveAttrs(nil))
}

func TestResolveAttrsNonSetResult(t *testing.T) {
	d := Relative(func(Value) Value { return Number(1) })
	assert.Empty(t, d.ResolveAttrs(NewAttrs(P("x", Number(1)))))
}

func TestResolveIn(t *testing.T) {
	state := NewAttrs(P("x", Number(1)), P("y", Number(2)))
	deltas := NewAttrs(
		P("x", Relative(func(v Value) Value { return v.(Number) * 10 })),
		P("y", Extend()),
		P("alpha", Number(1)),
	)

	got := ResolveIn(deltas, state)
	assert.Equal(t, NewAttrs(P("x", Number(10)), P("y", Number(2)), P("alpha", Number(1))), got)

	// Stored deltas keep their Deferred values.
	_, stillDeferred := deltas.Get("x").(*Deferred)
	assert.True(t, stillDeferred)
}

func TestResolveValueChains(t *testing.T) {
	inner := Relative(func(Value) Value { return String("done") })
	outer := Relative(func(Value) Value { return inner })
	assert.Equal(t, String("done"), ResolveValue(outer, nil, "k"))
}
