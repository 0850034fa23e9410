package timeline

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/basc/internal/ir"
)

func newTestRegistry() *Registry {
	return NewRegistry(WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func text(content string) ir.Attrs {
	return ir.NewAttrs(ir.P("content", ir.String(content)))
}

func lines(s ...string) string {
	return strings.Join(s, "\n")
}

func TestCompileIndependentRoots(t *testing.T) {
	reg := newTestRegistry()
	reg.Text(text("hi"), "")
	reg.Text(text("yo"), "")

	assert.Equal(t, lines(
		`def text a{content="hi"}`,
		`def text b{content="yo"}`,
	), reg.Compile().String())
}

func TestCompileAnimateChain(t *testing.T) {
	reg := newTestRegistry()
	reg.Text(text("hi"), "").
		Animate(ir.NewAttrs(ir.P("x", ir.String("50%"))), "1s", "").
		Animate(ir.NewAttrs(ir.P("alpha", ir.Number(0))), "500ms", EaseOut)

	assert.Equal(t, lines(
		`def text a{content="hi"}`,
		`set a {x=50%} 1000ms then set a {alpha=0} 500ms,"ease-out"`,
	), reg.Compile().String())
}

func TestCompileAbsoluteTimestampsNeverRegress(t *testing.T) {
	reg := newTestRegistry()
	reg.Text(text("t"), "").
		Sleep("1s").
		Sleep("0:2").
		Sleep("0:0.5")

	prog := reg.Compile()
	assert.Equal(t, lines(
		`def text a{content="t"}`,
		`set a {} 1000ms then set a {} 1000ms then set a {} 0s`,
	), prog.String())
	assert.Equal(t, 2000.0, prog.Blocks[0].Elapsed)
}

func TestElapsedNonDecreasingAcrossAnimates(t *testing.T) {
	exprs := []string{"1s", ":3", "250ms", "0:1", "", "2m", "bogus", "1:00", "10ms", ":0"}

	reg := newTestRegistry()
	it := reg.Text(text("t"), "")
	for _, e := range exprs {
		it.Sleep(e)
	}

	main := reg.Compile().Blocks[0].Main
	require.Len(t, main, len(exprs))
	prevEnd := 0.0
	for i, cmd := range main {
		assert.Equal(t, prevEnd, cmd.Start, "command %d starts where the previous ended", i)
		assert.GreaterOrEqual(t, cmd.End, cmd.Start, "command %d", i)
		prevEnd = cmd.End
	}
}

func TestCompileDelayedTextRevealsToAlpha(t *testing.T) {
	reg := newTestRegistry()
	reg.Text(ir.NewAttrs(ir.P("content", ir.String("x")), ir.P("alpha", ir.Number(0.8))), "2s")
	reg.Text(text("y"), "1.5s")

	assert.Equal(t, lines(
		`def text a{content="x" alpha=0}`,
		`set a {} 2000ms then set a {alpha=0.8} 0s`,
		`def text b{content="y" alpha=0}`,
		`set b {} 1500ms then set b {alpha=1} 0s`,
	), reg.Compile().String())
}

func TestRepeatedDelayReplacesPreamble(t *testing.T) {
	reg := newTestRegistry()
	it := reg.Text(text("x"), "1s").Animate(ir.NewAttrs(ir.P("x", ir.Number(5))), "1s", "")
	it.Delay("2s")

	assert.Equal(t, 3000.0, it.InitialDelay())
	assert.False(t, it.Immediate())
	assert.Equal(t, lines(
		`def text a{content="x" alpha=0}`,
		`set a {} 3000ms then set a {alpha=1} 0s then set a {x=5} 1000ms`,
	), reg.Compile().String())
}

func TestDelayedPathHasNoPreamble(t *testing.T) {
	reg := newTestRegistry()
	it := reg.Path(ir.NewAttrs(ir.P("d", ir.String("M0 0")), ir.P("fillColor", ir.String("#ff0000"))))
	it.Delay("1s")

	assert.Equal(t, `def path a{d="M0 0" fillColor=0xff0000}`, reg.Compile().String())
}

func TestCompileDefinitionFormatting(t *testing.T) {
	reg := newTestRegistry()
	reg.Text(ir.NewAttrs(
		ir.P("color", ir.String("#abcdef")),
		ir.P("bold", ir.Bool(true)),
		ir.P("content", ir.String("c")),
		ir.P("fontFamily", ir.String("SimHei")),
		ir.P("x", ir.Number(10)),
		ir.P("strokeWidth", nil),
		ir.P("parent", ir.String("zz")),
	), "")

	assert.Equal(t,
		`def text a{color=0xabcdef bold=1 content="c" fontFamily="SimHei" x=10}`,
		reg.Compile().String())
}

func TestCompileChildren(t *testing.T) {
	reg := newTestRegistry()
	parent := reg.Text(text("p"), "")
	child := reg.Text(text("c"), "").Animate(ir.NewAttrs(ir.P("alpha", ir.Number(0))), "1s", "")
	parent.Children(child)

	require.Len(t, reg.Roots(), 1)
	assert.Equal(t, lines(
		`def text a{content="p"}`,
		`def text b{content="c" parent=a}`,
		`set b {alpha=0} 1000ms`,
	), reg.Compile().String())
}

func TestCompileEffectItemAnchorsAtCurrentElapsed(t *testing.T) {
	reg := newTestRegistry()
	a := reg.Text(ir.NewAttrs(ir.P("content", ir.String("a")), ir.P("x", ir.String("10%"))), "").
		Animate(ir.NewAttrs(ir.P("x", ir.String("20%"))), "1s", "")
	b := reg.Text(ir.RelativeAttrs(func(prior ir.Attrs) ir.Attrs {
		return prior.With("content", ir.String("b"))
	}), "")
	a.Effect(b)
	b.Animate(ir.NewAttrs(ir.P("alpha", ir.Number(0))), "500ms", "")

	require.Len(t, reg.Roots(), 1, "effect members leave the registry")
	assert.Equal(t, lines(
		`def text a{content="a" x=10%}`,
		`set a {x=20%} 1000ms`,
		`def text b{content="b" x=20% alpha=0}`,
		`set b {} 1000ms then set b {alpha=1} 0s then set b {alpha=0} 500ms`,
	), reg.Compile().String())
}

func TestCompileEffectItemsShareOneAnchor(t *testing.T) {
	reg := newTestRegistry()
	a := reg.Text(text("a"), "").Sleep("1s")
	b := reg.Text(ir.Extend(), "")
	c := reg.Text(ir.Extend(), "")
	a.Effect(b, c)

	out := reg.Compile().String()
	assert.Contains(t, out, `set b {} 1000ms then set b {alpha=1} 0s`)
	assert.Contains(t, out, `set c {} 1000ms then set c {alpha=1} 0s`)
	assert.Contains(t, out, `def text c{content="a" alpha=0}`)
}

func TestCompileEffectOperationsOnlyAnimateAdvances(t *testing.T) {
	reg := newTestRegistry()
	reg.Text(text("a"), "").
		Effect(
			NewParallelAnimate([]*Animate{NewAnimate(ir.NewAttrs(ir.P("x", ir.String("5%"))), "", EaseIn)}, "1s"),
			NewAnimate(ir.NewAttrs(ir.P("y", ir.String("1%"))), "500ms", ""),
		).
		Sleep("0:2")

	assert.Equal(t, lines(
		`def text a{content="a"}`,
		`set a {} 0s then set a {x=5%} 1000ms,"ease-in" set a {} 1000ms then set a {y=1%} 500ms then set a {} 1500ms`,
	), reg.Compile().String())
}

func TestCompileParallelAnimateThreadsState(t *testing.T) {
	inc := ir.Relative(func(v ir.Value) ir.Value {
		n, _ := v.(ir.Number)
		return n + 1
	})
	times10 := ir.Relative(func(v ir.Value) ir.Value {
		n, _ := v.(ir.Number)
		return n * 10
	})

	reg := newTestRegistry()
	reg.Text(ir.NewAttrs(ir.P("content", ir.String("a")), ir.P("x", ir.Number(1))), "").
		Sleep("1s").
		ParallelAnimate([]*Animate{
			NewAnimate(ir.NewAttrs(ir.P("x", inc)), "99s", ""),
			NewAnimate(ir.NewAttrs(ir.P("x", times10)), "", Ease),
		}, "2s").
		Animate(ir.NewAttrs(ir.P("x", ir.Extend())), "", "")

	prog := reg.Compile()
	assert.Equal(t, lines(
		`def text a{content="a" x=1}`,
		`set a {} 1000ms then set a {x=2} 2000ms `+
			`set a {} 1000ms then set a {x=20} 2000ms,"ease" `+
			`set a {} 1000ms then set a {} 2000ms then set a {x=20} 0s`,
	), prog.String())
	assert.Equal(t, 3000.0, prog.Blocks[0].Elapsed)
	assert.Len(t, prog.Blocks[0].Parallel, 2)
}

func TestCompileEmptyParallelAnimate(t *testing.T) {
	reg := newTestRegistry()
	reg.Text(text("a"), "").Sleep("1s").ParallelAnimate(nil, "5s")

	block := reg.Compile().Blocks[0]
	assert.Equal(t, 1000.0, block.Elapsed)
	assert.Empty(t, block.Parallel)
	assert.Len(t, block.Main, 1)
}

func TestCompileDeferredAttributeResolvesAgainstState(t *testing.T) {
	reg := newTestRegistry()
	shift := ir.Relative(func(v ir.Value) ir.Value {
		return ir.String(ir.Text(v) + "!")
	})
	reg.Text(text("go"), "").
		Animate(ir.NewAttrs(ir.P("content", shift)), "1s", "").
		Animate(ir.NewAttrs(ir.P("content", shift)), "1s", "")

	assert.Equal(t, lines(
		`def text a{content="go"}`,
		`set a {content="go!"} 1000ms then set a {content="go!!"} 1000ms`,
	), reg.Compile().String())
}

func TestCompileIsRepeatable(t *testing.T) {
	reg := newTestRegistry()
	a := reg.Text(ir.NewAttrs(ir.P("content", ir.String("a")), ir.P("x", ir.Number(1))), "")
	a.Animate(ir.NewAttrs(ir.P("x", ir.Relative(func(v ir.Value) ir.Value {
		return v.(ir.Number) + 1
	}))), "1s", "")
	b := reg.Text(ir.Extend(), "")
	a.Effect(b)

	first := reg.Compile().String()
	second := reg.Compile().String()
	assert.Equal(t, first, second)
	assert.Equal(t, 0.0, b.InitialDelay(), "effect anchoring does not persist")
}

func TestCompileSelfContainingGraphIsCut(t *testing.T) {
	reg := newTestRegistry()
	a := reg.Text(text("a"), "")
	b := reg.Text(text("b"), "")
	a.Children(b)
	b.Children(a)

	assert.Empty(t, reg.Roots())
	assert.Equal(t, lines(
		`def text a{content="a"}`,
		`def text b{content="b" parent=a}`,
	), a.Compile().String())
}

func TestReplaceReturnsNext(t *testing.T) {
	reg := newTestRegistry()
	a := reg.Text(text("a"), "").Sleep("1s")
	b := reg.Text(text("b"), "")

	got := a.Replace(b)
	assert.Same(t, b, got)
	assert.Len(t, reg.Roots(), 1)
}
