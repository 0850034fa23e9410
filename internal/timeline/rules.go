package timeline

import (
	"strings"

	"github.com/roach88/basc/internal/ir"
	"github.com/roach88/basc/internal/timing"
)

// Kind names an item subtype as written in definitions ("def text a{...}").
type Kind string

const (
	// KindText is a text glyph.
	KindText Kind = "text"
	// KindPath is a vector path.
	KindPath Kind = "path"
)

// Curve names a timing curve. The empty Curve means Linear.
type Curve string

const (
	Linear    Curve = "linear"
	Ease      Curve = "ease"
	EaseIn    Curve = "ease-in"
	EaseOut   Curve = "ease-out"
	EaseInOut Curve = "ease-in-out"
)

// Curves lists every known curve in declaration order.
var Curves = []Curve{Linear, Ease, EaseIn, EaseOut, EaseInOut}

// Valid reports whether c is a known curve or empty.
func (c Curve) Valid() bool {
	if c == "" {
		return true
	}
	for _, known := range Curves {
		if c == known {
			return true
		}
	}
	return false
}

func (c Curve) orLinear() Curve {
	if c == "" {
		return Linear
	}
	return c
}

// Class is the serialization class of an attribute.
type Class int

const (
	// ClassPlain renders key=value.
	ClassPlain Class = iota
	// ClassColor renders key=0x<hex>, stripping a leading '#'.
	ClassColor
	// ClassString renders key="value".
	ClassString
	// ClassBool renders key=1 or key=0.
	ClassBool
)

// Rules is the per-kind attribute rule table. Text glyphs and vector paths
// share one compilation algorithm and differ only here.
type Rules struct {
	Kind    Kind
	classes map[string]Class

	// hiddenUntilReveal forces alpha=0 in the definition of a delayed item
	// and reveals it with a synthesized preamble.
	hiddenUntilReveal bool
}

var textRules = &Rules{
	Kind: KindText,
	classes: map[string]Class{
		"color":       ClassColor,
		"strokeColor": ClassColor,
		"content":     ClassString,
		"fontFamily":  ClassString,
		"bold":        ClassBool,
		"textShadow":  ClassBool,
	},
	hiddenUntilReveal: true,
}

var pathRules = &Rules{
	Kind: KindPath,
	classes: map[string]Class{
		"borderColor": ClassColor,
		"fillColor":   ClassColor,
		"d":           ClassString,
		"viewBox":     ClassString,
	},
}

// Kinds lists the supported item kinds.
var Kinds = []Kind{KindText, KindPath}

// RulesFor returns the rule table for kind, or nil for an unknown kind.
func RulesFor(kind Kind) *Rules {
	switch kind {
	case KindText:
		return textRules
	case KindPath:
		return pathRules
	default:
		return nil
	}
}

// Class returns the serialization class of key.
func (r *Rules) Class(key string) Class {
	if r == nil {
		return ClassPlain
	}
	return r.classes[key]
}

// Format renders one attribute. It returns false when the attribute is
// omitted (absent, null or not representable).
func (r *Rules) Format(key string, v ir.Value) (string, bool) {
	if ir.IsAbsent(v) {
		return "", false
	}
	switch v.(type) {
	case ir.Attrs, *ir.Deferred:
		return "", false
	}

	switch r.Class(key) {
	case ClassColor:
		return key + "=0x" + strings.Replace(ir.Text(v), "#", "", 1), true
	case ClassString:
		return key + `="` + ir.Canonical(ir.Text(v)) + `"`, true
	case ClassBool:
		if ir.Truthy(v) {
			return key + "=1", true
		}
		return key + "=0", true
	default:
		return key + "=" + ir.Text(v), true
	}
}

// FormatAttrs renders attrs in iteration order, space separated.
func (r *Rules) FormatAttrs(attrs ir.Attrs) string {
	parts := make([]string, 0, len(attrs))
	for _, p := range attrs {
		if s, ok := r.Format(p.Key, p.Value); ok {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// preamble returns the operations prefixed to a delayed item: a wait of the
// delay with no attributes, then a zero-length reveal to the target alpha.
// Kinds without a reveal get no preamble.
func (r *Rules) preamble(delay float64, state ir.Attrs) []Operation {
	if !r.hiddenUntilReveal {
		return nil
	}
	alpha := state.Get("alpha")
	if ir.IsAbsent(alpha) {
		alpha = ir.Number(1)
	}
	return []Operation{
		NewAnimate(nil, timing.Millis(delay), Linear),
		NewAnimate(ir.NewAttrs(ir.P("alpha", alpha)), "", Linear),
	}
}

// definitionAttrs applies the kind overrides to the initial state: a hidden
// alpha for delayed items and the parent backreference.
func (r *Rules) definitionAttrs(state ir.Attrs, immediate bool, parent *Item) ir.Attrs {
	attrs := state.Clone()
	if r.hiddenUntilReveal && !immediate {
		attrs = attrs.With("alpha", ir.Number(0))
	}
	var parentID ir.Value
	if parent != nil {
		parentID = ir.String(parent.id)
	}
	return attrs.With("parent", parentID)
}
