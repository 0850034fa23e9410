package scene

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/basc/internal/ir"
	"github.com/roach88/basc/internal/timing"
)

// Attrs is an attribute mapping that keeps file order.
type Attrs []AttrSpec

// AttrSpec is one attribute of a mapping.
type AttrSpec struct {
	Key   string
	Value AttrValue
}

// AttrValue is a scalar, an offset against the prior value, or an
// inherited prior value.
type AttrValue struct {
	// Scalar is the literal value when neither Offset nor Inherit is set.
	Scalar ir.Value

	// Offset is added to the prior value: a number, or "n%" for a
	// percentage.
	Offset string

	Inherit bool
}

// UnmarshalYAML decodes a mapping node pair by pair so the order of the
// file survives.
func (a *Attrs) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null" {
		*a = nil
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: attrs must be a mapping", node.Line)
	}

	out := make(Attrs, 0, len(node.Content)/2)
	seen := make(map[string]bool, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		if keyNode.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: attribute names must be scalars", keyNode.Line)
		}
		key := keyNode.Value
		if seen[key] {
			return fmt.Errorf("line %d: duplicate attribute %q", keyNode.Line, key)
		}
		seen[key] = true

		var v AttrValue
		if err := v.UnmarshalYAML(valNode); err != nil {
			return fmt.Errorf("attribute %q: %w", key, err)
		}
		out = append(out, AttrSpec{Key: key, Value: v})
	}
	*a = out
	return nil
}

// UnmarshalYAML decodes a scalar, {offset: n} or {inherit: true}.
func (v *AttrValue) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		s, err := scalar(node)
		if err != nil {
			return err
		}
		v.Scalar = s
		return nil
	case yaml.MappingNode:
		var sawOffset bool
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode, valNode := node.Content[i], node.Content[i+1]
			switch keyNode.Value {
			case "offset":
				if valNode.Kind != yaml.ScalarNode || strings.TrimSpace(valNode.Value) == "" {
					return fmt.Errorf("line %d: offset must be a number or percentage", valNode.Line)
				}
				v.Offset = strings.TrimSpace(valNode.Value)
				sawOffset = true
			case "inherit":
				if err := valNode.Decode(&v.Inherit); err != nil {
					return fmt.Errorf("line %d: inherit: %w", valNode.Line, err)
				}
			default:
				return fmt.Errorf("line %d: unknown field %q in attribute value", keyNode.Line, keyNode.Value)
			}
		}
		switch {
		case sawOffset && v.Inherit:
			return fmt.Errorf("line %d: offset and inherit are exclusive", node.Line)
		case !sawOffset && !v.Inherit:
			return fmt.Errorf("line %d: expected offset or inherit", node.Line)
		}
		return nil
	default:
		return fmt.Errorf("line %d: attribute values must be scalars or {offset}/{inherit}", node.Line)
	}
}

func scalar(node *yaml.Node) (ir.Value, error) {
	switch node.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return nil, err
		}
		return ir.Bool(b), nil
	case "!!int", "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return nil, err
		}
		return ir.Number(f), nil
	default:
		return ir.String(node.Value), nil
	}
}

// Value converts the attribute into a timeline value: the scalar itself,
// or a Deferred resolved against the prior state at compile time.
func (v AttrValue) Value() ir.Value {
	switch {
	case v.Inherit:
		return ir.Extend()
	case v.Offset != "":
		return offset(v.Offset)
	default:
		return v.Scalar
	}
}

// offset builds a Deferred adding delta to the prior value. A percentage
// delta, or a prior value ending in '%', produces a percentage; otherwise
// the result is a number. An absent prior counts as zero.
func offset(delta string) *ir.Deferred {
	n := timing.LeadingFloat(delta)
	percent := strings.HasSuffix(delta, "%")
	return ir.Relative(func(prior ir.Value) ir.Value {
		switch p := prior.(type) {
		case ir.Number:
			if percent {
				return ir.String(timing.Percent(p.String(), n, timing.DefaultPercentPrecision))
			}
			return p + ir.Number(n)
		case ir.String:
			if percent || strings.HasSuffix(string(p), "%") {
				return ir.String(timing.Percent(string(p), n, timing.DefaultPercentPrecision))
			}
			return ir.Number(timing.LeadingFloat(string(p)) + n)
		default:
			if percent {
				return ir.String(timing.Percent("0", n, timing.DefaultPercentPrecision))
			}
			return ir.Number(n)
		}
	})
}

// Attrs converts the mapping into timeline attributes.
func (a Attrs) Attrs() ir.Attrs {
	if len(a) == 0 {
		return nil
	}
	out := make(ir.Attrs, 0, len(a))
	for _, p := range a {
		out = append(out, ir.P(p.Key, p.Value.Value()))
	}
	return out
}

// Get returns the attribute named key.
func (a Attrs) Get(key string) (AttrValue, bool) {
	for _, p := range a {
		if p.Key == key {
			return p.Value, true
		}
	}
	return AttrValue{}, false
}
