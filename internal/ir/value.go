package ir

import (
	"fmt"
	"slices"

	"github.com/roach88/basc/internal/timing"
)

// Value is a sealed interface representing attribute values.
// Only Null, String, Number, Bool, Attrs and *Deferred implement it.
// A nil Value means "absent".
type Value interface {
	irValue() // Sealed - only these types implement it
}

// Null is an explicit null. It serializes as absent.
type Null struct{}

func (Null) irValue() {}

// String is a textual value, e.g. "50%", "#ffffff" or glyph content.
type String string

func (String) irValue() {}

// Number is a numeric value. Attribute arithmetic (positions, alpha,
// rotation) is fractional, so the underlying type is float64.
type Number float64

func (Number) irValue() {}

// String renders n in its shortest decimal form.
func (n Number) String() string {
	return timing.FormatNumber(float64(n))
}

// Bool is a boolean value.
type Bool bool

func (Bool) irValue() {}

// Attr is one key/value pair of an attribute set.
type Attr struct {
	Key   string
	Value Value
}

// P is a shorthand for Attr for ergonomic construction.
// Example: NewAttrs(P("x", String("10%")), P("alpha", Number(0.5)))
func P(key string, value Value) Attr {
	return Attr{Key: key, Value: value}
}

// Attrs is an ordered attribute set. Keys are unique; iteration order is
// insertion order. It is itself a Value so a whole snapshot can be the
// subject of a Deferred resolution.
type Attrs []Attr

func (Attrs) irValue() {}

// NewAttrs builds an attribute set from pairs. A repeated key overwrites the
// earlier value in place.
func NewAttrs(pairs ...Attr) Attrs {
	var out Attrs
	for _, p := range pairs {
		out = out.With(p.Key, p.Value)
	}
	return out
}

// Len returns the number of attributes.
func (a Attrs) Len() int {
	return len(a)
}

// Keys returns the keys in iteration order.
func (a Attrs) Keys() []string {
	keys := make([]string, len(a))
	for i, p := range a {
		keys[i] = p.Key
	}
	return keys
}

// Get returns the value for key, or nil when absent.
func (a Attrs) Get(key string) Value {
	v, _ := a.Lookup(key)
	return v
}

// Lookup returns the value for key and whether the key is present.
func (a Attrs) Lookup(key string) (Value, bool) {
	if i := a.index(key); i >= 0 {
		return a[i].Value, true
	}
	return nil, false
}

// Has reports whether key is present.
func (a Attrs) Has(key string) bool {
	return a.index(key) >= 0
}

// With returns a copy of a with key set to v. An existing key keeps its
// position; a new key is appended.
func (a Attrs) With(key string, v Value) Attrs {
	out := a.Clone()
	if i := out.index(key); i >= 0 {
		out[i].Value = v
		return out
	}
	return append(out, Attr{Key: key, Value: v})
}

// Without returns a copy of a with key removed.
func (a Attrs) Without(key string) Attrs {
	out := a.Clone()
	if i := out.index(key); i >= 0 {
		return slices.Delete(out, i, i+1)
	}
	return out
}

// Merge returns a copy of a overlaid with every attribute of b, in b's order.
func (a Attrs) Merge(b Attrs) Attrs {
	out := a.Clone()
	for _, p := range b {
		if i := out.index(p.Key); i >= 0 {
			out[i].Value = p.Value
			continue
		}
		out = append(out, p)
	}
	return out
}

// Clone returns a shallow copy. Nested Attrs values are shared, which is
// safe because Attrs methods never modify their receiver.
func (a Attrs) Clone() Attrs {
	if a == nil {
		return nil
	}
	return slices.Clone(a)
}

func (a Attrs) index(key string) int {
	for i, p := range a {
		if p.Key == key {
			return i
		}
	}
	return -1
}

// Of converts a plain Go value into a Value. It accepts Values, nil,
// strings, bools, every integer and float kind, map[string]any (unordered,
// keys sorted) and []Attr. Unsupported types are rendered with fmt.
func Of(v any) Value {
	switch val := v.(type) {
	case nil:
		return nil
	case Value:
		return val
	case string:
		return String(val)
	case bool:
		return Bool(val)
	case int:
		return Number(val)
	case int8:
		return Number(val)
	case int16:
		return Number(val)
	case int32:
		return Number(val)
	case int64:
		return Number(val)
	case uint:
		return Number(val)
	case uint8:
		return Number(val)
	case uint16:
		return Number(val)
	case uint32:
		return Number(val)
	case uint64:
		return Number(val)
	case float32:
		return Number(val)
	case float64:
		return Number(val)
	case []Attr:
		return NewAttrs(val...)
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		out := make(Attrs, 0, len(keys))
		for _, k := range keys {
			out = append(out, Attr{Key: k, Value: Of(val[k])})
		}
		return out
	default:
		return String(fmt.Sprint(val))
	}
}

// Truthy reports whether v counts as true for boolean attributes:
// true, non-zero numbers and non-empty strings.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case Bool:
		return bool(val)
	case Number:
		return val != 0
	case String:
		return val != ""
	case Attrs:
		return true
	case *Deferred:
		return val != nil
	default:
		return false
	}
}

// IsAbsent reports whether v is nil or Null.
func IsAbsent(v Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(Null)
	return ok
}

// Text renders v as plain text. Absent values and attribute sets render as
// the empty string.
func Text(v Value) string {
	switch val := v.(type) {
	case String:
		return string(val)
	case Number:
		return val.String()
	case Bool:
		if val {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}
