package ir

// Deferred is a value resolved lazily against accumulated attribute state.
//
// A Deferred appears either as a whole-attribute-set initial snapshot or as
// a single attribute's value. Resolution looks up state[key] (the whole
// snapshot when key is empty) and returns transform(lookup), or the lookup
// itself when there is no transform.
//
// A Deferred holds no resolution state. Resolving it twice against the same
// snapshot yields the same result.
type Deferred struct {
	transform func(Value) Value
}

func (*Deferred) irValue() {}

// Relative returns a Deferred applying fn to the prior value.
func Relative(fn func(prior Value) Value) *Deferred {
	return &Deferred{transform: fn}
}

// RelativeAttrs returns a Deferred for whole-set use: fn receives the prior
// snapshot (nil when there is none) and returns the new snapshot.
func RelativeAttrs(fn func(prior Attrs) Attrs) *Deferred {
	return &Deferred{transform: func(v Value) Value {
		prior, _ := v.(Attrs)
		return fn(prior)
	}}
}

// Extend returns a Deferred without transform: it resolves to the prior value.
func Extend() *Deferred {
	return &Deferred{}
}

// Resolve evaluates d against state. An empty key selects the whole snapshot.
func (d *Deferred) Resolve(state Attrs, key string) Value {
	var lookup Value
	if key == "" {
		lookup = state.Clone()
	} else {
		lookup = state.Get(key)
	}
	if d == nil || d.transform == nil {
		return lookup
	}
	return d.transform(lookup)
}

// ResolveAttrs evaluates d against the whole snapshot and returns the result
// as an attribute set. A non-set result resolves to an empty set.
func (d *Deferred) ResolveAttrs(state Attrs) Attrs {
	out, _ := d.Resolve(state, "").(Attrs)
	return out.Clone()
}

// ResolveIn returns a copy of attrs with every attribute-level Deferred
// resolved against state. Values that resolve to another Deferred are
// resolved again until concrete.
func ResolveIn(attrs, state Attrs) Attrs {
	out := attrs.Clone()
	for i, p := range out {
		out[i].Value = ResolveValue(p.Value, state, p.Key)
	}
	return out
}

// ResolveValue resolves v against state[key] when it is Deferred and
// returns it unchanged otherwise.
func ResolveValue(v Value, state Attrs, key string) Value {
	for depth := 0; depth < maxResolveDepth; depth++ {
		d, ok := v.(*Deferred)
		if !ok {
			return v
		}
		v = d.Resolve(state, key)
	}
	return nil
}

// maxResolveDepth bounds chains of Deferreds resolving to Deferreds.
const maxResolveDepth = 16
