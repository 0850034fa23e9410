package timeline

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/roach88/basc/internal/ir"
)

// Registry holds root Items and compiles them into one program.
type Registry struct {
	ids    *IDAllocator
	roots  []*Item
	logger *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithIDAllocator shares an id allocator, e.g. between registries rendered
// into one program.
func WithIDAllocator(ids *IDAllocator) Option {
	return func(r *Registry) {
		r.ids = ids
	}
}

// WithLogger sets the logger used while compiling.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// NewRegistry creates an empty Registry with its own id allocator.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{}
	for _, opt := range opts {
		opt(r)
	}
	if r.ids == nil {
		r.ids = NewIDAllocator()
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// CreateItem creates a root item of kind. initial is nil, ir.Attrs or an
// *ir.Deferred applied to the ambient state at compile time. at delays the
// item's start (see Item.Delay); empty means immediate.
func (r *Registry) CreateItem(kind Kind, initial ir.Value, at string) (*Item, error) {
	rules := RulesFor(kind)
	if rules == nil {
		return nil, fmt.Errorf("unknown item kind %q", kind)
	}
	switch initial.(type) {
	case nil, ir.Attrs, *ir.Deferred:
	default:
		return nil, fmt.Errorf("initial snapshot of %s item must be attributes or deferred, got %T", kind, initial)
	}

	it := &Item{
		id:      r.ids.Next(),
		kind:    kind,
		rules:   rules,
		initial: initial,
	}
	it.Delay(at)
	adopt(r, it)
	r.roots = append(r.roots, it)
	return it, nil
}

// Text creates a root text glyph. It panics when initial is not nil,
// ir.Attrs or *ir.Deferred.
func (r *Registry) Text(initial ir.Value, at string) *Item {
	return r.mustCreate(KindText, initial, at)
}

// Path creates a root vector path. It panics when initial is not nil,
// ir.Attrs or *ir.Deferred.
func (r *Registry) Path(initial ir.Value) *Item {
	return r.mustCreate(KindPath, initial, "")
}

func (r *Registry) mustCreate(kind Kind, initial ir.Value, at string) *Item {
	it, err := r.CreateItem(kind, initial, at)
	if err != nil {
		panic(err)
	}
	return it
}

// Detach removes it from the roots. It is a no-op for nil or for an item
// the registry does not hold.
func (r *Registry) Detach(it *Item) {
	if it == nil || it.owner != owner(r) {
		return
	}
	it.Detach()
}

func (r *Registry) release(it *Item) {
	r.roots = slices.DeleteFunc(r.roots, func(root *Item) bool { return root == it })
}

// Roots returns the current roots in creation order.
func (r *Registry) Roots() []*Item {
	return slices.Clone(r.roots)
}

// IDs returns the registry's id allocator.
func (r *Registry) IDs() *IDAllocator {
	return r.ids
}

// Compile compiles every root with baseline zero, no parent and no ambient
// state. The graph is not modified, so Compile may be called repeatedly.
func (r *Registry) Compile() *Program {
	c := newCompiler(r.logger)
	prog := &Program{Blocks: make([]*Block, 0, len(r.roots))}
	for _, root := range r.roots {
		if b := c.compileItem(root, nil, nil, 0); b != nil {
			prog.Blocks = append(prog.Blocks, b)
		}
	}
	r.logger.Debug("compiled program", "roots", len(prog.Blocks))
	return prog
}
