package scene

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/roach88/basc/internal/asset"
	"github.com/roach88/basc/internal/ir"
	"github.com/roach88/basc/internal/timeline"
)

// BuildOption configures Build and Compile.
type BuildOption func(*builder)

// WithAssets shares an asset loader, and so its cache, across builds.
func WithAssets(l *asset.Loader) BuildOption {
	return func(b *builder) {
		b.assets = l
	}
}

// WithLogger sets the logger of the registry Compile creates.
func WithLogger(logger *slog.Logger) BuildOption {
	return func(b *builder) {
		b.logger = logger
	}
}

type builder struct {
	reg    *timeline.Registry
	assets *asset.Loader
	logger *slog.Logger
	dir    string
}

func newBuilder(f *File, opts []BuildOption) *builder {
	b := &builder{dir: f.Dir}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	if b.assets == nil {
		b.assets = asset.NewLoader(asset.WithLogger(b.logger))
	}
	return b
}

// Compile builds f into a fresh registry and compiles it.
func Compile(f *File, opts ...BuildOption) (*timeline.Program, error) {
	b := newBuilder(f, opts)
	reg := timeline.NewRegistry(timeline.WithLogger(b.logger))
	if _, err := b.build(f, reg); err != nil {
		return nil, err
	}
	return reg.Compile(), nil
}

// Build adds the scene's items to reg and returns the roots it created.
// The scene is validated first.
func Build(f *File, reg *timeline.Registry, opts ...BuildOption) ([]*timeline.Item, error) {
	return newBuilder(f, opts).build(f, reg)
}

func (b *builder) build(f *File, reg *timeline.Registry) ([]*timeline.Item, error) {
	if errs := Validate(f); len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	b.reg = reg

	roots := make([]*timeline.Item, 0, len(f.Items))
	for i := range f.Items {
		it, err := b.item(&f.Items[i], fmt.Sprintf("items[%d]", i))
		if err != nil {
			return nil, err
		}
		roots = append(roots, it)
	}
	b.logger.Debug("built scene", "name", f.Name, "roots", len(roots))
	return roots, nil
}

func (b *builder) item(spec *ItemSpec, path string) (*timeline.Item, error) {
	attrs := spec.Attrs.Attrs()
	if spec.Asset != "" {
		a, err := b.assets.Load(b.resolve(spec.Asset))
		if err != nil {
			return nil, &LoadError{Code: ErrCodeAsset, Path: path + ".asset", Message: err.Error(), Err: err}
		}
		attrs = a.Attrs().Merge(attrs)
	}

	var initial ir.Value = attrs
	if spec.Extend {
		initial = ir.RelativeAttrs(func(prior ir.Attrs) ir.Attrs {
			return prior.Merge(attrs)
		})
	}

	it, err := b.reg.CreateItem(timeline.Kind(spec.Kind), initial, spec.At)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeKind, Path: path + ".kind", Message: err.Error(), Err: err}
	}

	for i := range spec.Ops {
		if err := b.op(it, &spec.Ops[i], fmt.Sprintf("%s.ops[%d]", path, i)); err != nil {
			return nil, err
		}
	}
	for i := range spec.Children {
		child, err := b.item(&spec.Children[i], fmt.Sprintf("%s.children[%d]", path, i))
		if err != nil {
			return nil, err
		}
		it.Children(child)
	}
	return it, nil
}

func (b *builder) op(it *timeline.Item, op *OpSpec, path string) error {
	switch {
	case op.Delay != nil:
		it.Delay(*op.Delay)
	case op.Replace != nil:
		next, err := b.item(op.Replace, path+".replace")
		if err != nil {
			return err
		}
		it.Replace(next)
	default:
		m, err := b.member(op, path)
		if err != nil {
			return err
		}
		o, ok := m.(timeline.Operation)
		if !ok {
			return &LoadError{Code: ErrCodePlacement, Path: path, Message: "item is only allowed inside an effect"}
		}
		it.Append(o)
	}
	return nil
}

// member converts an operation or effect entry. Items are only returned for
// effect entries, which Validate guarantees.
func (b *builder) member(op *OpSpec, path string) (timeline.Member, error) {
	switch {
	case op.Animate != nil:
		return animate(*op.Animate), nil
	case op.Parallel != nil:
		animates := make([]*timeline.Animate, 0, len(op.Parallel.Animates))
		for _, a := range op.Parallel.Animates {
			animates = append(animates, animate(a))
		}
		return timeline.NewParallelAnimate(animates, op.Parallel.Duration), nil
	case op.Sleep != nil:
		return timeline.NewAnimate(nil, *op.Sleep, timeline.Linear), nil
	case op.Item != nil:
		return b.item(op.Item, path+".item")
	case op.Effect != nil:
		members := make([]timeline.Member, 0, len(op.Effect))
		for i := range op.Effect {
			m, err := b.member(&op.Effect[i], fmt.Sprintf("%s.effect[%d]", path, i))
			if err != nil {
				return nil, err
			}
			members = append(members, m)
		}
		return timeline.NewEffect(members...), nil
	default:
		return nil, &LoadError{Code: ErrCodeOperation, Path: path, Message: "unsupported operation"}
	}
}

func animate(a AnimateSpec) *timeline.Animate {
	return timeline.NewAnimate(a.Attrs.Attrs(), a.Duration, timeline.Curve(a.Curve))
}

func (b *builder) resolve(p string) string {
	if filepath.IsAbs(p) || b.dir == "" {
		return p
	}
	return filepath.Join(b.dir, p)
}
