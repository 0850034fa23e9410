package scene

import (
	"fmt"
	"strings"

	"github.com/roach88/basc/internal/timeline"
)

// Validate checks the scene's structure and returns every problem found.
// Asset files are not opened here; Build reports missing assets.
func Validate(f *File) []error {
	v := &validator{}
	if strings.TrimSpace(f.Name) == "" {
		v.add(ErrCodeName, "", "name is required")
	}
	if len(f.Items) == 0 {
		v.add(ErrCodeNoItems, "", "scene has no items")
	}
	for i := range f.Items {
		v.item(&f.Items[i], fmt.Sprintf("items[%d]", i))
	}
	return v.errs
}

type validator struct {
	errs []error
}

func (v *validator) add(code, path, format string, args ...any) {
	v.errs = append(v.errs, &LoadError{Code: code, Path: path, Message: fmt.Sprintf(format, args...)})
}

func (v *validator) item(it *ItemSpec, path string) {
	kind := timeline.Kind(it.Kind)
	if timeline.RulesFor(kind) == nil {
		v.add(ErrCodeKind, path+".kind", "unknown kind %q (want text or path)", it.Kind)
	}
	if it.Asset != "" && kind != timeline.KindPath {
		v.add(ErrCodeAsset, path+".asset", "assets are only valid on path items")
	}
	for i := range it.Ops {
		v.op(&it.Ops[i], fmt.Sprintf("%s.ops[%d]", path, i), false)
	}
	for i := range it.Children {
		v.item(&it.Children[i], fmt.Sprintf("%s.children[%d]", path, i))
	}
}

func (v *validator) op(op *OpSpec, path string, inEffect bool) {
	kinds := op.opKinds()
	switch len(kinds) {
	case 0:
		v.add(ErrCodeOperation, path, "empty operation")
		return
	case 1:
	default:
		v.add(ErrCodeOperation, path, "operation sets %s; want exactly one", strings.Join(kinds, ", "))
		return
	}

	switch {
	case op.Animate != nil:
		v.curve(op.Animate.Curve, path+".animate.curve")
	case op.Parallel != nil:
		for i, a := range op.Parallel.Animates {
			v.curve(a.Curve, fmt.Sprintf("%s.parallel.animates[%d].curve", path, i))
		}
	case op.Delay != nil:
		if inEffect {
			v.add(ErrCodePlacement, path+".delay", "delay is not allowed inside an effect")
		}
	case op.Replace != nil:
		if inEffect {
			v.add(ErrCodePlacement, path+".replace", "replace is not allowed inside an effect; use item")
		}
		v.item(op.Replace, path+".replace")
	case op.Item != nil:
		if !inEffect {
			v.add(ErrCodePlacement, path+".item", "item is only allowed inside an effect")
		}
		v.item(op.Item, path+".item")
	case op.Effect != nil:
		for i := range op.Effect {
			v.op(&op.Effect[i], fmt.Sprintf("%s.effect[%d]", path, i), true)
		}
	}
}

func (v *validator) curve(c, path string) {
	if !timeline.Curve(c).Valid() {
		v.add(ErrCodeCurve, path, "unknown curve %q", c)
	}
}
