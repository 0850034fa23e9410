// Package scene loads declarative scene files and builds them into a
// timeline registry.
//
// A scene is YAML or CUE. Both decode through the same order-preserving
// decoder, so attribute order in the file is the attribute order in the
// compiled program:
//
//	name: intro
//	items:
//	  - kind: text
//	    at: 1s
//	    attrs: {content: hello, x: 10%, y: 50%}
//	    ops:
//	      - animate: {attrs: {x: {offset: 30}}, duration: 2s, curve: ease-out}
//	      - sleep: 500ms
//
// Attribute values are scalars, {offset: n} (added to the prior value;
// "n%" offsets add percentages) or {inherit: true} (the prior value).
package scene
