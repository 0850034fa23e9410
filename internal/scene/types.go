package scene

// File is a decoded scene file.
type File struct {
	// Name identifies the scene in the program archive.
	Name string `yaml:"name"`

	// Description is free text.
	Description string `yaml:"description,omitempty"`

	// Items are the root items in creation order.
	Items []ItemSpec `yaml:"items"`

	// Dir is the directory of the source file. Asset paths resolve
	// against it.
	Dir string `yaml:"-"`
}

// ItemSpec describes one item and everything nested under it.
type ItemSpec struct {
	// Kind is "text" or "path".
	Kind string `yaml:"kind"`

	// At delays the item's start (a duration expression).
	At string `yaml:"at,omitempty"`

	// Attrs is the initial snapshot, in file order.
	Attrs Attrs `yaml:"attrs,omitempty"`

	// Extend merges Attrs over the ambient state instead of replacing it.
	// Only meaningful for effect members.
	Extend bool `yaml:"extend,omitempty"`

	// Asset is an SVG file whose geometry seeds a path's attributes.
	Asset string `yaml:"asset,omitempty"`

	Ops      []OpSpec   `yaml:"ops,omitempty"`
	Children []ItemSpec `yaml:"children,omitempty"`
}

// OpSpec is one step of an item's timeline. Exactly one field is set.
type OpSpec struct {
	Animate  *AnimateSpec  `yaml:"animate,omitempty"`
	Parallel *ParallelSpec `yaml:"parallel,omitempty"`
	Sleep    *string       `yaml:"sleep,omitempty"`
	Delay    *string       `yaml:"delay,omitempty"`
	Effect   []OpSpec      `yaml:"effect,omitempty"`
	Replace  *ItemSpec     `yaml:"replace,omitempty"`

	// Item is only valid as an effect member.
	Item *ItemSpec `yaml:"item,omitempty"`
}

// AnimateSpec is an attribute transition.
type AnimateSpec struct {
	Attrs    Attrs  `yaml:"attrs,omitempty"`
	Duration string `yaml:"duration,omitempty"`
	Curve    string `yaml:"curve,omitempty"`
}

// ParallelSpec runs several transitions over one shared duration. The
// duration of each entry in Animates is ignored.
type ParallelSpec struct {
	Duration string        `yaml:"duration,omitempty"`
	Animates []AnimateSpec `yaml:"animates,omitempty"`
}

// opKinds lists the OpSpec fields that are set, by their file names.
func (o OpSpec) opKinds() []string {
	var kinds []string
	if o.Animate != nil {
		kinds = append(kinds, "animate")
	}
	if o.Parallel != nil {
		kinds = append(kinds, "parallel")
	}
	if o.Sleep != nil {
		kinds = append(kinds, "sleep")
	}
	if o.Delay != nil {
		kinds = append(kinds, "delay")
	}
	if o.Effect != nil {
		kinds = append(kinds, "effect")
	}
	if o.Replace != nil {
		kinds = append(kinds, "replace")
	}
	if o.Item != nil {
		kinds = append(kinds, "item")
	}
	return kinds
}
