package timeline

import (
	"strings"

	"github.com/roach88/basc/internal/ir"
	"github.com/roach88/basc/internal/timing"
)

// ChainConnector joins consecutive commands of one chain.
const ChainConnector = " then "

// Definition declares an item and its initial attributes.
type Definition struct {
	Kind  Kind
	ID    string
	Attrs ir.Attrs
}

// String renders "def <kind> <id>{<attrs>}".
func (d Definition) String() string {
	return "def " + string(d.Kind) + " " + d.ID + "{" + RulesFor(d.Kind).FormatAttrs(d.Attrs) + "}"
}

// Command transitions an item's attributes between two points of its
// timeline. Start and End are in milliseconds from the start of the chain.
type Command struct {
	ItemID string
	Kind   Kind
	Attrs  ir.Attrs
	Start  float64
	End    float64
	Curve  Curve
}

// Duration returns End - Start.
func (c Command) Duration() float64 {
	return c.End - c.Start
}

// String renders `set <id> {<attrs>} <duration>[,"<curve>"]`. The curve
// suffix is omitted for Linear.
func (c Command) String() string {
	var b strings.Builder
	b.WriteString("set ")
	b.WriteString(c.ItemID)
	b.WriteString(" {")
	b.WriteString(RulesFor(c.Kind).FormatAttrs(c.Attrs))
	b.WriteString("} ")
	b.WriteString(timing.Duration(c.Duration()))
	if curve := c.Curve.orLinear(); curve != Linear {
		b.WriteString(`,"`)
		b.WriteString(string(curve))
		b.WriteString(`"`)
	}
	return b.String()
}

// Branch is a chain of commands starting at time zero. Parallel branches
// run alongside the main chain.
type Branch []Command

// String joins the commands with ChainConnector.
func (br Branch) String() string {
	return joinCommands(br)
}

func joinCommands(cmds []Command) string {
	parts := make([]string, len(cmds))
	for i, c := range cmds {
		parts[i] = c.String()
	}
	return strings.Join(parts, ChainConnector)
}

// Block is the compiled form of one item.
type Block struct {
	Definition Definition
	Main       []Command
	Parallel   []Branch
	Sub        []*Block

	// Elapsed is where the main chain ends, in milliseconds.
	Elapsed float64
}

// String renders the block: the definition line; one line holding the
// parallel branches (space separated) followed by the main chain; then every
// sub-block. Empty lines are dropped.
func (b *Block) String() string {
	lines := []string{b.Definition.String()}

	var timeline []string
	for _, br := range b.Parallel {
		timeline = append(timeline, br.String())
	}
	if len(b.Main) > 0 {
		timeline = append(timeline, joinCommands(b.Main))
	}
	if line := strings.Join(timeline, " "); line != "" {
		lines = append(lines, line)
	}

	for _, sub := range b.Sub {
		if s := sub.String(); s != "" {
			lines = append(lines, s)
		}
	}
	return strings.Join(lines, "\n")
}

// Walk visits b and every nested sub-block depth first, parents first.
func (b *Block) Walk(fn func(*Block)) {
	fn(b)
	for _, sub := range b.Sub {
		sub.Walk(fn)
	}
}

// Program is a compiled registry: one block per root in creation order.
type Program struct {
	Blocks []*Block
}

// String joins the root blocks with newlines.
func (p *Program) String() string {
	parts := make([]string, len(p.Blocks))
	for i, b := range p.Blocks {
		parts[i] = b.String()
	}
	return strings.Join(parts, "\n")
}

// Definitions returns every definition in the program, depth first.
func (p *Program) Definitions() []Definition {
	var defs []Definition
	for _, b := range p.Blocks {
		b.Walk(func(blk *Block) { defs = append(defs, blk.Definition) })
	}
	return defs
}

// Find returns the block defining id, or nil.
func (p *Program) Find(id string) *Block {
	var found *Block
	for _, b := range p.Blocks {
		b.Walk(func(blk *Block) {
			if found == nil && blk.Definition.ID == id {
				found = blk
			}
		})
	}
	return found
}

// Hash returns the content hash of the rendered program.
func (p *Program) Hash() string {
	return ir.ProgramHash(p.String())
}
