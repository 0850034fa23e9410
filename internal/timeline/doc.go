// Package timeline compiles trees of timed overlay items into the def/set
// animation-script grammar.
//
// An Item owns an append-only sequence of Operations (Animate,
// ParallelAnimate, Effect) and a list of exclusively owned children.
// Compiling an Item folds (elapsed, state) left to right across its
// sequence, resolving Deferred values against the live snapshot and
// producing a Block: one definition, a main command chain, parallel
// branches and nested sub-blocks.
//
// Output grammar:
//
//	def <kind> <id>{<attr>=<value> ...}
//	set <id> {<attr>=<value> ...} <duration>[,"<curve>"]
//
// Key invariants:
//   - Time never regresses within a chain: every command ends at or after
//     the point where it starts.
//   - An Item has exactly one owner (Registry, parent Item or Effect);
//     adopting it detaches it from the previous owner.
//   - Compilation never modifies the graph. Compiling twice yields the same
//     program.
//
// Thread-safety: a Registry and its Items are not safe for concurrent
// mutation. Build the graph from one goroutine, then compile.
package timeline
