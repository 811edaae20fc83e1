// Package diff implements the comparison engine: structural tree
// diffing, LCS-based line diffing with side-by-side alignment and
// unified rendering, logical schema diffing, and the stats and
// navigation reducers built on top of them.
//
// All diff functions are pure: they never mutate their inputs, hold no
// package state, and return bit-identical output for identical inputs.
// Records use positional path identity: a node is "the same node" on
// both sides only when it is reachable by the same tag/ordinal path.
// Delete/insert runs are likewise paired by position, never by content
// similarity.
//
// The Engine type composes the passes into one cancellable run over two
// documents, reporting per-phase progress and returning an immutable
// report.
package diff
