// Sentinel errors for the decoder runtime model.
//
// Error policy follows the house rules: only package-level sentinels are
// exposed, call sites attach context with %w, and callers branch with
// errors.Is. Invariant violations are assertion-class: they surface as
// ErrInconsistentState wrapped with the violated condition, and the decoder
// treats them as fatal.
package core

import "errors"

var (
	// ErrInvalidNodeIndex indicates a graph-construction argument referenced
	// a node outside [0, NumNodes).
	ErrInvalidNodeIndex = errors.New("core: node index out of range")

	// ErrSelfLoop indicates an edge whose two endpoints are the same node.
	// Detector graphs never contain self-loops: an error mechanism flipping
	// one detector twice flips nothing.
	ErrSelfLoop = errors.New("core: self-loop edge not allowed")

	// ErrNegativeWeight indicates an edge weight below zero. Negative input
	// weights must be absorbed by the preprocessing layer before the runtime
	// graph is built.
	ErrNegativeWeight = errors.New("core: negative edge weight")

	// ErrTooManyObservables indicates a graph declaring more observables
	// than a single mask word can carry (obsmask.MaxObservables).
	ErrTooManyObservables = errors.New("core: too many observables for mask word")

	// ErrInconsistentState indicates a broken internal invariant, e.g. a
	// negative region radius, an event scheduled in the past, or a
	// same-region interaction reaching the dispatcher. Fatal by design.
	ErrInconsistentState = errors.New("core: inconsistent decoder state")
)
