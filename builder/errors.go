// SPDX-License-Identifier: MIT
// Package: floodmatch/builder
//
// errors.go - sentinel errors shared by all factories.

package builder

import "errors"

var (
	// ErrTooFewNodes marks a fixture size below the factory's minimum.
	ErrTooFewNodes = errors.New("builder: too few nodes")

	// ErrTooManyEdges marks a fixture whose per-edge observables would
	// exceed the mask width.
	ErrTooManyEdges = errors.New("builder: edge count exceeds observable mask width")
)
