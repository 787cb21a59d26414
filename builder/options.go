// SPDX-License-Identifier: MIT
// Package: floodmatch/builder
//
// options.go - functional options resolved into an immutable config.
//
// Contract:
//   - Defaults: unit edge weight, no boundary edges, boundary weight
//     following the edge weight unless overridden.
//   - Options are pure setters; resolution order is the call order.

package builder

import "math"

// config is the resolved option set a factory works from.
type config struct {
	edgeWeight     float64
	boundaryWeight float64
	withBoundaries bool
}

// Option adjusts one knob of a fixture factory.
type Option func(*config)

// WithWeight sets the uniform edge weight (default 1).
func WithWeight(w float64) Option {
	return func(c *config) { c.edgeWeight = w }
}

// WithBoundaries attaches boundary edges to the fixture's end nodes (chains
// only; cycles have no ends).
func WithBoundaries() Option {
	return func(c *config) { c.withBoundaries = true }
}

// WithBoundaryWeight sets the boundary edge weight independently of the
// edge weight.
func WithBoundaryWeight(w float64) Option {
	return func(c *config) { c.boundaryWeight = w }
}

func resolve(opts []Option) config {
	cfg := config{edgeWeight: 1, boundaryWeight: math.NaN()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if math.IsNaN(cfg.boundaryWeight) {
		cfg.boundaryWeight = cfg.edgeWeight
	}

	return cfg
}
