// Package floodmatch is a minimum-weight perfect matching decoder for
// weighted detector graphs, built around a continuous-time blossom
// algorithm: regions flood outward from detection events, collide, form
// alternating trees and blossoms, and settle into the cheapest pairing.
//
// 🚀 What is floodmatch?
//
//	A decoding toolkit that brings together:
//		• Core primitives: detector graphs, regions, radii, alternating trees
//		• Flooding: an event-driven growth engine over integer half-ticks
//		• Matching: blossom formation, implosion and augmenting paths
//		• Weights: probability → log-likelihood conversion, channel merging,
//		  discretization with negative-weight absorption
//		• Inputs: dense parity check matrices, JSON/lz4 graph files, fixtures
//		• Outputs: observable masks, matched pairs, explicit edge paths
//
// Under the hood, everything is organized under focused subpackages:
//
//	obsmask/     — observable parity masks
//	core/        — graph, region, radius, tree and event primitives
//	flooder/     — region growth engine and event queue
//	mwpm/        — matching manager and the Decoder front end
//	wgraph/      — float-weight graph construction and discretization
//	checkmatrix/ — parity check matrix conversion and syndromes
//	search/      — shortest-path expansion of matched pairs
//	builder/     — chain, cycle and repetition-code fixtures
//	graphio/     — JSON (optionally lz4) graph and syndrome files
//	cmd/         — the floodmatch command line tool
//
// Quick ASCII example:
//
//	    ○───●───○───●───○ ─ ─ ▷ boundary
//
//	two detection events (●) on a chain of detectors; the decoder pairs
//	them through the cheaper route, inside the chain or out the boundary.
//
// See ExampleDecoder_Decode in package mwpm for a runnable walkthrough, and
// the builder tests for a repetition-code round trip.
//
//	go get github.com/katalvlaran/floodmatch
package floodmatch
