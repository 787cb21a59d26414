// Package search recovers explicit edge paths from a decode.
//
// The matching layer reports compressed edges: source defects plus the XOR
// of observables between them. When a caller needs the underlying physical
// edges (to apply a correction edge by edge rather than observable by
// observable), this package re-derives them with a shortest-path search on
// the same weighted graph the decoder ran on.
package search
