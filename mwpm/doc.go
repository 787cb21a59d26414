// Package mwpm turns flooder events into a minimum-weight perfect matching
// of detection events.
//
// The manager keeps an alternating-tree forest over the flooder's regions.
// Region collisions either augment the matching (two trees meet, or a tree
// reaches the boundary), contract an odd cycle into a blossom (two branches
// of one tree meet), or adopt a matched pair into a tree. Blossom implosions
// re-expand a shrunken blossom in place.
//
// Decoder wraps the manager and the flooder into the one-call entry point:
// feed it detection event indices, get back the observable correction mask,
// the matched pairs and the total matching weight.
package mwpm
