// Package flooder simulates simultaneous region growth on a MatchingGraph in
// discrete integer time.
//
// A GraphFlooder owns a priority queue of tentative events. Regions expand or
// retract at unit rate; the flooder predicts edge collisions, node peels and
// implosions, queues them, and replays them in time order through NextEvent.
// Predictions go stale whenever a region changes growth sign or a node's
// flood state changes; stale entries stay in the queue and are discarded on
// pop.
//
// NextEvent returns only the events the matching layer cares about (two
// regions colliding, a region reaching the boundary, a blossom imploding).
// Node absorption and shell peeling are handled internally and emit nothing.
package flooder
