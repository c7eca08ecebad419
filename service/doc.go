// Package service orchestrates the engine core and its collaborators:
// the matching book, trade tape, outbox, metrics, and logging.
//
// OrderService is the only write entry point. One mutex covers the whole
// submit pass over both book sides, which is the coarsest-grained locking
// the engine permits: crossing one side relinks levels that a concurrent
// rest on the same side would touch.
package service
