// Package book implements the in-memory matching engine for a single
// instrument. It keeps one price-ordered chain of FIFO levels per side
// and matches incoming orders under price-time priority: best price
// first, earliest arrival first within a price.
//
// The engine is single-threaded and unsynchronized. Callers that need
// concurrent submission must serialize the whole Submit pass (cross plus
// rest) under one lock covering both sides; crossing relinks levels as a
// side effect of execution, so per-level locking is unsafe.
package book
