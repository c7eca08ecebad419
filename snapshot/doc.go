// Package snapshot serializes the resting book to disk for offline
// reporting tools. Dumps are write-only from the engine's point of view:
// nothing here feeds state back into a live book.
package snapshot
