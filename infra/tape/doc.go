// Package tape persists the historical trade stream as an append-only
// segmented binary log. Each record is CRC-framed and carries the trade
// sequence number, so a scan can verify ordering and detect torn writes.
//
// The tape is a journal for reporting and audit collaborators; it is
// never replayed into a live book.
package tape
