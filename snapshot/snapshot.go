package snapshot

import "time"

type Snapshot struct {
	Seq        uint64
	Instrument string
	Created    time.Time
	Orders     []OrderEntry
}

// OrderEntry is one resting order; entries are recorded bids first, best
// level first within a side, FIFO within a level.
type OrderEntry struct {
	ID        string
	Side      int
	Price     int64
	Remaining int64
}
