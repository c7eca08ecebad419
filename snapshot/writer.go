package snapshot

import (
	"encoding/gob"
	"os"
	"path/filepath"
	"time"

	"matchbook/book"
)

type Writer struct {
	Dir string
}

// Write dumps the resting book to <dir>/snapshot.bin, replacing the
// previous dump. The caller must hold whatever lock guards the book.
func (w *Writer) Write(seq uint64, instrument string, b *book.OrderBook) error {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return err
	}

	path := filepath.Join(w.Dir, "snapshot.bin")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	s := Snapshot{
		Seq:        seq,
		Instrument: instrument,
		Created:    time.Now(),
		Orders:     make([]OrderEntry, 0, 256),
	}

	b.EachResting(func(side book.Side, o *book.Order) {
		s.Orders = append(s.Orders, OrderEntry{
			ID:        o.ID,
			Side:      int(side),
			Price:     o.Price,
			Remaining: o.Remaining(),
		})
	})

	return gob.NewEncoder(f).Encode(&s)
}

// Read loads a dump for reporting tools.
func Read(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var s Snapshot
	if err := gob.NewDecoder(f).Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}
