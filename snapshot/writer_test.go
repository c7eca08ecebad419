package snapshot

import (
	"path/filepath"
	"testing"

	"matchbook/book"
)

func TestWriteReadRoundTrip(t *testing.T) {
	b := book.New(nil)
	for _, o := range []struct {
		id    string
		side  book.Side
		qty   int64
		price int64
	}{
		{"b1", book.Buy, 100, 98},
		{"b2", book.Buy, 50, 97},
		{"a1", book.Sell, 75, 103},
	} {
		ord, err := book.NewOrder(o.id, o.side, book.Limit, o.qty, o.price)
		if err != nil {
			t.Fatalf("order %s: %v", o.id, err)
		}
		b.Submit(ord)
	}

	dir := t.TempDir()
	w := &Writer{Dir: dir}
	if err := w.Write(9, "SIM", b); err != nil {
		t.Fatalf("write: %v", err)
	}

	s, err := Read(filepath.Join(dir, "snapshot.bin"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if s.Seq != 9 || s.Instrument != "SIM" {
		t.Errorf("header = seq %d instrument %q", s.Seq, s.Instrument)
	}
	if len(s.Orders) != 3 {
		t.Fatalf("orders = %d, want 3", len(s.Orders))
	}
	// Bids first, best level first.
	if s.Orders[0].ID != "b1" || s.Orders[1].ID != "b2" || s.Orders[2].ID != "a1" {
		t.Errorf("order sequence = %v", s.Orders)
	}
	if s.Orders[2].Remaining != 75 || s.Orders[2].Price != 103 {
		t.Errorf("ask entry = %+v", s.Orders[2])
	}
}
