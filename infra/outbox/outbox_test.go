package outbox

import "testing"

func TestPutNewIsPending(t *testing.T) {
	o, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer o.Close()

	if err := o.PutNew(1, []byte("ev-1")); err != nil {
		t.Fatalf("put: %v", err)
	}

	var got []uint64
	if err := o.ScanPending(func(r *Record) error {
		got = append(got, r.Seq)
		if string(r.Payload) != "ev-1" {
			t.Errorf("payload = %q", r.Payload)
		}
		return nil
	}); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(got) != 1 || got[0] != 1 {
		t.Errorf("pending = %v, want [1]", got)
	}
}

func TestAckedLeavesPendingSet(t *testing.T) {
	o, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer o.Close()

	_ = o.PutNew(1, []byte("a"))
	_ = o.PutNew(2, []byte("b"))
	if err := o.MarkSent(1); err != nil {
		t.Fatalf("mark sent: %v", err)
	}
	if err := o.MarkAcked(1); err != nil {
		t.Fatalf("mark acked: %v", err)
	}

	var pending []uint64
	_ = o.ScanPending(func(r *Record) error {
		pending = append(pending, r.Seq)
		return nil
	})
	if len(pending) != 1 || pending[0] != 2 {
		t.Errorf("pending = %v, want [2]", pending)
	}

	rec, err := o.Get(1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.State != StateAcked || rec.Retries != 1 {
		t.Errorf("record 1 = %+v, want acked after one attempt", rec)
	}
}

func TestFailedStaysPendingWithRetryCount(t *testing.T) {
	o, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer o.Close()

	_ = o.PutNew(7, []byte("x"))
	_ = o.MarkSent(7)
	_ = o.MarkFailed(7)

	seen := false
	_ = o.ScanPending(func(r *Record) error {
		seen = true
		if r.State != StateFailed || r.Retries != 2 {
			t.Errorf("record = %+v, want failed with 2 attempts", r)
		}
		return nil
	})
	if !seen {
		t.Error("failed record should remain pending")
	}
}

func TestDeleteAckedUpTo(t *testing.T) {
	dir := t.TempDir()
	o, err := Open(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	for seq := uint64(1); seq <= 3; seq++ {
		_ = o.PutNew(seq, []byte("e"))
	}
	_ = o.MarkSent(1)
	_ = o.MarkAcked(1)
	_ = o.MarkSent(2)
	_ = o.MarkAcked(2)

	if err := o.DeleteAckedUpTo(1); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := o.Get(1); err == nil {
		t.Error("record 1 should be gone")
	}
	if rec, err := o.Get(2); err != nil || rec.State != StateAcked {
		t.Errorf("record 2 should survive (acked above the cutoff): %v", err)
	}
	_ = o.Close()

	// State survives a reopen.
	o, err = Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer o.Close()
	var pending []uint64
	_ = o.ScanPending(func(r *Record) error {
		pending = append(pending, r.Seq)
		return nil
	})
	if len(pending) != 1 || pending[0] != 3 {
		t.Errorf("pending after reopen = %v, want [3]", pending)
	}
}
