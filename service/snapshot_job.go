package service

import (
	"context"
	"time"

	"matchbook/snapshot"
)

// WriteSnapshot dumps the resting book under the submit lock, so the
// dump is a consistent point-in-time view.
func (s *OrderService) WriteSnapshot(w *snapshot.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return w.Write(s.seq.Current(), s.instrument, s.book)
}

// StartSnapshotJob periodically dumps the book for reporting tools until
// the context is cancelled.
func (s *OrderService) StartSnapshotJob(ctx context.Context, dir string, interval time.Duration) {
	w := &snapshot.Writer{Dir: dir}

	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				if err := s.WriteSnapshot(w); err != nil {
					s.log.Error().Err(err).Msg("snapshot write failed")
					continue
				}
				s.log.Debug().Msg("snapshot written")
			}
		}
	}()
}
