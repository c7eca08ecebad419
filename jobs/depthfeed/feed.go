// Package depthfeed periodically publishes aggregated book depth.
package depthfeed

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"matchbook/infra/kafka"
	"matchbook/service"
)

// Source is anything that can render the current depth snapshot.
type Source interface {
	Depth() service.DepthSnapshot
}

type Feed struct {
	source   Source
	producer *kafka.Producer
	interval time.Duration
	log      zerolog.Logger
}

func New(source Source, producer *kafka.Producer, interval time.Duration, log zerolog.Logger) *Feed {
	return &Feed{
		source:   source,
		producer: producer,
		interval: interval,
		log:      log.With().Str("job", "depthfeed").Logger(),
	}
}

func (f *Feed) Start(ctx context.Context) {
	f.log.Info().Dur("interval", f.interval).Msg("started")

	go func() {
		ticker := time.NewTicker(f.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				f.publishOnce(ctx)
			}
		}
	}()
}

func (f *Feed) publishOnce(ctx context.Context) {
	snap := f.source.Depth()

	payload, err := json.Marshal(snap)
	if err != nil {
		f.log.Error().Err(err).Msg("encode depth")
		return
	}

	if err := f.producer.Send(ctx, []byte(snap.Instrument), payload); err != nil {
		f.log.Warn().Err(err).Msg("publish depth")
	}
}
