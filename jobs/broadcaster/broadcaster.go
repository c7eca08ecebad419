// Package broadcaster drains the trade outbox into Kafka.
//
// Each pending record is marked SENT before the publish attempt so a
// crash between send and ack leaves the record visible to the next
// drain pass. Delivery is at-least-once; consumers dedupe on seq.
package broadcaster

import (
	"context"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog"

	"matchbook/infra/outbox"
	"matchbook/metrics"
)

type Broadcaster struct {
	outbox   *outbox.Outbox
	producer sarama.SyncProducer
	topic    string
	interval time.Duration
	log      zerolog.Logger

	acked uint64 // highest contiguously acked seq, for GC
}

func New(
	ob *outbox.Outbox,
	brokers []string,
	topic string,
	interval time.Duration,
	log zerolog.Logger,
) (*Broadcaster, error) {

	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 5

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}

	return &Broadcaster{
		outbox:   ob,
		producer: producer,
		topic:    topic,
		interval: interval,
		log:      log.With().Str("job", "broadcaster").Logger(),
	}, nil
}

func (b *Broadcaster) Start(ctx context.Context) {
	b.log.Info().Str("topic", b.topic).Dur("interval", b.interval).Msg("started")

	go func() {
		ticker := time.NewTicker(b.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				b.drainOnce()
			}
		}
	}()
}

func (b *Broadcaster) drainOnce() {
	contiguous := true

	err := b.outbox.ScanPending(func(rec *outbox.Record) error {
		if err := b.outbox.MarkSent(rec.Seq); err != nil {
			return err
		}

		msg := &sarama.ProducerMessage{
			Topic: b.topic,
			Key:   sarama.StringEncoder(strconv.FormatUint(rec.Seq, 10)),
			Value: sarama.ByteEncoder(rec.Payload),
		}

		if _, _, err := b.producer.SendMessage(msg); err != nil {
			metrics.BroadcastFailedTotal.Inc()
			b.log.Warn().Err(err).Uint64("seq", rec.Seq).Msg("publish failed, will retry")
			_ = b.outbox.MarkFailed(rec.Seq)
			contiguous = false
			return nil // keep draining later records
		}

		if err := b.outbox.MarkAcked(rec.Seq); err != nil {
			return err
		}
		metrics.BroadcastPublishedTotal.Inc()
		if contiguous {
			b.acked = rec.Seq
		}
		return nil
	})
	if err != nil {
		b.log.Error().Err(err).Msg("drain aborted")
		return
	}

	if b.acked > 0 {
		if err := b.outbox.DeleteAckedUpTo(b.acked); err != nil {
			b.log.Error().Err(err).Uint64("upto", b.acked).Msg("gc failed")
		}
	}
}

func (b *Broadcaster) Close() error {
	return b.producer.Close()
}
