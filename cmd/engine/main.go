package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"matchbook/applog"
	"matchbook/book"
	"matchbook/config"
	"matchbook/infra/kafka"
	"matchbook/infra/outbox"
	"matchbook/infra/sequence"
	"matchbook/infra/tape"
	"matchbook/jobs/broadcaster"
	"matchbook/jobs/depthfeed"
	"matchbook/metrics"
	"matchbook/service"
)

func main() {
	cfg := config.Load()
	log := applog.New(cfg)

	reg := metrics.Init(log)
	if cfg.Metrics.Addr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", metrics.Handler(reg))
			if err := http.ListenAndServe(cfg.Metrics.Addr, mux); err != nil {
				log.Error().Err(err).Msg("metrics listener exited")
			}
		}()
	}

	// ---------------- Trade tape ----------------

	tp, err := tape.Open(tape.Config{
		Dir:         cfg.Tape.Dir,
		SegmentSize: cfg.Tape.SegmentSizeBytes,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("tape init failed")
	}
	defer tp.Close()

	// ---------------- Outbox ----------------

	var ob *outbox.Outbox
	if cfg.Kafka.Enabled {
		ob, err = outbox.Open(cfg.Outbox.Dir)
		if err != nil {
			log.Fatal().Err(err).Msg("outbox init failed")
		}
		defer ob.Close()
	}

	// ---------------- Service ----------------

	svc := service.New(cfg.Instrument, sequence.New(0), tp, ob, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ---------------- Background jobs ----------------

	if cfg.Kafka.Enabled {
		bc, err := broadcaster.New(
			ob,
			cfg.Kafka.Brokers,
			cfg.Kafka.TradeTopic,
			time.Duration(cfg.Kafka.BroadcastIntervalMs)*time.Millisecond,
			log,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("broadcaster init failed")
		}
		defer bc.Close()
		bc.Start(ctx)

		depthProducer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.DepthTopic)
		defer depthProducer.Close()
		feed := depthfeed.New(svc, depthProducer,
			time.Duration(cfg.Kafka.DepthIntervalSeconds)*time.Second, log)
		feed.Start(ctx)
	}

	svc.StartSnapshotJob(ctx, cfg.Snapshot.Dir,
		time.Duration(cfg.Snapshot.IntervalSeconds)*time.Second)

	// ---------------- Demo flow ----------------

	seedOrders(svc, log)
	printLadder(svc)

	log.Info().Str("instrument", cfg.Instrument).Msg("engine running")
	<-ctx.Done()
	log.Info().Msg("shutting down")
}

type seedOrder struct {
	id    string
	side  book.Side
	qty   int64
	price int64
}

func seedOrders(svc *service.OrderService, log applog.Logger) {
	for _, o := range []seedOrder{
		{"001", book.Sell, 500, 103},
		{"002", book.Sell, 800, 105},
		{"003", book.Sell, 600, 104},
		{"004", book.Buy, 1000, 110},
		{"005", book.Buy, 1000, 98},
		{"006", book.Buy, 1000, 98},
		{"007", book.Buy, 1000, 92},
		{"008", book.Buy, 1000, 97},
		{"009", book.Buy, 1000, 100},
	} {
		res, err := svc.Submit(o.id, o.side, book.Limit, o.qty, o.price)
		if err != nil {
			log.Error().Str("order", o.id).Err(err).Msg("submit failed")
			continue
		}
		log.Info().
			Str("order", o.id).
			Int64("filled", res.Filled).
			Int64("remaining", res.Remaining).
			Int("trades", res.Trades).
			Msg("submitted")
	}
}

func printLadder(svc *service.OrderService) {
	d := svc.Depth()

	fmt.Println("---- ASKS ----")
	for i := len(d.Asks) - 1; i >= 0; i-- {
		fmt.Printf("$%d : %d\n", d.Asks[i].Price, d.Asks[i].Qty)
	}
	fmt.Println("---- BIDS ----")
	for _, lvl := range d.Bids {
		fmt.Printf("$%d : %d\n", lvl.Price, lvl.Qty)
	}
	if spread, ok := svc.Spread(); ok {
		mid, _ := svc.Mid()
		fmt.Printf("spread=%d mid=%.2f\n", spread, mid)
	}
}
