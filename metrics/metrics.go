// Package metrics exposes engine counters and book gauges to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

var (
	OrdersSubmittedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "orders_submitted_total", Help: "Orders accepted by the engine"}, []string{"side"})
	OrdersRejectedTotal  = prometheus.NewCounter(prometheus.CounterOpts{Name: "orders_rejected_total", Help: "Orders rejected at validation"})
	TradesTotal          = prometheus.NewCounter(prometheus.CounterOpts{Name: "trades_total", Help: "Fills emitted by the matching engine"})
	TradeVolumeTotal     = prometheus.NewCounter(prometheus.CounterOpts{Name: "trade_volume_total", Help: "Total quantity traded"})

	TapeErrorsTotal   = prometheus.NewCounter(prometheus.CounterOpts{Name: "tape_append_errors_total", Help: "Trade tape append failures"})
	OutboxErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{Name: "outbox_errors_total", Help: "Outbox write failures"})

	BroadcastPublishedTotal = prometheus.NewCounter(prometheus.CounterOpts{Name: "broadcast_published_total", Help: "Trade events acknowledged by the broker"})
	BroadcastFailedTotal    = prometheus.NewCounter(prometheus.CounterOpts{Name: "broadcast_failed_total", Help: "Trade event publish attempts that failed"})

	BestBid       = prometheus.NewGauge(prometheus.GaugeOpts{Name: "best_bid", Help: "Best bid price in ticks, 0 when undefined"})
	BestAsk       = prometheus.NewGauge(prometheus.GaugeOpts{Name: "best_ask", Help: "Best ask price in ticks, 0 when undefined"})
	RestingOrders = prometheus.NewGauge(prometheus.GaugeOpts{Name: "resting_orders", Help: "Orders currently resting on both sides"})
	PriceLevels   = prometheus.NewGauge(prometheus.GaugeOpts{Name: "price_levels", Help: "Live price levels on both sides"})
)

func Init(logger zerolog.Logger) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	toRegister := []prometheus.Collector{
		OrdersSubmittedTotal, OrdersRejectedTotal, TradesTotal, TradeVolumeTotal,
		TapeErrorsTotal, OutboxErrorsTotal,
		BroadcastPublishedTotal, BroadcastFailedTotal,
		BestBid, BestAsk, RestingOrders, PriceLevels,
		collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	}
	for _, c := range toRegister {
		_ = reg.Register(c)
	}
	logger.Info().Msg("prometheus metrics initialized")
	return reg
}

func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
