package service

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"matchbook/book"
	"matchbook/infra/codec"
	"matchbook/infra/outbox"
	"matchbook/infra/sequence"
	"matchbook/infra/tape"
	"matchbook/metrics"
)

// TradeEvent is the wire shape persisted to the tape and published for
// every fill.
type TradeEvent struct {
	V           int    `json:"v"`
	Instrument  string `json:"instrument"`
	Seq         uint64 `json:"seq"`
	AggressorID string `json:"aggressor_id"`
	PassiveID   string `json:"passive_id"`
	Price       int64  `json:"price"`
	Qty         int64  `json:"qty"`
	Side        string `json:"side"` // aggressor side
	Time        int64  `json:"time"` // unix nanos
}

// DepthSnapshot is the full-depth view handed to reporting collaborators.
type DepthSnapshot struct {
	Instrument string            `json:"instrument"`
	Seq        uint64            `json:"seq"`
	Time       time.Time         `json:"time"`
	Bids       []book.DepthLevel `json:"bids"`
	Asks       []book.DepthLevel `json:"asks"`
}

// Result summarizes one submission for the caller.
type Result struct {
	OrderID   string
	Filled    int64
	Remaining int64
	Trades    int
}

// OrderService wires the book to its collaborators. Tape and outbox are
// optional; a nil collaborator is skipped.
type OrderService struct {
	mu         sync.Mutex
	book       *book.OrderBook
	seq        *sequence.Sequencer
	tape       *tape.Log
	outbox     *outbox.Outbox
	enc        codec.Serializer
	log        zerolog.Logger
	instrument string

	// trades emitted by the submission in flight; guarded by mu.
	submitTrades int
}

func New(
	instrument string,
	seq *sequence.Sequencer,
	tp *tape.Log,
	ob *outbox.Outbox,
	log zerolog.Logger,
) *OrderService {
	s := &OrderService{
		seq:        seq,
		tape:       tp,
		outbox:     ob,
		enc:        codec.JSON{},
		log:        log,
		instrument: instrument,
	}
	s.book = book.New(book.TradeSinkFunc(s.onTrade))
	return s
}

// Submit validates, constructs, and matches an order. The cross-and-rest
// pass for one order is atomic with respect to every other caller.
func (s *OrderService) Submit(id string, side book.Side, typ book.OrderType, qty, price int64) (Result, error) {
	o, err := book.NewOrder(id, side, typ, qty, price)
	if err != nil {
		metrics.OrdersRejectedTotal.Inc()
		s.log.Warn().Str("order_id", id).Err(err).Msg("order rejected")
		return Result{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.submitTrades = 0
	s.book.Submit(o)
	metrics.OrdersSubmittedTotal.WithLabelValues(side.String()).Inc()
	s.updateBookGauges()

	res := Result{
		OrderID:   id,
		Filled:    o.Filled,
		Remaining: o.Remaining(),
		Trades:    s.submitTrades,
	}
	s.log.Debug().
		Str("order_id", id).
		Stringer("side", side).
		Stringer("type", typ).
		Int64("qty", qty).
		Int64("filled", res.Filled).
		Int64("remaining", res.Remaining).
		Int("trades", res.Trades).
		Msg("order submitted")
	return res, nil
}

// onTrade runs inside Submit, under mu. Collaborator failures never fail
// the match; they are logged and counted.
func (s *OrderService) onTrade(t book.Trade) {
	t.Seq = s.seq.Next()
	s.submitTrades++

	ev := TradeEvent{
		V:           1,
		Instrument:  s.instrument,
		Seq:         t.Seq,
		AggressorID: t.AggressorID,
		PassiveID:   t.PassiveID,
		Price:       t.Price,
		Qty:         t.Qty,
		Side:        t.AggressorSide.String(),
		Time:        t.Time.UnixNano(),
	}
	payload, err := s.enc.Encode(ev)
	if err != nil {
		s.log.Error().Uint64("seq", t.Seq).Err(err).Msg("trade encode failed")
		return
	}

	if s.tape != nil {
		if err := s.tape.Append(&tape.Record{Seq: t.Seq, Time: ev.Time, Data: payload}); err != nil {
			metrics.TapeErrorsTotal.Inc()
			s.log.Error().Uint64("seq", t.Seq).Err(err).Msg("tape append failed")
		}
	}
	if s.outbox != nil {
		if err := s.outbox.PutNew(t.Seq, payload); err != nil {
			metrics.OutboxErrorsTotal.Inc()
			s.log.Error().Uint64("seq", t.Seq).Err(err).Msg("outbox put failed")
		}
	}

	metrics.TradesTotal.Inc()
	metrics.TradeVolumeTotal.Add(float64(t.Qty))
	s.log.Debug().
		Uint64("seq", t.Seq).
		Str("aggressor", t.AggressorID).
		Str("passive", t.PassiveID).
		Int64("price", t.Price).
		Int64("qty", t.Qty).
		Msg("trade")
}

func (s *OrderService) updateBookGauges() {
	bids := s.book.BidDepth()
	asks := s.book.AskDepth()

	var orders int
	for _, d := range bids {
		orders += d.Orders
	}
	for _, d := range asks {
		orders += d.Orders
	}
	metrics.RestingOrders.Set(float64(orders))
	metrics.PriceLevels.Set(float64(len(bids) + len(asks)))

	if bid, ok := s.book.BestBid(); ok {
		metrics.BestBid.Set(float64(bid))
	} else {
		metrics.BestBid.Set(0)
	}
	if ask, ok := s.book.BestAsk(); ok {
		metrics.BestAsk.Set(float64(ask))
	} else {
		metrics.BestAsk.Set(0)
	}
}

// ---- queries (never mutate) ----

func (s *OrderService) BestBid() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.BestBid()
}

func (s *OrderService) BestAsk() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.BestAsk()
}

func (s *OrderService) Spread() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.Spread()
}

func (s *OrderService) Mid() (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.Mid()
}

// Depth returns the full-depth enumeration of both sides, best-first.
func (s *OrderService) Depth() DepthSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return DepthSnapshot{
		Instrument: s.instrument,
		Seq:        s.seq.Current(),
		Time:       time.Now(),
		Bids:       s.book.BidDepth(),
		Asks:       s.book.AskDepth(),
	}
}
