package book

import "time"

// OrderBook owns both sides of one instrument and routes each
// submission: cross the opposite side, then rest any remainder on the
// order's own side.
type OrderBook struct {
	bids *BookSide
	asks *BookSide
	sink TradeSink
	now  func() time.Time
}

// New builds an empty book. A nil sink discards trades.
func New(sink TradeSink) *OrderBook {
	if sink == nil {
		sink = TradeSinkFunc(func(Trade) {})
	}
	return &OrderBook{
		bids: NewBookSide(Buy),
		asks: NewBookSide(Sell),
		sink: sink,
		now:  time.Now,
	}
}

func (b *OrderBook) Bids() *BookSide { return b.bids }
func (b *OrderBook) Asks() *BookSide { return b.asks }

// Submit matches the order and rests any remainder. It runs to
// completion in a single deterministic pass with no failure path; the
// caller must not resubmit an order.
func (b *OrderBook) Submit(o *Order) {
	own, opp := b.bids, b.asks
	if o.Side == Sell {
		own, opp = b.asks, b.bids
	}
	opp.cross(o, func(passive *Order, price, qty int64) {
		b.sink.OnTrade(Trade{
			AggressorID:   o.ID,
			PassiveID:     passive.ID,
			Price:         price,
			Qty:           qty,
			AggressorSide: o.Side,
			Time:          b.now(),
		})
	})
	if o.Remaining() > 0 {
		own.rest(o)
	}
}

func (b *OrderBook) BestBid() (int64, bool) { return b.bids.BestPrice() }
func (b *OrderBook) BestAsk() (int64, bool) { return b.asks.BestPrice() }

// Spread is best ask minus best bid, defined only when both sides are
// non-empty.
func (b *OrderBook) Spread() (int64, bool) {
	bid, okB := b.bids.BestPrice()
	ask, okA := b.asks.BestPrice()
	if !okB || !okA {
		return 0, false
	}
	return ask - bid, true
}

// Mid is the midpoint of the touch. It is the engine's only non-integer
// quantity: an odd bid+ask sum has no integer midpoint.
func (b *OrderBook) Mid() (float64, bool) {
	bid, okB := b.bids.BestPrice()
	ask, okA := b.asks.BestPrice()
	if !okB || !okA {
		return 0, false
	}
	return float64(bid+ask) / 2, true
}

func (b *OrderBook) BidDepth() []DepthLevel { return b.bids.Depth() }
func (b *OrderBook) AskDepth() []DepthLevel { return b.asks.Depth() }

// EachResting visits every resting order, bids then asks, best level
// first within a side and FIFO within a level. Read-only; used by
// snapshot and reporting collaborators.
func (b *OrderBook) EachResting(visit func(Side, *Order)) {
	for lvl := b.bids.head; lvl != nil; lvl = lvl.next {
		for o := lvl.head; o != nil; o = o.next {
			visit(Buy, o)
		}
	}
	for lvl := b.asks.head; lvl != nil; lvl = lvl.next {
		for o := lvl.head; o != nil; o = o.next {
			visit(Sell, o)
		}
	}
}
