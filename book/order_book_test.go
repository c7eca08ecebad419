package book

import (
	"math/rand"
	"strconv"
	"testing"
)

func newTestBook() (*OrderBook, *[]Trade) {
	trades := &[]Trade{}
	b := New(TradeSinkFunc(func(t Trade) { *trades = append(*trades, t) }))
	return b, trades
}

func submit(t *testing.T, b *OrderBook, id string, side Side, typ OrderType, qty, price int64) *Order {
	t.Helper()
	o, err := NewOrder(id, side, typ, qty, price)
	if err != nil {
		t.Fatalf("order %s rejected: %v", id, err)
	}
	b.Submit(o)
	return o
}

func TestRestingSellSetsBestAsk(t *testing.T) {
	b, trades := newTestBook()
	submit(t, b, "1", Sell, Limit, 500, 103)

	if len(*trades) != 0 {
		t.Fatalf("empty book produced %d trades", len(*trades))
	}
	if ask, ok := b.BestAsk(); !ok || ask != 103 {
		t.Errorf("best ask = %d (%v), want 103", ask, ok)
	}
	if _, ok := b.BestBid(); ok {
		t.Error("best bid should be undefined")
	}
}

func TestPartialFillRestsRemainder(t *testing.T) {
	b, trades := newTestBook()
	submit(t, b, "1", Sell, Limit, 500, 103)
	submit(t, b, "2", Buy, Limit, 1000, 110)

	if len(*trades) != 1 {
		t.Fatalf("trades = %d, want 1", len(*trades))
	}
	tr := (*trades)[0]
	if tr.AggressorID != "2" || tr.PassiveID != "1" || tr.Price != 103 || tr.Qty != 500 {
		t.Errorf("unexpected trade %+v", tr)
	}
	if tr.AggressorSide != Buy {
		t.Errorf("aggressor side = %v, want Buy", tr.AggressorSide)
	}
	if bid, ok := b.BestBid(); !ok || bid != 110 {
		t.Errorf("best bid = %d (%v), want 110", bid, ok)
	}
	if _, ok := b.BestAsk(); ok {
		t.Error("best ask should be undefined after the sell is consumed")
	}
	depth := b.BidDepth()
	if len(depth) != 1 || depth[0].Qty != 500 {
		t.Errorf("resting remainder = %+v, want 500 at one level", depth)
	}
}

func TestCrossWalksMultipleLevels(t *testing.T) {
	b, trades := newTestBook()
	submit(t, b, "1", Sell, Limit, 500, 103)
	submit(t, b, "2", Sell, Limit, 600, 104)
	agg := submit(t, b, "3", Buy, Limit, 700, 104)

	if len(*trades) != 2 {
		t.Fatalf("trades = %d, want 2", len(*trades))
	}
	if (*trades)[0].Qty != 500 || (*trades)[0].Price != 103 {
		t.Errorf("first trade %+v, want 500@103", (*trades)[0])
	}
	if (*trades)[1].Qty != 200 || (*trades)[1].Price != 104 {
		t.Errorf("second trade %+v, want 200@104", (*trades)[1])
	}
	if agg.Remaining() != 0 {
		t.Errorf("aggressor remaining = %d, want 0", agg.Remaining())
	}
	depth := b.AskDepth()
	if len(depth) != 1 || depth[0].Price != 104 || depth[0].Qty != 400 {
		t.Errorf("ask depth = %+v, want 400@104 only", depth)
	}
	if len(b.BidDepth()) != 0 {
		t.Error("fully filled aggressor must rest nothing")
	}
}

func TestMarketSellSweepsBidsBestFirst(t *testing.T) {
	b, trades := newTestBook()
	submit(t, b, "5", Buy, Limit, 600, 98)
	submit(t, b, "6", Buy, Limit, 400, 98)
	submit(t, b, "7", Buy, Limit, 1000, 92)
	submit(t, b, "8", Sell, Market, 1500, 0)

	wantQty := []int64{600, 400, 500}
	wantPrice := []int64{98, 98, 92}
	wantPassive := []string{"5", "6", "7"}
	if len(*trades) != 3 {
		t.Fatalf("trades = %d, want 3", len(*trades))
	}
	for i, tr := range *trades {
		if tr.Qty != wantQty[i] || tr.Price != wantPrice[i] || tr.PassiveID != wantPassive[i] {
			t.Errorf("trade %d = %+v, want %d@%d against %s", i, tr, wantQty[i], wantPrice[i], wantPassive[i])
		}
	}
	if bid, ok := b.BestBid(); !ok || bid != 92 {
		t.Errorf("best bid = %d (%v), want 92 with residual 500", bid, ok)
	}
}

func TestMarketOrderExhaustion(t *testing.T) {
	b, _ := newTestBook()
	submit(t, b, "1", Sell, Limit, 300, 103)
	submit(t, b, "2", Sell, Limit, 700, 105)
	agg := submit(t, b, "3", Buy, Market, 1000, 0)

	if agg.Remaining() != 0 {
		t.Errorf("market buy remaining = %d, want 0", agg.Remaining())
	}
	if len(b.BidDepth()) != 0 {
		t.Error("exhausted market order must rest nothing")
	}
	if !b.Asks().Empty() {
		t.Error("ask side should be fully consumed")
	}
}

func TestPriceTimePriorityAcrossSubmissions(t *testing.T) {
	b, trades := newTestBook()
	submit(t, b, "first", Sell, Limit, 10, 100)
	submit(t, b, "second", Sell, Limit, 10, 100)
	submit(t, b, "better", Sell, Limit, 10, 99)
	submit(t, b, "agg", Buy, Limit, 25, 100)

	wantPassive := []string{"better", "first", "second"}
	if len(*trades) != 3 {
		t.Fatalf("trades = %d, want 3", len(*trades))
	}
	for i, tr := range *trades {
		if tr.PassiveID != wantPassive[i] {
			t.Errorf("fill %d against %s, want %s", i, tr.PassiveID, wantPassive[i])
		}
	}
	// second is partially filled: 25 - 10 - 10 = 5 consumed from it.
	if (*trades)[2].Qty != 5 {
		t.Errorf("last fill qty = %d, want 5", (*trades)[2].Qty)
	}
}

func TestSpreadAndMid(t *testing.T) {
	b, _ := newTestBook()
	if _, ok := b.Spread(); ok {
		t.Error("spread should be undefined on an empty book")
	}
	submit(t, b, "1", Buy, Limit, 10, 98)
	if _, ok := b.Mid(); ok {
		t.Error("mid should be undefined with one-sided book")
	}
	submit(t, b, "2", Sell, Limit, 10, 103)

	if spread, ok := b.Spread(); !ok || spread != 5 {
		t.Errorf("spread = %d (%v), want 5", spread, ok)
	}
	if mid, ok := b.Mid(); !ok || mid != 100.5 {
		t.Errorf("mid = %v (%v), want 100.5", mid, ok)
	}
}

func TestMarketRemainderRestsAtSentinel(t *testing.T) {
	// The sentinel is the engine's only market semantics: an unfilled
	// market remainder rests at the sentinel and absorbs whatever
	// arrives on the other side next.
	b, trades := newTestBook()
	submit(t, b, "m", Buy, Market, 100, 0)

	if bid, ok := b.BestBid(); !ok || bid != MaxPrice {
		t.Fatalf("best bid = %d (%v), want the buy sentinel", bid, ok)
	}

	submit(t, b, "s", Sell, Limit, 100, 5000)
	if len(*trades) != 1 || (*trades)[0].Price != MaxPrice {
		t.Errorf("incoming sell should fill against the sentinel level, got %+v", *trades)
	}
	if len(b.BidDepth()) != 0 || len(b.AskDepth()) != 0 {
		t.Error("book should be empty after the remainder is absorbed")
	}
}

func checkLevelInvariants(t *testing.T, s *BookSide) {
	t.Helper()
	seen := map[int64]bool{}
	prev := (*PriceLevel)(nil)
	for lvl := s.Best(); lvl != nil; lvl = lvl.Next() {
		if lvl.Empty() {
			t.Fatalf("side %v holds an empty level at %d", s.Side(), lvl.Price())
		}
		if seen[lvl.Price()] {
			t.Fatalf("side %v holds duplicate level %d", s.Side(), lvl.Price())
		}
		seen[lvl.Price()] = true
		if prev != nil && !s.ranksAhead(prev.Price(), lvl.Price()) {
			t.Fatalf("side %v out of order: %d before %d", s.Side(), prev.Price(), lvl.Price())
		}
		var sum int64
		n := 0
		for o := lvl.Head(); o != nil; o = o.Next() {
			if o.Remaining() <= 0 {
				t.Fatalf("resting order %s has non-positive remainder", o.ID)
			}
			sum += o.Remaining()
			n++
		}
		if sum != lvl.Qty() || n != lvl.OrderCount() {
			t.Fatalf("level %d aggregates drifted: qty %d vs %d, count %d vs %d",
				lvl.Price(), lvl.Qty(), sum, lvl.OrderCount(), n)
		}
		prev = lvl
	}
}

func TestRandomStreamInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	b, trades := newTestBook()

	var submitted int64
	orderID := 0
	for i := 0; i < 5000; i++ {
		orderID++
		side := Buy
		if rng.Intn(2) == 0 {
			side = Sell
		}
		typ := Limit
		price := int64(95 + rng.Intn(11))
		if rng.Intn(10) == 0 {
			typ = Market
			price = 0
		}
		qty := int64(1 + rng.Intn(500))
		submitted += qty

		o, err := NewOrder(strconv.Itoa(orderID), side, typ, qty, price)
		if err != nil {
			t.Fatalf("order rejected: %v", err)
		}
		b.Submit(o)
	}

	checkLevelInvariants(t, b.Bids())
	checkLevelInvariants(t, b.Asks())

	// No self-crossing residue.
	if bid, okB := b.BestBid(); okB {
		if ask, okA := b.BestAsk(); okA && bid >= ask {
			t.Errorf("book rests crossed: bid %d >= ask %d", bid, ask)
		}
	}

	// Conservation: each trade consumes its quantity from both parties,
	// so submitted = 2*traded + resting.
	var traded int64
	for _, tr := range *trades {
		traded += tr.Qty
	}
	var resting int64
	b.EachResting(func(_ Side, o *Order) { resting += o.Remaining() })
	if submitted != 2*traded+resting {
		t.Errorf("conservation broken: submitted %d, traded %d, resting %d", submitted, traded, resting)
	}
}
