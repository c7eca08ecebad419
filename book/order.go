package book

import "fmt"

type Side int
type OrderType int

const (
	Buy Side = iota
	Sell
)

const (
	Limit OrderType = iota
	Market
)

// Price bounds in ticks. The bounds themselves are reserved as market
// order sentinels, so valid limit prices lie strictly between them.
const (
	MinPrice int64 = 0
	MaxPrice int64 = 100_000_000
)

func (s Side) String() string {
	if s == Buy {
		return "BUY"
	}
	return "SELL"
}

// Opposite returns the side an aggressor of side s crosses against.
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

func (t OrderType) String() string {
	if t == Market {
		return "MARKET"
	}
	return "LIMIT"
}

// Order is the unit being matched. ID, Side, and Price are fixed at
// construction; the fill state is mutated in place by the engine, first
// while the order is the aggressor and then, if a remainder rests, while
// it sits in a level queue.
type Order struct {
	ID     string
	Side   Side
	Type   OrderType
	Price  int64 // effective price in ticks; a sentinel for market orders
	Qty    int64
	Filled int64

	next *Order
	prev *Order
}

// NewOrder validates and builds an order. For market orders the price
// argument is ignored and replaced by the side sentinel, which guarantees
// the order crosses all resting opposite liquidity; no later code
// branches on Type.
func NewOrder(id string, side Side, typ OrderType, qty int64, price int64) (*Order, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("%w: qty=%d", ErrInvalidQuantity, qty)
	}
	switch typ {
	case Market:
		if side == Sell {
			price = MinPrice
		} else {
			price = MaxPrice
		}
	case Limit:
		if price == 0 {
			return nil, ErrNoLimitPrice
		}
		if price < MinPrice || price >= MaxPrice {
			return nil, fmt.Errorf("%w: price=%d", ErrPriceOverflow, price)
		}
	default:
		return nil, fmt.Errorf("%w: unknown type %d", ErrInvalidOrder, typ)
	}
	return &Order{ID: id, Side: side, Type: typ, Price: price, Qty: qty}, nil
}

// Remaining is the open quantity still subject to matching.
func (o *Order) Remaining() int64 {
	return o.Qty - o.Filled
}

// Next returns the order behind o in its level queue.
func (o *Order) Next() *Order {
	return o.next
}
