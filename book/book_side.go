package book

// BookSide holds the ordered level chain for one side, best level first:
// highest price first on the buy side, lowest first on the sell side.
type BookSide struct {
	side Side
	head *PriceLevel
}

func NewBookSide(side Side) *BookSide {
	return &BookSide{side: side}
}

func (s *BookSide) Side() Side  { return s.side }
func (s *BookSide) Empty() bool { return s.head == nil }

// Best returns the head level, nil when the side is empty.
func (s *BookSide) Best() *PriceLevel { return s.head }

// BestPrice returns the head level's price; ok is false on an empty side.
func (s *BookSide) BestPrice() (int64, bool) {
	if s.head == nil {
		return 0, false
	}
	return s.head.price, true
}

// crosses reports whether an aggressor from the opposite side may trade
// at a level of this side. Equal prices trade: a buy at exactly the ask
// violates neither party's limit.
func (s *BookSide) crosses(aggPrice, levelPrice int64) bool {
	if s.side == Sell {
		return aggPrice >= levelPrice
	}
	return aggPrice <= levelPrice
}

// ranksAhead reports whether price belongs strictly before a level of
// this side. Used only to find a resting order's insertion point.
func (s *BookSide) ranksAhead(price, levelPrice int64) bool {
	if s.side == Sell {
		return price < levelPrice
	}
	return price > levelPrice
}

// cross executes the aggressor against this side, best level first. It
// stops as soon as the aggressor is spent or the next level no longer
// crosses. Emptied levels are unlinked before the walk advances; the
// cursor is captured first so unlinking cannot lose it.
func (s *BookSide) cross(agg *Order, emit func(passive *Order, price, qty int64)) {
	lvl := s.head
	for lvl != nil && agg.Remaining() > 0 && s.crosses(agg.Price, lvl.price) {
		price := lvl.price
		lvl.execute(agg, func(passive *Order, qty int64) {
			emit(passive, price, qty)
		})
		next := lvl.next
		if lvl.Empty() {
			if lvl == s.head {
				s.head = next
			}
			lvl.unlink()
		}
		lvl = next
	}
}

// rest inserts a non-marketable remainder into this side's own book.
// Equal-price orders join the existing level's queue, preserving time
// priority. The scan is linear in the number of live levels.
func (s *BookSide) rest(o *Order) {
	if s.head == nil {
		s.head = newPriceLevel(o)
		return
	}
	lvl := s.head
	for {
		switch {
		case lvl.price == o.Price:
			lvl.add(o)
			return
		case s.ranksAhead(o.Price, lvl.price):
			nl := newPriceLevel(o)
			lvl.insertBefore(nl)
			if lvl == s.head {
				s.head = nl
			}
			return
		default:
			if lvl.next == nil {
				lvl.insertAfter(newPriceLevel(o))
				return
			}
			lvl = lvl.next
		}
	}
}

// DepthLevel summarizes one price level for reporting collaborators.
type DepthLevel struct {
	Price  int64 `json:"price"`
	Qty    int64 `json:"qty"`
	Orders int   `json:"orders"`
}

// Depth enumerates the side best-first. It never mutates state.
func (s *BookSide) Depth() []DepthLevel {
	var out []DepthLevel
	for lvl := s.head; lvl != nil; lvl = lvl.next {
		out = append(out, DepthLevel{Price: lvl.price, Qty: lvl.totalQty, Orders: lvl.count})
	}
	return out
}
