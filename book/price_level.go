package book

// PriceLevel is the FIFO queue of resting orders at one price, plus its
// position in the side's level chain. The price is fixed when the level
// is created for its first order. A level never survives with an empty
// queue; the owning side unlinks it in the same step its last order is
// removed.
type PriceLevel struct {
	price int64

	head *Order
	tail *Order

	totalQty int64
	count    int

	next *PriceLevel
	prev *PriceLevel
}

func newPriceLevel(o *Order) *PriceLevel {
	lvl := &PriceLevel{price: o.Price}
	lvl.add(o)
	return lvl
}

func (l *PriceLevel) Price() int64      { return l.price }
func (l *PriceLevel) Empty() bool       { return l.head == nil }
func (l *PriceLevel) Qty() int64        { return l.totalQty }
func (l *PriceLevel) OrderCount() int   { return l.count }
func (l *PriceLevel) Head() *Order      { return l.head }
func (l *PriceLevel) Next() *PriceLevel { return l.next }

// add appends at the tail. A resting order's place in line is permanent
// until it fills.
func (l *PriceLevel) add(o *Order) {
	if l.head == nil {
		l.head = o
		l.tail = o
	} else {
		l.tail.next = o
		o.prev = l.tail
		l.tail = o
	}
	l.totalQty += o.Remaining()
	l.count++
}

// execute fills the aggressor against the queue head until either side
// runs out. emit is called once per fill, before an extinguished passive
// order leaves the queue.
func (l *PriceLevel) execute(agg *Order, emit func(passive *Order, qty int64)) {
	for l.head != nil && agg.Remaining() > 0 {
		passive := l.head
		qty := passive.Remaining()
		if agg.Remaining() < qty {
			qty = agg.Remaining()
		}
		agg.Filled += qty
		passive.Filled += qty
		l.totalQty -= qty
		emit(passive, qty)
		if passive.Remaining() == 0 {
			l.popHead()
		}
	}
}

func (l *PriceLevel) popHead() *Order {
	o := l.head
	l.head = o.next
	if l.head != nil {
		l.head.prev = nil
	} else {
		l.tail = nil
	}
	o.next = nil
	o.prev = nil
	l.count--
	return o
}

// insertAfter splices lvl directly behind l.
func (l *PriceLevel) insertAfter(lvl *PriceLevel) {
	lvl.prev = l
	lvl.next = l.next
	if l.next != nil {
		l.next.prev = lvl
	}
	l.next = lvl
}

// insertBefore splices lvl directly ahead of l. The caller repoints the
// side's head when l was the head.
func (l *PriceLevel) insertBefore(lvl *PriceLevel) {
	lvl.next = l
	lvl.prev = l.prev
	if l.prev != nil {
		l.prev.next = lvl
	}
	l.prev = lvl
}

// unlink removes l from the chain, repairing both neighbor links. The
// caller repoints the side's head when l was the head.
func (l *PriceLevel) unlink() {
	if l.prev != nil {
		l.prev.next = l.next
	}
	if l.next != nil {
		l.next.prev = l.prev
	}
	l.next = nil
	l.prev = nil
}
