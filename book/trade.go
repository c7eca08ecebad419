package book

import "time"

// Trade records one fill: the aggressor consumed Qty from the passive
// order at the passive level's price. Seq is assigned by the collaborator
// that receives the trade, not by the engine.
type Trade struct {
	Seq           uint64
	AggressorID   string
	PassiveID     string
	Price         int64
	Qty           int64
	AggressorSide Side
	Time          time.Time
}

// TradeSink receives every fill in execution order. Exactly one trade is
// emitted per queue-head consumption or partial decrement.
type TradeSink interface {
	OnTrade(Trade)
}

// TradeSinkFunc adapts a function to TradeSink.
type TradeSinkFunc func(Trade)

func (f TradeSinkFunc) OnTrade(t Trade) { f(t) }
