// Command loadgen drives a synthetic order stream through an in-process
// engine and reports throughput.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"matchbook/book"
	"matchbook/infra/sequence"
	"matchbook/service"
)

func main() {
	var (
		orders      = flag.Int("orders", 100_000, "number of orders to submit")
		basePrice   = flag.Int64("base-price", 10_000, "midpoint of generated limit prices")
		priceLevels = flag.Int64("price-levels", 50, "half-width of the price band")
		marketRatio = flag.Float64("market-ratio", 0.05, "fraction of market orders")
		seed        = flag.Int64("seed", 42, "rng seed")
	)
	flag.Parse()

	svc := service.New("LOAD", sequence.New(0), nil, nil, zerolog.Nop())
	rng := rand.New(rand.NewSource(*seed))

	var trades int
	start := time.Now()

	for i := 0; i < *orders; i++ {
		side := book.Buy
		if rng.Intn(2) == 1 {
			side = book.Sell
		}
		typ := book.Limit
		price := *basePrice - *priceLevels + rng.Int63n(2**priceLevels+1)
		if rng.Float64() < *marketRatio {
			typ = book.Market
			price = 0
		}
		qty := 1 + rng.Int63n(500)

		res, err := svc.Submit(uuid.NewString(), side, typ, qty, price)
		if err != nil {
			fmt.Fprintf(os.Stderr, "submit %d: %v\n", i, err)
			os.Exit(1)
		}
		trades += res.Trades
	}

	elapsed := time.Since(start)
	fmt.Printf("orders:   %d in %s (%.0f orders/s)\n",
		*orders, elapsed.Round(time.Millisecond), float64(*orders)/elapsed.Seconds())
	fmt.Printf("trades:   %d (%.0f trades/s)\n",
		trades, float64(trades)/elapsed.Seconds())
	if bid, ok := svc.BestBid(); ok {
		fmt.Printf("best bid: %d\n", bid)
	}
	if ask, ok := svc.BestAsk(); ok {
		fmt.Printf("best ask: %d\n", ask)
	}
}
