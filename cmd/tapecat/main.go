// Command tapecat dumps a trade tape as one line per trade.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"matchbook/infra/codec"
	"matchbook/infra/tape"
	"matchbook/service"
)

func main() {
	dir := flag.String("dir", "./data/tape", "tape directory")
	flag.Parse()

	var dec codec.JSON
	lastSeq, err := tape.Scan(*dir, func(r *tape.Record) error {
		var ev service.TradeEvent
		if err := dec.Decode(r.Data, &ev); err != nil {
			return fmt.Errorf("seq %d: %w", r.Seq, err)
		}
		ts := time.Unix(0, ev.Time).UTC().Format(time.RFC3339Nano)
		fmt.Printf("%d\t%s\t%s\t%s %s -> %s\t%d @ %d\n",
			ev.Seq, ts, ev.Instrument, ev.Side, ev.AggressorID, ev.PassiveID, ev.Qty, ev.Price)
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "tapecat: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "last seq: %d\n", lastSeq)
}
