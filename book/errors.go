package book

import (
	"errors"
	"fmt"
)

// Construction fails fast: a rejected order never touches the book.
var (
	ErrInvalidOrder    = errors.New("invalid order")
	ErrInvalidQuantity = fmt.Errorf("%w: quantity must be positive", ErrInvalidOrder)
	ErrNoLimitPrice    = fmt.Errorf("%w: limit order requires a price", ErrInvalidOrder)

	// ErrPriceOverflow rejects limit prices at or beyond the market
	// sentinels, preserving the sentinel guarantee of crossing the
	// whole opposite book.
	ErrPriceOverflow = errors.New("limit price at or beyond market sentinel")
)
