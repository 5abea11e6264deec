package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidGeometry is returned for rings the geometry functions cannot
	// evaluate: empty, or containing NaN/Inf coordinates.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrMalformedInput marks a raw payload that is not a JSON array of records.
	ErrMalformedInput = errors.New("malformed input")

	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownSeverity = errors.New("unknown severity")
)

// AggregationError reports the polygon that stopped an aggregation.
type AggregationError struct {
	Category Category
	Index    int
	Err      error
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("aggregate %s: polygon %d: %v", e.Category, e.Index, e.Err)
}

func (e *AggregationError) Unwrap() error { return e.Err }
