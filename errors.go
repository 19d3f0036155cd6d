package fenseg

import "errors"

var (
	// ErrOutOfRange is returned when a position, rank or range bound lies outside the index.
	ErrOutOfRange = errors.New("out of range")
	// ErrUnknownValue is returned when a value was never collected by the compressor.
	ErrUnknownValue = errors.New("unknown value")
	// ErrNotFrozen is returned when a compressor is queried before Freeze.
	ErrNotFrozen = errors.New("compressor is not frozen")
	// ErrFrozen is returned when values are added to a frozen compressor.
	ErrFrozen = errors.New("compressor is frozen")
	// ErrNegativeCount is returned when a delete would remove a value that is not present.
	ErrNegativeCount = errors.New("count would become negative")
	// ErrArenaExhausted is the panic value when node handles overflow.
	ErrArenaExhausted = errors.New("node arena exhausted")
	// ErrCorrupt is returned when decoding finds inconsistent data.
	ErrCorrupt = errors.New("corrupt encoding")
)
