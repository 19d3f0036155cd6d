package fenseg

import (
	"fmt"
	"slices"
	"sort"

	"golang.org/x/exp/constraints"
)

// Compressor maps an ordered value domain onto the dense rank space [1, Size()].
//
// It works in two phases: values are collected with Add, then Freeze sorts and
// de-duplicates them. Only a frozen compressor answers Rank and Value, and every
// value that will ever be inserted or queried must have been collected first.
type Compressor[T constraints.Ordered] struct {
	values []T
	frozen bool
}

// NewCompressor returns a compressor in the collecting phase seeded with values.
func NewCompressor[T constraints.Ordered](values ...T) *Compressor[T] {
	c := &Compressor[T]{values: make([]T, 0, len(values))}
	c.values = append(c.values, values...)
	return c
}

// Compress collects values and freezes the compressor.
func Compress[T constraints.Ordered](values []T) *Compressor[T] {
	c := NewCompressor(values...)
	c.Freeze()
	return c
}

// Add collects more values. It fails with ErrFrozen once the compressor is frozen.
func (c *Compressor[T]) Add(values ...T) error {
	if c.frozen {
		return ErrFrozen
	}
	c.values = append(c.values, values...)
	return nil
}

// Freeze sorts and de-duplicates the collected values. Calling it again is a no-op.
func (c *Compressor[T]) Freeze() {
	if c.frozen {
		return
	}
	slices.Sort(c.values)
	c.values = slices.Clip(slices.Compact(c.values))
	c.frozen = true
}

// Frozen reports whether Freeze has been called.
func (c *Compressor[T]) Frozen() bool {
	return c.frozen
}

// Size returns S, the number of distinct values. It is only meaningful once frozen.
func (c *Compressor[T]) Size() int {
	return len(c.values)
}

// Values returns a copy of the sorted distinct values; Values()[r-1] has rank r.
func (c *Compressor[T]) Values() []T {
	return slices.Clone(c.values)
}

// Rank returns the rank of v.
func (c *Compressor[T]) Rank(v T) (int, error) {
	if !c.frozen {
		return 0, ErrNotFrozen
	}
	i, found := slices.BinarySearch(c.values, v)
	if !found {
		return 0, fmt.Errorf("%w: %v", ErrUnknownValue, v)
	}
	return i + 1, nil
}

// Value returns the value whose rank is r.
func (c *Compressor[T]) Value(r int) (T, error) {
	var zero T
	if !c.frozen {
		return zero, ErrNotFrozen
	}
	if r < 1 || r > len(c.values) {
		return zero, fmt.Errorf("%w: rank %d not in [1,%d]", ErrOutOfRange, r, len(c.values))
	}
	return c.values[r-1], nil
}

// Floor returns the largest rank whose value is <= v, or 0 if every value is greater.
// Unlike Rank, v need not have been collected.
func (c *Compressor[T]) Floor(v T) int {
	return sort.Search(len(c.values), func(i int) bool { return c.values[i] > v })
}

// Ceil returns the smallest rank whose value is >= v, or Size()+1 if every value is smaller.
func (c *Compressor[T]) Ceil(v T) int {
	return sort.Search(len(c.values), func(i int) bool { return c.values[i] >= v }) + 1
}
