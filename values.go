package fenseg

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// ValueIndex is an array of positions [1, N] each holding at most one value of
// a frozen domain, answering order-statistics queries on the values of any
// position range.
type ValueIndex[T constraints.Ordered] struct {
	comp  *Compressor[T]
	ix    *Index
	ranks []int // ranks[p] is the rank held at p, 0 when empty
	size  int
}

// NewValueIndex returns an empty ValueIndex of n positions over the domain of comp.
// comp is frozen if it is not already.
func NewValueIndex[T constraints.Ordered](n int, comp *Compressor[T], opts ...Option) (*ValueIndex[T], error) {
	comp.Freeze()
	if comp.Size() == 0 {
		return nil, fmt.Errorf("%w: empty value domain", ErrOutOfRange)
	}
	ix, err := New(n, comp.Size(), opts...)
	if err != nil {
		return nil, err
	}
	return &ValueIndex[T]{comp: comp, ix: ix, ranks: make([]int, n+1)}, nil
}

// Compressor returns the value domain.
func (vi *ValueIndex[T]) Compressor() *Compressor[T] {
	return vi.comp
}

// Index returns the underlying rank index. Updating it directly desynchronizes vi.
func (vi *ValueIndex[T]) Index() *Index {
	return vi.ix
}

// Positions returns N.
func (vi *ValueIndex[T]) Positions() int {
	return vi.ix.n
}

// Len returns the number of occupied positions.
func (vi *ValueIndex[T]) Len() int {
	return vi.size
}

// Get returns the value at pos; ok is false if pos is empty.
func (vi *ValueIndex[T]) Get(pos int) (v T, ok bool, err error) {
	if err = vi.ix.checkPosition(pos); err != nil {
		return
	}
	if vi.ranks[pos] == 0 {
		return
	}
	v, err = vi.comp.Value(vi.ranks[pos])
	return v, err == nil, err
}

// Set stores v at pos, replacing any previous value.
func (vi *ValueIndex[T]) Set(pos int, v T) error {
	if err := vi.ix.checkPosition(pos); err != nil {
		return err
	}
	r, err := vi.comp.Rank(v)
	if err != nil {
		return err
	}
	old := vi.ranks[pos]
	if old == r {
		return nil
	}
	if old != 0 {
		if err := vi.ix.Delete(pos, old); err != nil {
			return err
		}
	}
	if err := vi.ix.Insert(pos, r); err != nil {
		return err
	}
	if old == 0 {
		vi.size++
	}
	vi.ranks[pos] = r
	return nil
}

// Clear empties pos. Clearing an empty position is a no-op.
func (vi *ValueIndex[T]) Clear(pos int) error {
	if err := vi.ix.checkPosition(pos); err != nil {
		return err
	}
	old := vi.ranks[pos]
	if old == 0 {
		return nil
	}
	if err := vi.ix.Delete(pos, old); err != nil {
		return err
	}
	vi.ranks[pos] = 0
	vi.size--
	return nil
}

// Kth returns the k-th smallest value (1-based) in positions [lo, hi].
func (vi *ValueIndex[T]) Kth(lo, hi int, k int64) (v T, ok bool, err error) {
	r, ok, err := vi.ix.Kth(lo, hi, k)
	if err != nil || !ok {
		return v, false, err
	}
	return vi.value(r)
}

// RankOf returns how many values in positions [lo, hi] are <= v.
func (vi *ValueIndex[T]) RankOf(lo, hi int, v T) (int64, error) {
	r, err := vi.comp.Rank(v)
	if err != nil {
		return 0, err
	}
	return vi.ix.RankOf(lo, hi, r)
}

// CountBetween returns how many values in positions [lo, hi] lie in [vlo, vhi].
// The bounds need not belong to the domain.
func (vi *ValueIndex[T]) CountBetween(lo, hi int, vlo, vhi T) (int64, error) {
	f, err := vi.ix.RangeFrontier(lo, hi)
	if err != nil {
		return 0, err
	}
	return f.Count(vi.comp.Ceil(vlo), vi.comp.Floor(vhi)), nil
}

// Predecessor returns the largest value < v in positions [lo, hi].
func (vi *ValueIndex[T]) Predecessor(lo, hi int, v T) (T, bool, error) {
	return vi.neighbour(lo, hi, v, vi.ix.Predecessor)
}

// Successor returns the smallest value > v in positions [lo, hi].
func (vi *ValueIndex[T]) Successor(lo, hi int, v T) (T, bool, error) {
	return vi.neighbour(lo, hi, v, vi.ix.Successor)
}

func (vi *ValueIndex[T]) neighbour(lo, hi int, v T, find func(lo, hi, rank int) (int, bool, error)) (w T, ok bool, err error) {
	r, err := vi.comp.Rank(v)
	if err != nil {
		return w, false, err
	}
	r, ok, err = find(lo, hi, r)
	if err != nil || !ok {
		return w, false, err
	}
	return vi.value(r)
}

func (vi *ValueIndex[T]) value(r int) (T, bool, error) {
	v, err := vi.comp.Value(r)
	if err != nil {
		return v, false, err
	}
	return v, true, nil
}

// Freeze returns a Matrix of the current ranks; map them back with Compressor().Value.
func (vi *ValueIndex[T]) Freeze() *Matrix {
	return vi.ix.Freeze()
}
