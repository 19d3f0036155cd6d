package fenseg

// RangeQuerier answers order-statistics queries over position ranges [lo, hi]
// of a positional index over ranks [1, Domain()].
type RangeQuerier interface {
	Positions() int

	Domain() int

	RankOf(lo, hi, rank int) (int64, error)

	Count(lo, hi, rlo, rhi int) (int64, error)

	Total(lo, hi int) (int64, error)

	Kth(lo, hi int, k int64) (int, bool, error)

	Predecessor(lo, hi, rank int) (int, bool, error)

	Successor(lo, hi, rank int) (int, bool, error)
}

var (
	_ RangeQuerier = (*Index)(nil)
	_ RangeQuerier = (*View)(nil)
	_ RangeQuerier = (*SyncIndex)(nil)
	_ RangeQuerier = (*Matrix)(nil)
)
