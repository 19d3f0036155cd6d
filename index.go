// Package fenseg provides a positional order-statistics index: a Fenwick tree
// over positions [1, N] whose every slot owns a lazily built segment tree over
// the compressed value domain [1, S].
//
// Over any position range it counts values <= v and finds the k-th smallest,
// the predecessor and the successor of a value, in O(log N * log S) per query,
// while (position, value) pairs are inserted and deleted online.
package fenseg

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Index is the composite positional index over ranks.
//
// An Index is not safe for concurrent use. Queries may run concurrently with
// each other but not with an update; see SyncIndex and View.
type Index struct {
	n, s  int
	arena *Arena
	roots roots
	opts  Options
	log   logrus.FieldLogger
}

// Stats describes the size of an Index.
type Stats struct {
	Positions int
	Domain    int
	Nodes     int
	Capacity  int
	Total     int64
}

// New returns an empty index over positions [1, n] and ranks [1, s].
func New(n, s int, opts ...Option) (*Index, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d positions", ErrOutOfRange, n)
	}
	if s < 1 {
		return nil, fmt.Errorf("%w: domain of %d ranks", ErrOutOfRange, s)
	}
	o := newOptions(opts)
	return &Index{
		n:     n,
		s:     s,
		arena: NewArena(o.arenaCapacity(n, s), o.Logger),
		roots: make(roots, n+1),
		opts:  o,
		log:   o.Logger,
	}, nil
}

// Positions returns N.
func (ix *Index) Positions() int {
	return ix.n
}

// Domain returns S.
func (ix *Index) Domain() int {
	return ix.s
}

// Persistent reports whether updates copy paths instead of mutating them.
func (ix *Index) Persistent() bool {
	return ix.opts.Persistent
}

// Arena returns the node arena. It must be treated as read-only.
func (ix *Index) Arena() *Arena {
	return ix.arena
}

// Insert adds one occurrence of rank at pos.
func (ix *Index) Insert(pos, rank int) error {
	return ix.Update(pos, rank, 1)
}

// Delete removes one occurrence of rank at pos.
func (ix *Index) Delete(pos, rank int) error {
	return ix.Update(pos, rank, -1)
}

// Update adds delta occurrences of rank at pos.
//
// Unless the index was built WithUncheckedUpdates, a negative delta larger than
// the occurrences present is rejected with ErrNegativeCount and nothing changes.
func (ix *Index) Update(pos, rank int, delta int64) error {
	if err := ix.checkPosition(pos); err != nil {
		return err
	}
	if err := ix.at().checkRank(rank); err != nil {
		return err
	}
	if delta == 0 {
		return nil
	}
	if delta < 0 && !ix.opts.Unchecked {
		if have := ix.at().point(pos, rank); have+delta < 0 {
			ix.log.WithFields(logrus.Fields{
				"position": pos,
				"rank":     rank,
				"present":  have,
				"delta":    delta,
			}).Debug("rejected update below zero")
			return fmt.Errorf("%w: position %d rank %d has %d, delta %d",
				ErrNegativeCount, pos, rank, have, delta)
		}
	}
	insert := add
	if ix.opts.Persistent {
		insert = addCopy
	}
	ix.roots.update(pos, func(root Handle) Handle {
		return insert(ix.arena, ix.s, root, rank, delta)
	})
	return nil
}

// PrefixFrontier returns the frontier of positions [1, pos]; pos may be 0.
func (ix *Index) PrefixFrontier(pos int) (*Frontier, error) {
	if pos < 0 || pos > ix.n {
		return nil, fmt.Errorf("%w: position %d not in [0,%d]", ErrOutOfRange, pos, ix.n)
	}
	return ix.at().prefixFrontier(pos), nil
}

// RangeFrontier returns the frontier of positions [lo, hi].
func (ix *Index) RangeFrontier(lo, hi int) (*Frontier, error) {
	return ix.at().RangeFrontier(lo, hi)
}

// RankOf returns how many values in positions [lo, hi] have a rank <= rank.
func (ix *Index) RankOf(lo, hi, rank int) (int64, error) {
	return ix.at().RankOf(lo, hi, rank)
}

// Count returns how many values in positions [lo, hi] have a rank in [rlo, rhi].
func (ix *Index) Count(lo, hi, rlo, rhi int) (int64, error) {
	return ix.at().Count(lo, hi, rlo, rhi)
}

// Total returns how many values positions [lo, hi] hold.
func (ix *Index) Total(lo, hi int) (int64, error) {
	return ix.at().Total(lo, hi)
}

// Kth returns the k-th smallest rank (1-based) in positions [lo, hi].
// ok is false when k is not in [1, Total(lo, hi)].
func (ix *Index) Kth(lo, hi int, k int64) (rank int, ok bool, err error) {
	return ix.at().Kth(lo, hi, k)
}

// Predecessor returns the largest rank < rank present in positions [lo, hi].
func (ix *Index) Predecessor(lo, hi, rank int) (int, bool, error) {
	return ix.at().Predecessor(lo, hi, rank)
}

// Successor returns the smallest rank > rank present in positions [lo, hi].
func (ix *Index) Successor(lo, hi, rank int) (int, bool, error) {
	return ix.at().Successor(lo, hi, rank)
}

// Each calls fn in ascending rank order for every rank present in positions
// [lo, hi], with its number of occurrences. It stops when fn returns false.
func (ix *Index) Each(lo, hi int, fn func(rank int, count int64) bool) error {
	return ix.at().Each(lo, hi, fn)
}

// Stats returns size information.
func (ix *Index) Stats() Stats {
	return Stats{
		Positions: ix.n,
		Domain:    ix.s,
		Nodes:     ix.arena.Len(),
		Capacity:  ix.arena.Cap(),
		Total:     ix.at().prefixFrontier(ix.n).Total(),
	}
}

func (ix *Index) checkPosition(pos int) error {
	if pos < 1 || pos > ix.n {
		return fmt.Errorf("%w: position %d not in [1,%d]", ErrOutOfRange, pos, ix.n)
	}
	return nil
}

// at returns a view over the live state without copying anything.
func (ix *Index) at() *View {
	return &View{n: ix.n, s: ix.s, nodes: ix.arena.nodes, roots: ix.roots}
}
