package fenseg

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// View is a read-only state of an Index. A View returned by Index.View is
// unaffected by later updates and may be queried while the index keeps changing.
type View struct {
	n, s  int
	nodes []Node
	roots roots
}

// View returns a read-only snapshot of the index.
//
// A persistent index never rewrites a node once it is reachable from a root,
// so the snapshot only copies the roots. An in-place index copies the arena.
func (ix *Index) View() *View {
	nodes := ix.arena.nodes
	if !ix.opts.Persistent {
		nodes = ix.arena.clone().nodes
		ix.log.WithFields(logrus.Fields{"nodes": len(nodes) - 1}).Debug("view copied arena")
	}
	rs := make(roots, len(ix.roots))
	copy(rs, ix.roots)
	return &View{n: ix.n, s: ix.s, nodes: nodes[:len(nodes):len(nodes)], roots: rs}
}

// Positions returns N.
func (v *View) Positions() int {
	return v.n
}

// Domain returns S.
func (v *View) Domain() int {
	return v.s
}

// RangeFrontier returns the frontier of positions [lo, hi].
func (v *View) RangeFrontier(lo, hi int) (*Frontier, error) {
	if err := v.checkRange(lo, hi); err != nil {
		return nil, err
	}
	return newFrontier(v.nodes, v.s, v.roots.span(lo, hi)), nil
}

// RankOf returns how many values in positions [lo, hi] have a rank <= rank.
func (v *View) RankOf(lo, hi, rank int) (int64, error) {
	f, err := v.query(lo, hi, rank)
	if err != nil {
		return 0, err
	}
	return f.CountLE(rank), nil
}

// Count returns how many values in positions [lo, hi] have a rank in [rlo, rhi].
func (v *View) Count(lo, hi, rlo, rhi int) (int64, error) {
	f, err := v.query(lo, hi, rlo)
	if err != nil {
		return 0, err
	}
	if err := v.checkRank(rhi); err != nil {
		return 0, err
	}
	if rlo > rhi {
		return 0, fmt.Errorf("%w: ranks [%d,%d] are reversed", ErrOutOfRange, rlo, rhi)
	}
	return f.Count(rlo, rhi), nil
}

// Total returns how many values positions [lo, hi] hold.
func (v *View) Total(lo, hi int) (int64, error) {
	f, err := v.RangeFrontier(lo, hi)
	if err != nil {
		return 0, err
	}
	return f.Total(), nil
}

// Kth returns the k-th smallest rank (1-based) in positions [lo, hi].
func (v *View) Kth(lo, hi int, k int64) (int, bool, error) {
	f, err := v.RangeFrontier(lo, hi)
	if err != nil {
		return 0, false, err
	}
	r, ok := f.Kth(k)
	return r, ok, nil
}

// Predecessor returns the largest rank < rank present in positions [lo, hi].
func (v *View) Predecessor(lo, hi, rank int) (int, bool, error) {
	f, err := v.query(lo, hi, rank)
	if err != nil {
		return 0, false, err
	}
	r, ok := f.Predecessor(rank)
	return r, ok, nil
}

// Successor returns the smallest rank > rank present in positions [lo, hi].
func (v *View) Successor(lo, hi, rank int) (int, bool, error) {
	f, err := v.query(lo, hi, rank)
	if err != nil {
		return 0, false, err
	}
	r, ok := f.Successor(rank)
	return r, ok, nil
}

// Each calls fn for every rank present in positions [lo, hi] in ascending order.
func (v *View) Each(lo, hi int, fn func(rank int, count int64) bool) error {
	f, err := v.RangeFrontier(lo, hi)
	if err != nil {
		return err
	}
	f.Each(fn)
	return nil
}

func (v *View) query(lo, hi, rank int) (*Frontier, error) {
	if err := v.checkRank(rank); err != nil {
		return nil, err
	}
	return v.RangeFrontier(lo, hi)
}

func (v *View) prefixFrontier(pos int) *Frontier {
	return newFrontier(v.nodes, v.s, v.roots.prefix(nil, pos, 1))
}

// point returns the occurrences of rank at exactly pos.
func (v *View) point(pos, rank int) int64 {
	return newFrontier(v.nodes, v.s, v.roots.span(pos, pos)).Count(rank, rank)
}

func (v *View) checkRange(lo, hi int) error {
	if lo < 1 || hi > v.n || lo > hi {
		return fmt.Errorf("%w: positions [%d,%d] not within [1,%d]", ErrOutOfRange, lo, hi, v.n)
	}
	return nil
}

func (v *View) checkRank(rank int) error {
	if rank < 1 || rank > v.s {
		return fmt.Errorf("%w: rank %d not in [1,%d]", ErrOutOfRange, rank, v.s)
	}
	return nil
}
