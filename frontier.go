package fenseg

import "slices"

// Term is one root of a Frontier with the sign its counts contribute with.
type Term struct {
	Root Handle
	Sign int64
}

// Frontier is a signed set of tree roots that together describe the values of a
// position range. All queries on it descend every root in lock-step, one level
// per step, touching at most len(Terms()) nodes per level.
//
// A Frontier reads the arena as it was when the Frontier was built and must not
// be used across updates of an in-place Index. It is not safe for concurrent use.
type Frontier struct {
	nodes []Node
	s     int
	terms []Term
	work  []Term
}

func newFrontier(nodes []Node, s int, terms []Term) *Frontier {
	return &Frontier{nodes: nodes, s: s, terms: terms}
}

// Terms returns the roots of the frontier.
func (f *Frontier) Terms() []Term {
	return slices.Clone(f.terms)
}

// Domain returns S, the size of the rank space.
func (f *Frontier) Domain() int {
	return f.s
}

// live resets the working set to the non-null terms.
func (f *Frontier) live() []Term {
	f.work = f.work[:0]
	for _, t := range f.terms {
		if t.Root != Null {
			f.work = append(f.work, t)
		}
	}
	return f.work
}

func (f *Frontier) sum(ts []Term) (total int64) {
	for _, t := range ts {
		total += t.Sign * f.nodes[t.Root].Count
	}
	return total
}

func (f *Frontier) leftSum(ts []Term) (total int64) {
	for _, t := range ts {
		total += t.Sign * f.nodes[f.nodes[t.Root].Left].Count
	}
	return total
}

// step moves every term to its left or right child in place, dropping null children.
func (f *Frontier) step(ts []Term, right bool) []Term {
	out := ts[:0]
	for _, t := range ts {
		n := f.nodes[t.Root]
		next := n.Left
		if right {
			next = n.Right
		}
		if next != Null {
			out = append(out, Term{Root: next, Sign: t.Sign})
		}
	}
	return out
}

// children is step into a new slice, leaving ts intact.
func (f *Frontier) children(ts []Term, right bool) []Term {
	return f.step(append(make([]Term, 0, len(ts)), ts...), right)
}

// Total returns the number of values described by the frontier.
func (f *Frontier) Total() int64 {
	return f.sum(f.terms)
}

// CountLE returns the number of values whose rank is <= r.
// It is 0 for r < 1 and Total() for r >= Domain().
func (f *Frontier) CountLE(r int) int64 {
	if r < 1 {
		return 0
	}
	if r >= f.s {
		return f.Total()
	}
	ts := f.live()
	lo, hi := 1, f.s
	var acc int64
	for len(ts) > 0 {
		if r == hi {
			return acc + f.sum(ts)
		}
		mid := int(uint(lo+hi) >> 1)
		if r <= mid {
			ts, hi = f.step(ts, false), mid
		} else {
			acc += f.leftSum(ts)
			ts, lo = f.step(ts, true), mid+1
		}
	}
	return acc
}

// Count returns the number of values whose rank lies in [lo, hi].
func (f *Frontier) Count(lo, hi int) int64 {
	if lo > hi {
		return 0
	}
	return f.CountLE(hi) - f.CountLE(lo-1)
}

// Kth returns the rank of the k-th smallest value (1-based).
// ok is false when k < 1 or k > Total().
func (f *Frontier) Kth(k int64) (rank int, ok bool) {
	if k < 1 || k > f.Total() {
		return 0, false
	}
	ts := f.live()
	lo, hi := 1, f.s
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		left := f.leftSum(ts)
		if k <= left {
			ts, hi = f.step(ts, false), mid
		} else {
			k -= left
			ts, lo = f.step(ts, true), mid+1
		}
	}
	return lo, true
}

// Predecessor returns the largest rank < r that is present.
func (f *Frontier) Predecessor(r int) (int, bool) {
	k := f.CountLE(r - 1)
	if k == 0 {
		return 0, false
	}
	return f.Kth(k)
}

// Successor returns the smallest rank > r that is present.
func (f *Frontier) Successor(r int) (int, bool) {
	c := f.CountLE(r)
	if c >= f.Total() {
		return 0, false
	}
	return f.Kth(c + 1)
}

// Each calls fn for every present rank in ascending order with its count,
// stopping early when fn returns false.
func (f *Frontier) Each(fn func(rank int, count int64) bool) {
	f.each(append([]Term(nil), f.live()...), 1, f.s, fn)
}

func (f *Frontier) each(ts []Term, lo, hi int, fn func(int, int64) bool) bool {
	c := f.sum(ts)
	if c == 0 {
		return true
	}
	if lo == hi {
		return fn(lo, c)
	}
	mid := int(uint(lo+hi) >> 1)
	if !f.each(f.children(ts, false), lo, mid, fn) {
		return false
	}
	return f.each(f.children(ts, true), mid+1, hi, fn)
}
