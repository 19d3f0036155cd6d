package fenseg

import (
	"math/rand"
	"sort"

	. "github.com/smartystreets/goconvey/convey"
)

// oracle is a brute-force multiset per position.
type oracle struct {
	n, s  int
	cells [][]int
}

func newOracle(n, s int) *oracle {
	return &oracle{n: n, s: s, cells: make([][]int, n+1)}
}

func (o *oracle) insert(pos, rank int) {
	o.cells[pos] = append(o.cells[pos], rank)
}

func (o *oracle) remove(pos, rank int) bool {
	c := o.cells[pos]
	for i, r := range c {
		if r == rank {
			o.cells[pos] = append(c[:i], c[i+1:]...)
			return true
		}
	}
	return false
}

func (o *oracle) sorted(lo, hi int) []int {
	var vs []int
	for p := lo; p <= hi; p++ {
		vs = append(vs, o.cells[p]...)
	}
	sort.Ints(vs)
	return vs
}

func (o *oracle) rankOf(lo, hi, rank int) int64 {
	var c int64
	for _, v := range o.sorted(lo, hi) {
		if v <= rank {
			c++
		}
	}
	return c
}

func (o *oracle) kth(lo, hi int, k int64) (int, bool) {
	vs := o.sorted(lo, hi)
	if k < 1 || k > int64(len(vs)) {
		return 0, false
	}
	return vs[k-1], true
}

func (o *oracle) predecessor(lo, hi, rank int) (int, bool) {
	best, ok := 0, false
	for _, v := range o.sorted(lo, hi) {
		if v < rank {
			best, ok = v, true
		}
	}
	return best, ok
}

func (o *oracle) successor(lo, hi, rank int) (int, bool) {
	for _, v := range o.sorted(lo, hi) {
		if v > rank {
			return v, true
		}
	}
	return 0, false
}

// any returns a random (position, rank) pair currently present, if there is one.
func (o *oracle) any(rng *rand.Rand) (int, int, bool) {
	var ps []int
	for p := 1; p <= o.n; p++ {
		if len(o.cells[p]) > 0 {
			ps = append(ps, p)
		}
	}
	if len(ps) == 0 {
		return 0, 0, false
	}
	p := ps[rng.Intn(len(ps))]
	return p, o.cells[p][rng.Intn(len(o.cells[p]))], true
}

func generateSpan(rng *rand.Rand, n int) (int, int) {
	lo := 1 + rng.Intn(n)
	hi := lo + rng.Intn(n-lo+1)
	return lo, hi
}

// checkQuerier compares q against o on random queries.
func checkQuerier(q RangeQuerier, o *oracle, rng *rand.Rand, trials int) {
	So(q.Positions(), ShouldEqual, o.n)
	So(q.Domain(), ShouldEqual, o.s)
	for i := 0; i < trials; i++ {
		lo, hi := generateSpan(rng, o.n)
		rank := 1 + rng.Intn(o.s)
		total := int64(len(o.sorted(lo, hi)))

		got, err := q.Total(lo, hi)
		So(err, ShouldBeNil)
		So(got, ShouldEqual, total)

		got, err = q.RankOf(lo, hi, rank)
		So(err, ShouldBeNil)
		So(got, ShouldEqual, o.rankOf(lo, hi, rank))

		rlo := 1 + rng.Intn(o.s)
		rhi := rlo + rng.Intn(o.s-rlo+1)
		got, err = q.Count(lo, hi, rlo, rhi)
		So(err, ShouldBeNil)
		So(got, ShouldEqual, o.rankOf(lo, hi, rhi)-o.rankOf(lo, hi, rlo-1))

		k := rng.Int63n(total+2) // covers 0 and total+1
		r, ok, err := q.Kth(lo, hi, k)
		So(err, ShouldBeNil)
		wr, wok := o.kth(lo, hi, k)
		So(ok, ShouldEqual, wok)
		So(r, ShouldEqual, wr)

		r, ok, err = q.Predecessor(lo, hi, rank)
		So(err, ShouldBeNil)
		wr, wok = o.predecessor(lo, hi, rank)
		So(ok, ShouldEqual, wok)
		So(r, ShouldEqual, wr)

		r, ok, err = q.Successor(lo, hi, rank)
		So(err, ShouldBeNil)
		wr, wok = o.successor(lo, hi, rank)
		So(ok, ShouldEqual, wok)
		So(r, ShouldEqual, wr)
	}
}

// fill inserts num random pairs into ix and o.
func fill(ix *Index, o *oracle, rng *rand.Rand, num int) {
	for i := 0; i < num; i++ {
		p, r := 1+rng.Intn(o.n), 1+rng.Intn(o.s)
		So(ix.Insert(p, r), ShouldBeNil)
		o.insert(p, r)
	}
}

// churn deletes and inserts random pairs, keeping ix and o in step.
func churn(ix *Index, o *oracle, rng *rand.Rand, num int) {
	for i := 0; i < num; i++ {
		if p, r, ok := o.any(rng); ok && rng.Intn(2) == 0 {
			So(ix.Delete(p, r), ShouldBeNil)
			o.remove(p, r)
			continue
		}
		p, r := 1+rng.Intn(o.n), 1+rng.Intn(o.s)
		So(ix.Insert(p, r), ShouldBeNil)
		o.insert(p, r)
	}
}

func mustNew(n, s int, opts ...Option) *Index {
	ix, err := New(n, s, opts...)
	So(err, ShouldBeNil)
	return ix
}
