package fenseg

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"
)

// -----------------------------------------------------------------------------
// Benchmarks
//

const (
	benchN = 1 << 17
	benchS = 1 << 17
)

type benchFixture struct {
	ix   *Index
	wm   *Matrix
	vals []int
}

var bf *benchFixture // = nil

var sink int

func initBenchFixture(b *testing.B) {
	if bf != nil {
		return
	}
	rng := rand.New(rand.NewSource(1))
	ix, err := New(benchN, benchS)
	if err != nil {
		b.Fatal(err)
	}
	vals := make([]int, benchN+1)
	for p := 1; p <= benchN; p++ {
		vals[p] = 1 + rng.Intn(benchS)
		if err := ix.Insert(p, vals[p]); err != nil {
			b.Fatal(err)
		}
	}
	bf = &benchFixture{ix: ix, wm: ix.Freeze(), vals: vals}
	fmt.Printf("{N = %v, S = %v, nodes = %v are used in the benchmarks below}\n\t\t\t\t", benchN, benchS, ix.Stats().Nodes)
}

func benchSpan() (int, int) {
	lo := 1 + rand.Intn(benchN)
	return lo, lo + rand.Intn(benchN-lo+1)
}

func BenchmarkIndex_Build(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ix, _ := New(benchN, benchS)
		for p := 1; p <= benchN; p++ {
			_ = ix.Insert(p, 1+rng.Intn(benchS))
		}
	}
}

func BenchmarkIndex_Update(b *testing.B) {
	initBenchFixture(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p := 1 + rand.Intn(benchN)
		r := 1 + rand.Intn(benchS)
		_ = bf.ix.Insert(p, r)
		_ = bf.ix.Delete(p, r)
	}
}

func BenchmarkIndex_Kth(b *testing.B) {
	initBenchFixture(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		lo, hi := benchSpan()
		_, _, _ = bf.ix.Kth(lo, hi, 1+rand.Int63n(int64(hi-lo+1)))
	}
}

func BenchmarkIndex_RankOf(b *testing.B) {
	initBenchFixture(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		lo, hi := benchSpan()
		_, _ = bf.ix.RankOf(lo, hi, 1+rand.Intn(benchS))
	}
}

func BenchmarkIndex_Successor(b *testing.B) {
	initBenchFixture(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		lo, hi := benchSpan()
		_, _, _ = bf.ix.Successor(lo, hi, 1+rand.Intn(benchS))
	}
}

func BenchmarkMatrix_Kth(b *testing.B) {
	initBenchFixture(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		lo, hi := benchSpan()
		_, _, _ = bf.wm.Kth(lo, hi, 1+rand.Int63n(int64(hi-lo+1)))
	}
}

func BenchmarkRaw_Kth(b *testing.B) {
	initBenchFixture(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		lo, hi := benchSpan()
		target := append([]int(nil), bf.vals[lo:hi+1]...)
		sort.Ints(target)
		sink += target[rand.Intn(len(target))]
	}
}

func BenchmarkRaw_RankOf(b *testing.B) {
	initBenchFixture(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		lo, hi := benchSpan()
		r := 1 + rand.Intn(benchS)
		for _, v := range bf.vals[lo : hi+1] {
			if v <= r {
				sink++
			}
		}
	}
}
