package fenseg

import (
	"fmt"

	"github.com/hillbig/rsdic"
	"github.com/ugorji/go/codec"
)

// Range represents an offset range [Bpos, Epos) over the values of a Matrix.
// Only valid for Bpos <= Epos.
type Range struct {
	Bpos uint64
	Epos uint64
}

// Matrix is an immutable wavelet matrix over the contents of an Index, laid out
// position by position. It answers the same queries as the Index and is safe
// for concurrent use.
type Matrix struct {
	layers []*rsdic.RSDic
	starts []uint64 // starts[p] = number of values in positions [1, p]
	dim    uint64
	num    uint64
	blen   uint64 // =len(layers)
}

// Freeze returns a Matrix holding the current contents of the index.
func (ix *Index) Freeze() *Matrix {
	return ix.at().Freeze()
}

// Freeze returns a Matrix holding the contents of the view.
func (v *View) Freeze() *Matrix {
	b := newMatrixBuilder(v.n, v.s)
	for p := 1; p <= v.n; p++ {
		newFrontier(v.nodes, v.s, v.roots.span(p, p)).Each(func(rank int, count int64) bool {
			for ; count > 0; count-- {
				b.PushBack(uint64(rank - 1))
			}
			return true
		})
		b.EndPosition()
	}
	return b.Build()
}

// Num returns the number of values in the matrix.
func (wm *Matrix) Num() uint64 {
	return wm.num
}

// Dim returns S, the size of the rank space.
func (wm *Matrix) Dim() uint64 {
	return wm.dim
}

// Positions returns N.
func (wm *Matrix) Positions() int {
	return len(wm.starts) - 1
}

// Domain returns S.
func (wm *Matrix) Domain() int {
	return int(wm.dim)
}

// Span returns the offsets of the values in positions [lo, hi].
func (wm *Matrix) Span(lo, hi int) (Range, error) {
	if lo < 1 || hi > wm.Positions() || lo > hi {
		return Range{}, fmt.Errorf("%w: positions [%d,%d] not within [1,%d]", ErrOutOfRange, lo, hi, wm.Positions())
	}
	return Range{wm.starts[lo-1], wm.starts[hi]}, nil
}

// RankOf returns how many values in positions [lo, hi] have a rank <= rank.
func (wm *Matrix) RankOf(lo, hi, rank int) (int64, error) {
	ranze, err := wm.query(lo, hi, rank)
	if err != nil {
		return 0, err
	}
	return int64(wm.rankLessThan(ranze, uint64(rank))), nil
}

// Count returns how many values in positions [lo, hi] have a rank in [rlo, rhi].
func (wm *Matrix) Count(lo, hi, rlo, rhi int) (int64, error) {
	ranze, err := wm.query(lo, hi, rlo)
	if err != nil {
		return 0, err
	}
	if err := wm.checkRank(rhi); err != nil {
		return 0, err
	}
	if rlo > rhi {
		return 0, fmt.Errorf("%w: ranks [%d,%d] are reversed", ErrOutOfRange, rlo, rhi)
	}
	return int64(wm.RangedRankRange(ranze, Range{uint64(rlo - 1), uint64(rhi)})), nil
}

// Total returns how many values positions [lo, hi] hold.
func (wm *Matrix) Total(lo, hi int) (int64, error) {
	ranze, err := wm.Span(lo, hi)
	if err != nil {
		return 0, err
	}
	return int64(ranze.Epos - ranze.Bpos), nil
}

// Kth returns the k-th smallest rank (1-based) in positions [lo, hi].
func (wm *Matrix) Kth(lo, hi int, k int64) (int, bool, error) {
	ranze, err := wm.Span(lo, hi)
	if err != nil {
		return 0, false, err
	}
	if k < 1 || uint64(k) > ranze.Epos-ranze.Bpos {
		return 0, false, nil
	}
	return int(wm.Quantile(ranze, uint64(k-1))) + 1, true, nil
}

// Predecessor returns the largest rank < rank present in positions [lo, hi].
func (wm *Matrix) Predecessor(lo, hi, rank int) (int, bool, error) {
	ranze, err := wm.query(lo, hi, rank)
	if err != nil {
		return 0, false, err
	}
	k := wm.rankLessThan(ranze, uint64(rank-1))
	if k == 0 {
		return 0, false, nil
	}
	return int(wm.Quantile(ranze, k-1)) + 1, true, nil
}

// Successor returns the smallest rank > rank present in positions [lo, hi].
func (wm *Matrix) Successor(lo, hi, rank int) (int, bool, error) {
	ranze, err := wm.query(lo, hi, rank)
	if err != nil {
		return 0, false, err
	}
	c := wm.rankLessThan(ranze, uint64(rank))
	if c >= ranze.Epos-ranze.Bpos {
		return 0, false, nil
	}
	return int(wm.Quantile(ranze, c)) + 1, true, nil
}

// rankLessThan returns the number of stored values < val, i.e. ranks <= val.
func (wm *Matrix) rankLessThan(ranze Range, val uint64) uint64 {
	if wm.blen < 64 && val >= 1<<wm.blen {
		return ranze.Epos - ranze.Bpos
	}
	rankLessThan := uint64(0)
	for depth := uint64(0); depth < wm.blen; depth++ {
		bit := getMSB(val, depth, wm.blen)
		rsd := wm.layers[depth]
		if bit {
			rankLessThan += rsd.Rank(ranze.Epos, false) - rsd.Rank(ranze.Bpos, false)
			ranze.Bpos = rsd.ZeroNum() + rsd.Rank(ranze.Bpos, bit)
			ranze.Epos = rsd.ZeroNum() + rsd.Rank(ranze.Epos, bit)
		} else {
			ranze.Bpos = rsd.Rank(ranze.Bpos, bit)
			ranze.Epos = rsd.Rank(ranze.Epos, bit)
		}
	}
	return rankLessThan
}

// RangedRankRange searches values[ranze.Bpos, ranze.Epos) and
// returns the number of stored values (rank-1) that fall within valueRange.
func (wm *Matrix) RangedRankRange(ranze Range, valueRange Range) uint64 {
	end := wm.rankLessThan(ranze, valueRange.Epos)
	beg := wm.rankLessThan(ranze, valueRange.Bpos)
	return end - beg
}

// Quantile returns the (k+1)th smallest stored value (rank-1) in values[ranze.Bpos, ranze.Epos).
func (wm *Matrix) Quantile(ranze Range, k uint64) uint64 {
	val := uint64(0)
	bpos, epos := ranze.Bpos, ranze.Epos
	for depth := 0; depth < len(wm.layers); depth++ {
		val <<= 1
		rsd := wm.layers[depth]
		nzBpos := rsd.Rank(bpos, false)
		nzEpos := rsd.Rank(epos, false)
		nz := nzEpos - nzBpos
		if k < nz {
			bpos = nzBpos
			epos = nzEpos
		} else {
			k -= nz
			val |= 1
			bpos = rsd.ZeroNum() + bpos - nzBpos
			epos = rsd.ZeroNum() + epos - nzEpos
		}
	}
	return val
}

// Intersect returns the ranks present in at least k of the position ranges.
func (wm *Matrix) Intersect(spans [][2]int, k int) ([]int, error) {
	ranges := make([]Range, 0, len(spans))
	for _, sp := range spans {
		ranze, err := wm.Span(sp[0], sp[1])
		if err != nil {
			return nil, err
		}
		if ranze.Epos > ranze.Bpos {
			ranges = append(ranges, ranze)
		}
	}
	if k < 1 || len(ranges) < k {
		return nil, nil
	}
	vals := wm.intersectHelper(ranges, k, 0, 0)
	if len(vals) == 0 {
		return nil, nil
	}
	ret := make([]int, len(vals))
	for i, v := range vals {
		ret[i] = int(v) + 1
	}
	return ret, nil
}

func (wm *Matrix) intersectHelper(ranges []Range, k int, depth uint64, prefix uint64) []uint64 {
	if depth == wm.blen {
		return []uint64{prefix}
	}
	rsd := wm.layers[depth]
	zeroRanges := make([]Range, 0, len(ranges))
	oneRanges := make([]Range, 0, len(ranges))
	for _, ranze := range ranges {
		bpos, epos := ranze.Bpos, ranze.Epos
		nzBpos := rsd.Rank(bpos, false)
		nzEpos := rsd.Rank(epos, false)
		noBpos := bpos - nzBpos + rsd.ZeroNum()
		noEpos := epos - nzEpos + rsd.ZeroNum()
		if nzEpos-nzBpos > 0 {
			zeroRanges = append(zeroRanges, Range{nzBpos, nzEpos})
		}
		if noEpos-noBpos > 0 {
			oneRanges = append(oneRanges, Range{noBpos, noEpos})
		}
	}
	var ret []uint64
	if len(zeroRanges) >= k {
		ret = append(ret, wm.intersectHelper(zeroRanges, k, depth+1, prefix<<1)...)
	}
	if len(oneRanges) >= k {
		ret = append(ret, wm.intersectHelper(oneRanges, k, depth+1, (prefix<<1)|1)...)
	}
	return ret
}

func (wm *Matrix) query(lo, hi, rank int) (Range, error) {
	if err := wm.checkRank(rank); err != nil {
		return Range{}, err
	}
	return wm.Span(lo, hi)
}

func (wm *Matrix) checkRank(rank int) error {
	if rank < 1 || uint64(rank) > wm.dim {
		return fmt.Errorf("%w: rank %d not in [1,%d]", ErrOutOfRange, rank, wm.dim)
	}
	return nil
}

// MarshalBinary encodes the Matrix into a binary form and returns the result.
func (wm *Matrix) MarshalBinary() (out []byte, err error) {
	var bh codec.MsgpackHandle
	enc := codec.NewEncoderBytes(&out, &bh)
	err = enc.Encode(len(wm.layers))
	if err != nil {
		return
	}
	for i := 0; i < len(wm.layers); i++ {
		var layer []byte
		layer, err = wm.layers[i].MarshalBinary()
		if err != nil {
			return
		}
		err = enc.Encode(layer)
		if err != nil {
			return
		}
	}
	err = enc.Encode(wm.starts)
	if err != nil {
		return
	}
	err = enc.Encode(wm.dim)
	if err != nil {
		return
	}
	err = enc.Encode(wm.num)
	if err != nil {
		return
	}
	err = enc.Encode(wm.blen)
	return
}

// UnmarshalBinary decodes the Matrix from a binary form generated by MarshalBinary.
func (wm *Matrix) UnmarshalBinary(in []byte) (err error) {
	var bh codec.MsgpackHandle
	dec := codec.NewDecoderBytes(in, &bh)
	layerNum := 0
	err = dec.Decode(&layerNum)
	if err != nil {
		return
	}
	if layerNum < 0 || layerNum > 64 {
		return fmt.Errorf("%w: %d layers", ErrCorrupt, layerNum)
	}
	wm.layers = make([]*rsdic.RSDic, layerNum)
	for i := 0; i < layerNum; i++ {
		var layer []byte
		err = dec.Decode(&layer)
		if err != nil {
			return
		}
		wm.layers[i] = rsdic.New()
		err = wm.layers[i].UnmarshalBinary(layer)
		if err != nil {
			return
		}
	}
	err = dec.Decode(&wm.starts)
	if err != nil {
		return
	}
	err = dec.Decode(&wm.dim)
	if err != nil {
		return
	}
	err = dec.Decode(&wm.num)
	if err != nil {
		return
	}
	err = dec.Decode(&wm.blen)
	if err != nil {
		return
	}
	if wm.blen != uint64(layerNum) || len(wm.starts) == 0 || wm.starts[len(wm.starts)-1] != wm.num {
		return fmt.Errorf("%w: matrix header", ErrCorrupt)
	}
	return
}

func getMSB(x uint64, pos uint64, blen uint64) bool {
	return ((x >> (blen - pos - 1)) & 1) == 1
}
