package fenseg

import (
	"math/bits"

	"github.com/hillbig/rsdic"
)

type matrixBuilder struct {
	vals   []uint64
	starts []uint64
	dim    uint64
}

func newMatrixBuilder(n, s int) *matrixBuilder {
	starts := make([]uint64, 1, n+1)
	return &matrixBuilder{starts: starts, dim: uint64(s)}
}

// PushBack appends val (rank-1) to the current position.
func (wmb *matrixBuilder) PushBack(val uint64) {
	wmb.vals = append(wmb.vals, val)
}

// EndPosition closes the current position.
func (wmb *matrixBuilder) EndPosition() {
	wmb.starts = append(wmb.starts, uint64(len(wmb.vals)))
}

func (wmb *matrixBuilder) Build() *Matrix {
	blen := uint64(0)
	if wmb.dim > 1 {
		blen = uint64(bits.Len64(wmb.dim - 1))
	}
	zeros := wmb.vals
	ones := make([]uint64, 0)
	layers := make([]*rsdic.RSDic, blen)
	for depth := uint64(0); depth < blen; depth++ {
		nextZeros := make([]uint64, 0, len(zeros))
		nextOnes := make([]uint64, 0, len(ones))
		rsd := rsdic.New()
		filter(zeros, blen-depth-1, &nextZeros, &nextOnes, rsd)
		filter(ones, blen-depth-1, &nextZeros, &nextOnes, rsd)
		zeros = nextZeros
		ones = nextOnes
		layers[depth] = rsd
	}
	return &Matrix{
		layers: layers,
		starts: wmb.starts,
		dim:    wmb.dim,
		num:    uint64(len(wmb.vals)),
		blen:   blen,
	}
}

func filter(vals []uint64, depth uint64, nextZeros *[]uint64, nextOnes *[]uint64, rsd *rsdic.RSDic) {
	for _, val := range vals {
		bit := ((val >> depth) & 1) == 1
		rsd.PushBack(bit)
		if bit {
			*nextOnes = append(*nextOnes, val)
		} else {
			*nextZeros = append(*nextZeros, val)
		}
	}
}
