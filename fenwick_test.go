package fenseg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLowbit(t *testing.T) {
	t.Parallel()

	for x, want := range map[int]int{1: 1, 2: 2, 3: 1, 6: 2, 8: 8, 12: 4, 96: 32} {
		require.Equal(t, want, lowbit(x), "lowbit(%d)", x)
	}
}

func TestRootsUpdate(t *testing.T) {
	t.Parallel()

	var touched []int
	rs := make(roots, 17)
	rs.update(5, func(h Handle) Handle {
		touched = append(touched, int(h))
		return h + 1
	})
	for i, h := range rs {
		if h != Null {
			touched = append(touched, -i)
		}
	}
	require.Equal(t, []int{0, 0, 0, 0, -5, -6, -8, -16}, touched)
}

func TestRootsSpan(t *testing.T) {
	t.Parallel()

	rs := make(roots, 33)
	for i := range rs {
		rs[i] = Handle(i)
	}

	tests := []struct {
		lo, hi int
		want   []Term
	}{
		{lo: 1, hi: 7, want: []Term{{7, 1}, {6, 1}, {4, 1}}},
		{lo: 5, hi: 8, want: []Term{{8, 1}, {4, -1}}},
		{lo: 7, hi: 7, want: []Term{{7, 1}}},
		{lo: 8, hi: 8, want: []Term{{8, 1}, {7, -1}, {6, -1}, {4, -1}}},
		{lo: 17, hi: 32, want: []Term{{32, 1}, {16, -1}}},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, rs.span(tt.lo, tt.hi), "span(%d,%d)", tt.lo, tt.hi)
	}

	require.Equal(t, []Term{{12, -1}, {8, -1}}, rs.prefix(nil, 12, -1))
	require.Empty(t, rs.prefix(nil, 0, 1))
	require.Equal(t, 6, fenwickDepth(32))
}
