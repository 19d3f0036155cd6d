package fenseg

// lowbit returns the lowest set bit of x.
func lowbit(x int) int {
	return x & -x
}

// roots is the outer Fenwick array. roots[i] covers positions (i-lowbit(i), i];
// roots[0] is unused.
type roots []Handle

// update replaces every root covering pos with fn(root).
func (rs roots) update(pos int, fn func(root Handle) Handle) {
	for i := pos; i < len(rs); i += lowbit(i) {
		rs[i] = fn(rs[i])
	}
}

// prefix appends the roots whose ranges partition [1, pos], tagged with sign.
func (rs roots) prefix(terms []Term, pos int, sign int64) []Term {
	for i := pos; i > 0; i -= lowbit(i) {
		terms = append(terms, Term{Root: rs[i], Sign: sign})
	}
	return terms
}

// span returns the frontier terms for positions [lo, hi]: prefix(hi) minus prefix(lo-1).
//
// Roots shared by both prefixes cancel and are left out, so a short range deep
// in the array costs only the roots where the two decompositions differ.
func (rs roots) span(lo, hi int) []Term {
	terms := make([]Term, 0, 2*fenwickDepth(len(rs)-1))
	a, b := hi, lo-1
	for a != b {
		if a > b {
			terms = append(terms, Term{Root: rs[a], Sign: 1})
			a -= lowbit(a)
		} else {
			terms = append(terms, Term{Root: rs[b], Sign: -1})
			b -= lowbit(b)
		}
	}
	return terms
}

// fenwickDepth is the longest prefix decomposition over n positions.
func fenwickDepth(n int) int {
	d := 0
	for n > 0 {
		n >>= 1
		d++
	}
	return d
}
