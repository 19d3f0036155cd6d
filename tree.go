package fenseg

// Every tree spans the rank space [1, s] and splits an interval [lo, hi]
// at mid = (lo+hi)/2 into [lo, mid] and [mid+1, hi].

// add adds delta to every node on the path from root to the leaf [rank, rank]
// and returns the root, allocating it when root is Null.
//
// Nodes on the path are updated in place. Each Fenwick slot grows its own
// tree, so a node is only ever reachable from the root it was allocated under.
func add(a *Arena, s int, root Handle, rank int, delta int64) Handle {
	if root == Null {
		root = a.Allocate()
	}
	h := root
	lo, hi := 1, s
	for {
		a.at(h).Count += delta
		if lo == hi {
			return root
		}
		mid := int(uint(lo+hi) >> 1)
		if rank <= mid {
			next := a.at(h).Left
			if next == Null {
				next = a.Allocate()
				a.at(h).Left = next
			}
			h, hi = next, mid
		} else {
			next := a.at(h).Right
			if next == Null {
				next = a.Allocate()
				a.at(h).Right = next
			}
			h, lo = next, mid+1
		}
	}
}

// addCopy is add with path copying: the nodes on the path are replaced by
// fresh copies and the old root keeps describing the old state.
func addCopy(a *Arena, s int, root Handle, rank int, delta int64) Handle {
	newRoot := a.Clone(root)
	src, dst := root, newRoot
	lo, hi := 1, s
	for {
		a.at(dst).Count += delta
		if lo == hi {
			return newRoot
		}
		mid := int(uint(lo+hi) >> 1)
		old := a.Get(src)
		if rank <= mid {
			next := a.Clone(old.Left)
			a.at(dst).Left = next
			src, dst, hi = old.Left, next, mid
		} else {
			next := a.Clone(old.Right)
			a.at(dst).Right = next
			src, dst, lo = old.Right, next, mid+1
		}
	}
}
