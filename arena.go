package fenseg

import (
	"math"

	"github.com/sirupsen/logrus"
)

// Handle references a Node in an Arena. The zero Handle is the null handle and
// stands for an unallocated, all-zero subtree.
type Handle uint32

// Null is the handle of the empty subtree.
const Null Handle = 0

// Node is one interval [lo, hi] of the implicit balanced split of the rank space.
// The interval itself is not stored; it follows from the path taken from a root.
type Node struct {
	Count int64
	Left  Handle
	Right Handle
}

// Arena is an append-only pool of nodes addressed by Handle.
// Slot 0 holds the all-zero node behind Null and is never written.
type Arena struct {
	nodes []Node
	log   logrus.FieldLogger
}

// NewArena returns an arena with room for capacity nodes before it has to grow.
func NewArena(capacity int, log logrus.FieldLogger) *Arena {
	if capacity < 1 {
		capacity = 1
	}
	if log == nil {
		log = discardLogger()
	}
	return &Arena{nodes: make([]Node, 1, capacity), log: log}
}

// Allocate returns the handle of a fresh zero node.
func (a *Arena) Allocate() Handle {
	return a.push(Node{})
}

// Clone returns the handle of a fresh copy of h. Cloning Null yields a fresh zero node.
func (a *Arena) Clone(h Handle) Handle {
	return a.push(a.nodes[h])
}

func (a *Arena) push(n Node) Handle {
	if uint64(len(a.nodes)) > math.MaxUint32 {
		panic(ErrArenaExhausted)
	}
	h := Handle(len(a.nodes))
	if len(a.nodes) == cap(a.nodes) {
		before := cap(a.nodes)
		a.nodes = append(a.nodes, n)
		a.log.WithFields(logrus.Fields{"from": before, "to": cap(a.nodes)}).Debug("arena grown")
		return h
	}
	a.nodes = append(a.nodes, n)
	return h
}

// Get returns a copy of the node behind h. Get(Null) is the zero Node.
func (a *Arena) Get(h Handle) Node {
	return a.nodes[h]
}

// Len returns the number of allocated nodes, not counting the null slot.
func (a *Arena) Len() int {
	return len(a.nodes) - 1
}

// Cap returns the number of nodes the arena holds before growing again.
func (a *Arena) Cap() int {
	return cap(a.nodes) - 1
}

func (a *Arena) at(h Handle) *Node {
	return &a.nodes[h]
}

// clone returns an independent arena with the same nodes.
func (a *Arena) clone() *Arena {
	nodes := make([]Node, len(a.nodes), cap(a.nodes))
	copy(nodes, a.nodes)
	return &Arena{nodes: nodes, log: a.log}
}
