package fenseg

import (
	"fmt"

	"github.com/ugorji/go/codec"
)

// MarshalBinary encodes the Index into a binary form and returns the result.
// The logger and arena capacity are not encoded.
func (ix *Index) MarshalBinary() (out []byte, err error) {
	var bh codec.MsgpackHandle
	enc := codec.NewEncoderBytes(&out, &bh)
	err = enc.Encode(ix.n)
	if err != nil {
		return
	}
	err = enc.Encode(ix.s)
	if err != nil {
		return
	}
	err = enc.Encode(ix.opts.Persistent)
	if err != nil {
		return
	}
	err = enc.Encode(ix.opts.Unchecked)
	if err != nil {
		return
	}
	// The null slot is implied.
	err = enc.Encode(ix.arena.nodes[1:])
	if err != nil {
		return
	}
	err = enc.Encode([]Handle(ix.roots))
	return
}

// UnmarshalBinary decodes the Index from a binary form generated by MarshalBinary.
// The receiver keeps its logger, if it has one.
func (ix *Index) UnmarshalBinary(in []byte) (err error) {
	var bh codec.MsgpackHandle
	dec := codec.NewDecoderBytes(in, &bh)
	var (
		n, s                  int
		persistent, unchecked bool
		nodes                 []Node
		rs                    []Handle
	)
	err = dec.Decode(&n)
	if err != nil {
		return
	}
	err = dec.Decode(&s)
	if err != nil {
		return
	}
	err = dec.Decode(&persistent)
	if err != nil {
		return
	}
	err = dec.Decode(&unchecked)
	if err != nil {
		return
	}
	err = dec.Decode(&nodes)
	if err != nil {
		return
	}
	err = dec.Decode(&rs)
	if err != nil {
		return
	}
	if n < 1 || s < 1 || len(rs) != n+1 {
		return fmt.Errorf("%w: index header", ErrCorrupt)
	}
	limit := Handle(len(nodes))
	for _, nd := range nodes {
		if nd.Left > limit || nd.Right > limit {
			return fmt.Errorf("%w: node handle outside arena", ErrCorrupt)
		}
	}
	for _, h := range rs {
		if h > limit {
			return fmt.Errorf("%w: root handle outside arena", ErrCorrupt)
		}
	}

	log := ix.log
	if log == nil {
		log = discardLogger()
	}
	arena := NewArena(len(nodes)+1, log)
	arena.nodes = append(arena.nodes, nodes...)
	ix.n, ix.s = n, s
	ix.arena = arena
	ix.roots = roots(rs)
	ix.opts = Options{Persistent: persistent, Unchecked: unchecked, Logger: log}
	ix.log = log
	return nil
}
