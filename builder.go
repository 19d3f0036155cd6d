package fenseg

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/constraints"
)

// Builder collects the initial contents of a ValueIndex and every value that
// will be set or queried later, then builds the index in one step.
// A user calls PushBack()s and Reserve()s followed by Build().
type Builder[T constraints.Ordered] struct {
	vals    []T
	present []bool
	comp    *Compressor[T]
}

// NewBuilder returns an empty Builder.
func NewBuilder[T constraints.Ordered]() *Builder[T] {
	return &Builder[T]{comp: NewCompressor[T]()}
}

// PushBack appends a position holding v.
func (b *Builder[T]) PushBack(v T) {
	b.vals = append(b.vals, v)
	b.present = append(b.present, true)
	b.comp.values = append(b.comp.values, v)
}

// PushEmpty appends an empty position.
func (b *Builder[T]) PushEmpty() {
	var zero T
	b.vals = append(b.vals, zero)
	b.present = append(b.present, false)
}

// Reserve adds values that do not start in the array but will be set or queried.
func (b *Builder[T]) Reserve(vals ...T) {
	b.comp.values = append(b.comp.values, vals...)
}

// Len returns the number of positions pushed so far.
func (b *Builder[T]) Len() int {
	return len(b.vals)
}

// Build freezes the domain and returns the populated ValueIndex.
// The Builder must not be used afterwards.
func (b *Builder[T]) Build(opts ...Option) (*ValueIndex[T], error) {
	vi, err := NewValueIndex(len(b.vals), b.comp, opts...)
	if err != nil {
		return nil, err
	}
	for i, v := range b.vals {
		if !b.present[i] {
			continue
		}
		if err := vi.Set(i+1, v); err != nil {
			return nil, err
		}
	}
	vi.ix.log.WithFields(logrus.Fields{
		"positions": vi.Positions(),
		"domain":    b.comp.Size(),
		"values":    vi.Len(),
		"nodes":     vi.ix.arena.Len(),
	}).Debug("value index built")
	return vi, nil
}
