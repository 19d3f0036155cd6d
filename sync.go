package fenseg

import "sync"

// SyncIndex serializes updates of an Index and lets queries run concurrently
// with each other.
type SyncIndex struct {
	mu sync.RWMutex
	ix *Index
}

// NewSync wraps ix. The caller must not use ix directly afterwards.
func NewSync(ix *Index) *SyncIndex {
	return &SyncIndex{ix: ix}
}

// Positions returns N.
func (s *SyncIndex) Positions() int {
	return s.ix.n
}

// Domain returns S.
func (s *SyncIndex) Domain() int {
	return s.ix.s
}

// Insert adds one occurrence of rank at pos.
func (s *SyncIndex) Insert(pos, rank int) error {
	return s.Update(pos, rank, 1)
}

// Delete removes one occurrence of rank at pos.
func (s *SyncIndex) Delete(pos, rank int) error {
	return s.Update(pos, rank, -1)
}

// Update adds delta occurrences of rank at pos.
func (s *SyncIndex) Update(pos, rank int, delta int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ix.Update(pos, rank, delta)
}

// View returns a snapshot that can be queried without holding the lock.
func (s *SyncIndex) View() *View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ix.View()
}

func (s *SyncIndex) RankOf(lo, hi, rank int) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ix.RankOf(lo, hi, rank)
}

func (s *SyncIndex) Count(lo, hi, rlo, rhi int) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ix.Count(lo, hi, rlo, rhi)
}

func (s *SyncIndex) Total(lo, hi int) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ix.Total(lo, hi)
}

func (s *SyncIndex) Kth(lo, hi int, k int64) (int, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ix.Kth(lo, hi, k)
}

func (s *SyncIndex) Predecessor(lo, hi, rank int) (int, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ix.Predecessor(lo, hi, rank)
}

func (s *SyncIndex) Successor(lo, hi, rank int) (int, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ix.Successor(lo, hi, rank)
}
