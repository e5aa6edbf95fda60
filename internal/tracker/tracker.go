package tracker

import "sync"

// AddressSet is the deduplication store shared by every worker in a scan.
// It records each address seen and keeps a running count of distinct entries.
// Membership check, insertion and the count increment happen inside a single
// critical section; splitting them would let two workers both observe an
// address as absent and double-count it.
type AddressSet struct {
	mu    sync.Mutex
	seen  map[string]struct{}
	count int64
}

// NewAddressSet creates an empty AddressSet ready for concurrent use.
func NewAddressSet() *AddressSet {
	return &AddressSet{seen: make(map[string]struct{})}
}

// Add inserts the address if it has not been seen before and reports whether
// this call created a new distinct entry. Safe for concurrent use.
func (s *AddressSet) Add(address string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.seen[address]; ok {
		return false
	}
	s.seen[address] = struct{}{}
	s.count++
	return true
}

// Count returns the number of distinct addresses inserted so far. The value
// never decreases; entries are never removed.
func (s *AddressSet) Count() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}
