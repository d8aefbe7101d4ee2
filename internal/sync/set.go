package sync

import "sync"

// Set is a thread-safe set. Replace swaps the whole membership in one step
// and reports the difference, which is how full-snapshot updates (such as an
// active speaker list) are turned into per-member change events.
type Set[K comparable] struct {
	mu sync.RWMutex
	m  map[K]struct{}
}

func NewSet[K comparable]() *Set[K] {
	return &Set[K]{m: make(map[K]struct{})}
}

func (s *Set[K]) Has(key K) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.m[key]
	return ok
}

// Add reports whether key was newly added.
func (s *Set[K]) Add(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[key]; ok {
		return false
	}
	s.m[key] = struct{}{}
	return true
}

// Remove reports whether key was present.
func (s *Set[K]) Remove(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[key]; !ok {
		return false
	}
	delete(s.m, key)
	return true
}

func (s *Set[K]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}

// Keys returns a snapshot of the members in no particular order.
func (s *Set[K]) Keys() []K {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]K, 0, len(s.m))
	for k := range s.m {
		keys = append(keys, k)
	}
	return keys
}

// Replace sets the membership to keys and returns what joined and what left.
func (s *Set[K]) Replace(keys []K) (added, removed []K) {
	next := make(map[K]struct{}, len(keys))
	for _, k := range keys {
		next[k] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range next {
		if _, ok := s.m[k]; !ok {
			added = append(added, k)
		}
	}
	for k := range s.m {
		if _, ok := next[k]; !ok {
			removed = append(removed, k)
		}
	}
	s.m = next
	return added, removed
}

// Clear empties the set and returns the former members.
func (s *Set[K]) Clear() []K {
	_, removed := s.Replace(nil)
	return removed
}
