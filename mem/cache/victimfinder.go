package cache

// A VictimFinder decides which way of a full set should be replaced.
type VictimFinder interface {
	FindVictim(set *Set) int
}

// LRUVictimFinder evicts the least recently used way.
type LRUVictimFinder struct {
}

// NewLRUVictimFinder returns a newly constructed lru evictor
func NewLRUVictimFinder() *LRUVictimFinder {
	e := new(LRUVictimFinder)
	return e
}

// FindVictim returns the way at the front of the LRU queue.
func (e *LRUVictimFinder) FindVictim(set *Set) int {
	return set.LRUQueue[0]
}
