package cache

// A Line is one slot of cache storage.
type Line struct {
	Tag     uint64
	IsValid bool
	IsDirty bool
	Words   []uint64
}

func newLine(lineSize int) Line {
	return Line{Words: make([]uint64, lineSize)}
}

// Claims reports whether the line can serve tag without a refill. An
// unoccupied line claims any tag.
func (l *Line) Claims(tag uint64) bool {
	return !l.IsValid || l.Tag == tag
}

// Holds reports whether the line is occupied by tag.
func (l *Line) Holds(tag uint64) bool {
	return l.IsValid && l.Tag == tag
}

func (l Line) clone() Line {
	l.Words = append([]uint64(nil), l.Words...)
	return l
}

// A Set is a list of ways where a certain piece memory can be stored at.
// LRUQueue lists way indices from the least to the most recently used.
type Set struct {
	Ways     []Line
	LRUQueue []int
}

func newSet(numWays, lineSize int) Set {
	s := Set{
		Ways:     make([]Line, numWays),
		LRUQueue: make([]int, numWays),
	}

	for i := range s.Ways {
		s.Ways[i] = newLine(lineSize)
		s.LRUQueue[i] = i
	}

	return s
}

// ClaimingWay returns the first way that claims tag, or -1.
func (s *Set) ClaimingWay(tag uint64) int {
	for i := range s.Ways {
		if s.Ways[i].Claims(tag) {
			return i
		}
	}

	return -1
}

// Visit moves the way to the end of the LRUQueue
func (s *Set) Visit(way int) {
	for i, w := range s.LRUQueue {
		if w != way {
			continue
		}

		copy(s.LRUQueue[i:], s.LRUQueue[i+1:])
		s.LRUQueue[len(s.LRUQueue)-1] = way

		return
	}
}
