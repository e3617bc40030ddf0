package cache

import "github.com/sarchlab/cachesim/mem/addressing"

// SetAssociative is a cache where every index selects a set of ways.
//
// A lookup scans the ways in order and takes the first one that is either
// unoccupied or holds the tag. Only when no way qualifies does the victim
// finder pick a way to replace.
type SetAssociative struct {
	*core

	numWays      int
	sets         []Set
	victimFinder VictimFinder
}

func newSetAssociative(
	name string,
	layout addressing.Layout,
	numWays int,
	backing BackingStore,
	victimFinder VictimFinder,
) *SetAssociative {
	c := &SetAssociative{
		core:         newCore(name, layout, backing),
		numWays:      numWays,
		sets:         make([]Set, layout.NumIndices()),
		victimFinder: victimFinder,
	}
	c.domain = c

	for i := range c.sets {
		c.sets[i] = newSet(numWays, int(layout.LineSize()))
	}

	return c
}

// NumSets returns the number of sets in the cache.
func (c *SetAssociative) NumSets() int {
	return len(c.sets)
}

// NumWays returns the number of ways in each set.
func (c *SetAssociative) NumWays() int {
	return c.numWays
}

// Way returns a copy of a line.
func (c *SetAssociative) Way(setID, way int) Line {
	return c.sets[setID].Ways[way].clone()
}

// LRUQueue returns the ways of a set from the least to the most recently
// used.
func (c *SetAssociative) LRUQueue(setID int) []int {
	return append([]int(nil), c.sets[setID].LRUQueue...)
}

func (c *SetAssociative) lookup(f addressing.Fields) (set *Set, way int, hit bool) {
	set = &c.sets[f.Index]

	way = set.ClaimingWay(f.Tag)
	if way >= 0 {
		return set, way, true
	}

	return set, c.victimFinder.FindVictim(set), false
}

// Read returns the word at addr. A hit leaves the line untouched, even when
// the way was unoccupied. A miss refills the victim and leaves it clean.
func (c *SetAssociative) Read(addr uint64) AccessResult {
	f := c.layout.Decode(addr)
	set, way, hit := c.lookup(f)
	line := &set.Ways[way]

	var res AccessResult
	if hit {
		res = AccessResult{
			Value: line.Words[f.Offset],
			Hit:   true,
			Dirty: line.IsDirty,
		}
	} else {
		c.refill(line, f.Index, way, f.Tag)
		line.IsDirty = false
		res = AccessResult{Value: line.Words[f.Offset]}
	}

	set.Visit(way)

	c.finishAccess(AccessInfo{
		Kind:    AccessRead,
		Address: addr,
		Fields:  f,
		Way:     way,
		Result:  res,
	})

	return res
}

// Write stores value at addr and marks the way dirty.
func (c *SetAssociative) Write(addr, value uint64) {
	f := c.layout.Decode(addr)
	set, way, hit := c.lookup(f)
	line := &set.Ways[way]

	if !hit {
		c.refill(line, f.Index, way, f.Tag)
	}

	line.Tag = f.Tag
	line.IsValid = true
	line.Words[f.Offset] = value
	line.IsDirty = true

	set.Visit(way)

	c.finishAccess(AccessInfo{
		Kind:    AccessWrite,
		Address: addr,
		Fields:  f,
		Data:    value,
		Way:     way,
		Result:  AccessResult{Value: value, Hit: hit, Dirty: true},
	})
}

// Flush writes every dirty way back and marks it clean. The LRU order does
// not change.
func (c *SetAssociative) Flush() {
	for i := range c.sets {
		for w := range c.sets[i].Ways {
			c.flushLine(&c.sets[i].Ways[w], uint64(i), w)
		}
	}
}
