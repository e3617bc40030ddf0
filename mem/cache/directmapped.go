package cache

import "github.com/sarchlab/cachesim/mem/addressing"

// DirectMapped is a cache where every index owns exactly one line.
type DirectMapped struct {
	*core

	lines []Line
}

func newDirectMapped(
	name string,
	layout addressing.Layout,
	backing BackingStore,
) *DirectMapped {
	c := &DirectMapped{
		core:  newCore(name, layout, backing),
		lines: make([]Line, layout.NumIndices()),
	}
	c.domain = c

	for i := range c.lines {
		c.lines[i] = newLine(int(layout.LineSize()))
	}

	return c
}

// NumLines returns the number of lines in the cache.
func (c *DirectMapped) NumLines() int {
	return len(c.lines)
}

// Line returns a copy of the line at index.
func (c *DirectMapped) Line(index int) Line {
	return c.lines[index].clone()
}

// Read returns the word at addr. Only a line occupied by the address's tag
// hits. On a miss the line is refilled and ends up clean.
func (c *DirectMapped) Read(addr uint64) AccessResult {
	f := c.layout.Decode(addr)
	line := &c.lines[f.Index]

	var res AccessResult
	if line.Holds(f.Tag) {
		res = AccessResult{
			Value: line.Words[f.Offset],
			Hit:   true,
			Dirty: line.IsDirty,
		}
	} else {
		c.refill(line, f.Index, 0, f.Tag)
		line.IsDirty = false
		res = AccessResult{Value: line.Words[f.Offset]}
	}

	c.finishAccess(AccessInfo{
		Kind:    AccessRead,
		Address: addr,
		Fields:  f,
		Result:  res,
	})

	return res
}

// Write stores value at addr and marks the line dirty. An unoccupied line
// is taken over without a refill.
func (c *DirectMapped) Write(addr, value uint64) {
	f := c.layout.Decode(addr)
	line := &c.lines[f.Index]

	hit := line.Claims(f.Tag)
	if !hit {
		c.refill(line, f.Index, 0, f.Tag)
	}

	line.Tag = f.Tag
	line.IsValid = true
	line.Words[f.Offset] = value
	line.IsDirty = true

	c.finishAccess(AccessInfo{
		Kind:    AccessWrite,
		Address: addr,
		Fields:  f,
		Data:    value,
		Result:  AccessResult{Value: value, Hit: hit, Dirty: true},
	})
}

// Flush writes every dirty line back and marks it clean.
func (c *DirectMapped) Flush() {
	for i := range c.lines {
		c.flushLine(&c.lines[i], uint64(i), 0)
	}
}
