// Package cache simulates write-back caches in front of a flat backing store.
//
// The caches only track logical state: which tag each line holds, whether
// the line is dirty, and the words it stores. Every access is resolved
// immediately, in the order it is issued.
package cache

import (
	"sync"

	"github.com/sarchlab/cachesim/mem/addressing"
	"github.com/sarchlab/cachesim/sim"
	"github.com/sarchlab/cachesim/sim/naming"
)

// HookPosAccess triggers after every read or write. The Detail of the
// context is an AccessInfo.
var HookPosAccess = &sim.HookPos{Name: "CacheAccess"}

// HookPosEviction triggers when a miss replaces the content of a line. The
// Detail of the context is an EvictionInfo.
var HookPosEviction = &sim.HookPos{Name: "CacheEviction"}

// HookPosFlush triggers when Flush writes a dirty line back. The Detail of
// the context is a FlushInfo.
var HookPosFlush = &sim.HookPos{Name: "CacheFlush"}

// A Cache serves reads and writes of words at flat addresses.
type Cache interface {
	sim.Hookable

	// Name returns the name of the cache.
	Name() string

	// Layout returns how the cache splits addresses.
	Layout() addressing.Layout

	// Read returns the word at addr and how the cache served it.
	Read(addr uint64) AccessResult

	// Write stores value at addr.
	Write(addr, value uint64)

	// Flush writes every dirty line back and marks it clean.
	Flush()

	// Stats returns a copy of the access statistics.
	Stats() Statistics

	// ResetStats sets all the statistics back to zero.
	ResetStats()
}

// A BackingStore is the memory the cache fetches lines from and writes
// evicted lines to.
type BackingStore interface {
	LineSize() int
	ReadLine(tag, index uint64, dst []uint64) error
	WriteLine(tag, index uint64, src []uint64) error
}

// AccessResult is what a read reports.
type AccessResult struct {
	Value uint64
	Hit   bool
	Dirty bool
}

// AccessKind tells reads and writes apart.
type AccessKind int

// The kinds of accesses.
const (
	AccessRead AccessKind = iota
	AccessWrite
)

func (k AccessKind) String() string {
	switch k {
	case AccessRead:
		return "read"
	case AccessWrite:
		return "write"
	default:
		return "unknown"
	}
}

// AccessInfo describes a completed access.
type AccessInfo struct {
	Kind    AccessKind
	Address uint64
	Fields  addressing.Fields
	Data    uint64
	Way     int
	Result  AccessResult
}

// EvictionInfo describes a line being replaced on a miss.
type EvictionInfo struct {
	Index    uint64
	Way      int
	OldTag   uint64
	WasValid bool
	WasDirty bool
	NewTag   uint64
}

// FlushInfo describes a dirty line written back by Flush.
type FlushInfo struct {
	Index uint64
	Way   int
	Tag   uint64
}

// Statistics counts what happened in a cache. Flushes counts lines written
// back by Flush; WriteBacks only counts those written back on eviction.
type Statistics struct {
	Reads      uint64 `json:"reads"`
	Writes     uint64 `json:"writes"`
	Hits       uint64 `json:"hits"`
	Misses     uint64 `json:"misses"`
	Evictions  uint64 `json:"evictions"`
	WriteBacks uint64 `json:"write_backs"`
	Flushes    uint64 `json:"flushes"`
}

// HitRate returns the fraction of accesses that hit.
func (s Statistics) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}

	return float64(s.Hits) / float64(total)
}

// core holds what both cache organizations share: the address layout, the
// backing store and the bookkeeping.
type core struct {
	*sim.HookableBase
	naming.NamedBase
	domain sim.Hookable

	layout  addressing.Layout
	backing BackingStore

	statsLock sync.Mutex
	stats     Statistics
}

func newCore(name string, layout addressing.Layout, backing BackingStore) *core {
	return &core{
		HookableBase: sim.NewHookableBase(),
		NamedBase:    naming.MakeNamedBase(name),
		layout:       layout,
		backing:      backing,
	}
}

// Layout returns how the cache splits addresses.
func (c *core) Layout() addressing.Layout {
	return c.layout
}

// Stats returns a copy of the access statistics.
func (c *core) Stats() Statistics {
	c.statsLock.Lock()
	defer c.statsLock.Unlock()

	return c.stats
}

// ResetStats sets all the statistics back to zero.
func (c *core) ResetStats() {
	c.statsLock.Lock()
	defer c.statsLock.Unlock()

	c.stats = Statistics{}
}

// refill replaces the content of line with the line of tag. The current
// content goes back to the backing store first, under its old tag. An
// unoccupied line has no backing location, so nothing is written for it.
// The dirty bit is left to the caller.
func (c *core) refill(line *Line, index uint64, way int, tag uint64) {
	info := EvictionInfo{
		Index:    index,
		Way:      way,
		OldTag:   line.Tag,
		WasValid: line.IsValid,
		WasDirty: line.IsDirty,
		NewTag:   tag,
	}

	if line.IsValid {
		err := c.backing.WriteLine(line.Tag, index, line.Words)
		if err != nil {
			panic(err)
		}
	}

	err := c.backing.ReadLine(tag, index, line.Words)
	if err != nil {
		panic(err)
	}

	line.Tag = tag
	line.IsValid = true

	c.statsLock.Lock()
	if info.WasValid {
		c.stats.Evictions++

		if info.WasDirty {
			c.stats.WriteBacks++
		}
	}
	c.statsLock.Unlock()

	if c.NumHooks() > 0 {
		c.InvokeHook(sim.HookCtx{
			Domain: c.domain,
			Pos:    HookPosEviction,
			Detail: info,
		})
	}
}

// flushLine writes a dirty line back without evicting it.
func (c *core) flushLine(line *Line, index uint64, way int) {
	if !line.IsValid || !line.IsDirty {
		return
	}

	err := c.backing.WriteLine(line.Tag, index, line.Words)
	if err != nil {
		panic(err)
	}

	line.IsDirty = false

	c.statsLock.Lock()
	c.stats.Flushes++
	c.statsLock.Unlock()

	if c.NumHooks() > 0 {
		c.InvokeHook(sim.HookCtx{
			Domain: c.domain,
			Pos:    HookPosFlush,
			Detail: FlushInfo{Index: index, Way: way, Tag: line.Tag},
		})
	}
}

func (c *core) finishAccess(info AccessInfo) {
	c.statsLock.Lock()
	if info.Kind == AccessRead {
		c.stats.Reads++
	} else {
		c.stats.Writes++
	}

	if info.Result.Hit {
		c.stats.Hits++
	} else {
		c.stats.Misses++
	}
	c.statsLock.Unlock()

	if c.NumHooks() > 0 {
		c.InvokeHook(sim.HookCtx{
			Domain: c.domain,
			Pos:    HookPosAccess,
			Detail: info,
		})
	}
}
