// Package trace provides hooks that trace what a cache does with every
// access.
package trace

import (
	"log"

	"github.com/sarchlab/cachesim/datarecording"
	"github.com/sarchlab/cachesim/mem/cache"
	"github.com/sarchlab/cachesim/sim"
	"github.com/sarchlab/cachesim/sim/id"
)

// Table names used by the database tracer.
const (
	AccessTable   = "cache_accesses"
	EvictionTable = "cache_evictions"
	FlushTable    = "cache_flushes"
)

// accessEntry represents a cache access in the database
type accessEntry struct {
	ID         string
	Seq        uint64
	Cache      string
	Kind       string
	Address    uint64
	Tag        uint64
	LineIndex  uint64
	WordOffset uint64
	Way        int
	Data       uint64
	Value      uint64
	Hit        bool
	Dirty      bool
}

// evictionEntry represents a line replacement in the database
type evictionEntry struct {
	ID        string
	Seq       uint64
	Cache     string
	LineIndex uint64
	Way       int
	OldTag    uint64
	WasValid  bool
	WasDirty  bool
	NewTag    uint64
}

// flushEntry represents a dirty line written back by a flush
type flushEntry struct {
	ID        string
	Seq       uint64
	Cache     string
	LineIndex uint64
	Way       int
	Tag       uint64
}

func cacheName(ctx sim.HookCtx) string {
	named, ok := ctx.Domain.(interface{ Name() string })
	if !ok {
		return ""
	}

	return named.Name()
}

// A tracer is a hook that writes cache events to a logger.
type tracer struct {
	sim.LogHookBase
}

// NewTracer creates a hook that prints one line per cache event.
func NewTracer(logger *log.Logger) sim.Hook {
	return &tracer{LogHookBase: sim.MakeLogHookBase(logger)}
}

// Func prints the event.
func (t *tracer) Func(ctx sim.HookCtx) {
	switch ctx.Pos {
	case cache.HookPosAccess:
		info := ctx.Detail.(cache.AccessInfo)
		t.Printf(
			"%s, %s, 0x%x, way %d, data 0x%x, value 0x%x, hit %t, dirty %t\n",
			cacheName(ctx),
			info.Kind,
			info.Address,
			info.Way,
			info.Data,
			info.Result.Value,
			info.Result.Hit,
			info.Result.Dirty,
		)
	case cache.HookPosEviction:
		info := ctx.Detail.(cache.EvictionInfo)
		if !info.WasValid {
			t.Printf("%s, fill, index 0x%x, way %d, tag 0x%x\n",
				cacheName(ctx), info.Index, info.Way, info.NewTag)

			return
		}

		t.Printf(
			"%s, evict, index 0x%x, way %d, tag 0x%x -> 0x%x, dirty %t\n",
			cacheName(ctx),
			info.Index,
			info.Way,
			info.OldTag,
			info.NewTag,
			info.WasDirty,
		)
	case cache.HookPosFlush:
		info := ctx.Detail.(cache.FlushInfo)
		t.Printf("%s, flush, index 0x%x, way %d, tag 0x%x\n",
			cacheName(ctx), info.Index, info.Way, info.Tag)
	}
}

// A dbTracer is a hook that records cache events into a database using the
// data recorder.
type dbTracer struct {
	dataRecorder datarecording.DataRecorder
	seq          uint64
}

// NewDBTracer creates a hook that inserts every access, line replacement
// and flushed line into the data recorder.
func NewDBTracer(dataRecorder datarecording.DataRecorder) sim.Hook {
	t := &dbTracer{
		dataRecorder: dataRecorder,
	}

	t.dataRecorder.CreateTable(AccessTable, accessEntry{})
	t.dataRecorder.CreateTable(EvictionTable, evictionEntry{})
	t.dataRecorder.CreateTable(FlushTable, flushEntry{})

	return t
}

// Func records the event.
func (t *dbTracer) Func(ctx sim.HookCtx) {
	switch ctx.Pos {
	case cache.HookPosAccess:
		t.recordAccess(cacheName(ctx), ctx.Detail.(cache.AccessInfo))
	case cache.HookPosEviction:
		t.recordEviction(cacheName(ctx), ctx.Detail.(cache.EvictionInfo))
	case cache.HookPosFlush:
		t.recordFlush(cacheName(ctx), ctx.Detail.(cache.FlushInfo))
	}
}

func (t *dbTracer) recordAccess(name string, info cache.AccessInfo) {
	t.seq++

	entry := accessEntry{
		ID:         id.Generate(),
		Seq:        t.seq,
		Cache:      name,
		Kind:       info.Kind.String(),
		Address:    info.Address,
		Tag:        info.Fields.Tag,
		LineIndex:  info.Fields.Index,
		WordOffset: info.Fields.Offset,
		Way:        info.Way,
		Data:       info.Data,
		Value:      info.Result.Value,
		Hit:        info.Result.Hit,
		Dirty:      info.Result.Dirty,
	}

	t.dataRecorder.InsertData(AccessTable, entry)
}

func (t *dbTracer) recordEviction(name string, info cache.EvictionInfo) {
	entry := evictionEntry{
		ID:        id.Generate(),
		Seq:       t.seq + 1,
		Cache:     name,
		LineIndex: info.Index,
		Way:       info.Way,
		OldTag:    info.OldTag,
		WasValid:  info.WasValid,
		WasDirty:  info.WasDirty,
		NewTag:    info.NewTag,
	}

	t.dataRecorder.InsertData(EvictionTable, entry)
}

func (t *dbTracer) recordFlush(name string, info cache.FlushInfo) {
	t.seq++

	entry := flushEntry{
		ID:        id.Generate(),
		Seq:       t.seq,
		Cache:     name,
		LineIndex: info.Index,
		Way:       info.Way,
		Tag:       info.Tag,
	}

	t.dataRecorder.InsertData(FlushTable, entry)
}
