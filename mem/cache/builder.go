package cache

import (
	"fmt"

	"github.com/sarchlab/cachesim/mem/addressing"
	"github.com/sarchlab/cachesim/mem/backing"
)

// DefaultNumWays is the associativity of the set-associative preset.
const DefaultNumWays = 8

// Builder can build caches.
type Builder struct {
	layout          addressing.Layout
	layoutSet       bool
	numWays         int
	replaceStrategy string
	victimFinder    VictimFinder
	backingStore    BackingStore
}

// MakeBuilder creates a new builder.
func MakeBuilder() Builder {
	return Builder{
		numWays:         DefaultNumWays,
		replaceStrategy: "lru",
	}
}

// WithLayout sets how addresses are split. Without it, each cache
// organization uses its own preset layout.
func (b Builder) WithLayout(layout addressing.Layout) Builder {
	b.layout = layout
	b.layoutSet = true

	return b
}

// WithWayAssociativity sets the number of ways of a set-associative cache.
func (b Builder) WithWayAssociativity(numWays int) Builder {
	b.numWays = numWays
	return b
}

// WithReplaceStrategy selects the victim finder by name. Only "lru" is
// supported.
func (b Builder) WithReplaceStrategy(strategy string) Builder {
	b.replaceStrategy = strategy
	return b
}

// WithVictimFinder sets the victim finder directly, overriding the replace
// strategy.
func (b Builder) WithVictimFinder(victimFinder VictimFinder) Builder {
	b.victimFinder = victimFinder
	return b
}

// WithBackingStore sets the memory behind the cache. Without it, the cache
// gets a fresh zeroed storage that covers the whole address layout.
func (b Builder) WithBackingStore(store BackingStore) Builder {
	b.backingStore = store
	return b
}

// BuildDirectMapped builds a direct-mapped cache.
func (b Builder) BuildDirectMapped(name string) *DirectMapped {
	if !b.layoutSet {
		b.layout = addressing.DirectMappedLayout
	}

	b.mustBeValid()

	return newDirectMapped(name, b.layout, b.createBackingStore())
}

// BuildSetAssociative builds a set-associative cache.
func (b Builder) BuildSetAssociative(name string) *SetAssociative {
	if !b.layoutSet {
		b.layout = addressing.SetAssociativeLayout
	}

	b.mustBeValid()

	if b.numWays <= 0 {
		panic("a set needs at least one way")
	}

	return newSetAssociative(
		name,
		b.layout,
		b.numWays,
		b.createBackingStore(),
		b.createVictimFinder(),
	)
}

func (b Builder) mustBeValid() {
	if err := b.layout.Validate(); err != nil {
		panic(err)
	}

	if b.backingStore != nil &&
		uint64(b.backingStore.LineSize()) != b.layout.LineSize() {
		panic(fmt.Sprintf(
			"backing store lines hold %d words, cache lines hold %d",
			b.backingStore.LineSize(), b.layout.LineSize()))
	}
}

func (b Builder) createBackingStore() BackingStore {
	if b.backingStore != nil {
		return b.backingStore
	}

	return backing.NewStorageForLayout(b.layout)
}

func (b Builder) createVictimFinder() VictimFinder {
	if b.victimFinder != nil {
		return b.victimFinder
	}

	var victimFinder VictimFinder

	switch b.replaceStrategy {
	case "lru":
		victimFinder = NewLRUVictimFinder()
	default:
		panic("unknown replace strategy: " + b.replaceStrategy)
	}

	return victimFinder
}
