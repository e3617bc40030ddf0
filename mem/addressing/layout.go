// Package addressing splits flat memory addresses into the tag, index and
// offset fields used to place data in a cache.
package addressing

import "fmt"

// Fields are the three disjoint parts of an address. Index selects a line
// in a direct-mapped cache or a set in a set-associative cache. Offset
// selects a word within the line.
type Fields struct {
	Tag    uint64
	Index  uint64
	Offset uint64
}

// A Layout defines the width of each address field, from the most
// significant (tag) to the least significant (offset).
type Layout struct {
	TagBits    uint
	IndexBits  uint
	OffsetBits uint
}

// DirectMappedLayout is the 16-bit address layout of the direct-mapped
// cache: 256 tags, 32 lines and 8 words per line.
var DirectMappedLayout = Layout{TagBits: 8, IndexBits: 5, OffsetBits: 3}

// SetAssociativeLayout is the 16-bit address layout of the set-associative
// cache: 1024 tags, 16 sets and 4 words per line.
var SetAssociativeLayout = Layout{TagBits: 10, IndexBits: 4, OffsetBits: 2}

// MaxLineBits bounds IndexBits + OffsetBits. Caches allocate every line up
// front, so the index and offset together decide how many words a cache
// holds per way.
const MaxLineBits = 24

// Validate checks that the layout describes a usable address space.
func (l Layout) Validate() error {
	total := l.TagBits + l.IndexBits + l.OffsetBits
	if total > 64 {
		return fmt.Errorf("address layout uses %d bits, more than 64", total)
	}

	if l.TagBits == 64 || l.IndexBits == 64 || l.OffsetBits == 64 {
		return fmt.Errorf("a single 64-bit address field cannot be counted")
	}

	if l.IndexBits+l.OffsetBits > MaxLineBits {
		return fmt.Errorf("index and offset use %d bits, more than %d",
			l.IndexBits+l.OffsetBits, MaxLineBits)
	}

	return nil
}

// Bits returns the total number of address bits consulted by the layout.
func (l Layout) Bits() uint {
	return l.TagBits + l.IndexBits + l.OffsetBits
}

// NumTags returns how many distinct tags the layout can express.
func (l Layout) NumTags() uint64 {
	return uint64(1) << l.TagBits
}

// NumIndices returns the number of lines (or sets) addressed by the index.
func (l Layout) NumIndices() uint64 {
	return uint64(1) << l.IndexBits
}

// LineSize returns the number of words in a line.
func (l Layout) LineSize() uint64 {
	return uint64(1) << l.OffsetBits
}

// Decode splits an address. Bits above the layout's width are ignored.
func (l Layout) Decode(addr uint64) Fields {
	return Fields{
		Tag:    (addr >> (l.OffsetBits + l.IndexBits)) & CalculateMask(l.TagBits),
		Index:  (addr >> l.OffsetBits) & CalculateMask(l.IndexBits),
		Offset: addr & CalculateMask(l.OffsetBits),
	}
}

// Encode joins fields back into an address. Field bits that do not fit the
// layout are dropped.
func (l Layout) Encode(f Fields) uint64 {
	tag := f.Tag & CalculateMask(l.TagBits)
	index := f.Index & CalculateMask(l.IndexBits)
	offset := f.Offset & CalculateMask(l.OffsetBits)

	return tag<<(l.OffsetBits+l.IndexBits) | index<<l.OffsetBits | offset
}

// CalculateMask returns a mask with the size least significant bits set.
func CalculateMask(size uint) uint64 {
	if size >= 64 {
		return ^uint64(0)
	}

	return uint64(1)<<size - 1
}
