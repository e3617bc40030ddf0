// Package backing provides the flat memory that sits behind a cache.
package backing

import (
	"errors"
	"fmt"

	"github.com/sarchlab/cachesim/mem/addressing"
)

// ErrOutOfCapacity is returned when a line outside the storage is accessed.
var ErrOutOfCapacity = errors.New(
	"accessing a line beyond the storage capacity")

// A Storage keeps the words of every line of the simulated memory.
//
// The storage is addressed by (tag, index) and returns a whole line at a
// time. Lines that are never written are not allocated and read as zeros.
type Storage struct {
	numTags    uint64
	numIndices uint64
	lineSize   int
	data       map[uint64][]uint64
}

// NewStorage creates a storage holding numTags x numIndices lines of
// lineSize words each.
func NewStorage(numTags, numIndices uint64, lineSize int) *Storage {
	if lineSize <= 0 {
		panic("line size must be positive")
	}

	return &Storage{
		numTags:    numTags,
		numIndices: numIndices,
		lineSize:   lineSize,
		data:       make(map[uint64][]uint64),
	}
}

// NewStorageForLayout creates a storage that covers every tag and index an
// address layout can produce.
func NewStorageForLayout(l addressing.Layout) *Storage {
	return NewStorage(l.NumTags(), l.NumIndices(), int(l.LineSize()))
}

// LineSize returns the number of words in a line.
func (s *Storage) LineSize() int {
	return s.lineSize
}

// NumTouchedLines returns how many lines have been written at least once.
func (s *Storage) NumTouchedLines() int {
	return len(s.data)
}

func (s *Storage) lineID(tag, index uint64) (uint64, error) {
	if tag >= s.numTags || index >= s.numIndices {
		return 0, fmt.Errorf("%w: tag 0x%x, index 0x%x",
			ErrOutOfCapacity, tag, index)
	}

	return tag*s.numIndices + index, nil
}

// ReadLine copies the line at (tag, index) into dst. dst must hold exactly
// one line.
func (s *Storage) ReadLine(tag, index uint64, dst []uint64) error {
	if len(dst) != s.lineSize {
		return fmt.Errorf("line buffer holds %d words, want %d",
			len(dst), s.lineSize)
	}

	id, err := s.lineID(tag, index)
	if err != nil {
		return err
	}

	unit, ok := s.data[id]
	if !ok {
		clear(dst)
		return nil
	}

	copy(dst, unit)

	return nil
}

// WriteLine stores src as the line at (tag, index).
func (s *Storage) WriteLine(tag, index uint64, src []uint64) error {
	if len(src) != s.lineSize {
		return fmt.Errorf("line buffer holds %d words, want %d",
			len(src), s.lineSize)
	}

	id, err := s.lineID(tag, index)
	if err != nil {
		return err
	}

	unit, ok := s.data[id]
	if !ok {
		unit = make([]uint64, s.lineSize)
		s.data[id] = unit
	}

	copy(unit, src)

	return nil
}
