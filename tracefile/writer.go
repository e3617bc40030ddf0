package tracefile

import (
	"bufio"
	"fmt"
	"io"
)

// A Writer renders read results as text, one per line:
//
//	VV H D
//
// VV is the value in uppercase hexadecimal with at least two digits, H is 1
// for a hit and D is 1 for a dirty line.
type Writer struct {
	w       *bufio.Writer
	results int
}

// NewWriter creates a writer that buffers its output to w. Call Flush when
// done.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteResult writes one read result.
func (w *Writer) WriteResult(value uint64, hit, dirty bool) error {
	_, err := fmt.Fprintf(w.w, "%02X %d %d\n", value, flag(hit), flag(dirty))
	if err != nil {
		return err
	}

	w.results++

	return nil
}

// Results returns how many results have been written.
func (w *Writer) Results() int {
	return w.results
}

// Flush writes any buffered output to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}

func flag(b bool) int {
	if b {
		return 1
	}

	return 0
}
