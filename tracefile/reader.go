// Package tracefile reads memory access traces and writes the results of
// replaying them.
//
// A trace is a sequence of whitespace-separated hexadecimal triples:
//
//	address operation data
//
// where operation is 0x0 for a read and 0xFF for a write. Data is ignored
// for reads but must still be present.
package tracefile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Op is the operation code of an access.
type Op uint64

// The operation codes understood in a trace.
const (
	OpRead  Op = 0x0
	OpWrite Op = 0xFF
)

func (o Op) String() string {
	switch o {
	case OpRead:
		return "read"
	case OpWrite:
		return "write"
	default:
		return fmt.Sprintf("op(0x%X)", uint64(o))
	}
}

// An Access is one record of a trace.
type Access struct {
	Address uint64
	Op      Op
	Data    uint64
}

// ErrUnknownOp is wrapped by a ParseError when an operation code is neither
// a read nor a write.
var ErrUnknownOp = errors.New("unknown operation code")

// ErrTruncatedRecord is wrapped by a ParseError when the trace ends in the
// middle of a record.
var ErrTruncatedRecord = errors.New("trace ends in the middle of a record")

// A ParseError reports a record that cannot be read.
type ParseError struct {
	Record int
	Line   int
	Token  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("record %d (line %d): %v", e.Record, e.Line, e.Err)
	}

	return fmt.Sprintf("record %d (line %d): %q: %v",
		e.Record, e.Line, e.Token, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type token struct {
	text string
	line int
}

// A Reader yields the accesses of a trace one at a time. Records may span
// lines; only the order of the tokens matters.
type Reader struct {
	scanner *bufio.Scanner
	line    int
	pending []token
	records int
	err     error
}

// NewReader creates a reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{scanner: bufio.NewScanner(r)}
}

// Next returns the next access. It returns io.EOF after the last complete
// record and a *ParseError for a malformed one, including one the input
// cannot be read past. Once an error is returned,
// every further call returns the same error.
func (r *Reader) Next() (Access, error) {
	if r.err != nil {
		return Access{}, r.err
	}

	acc, err := r.next()
	if err != nil {
		r.err = err
		return Access{}, err
	}

	return acc, nil
}

// Records returns how many accesses have been read successfully.
func (r *Reader) Records() int {
	return r.records
}

func (r *Reader) next() (Access, error) {
	if err := r.fill(3); err != nil {
		return Access{}, err
	}

	if len(r.pending) == 0 {
		return Access{}, io.EOF
	}

	record := r.records + 1

	if len(r.pending) < 3 {
		return Access{}, &ParseError{
			Record: record,
			Line:   r.pending[len(r.pending)-1].line,
			Err:    ErrTruncatedRecord,
		}
	}

	var values [3]uint64
	for i := range values {
		v, err := parseHex(r.pending[i].text)
		if err != nil {
			return Access{}, &ParseError{
				Record: record,
				Line:   r.pending[i].line,
				Token:  r.pending[i].text,
				Err:    err,
			}
		}

		values[i] = v
	}

	op := Op(values[1])
	if op != OpRead && op != OpWrite {
		return Access{}, &ParseError{
			Record: record,
			Line:   r.pending[1].line,
			Token:  r.pending[1].text,
			Err:    ErrUnknownOp,
		}
	}

	r.pending = r.pending[3:]
	r.records++

	return Access{Address: values[0], Op: op, Data: values[2]}, nil
}

// fill reads lines until at least n tokens are pending or the input ends.
func (r *Reader) fill(n int) error {
	for len(r.pending) < n {
		if !r.scanner.Scan() {
			err := r.scanner.Err()
			if err != nil {
				return &ParseError{
					Record: r.records + 1,
					Line:   r.line + 1,
					Err:    err,
				}
			}

			return nil
		}

		r.line++
		for _, f := range strings.Fields(r.scanner.Text()) {
			r.pending = append(r.pending, token{text: f, line: r.line})
		}
	}

	return nil
}

func parseHex(s string) (uint64, error) {
	digits := s
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		digits = digits[2:]
	}

	return strconv.ParseUint(digits, 16, 64)
}
