// Package simulation replays a trace of memory accesses against a cache.
package simulation

import (
	"errors"
	"fmt"
	"io"

	"github.com/sarchlab/cachesim/datarecording"
	"github.com/sarchlab/cachesim/mem/cache"
	"github.com/sarchlab/cachesim/monitoring"
	"github.com/sarchlab/cachesim/tracefile"
)

// An AccessSource produces the accesses to replay. Next returns io.EOF when
// there are no more accesses.
type AccessSource interface {
	Next() (tracefile.Access, error)
}

// A ResultSink consumes the outcome of every read.
type ResultSink interface {
	WriteResult(value uint64, hit, dirty bool) error
}

// A Simulation replays accesses against a single cache.
type Simulation struct {
	id    string
	cache cache.Cache

	dataRecorder datarecording.DataRecorder
	monitor      *monitoring.Monitor
}

// ID returns the unique ID of the simulation.
func (s *Simulation) ID() string {
	return s.id
}

// Cache returns the cache under simulation.
func (s *Simulation) Cache() cache.Cache {
	return s.cache
}

// GetDataRecorder returns the data recorder used in the simulation. It is
// nil if recording is off.
func (s *Simulation) GetDataRecorder() datarecording.DataRecorder {
	return s.dataRecorder
}

// GetMonitor returns the monitor used in the simulation. It is nil if
// monitoring is off.
func (s *Simulation) GetMonitor() *monitoring.Monitor {
	return s.monitor
}

// Run applies every access from src to the cache in order. Each read
// produces one result in sink. Writes produce nothing. Run stops at the
// first error and returns it. Results emitted before the error stay in sink.
func (s *Simulation) Run(src AccessSource, sink ResultSink) error {
	var bar *monitoring.ProgressBar
	if s.monitor != nil {
		bar = s.monitor.CreateProgressBar(s.cache.Name(), 0)
		defer s.monitor.CompleteProgressBar(bar)
	}

	for n := 1; ; n++ {
		a, err := src.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return err
		}

		if bar != nil {
			bar.IncrementInProgress(1)
		}

		err = s.apply(n, a, sink)
		if err != nil {
			return err
		}

		if bar != nil {
			bar.MoveInProgressToFinished(1)
		}
	}
}

func (s *Simulation) apply(n int, a tracefile.Access, sink ResultSink) error {
	switch a.Op {
	case tracefile.OpRead:
		res := s.cache.Read(a.Address)

		err := sink.WriteResult(res.Value, res.Hit, res.Dirty)
		if err != nil {
			return fmt.Errorf("writing result of access %d: %w", n, err)
		}
	case tracefile.OpWrite:
		s.cache.Write(a.Address, a.Data)
	default:
		return fmt.Errorf("access %d: %w: %s",
			n, tracefile.ErrUnknownOp, a.Op)
	}

	return nil
}

// Terminate flushes and closes the data recorder, if any.
func (s *Simulation) Terminate() {
	if s.dataRecorder != nil {
		s.dataRecorder.Close()
	}
}
