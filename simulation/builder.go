package simulation

import (
	"github.com/rs/xid"
	"github.com/sarchlab/cachesim/datarecording"
	"github.com/sarchlab/cachesim/mem/cache"
	"github.com/sarchlab/cachesim/mem/trace"
	"github.com/sarchlab/cachesim/monitoring"
	"github.com/sarchlab/cachesim/sim"
)

// Builder can be used to build a simulation.
type Builder struct {
	cache       cache.Cache
	hooks       []sim.Hook
	recordOn    bool
	recordFile  string
	monitorOn   bool
	monitorPort int
	openBrowser bool
}

// MakeBuilder creates a new builder.
func MakeBuilder() Builder {
	return Builder{}
}

// WithCache sets the cache that the trace is replayed against.
func (b Builder) WithCache(c cache.Cache) Builder {
	b.cache = c
	return b
}

// WithHook attaches a hook to the cache when the simulation is built.
func (b Builder) WithHook(h sim.Hook) Builder {
	b.hooks = append(append([]sim.Hook(nil), b.hooks...), h)
	return b
}

// WithRecordFile records every access and eviction into an SQLite database.
// The database is created at path + ".sqlite3". An empty path picks a name
// from the simulation ID.
func (b Builder) WithRecordFile(path string) Builder {
	b.recordOn = true
	b.recordFile = path
	return b
}

// WithMonitor turns on the monitoring server.
func (b Builder) WithMonitor() Builder {
	b.monitorOn = true
	return b
}

// WithMonitorPort sets the port number for the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

// WithBrowser opens the monitoring page once the server is up.
func (b Builder) WithBrowser() Builder {
	b.openBrowser = true
	return b
}

func (b Builder) parametersMustBeValid() {
	if b.cache == nil {
		panic("a cache is required to build a simulation")
	}

	if !b.monitorOn && b.monitorPort != 0 {
		panic("monitor port cannot be set when monitoring is disabled")
	}

	if !b.monitorOn && b.openBrowser {
		panic("browser cannot be opened when monitoring is disabled")
	}
}

// Build builds the simulation.
func (b Builder) Build() *Simulation {
	b.parametersMustBeValid()

	s := &Simulation{
		id:    xid.New().String(),
		cache: b.cache,
	}

	for _, h := range b.hooks {
		s.cache.AcceptHook(h)
	}

	if b.recordOn {
		outputPath := b.recordFile
		if outputPath == "" {
			outputPath = "cachesim_" + s.id
		}

		s.dataRecorder = datarecording.New(outputPath)
		s.cache.AcceptHook(trace.NewDBTracer(s.dataRecorder))
	}

	if b.monitorOn {
		s.monitor = monitoring.NewMonitor()
		if b.monitorPort > 0 {
			s.monitor.WithPortNumber(b.monitorPort)
		}

		if b.openBrowser {
			s.monitor.WithBrowser()
		}

		s.monitor.RegisterCache(s.cache)
		s.monitor.StartServer()
	}

	return s
}
