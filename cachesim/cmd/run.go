package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/sarchlab/cachesim/datarecording"
	"github.com/sarchlab/cachesim/mem/cache"
	"github.com/sarchlab/cachesim/mem/trace"
	"github.com/sarchlab/cachesim/sim/id"
	"github.com/sarchlab/cachesim/simulation"
	"github.com/sarchlab/cachesim/tracefile"
	"github.com/spf13/cobra"
)

func newDMCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dm TRACE",
		Short: "Replay a trace through the direct-mapped cache.",
		Long: `Replay a trace through a direct-mapped cache with 32 lines of ` +
			`8 words. Results go to dm-out.txt unless --output is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cache.MakeBuilder().BuildDirectMapped("DM")
			return runTrace(cmd, args[0], c, "dm-out.txt")
		},
	}
}

func newSACommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sa TRACE",
		Short: "Replay a trace through the set-associative cache.",
		Long: `Replay a trace through an 8-way set-associative LRU cache with ` +
			`16 sets of 4-word lines. Results go to sa-out.txt unless ` +
			`--output is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cache.MakeBuilder().BuildSetAssociative("SA")
			return runTrace(cmd, args[0], c, "sa-out.txt")
		},
	}
}

func runTrace(
	cmd *cobra.Command,
	tracePath string,
	c cache.Cache,
	defaultOutput string,
) error {
	cfg, err := readConfig(cmd)
	if err != nil {
		return err
	}

	in, err := os.Open(tracePath)
	if err != nil {
		return err
	}
	defer in.Close()

	b, err := buildSimulation(cfg, c)
	if err != nil {
		return err
	}

	out, err := os.Create(cfg.outputPath(defaultOutput))
	if err != nil {
		return err
	}
	defer out.Close()

	s := b.Build()
	defer s.Terminate()

	w := tracefile.NewWriter(out)
	runErr := s.Run(tracefile.NewReader(in), w)
	flushErr := w.Flush()

	if cfg.flush {
		c.Flush()
	}

	if cfg.stats {
		logStats(c)
	}

	return errors.Join(runErr, flushErr)
}

func buildSimulation(cfg config, c cache.Cache) (simulation.Builder, error) {
	b := simulation.MakeBuilder().WithCache(c)

	if cfg.verbose {
		b = b.WithHook(trace.NewTracer(log.New(os.Stderr, "", 0)))
	}

	if cfg.record != "" {
		dbFile := datarecording.FileName(cfg.record)

		_, err := os.Stat(dbFile)
		if err == nil {
			return b, fmt.Errorf("record file %s already exists", dbFile)
		}

		id.UseXIDGenerator()
		b = b.WithRecordFile(cfg.record)
	}

	if cfg.monitor {
		b = b.WithMonitor().WithMonitorPort(cfg.monitorPort)

		if cfg.openBrowser {
			b = b.WithBrowser()
		}
	}

	return b, nil
}

func logStats(c cache.Cache) {
	s := c.Stats()
	log.Printf("%s: reads %d, writes %d, hits %d, misses %d, "+
		"evictions %d, write-backs %d, flushes %d, hit rate %.2f%%",
		c.Name(), s.Reads, s.Writes, s.Hits, s.Misses,
		s.Evictions, s.WriteBacks, s.Flushes, s.HitRate()*100)
}
