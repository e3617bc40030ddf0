package cmd

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Flag names.
const (
	flagOutput      = "output"
	flagOutputDir   = "output-dir"
	flagRecord      = "record"
	flagMonitor     = "monitor"
	flagMonitorPort = "monitor-port"
	flagOpenBrowser = "open-browser"
	flagVerbose     = "verbose"
	flagStats       = "stats"
	flagFlush       = "flush"
)

// envFlags maps environment variables to the flags they provide defaults
// for. A flag given on the command line wins over the environment.
var envFlags = map[string]string{
	"CACHESIM_OUTPUT_DIR":   flagOutputDir,
	"CACHESIM_RECORD":       flagRecord,
	"CACHESIM_MONITOR":      flagMonitor,
	"CACHESIM_MONITOR_PORT": flagMonitorPort,
	"CACHESIM_VERBOSE":      flagVerbose,
}

type config struct {
	output      string
	outputDir   string
	record      string
	monitor     bool
	monitorPort int
	openBrowser bool
	verbose     bool
	stats       bool
	flush       bool
}

func addFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringP(flagOutput, "o", "",
		"Result file. Defaults to the variant's file in the output directory.")
	f.String(flagOutputDir, ".", "Directory of the result file.")
	f.String(flagRecord, "",
		"Record every access and eviction into <record>.sqlite3.")
	f.Bool(flagMonitor, false, "Serve the monitoring page while replaying.")
	f.Int(flagMonitorPort, 0,
		"Port of the monitoring server. Implies --monitor.")
	f.Bool(flagOpenBrowser, false,
		"Open the monitoring page in a browser. Implies --monitor.")
	f.BoolP(flagVerbose, "v", false, "Print every cache event to stderr.")
	f.Bool(flagStats, false, "Print cache statistics at the end.")
	f.Bool(flagFlush, false,
		"Write dirty lines back to memory at the end of the trace.")
}

// loadEnvFile loads .env from the working directory if there is one.
// Variables already set in the environment are kept.
func loadEnvFile() {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("cannot load .env: %v", err)
	}
}

func applyEnv(cmd *cobra.Command) error {
	for env, name := range envFlags {
		value, ok := os.LookupEnv(env)
		if !ok || cmd.Flags().Changed(name) {
			continue
		}

		err := cmd.Flags().Set(name, value)
		if err != nil {
			return err
		}
	}

	return nil
}

func readConfig(cmd *cobra.Command) (config, error) {
	var c config
	var err error

	f := cmd.Flags()
	errs := make([]error, 0)

	c.output, err = f.GetString(flagOutput)
	errs = append(errs, err)
	c.outputDir, err = f.GetString(flagOutputDir)
	errs = append(errs, err)
	c.record, err = f.GetString(flagRecord)
	errs = append(errs, err)
	c.monitor, err = f.GetBool(flagMonitor)
	errs = append(errs, err)
	c.monitorPort, err = f.GetInt(flagMonitorPort)
	errs = append(errs, err)
	c.openBrowser, err = f.GetBool(flagOpenBrowser)
	errs = append(errs, err)
	c.verbose, err = f.GetBool(flagVerbose)
	errs = append(errs, err)
	c.stats, err = f.GetBool(flagStats)
	errs = append(errs, err)
	c.flush, err = f.GetBool(flagFlush)
	errs = append(errs, err)

	if c.monitorPort != 0 || c.openBrowser {
		c.monitor = true
	}

	return c, errors.Join(errs...)
}

func (c config) outputPath(defaultName string) string {
	if c.output != "" {
		return c.output
	}

	return filepath.Join(c.outputDir, defaultName)
}
