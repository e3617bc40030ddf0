package cmd

import (
	"bytes"
	"database/sql"
	"errors"
	"log"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/cachesim/datarecording"
	memtrace "github.com/sarchlab/cachesim/mem/trace"
	"github.com/sarchlab/cachesim/tracefile"
)

var _ = Describe("cachesim", func() {
	var dir string

	writeTrace := func(content string) string {
		path := filepath.Join(dir, "trace.txt")
		Expect(os.WriteFile(path, []byte(content), 0o644)).To(Succeed())

		return path
	}

	readFile := func(name string) string {
		content, err := os.ReadFile(filepath.Join(dir, name))
		Expect(err).ToNot(HaveOccurred())

		return string(content)
	}

	run := func(args ...string) error {
		root := NewRootCommand()
		root.SetArgs(args)
		root.SetOut(GinkgoWriter)
		root.SetErr(GinkgoWriter)

		return root.Execute()
	}

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	It("should replay a trace through the direct-mapped cache", func() {
		trace := writeTrace(
			"0x0003 0xFF 0x11\n" +
				"0x0003 0x0 0x0\n" +
				"0x0103 0x0 0x0\n" +
				"0x0003 0x0 0x0\n")

		Expect(run("dm", trace, "--output-dir", dir, "--stats")).To(Succeed())

		Expect(readFile("dm-out.txt")).To(Equal("11 1 1\n00 0 0\n11 0 0\n"))
	})

	It("should replay a trace through the set-associative cache", func() {
		trace := writeTrace("0x0 0xFF 0x5\n0x0 0x0 0x0\n")

		Expect(run("sa", trace, "--output-dir", dir, "--flush")).To(Succeed())

		Expect(readFile("sa-out.txt")).To(Equal("05 1 1\n"))
	})

	Context("when flushing at the end of the trace", func() {
		var logs *bytes.Buffer

		BeforeEach(func() {
			logs = new(bytes.Buffer)
			log.SetOutput(logs)
			DeferCleanup(log.SetOutput, GinkgoWriter)
		})

		It("should count flushed lines in the statistics", func() {
			trace := writeTrace("0x0003 0xFF 0x11\n0x0028 0xFF 0x22\n")

			Expect(run("dm", trace, "--output-dir", dir, "--stats")).
				To(Succeed())
			Expect(logs.String()).To(ContainSubstring("flushes 0,"))

			logs.Reset()
			Expect(run("dm", trace, "--output-dir", dir, "--stats", "--flush")).
				To(Succeed())
			Expect(logs.String()).To(ContainSubstring("flushes 2,"))
		})

		It("should record flushed lines", func() {
			trace := writeTrace("0x0003 0xFF 0x8000000000000000\n0x0003 0x0 0x0\n")
			record := filepath.Join(dir, "rec")

			Expect(run("dm", trace, "--output-dir", dir,
				"--record", record, "--flush")).To(Succeed())
			Expect(readFile("dm-out.txt")).
				To(Equal("8000000000000000 1 1\n"))

			db, err := sql.Open("sqlite3", datarecording.FileName(record))
			Expect(err).ToNot(HaveOccurred())
			defer db.Close()

			var flushes int
			Expect(db.QueryRow("SELECT COUNT(*) FROM " + memtrace.FlushTable).
				Scan(&flushes)).To(Succeed())
			Expect(flushes).To(Equal(1))

			var value int64
			Expect(db.QueryRow("SELECT Value FROM " + memtrace.AccessTable +
				" WHERE Kind = 'read'").Scan(&value)).To(Succeed())
			Expect(uint64(value)).To(Equal(uint64(0x8000000000000000)))
		})
	})

	It("should write to the given output file", func() {
		trace := writeTrace("0x1 0x0 0x0\n")
		output := filepath.Join(dir, "custom.txt")

		Expect(run("dm", trace, "--output", output)).To(Succeed())

		Expect(readFile("custom.txt")).To(Equal("00 0 0\n"))
	})

	It("should take the output directory from the environment", func() {
		GinkgoT().Setenv("CACHESIM_OUTPUT_DIR", dir)
		trace := writeTrace("0x1 0x0 0x0\n")

		Expect(run("sa", trace)).To(Succeed())

		Expect(readFile("sa-out.txt")).To(Equal("00 1 0\n"))
	})

	It("should keep results before a malformed record", func() {
		trace := writeTrace("0x1 0x0 0x0\n0x2 0x7 0x0\n0x3 0x0 0x0\n")

		err := run("dm", trace, "--output-dir", dir)

		var parseErr *tracefile.ParseError
		Expect(errors.As(err, &parseErr)).To(BeTrue())
		Expect(parseErr.Record).To(Equal(2))
		Expect(parseErr.Line).To(Equal(2))
		Expect(err).To(MatchError(tracefile.ErrUnknownOp))
		Expect(readFile("dm-out.txt")).To(Equal("00 0 0\n"))
	})

	It("should fail for a missing trace", func() {
		err := run("dm", filepath.Join(dir, "missing.txt"), "--output-dir", dir)

		Expect(err).To(MatchError(os.ErrNotExist))
	})

	It("should require exactly one trace", func() {
		Expect(run("dm")).ToNot(Succeed())
	})

	It("should imply monitoring from the monitor port", func() {
		root := NewRootCommand()
		Expect(root.ParseFlags([]string{"--monitor-port", "8123"})).To(Succeed())

		cfg, err := readConfig(root)

		Expect(err).ToNot(HaveOccurred())
		Expect(cfg.monitor).To(BeTrue())
		Expect(cfg.monitorPort).To(Equal(8123))
	})
})
