package config_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/oung/config"
	"github.com/sarchlab/oung/core"
	"github.com/sarchlab/oung/program"
)

var _ = Describe("Config", func() {
	It("should default to the standard capacity", func() {
		cfg := config.Default()

		Expect(cfg.StatementCapacity).To(Equal(program.DefaultCapacity))
		Expect(cfg.Level()).To(Equal(slog.LevelWarn))
		Expect(cfg.Validate()).To(Succeed())
	})

	It("should decode a full file", func() {
		cfg, err := config.Decode(strings.NewReader(
			"statement_capacity: 16\nlog_level: trace\ndump_state: true\nreport: true\n"))

		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.StatementCapacity).To(Equal(16))
		Expect(cfg.Level()).To(Equal(core.LevelTrace))
		Expect(cfg.DumpState).To(BeTrue())
		Expect(cfg.Report).To(BeTrue())
	})

	It("should keep defaults for missing keys", func() {
		cfg, err := config.Decode(strings.NewReader("report: true\n"))

		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.StatementCapacity).To(Equal(program.DefaultCapacity))
		Expect(cfg.Report).To(BeTrue())
	})

	It("should accept an empty file", func() {
		cfg, err := config.Decode(strings.NewReader(""))

		Expect(err).NotTo(HaveOccurred())
		Expect(cfg).To(Equal(config.Default()))
	})

	DescribeTable("invalid files",
		func(text string) {
			_, err := config.Decode(strings.NewReader(text))
			Expect(err).To(HaveOccurred())
		},
		Entry("unknown key", "capacity: 3\n"),
		Entry("zero capacity", "statement_capacity: 0\n"),
		Entry("unknown level", "log_level: loud\n"),
		Entry("wrong type", "dump_state: [1]\n"),
	)

	DescribeTable("log levels",
		func(name string, level slog.Level) {
			l, err := config.ParseLevel(name)
			Expect(err).NotTo(HaveOccurred())
			Expect(l).To(Equal(level))
		},
		Entry("trace", "trace", core.LevelTrace),
		Entry("debug", "DEBUG", slog.LevelDebug),
		Entry("info", "info", slog.LevelInfo),
		Entry("warn", "warn", slog.LevelWarn),
		Entry("error", "error", slog.LevelError),
	)

	Context("when resolving the file", func() {
		var dir string

		BeforeEach(func() {
			dir = GinkgoT().TempDir()
		})

		write := func(name, text string) string {
			path := filepath.Join(dir, name)
			Expect(os.WriteFile(path, []byte(text), 0o644)).To(Succeed())
			return path
		}

		It("should prefer the explicit path", func() {
			GinkgoT().Setenv(config.EnvConfigPath, write("env.yaml", "report: false\n"))
			path := write("flag.yaml", "report: true\n")

			cfg, err := config.Resolve(path)

			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Report).To(BeTrue())
		})

		It("should fall back to the environment", func() {
			GinkgoT().Setenv(config.EnvConfigPath, write("env.yaml", "dump_state: true\n"))

			cfg, err := config.Resolve("")

			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.DumpState).To(BeTrue())
		})

		It("should use defaults without any file", func() {
			GinkgoT().Setenv(config.EnvConfigPath, "")

			cfg, err := config.Resolve("")

			Expect(err).NotTo(HaveOccurred())
			Expect(cfg).To(Equal(config.Default()))
		})

		It("should fail on a missing file", func() {
			_, err := config.Resolve(filepath.Join(dir, "nope.yaml"))

			Expect(err).To(MatchError(ContainSubstring("nope.yaml")))
		})
	})
})

var _ = Describe("Platform", func() {
	It("should run a program end to end", func() {
		out := &bytes.Buffer{}
		dump := &bytes.Buffer{}
		cfg := config.Default()
		cfg.DumpState = true

		p := config.MakePlatformBuilder().
			WithConfig(cfg).
			WithInput(strings.NewReader("z")).
			WithOutput(out).
			WithStateDump(dump).
			Build("Oung")

		src := program.NewBuilder().
			Input("c").
			Print("c").
			String()

		report, err := p.Driver.Run(strings.NewReader(src))

		Expect(err).NotTo(HaveOccurred())
		Expect(out.String()).To(Equal("z"))
		Expect(report.OK()).To(BeTrue())
		Expect(p.Core.Name()).To(Equal("Oung.Core"))
		Expect(dump.String()).To(ContainSubstring("Variables (oldest first)"))
	})

	It("should apply the configured capacity", func() {
		out := &bytes.Buffer{}
		cfg := config.Default()
		cfg.StatementCapacity = 4

		p := config.MakePlatformBuilder().
			WithConfig(cfg).
			WithOutput(out).
			Build("Oung")

		report, err := p.Driver.Run(strings.NewReader(
			program.NewBuilder().PrintLiteral('x').String()))

		Expect(err).NotTo(HaveOccurred())
		Expect(out.Len()).To(BeZero())
		Expect(report.Diagnostics[0].Err).To(MatchError(core.ErrStatementOverflow))
	})
})
