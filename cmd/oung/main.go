// Command oung runs programs written in the oung language.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/sarchlab/oung/config"
	"github.com/tebeka/atexit"
)

const (
	sourceExt = ".oung"

	usageText = "Proper command usage: oung [oung_source_name]\n"
	extText   = "Proper source file extension: *.oung\n"
	helpText  = "Oung Interpreter\n" +
		"Usage: oung [--config file] [--report] [--dump] [oung_source_name]\n" +
		extText
)

func main() {
	stdout := bufio.NewWriter(os.Stdout)
	atexit.Register(func() {
		stdout.Flush()
	})

	stdin := flushingReader{r: os.Stdin, w: stdout}

	atexit.Exit(run(os.Args[1:], stdin, stdout, os.Stderr))
}

// flushingReader flushes w before every read from r, so prompts printed by
// a program show up before INPUT blocks.
type flushingReader struct {
	r io.Reader
	w *bufio.Writer
}

func (f flushingReader) Read(p []byte) (int, error) {
	if err := f.w.Flush(); err != nil {
		return 0, err
	}

	return f.r.Read(p)
}

// run executes the command line and returns the exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("oung", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	configPath := fs.String("config", "",
		"YAML config file, $"+config.EnvConfigPath+" if unset")
	report := fs.Bool("report", false, "print a run report to stderr")
	dump := fs.Bool("dump", false, "print the variables after every statement")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) && len(args) == 1 {
			fmt.Fprint(stdout, helpText)
			return 0
		}

		fmt.Fprint(stdout, usageText)
		return 1
	}

	if fs.NArg() != 1 {
		fmt.Fprint(stdout, usageText)
		return 1
	}

	path := fs.Arg(0)
	if !strings.HasSuffix(path, sourceExt) {
		fmt.Fprint(stdout, extText)
		return 1
	}

	cfg, err := config.Resolve(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	cfg.Report = cfg.Report || *report
	cfg.DumpState = cfg.DumpState || *dump

	handler := slog.NewJSONHandler(stderr, &slog.HandlerOptions{
		Level: cfg.Level(),
	})
	slog.SetDefault(slog.New(handler))

	source, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(stdout, "The file %s does not exist!\n", path)
		return 1
	}
	defer source.Close()

	platform := config.MakePlatformBuilder().
		WithConfig(cfg).
		WithInput(stdin).
		WithOutput(stdout).
		WithStateDump(stderr).
		Build("Oung")

	result, err := platform.Driver.Run(source)
	if err != nil {
		slog.Error("Run failed", "File", path, "Error", err)
		return 1
	}

	if cfg.Report {
		result.WriteReport(stderr)
	}

	return 0
}
