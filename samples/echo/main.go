package main

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/sarchlab/oung/config"
	"github.com/tebeka/atexit"
)

// Reads two characters, prints the second one and then the code of the
// first one.
//
//go:embed echo.oung
var source string

func main() {
	input := "ab"
	if len(os.Args) > 1 {
		input = os.Args[1]
	}

	cfg := config.Default()
	cfg.DumpState = true

	platform := config.MakePlatformBuilder().
		WithConfig(cfg).
		WithInput(strings.NewReader(input)).
		WithOutput(os.Stdout).
		WithStateDump(os.Stderr).
		Build("Echo")

	report, err := platform.Driver.Run(strings.NewReader(source))
	if err != nil {
		panic(err)
	}

	fmt.Fprintf(os.Stderr, "%d statements, %d rejected\n",
		report.Statements, report.Rejected)
	atexit.Exit(0)
}
