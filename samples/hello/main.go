package main

import (
	_ "embed"
	"os"
	"strings"

	"github.com/sarchlab/oung/config"
	"github.com/tebeka/atexit"
)

//go:embed hello.oung
var source string

func main() {
	platform := config.MakePlatformBuilder().
		WithOutput(os.Stdout).
		Build("Hello")

	report, err := platform.Driver.Run(strings.NewReader(source))
	if err != nil {
		panic(err)
	}

	report.WriteReport(os.Stderr)
	atexit.Exit(0)
}
