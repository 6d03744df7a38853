// Package api defines the driver API for the oung interpreter.
package api

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/oung/core"
	"github.com/sarchlab/oung/program"
)

// Driver feeds oung programs to a core and collects the outcome.
type Driver interface {
	// RegisterCore sets the core that runs the programs.
	RegisterCore(c *core.Core)

	// Run executes every statement of src on the registered core. Rejected
	// statements do not stop the run. An error is returned only if src
	// cannot be read.
	Run(src io.Reader) (*Report, error)
}

type driverImpl struct {
	name     string
	engine   sim.Engine
	capacity int

	core *core.Core
	runs int
}

// RegisterCore sets the core that runs the programs.
func (d *driverImpl) RegisterCore(c *core.Core) {
	d.core = c
}

// Run maps the program to the core and runs the engine until the program
// is exhausted.
func (d *driverImpl) Run(src io.Reader) (*Report, error) {
	if d.core == nil {
		panic("no core registered to driver " + d.name)
	}

	scanner := program.NewScannerWithCapacity(src, d.capacity)

	executed := d.core.Executed()
	rejected := len(d.core.Diagnostics())

	d.runs++
	slog.Info("Run started", "Driver", d.name, "Run", d.runs)

	d.core.MapProgram(scanner)
	if err := d.engine.Run(); err != nil {
		return nil, fmt.Errorf("running engine: %w", err)
	}

	if n := scanner.Pending(); n > 0 {
		slog.Warn("Opcodes after the last END were dropped", "Count", n)
	}

	report := &Report{
		Statements:  d.core.Executed() - executed,
		Rejected:    len(d.core.Diagnostics()) - rejected,
		Dropped:     scanner.Pending(),
		Diagnostics: d.core.Diagnostics()[rejected:],
		Leaked:      d.core.Store().Forward(),
		Time:        d.engine.CurrentTime(),
	}

	slog.Info("Run finished",
		"Driver", d.name,
		"Statements", report.Statements,
		"Rejected", report.Rejected,
		"Leaked", len(report.Leaked),
	)

	if err := d.core.Err(); err != nil {
		return report, fmt.Errorf("reading program: %w", err)
	}

	return report, nil
}
