package core

import (
	"errors"
	"io"
	"log/slog"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/oung/program"
)

// StatementSource hands out END-terminated statements. It returns io.EOF
// when the program is exhausted.
type StatementSource interface {
	NextStatement() (program.Statement, error)
}

// Diagnostic records a rejected statement.
type Diagnostic struct {
	Line int
	Time sim.VTimeInSec
	Err  error
}

// Core executes one statement per cycle.
type Core struct {
	*sim.TickingComponent

	state coreState
	emu   instEmulator

	source    StatementSource
	sourceErr error
	done      bool

	executed    int
	diagnostics []Diagnostic
	dumpState   bool
	dumpTo      io.Writer
}

// Store returns the variable store of the core.
func (c *Core) Store() *VariableStore {
	return c.state.Store
}

// Executed returns the number of statements dispatched so far, rejected
// ones included.
func (c *Core) Executed() int {
	return c.executed
}

// Diagnostics returns the rejected statements in program order.
func (c *Core) Diagnostics() []Diagnostic {
	return c.diagnostics
}

// Done reports whether the mapped program has been exhausted.
func (c *Core) Done() bool {
	return c.done
}

// Err returns the error that stopped reading the program, if any.
func (c *Core) Err() error {
	return c.sourceErr
}

// MapProgram sets the program that the core needs to run and schedules the
// first tick.
func (c *Core) MapProgram(src StatementSource) {
	c.source = src
	c.sourceErr = nil
	c.done = false

	c.TickNow()
}

// Tick runs the next statement.
func (c *Core) Tick() (madeProgress bool) {
	if c.source == nil || c.done {
		return false
	}

	stmt, err := c.source.NextStatement()
	if err != nil {
		c.done = true
		if !errors.Is(err, io.EOF) {
			c.sourceErr = err
			slog.Error("Reading program failed", "Core", c.Name(), "Error", err)
		}

		return false
	}

	c.runStatement(stmt)

	return true
}

// RunStatement executes a statement immediately, outside of the engine.
func (c *Core) RunStatement(stmt program.Statement) error {
	return c.runStatement(stmt)
}

func (c *Core) runStatement(stmt program.Statement) error {
	c.executed++

	var now sim.VTimeInSec
	if c.Engine != nil {
		now = c.Engine.CurrentTime()
	}

	err := c.emu.RunStatement(stmt, &c.state)
	if err != nil {
		c.diagnostics = append(c.diagnostics,
			Diagnostic{Line: stmt.Line, Time: now, Err: err})
		slog.Warn("Statement rejected",
			"Time", float64(now*1e9),
			"Line", stmt.Line,
			"Error", err,
		)
	}

	if !stmt.Empty() {
		Trace("Statement",
			"Time", float64(now*1e9),
			"Behavior", stmt.Head().String(),
			"Line", stmt.Line,
			"OK", err == nil,
			"Vars", c.state.Store.Len(),
		)
	}

	LogState(&c.state)
	if c.dumpState {
		PrintState(c.dumpTo, &c.state)
	}

	return err
}
