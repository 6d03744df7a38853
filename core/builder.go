package core

import (
	"io"
	"os"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/oung/program"
)

// Builder can create new cores.
type Builder struct {
	engine    sim.Engine
	freq      sim.Freq
	input     CharReader
	output    io.Writer
	store     *VariableStore
	isa       *program.ISA
	dumpState bool
	dumpTo    io.Writer
}

// NewBuilder returns a builder that reads stdin and writes stdout.
func NewBuilder() Builder {
	return Builder{
		freq:   1 * sim.GHz,
		output: os.Stdout,
		dumpTo: os.Stderr,
		isa:    program.DefaultISA(),
	}
}

// WithEngine sets the engine.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the core. One statement runs per cycle.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithInput sets the stream that INPUT statements read from.
func (b Builder) WithInput(r io.Reader) Builder {
	b.input = NewCharReader(r)
	return b
}

// WithCharReader sets the character source of INPUT statements.
func (b Builder) WithCharReader(r CharReader) Builder {
	b.input = r
	return b
}

// WithOutput sets the stream that PRINT statements write to.
func (b Builder) WithOutput(w io.Writer) Builder {
	b.output = w
	return b
}

// WithStore makes the core use an existing variable store.
func (b Builder) WithStore(store *VariableStore) Builder {
	b.store = store
	return b
}

// WithISA replaces the evaluation behaviors.
func (b Builder) WithISA(isa *program.ISA) Builder {
	b.isa = isa
	return b
}

// WithStateDump prints the variable store to w after every statement.
func (b Builder) WithStateDump(w io.Writer) Builder {
	b.dumpState = true
	b.dumpTo = w
	return b
}

// Build creates a core.
func (b Builder) Build(name string) *Core {
	c := &Core{
		dumpState: b.dumpState,
		dumpTo:    b.dumpTo,
	}

	c.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, c)
	c.state = coreState{
		Store:  b.store,
		Input:  b.input,
		Output: b.output,
		ISA:    b.isa,
	}

	if c.state.Store == nil {
		c.state.Store = NewVariableStore()
	}

	if c.state.Input == nil {
		c.state.Input = NewCharReader(os.Stdin)
	}

	if c.state.Output == nil {
		c.state.Output = io.Discard
	}

	if c.state.ISA == nil {
		c.state.ISA = program.DefaultISA()
	}

	if c.dumpTo == nil {
		c.dumpTo = os.Stderr
	}

	return c
}
