package config

import (
	"io"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/oung/api"
	"github.com/sarchlab/oung/core"
)

// Platform is a ready-to-run interpreter: an engine, one core, and the
// driver that feeds it.
type Platform struct {
	Engine sim.Engine
	Core   *core.Core
	Driver api.Driver
}

// PlatformBuilder can build platforms.
type PlatformBuilder struct {
	cfg    Config
	input  io.Reader
	output io.Writer
	dumpTo io.Writer
}

// MakePlatformBuilder returns a builder with the default config.
func MakePlatformBuilder() PlatformBuilder {
	return PlatformBuilder{cfg: Default()}
}

// WithConfig sets the run configuration.
func (b PlatformBuilder) WithConfig(cfg Config) PlatformBuilder {
	b.cfg = cfg
	return b
}

// WithInput sets the stream that INPUT statements read from.
func (b PlatformBuilder) WithInput(r io.Reader) PlatformBuilder {
	b.input = r
	return b
}

// WithOutput sets the stream that PRINT statements write to.
func (b PlatformBuilder) WithOutput(w io.Writer) PlatformBuilder {
	b.output = w
	return b
}

// WithStateDump sets where the variable store is printed when the config
// enables dump_state. Stderr is used if unset.
func (b PlatformBuilder) WithStateDump(w io.Writer) PlatformBuilder {
	b.dumpTo = w
	return b
}

// Build creates a platform.
func (b PlatformBuilder) Build(name string) *Platform {
	engine := sim.NewSerialEngine()

	coreBuilder := core.NewBuilder().
		WithEngine(engine).
		WithFreq(1 * sim.GHz)

	if b.input != nil {
		coreBuilder = coreBuilder.WithInput(b.input)
	}

	if b.output != nil {
		coreBuilder = coreBuilder.WithOutput(b.output)
	}

	if b.cfg.DumpState {
		coreBuilder = coreBuilder.WithStateDump(b.dumpTo)
	}

	c := coreBuilder.Build(name + ".Core")

	driver := api.DriverBuilder{}.
		WithEngine(engine).
		WithCapacity(b.cfg.StatementCapacity).
		Build(name + ".Driver")
	driver.RegisterCore(c)

	return &Platform{
		Engine: engine,
		Core:   c,
		Driver: driver,
	}
}
