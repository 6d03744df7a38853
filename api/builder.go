package api

import (
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/oung/program"
)

// DriverBuilder creates a new instance of Driver.
type DriverBuilder struct {
	engine   sim.Engine
	capacity int
}

// WithEngine sets the engine.
func (b DriverBuilder) WithEngine(engine sim.Engine) DriverBuilder {
	b.engine = engine
	return b
}

// WithCapacity sets how many opcodes a statement may hold before END.
func (b DriverBuilder) WithCapacity(capacity int) DriverBuilder {
	b.capacity = capacity
	return b
}

// Build create a driver.
func (b DriverBuilder) Build(name string) Driver {
	if b.engine == nil {
		panic("driver " + name + " has no engine")
	}

	d := &driverImpl{
		name:     name,
		engine:   b.engine,
		capacity: b.capacity,
	}

	if d.capacity <= 0 {
		d.capacity = program.DefaultCapacity
	}

	return d
}
