package program

import (
	"errors"
	"fmt"
)

// ErrDivisionByZero is returned by the DIV behavior when the right operand
// is zero.
var ErrDivisionByZero = errors.New("division by zero")

// Behavior computes the new value of the left operand of an evaluation.
type Behavior func(l, r int8) (int8, error)

// ISA is a struct that represents an Instruction Set Architecture.
type ISA struct {
	// name of the ISA.
	isaName string
	// map from opcode to the behavior of the evaluation instruction.
	opToBehavior map[Opcode]Behavior
}

// NewISA creates an empty instruction set.
func NewISA(name string) *ISA {
	return &ISA{
		isaName:      name,
		opToBehavior: make(map[Opcode]Behavior),
	}
}

// Name returns the name of the ISA.
func (isa *ISA) Name() string {
	return isa.isaName
}

// Register binds a behavior to an evaluation opcode.
func (isa *ISA) Register(op Opcode, behavior Behavior) {
	if !op.IsEval() {
		panic(fmt.Sprintf("%s is not an evaluation opcode", op))
	}

	isa.opToBehavior[op] = behavior
}

// Behavior returns the behavior bound to op.
func (isa *ISA) Behavior(op Opcode) (Behavior, bool) {
	b, ok := isa.opToBehavior[op]
	return b, ok
}

var defaultISA = newDefaultISA()

// DefaultISA returns the oung arithmetic and bitwise instruction set.
func DefaultISA() *ISA {
	return defaultISA
}

func newDefaultISA() *ISA {
	isa := NewISA("oung")
	isa.Register(Add, instADD)
	isa.Register(Sub, instSUB)
	isa.Register(Mul, instMUL)
	isa.Register(Div, instDIV)
	isa.Register(Or, instOR)
	isa.Register(And, instAND)

	return isa
}

// Values are single bytes; Go's int8 arithmetic wraps modulo 256.

func instADD(l, r int8) (int8, error) {
	return l + r, nil
}

func instSUB(l, r int8) (int8, error) {
	return l - r, nil
}

func instMUL(l, r int8) (int8, error) {
	return l * r, nil
}

func instDIV(l, r int8) (int8, error) {
	if r == 0 {
		return l, ErrDivisionByZero
	}

	// -128 / -1 wraps back to -128.
	return l / r, nil
}

func instOR(l, r int8) (int8, error) {
	return l | r, nil
}

func instAND(l, r int8) (int8, error) {
	return l & r, nil
}
