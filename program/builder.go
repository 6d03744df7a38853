package program

import (
	"fmt"
	"strings"
)

// Builder writes oung source text, one statement per line.
type Builder struct {
	lines []string
}

// NewBuilder creates an empty program builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Input declares id from one character of input.
func (b *Builder) Input(id string) *Builder {
	return b.emit(Input, Ident(id))
}

// Byte declares id with the literal value v.
func (b *Builder) Byte(id string, v int8) *Builder {
	return b.emit(Byte, Ident(id), Literal(v))
}

// Eval applies op to id with a literal right operand.
func (b *Builder) Eval(op Opcode, id string, v int8) *Builder {
	b.mustEval(op)
	return b.emit(op, Ident(id), []Opcode{Sep}, Literal(v))
}

// EvalVar applies op to id with the variable rid as right operand.
func (b *Builder) EvalVar(op Opcode, id, rid string) *Builder {
	b.mustEval(op)
	return b.emit(op, Ident(id), []Opcode{Sep}, Ident(rid))
}

// Print writes the value of id as a character.
func (b *Builder) Print(id string) *Builder {
	return b.emit(Print, Ident(id))
}

// PrintNum writes the value of id as a decimal number.
func (b *Builder) PrintNum(id string) *Builder {
	return b.emit(PrintNum, Ident(id))
}

// PrintLiteral writes v as a character.
func (b *Builder) PrintLiteral(v int8) *Builder {
	return b.emit(Print, Literal(v))
}

// PrintNumLiteral writes v as a decimal number.
func (b *Builder) PrintNumLiteral(v int8) *Builder {
	return b.emit(PrintNum, Literal(v))
}

// Raw appends a statement made of the given opcodes. END is added.
func (b *Builder) Raw(ops ...Opcode) *Builder {
	return b.line(ops)
}

// String returns the program text.
func (b *Builder) String() string {
	if len(b.lines) == 0 {
		return ""
	}

	return strings.Join(b.lines, "\n") + "\n"
}

func (b *Builder) mustEval(op Opcode) {
	if !op.IsEval() {
		panic(fmt.Sprintf("%s cannot start an evaluation", op))
	}
}

func (b *Builder) emit(head Opcode, parts ...[]Opcode) *Builder {
	ops := []Opcode{head}
	for _, part := range parts {
		ops = append(ops, part...)
	}

	return b.line(ops)
}

func (b *Builder) line(ops []Opcode) *Builder {
	tokens := make([]string, 0, len(ops)+1)
	for _, op := range ops {
		tokens = append(tokens, Encode(op))
	}

	tokens = append(tokens, Encode(End))
	b.lines = append(b.lines, strings.Join(tokens, " "))

	return b
}

// Ident encodes an identifier as VAR, one 8-bit group per byte, VAR.
func Ident(id string) []Opcode {
	ops := []Opcode{Var}
	for i := 0; i < len(id); i++ {
		ops = append(ops, bits(id[i])...)
	}

	return append(ops, Var)
}

// Literal encodes a value as 8 bits, most significant first.
func Literal(v int8) []Opcode {
	return bits(uint8(v))
}

func bits(v uint8) []Opcode {
	ops := make([]Opcode, 8)
	for i := range ops {
		if v&(0x80>>i) != 0 {
			ops[i] = One
		} else {
			ops[i] = Zero
		}
	}

	return ops
}
