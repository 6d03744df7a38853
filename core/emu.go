package core

import (
	"errors"
	"fmt"
	"io"

	"github.com/sarchlab/oung/program"
)

type coreState struct {
	Store  *VariableStore
	Input  CharReader
	Output io.Writer
	ISA    *program.ISA
}

type instEmulator struct {
}

// RunStatement executes one statement against the state. The statement is
// classified by its leading opcode. A rejected statement returns a
// *StatementError and leaves no side effect behind.
func (i instEmulator) RunStatement(stmt program.Statement, state *coreState) error {
	if stmt.Err != nil {
		err := stmt.Err

		var de *program.DecodeError
		if errors.As(err, &de) {
			err = fmt.Errorf("%w: %w", ErrDecode, err)
		}

		return &StatementError{Line: stmt.Line, Op: program.End, Err: err}
	}

	if stmt.Empty() {
		return nil
	}

	head := stmt.Head()
	operands := stmt.Ops[1:]

	var (
		id  []byte
		err error
	)

	switch {
	case head == program.Input:
		id, err = i.runInput(operands, state)
	case head == program.Byte:
		id, err = i.runByte(operands, state)
	case head.IsEval():
		id, err = i.runEval(head, operands, state)
	case head == program.Print, head == program.PrintNum:
		id, err = i.runPrint(head, operands, state)
	default:
		err = ErrInvalidCommand
	}

	if err != nil {
		return &StatementError{Line: stmt.Line, Op: head, Ident: id, Err: err}
	}

	return nil
}

// runInput handles INPUT, VAR <id> VAR.
func (i instEmulator) runInput(ops []program.Opcode, state *coreState) ([]byte, error) {
	id, err := DecodeIdentifier(ops, len(ops))
	if err != nil {
		return nil, err
	}

	if id.Next != len(ops) {
		return id.Name, decodeErrorf("unexpected opcodes after identifier")
	}

	if _, found := state.Store.Lookup(id.Name); found {
		return id.Name, ErrDuplicateIdentifier
	}

	c, err := state.Input.ReadChar()
	if errors.Is(err, io.EOF) {
		return id.Name, ErrInputExhausted
	} else if err != nil {
		return id.Name, fmt.Errorf("reading input: %w", err)
	}

	return id.Name, state.Store.Insert(id.Name, int8(c))
}

// runByte handles BYTE, VAR <id> VAR <literal>. A SEP between the
// identifier and the literal is tolerated.
func (i instEmulator) runByte(ops []program.Opcode, state *coreState) ([]byte, error) {
	id, err := DecodeIdentifier(ops, len(ops))
	if err != nil {
		return nil, err
	}

	start := id.Next
	if start < len(ops) && ops[start] == program.Sep {
		start++
	}

	value, err := DecodeLiteral(ops, start, len(ops))
	if err != nil {
		return id.Name, err
	}

	return id.Name, state.Store.Insert(id.Name, value)
}

// runEval handles the arithmetic and bitwise family,
// VAR <id> VAR SEP (VAR <id> VAR | <literal>).
func (i instEmulator) runEval(
	op program.Opcode,
	ops []program.Opcode,
	state *coreState,
) ([]byte, error) {
	left, err := DecodeIdentifier(ops, len(ops))
	if err != nil {
		return nil, err
	}

	if !left.Closed || left.Next >= len(ops) || ops[left.Next] != program.Sep {
		return left.Name, decodeErrorf("expected SEP after left operand")
	}

	behavior, ok := state.ISA.Behavior(op)
	if !ok {
		return left.Name, ErrInvalidCommand
	}

	rstart := left.Next + 1
	if rstart < len(ops) && ops[rstart] == program.Var {
		return i.evalVariable(left.Name, ops[rstart:], behavior, state)
	}

	value, err := DecodeLiteral(ops, rstart, len(ops))
	if err != nil {
		return left.Name, err
	}

	return left.Name, state.Store.Update(left.Name, func(l int8) (int8, error) {
		return behavior(l, value)
	})
}

// evalVariable applies the behavior with a variable right operand and
// consumes that variable. It returns the identifier the failure is about.
func (i instEmulator) evalVariable(
	left []byte,
	ops []program.Opcode,
	behavior program.Behavior,
	state *coreState,
) ([]byte, error) {
	right, err := DecodeIdentifier(ops, len(ops))
	if err != nil {
		return left, err
	}

	if !right.Closed || right.Next != len(ops) {
		return left, decodeErrorf("right operand must end the statement with VAR")
	}

	if _, found := state.Store.Lookup(left); !found {
		return left, ErrUnknownIdentifier
	}

	err = state.Store.Apply(left, right.Name, behavior)
	if errors.Is(err, ErrUnknownIdentifier) {
		return right.Name, err
	}

	return left, err
}

// runPrint handles PRINT and PRINT_NUM with either a variable, which is
// consumed, or a bare literal.
func (i instEmulator) runPrint(
	op program.Opcode,
	ops []program.Opcode,
	state *coreState,
) ([]byte, error) {
	if len(ops) == 0 {
		return nil, decodeErrorf("missing operand")
	}

	switch {
	case ops[0] == program.Var:
		id, err := DecodeIdentifier(ops, len(ops))
		if err != nil {
			return nil, err
		}

		if id.Next != len(ops) {
			return id.Name, decodeErrorf("unexpected opcodes after identifier")
		}

		value, err := state.Store.Take(id.Name)
		if err != nil {
			return id.Name, err
		}

		return id.Name, i.write(op, value, state)
	case ops[0].IsBit():
		value, err := DecodeLiteral(ops, 0, len(ops))
		if err != nil {
			return nil, err
		}

		return nil, i.write(op, value, state)
	default:
		return nil, decodeErrorf("%s cannot start an operand", ops[0])
	}
}

func (i instEmulator) write(op program.Opcode, value int8, state *coreState) error {
	var err error
	if op == program.PrintNum {
		_, err = fmt.Fprintf(state.Output, "%d\n", value)
	} else {
		_, err = state.Output.Write([]byte{byte(value)})
	}

	if err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return nil
}
