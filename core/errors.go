package core

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/sarchlab/oung/program"
)

// Kinds of statement failures. A StatementError wraps exactly one of them.
var (
	ErrDecode              = errors.New("malformed operand")
	ErrDuplicateIdentifier = errors.New("duplicate identifier")
	ErrUnknownIdentifier   = errors.New("unknown identifier")
	ErrDivisionByZero      = program.ErrDivisionByZero
	ErrInvalidCommand      = errors.New("invalid command")
	ErrStatementOverflow   = program.ErrStatementOverflow
	ErrInputExhausted      = errors.New("input exhausted")
)

// StatementError describes why a statement was rejected.
type StatementError struct {
	Line  int
	Op    program.Opcode
	Ident []byte
	Err   error
}

func (e *StatementError) Error() string {
	msg := fmt.Sprintf("line %d: %s", e.Line, e.Op)
	if e.Ident != nil {
		msg += " " + strconv.Quote(string(e.Ident))
	}

	return msg + ": " + e.Err.Error()
}

func (e *StatementError) Unwrap() error {
	return e.Err
}

func decodeErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrDecode}, args...)...)
}
