// Package program defines the oung instruction set and turns program text
// into statements.
//
// Every oung token is a 4-letter spelling of "oung". The case of each letter
// is one bit of the opcode: O is bit 3, U is bit 2, N is bit 1 and G is bit 0,
// an upper-case letter being a 1. "oung" is therefore ZERO and "OUNG" is ONE.
package program

import "fmt"

// Opcode is one of the 16 symbols of the oung instruction set.
type Opcode uint8

const (
	Zero     Opcode = 0x0 // oung, the 0 bit
	Input    Opcode = 0x1 // ounG, declare from input
	PrintNum Opcode = 0x2 // ouNg, print decimal value and newline
	Byte     Opcode = 0x3 // ouNG, declare from literal
	Add      Opcode = 0x4 // oUng
	Sub      Opcode = 0x5 // oUnG
	Mul      Opcode = 0x6 // oUNg
	Div      Opcode = 0x7 // oUNG
	Var      Opcode = 0x8 // Oung, identifier delimiter
	Print    Opcode = 0x9 // OunG, print raw character
	Or       Opcode = 0xA // OuNg
	And      Opcode = 0xB // OuNG
	Sep      Opcode = 0xC // OUng, operand separator
	Sleep    Opcode = 0xD // OUnG, reserved
	End      Opcode = 0xE // OUNg, end of statement
	One      Opcode = 0xF // OUNG, the 1 bit
)

// NumOpcodes is the size of the instruction set.
const NumOpcodes = 16

const letters = "oung"

var opcodeNames = [NumOpcodes]string{
	"ZERO", "INPUT", "PRINT_NUM", "BYTE",
	"ADD", "SUB", "MUL", "DIV",
	"VAR", "PRINT", "OR", "AND",
	"SEP", "SLEEP", "END", "ONE",
}

// String returns the mnemonic of the opcode.
func (o Opcode) String() string {
	if int(o) < NumOpcodes {
		return opcodeNames[o]
	}

	return fmt.Sprintf("UNKNOWN(0x%02X)", uint8(o))
}

// IsBit reports whether the opcode is ONE or ZERO.
func (o Opcode) IsBit() bool {
	return o == Zero || o == One
}

// Bit returns 1 for ONE and 0 for any other opcode.
func (o Opcode) Bit() uint8 {
	if o == One {
		return 1
	}

	return 0
}

// IsEval reports whether the opcode starts an arithmetic or bitwise
// evaluation statement.
func (o Opcode) IsEval() bool {
	switch o {
	case Add, Sub, Mul, Div, Or, And:
		return true
	default:
		return false
	}
}

// AllOpcodes returns the whole instruction set in numeric order.
func AllOpcodes() []Opcode {
	ops := make([]Opcode, NumOpcodes)
	for i := range ops {
		ops[i] = Opcode(i)
	}

	return ops
}

// DecodeError reports a token that is not a case variant of "oung".
type DecodeError struct {
	Token string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid token %q: expected a case variant of \"oung\"", e.Token)
}

// Decode converts a 4-letter token into its opcode. Only the letter case
// carries information, but the letters themselves must spell "oung".
func Decode(token string) (Opcode, error) {
	if len(token) != len(letters) {
		return 0, &DecodeError{Token: token}
	}

	var op Opcode
	for i := 0; i < len(letters); i++ {
		op <<= 1

		switch token[i] {
		case letters[i]:
		case letters[i] - 'a' + 'A':
			op |= 1
		default:
			return 0, &DecodeError{Token: token}
		}
	}

	return op, nil
}

// Encode returns the token spelling of the opcode. It is the inverse of
// Decode.
func Encode(op Opcode) string {
	if int(op) >= NumOpcodes {
		panic(fmt.Sprintf("cannot encode opcode %d", op))
	}

	buf := []byte(letters)
	for i := range buf {
		if op&(1<<(len(buf)-1-i)) != 0 {
			buf[i] -= 'a' - 'A'
		}
	}

	return string(buf)
}
