package core

import "github.com/sarchlab/oung/program"

const bitsPerByte = 8

// Identifier is a decoded variable name together with where it ended in the
// operand sequence.
type Identifier struct {
	Name []byte

	// Next is the index just past the identifier, after its closing VAR if
	// there is one.
	Next int

	// Closed reports whether the identifier ended on a VAR delimiter rather
	// than on the limit.
	Closed bool
}

// DecodeIdentifier decodes the identifier at the start of ops. ops[0] must
// be VAR. The name is read in groups of 8 bit opcodes until the next VAR or
// until limit.
func DecodeIdentifier(ops []program.Opcode, limit int) (Identifier, error) {
	if limit > len(ops) {
		limit = len(ops)
	}

	if limit <= 0 || ops[0] != program.Var {
		return Identifier{}, decodeErrorf("identifier must start with VAR")
	}

	name := []byte{}
	pos := 1
	for pos < limit {
		if ops[pos] == program.Var {
			return Identifier{Name: name, Next: pos + 1, Closed: true}, nil
		}

		if pos+bitsPerByte > limit {
			return Identifier{}, decodeErrorf(
				"byte %d of identifier has %d of 8 bits", len(name), limit-pos)
		}

		b, err := packBits(ops[pos : pos+bitsPerByte])
		if err != nil {
			return Identifier{}, err
		}

		name = append(name, b)
		pos += bitsPerByte
	}

	return Identifier{Name: name, Next: limit}, nil
}

// DecodeLiteral packs ops[start:end] into a byte, most significant bit
// first. Only the last 8 bits of a longer run are kept. An empty range is 0.
func DecodeLiteral(ops []program.Opcode, start, end int) (int8, error) {
	if start < 0 || end > len(ops) || start > end {
		return 0, decodeErrorf("literal range [%d, %d) is out of bounds", start, end)
	}

	b, err := packBits(ops[start:end])

	return int8(b), err
}

func packBits(ops []program.Opcode) (uint8, error) {
	var b uint8
	for _, op := range ops {
		if !op.IsBit() {
			return 0, decodeErrorf("%s where a bit was expected", op)
		}

		b = b<<1 | op.Bit()
	}

	return b, nil
}
