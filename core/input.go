package core

import (
	"bufio"
	"io"
)

// CharReader supplies the characters consumed by INPUT statements.
type CharReader interface {
	// ReadChar blocks until a character is available. It returns io.EOF
	// when no character is left.
	ReadChar() (byte, error)
}

type spaceSkippingReader struct {
	r *bufio.Reader
}

// NewCharReader returns a CharReader that skips leading white space before
// every character, like a scanf(" %c") loop.
func NewCharReader(r io.Reader) CharReader {
	return &spaceSkippingReader{r: bufio.NewReader(r)}
}

func (s *spaceSkippingReader) ReadChar() (byte, error) {
	for {
		c, err := s.r.ReadByte()
		if err != nil {
			return 0, err
		}

		if !isSpace(c) {
			return c, nil
		}
	}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}
