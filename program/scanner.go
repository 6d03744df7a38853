package program

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// DefaultCapacity is the number of opcodes a statement may hold before its
// END token.
const DefaultCapacity = 256

// ErrStatementOverflow is reported for a statement that holds more opcodes
// than the scanner capacity.
var ErrStatementOverflow = errors.New("statement overflow")

// Statement is the opcode sequence between two END tokens, END excluded.
type Statement struct {
	Ops []Opcode

	// Line is the 1-based source line where the statement starts.
	Line int

	// Err is set when the statement could not be assembled. Such a statement
	// must not be executed.
	Err error
}

// Empty reports whether the statement holds no opcodes.
func (s Statement) Empty() bool {
	return len(s.Ops) == 0
}

// Head returns the leading opcode of the statement.
func (s Statement) Head() Opcode {
	return s.Ops[0]
}

func (s Statement) String() string {
	names := make([]string, len(s.Ops))
	for i, op := range s.Ops {
		names[i] = op.String()
	}

	return fmt.Sprintf("line %d: [%s]", s.Line, strings.Join(names, " "))
}

// A Scanner reads program text and hands out one statement at a time.
// Tokens are read lazily, so the statement returned by NextStatement can be
// executed before the rest of the source is touched.
type Scanner struct {
	lines    *bufio.Reader
	capacity int

	lineNo int
	tokens []string
	eof    bool

	buf       []Opcode
	pending   int
	startLine int
	err       error
}

// NewScanner creates a scanner that reads src with the default statement
// capacity.
func NewScanner(src io.Reader) *Scanner {
	return NewScannerWithCapacity(src, DefaultCapacity)
}

// NewScannerWithCapacity creates a scanner whose statements hold at most
// capacity opcodes.
func NewScannerWithCapacity(src io.Reader, capacity int) *Scanner {
	if capacity <= 0 {
		panic("statement capacity must be positive")
	}

	return &Scanner{
		lines:    bufio.NewReader(src),
		capacity: capacity,
		buf:      make([]Opcode, 0, capacity),
	}
}

// Capacity returns the statement capacity.
func (s *Scanner) Capacity() int {
	return s.capacity
}

// NextStatement returns the next END-terminated statement. It returns
// io.EOF when the source is exhausted. Any other error comes from reading
// the source.
func (s *Scanner) NextStatement() (Statement, error) {
	for {
		tok, err := s.nextToken()
		if err != nil {
			return Statement{}, err
		}

		if s.startLine == 0 {
			s.startLine = s.lineNo
		}

		op, decodeErr := Decode(tok)
		if decodeErr != nil {
			s.pending++
			if s.err == nil {
				s.err = decodeErr
			}

			continue
		}

		if op == End {
			return s.flush(), nil
		}

		s.pending++

		if s.err != nil {
			continue
		}

		if len(s.buf) == s.capacity {
			s.err = fmt.Errorf("%w: more than %d opcodes before END",
				ErrStatementOverflow, s.capacity)

			continue
		}

		s.buf = append(s.buf, op)
	}
}

// Pending returns the number of tokens read after the last END. Those
// tokens never form a statement.
func (s *Scanner) Pending() int {
	return s.pending
}

func (s *Scanner) flush() Statement {
	stmt := Statement{
		Ops:  append([]Opcode(nil), s.buf...),
		Line: s.startLine,
		Err:  s.err,
	}

	if stmt.Err != nil {
		stmt.Ops = nil
	}

	s.buf = s.buf[:0]
	s.pending = 0
	s.err = nil
	s.startLine = 0

	return stmt
}

func (s *Scanner) nextToken() (string, error) {
	for len(s.tokens) == 0 {
		if s.eof {
			return "", io.EOF
		}

		line, err := s.lines.ReadString('\n')
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return "", err
			}

			s.eof = true
			if line == "" {
				return "", io.EOF
			}
		}

		s.lineNo++
		line = strings.TrimRight(line, "\r\n")
		s.tokens = splitTokens(line)
	}

	tok := s.tokens[0]
	s.tokens = s.tokens[1:]

	return tok, nil
}

// splitTokens splits a line on single spaces. Runs of spaces do not produce
// empty tokens.
func splitTokens(line string) []string {
	fields := strings.Split(line, " ")

	tokens := fields[:0]
	for _, f := range fields {
		if f != "" {
			tokens = append(tokens, f)
		}
	}

	return tokens
}
