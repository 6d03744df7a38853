package program_test

import (
	"errors"
	"io"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/oung/program"
)

func collect(s *program.Scanner) []program.Statement {
	var stmts []program.Statement
	for {
		stmt, err := s.NextStatement()
		if errors.Is(err, io.EOF) {
			return stmts
		}

		Expect(err).NotTo(HaveOccurred())
		stmts = append(stmts, stmt)
	}
}

var _ = Describe("Scanner", func() {
	It("should split statements on END", func() {
		src := "ouNG Oung Oung OUNG OUNg\nOunG Oung Oung OUNg\n"
		stmts := collect(program.NewScanner(strings.NewReader(src)))

		Expect(stmts).To(HaveLen(2))
		Expect(stmts[0].Ops).To(Equal([]program.Opcode{
			program.Byte, program.Var, program.Var, program.One,
		}))
		Expect(stmts[0].Line).To(Equal(1))
		Expect(stmts[1].Head()).To(Equal(program.Print))
		Expect(stmts[1].Line).To(Equal(2))
	})

	It("should let a statement span lines", func() {
		src := "OunG\nOung\n\nOung OUNg\n"
		stmts := collect(program.NewScanner(strings.NewReader(src)))

		Expect(stmts).To(HaveLen(1))
		Expect(stmts[0].Ops).To(HaveLen(3))
		Expect(stmts[0].Line).To(Equal(1))
	})

	It("should ignore repeated spaces and carriage returns", func() {
		src := "OunG  Oung   Oung OUNg\r\n"
		stmts := collect(program.NewScanner(strings.NewReader(src)))

		Expect(stmts).To(HaveLen(1))
		Expect(stmts[0].Ops).To(HaveLen(3))
	})

	It("should produce empty statements for consecutive ENDs", func() {
		stmts := collect(program.NewScanner(strings.NewReader("OUNg OUNg")))

		Expect(stmts).To(HaveLen(2))
		Expect(stmts[0].Empty()).To(BeTrue())
	})

	It("should report overflowing statements and recover", func() {
		b := program.NewBuilder().
			Raw(program.Print, program.One, program.One, program.One,
				program.One, program.Zero).
			Raw(program.Print, program.One)
		s := program.NewScannerWithCapacity(strings.NewReader(b.String()), 4)

		stmts := collect(s)
		Expect(stmts).To(HaveLen(2))
		Expect(stmts[0].Err).To(MatchError(program.ErrStatementOverflow))
		Expect(stmts[0].Ops).To(BeEmpty())
		Expect(stmts[1].Err).NotTo(HaveOccurred())
		Expect(stmts[1].Ops).To(Equal([]program.Opcode{program.Print, program.One}))
	})

	It("should accept a statement that exactly fills the capacity", func() {
		b := program.NewBuilder().PrintLiteral('A')
		s := program.NewScannerWithCapacity(strings.NewReader(b.String()), 9)

		stmts := collect(s)
		Expect(stmts).To(HaveLen(1))
		Expect(stmts[0].Err).NotTo(HaveOccurred())
		Expect(stmts[0].Ops).To(HaveLen(9))
	})

	It("should poison a statement holding a bad token", func() {
		src := "OunG xxxx OUNG OUNg OunG OUNG OUNg"
		stmts := collect(program.NewScanner(strings.NewReader(src)))

		Expect(stmts).To(HaveLen(2))

		var decodeErr *program.DecodeError
		Expect(errors.As(stmts[0].Err, &decodeErr)).To(BeTrue())
		Expect(decodeErr.Token).To(Equal("xxxx"))
		Expect(stmts[1].Err).NotTo(HaveOccurred())
		Expect(stmts[1].Ops).To(Equal([]program.Opcode{program.Print, program.One}))
	})

	It("should count tokens left without END", func() {
		s := program.NewScanner(strings.NewReader("OunG OUNG OUNg OunG Oung"))

		stmts := collect(s)
		Expect(stmts).To(HaveLen(1))
		Expect(s.Pending()).To(Equal(2))
	})

	It("should read lines of any length", func() {
		long := strings.Repeat("oung ", 300000) + "OUNg\n"
		src := long + program.NewBuilder().PrintNumLiteral(3).String()

		stmts := collect(program.NewScanner(strings.NewReader(src)))

		Expect(stmts).To(HaveLen(2))
		Expect(stmts[0].Err).To(MatchError(program.ErrStatementOverflow))
		Expect(stmts[1].Err).NotTo(HaveOccurred())
		Expect(stmts[1].Head()).To(Equal(program.PrintNum))
		Expect(stmts[1].Line).To(Equal(2))
	})

	It("should read a last line without a newline", func() {
		src := "OunG OUNG OUNg"

		stmts := collect(program.NewScanner(strings.NewReader(src)))

		Expect(stmts).To(HaveLen(1))
		Expect(stmts[0].Ops).To(Equal([]program.Opcode{program.Print, program.One}))
	})

	It("should reject a non-positive capacity", func() {
		Expect(func() {
			program.NewScannerWithCapacity(strings.NewReader(""), 0)
		}).To(Panic())
	})
})
