package core_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/oung/core"
	"github.com/sarchlab/oung/program"
)

func concat(parts ...[]program.Opcode) []program.Opcode {
	var ops []program.Opcode
	for _, p := range parts {
		ops = append(ops, p...)
	}

	return ops
}

var _ = Describe("DecodeIdentifier", func() {
	It("should decode a closed identifier", func() {
		ops := concat(program.Ident("hi"), program.Literal(3))

		id, err := core.DecodeIdentifier(ops, len(ops))

		Expect(err).NotTo(HaveOccurred())
		Expect(id.Name).To(Equal([]byte("hi")))
		Expect(id.Closed).To(BeTrue())
		Expect(id.Next).To(Equal(18))
	})

	It("should stop at the limit without a closing VAR", func() {
		ops := concat([]program.Opcode{program.Var}, program.Literal('x'))

		id, err := core.DecodeIdentifier(ops, len(ops))

		Expect(err).NotTo(HaveOccurred())
		Expect(id.Name).To(Equal([]byte("x")))
		Expect(id.Closed).To(BeFalse())
		Expect(id.Next).To(Equal(len(ops)))
	})

	It("should decode an empty identifier", func() {
		id, err := core.DecodeIdentifier(program.Ident(""), 2)

		Expect(err).NotTo(HaveOccurred())
		Expect(id.Name).To(BeEmpty())
		Expect(id.Closed).To(BeTrue())
	})

	It("should clamp the limit to the operands", func() {
		ops := program.Ident("a")

		id, err := core.DecodeIdentifier(ops, 100)

		Expect(err).NotTo(HaveOccurred())
		Expect(id.Name).To(Equal([]byte("a")))
	})

	DescribeTable("malformed identifiers",
		func(ops []program.Opcode) {
			_, err := core.DecodeIdentifier(ops, len(ops))
			Expect(err).To(MatchError(core.ErrDecode))
		},
		Entry("no operands", []program.Opcode{}),
		Entry("missing start sentinel", program.Literal(1)),
		Entry("non-bit inside a byte", concat(
			[]program.Opcode{program.Var, program.One, program.Sep},
			program.Literal(0))),
		Entry("truncated byte", []program.Opcode{
			program.Var, program.One, program.Zero, program.One}),
	)
})

var _ = Describe("DecodeLiteral", func() {
	It("should pack bits most significant first", func() {
		v, err := core.DecodeLiteral(program.Literal(0x41), 0, 8)

		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(int8(0x41)))
	})

	It("should read short runs", func() {
		ops := []program.Opcode{program.One, program.Zero, program.One}

		v, err := core.DecodeLiteral(ops, 0, len(ops))

		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(int8(5)))
	})

	It("should keep the last 8 bits of long runs", func() {
		ops := concat([]program.Opcode{program.One}, program.Literal(-6))

		v, err := core.DecodeLiteral(ops, 0, len(ops))

		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(int8(-6)))
	})

	It("should read an empty range as zero", func() {
		v, err := core.DecodeLiteral(program.Literal(9), 8, 8)

		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(BeZero())
	})

	It("should reject non-bit opcodes", func() {
		ops := []program.Opcode{program.One, program.Var}

		_, err := core.DecodeLiteral(ops, 0, len(ops))

		Expect(err).To(MatchError(core.ErrDecode))
	})

	It("should reject out-of-range bounds", func() {
		_, err := core.DecodeLiteral(program.Literal(1), 4, 9)

		Expect(err).To(MatchError(core.ErrDecode))
	})
})
