package bytestring

import (
	"math/big"
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

func TestByteString(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "ByteString Suite")
}

var _ = Describe("Builder/Reader", func() {
	It("round-trips mixed fields", func() {
		b := NewBuilder()
		b.AddUint32(7).AddStringLengthPrefixed("hello").AddBigInt(big.NewInt(-300)).AddBytes([]byte{1, 2, 3})

		r := NewReader(b.Bytes())
		n, err := r.ReadUint32()
		Expect(err).Should(BeNil())
		Expect(n).Should(Equal(uint32(7)))

		s, err := r.ReadUint32LengthPrefixed()
		Expect(err).Should(BeNil())
		Expect(string(s)).Should(Equal("hello"))

		v, err := r.ReadBigInt()
		Expect(err).Should(BeNil())
		Expect(v.Int64()).Should(Equal(int64(-300)))

		rest := r.Rest()
		Expect(rest).Should(Equal([]byte{1, 2, 3}))
	})

	DescribeTable("hex round-trip", func(h string) {
		s, err := FromHex(h)
		Expect(err).Should(BeNil())
		Expect(s.Hex()).Should(Equal(h))
	},
		Entry("empty", ""),
		Entry("short", "deadbeef"),
	)

	It("fails on truncated input", func() {
		r := NewReader([]byte{0, 0})
		_, err := r.ReadUint32()
		Expect(err).Should(Equal(ErrTruncated))
	})
})
