package elgamal

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/dvoting/evote-crypto/crypto/group"
	"github.com/dvoting/evote-crypto/crypto/group/secp256k1group"
	"github.com/dvoting/evote-crypto/crypto/rng"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

func TestElGamal(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "ElGamal Suite")
}

func keyPair(g group.Group) (*big.Int, group.Element) {
	sk, err := rng.PositiveInt(g.Order())
	Expect(err).Should(BeNil())
	return sk, g.Pow(g.Generator(), sk)
}

var _ = Describe("Encrypt/Decrypt", func() {
	g := secp256k1group.New()

	DescribeTable("round-trips a plaintext", func(m int64) {
		sk, pk := keyPair(g)
		c, err := Encrypt(g, pk, big.NewInt(m))
		Expect(err).Should(BeNil())
		got, err := Decrypt(g, sk, c)
		Expect(err).Should(BeNil())
		Expect(got.Int64()).Should(Equal(m))
	},
		Entry("zero", int64(0)),
		Entry("small", int64(42)),
		Entry("large", int64(123456789)),
	)

	It("re-randomization preserves the plaintext", func() {
		sk, pk := keyPair(g)
		c, err := Encrypt(g, pk, big.NewInt(17))
		Expect(err).Should(BeNil())
		r, err := rng.PositiveInt(g.Order())
		Expect(err).Should(BeNil())
		c2 := ReRandomize(g, c, pk, r)
		Expect(c2.X.Equal(c.X)).Should(BeFalse())
		got, err := Decrypt(g, sk, c2)
		Expect(err).Should(BeNil())
		Expect(got.Int64()).Should(Equal(int64(17)))
	})
})

var _ = Describe("Message chunking", func() {
	g := secp256k1group.New()

	DescribeTable("round-trips arbitrary byte strings", func(data []byte) {
		blocks, err := EncodeMessage(g.Order(), data)
		Expect(err).Should(BeNil())
		back, err := DecodeMessage(g.Order(), blocks)
		Expect(err).Should(BeNil())
		Expect(bytes.Equal(back, data)).Should(BeTrue())
	},
		Entry("empty", []byte{}),
		Entry("short", []byte("hello")),
		Entry("exactly one block", bytes.Repeat([]byte{0xAB}, 31)),
		Entry("multi block", bytes.Repeat([]byte("the quick brown fox "), 10)),
	)
})
