package ecies

import (
	"bytes"
	"testing"

	"github.com/dvoting/evote-crypto/crypto/group/secp256k1group"
	"github.com/dvoting/evote-crypto/crypto/rng"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

func TestECIES(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "ECIES Suite")
}

var _ = Describe("Encrypt/Decrypt", func() {
	g := secp256k1group.New()

	DescribeTable("round-trips a payload", func(payload []byte) {
		sk, err := rng.PositiveInt(g.Order())
		Expect(err).Should(BeNil())
		pk := g.Pow(g.Generator(), sk)

		env, err := Encrypt(g, pk, payload)
		Expect(err).Should(BeNil())

		got, err := Decrypt(g, sk, pk, env)
		Expect(err).Should(BeNil())
		Expect(bytes.Equal(got, payload)).Should(BeTrue())
	},
		Entry("empty", []byte{}),
		Entry("short", []byte("vote receipt")),
		Entry("multi-block", bytes.Repeat([]byte("key share export "), 8)),
	)

	It("rejects a truncated envelope", func() {
		sk, err := rng.PositiveInt(g.Order())
		Expect(err).Should(BeNil())
		pk := g.Pow(g.Generator(), sk)
		_, err = Decrypt(g, sk, pk, []byte{0, 0, 0, 1})
		Expect(err).Should(Equal(ErrTruncatedEnvelope))
	})

	It("rejects a tampered ciphertext body", func() {
		sk, err := rng.PositiveInt(g.Order())
		Expect(err).Should(BeNil())
		pk := g.Pow(g.Generator(), sk)

		env, err := Encrypt(g, pk, []byte("hello"))
		Expect(err).Should(BeNil())
		tampered := append([]byte{}, env...)
		tampered[len(tampered)-1] ^= 0xFF

		_, err = Decrypt(g, sk, pk, tampered)
		Expect(err).ShouldNot(BeNil())
	})
})
