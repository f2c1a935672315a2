package zkproof

import (
	"math/big"

	"github.com/dvoting/evote-crypto/crypto/elgamal"
	"github.com/dvoting/evote-crypto/crypto/group/schnorrgroup"
	"github.com/dvoting/evote-crypto/crypto/rng"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("DecryptionProof", func() {
	g := schnorrgroup.Predefined512()

	It("proves and verifies a correct decryption share", func() {
		sk, err := rng.PositiveInt(g.Order())
		Expect(err).Should(BeNil())
		pk := g.Pow(g.Generator(), sk)

		plaintext := big.NewInt(42)
		c, err := elgamal.Encrypt(g, pk, plaintext)
		Expect(err).Should(BeNil())

		d, proof, err := NewDecryptionProof(g, c, sk, pk)
		Expect(err).Should(BeNil())
		Expect(proof.Verify(g, c, pk, d).IsCorrect()).Should(BeTrue())
		Expect(proof.VerifyPlaintext(g, c, pk, d, plaintext).IsCorrect()).Should(BeTrue())
	})

	It("rejects a decryption share from the wrong secret key", func() {
		sk, err := rng.PositiveInt(g.Order())
		Expect(err).Should(BeNil())
		pk := g.Pow(g.Generator(), sk)

		otherSk, err := rng.PositiveInt(g.Order())
		Expect(err).Should(BeNil())

		plaintext := big.NewInt(7)
		c, err := elgamal.Encrypt(g, pk, plaintext)
		Expect(err).Should(BeNil())

		badD := g.Pow(c.X, otherSk)
		_, _, err = NewDecryptionProof(g, c, otherSk, pk)
		Expect(err).Should(Equal(ErrVerifyFailure))

		_, proof, err := NewDecryptionProof(g, c, sk, pk)
		Expect(err).Should(BeNil())
		Expect(proof.Verify(g, c, pk, badD).IsCorrect()).Should(BeFalse())
	})

	It("rejects a claimed plaintext that does not match", func() {
		sk, err := rng.PositiveInt(g.Order())
		Expect(err).Should(BeNil())
		pk := g.Pow(g.Generator(), sk)

		c, err := elgamal.Encrypt(g, pk, big.NewInt(42))
		Expect(err).Should(BeNil())

		d, proof, err := NewDecryptionProof(g, c, sk, pk)
		Expect(err).Should(BeNil())
		Expect(proof.VerifyPlaintext(g, c, pk, d, big.NewInt(43)).IsCorrect()).Should(BeFalse())
	})
})
