package zkproof

import (
	"math/big"

	"github.com/dvoting/evote-crypto/crypto/group/schnorrgroup"
	"github.com/dvoting/evote-crypto/crypto/rng"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("EqlogProof", func() {
	g := schnorrgroup.Predefined512()

	It("proves and verifies equality of discrete logs across two bases", func() {
		secret, err := rng.PositiveInt(g.Order())
		Expect(err).Should(BeNil())

		baseX := g.Generator()
		baseY := g.Pow(g.Generator(), big.NewInt(7))
		x := g.Pow(baseX, secret)
		y := g.Pow(baseY, secret)

		proof, err := NewEqlogProof(g, baseX, x, baseY, y, secret)
		Expect(err).Should(BeNil())
		Expect(proof.Verify(g, baseX, x, baseY, y).IsCorrect()).Should(BeTrue())
	})

	It("rejects when the two bases use different exponents", func() {
		s1, err := rng.PositiveInt(g.Order())
		Expect(err).Should(BeNil())
		s2, err := rng.PositiveInt(g.Order())
		Expect(err).Should(BeNil())

		baseX := g.Generator()
		baseY := g.Pow(g.Generator(), big.NewInt(7))
		x := g.Pow(baseX, s1)
		y := g.Pow(baseY, s2)

		_, err = NewEqlogProof(g, baseX, x, baseY, y, s1)
		Expect(err).Should(Equal(ErrVerifyFailure))
	})

	It("rejects a tampered response", func() {
		secret, err := rng.PositiveInt(g.Order())
		Expect(err).Should(BeNil())
		baseX := g.Generator()
		baseY := g.Pow(g.Generator(), big.NewInt(7))
		x := g.Pow(baseX, secret)
		y := g.Pow(baseY, secret)

		proof, err := NewEqlogProof(g, baseX, x, baseY, y, secret)
		Expect(err).Should(BeNil())
		proof.F = new(big.Int).Add(proof.F, big.NewInt(1))
		proof.F.Mod(proof.F, g.Order())
		Expect(proof.Verify(g, baseX, x, baseY, y).IsCorrect()).Should(BeFalse())
	})
})
