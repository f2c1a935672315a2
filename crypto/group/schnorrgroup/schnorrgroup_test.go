package schnorrgroup

import (
	"math/big"
	"testing"

	"github.com/dvoting/evote-crypto/crypto/group"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func TestSchnorrGroup(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "SchnorrGroup Suite")
}

var _ = Describe("Predefined512", func() {
	g := Predefined512()

	It("generator has order q", func() {
		gq := g.Pow(g.Generator(), g.Order())
		Expect(gq.Equal(g.Identity())).Should(BeTrue())
	})

	It("is closed and associative", func() {
		a := g.Pow(g.Generator(), big.NewInt(3))
		b := g.Pow(g.Generator(), big.NewInt(5))
		c := g.Pow(g.Generator(), big.NewInt(7))
		left := g.Multiply(g.Multiply(a, b), c)
		right := g.Multiply(a, g.Multiply(b, c))
		Expect(left.Equal(right)).Should(BeTrue())
	})

	It("identity is neutral", func() {
		a := g.Pow(g.Generator(), big.NewInt(11))
		Expect(g.Multiply(a, g.Identity()).Equal(a)).Should(BeTrue())
	})

	It("inverse cancels", func() {
		a := g.Pow(g.Generator(), big.NewInt(13))
		inv := g.Inverse(a)
		Expect(g.Multiply(a, inv).Equal(g.Identity())).Should(BeTrue())
	})

	It("encode/decode round-trips", func() {
		for _, m := range []int64{0, 1, 2, 1000, 123456} {
			e, err := g.Encode(big.NewInt(m))
			Expect(err).Should(BeNil())
			Expect(g.Valid(e)).Should(BeTrue())
			back, err := g.Decode(e)
			Expect(err).Should(BeNil())
			Expect(back.Int64()).Should(Equal(m))
		}
	})

	It("rejects a message at or beyond the upper bound", func() {
		_, err := g.Encode(g.MessageUpperBound())
		Expect(err).Should(Equal(group.ErrMessageOutOfRange))
	})

	It("derives independent elements from a seed", func() {
		es, err := g.ElementsFromSeed(3, []byte("seed"))
		Expect(err).Should(BeNil())
		Expect(len(es)).Should(Equal(3))
		Expect(es[0].Equal(es[1])).Should(BeFalse())
		Expect(es[1].Equal(es[2])).Should(BeFalse())
		for _, e := range es {
			Expect(g.Valid(e)).Should(BeTrue())
		}
	})

	It("is deterministic across calls with the same seed", func() {
		a, err := g.ElementsFromSeed(2, []byte("x"))
		Expect(err).Should(BeNil())
		b, err := g.ElementsFromSeed(2, []byte("x"))
		Expect(err).Should(BeNil())
		Expect(a[0].Equal(b[0])).Should(BeTrue())
		Expect(a[1].Equal(b[1])).Should(BeTrue())
	})
})
