package commitment

import (
	"math/big"

	"github.com/dvoting/evote-crypto/crypto/group/schnorrgroup"
	"github.com/dvoting/evote-crypto/crypto/rng"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("MultiKey", func() {
	g := schnorrgroup.Predefined512()

	It("commits and opens a vector of values", func() {
		k, err := NewMultiKey(g, 3, []byte("shuffle-commitment-key"))
		Expect(err).Should(BeNil())
		Expect(k.Capacity()).Should(Equal(3))

		vals := []*big.Int{big.NewInt(1), big.NewInt(2), big.NewInt(3)}
		r, err := rng.PositiveInt(g.Order())
		Expect(err).Should(BeNil())
		c, err := k.Commit(vals, r)
		Expect(err).Should(BeNil())
		Expect(k.Verify(c, vals, r)).Should(BeNil())
	})

	It("allows committing to fewer values than capacity", func() {
		k, err := NewMultiKey(g, 3, []byte("shuffle-commitment-key"))
		Expect(err).Should(BeNil())
		vals := []*big.Int{big.NewInt(5)}
		r, err := rng.PositiveInt(g.Order())
		Expect(err).Should(BeNil())
		c, err := k.Commit(vals, r)
		Expect(err).Should(BeNil())
		Expect(k.Verify(c, vals, r)).Should(BeNil())
	})

	It("rejects too many values", func() {
		k, err := NewMultiKey(g, 2, []byte("seed"))
		Expect(err).Should(BeNil())
		vals := []*big.Int{big.NewInt(1), big.NewInt(2), big.NewInt(3)}
		_, err = k.Commit(vals, big.NewInt(1))
		Expect(err).Should(Equal(ErrTooManyValues))
	})

	It("rejects a wrong opening", func() {
		k, err := NewMultiKey(g, 2, []byte("seed"))
		Expect(err).Should(BeNil())
		vals := []*big.Int{big.NewInt(1), big.NewInt(2)}
		r, err := rng.PositiveInt(g.Order())
		Expect(err).Should(BeNil())
		c, err := k.Commit(vals, r)
		Expect(err).Should(BeNil())
		wrong := []*big.Int{big.NewInt(1), big.NewInt(9)}
		Expect(k.Verify(c, wrong, r)).Should(Equal(ErrFailedVerify))
	})
})
