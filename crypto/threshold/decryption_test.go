package threshold

import (
	"math/big"

	"github.com/dvoting/evote-crypto/crypto/elgamal"
	"github.com/dvoting/evote-crypto/crypto/group"
	"github.com/dvoting/evote-crypto/crypto/group/schnorrgroup"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Threshold decryption", func() {
	g := schnorrgroup.Predefined512()
	cfg := Config{Threshold: 2, Tellers: 3}

	It("combines t-of-n shares back into the plaintext", func() {
		tellers, shares := runDKG(g, cfg)

		constants := make([]group.Element, cfg.Tellers)
		for i, t := range tellers {
			constants[i] = t.BlindedCoefficients()[0]
		}
		pk, err := CombinedPublicKey(g, constants, cfg.Tellers)
		Expect(err).Should(BeNil())

		plaintext := big.NewInt(1234)
		c, err := elgamal.Encrypt(g, pk, plaintext)
		Expect(err).Should(BeNil())

		decShares := make([]*DecryptionShare, 0, cfg.Threshold)
		publicShares := map[int]group.Element{}
		for _, share := range shares[:cfg.Threshold] {
			publicShares[share.Index] = share.PublicShare
			ds, err := NewDecryptionShare(g, c, share.Index, share.SecretShare, share.PublicShare)
			Expect(err).Should(BeNil())
			decShares = append(decShares, ds)
		}

		Expect(VerifyDecryptionShares(g, c, decShares, publicShares)).Should(BeNil())

		got, err := Combine(g, c, decShares, cfg.Threshold)
		Expect(err).Should(BeNil())
		Expect(got.Cmp(plaintext)).Should(Equal(0))
	})

	It("rejects fewer than t shares", func() {
		tellers, shares := runDKG(g, cfg)
		_ = tellers

		plaintext := big.NewInt(5)
		constants := make([]group.Element, cfg.Tellers)
		for i, t := range tellers {
			constants[i] = t.BlindedCoefficients()[0]
		}
		pk, err := CombinedPublicKey(g, constants, cfg.Tellers)
		Expect(err).Should(BeNil())
		c, err := elgamal.Encrypt(g, pk, plaintext)
		Expect(err).Should(BeNil())

		share := shares[0]
		ds, err := NewDecryptionShare(g, c, share.Index, share.SecretShare, share.PublicShare)
		Expect(err).Should(BeNil())

		_, err = Combine(g, c, []*DecryptionShare{ds}, cfg.Threshold)
		Expect(err).Should(Equal(ErrNotEnoughShares))
	})

	It("rejects a decryption share with an invalid proof", func() {
		tellers, shares := runDKG(g, cfg)
		_ = tellers

		plaintext := big.NewInt(5)
		constants := make([]group.Element, cfg.Tellers)
		for i, t := range tellers {
			constants[i] = t.BlindedCoefficients()[0]
		}
		pk, err := CombinedPublicKey(g, constants, cfg.Tellers)
		Expect(err).Should(BeNil())
		c, err := elgamal.Encrypt(g, pk, plaintext)
		Expect(err).Should(BeNil())

		share := shares[0]
		ds, err := NewDecryptionShare(g, c, share.Index, share.SecretShare, share.PublicShare)
		Expect(err).Should(BeNil())

		wrongShares := map[int]group.Element{share.Index: shares[1].PublicShare}
		Expect(VerifyDecryptionShares(g, c, []*DecryptionShare{ds}, wrongShares)).ShouldNot(BeNil())
	})
})
