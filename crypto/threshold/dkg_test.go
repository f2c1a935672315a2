package threshold

import (
	"math/big"
	"testing"

	"github.com/dvoting/evote-crypto/crypto/group"
	"github.com/dvoting/evote-crypto/crypto/group/schnorrgroup"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func TestThreshold(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Threshold Suite")
}

func runDKG(g group.Group, cfg Config) ([]*Teller, []*FinalizedShare) {
	tellers := make([]*Teller, cfg.Tellers)
	for i := range tellers {
		teller, err := NewTeller(g, cfg, i+1)
		Expect(err).Should(BeNil())
		tellers[i] = teller
	}

	shares := make([]*FinalizedShare, cfg.Tellers)
	for l := 1; l <= cfg.Tellers; l++ {
		var records []PeerRecord
		var self *Teller
		for _, t := range tellers {
			if t.Index == l {
				self = t
				continue
			}
			records = append(records, t.RecordFor(l))
		}
		share, err := FinalizeTeller(g, cfg, self, records)
		Expect(err).Should(BeNil())
		shares[l-1] = share
	}
	return tellers, shares
}

var _ = Describe("Distributed key generation", func() {
	g := schnorrgroup.Predefined512()
	cfg := Config{Threshold: 2, Tellers: 3}

	It("every teller finalizes to a share consistent with a single combined key", func() {
		tellers, shares := runDKG(g, cfg)

		constants := make([]group.Element, cfg.Tellers)
		for i, t := range tellers {
			constants[i] = t.BlindedCoefficients()[0]
		}
		combined, err := CombinedPublicKey(g, constants, cfg.Tellers)
		Expect(err).Should(BeNil())

		allCoeffs := make([][]group.Element, cfg.Tellers)
		for i, t := range tellers {
			allCoeffs[i] = t.BlindedCoefficients()
		}
		for _, share := range shares {
			recomputed := PublicKeyShare(g, share.Index, allCoeffs)
			Expect(recomputed.Equal(share.PublicShare)).Should(BeTrue())
		}

		Expect(PublicKeyShare(g, 0, allCoeffs).Equal(combined)).Should(BeTrue())
	})

	It("rejects the wrong number of peer records", func() {
		tellers := make([]*Teller, cfg.Tellers)
		for i := range tellers {
			teller, err := NewTeller(g, cfg, i+1)
			Expect(err).Should(BeNil())
			tellers[i] = teller
		}
		_, err := FinalizeTeller(g, cfg, tellers[0], []PeerRecord{tellers[1].RecordFor(1)})
		Expect(err).Should(Equal(ErrWrongRecordCount))
	})

	It("rejects a tampered share", func() {
		tellers := make([]*Teller, cfg.Tellers)
		for i := range tellers {
			teller, err := NewTeller(g, cfg, i+1)
			Expect(err).Should(BeNil())
			tellers[i] = teller
		}
		records := []PeerRecord{tellers[1].RecordFor(1), tellers[2].RecordFor(1)}
		records[0].Share.Add(records[0].Share, big.NewInt(1))
		_, err := FinalizeTeller(g, cfg, tellers[0], records)
		Expect(err).Should(MatchError(ErrFeldmanMismatch))
	})

	It("rejects a record from self", func() {
		tellers := make([]*Teller, cfg.Tellers)
		for i := range tellers {
			teller, err := NewTeller(g, cfg, i+1)
			Expect(err).Should(BeNil())
			tellers[i] = teller
		}
		records := []PeerRecord{tellers[0].RecordFor(1), tellers[2].RecordFor(1)}
		_, err := FinalizeTeller(g, cfg, tellers[0], records)
		Expect(err).Should(Equal(ErrSelfRecord))
	})
})
