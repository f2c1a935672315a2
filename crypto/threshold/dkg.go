// Copyright © 2020 AMIS Technologies
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package threshold

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/dvoting/evote-crypto/crypto/group"
	"github.com/dvoting/evote-crypto/crypto/polynomial"
	"github.com/dvoting/evote-crypto/crypto/zkproof"
)

var (
	// ErrInvalidConfig is returned when the threshold parameters violate
	// 1 <= t <= n.
	ErrInvalidConfig = errors.New("threshold: invalid config, require 1 <= t <= n")
	// ErrWrongRecordCount is returned when finalization is not given
	// exactly n-1 peer records.
	ErrWrongRecordCount = errors.New("threshold: expected exactly n-1 peer records")
	// ErrSelfRecord is returned when a peer record's producer index is
	// the finalizing teller's own index.
	ErrSelfRecord = errors.New("threshold: peer record from self")
	// ErrIndexOutOfRange is returned when a producer or peer index falls
	// outside [1, n].
	ErrIndexOutOfRange = errors.New("threshold: index out of range [1, n]")
	// ErrCoefficientCountMismatch is returned when a peer record's
	// blinded-coefficient count does not equal its proof count, or does
	// not equal the threshold t.
	ErrCoefficientCountMismatch = errors.New("threshold: blinded coefficient count differs from proof count or threshold")
)

// Config holds the (t, n) threshold parameters.
type Config struct {
	Threshold int
	Tellers   int
}

// Validate checks 1 <= t <= n.
func (c Config) Validate() error {
	if c.Threshold < 1 || c.Threshold > c.Tellers {
		return ErrInvalidConfig
	}
	return nil
}

// Teller is one participant's contribution to the distributed key
// generation: a random degree-(t-1) polynomial, its blinded
// coefficients g^a_i, and a dlog NIZKP per coefficient.
type Teller struct {
	g     group.Group
	Index int

	poly          *polynomial.Polynomial
	blindedCoeffs []group.Element
	proofs        []*zkproof.DlogProof
}

// NewTeller draws a fresh random polynomial of degree t-1 and commits
// to its coefficients.
func NewTeller(g group.Group, cfg Config, index int) (*Teller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if index < 1 || index > cfg.Tellers {
		return nil, ErrIndexOutOfRange
	}
	poly, err := polynomial.RandomPolynomial(g.Order(), uint32(cfg.Threshold-1))
	if err != nil {
		return nil, err
	}
	blinded := make([]group.Element, cfg.Threshold)
	proofs := make([]*zkproof.DlogProof, cfg.Threshold)
	for i := 0; i < cfg.Threshold; i++ {
		a := poly.Get(i)
		blinded[i] = g.Pow(g.Generator(), a)
		proof, err := zkproof.NewDlogProof(g, g.Generator(), blinded[i], a)
		if err != nil {
			return nil, err
		}
		proofs[i] = proof
	}
	return &Teller{g: g, Index: index, poly: poly, blindedCoeffs: blinded, proofs: proofs}, nil
}

// BlindedCoefficients returns (g^a_0, ..., g^a_{t-1}).
func (t *Teller) BlindedCoefficients() []group.Element {
	return t.blindedCoeffs
}

// ShareFor returns p(peerIndex) mod q, the share this teller owes to
// peerIndex.
func (t *Teller) ShareFor(peerIndex int) *big.Int {
	return t.poly.Evaluate(big.NewInt(int64(peerIndex)))
}

// RecordFor builds the PeerRecord this teller sends to peerIndex.
func (t *Teller) RecordFor(peerIndex int) PeerRecord {
	return PeerRecord{
		ProducerIndex:       t.Index,
		Share:               t.ShareFor(peerIndex),
		BlindedCoefficients: t.blindedCoeffs,
		Proofs:              t.proofs,
	}
}

// PeerRecord is the message teller k sends to teller l during DKG: l's
// share of k's polynomial, plus k's commitments and proofs so l can
// verify it.
type PeerRecord struct {
	ProducerIndex       int
	Share               *big.Int
	BlindedCoefficients []group.Element
	Proofs              []*zkproof.DlogProof
}

// FinalizedShare is the output of a successful DKG finalization at one
// teller.
type FinalizedShare struct {
	Index       int
	SecretShare *big.Int
	PublicShare group.Element
}

// FinalizeTeller combines exactly n-1 peer records (one from every
// other teller) with the finalizing teller's own polynomial into a
// verified secret key share.
//
// The size check here requires equal blinded-coefficient and proof
// counts per record; a mismatch rejects the record outright rather than
// zero-padding or truncating it.
func FinalizeTeller(g group.Group, cfg Config, self *Teller, records []PeerRecord) (*FinalizedShare, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(records) != cfg.Tellers-1 {
		return nil, ErrWrongRecordCount
	}

	seen := map[int]struct{}{self.Index: {}}
	secret := new(big.Int).Set(self.ShareFor(self.Index))

	for _, rec := range records {
		if rec.ProducerIndex == self.Index {
			return nil, ErrSelfRecord
		}
		if rec.ProducerIndex < 1 || rec.ProducerIndex > cfg.Tellers {
			return nil, ErrIndexOutOfRange
		}
		if _, dup := seen[rec.ProducerIndex]; dup {
			return nil, fmt.Errorf("threshold: duplicate producer %d: %w", rec.ProducerIndex, ErrDuplicateIndex)
		}
		seen[rec.ProducerIndex] = struct{}{}

		if len(rec.BlindedCoefficients) != len(rec.Proofs) {
			return nil, fmt.Errorf("threshold: producer %d: %w", rec.ProducerIndex, ErrCoefficientCountMismatch)
		}
		if len(rec.BlindedCoefficients) != cfg.Threshold {
			return nil, fmt.Errorf("threshold: producer %d: %w", rec.ProducerIndex, ErrCoefficientCountMismatch)
		}

		for i, A := range rec.BlindedCoefficients {
			if res := rec.Proofs[i].Verify(g, g.Generator(), A); !res.IsCorrect() {
				return nil, fmt.Errorf("threshold: producer %d coefficient %d: %s", rec.ProducerIndex, i, res.Reason())
			}
		}

		if err := verifyFeldmanShare(g, self.Index, rec.Share, rec.BlindedCoefficients); err != nil {
			return nil, fmt.Errorf("threshold: producer %d: %w", rec.ProducerIndex, err)
		}

		secret.Add(secret, rec.Share)
		secret.Mod(secret, g.Order())
	}

	if len(seen) != cfg.Tellers {
		return nil, ErrWrongRecordCount
	}

	public := g.Pow(g.Generator(), secret)
	return &FinalizedShare{Index: self.Index, SecretShare: secret, PublicShare: public}, nil
}

// ErrFeldmanMismatch is returned when a peer's share does not match its
// Feldman commitment.
var ErrFeldmanMismatch = errors.New("threshold: share does not match blinded coefficients")

// verifyFeldmanShare checks g^share == prod_i blindedCoeffs[i]^(l^i),
// the Feldman VSS consistency check that binds the cleartext share
// sent to l against the publicly committed polynomial.
func verifyFeldmanShare(g group.Group, l int, share *big.Int, blindedCoeffs []group.Element) error {
	expect := g.Pow(g.Generator(), share)

	bigL := big.NewInt(int64(l))
	power := big.NewInt(1)
	got := g.Identity()
	for _, A := range blindedCoeffs {
		got = g.Multiply(got, g.Pow(A, power))
		power.Mul(power, bigL)
		power.Mod(power, g.Order())
	}
	if !got.Equal(expect) {
		return ErrFeldmanMismatch
	}
	return nil
}

// CombinedPublicKey computes Y_0 = prod_k A[k,0] from the constant
// blinded coefficient of every one of the n tellers.
func CombinedPublicKey(g group.Group, constantTerms []group.Element, n int) (group.Element, error) {
	if len(constantTerms) != n {
		return nil, ErrWrongRecordCount
	}
	acc := g.Identity()
	for _, A0 := range constantTerms {
		acc = g.Multiply(acc, A0)
	}
	return acc, nil
}

// PublicKeyShare computes Y_l = prod_k prod_i A[k,i]^(l^i) from every
// teller's full blinded-coefficient vector, allowing any observer to
// recompute a teller's public share without the secret itself.
func PublicKeyShare(g group.Group, index int, allBlindedCoeffs [][]group.Element) group.Element {
	acc := g.Identity()
	for _, coeffs := range allBlindedCoeffs {
		bigL := big.NewInt(int64(index))
		power := big.NewInt(1)
		for _, A := range coeffs {
			acc = g.Multiply(acc, g.Pow(A, power))
			power.Mul(power, bigL)
			power.Mod(power, g.Order())
		}
	}
	return acc
}
