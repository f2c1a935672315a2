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

package shuffle

import (
	"fmt"
	"math/big"

	"golang.org/x/sync/errgroup"

	"github.com/dvoting/evote-crypto/crypto/commitment"
	"github.com/dvoting/evote-crypto/crypto/group"
	"github.com/dvoting/evote-crypto/crypto/kdf"
	"github.com/dvoting/evote-crypto/crypto/rng"
	"github.com/dvoting/evote-crypto/crypto/verification"
)

// Proof is a non-interactive HLKD17 shuffle proof: the commitment to
// the permutation, the chain of commitments binding its challenge
// order, the Sigma-protocol announcement (six values, t4 expanded per
// ciphertext field), and the corresponding responses.
type Proof struct {
	C    []group.Element
	CHat []group.Element

	T1, T2, T3 group.Element
	T4X, T4Y   []group.Element
	THat       []group.Element

	S1, S2, S3 *big.Int
	S4         []*big.Int
	SHat       []*big.Int
	SPrime     []*big.Int
}

// rangeBelow2 draws a uniform value in [2, q).
func rangeBelow2(q *big.Int) (*big.Int, error) {
	r, err := rng.Int(new(big.Int).Sub(q, big.NewInt(2)))
	if err != nil {
		return nil, err
	}
	return r.Add(r, big.NewInt(2)), nil
}

func seedTranscript(g group.Group, pk group.Element, ck *commitment.MultiKey, inputs, outputs Batch, c []group.Element) *kdf.Transcript {
	t := kdf.NewTranscript()
	t.AppendElement(g.Generator())
	t.AppendElement(pk)
	t.AppendElement(ck.H())
	t.AppendElements(ck.Hs()...)
	appendBatch(t, inputs)
	appendBatch(t, outputs)
	t.AppendElements(c...)
	return t
}

func appendBatch(t *kdf.Transcript, b Batch) {
	for _, row := range b {
		for _, ct := range row {
			t.AppendElement(ct.X)
			t.AppendElement(ct.Y)
		}
	}
}

// challengeVector derives u[0..n-1] from independent extensions of the
// shared seed transcript.
func challengeVector(seed *kdf.Transcript, q *big.Int, n int) ([]*big.Int, error) {
	u := make([]*big.Int, n)
	for i := 0; i < n; i++ {
		v, err := seed.IndexedChallenge(q, uint32(i+1))
		if err != nil {
			return nil, err
		}
		u[i] = v
	}
	return u, nil
}

// NewProof builds a shuffle proof for a Shuffled batch against
// multi-commitment key ck (with capacity >= N) and public key pk.
func NewProof(g group.Group, pk group.Element, ck *commitment.MultiKey, inputs Batch, shuffled *Shuffled) (*Proof, error) {
	q := g.Order()
	n := len(inputs)
	if n == 0 {
		return nil, fmt.Errorf("shuffle: empty batch")
	}
	w := len(inputs[0])
	if ck.Capacity() < n {
		return nil, fmt.Errorf("shuffle: commitment key capacity %d smaller than batch size %d", ck.Capacity(), n)
	}
	perm := shuffled.perm
	outputs := shuffled.Outputs
	h := ck.H()
	hs := ck.Hs()[:n]

	// 1. Permutation commitment c_i = h^r[i] * h_{perm[i]}.
	r := make([]*big.Int, n)
	c := make([]group.Element, n)
	for i := 0; i < n; i++ {
		ri, err := rng.Int(q)
		if err != nil {
			return nil, err
		}
		r[i] = ri
		c[i] = g.Multiply(g.Pow(h, ri), hs[perm[i]])
	}

	// 2. Transcript seed and challenge vector u, permuted into u'.
	seed := seedTranscript(g, pk, ck, inputs, outputs, c)
	u, err := challengeVector(seed, q, n)
	if err != nil {
		return nil, err
	}
	uPrime := make([]*big.Int, n)
	for i := 0; i < n; i++ {
		uPrime[perm[i]] = u[i]
	}

	// 3. Chain commitment over u'.
	rHat := make([]*big.Int, n)
	cHat := make([]group.Element, n)
	for i := 0; i < n; i++ {
		ri, err := rng.Int(q)
		if err != nil {
			return nil, err
		}
		rHat[i] = ri
		prev := hs[0]
		if i > 0 {
			prev = cHat[i-1]
		}
		cHat[i] = g.Multiply(g.Pow(h, ri), g.Pow(prev, uPrime[i]))
	}

	// 4. Witness aggregates.
	rBar := big.NewInt(0)
	rTilde := big.NewInt(0)
	for i := 0; i < n; i++ {
		rBar.Add(rBar, r[i])
		rTilde.Add(rTilde, new(big.Int).Mul(r[i], u[i]))
	}
	rBar.Mod(rBar, q)
	rTilde.Mod(rTilde, q)

	rStar := make([]*big.Int, w)
	for j := 0; j < w; j++ {
		s := big.NewInt(0)
		for i := 0; i < n; i++ {
			s.Add(s, new(big.Int).Mul(shuffled.rho[i][j], u[i]))
		}
		rStar[j] = s.Mod(s, q)
	}

	rDiamond := big.NewInt(0)
	p := big.NewInt(1)
	for i := n - 1; i >= 0; i-- {
		rDiamond.Add(rDiamond, new(big.Int).Mul(rHat[i], p))
		p.Mul(p, uPrime[i])
		p.Mod(p, q)
		rDiamond.Mod(rDiamond, q)
	}

	// 5. Announcement.
	omega1, err := rangeBelow2(q)
	if err != nil {
		return nil, err
	}
	omega2, err := rangeBelow2(q)
	if err != nil {
		return nil, err
	}
	omega3, err := rangeBelow2(q)
	if err != nil {
		return nil, err
	}
	omega4 := make([]*big.Int, w)
	omegaHat := make([]*big.Int, n)
	omegaPrime := make([]*big.Int, n)
	for j := 0; j < w; j++ {
		v, err := rng.Int(q)
		if err != nil {
			return nil, err
		}
		omega4[j] = v
	}
	for i := 0; i < n; i++ {
		vh, err := rng.Int(q)
		if err != nil {
			return nil, err
		}
		vp, err := rng.Int(q)
		if err != nil {
			return nil, err
		}
		omegaHat[i] = vh
		omegaPrime[i] = vp
	}

	t1 := g.Pow(h, omega1)
	t2 := g.Pow(h, omega2)

	t3 := g.Pow(h, omega3)
	for i := 0; i < n; i++ {
		t3 = g.Multiply(t3, g.Pow(hs[i], omegaPrime[i]))
	}

	t4x := make([]group.Element, w)
	t4y := make([]group.Element, w)
	var eg errgroup.Group
	for j := 0; j < w; j++ {
		j := j
		eg.Go(func() error {
			negOmega4 := new(big.Int).Neg(omega4[j])
			accY := g.Pow(pk, negOmega4)
			accX := g.Pow(g.Generator(), negOmega4)
			for i := 0; i < n; i++ {
				accY = g.Multiply(accY, g.Pow(outputs[i][j].Y, omegaPrime[i]))
				accX = g.Multiply(accX, g.Pow(outputs[i][j].X, omegaPrime[i]))
			}
			t4y[j] = accY
			t4x[j] = accX
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	tHat := make([]group.Element, n)
	for i := 0; i < n; i++ {
		prev := hs[0]
		if i > 0 {
			prev = cHat[i-1]
		}
		tHat[i] = g.Multiply(g.Pow(h, omegaHat[i]), g.Pow(prev, omegaPrime[i]))
	}

	// 6. Challenge.
	C, err := proofChallenge(seed, q, cHat, t1, t2, t3, t4x, t4y, tHat)
	if err != nil {
		return nil, err
	}

	// 7. Responses.
	s1 := mulAddMod(C, rBar, omega1, q)
	s2 := mulAddMod(C, rDiamond, omega2, q)
	s3 := mulAddMod(C, rTilde, omega3, q)
	s4 := make([]*big.Int, w)
	for j := 0; j < w; j++ {
		s4[j] = mulAddMod(C, rStar[j], omega4[j], q)
	}
	sHat := make([]*big.Int, n)
	sPrime := make([]*big.Int, n)
	for i := 0; i < n; i++ {
		sHat[i] = mulAddMod(C, rHat[i], omegaHat[i], q)
		sPrime[i] = mulAddMod(C, uPrime[i], omegaPrime[i], q)
	}

	return &Proof{
		C: c, CHat: cHat,
		T1: t1, T2: t2, T3: t3, T4X: t4x, T4Y: t4y, THat: tHat,
		S1: s1, S2: s2, S3: s3, S4: s4, SHat: sHat, SPrime: sPrime,
	}, nil
}

func mulAddMod(c, witness, omega, q *big.Int) *big.Int {
	v := new(big.Int).Mul(c, witness)
	v.Add(v, omega)
	return v.Mod(v, q)
}

func proofChallenge(seed *kdf.Transcript, q *big.Int, cHat []group.Element, t1, t2, t3 group.Element, t4x, t4y []group.Element, tHat []group.Element) (*big.Int, error) {
	t := seed.Clone()
	t.AppendElements(cHat...)
	t.AppendElement(t1)
	t.AppendElement(t2)
	t.AppendElement(t3)
	for j := range t4x {
		t.AppendElement(t4x[j])
		t.AppendElement(t4y[j])
	}
	t.AppendElements(tHat...)
	return t.Challenge(q)
}
