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

package zkproof

import (
	"math/big"

	"github.com/dvoting/evote-crypto/crypto/group"
	"github.com/dvoting/evote-crypto/crypto/kdf"
	"github.com/dvoting/evote-crypto/crypto/rng"
	"github.com/dvoting/evote-crypto/crypto/verification"
)

/*
	Eqlog proves knowledge of a single witness x satisfying two discrete
	log statements at once, over two (possibly different) bases:

		X = baseX^x   and   Y = baseY^x

	This is the proof that binds a decryption share to the public key
	share it was produced under: baseX is the group generator, X the
	public key share, baseY the ciphertext's X-component, Y the
	decryption share.

	1. Sample a in [0, q). Send A = baseX^a, B = baseY^a.
	2. Challenge c = uniform_hash(q, baseX || baseY || X || Y || A || B).
	3. Response f = a + c*x mod q.
*/

// EqlogProof is a non-interactive proof that the same exponent relates
// X to baseX and Y to baseY.
type EqlogProof struct {
	C *big.Int
	F *big.Int
}

// NewEqlogProof proves knowledge of x such that X = baseX^x and
// Y = baseY^x.
func NewEqlogProof(g group.Group, baseX, x, baseY, y group.Element, secret *big.Int) (*EqlogProof, error) {
	a, err := rng.Int(g.Order())
	if err != nil {
		return nil, err
	}
	A := g.Pow(baseX, a)
	B := g.Pow(baseY, a)

	c, err := eqlogTranscript(baseX, x, baseY, y, A, B).Challenge(g.Order())
	if err != nil {
		return nil, err
	}

	f := new(big.Int).Mul(c, secret)
	f.Add(f, a)
	f.Mod(f, g.Order())

	proof := &EqlogProof{C: c, F: f}
	if res := proof.Verify(g, baseX, x, baseY, y); !res.IsCorrect() {
		return nil, ErrVerifyFailure
	}
	return proof, nil
}

// Verify checks the proof against the statements X = baseX^x and
// Y = baseY^x.
func (p *EqlogProof) Verify(g group.Group, baseX, x, baseY, y group.Element) verification.Result {
	if p.C.Sign() < 0 || p.C.Cmp(g.Order()) >= 0 {
		return verification.Failed("eqlog: challenge out of range")
	}
	if p.F.Sign() < 0 || p.F.Cmp(g.Order()) >= 0 {
		return verification.Failed("eqlog: response out of range")
	}
	negC := new(big.Int).Neg(p.C)
	aPrime := g.Multiply(g.Pow(baseX, p.F), g.Pow(x, negC))
	bPrime := g.Multiply(g.Pow(baseY, p.F), g.Pow(y, negC))

	c, err := eqlogTranscript(baseX, x, baseY, y, aPrime, bPrime).Challenge(g.Order())
	if err != nil {
		return verification.Failed(err.Error())
	}
	if c.Cmp(p.C) != 0 {
		return verification.Failed("eqlog: challenge mismatch")
	}
	return verification.Correct
}

func eqlogTranscript(baseX, x, baseY, y, a, b group.Element) *kdf.Transcript {
	return kdf.NewTranscript().AppendElements(baseX, baseY, x, y, a, b)
}
