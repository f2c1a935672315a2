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
	Dlog proves knowledge of x such that X = base^x, for a prover-chosen
	base (usually but not always the group generator).

	1. Sample a in [0, q). Send A = base^a.
	2. Challenge c = uniform_hash(q, base || X || A).
	3. Response f = a + c*x mod q.

	Verification reconstructs A' = base^f * X^-c and accepts iff
	uniform_hash(q, base || X || A') == c.
*/

// DlogProof is a non-interactive proof of knowledge of the discrete log
// of X base `base`.
type DlogProof struct {
	C *big.Int
	F *big.Int
}

// NewDlogProof proves knowledge of x such that X = base^x.
func NewDlogProof(g group.Group, base, x group.Element, secret *big.Int) (*DlogProof, error) {
	a, err := rng.Int(g.Order())
	if err != nil {
		return nil, err
	}
	A := g.Pow(base, a)

	c, err := kdf.NewTranscript().AppendElements(base, x, A).Challenge(g.Order())
	if err != nil {
		return nil, err
	}

	f := new(big.Int).Mul(c, secret)
	f.Add(f, a)
	f.Mod(f, g.Order())

	proof := &DlogProof{C: c, F: f}
	if res := proof.Verify(g, base, x); !res.IsCorrect() {
		return nil, ErrVerifyFailure
	}
	return proof, nil
}

// Verify checks the proof against the statement X = base^x.
func (p *DlogProof) Verify(g group.Group, base, x group.Element) verification.Result {
	if p.C.Sign() < 0 || p.C.Cmp(g.Order()) >= 0 {
		return verification.Failed("dlog: challenge out of range")
	}
	if p.F.Sign() < 0 || p.F.Cmp(g.Order()) >= 0 {
		return verification.Failed("dlog: response out of range")
	}
	negC := new(big.Int).Neg(p.C)
	aPrime := g.Multiply(g.Pow(base, p.F), g.Pow(x, negC))
	c, err := kdf.NewTranscript().AppendElements(base, x, aPrime).Challenge(g.Order())
	if err != nil {
		return verification.Failed(err.Error())
	}
	if c.Cmp(p.C) != 0 {
		return verification.Failed("dlog: challenge mismatch")
	}
	return verification.Correct
}
