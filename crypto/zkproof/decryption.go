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

	"github.com/dvoting/evote-crypto/crypto/elgamal"
	"github.com/dvoting/evote-crypto/crypto/group"
	"github.com/dvoting/evote-crypto/crypto/verification"
)

// DecryptionProof binds a decryption share D = alpha^sk to the public
// key pk = g^sk that produced it, via an eqlog proof with bases (g,
// alpha).
type DecryptionProof struct {
	Eqlog *EqlogProof
}

// NewDecryptionProof computes D = c.X^sk and proves sk is the joint
// discrete log of (pk, D) with bases (g, c.X).
func NewDecryptionProof(g group.Group, c elgamal.Ciphertext, sk *big.Int, pk group.Element) (group.Element, *DecryptionProof, error) {
	d := g.Pow(c.X, sk)
	proof, err := NewEqlogProof(g, g.Generator(), pk, c.X, d, sk)
	if err != nil {
		return nil, nil, err
	}
	return d, &DecryptionProof{Eqlog: proof}, nil
}

// Verify checks that d is a correct decryption share of c under pk.
func (p *DecryptionProof) Verify(g group.Group, c elgamal.Ciphertext, pk, d group.Element) verification.Result {
	return p.Eqlog.Verify(g, g.Generator(), pk, c.X, d)
}

// VerifyPlaintext checks the proof and additionally that decoding
// beta/D yields claimed.
func (p *DecryptionProof) VerifyPlaintext(g group.Group, c elgamal.Ciphertext, pk, d group.Element, claimed *big.Int) verification.Result {
	if res := p.Verify(g, c, pk, d); !res.IsCorrect() {
		return res
	}
	masked := g.Multiply(c.Y, g.Inverse(d))
	m, err := g.Decode(masked)
	if err != nil {
		return verification.Failed("decryption: " + err.Error())
	}
	if m.Cmp(claimed) != 0 {
		return verification.Failed("decryption: plaintext mismatch")
	}
	return verification.Correct
}
