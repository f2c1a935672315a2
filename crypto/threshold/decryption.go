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

	"github.com/dvoting/evote-crypto/crypto/elgamal"
	"github.com/dvoting/evote-crypto/crypto/group"
	"github.com/dvoting/evote-crypto/crypto/zkproof"
	"github.com/dvoting/evote-crypto/logger"
)

// ErrNotEnoughShares is returned when Combine is given fewer than t
// shares.
var ErrNotEnoughShares = errors.New("threshold: fewer than t decryption shares")

// DecryptionShare is one teller's contribution toward decrypting a
// ciphertext, bound to its public key share by an eqlog NIZKP.
type DecryptionShare struct {
	Index int
	D     group.Element
	Proof *zkproof.DecryptionProof
}

// NewDecryptionShare computes D_l = alpha^{y_l} and proves it is
// consistent with the teller's public share Y_l.
func NewDecryptionShare(g group.Group, c elgamal.Ciphertext, index int, secretShare *big.Int, publicShare group.Element) (*DecryptionShare, error) {
	d, proof, err := zkproof.NewDecryptionProof(g, c, secretShare, publicShare)
	if err != nil {
		return nil, err
	}
	return &DecryptionShare{Index: index, D: d, Proof: proof}, nil
}

// VerifyDecryptionShares checks every share's eqlog proof against its
// claimed public key share, stopping at the first failure. (An earlier
// description of this check iterated every share regardless of an
// inner failure, discarding the error; here the first failure aborts
// the whole verification.)
func VerifyDecryptionShares(g group.Group, c elgamal.Ciphertext, shares []*DecryptionShare, publicShares map[int]group.Element) error {
	for _, s := range shares {
		Y, ok := publicShares[s.Index]
		if !ok {
			return fmt.Errorf("threshold: no public share for index %d", s.Index)
		}
		if res := s.Proof.Verify(g, c, Y, s.D); !res.IsCorrect() {
			logger.Logger().Warn("decryption share failed verification", "index", s.Index, "reason", res.Reason())
			return fmt.Errorf("threshold: decryption share %d failed verification: %s", s.Index, res.Reason())
		}
	}
	return nil
}

// Combine reconstructs the plaintext from at least t verified
// decryption shares with distinct indices, via Lagrange interpolation
// at zero: decode(beta * (prod_k D_k^{l_k})^-1).
func Combine(g group.Group, c elgamal.Ciphertext, shares []*DecryptionShare, threshold int) (*big.Int, error) {
	if len(shares) < threshold {
		return nil, ErrNotEnoughShares
	}
	indices := make([]int, len(shares))
	for i, s := range shares {
		indices[i] = s.Index
	}
	if err := checkDistinctIndices(indices); err != nil {
		return nil, err
	}

	acc := g.Identity()
	for _, s := range shares {
		coeff, err := lagrangeCoefficientAtZero(s.Index, indices, g.Order())
		if err != nil {
			return nil, err
		}
		acc = g.Multiply(acc, g.Pow(s.D, coeff))
	}

	masked := g.Multiply(c.Y, g.Inverse(acc))
	return g.Decode(masked)
}
