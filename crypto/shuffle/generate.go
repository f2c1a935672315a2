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
	"math/big"

	"golang.org/x/sync/errgroup"

	"github.com/dvoting/evote-crypto/crypto/elgamal"
	"github.com/dvoting/evote-crypto/crypto/group"
	"github.com/dvoting/evote-crypto/crypto/rng"
)

// Batch is an N x W matrix of multi-ciphertexts: N rows (one per
// shuffled item), each of width W (one ciphertext per field).
type Batch [][]elgamal.Ciphertext

// Shuffled is the output of Generate: the re-encrypted, permuted batch
// together with the randomness needed to build the accompanying proof.
type Shuffled struct {
	Outputs Batch

	perm []int       // perm[i] = output row that input row i moved to
	rho  [][]*big.Int // rho[i][j] = re-encryption coin applied to inputs[i][j]
}

// Generate samples a random permutation and re-encryption coins, and
// returns the permuted, re-randomized batch.
func Generate(g group.Group, pk group.Element, inputs Batch) (*Shuffled, error) {
	n := len(inputs)
	if n == 0 {
		return &Shuffled{Outputs: Batch{}, perm: nil, rho: nil}, nil
	}
	w := len(inputs[0])

	perm, err := randomPermutation(n)
	if err != nil {
		return nil, err
	}

	rho := make([][]*big.Int, n)
	reencrypted := make(Batch, n)
	var eg errgroup.Group
	for i := 0; i < n; i++ {
		i := i
		eg.Go(func() error {
			row := make([]elgamal.Ciphertext, w)
			coins := make([]*big.Int, w)
			for j := 0; j < w; j++ {
				r, err := rng.Int(new(big.Int).Sub(g.Order(), big.NewInt(2)))
				if err != nil {
					return err
				}
				r.Add(r, big.NewInt(2))
				coins[j] = r
				row[j] = elgamal.ReRandomize(g, inputs[i][j], pk, r)
			}
			reencrypted[i] = row
			rho[i] = coins
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	outputs := make(Batch, n)
	for i := 0; i < n; i++ {
		outputs[perm[i]] = reencrypted[i]
	}

	return &Shuffled{Outputs: outputs, perm: perm, rho: rho}, nil
}
