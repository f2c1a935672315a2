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

// Package shuffle implements a Wikström-style (HLKD17) verifiable
// re-encryption mix: a random permutation of a batch of multi-ciphertexts,
// re-randomized under the shared public key, together with a
// zero-knowledge proof that the output is a permutation and
// re-encryption of the input without revealing the permutation.
package shuffle

import (
	"math/big"

	"github.com/dvoting/evote-crypto/crypto/rng"
)

// randomPermutation returns a uniformly random permutation of
// [0, n) via Fisher-Yates.
func randomPermutation(n int) ([]int, error) {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	for i := n - 1; i > 0; i-- {
		jBig, err := rng.Int(big.NewInt(int64(i + 1)))
		if err != nil {
			return nil, err
		}
		j := int(jBig.Int64())
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm, nil
}

// inverse returns the inverse of permutation perm.
func inverse(perm []int) []int {
	inv := make([]int, len(perm))
	for i, p := range perm {
		inv[p] = i
	}
	return inv
}
