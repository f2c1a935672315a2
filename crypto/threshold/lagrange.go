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

// Package threshold implements verifiable threshold key generation and
// decryption: per-teller Feldman-committed polynomial shares, DKG
// finalization, decryption-share generation/verification, and
// Lagrange-interpolated combination of the plaintext.
package threshold

import (
	"errors"
	"math/big"
)

// ErrDuplicateIndex is returned when a share set names the same index
// more than once.
var ErrDuplicateIndex = errors.New("threshold: duplicate index in share set")

// lagrangeCoefficientAtZero computes l_k = prod_{m in indices, m != k}
// m * (m - k)^-1 mod order, the Lagrange basis polynomial for index k
// evaluated at x = 0.
func lagrangeCoefficientAtZero(k int, indices []int, order *big.Int) (*big.Int, error) {
	num := big.NewInt(1)
	den := big.NewInt(1)
	bigK := big.NewInt(int64(k))
	for _, m := range indices {
		if m == k {
			continue
		}
		bigM := big.NewInt(int64(m))
		num.Mul(num, bigM)
		num.Mod(num, order)

		diff := new(big.Int).Sub(bigM, bigK)
		diff.Mod(diff, order)
		den.Mul(den, diff)
		den.Mod(den, order)
	}
	denInv := new(big.Int).ModInverse(den, order)
	if denInv == nil {
		return nil, errors.New("threshold: non-invertible Lagrange denominator")
	}
	coeff := new(big.Int).Mul(num, denInv)
	coeff.Mod(coeff, order)
	return coeff, nil
}

func checkDistinctIndices(indices []int) error {
	seen := make(map[int]struct{}, len(indices))
	for _, idx := range indices {
		if _, ok := seen[idx]; ok {
			return ErrDuplicateIndex
		}
		seen[idx] = struct{}{}
	}
	return nil
}
