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

	"github.com/dvoting/evote-crypto/crypto/commitment"
	"github.com/dvoting/evote-crypto/crypto/group"
	"github.com/dvoting/evote-crypto/crypto/verification"
	"github.com/dvoting/evote-crypto/logger"
)

// Verify checks proof against the claim that outputs is a permutation
// and re-encryption under pk of inputs, committed with key ck. Size
// mismatches are checked first and collapse into a descriptive Failed.
func Verify(g group.Group, pk group.Element, ck *commitment.MultiKey, inputs, outputs Batch, proof *Proof) verification.Result {
	n := len(inputs)
	if n == 0 || len(outputs) != n {
		return verification.Failed("shuffle: empty or mismatched batch size")
	}
	w := len(inputs[0])
	for _, row := range inputs {
		if len(row) != w {
			return verification.Failed("shuffle: ragged input batch")
		}
	}
	for _, row := range outputs {
		if len(row) != w {
			return verification.Failed("shuffle: ragged output batch")
		}
	}
	if ck.Capacity() < n {
		return verification.Failed("shuffle: commitment key too small for batch")
	}
	if len(proof.C) != n || len(proof.CHat) != n || len(proof.THat) != n ||
		len(proof.SHat) != n || len(proof.SPrime) != n {
		logger.Logger().Warn("shuffle proof rejected", "reason", "size mismatch against batch size", "n", n)
		return verification.Failed("shuffle: proof size mismatch against batch size N")
	}
	if len(proof.T4X) != w || len(proof.T4Y) != w || len(proof.S4) != w {
		logger.Logger().Warn("shuffle proof rejected", "reason", "size mismatch against batch width", "w", w)
		return verification.Failed("shuffle: proof size mismatch against batch width W")
	}

	q := g.Order()
	h := ck.H()
	hs := ck.Hs()[:n]

	seed := seedTranscript(g, pk, ck, inputs, outputs, proof.C)
	u, err := challengeVector(seed, q, n)
	if err != nil {
		return verification.Failed(err.Error())
	}
	C, err := proofChallenge(seed, q, proof.CHat, proof.T1, proof.T2, proof.T3, proof.T4X, proof.T4Y, proof.THat)
	if err != nil {
		return verification.Failed(err.Error())
	}
	negC := new(big.Int).Neg(C)

	// c-bar: t1 = cbar^-C * h^s1
	cBar := g.Identity()
	for _, ci := range proof.C {
		cBar = g.Multiply(cBar, ci)
	}
	hProd := g.Identity()
	for _, hi := range hs {
		hProd = g.Multiply(hProd, hi)
	}
	cBar = g.Multiply(cBar, g.Inverse(hProd))
	expectT1 := g.Multiply(g.Pow(cBar, negC), g.Pow(h, proof.S1))
	if !expectT1.Equal(proof.T1) {
		return verification.Failed("shuffle: t1 mismatch (permutation commitment product)")
	}

	// c-hat bar: t2 = chatbar^-C * h^s2
	uProd := big.NewInt(1)
	for _, ui := range u {
		uProd.Mul(uProd, ui)
		uProd.Mod(uProd, q)
	}
	cHatBar := g.Multiply(proof.CHat[n-1], g.Pow(hs[0], new(big.Int).Neg(uProd)))
	expectT2 := g.Multiply(g.Pow(cHatBar, negC), g.Pow(h, proof.S2))
	if !expectT2.Equal(proof.T2) {
		return verification.Failed("shuffle: t2 mismatch (chain commitment product)")
	}

	// c-tilde: t3 = ctilde^-C * h^s3 * prod hi^s'_i
	cTilde := g.Identity()
	for i, ci := range proof.C {
		cTilde = g.Multiply(cTilde, g.Pow(ci, u[i]))
	}
	expectT3 := g.Multiply(g.Pow(cTilde, negC), g.Pow(h, proof.S3))
	for i := 0; i < n; i++ {
		expectT3 = g.Multiply(expectT3, g.Pow(hs[i], proof.SPrime[i]))
	}
	if !expectT3.Equal(proof.T3) {
		return verification.Failed("shuffle: t3 mismatch (commitment-key linear combination)")
	}

	// Per-column re-encryption consistency.
	for j := 0; j < w; j++ {
		aPrime := g.Identity()
		bPrime := g.Identity()
		for i := 0; i < n; i++ {
			aPrime = g.Multiply(aPrime, g.Pow(inputs[i][j].Y, u[i]))
			bPrime = g.Multiply(bPrime, g.Pow(inputs[i][j].X, u[i]))
		}
		expectT4Y := g.Multiply(g.Pow(aPrime, negC), g.Pow(pk, new(big.Int).Neg(proof.S4[j])))
		expectT4X := g.Multiply(g.Pow(bPrime, negC), g.Pow(g.Generator(), new(big.Int).Neg(proof.S4[j])))
		for i := 0; i < n; i++ {
			expectT4Y = g.Multiply(expectT4Y, g.Pow(outputs[i][j].Y, proof.SPrime[i]))
			expectT4X = g.Multiply(expectT4X, g.Pow(outputs[i][j].X, proof.SPrime[i]))
		}
		if !expectT4Y.Equal(proof.T4Y[j]) {
			return verification.Failed(fmt.Sprintf("shuffle: t4y mismatch at column %d", j))
		}
		if !expectT4X.Equal(proof.T4X[j]) {
			return verification.Failed(fmt.Sprintf("shuffle: t4x mismatch at column %d", j))
		}
	}

	// Chain consistency.
	for i := 0; i < n; i++ {
		prev := hs[0]
		if i > 0 {
			prev = proof.CHat[i-1]
		}
		expectTHat := g.Multiply(g.Pow(proof.CHat[i], negC), g.Pow(h, proof.SHat[i]))
		expectTHat = g.Multiply(expectTHat, g.Pow(prev, proof.SPrime[i]))
		if !expectTHat.Equal(proof.THat[i]) {
			return verification.Failed(fmt.Sprintf("shuffle: chain mismatch at index %d", i))
		}
	}

	return verification.Correct
}
