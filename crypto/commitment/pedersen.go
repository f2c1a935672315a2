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

// Package commitment implements Pedersen commitments over an abstract
// group.Group: a single-value commitment and its multi-value
// generalization used by the shuffle proof.
package commitment

import (
	"errors"
	"math/big"

	"github.com/dvoting/evote-crypto/crypto/group"
)

// ErrFailedVerify is returned when an opening does not match its
// commitment.
var ErrFailedVerify = errors.New("commitment: failed to verify")

// pedersenSeed is the domain-separation label used to derive the
// commitment key deterministically from the group.
const pedersenSeed = "pedersen-commitment-key"

// Key holds the Pedersen commitment key ck = elements_from_seed(1,
// "pedersen-commitment-key")[0], derived once per group.
type Key struct {
	g  group.Group
	ck group.Element
}

// NewKey derives the commitment key for g.
func NewKey(g group.Group) (*Key, error) {
	elems, err := g.ElementsFromSeed(1, []byte(pedersenSeed))
	if err != nil {
		return nil, err
	}
	return &Key{g: g, ck: elems[0]}, nil
}

// CommitmentKey returns the underlying commitment key element.
func (k *Key) CommitmentKey() group.Element {
	return k.ck
}

// Commit computes commit(v, r) = g^v * ck^r.
func (k *Key) Commit(v, r *big.Int) group.Element {
	return k.g.Multiply(k.g.Pow(k.g.Generator(), v), k.g.Pow(k.ck, r))
}

// Verify checks that c opens to (v, r) under k.
func (k *Key) Verify(c group.Element, v, r *big.Int) error {
	if !c.Equal(k.Commit(v, r)) {
		return ErrFailedVerify
	}
	return nil
}
