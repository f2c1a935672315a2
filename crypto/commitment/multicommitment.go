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

package commitment

import (
	"errors"
	"math/big"

	"github.com/dvoting/evote-crypto/crypto/group"
)

// ErrTooManyValues is returned when more values are committed than the
// multi-commitment key supports.
var ErrTooManyValues = errors.New("commitment: too many values for this key")

// MultiKey is a vector Pedersen commitment key (h, h_1, ..., h_n)
// derived from ElementsFromSeed(n+1, seed).
type MultiKey struct {
	g  group.Group
	h  group.Element
	hs []group.Element
}

// NewMultiKey derives a multi-commitment key of capacity n under seed.
func NewMultiKey(g group.Group, n int, seed []byte) (*MultiKey, error) {
	elems, err := g.ElementsFromSeed(n+1, seed)
	if err != nil {
		return nil, err
	}
	return &MultiKey{g: g, h: elems[0], hs: elems[1:]}, nil
}

// Capacity returns the maximum number of values this key can commit to.
func (k *MultiKey) Capacity() int {
	return len(k.hs)
}

// H returns the key's blinding base h.
func (k *MultiKey) H() group.Element {
	return k.h
}

// Hs returns the key's per-slot bases h_1..h_n.
func (k *MultiKey) Hs() []group.Element {
	return k.hs
}

// Commit computes commit(vals, r) = h^r * prod(h_i^vals_i) for
// len(vals) <= Capacity().
func (k *MultiKey) Commit(vals []*big.Int, r *big.Int) (group.Element, error) {
	if len(vals) > len(k.hs) {
		return nil, ErrTooManyValues
	}
	bases := make([]group.Element, 0, len(vals)+1)
	exps := make([]*big.Int, 0, len(vals)+1)
	bases = append(bases, k.h)
	exps = append(exps, r)
	for i, v := range vals {
		bases = append(bases, k.hs[i])
		exps = append(exps, v)
	}
	return group.PowProduct(k.g, bases, exps)
}

// Verify checks that c opens to (vals, r) under k.
func (k *MultiKey) Verify(c group.Element, vals []*big.Int, r *big.Int) error {
	expect, err := k.Commit(vals, r)
	if err != nil {
		return err
	}
	if !c.Equal(expect) {
		return ErrFailedVerify
	}
	return nil
}
