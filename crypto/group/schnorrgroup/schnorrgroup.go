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

// Package schnorrgroup implements group.Group over the order-q subgroup
// of quadratic residues modulo a safe prime p = 2q+1, with g = 2.
package schnorrgroup

import (
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/dvoting/evote-crypto/crypto/group"
	"github.com/dvoting/evote-crypto/crypto/kdf"
)

var (
	big0 = big.NewInt(0)
	big1 = big.NewInt(1)
	big2 = big.NewInt(2)
)

// Element is an integer element of the QR subgroup, represented in
// [1, p).
type Element struct {
	v *big.Int
}

// Equal reports whether e and other represent the same residue.
func (e Element) Equal(other group.Element) bool {
	o, ok := other.(Element)
	if !ok {
		return false
	}
	return e.v.Cmp(o.v) == 0
}

// CanonicalBytes returns the minimal two's-complement big-endian encoding
// of the element: a leading zero byte is added when the high bit of the
// first byte would otherwise be set.
func (e Element) CanonicalBytes() []byte {
	b := e.v.Bytes()
	if len(b) > 0 && b[0]&0x80 != 0 {
		b = append([]byte{0}, b...)
	}
	return b
}

// Group is a Schnorr-style prime-order subgroup of Z_p^*.
type Group struct {
	name string
	p    *big.Int
	q    *big.Int
	g    Element
}

// New constructs a Group from a safe prime p = 2q+1 with generator 2.
// name is used only for diagnostics (e.g. "schnorr-2048").
func New(name string, pHex string) (*Group, error) {
	p, ok := new(big.Int).SetString(pHex, 16)
	if !ok {
		return nil, fmt.Errorf("schnorrgroup: invalid modulus hex for %s", name)
	}
	q := new(big.Int).Sub(p, big1)
	q.Rsh(q, 1)
	grp := &Group{name: name, p: p, q: q}
	grp.g = Element{v: new(big.Int).Set(big2)}
	if !grp.Valid(grp.g) {
		return nil, fmt.Errorf("schnorrgroup: generator 2 is not a QR mod p for %s", name)
	}
	return grp, nil
}

// NewFromSafePrime generates a fresh custom-size Schnorr group from a
// safe prime of the given bit size drawn by safePrime (utils.SafePrime, a
// Combined-Sieve search, fits this signature). Used when none of the
// predefined groups fits.
func NewFromSafePrime(rand io.Reader, bits int, safePrime func(io.Reader, int) (*big.Int, error)) (*Group, error) {
	p, err := safePrime(rand, bits)
	if err != nil {
		return nil, err
	}
	return New(fmt.Sprintf("schnorr-custom-%d", bits), p.Text(16))
}

func (g *Group) Name() string               { return g.name }
func (g *Group) Order() *big.Int            { return new(big.Int).Set(g.q) }
func (g *Group) Identity() group.Element    { return Element{v: new(big.Int).Set(big1)} }
func (g *Group) Generator() group.Element   { return g.g }
func (g *Group) MessageUpperBound() *big.Int {
	return new(big.Int).Set(g.q)
}

func asElement(e group.Element) Element {
	return e.(Element)
}

// normExp reduces k modulo q, handling negative exponents.
func (g *Group) normExp(k *big.Int) *big.Int {
	r := new(big.Int).Mod(k, g.q)
	if r.Sign() < 0 {
		r.Add(r, g.q)
	}
	return r
}

func (g *Group) Multiply(a, b group.Element) group.Element {
	av, bv := asElement(a), asElement(b)
	r := new(big.Int).Mul(av.v, bv.v)
	r.Mod(r, g.p)
	return Element{v: r}
}

func (g *Group) Pow(a group.Element, k *big.Int) group.Element {
	av := asElement(a)
	e := g.normExp(k)
	r := new(big.Int).Exp(av.v, e, g.p)
	return Element{v: r}
}

func (g *Group) Inverse(a group.Element) group.Element {
	av := asElement(a)
	r := new(big.Int).ModInverse(av.v, g.p)
	return Element{v: r}
}

// Valid reports whether a is a quadratic residue mod p in [1, p).
func (g *Group) Valid(a group.Element) bool {
	av, ok := a.(Element)
	if !ok {
		return false
	}
	if av.v == nil || av.v.Cmp(big1) < 0 || av.v.Cmp(g.p) >= 0 {
		return false
	}
	r := new(big.Int).Exp(av.v, g.q, g.p)
	return r.Cmp(big1) == 0
}

// Encode maps m in [0, q) to the QR representative of m+1: if (m+1) is a
// QR mod p return it, else return p-(m+1).
func (g *Group) Encode(m *big.Int) (group.Element, error) {
	if m.Sign() < 0 || m.Cmp(g.q) >= 0 {
		return nil, group.ErrMessageOutOfRange
	}
	x := new(big.Int).Add(m, big1)
	test := new(big.Int).Exp(x, g.q, g.p)
	if test.Cmp(big1) == 0 {
		return Element{v: x}, nil
	}
	return Element{v: new(big.Int).Sub(g.p, x)}, nil
}

// Decode is the left inverse of Encode: if a <= q return a-1, else
// return p-a-1.
func (g *Group) Decode(a group.Element) (*big.Int, error) {
	av, ok := a.(Element)
	if !ok {
		return nil, group.ErrInvalidElement
	}
	if !g.Valid(av) {
		return nil, group.ErrInvalidElement
	}
	if av.v.Cmp(g.q) <= 0 {
		return new(big.Int).Sub(av.v, big1), nil
	}
	r := new(big.Int).Sub(g.p, av.v)
	r.Sub(r, big1)
	return r, nil
}

func (g *Group) UnmarshalElement(b []byte) (group.Element, error) {
	v := new(big.Int).SetBytes(b)
	e := Element{v: v}
	if !g.Valid(e) {
		return nil, group.ErrInvalidElement
	}
	return e, nil
}

// ElementsFromSeed derives n independent QR generators by squaring
// successive uniform residues mod p drawn from the KDF.
func (g *Group) ElementsFromSeed(n int, seed []byte) ([]group.Element, error) {
	out := make([]group.Element, n)
	for i := 0; i < n; i++ {
		found := false
		for counter := uint32(1); counter < 1000 && !found; counter++ {
			branchSeed := append(append([]byte{}, seed...), []byte("ggen")...)
			branchSeed = append(branchSeed, byte(i>>24), byte(i>>16), byte(i>>8), byte(i), byte(counter>>24), byte(counter>>16), byte(counter>>8), byte(counter))
			w, err := kdf.UniformInt(g.p, branchSeed)
			if err != nil {
				return nil, err
			}
			if w.Cmp(big2) < 0 {
				continue
			}
			sq := new(big.Int).Exp(w, big2, g.p)
			out[i] = Element{v: sq}
			found = true
		}
		if !found {
			return nil, errors.New("schnorrgroup: failed to derive seeded element")
		}
	}
	return out, nil
}
