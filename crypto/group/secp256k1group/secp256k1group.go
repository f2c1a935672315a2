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

// Package secp256k1group implements group.Group over the secp256k1
// elliptic curve, delegating point arithmetic to btcec/v2 the way the
// teacher corpus's crypto/ecpointgrouplaw wraps a stdlib-compatible
// elliptic.Curve.
package secp256k1group

import (
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/dvoting/evote-crypto/crypto/group"
	"github.com/dvoting/evote-crypto/crypto/kdf"
)

// koblitzK is the number of x-coordinate candidates tried per message by
// the Koblitz encoding.
const koblitzK = 80

var (
	big1 = big.NewInt(1)
	big3 = big.NewInt(3)
)

// Element is an affine secp256k1 point. The identity is represented by
// the sentinel (0,0), which is not a point on the curve.
type Element struct {
	x, y *big.Int
}

func (e Element) isIdentity() bool {
	return e.x.Sign() == 0 && e.y.Sign() == 0
}

// Equal reports whether e and other are the same affine point (or both
// the identity).
func (e Element) Equal(other group.Element) bool {
	o, ok := other.(Element)
	if !ok {
		return false
	}
	return e.x.Cmp(o.x) == 0 && e.y.Cmp(o.y) == 0
}

// CanonicalBytes returns the 33-byte compressed SEC1 encoding; the
// identity encodes as 33 zero bytes, which is not a valid SEC1 encoding
// of any curve point and so cannot collide.
func (e Element) CanonicalBytes() []byte {
	out := make([]byte, 33)
	if e.isIdentity() {
		return out
	}
	if e.y.Bit(0) == 0 {
		out[0] = 0x02
	} else {
		out[0] = 0x03
	}
	e.x.FillBytes(out[1:])
	return out
}

// Group is the secp256k1 instantiation of group.Group.
type Group struct {
	curve *btcec.KoblitzCurve
}

// New returns the secp256k1 group.
func New() *Group {
	return &Group{curve: btcec.S256()}
}

func (g *Group) Name() string { return "secp256k1" }

func (g *Group) Order() *big.Int { return new(big.Int).Set(g.curve.N) }

func (g *Group) Identity() group.Element {
	return Element{x: new(big.Int), y: new(big.Int)}
}

func (g *Group) Generator() group.Element {
	return Element{x: new(big.Int).Set(g.curve.Gx), y: new(big.Int).Set(g.curve.Gy)}
}

// MessageUpperBound returns floor(p / koblitzK).
func (g *Group) MessageUpperBound() *big.Int {
	return new(big.Int).Div(g.curve.P, big.NewInt(koblitzK))
}

func asElement(e group.Element) Element {
	return e.(Element)
}

func (g *Group) Multiply(a, b group.Element) group.Element {
	av, bv := asElement(a), asElement(b)
	if av.isIdentity() {
		return bv
	}
	if bv.isIdentity() {
		return av
	}
	if av.x.Cmp(bv.x) == 0 {
		if av.y.Cmp(bv.y) != 0 {
			// a + (-a) = identity.
			return g.Identity()
		}
		x, y := g.curve.Double(av.x, av.y)
		return Element{x: x, y: y}
	}
	x, y := g.curve.Add(av.x, av.y, bv.x, bv.y)
	return Element{x: x, y: y}
}

func (g *Group) normExp(k *big.Int) *big.Int {
	r := new(big.Int).Mod(k, g.curve.N)
	if r.Sign() < 0 {
		r.Add(r, g.curve.N)
	}
	return r
}

func (g *Group) Pow(a group.Element, k *big.Int) group.Element {
	av := asElement(a)
	e := g.normExp(k)
	if e.Sign() == 0 || av.isIdentity() {
		return g.Identity()
	}
	x, y := g.curve.ScalarMult(av.x, av.y, e.Bytes())
	return Element{x: x, y: y}
}

func (g *Group) Inverse(a group.Element) group.Element {
	av := asElement(a)
	if av.isIdentity() {
		return av
	}
	ny := new(big.Int).Neg(av.y)
	ny.Mod(ny, g.curve.P)
	return Element{x: new(big.Int).Set(av.x), y: ny}
}

func (g *Group) Valid(a group.Element) bool {
	av, ok := a.(Element)
	if !ok {
		return false
	}
	if av.isIdentity() {
		return true
	}
	return g.curve.IsOnCurve(av.x, av.y)
}

// sqrtModP computes a modular square root mod the curve prime, which is
// congruent to 3 mod 4, so sqrt(a) = a^((p+1)/4) mod p whenever a is a
// quadratic residue.
func (g *Group) sqrtModP(a *big.Int) *big.Int {
	e := new(big.Int).Add(g.curve.P, big1)
	e.Rsh(e, 2)
	return new(big.Int).Exp(a, e, g.curve.P)
}

func (g *Group) rhs(x *big.Int) *big.Int {
	x3 := new(big.Int).Exp(x, big3, g.curve.P)
	x3.Add(x3, big.NewInt(7))
	return x3.Mod(x3, g.curve.P)
}

// isQR reports whether a is a nonzero quadratic residue mod p via the
// Euler criterion.
func (g *Group) isQR(a *big.Int) bool {
	if a.Sign() == 0 {
		return false
	}
	e := new(big.Int).Sub(g.curve.P, big1)
	e.Rsh(e, 1)
	r := new(big.Int).Exp(a, e, g.curve.P)
	return r.Cmp(big1) == 0
}

// Encode implements Koblitz's encoding: for i = 1..koblitzK, try
// x = koblitzK*m + i mod p and accept the first one for which x^3+7 is
// a quadratic residue.
func (g *Group) Encode(m *big.Int) (group.Element, error) {
	if m.Sign() < 0 || m.Cmp(g.MessageUpperBound()) >= 0 {
		return nil, group.ErrMessageOutOfRange
	}
	base := new(big.Int).Mul(m, big.NewInt(koblitzK))
	for i := int64(1); i <= koblitzK; i++ {
		x := new(big.Int).Add(base, big.NewInt(i))
		x.Mod(x, g.curve.P)
		ySq := g.rhs(x)
		if !g.isQR(ySq) {
			continue
		}
		y := g.sqrtModP(ySq)
		return Element{x: x, y: y}, nil
	}
	return nil, group.ErrEncodeFailed
}

// Decode is the left inverse of Encode: m = floor((x - 1) / koblitzK).
// Since Encode chose i in [1, koblitzK] with x = koblitzK*m + i (mod p),
// this floor division recovers m exactly as long as m stayed within
// MessageUpperBound so no modular wraparound occurred.
func (g *Group) Decode(a group.Element) (*big.Int, error) {
	av, ok := a.(Element)
	if !ok || !g.Valid(av) || av.isIdentity() {
		return nil, group.ErrInvalidElement
	}
	numerator := new(big.Int).Sub(av.x, big1)
	m := new(big.Int).Div(numerator, big.NewInt(koblitzK))
	return m, nil
}

func (g *Group) UnmarshalElement(b []byte) (group.Element, error) {
	if len(b) != 33 {
		return nil, group.ErrInvalidElement
	}
	allZero := true
	for _, c := range b {
		if c != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		return g.Identity(), nil
	}
	if b[0] != 0x02 && b[0] != 0x03 {
		return nil, group.ErrInvalidElement
	}
	x := new(big.Int).SetBytes(b[1:])
	ySq := g.rhs(x)
	if !g.isQR(ySq) {
		return nil, group.ErrInvalidElement
	}
	y := g.sqrtModP(ySq)
	wantOdd := b[0] == 0x03
	if (y.Bit(0) == 1) != wantOdd {
		y.Sub(g.curve.P, y)
	}
	e := Element{x: x, y: y}
	if !g.curve.IsOnCurve(e.x, e.y) {
		return nil, group.ErrInvalidElement
	}
	return e, nil
}

// ElementsFromSeed derives n independent generators by drawing a uniform
// w in [0, 2p), setting x = w mod p, and accepting the first candidate
// whose curve equation value is a quadratic residue, flipping the sign of
// y when w >= p.
func (g *Group) ElementsFromSeed(n int, seed []byte) ([]group.Element, error) {
	twoP := new(big.Int).Lsh(g.curve.P, 1)
	out := make([]group.Element, n)
	for i := 0; i < n; i++ {
		found := false
		for counter := uint32(1); counter < 1000 && !found; counter++ {
			branchSeed := append(append([]byte{}, seed...), []byte("ptgn")...)
			branchSeed = append(branchSeed, byte(i>>24), byte(i>>16), byte(i>>8), byte(i), byte(counter>>24), byte(counter>>16), byte(counter>>8), byte(counter))
			w, err := kdf.UniformInt(twoP, branchSeed)
			if err != nil {
				return nil, err
			}
			x := new(big.Int).Mod(w, g.curve.P)
			ySq := g.rhs(x)
			if !g.isQR(ySq) {
				continue
			}
			y := g.sqrtModP(ySq)
			if w.Cmp(g.curve.P) >= 0 {
				if y.Bit(0) == 0 {
					y.Sub(g.curve.P, y)
				}
			} else {
				if y.Bit(0) == 1 {
					y.Sub(g.curve.P, y)
				}
			}
			out[i] = Element{x: x, y: y}
			found = true
		}
		if !found {
			return nil, group.ErrEncodeFailed
		}
	}
	return out, nil
}
