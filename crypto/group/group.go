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

// Package group defines the abstract cyclic-group contract that every
// algorithm in this module (ElGamal, the Sigma proofs, Pedersen and
// multi-commitments, threshold DKG and decryption, and the shuffle) is
// written against. Concrete instantiations live in the schnorrgroup and
// secp256k1group subpackages, rather than hard-coding one curve or field.
package group

import "math/big"

// Element is an opaque group element. Equality is structural algebraic
// equality, not pointer identity.
type Element interface {
	// Equal reports whether e represents the same group element as other.
	// other is expected to have been produced by the same Group.
	Equal(other Element) bool

	// CanonicalBytes returns e's canonical byte encoding, used both for
	// wire serialization and as the input to Fiat-Shamir transcripts.
	CanonicalBytes() []byte
}

// Group is a cyclic group of prime order with a distinguished generator.
type Group interface {
	// Name identifies the instantiation, e.g. "secp256k1" or
	// "schnorr-2048".
	Name() string

	// Order returns the prime order q of the group.
	Order() *big.Int

	// Identity returns the group's identity element.
	Identity() Element

	// Generator returns the group's distinguished generator g.
	Generator() Element

	// MessageUpperBound returns the exclusive upper bound on integers
	// that Encode accepts.
	MessageUpperBound() *big.Int

	// Multiply returns a*b.
	Multiply(a, b Element) Element

	// Pow returns a^k. Negative k is normalized modulo Order first.
	Pow(a Element, k *big.Int) Element

	// Inverse returns a^-1.
	Inverse(a Element) Element

	// Valid reports whether e is a valid element of this group (on the
	// curve / in the QR subgroup, as applicable).
	Valid(e Element) bool

	// Encode maps m, 0 <= m < MessageUpperBound(), to a group element.
	Encode(m *big.Int) (Element, error)

	// Decode is the left inverse of Encode.
	Decode(e Element) (*big.Int, error)

	// UnmarshalElement parses e's canonical byte encoding, failing if the
	// bytes do not represent a valid element of this group.
	UnmarshalElement(b []byte) (Element, error)

	// ElementsFromSeed deterministically derives n independent generators
	// from seed, suitable as a multi-commitment key.
	ElementsFromSeed(n int, seed []byte) ([]Element, error)
}

// PowProduct returns Product_i bases[i]^exponents[i], the linear
// combination used throughout Pedersen verification, public-key-share
// reconstruction and the shuffle proof.
func PowProduct(g Group, bases []Element, exponents []*big.Int) (Element, error) {
	if len(bases) != len(exponents) {
		return nil, ErrLengthMismatch
	}
	acc := g.Identity()
	for i := range bases {
		acc = g.Multiply(acc, g.Pow(bases[i], exponents[i]))
	}
	return acc, nil
}
