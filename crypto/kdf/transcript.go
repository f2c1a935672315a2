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

package kdf

import (
	"math/big"

	"github.com/dvoting/evote-crypto/crypto/bytestring"
)

// Element is anything that can append its canonical byte encoding to a
// transcript. group.Element satisfies this without the kdf package
// importing group, avoiding an import cycle.
type Element interface {
	CanonicalBytes() []byte
}

// Transcript accumulates a canonical byte encoding of a Fiat-Shamir
// statement. A Transcript can be cloned to branch: the shuffle proof
// derives its per-input challenge vector and its final scalar challenge
// from independent extensions of a shared prefix.
type Transcript struct {
	b *bytestring.Builder
}

// NewTranscript returns an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{b: bytestring.NewBuilder()}
}

// Clone returns an independent copy of t; appends to the clone do not
// affect t.
func (t *Transcript) Clone() *Transcript {
	cp := make([]byte, len(t.b.Bytes()))
	copy(cp, t.b.Bytes())
	nb := bytestring.NewBuilder()
	nb.AddBytes(cp)
	return &Transcript{b: nb}
}

// AppendElement appends e's canonical byte encoding, length-prefixed.
func (t *Transcript) AppendElement(e Element) *Transcript {
	t.b.AddUint32LengthPrefixed(e.CanonicalBytes())
	return t
}

// AppendElements appends each element in es in order.
func (t *Transcript) AppendElements(es ...Element) *Transcript {
	for _, e := range es {
		t.AppendElement(e)
	}
	return t
}

// AppendBigInt appends n's canonical encoding.
func (t *Transcript) AppendBigInt(n *big.Int) *Transcript {
	t.b.AddBigInt(n)
	return t
}

// AppendUint32 appends a raw big-endian uint32 (not length-prefixed; used
// to domain-separate branch indices when deriving per-index challenges).
func (t *Transcript) AppendUint32(v uint32) *Transcript {
	t.b.AddUint32(v)
	return t
}

// AppendBytes appends raw, unprefixed bytes.
func (t *Transcript) AppendBytes(p []byte) *Transcript {
	t.b.AddBytes(p)
	return t
}

// Bytes returns the accumulated transcript bytes.
func (t *Transcript) Bytes() []byte {
	return t.b.Bytes()
}

// Challenge derives uniform_hash(m, transcript).
func (t *Transcript) Challenge(m *big.Int) (*big.Int, error) {
	return UniformHash(m, t.Bytes())
}

// IndexedChallenge derives uniform_hash(m, transcript || BE32(index)),
// used by the shuffle proof to derive the challenge vector u[0..N-1] from
// a shared prefix transcript without mutating it.
func (t *Transcript) IndexedChallenge(m *big.Int, index uint32) (*big.Int, error) {
	branch := t.Clone()
	branch.AppendUint32(index)
	return branch.Challenge(m)
}
