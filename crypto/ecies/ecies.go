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

// Package ecies implements the auxiliary transport envelope used to
// move opaque payloads (e.g. exported key shares) alongside the core
// voting protocol: an ephemeral Diffie-Hellman key agreement over an
// abstract group.Group feeding a deterministic, zero-IV AES-GCM body
// encryption. The zero IV is a deliberate single-use-key construction,
// not a general-purpose AEAD mode; each call must use a fresh ephemeral
// key, which Encrypt guarantees by sampling y itself.
package ecies

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"errors"
	"math/big"

	"github.com/dvoting/evote-crypto/crypto/bytestring"
	"github.com/dvoting/evote-crypto/crypto/group"
	"github.com/dvoting/evote-crypto/crypto/rng"
)

// ErrTruncatedEnvelope is returned when the envelope is too short to
// contain a valid ephemeral key.
var ErrTruncatedEnvelope = errors.New("ecies: truncated envelope")

// Encrypt derives an ephemeral key pair (y, Y=g^y), computes the shared
// secret Z = pk^y, and AES-GCM-seals plaintext under k =
// SHA-256(Y || Z || pk) with a zero nonce. The envelope is Y's
// length-prefixed canonical bytes followed by the sealed body.
func Encrypt(g group.Group, pk group.Element, plaintext []byte) ([]byte, error) {
	y, err := rng.PositiveInt(g.Order())
	if err != nil {
		return nil, err
	}
	Y := g.Pow(g.Generator(), y)
	Z := g.Pow(pk, y)

	aead, err := newAEAD(deriveKey(Y, Z, pk))
	if err != nil {
		return nil, err
	}

	b := bytestring.NewBuilder()
	b.AddUint32LengthPrefixed(Y.CanonicalBytes())
	b.AddBytes(aead.Seal(nil, zeroNonce(aead), plaintext, nil))
	return b.Bytes(), nil
}

// Decrypt reverses Encrypt using the recipient's private key sk.
func Decrypt(g group.Group, sk *big.Int, pk group.Element, data []byte) ([]byte, error) {
	r := bytestring.NewReader(data)
	yBytes, err := r.ReadUint32LengthPrefixed()
	if err != nil {
		return nil, ErrTruncatedEnvelope
	}
	Y, err := g.UnmarshalElement(yBytes)
	if err != nil {
		return nil, err
	}
	Z := g.Pow(Y, sk)

	aead, err := newAEAD(deriveKey(Y, Z, pk))
	if err != nil {
		return nil, err
	}

	body := r.Rest()
	return aead.Open(nil, zeroNonce(aead), body, nil)
}

func deriveKey(Y, Z, pk group.Element) []byte {
	h := sha256.New()
	h.Write(Y.CanonicalBytes())
	h.Write(Z.CanonicalBytes())
	h.Write(pk.CanonicalBytes())
	return h.Sum(nil)
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func zeroNonce(aead cipher.AEAD) []byte {
	return make([]byte, aead.NonceSize())
}
