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

// Package kdf implements the NIST SP 800-108 counter-mode key derivation
// function with HMAC-SHA-512, and the uniform integer and uniform hash
// derivations built on top of it that every group instantiation and every
// Fiat-Shamir challenge in this module relies on.
package kdf

import (
	"crypto/hmac"
	"crypto/sha512"
	"errors"
	"math/big"

	"github.com/dvoting/evote-crypto/crypto/bytestring"
)

// ErrExceedMaxRetry is returned when rejection sampling fails to find a
// value within the target range within a bounded number of attempts.
var ErrExceedMaxRetry = errors.New("kdf: exceeded max retries")

// maxRetries bounds rejection sampling; a failure here indicates a
// catastrophic implementation error, not bad luck, since the expected
// number of draws per success is under two.
const maxRetries = 256

// Derive implements NIST SP 800-108 counter-mode KDF with HMAC-SHA-512,
// producing exactly length bytes.
func Derive(key []byte, label, context []byte, length int) []byte {
	out := make([]byte, 0, length+sha512.Size)
	for counter := uint32(0); len(out) < length; counter++ {
		mac := hmac.New(sha512.New, key)
		b := bytestring.NewBuilder()
		b.AddUint32(counter).AddBytes(label).AddBytes([]byte{0x00}).AddBytes(context).AddUint32(uint32(length))
		mac.Write(b.Bytes())
		out = append(out, mac.Sum(nil)...)
	}
	return out[:length]
}

// UniformInt derives a pseudo-uniform integer in [0, m) from seed by
// rejection sampling over successive KDF draws keyed by seed and an
// incrementing counter.
func UniformInt(m *big.Int, seed []byte) (*big.Int, error) {
	if m.Sign() <= 0 {
		return nil, errors.New("kdf: modulus must be positive")
	}
	bitLen := m.BitLen()
	byteLen := (bitLen + 7) / 8
	if byteLen == 0 {
		byteLen = 1
	}
	excessBits := uint(byteLen*8 - bitLen)

	for counter := uint32(1); counter <= maxRetries; counter++ {
		b := bytestring.NewBuilder()
		b.AddBytes(seed).AddUint32(counter)
		bs := Derive(b.Bytes(), []byte("generator"), []byte("Polyas"), byteLen)
		if excessBits > 0 {
			bs[0] &= byte(0xFF >> excessBits)
		}
		w := new(big.Int).SetBytes(bs)
		if w.Cmp(m) < 0 {
			return w, nil
		}
	}
	return nil, ErrExceedMaxRetry
}

// UniformHash derives a pseudo-uniform integer in [0, m) from the
// SHA-512 digest of transcript.
func UniformHash(m *big.Int, transcript []byte) (*big.Int, error) {
	h := sha512.Sum512(transcript)
	return UniformInt(m, h[:])
}
