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

// Package elgamal implements ElGamal encryption over an abstract
// group.Group, along with the message-chunking codec that turns an
// arbitrary byte string into a sequence of group-encodable integers.
package elgamal

import (
	"encoding/binary"
	"errors"
	"math/big"

	"github.com/dvoting/evote-crypto/crypto/group"
	"github.com/dvoting/evote-crypto/crypto/rng"
)

// ErrCorruptPadding is returned by DecodeMessage when the recovered pad
// bytes are not all zero.
var ErrCorruptPadding = errors.New("elgamal: corrupt padding")

// Ciphertext is a pair of group elements (x, y).
type Ciphertext struct {
	X, Y group.Element
}

// MultiCiphertext is an ordered sequence of ciphertexts sharing auxiliary
// metadata opaque to the core.
type MultiCiphertext struct {
	Ciphertexts []Ciphertext
	AuxData     map[string]string
}

// Encrypt draws a fresh randomizer and returns Enc_pk(m).
func Encrypt(g group.Group, pk group.Element, m *big.Int) (Ciphertext, error) {
	r, err := rng.PositiveInt(g.Order())
	if err != nil {
		return Ciphertext{}, err
	}
	return EncryptWithRandomness(g, pk, m, r)
}

// EncryptWithRandomness encrypts m under pk using the given randomizer r;
// exposed so proofs of correct encryption can reuse the same coin.
func EncryptWithRandomness(g group.Group, pk group.Element, m *big.Int, r *big.Int) (Ciphertext, error) {
	enc, err := g.Encode(m)
	if err != nil {
		return Ciphertext{}, err
	}
	x := g.Pow(g.Generator(), r)
	y := g.Multiply(enc, g.Pow(pk, r))
	return Ciphertext{X: x, Y: y}, nil
}

// Decrypt recovers the plaintext integer using the private key sk.
func Decrypt(g group.Group, sk *big.Int, c Ciphertext) (*big.Int, error) {
	shared := g.Pow(c.X, sk)
	masked := g.Multiply(c.Y, g.Inverse(shared))
	return g.Decode(masked)
}

// ReRandomize re-randomizes c under pk using a fresh randomizer r,
// without changing the underlying plaintext.
func ReRandomize(g group.Group, c Ciphertext, pk group.Element, r *big.Int) Ciphertext {
	return Ciphertext{
		X: g.Multiply(c.X, g.Pow(g.Generator(), r)),
		Y: g.Multiply(c.Y, g.Pow(pk, r)),
	}
}

// blockSize returns the number of plaintext bytes that fit safely below
// the group order: (bitlen(q) - 1) / 8.
func blockSize(order *big.Int) int {
	return (order.BitLen() - 1) / 8
}

// EncodeMessage splits data into group-encodable integers. A two-byte
// big-endian pad-length header is prepended so that the padded length is
// a multiple of the block size, then the padded bytes are split into
// fixed-size blocks and interpreted as big-endian integers.
func EncodeMessage(order *big.Int, data []byte) ([]*big.Int, error) {
	b := blockSize(order)
	if b < 1 {
		return nil, errors.New("elgamal: group order too small to chunk messages")
	}
	total := len(data) + 2
	pad := (b - total%b) % b
	padded := make([]byte, 0, total+pad)
	var hdr [2]byte
	binary.BigEndian.PutUint16(hdr[:], uint16(pad))
	padded = append(padded, hdr[:]...)
	padded = append(padded, data...)
	padded = append(padded, make([]byte, pad)...)

	n := len(padded) / b
	out := make([]*big.Int, n)
	for i := 0; i < n; i++ {
		out[i] = new(big.Int).SetBytes(padded[i*b : (i+1)*b])
	}
	return out, nil
}

// DecodeMessage is the inverse of EncodeMessage.
func DecodeMessage(order *big.Int, blocks []*big.Int) ([]byte, error) {
	b := blockSize(order)
	buf := make([]byte, 0, len(blocks)*b)
	for _, v := range blocks {
		blockBytes := v.Bytes()
		if len(blockBytes) > b {
			// A leading zero byte may legitimately appear for a block
			// whose top bit is set; drop it if present.
			if len(blockBytes) == b+1 && blockBytes[0] == 0 {
				blockBytes = blockBytes[1:]
			} else {
				return nil, ErrCorruptPadding
			}
		}
		block := make([]byte, b)
		copy(block[b-len(blockBytes):], blockBytes)
		buf = append(buf, block...)
	}
	if len(buf) < 2 {
		return nil, ErrCorruptPadding
	}
	pad := int(binary.BigEndian.Uint16(buf[:2]))
	if pad < 0 || pad > len(buf)-2 {
		return nil, ErrCorruptPadding
	}
	body := buf[2 : len(buf)-pad]
	for _, c := range buf[len(buf)-pad:] {
		if c != 0 {
			return nil, ErrCorruptPadding
		}
	}
	return body, nil
}
