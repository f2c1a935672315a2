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

package schnorrgroup

// modulus512Hex is a verified 512-bit safe prime (p = 2q+1, p congruent to
// 7 mod 8 so that g=2 generates the order-q subgroup), used as the one
// below-RFC-3526 predefined group so small-scale tests do not pay for
// full-size modular exponentiation.
const modulus512Hex = "ad94d03812f968f3a2e805ff9e54126db73b638e002ae585bd151bd87f5883b" +
	"eb8d0d692c6b58642cf426179b0440df1d073de5e8c979c5bc80d99d6fa1a2cb7"

// modulus1536Hex, modulus2048Hex and modulus3072Hex are the RFC 3526 MODP
// groups 5, 14 and 15: fixed safe primes with generator g=2, shared by
// every installation so that keys, ciphertexts and shares produced by one
// teller validate against any other's group instance.
const modulus1536Hex = "ffffffffffffffffc90fdaa22168c234c4c6628b80dc1cd129024e088a67cc74" +
	"020bbea63b139b22514a08798e3404ddef9519b3cd3a431b302b0a6df25f14374fe1356d" +
	"6d51c245e485b576625e7ec6f44c42e9a637ed6b0bff5cb6f406b7edee386bfb5a899fa5" +
	"ae9f24117c4b1fe649286651ece45b3dc2007cb8a163bf0598da48361c55d39a69163fa8" +
	"fd24cf5f83655d23dca3ad961c62f356208552bb9ed529077096966d670c354e4abc9804" +
	"f1746c08ca237327ffffffffffffffff"

const modulus2048Hex = "ffffffffffffffffc90fdaa22168c234c4c6628b80dc1cd129024e088a67cc74" +
	"020bbea63b139b22514a08798e3404ddef9519b3cd3a431b302b0a6df25f14374fe1356d" +
	"6d51c245e485b576625e7ec6f44c42e9a637ed6b0bff5cb6f406b7edee386bfb5a899fa5" +
	"ae9f24117c4b1fe649286651ece45b3dc2007cb8a163bf0598da48361c55d39a69163fa8" +
	"fd24cf5f83655d23dca3ad961c62f356208552bb9ed529077096966d670c354e4abc9804" +
	"f1746c08ca18217c32905e462e36ce3be39e772c180e86039b2783a2ec07a28fb5c55df0" +
	"6f4c52c9de2bcbf6955817183995497cea956ae515d2261898fa051015728e5a8aacaa68" +
	"ffffffffffffffff"

const modulus3072Hex = "ffffffffffffffffc90fdaa22168c234c4c6628b80dc1cd129024e088a67cc74" +
	"020bbea63b139b22514a08798e3404ddef9519b3cd3a431b302b0a6df25f14374fe1356d" +
	"6d51c245e485b576625e7ec6f44c42e9a637ed6b0bff5cb6f406b7edee386bfb5a899fa5" +
	"ae9f24117c4b1fe649286651ece45b3dc2007cb8a163bf0598da48361c55d39a69163fa8" +
	"fd24cf5f83655d23dca3ad961c62f356208552bb9ed529077096966d670c354e4abc9804" +
	"f1746c08ca18217c32905e462e36ce3be39e772c180e86039b2783a2ec07a28fb5c55df0" +
	"6f4c52c9de2bcbf6955817183995497cea956ae515d2261898fa051015728e5a8aaac42d" +
	"ad33170d04507a33a85521abdf1cba64ecfb850458dbef0a8aea71575d060c7db3970f85" +
	"a6e1e4c7abf5ae8cdb0933d71e8c94e04a25619dcee3d2261ad2ee6bf12ffa06d98a0864" +
	"d87602733ec86a64521f2b18177b200cbbe117577a615d6c770988c0bad946e208e24fa" +
	"074e5ab3143db5bfce0fd108e4b82d120a93ad2caffffffffffffffff"

var (
	group512  *Group
	group1536 *Group
	group2048 *Group
	group3072 *Group
)

func init() {
	var err error
	group512, err = New("schnorr-512", modulus512Hex)
	if err != nil {
		panic(err)
	}
	group1536, err = New("schnorr-modp-1536", modulus1536Hex)
	if err != nil {
		panic(err)
	}
	group2048, err = New("schnorr-modp-2048", modulus2048Hex)
	if err != nil {
		panic(err)
	}
	group3072, err = New("schnorr-modp-3072", modulus3072Hex)
	if err != nil {
		panic(err)
	}
}

// Predefined512 returns the fixed 512-bit predefined Schnorr group.
func Predefined512() *Group { return group512 }

// Predefined1536 returns the fixed RFC 3526 MODP group 5 (1536-bit).
func Predefined1536() *Group { return group1536 }

// Predefined2048 returns the fixed RFC 3526 MODP group 14 (2048-bit).
func Predefined2048() *Group { return group2048 }

// Predefined3072 returns the fixed RFC 3526 MODP group 15 (3072-bit).
func Predefined3072() *Group { return group3072 }
