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

// Package rng wraps crypto/rand with process-global draw counters and a
// single optional test interceptor. Every random draw used by the group,
// ElGamal, proof, threshold and shuffle packages goes through here, so a
// test can observe exactly what was sampled without threading a
// source through every call.
package rng

import (
	"crypto/rand"
	"errors"
	"math/big"
	"sync"
	"sync/atomic"
)

// ErrInterceptorInstalled is returned by SetInterceptor when an
// interceptor is already installed.
var ErrInterceptorInstalled = errors.New("rng: interceptor already installed")

var (
	beginCount int64
	endCount   int64

	mu          sync.Mutex
	interceptor func(v *big.Int)
)

// BeginCount returns the number of draws started so far.
func BeginCount() int64 {
	return atomic.LoadInt64(&beginCount)
}

// EndCount returns the number of draws completed so far. A caller can
// compare BeginCount and EndCount to notice a draw stuck waiting on
// entropy.
func EndCount() int64 {
	return atomic.LoadInt64(&endCount)
}

// SetInterceptor installs fn to observe every subsequently sampled value.
// Only one interceptor may be installed at a time.
func SetInterceptor(fn func(v *big.Int)) error {
	mu.Lock()
	defer mu.Unlock()
	if interceptor != nil {
		return ErrInterceptorInstalled
	}
	interceptor = fn
	return nil
}

// ClearInterceptor removes any installed interceptor. Idempotent.
func ClearInterceptor() {
	mu.Lock()
	defer mu.Unlock()
	interceptor = nil
}

func observe(v *big.Int) {
	mu.Lock()
	fn := interceptor
	mu.Unlock()
	if fn != nil {
		fn(v)
	}
}

// Int draws a uniform random integer in [0, n).
func Int(n *big.Int) (*big.Int, error) {
	atomic.AddInt64(&beginCount, 1)
	defer atomic.AddInt64(&endCount, 1)
	v, err := rand.Int(rand.Reader, n)
	if err != nil {
		return nil, err
	}
	observe(v)
	return v, nil
}

// PositiveInt draws a uniform random integer in [1, n).
func PositiveInt(n *big.Int) (*big.Int, error) {
	v, err := Int(new(big.Int).Sub(n, big.NewInt(1)))
	if err != nil {
		return nil, err
	}
	return v.Add(v, big.NewInt(1)), nil
}

// Bytes draws size cryptographically secure random bytes.
func Bytes(size int) ([]byte, error) {
	atomic.AddInt64(&beginCount, 1)
	defer atomic.AddInt64(&endCount, 1)
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	observe(new(big.Int).SetBytes(buf))
	return buf, nil
}
