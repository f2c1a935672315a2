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

// Package zkproof implements the Fiat-Shamir Sigma-protocol proofs used
// throughout this module: knowledge of a discrete log, equality of
// discrete logs across two bases, and correct decryption.
package zkproof

import "errors"

var (
	// ErrVerifyFailure is returned when a proof fails verification.
	ErrVerifyFailure = errors.New("zkproof: failed to verify")
	// ErrInvalidWitness is returned when the prover's secret is out of
	// range.
	ErrInvalidWitness = errors.New("zkproof: witness out of range")
)
