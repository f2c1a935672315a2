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

// Package verification provides a two-constructor verification result,
// used throughout the proof, threshold and shuffle packages in place of
// exception-driven validation.
package verification

// Result is either Correct or Failed with a reason naming the failing
// algebraic clause. The zero value is Correct.
type Result struct {
	failed bool
	reason string
}

// Correct is the successful verification result.
var Correct = Result{}

// Failed constructs a failing Result naming reason.
func Failed(reason string) Result {
	return Result{failed: true, reason: reason}
}

// IsCorrect reports whether r is the Correct result.
func (r Result) IsCorrect() bool {
	return !r.failed
}

// Reason returns the failure reason, or "" if r is Correct.
func (r Result) Reason() string {
	return r.reason
}

// Error implements the error interface so a Result can be returned where a
// plain error is expected; Correct's Error() is the empty string.
func (r Result) Error() string {
	return r.reason
}

// AndExpect returns r if it already failed, otherwise evaluates next and
// returns its result. This composes a sequence of checks that should
// short-circuit on the first failure.
func (r Result) AndExpect(next func() Result) Result {
	if r.failed {
		return r
	}
	return next()
}

// OnFailure invokes fn with the failure reason if r failed, then returns r
// unchanged; used to log the first failing clause without altering control
// flow.
func (r Result) OnFailure(fn func(reason string)) Result {
	if r.failed {
		fn(r.reason)
	}
	return r
}

// Expect converts r into a plain error: nil if Correct, otherwise an error
// wrapping the failure reason.
func (r Result) Expect() error {
	if !r.failed {
		return nil
	}
	return r
}

// All folds a sequence of result-producing checks, short-circuiting at the
// first failure.
func All(checks ...func() Result) Result {
	for _, c := range checks {
		if r := c(); !r.IsCorrect() {
			return r
		}
	}
	return Correct
}
