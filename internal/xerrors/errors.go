/*
 * Copyright 2024 The ra Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package xerrors collects the sentinel errors and small helpers shared by
// every package in this module. It follows the same shape as badger's y
// package: a handful of sentinel errors per failure kind, plus Wrapf and
// CombineErrors so callers don't have to special-case nil.
package xerrors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel errors, one family per §7 error kind.
var (
	// ErrIO is returned when the underlying file or stream could not be read.
	ErrIO = errors.New("i/o failure")
	// ErrFormat is returned when a decoded value violates the wire format
	// (width mismatch, out-of-range reference, inconsistent lengths).
	ErrFormat = errors.New("format violation")
	// ErrLogical is returned for violations only detectable by inspecting the
	// decoded structure as a whole (a cycle, an out-of-range query).
	ErrLogical = errors.New("logical violation")
	// ErrResource is returned when an allocation for a rank/select or packed
	// structure fails.
	ErrResource = errors.New("resource exhaustion")
)

// Wrapf wraps err with a formatted message, the way y.Wrapf does. It returns
// nil when err is nil so callers can write `return xerrors.Wrapf(err, ...)`
// unconditionally at the end of a function.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, format, args...)
}

// CombineErrors merges two errors that may each be nil into one. Used when a
// primary failure and a deferred Close error both need to be reported.
func CombineErrors(one, other error) error {
	if one != nil && other != nil {
		return fmt.Errorf("%v; %v", one, other)
	}
	if one != nil && other == nil {
		return one
	}
	if one == nil && other != nil {
		return other
	}
	return nil
}

// AssertTrue panics with a descriptive message if b is false. Reserved for
// conditions that indicate a programmer error (a caller violating a
// documented precondition), never for data-dependent control flow.
func AssertTrue(b bool, format string, args ...interface{}) {
	if !b {
		panic(fmt.Sprintf("assertion failed: "+format, args...))
	}
}
