// Copyright (c) 2026 The betchain developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package result defines the uniform success/failure container used by
// every fallible operation in the library. A failure carries a code from
// a closed taxonomy, a human-readable message, structured context, and
// remediation suggestions that callers surface verbatim.
package result

import (
	"fmt"
	"strings"
)

// Code identifies a failure category. The set is closed per release.
type Code string

const (
	CodeInvalidInput      Code = "INVALID_INPUT"
	CodeInsufficientFunds Code = "INSUFFICIENT_FUNDS"
	CodeTooManyInputs     Code = "TOO_MANY_INPUTS"
	CodeGameNotFound      Code = "GAME_NOT_FOUND"
	CodeOracleNotSettled  Code = "ORACLE_NOT_SETTLED"
	CodePolicyMismatch    Code = "POLICY_MISMATCH"
	CodeAccountingError   Code = "ACCOUNTING_ERROR"
	CodeTransactionFailed Code = "TRANSACTION_FAILED"
)

// Failure describes why an operation could not complete. It satisfies the
// error interface so failures compose with %w wrapping where needed.
type Failure struct {
	Code        Code
	Message     string
	Context     map[string]string
	Suggestions []string
}

// Error renders the failure as "CODE: message [k=v ...]".
func (f *Failure) Error() string {
	if len(f.Context) == 0 {
		return fmt.Sprintf("%s: %s", f.Code, f.Message)
	}
	pairs := make([]string, 0, len(f.Context))
	for k, v := range f.Context {
		pairs = append(pairs, k+"="+v)
	}
	return fmt.Sprintf("%s: %s [%s]", f.Code, f.Message, strings.Join(pairs, " "))
}

// Failf builds a Failure with a formatted message.
func Failf(code Code, format string, args ...any) *Failure {
	return &Failure{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithContext attaches a key/value pair and returns the same failure.
func (f *Failure) WithContext(key, value string) *Failure {
	if f.Context == nil {
		f.Context = make(map[string]string)
	}
	f.Context[key] = value
	return f
}

// WithSuggestions appends remediation suggestions and returns the same failure.
func (f *Failure) WithSuggestions(s ...string) *Failure {
	f.Suggestions = append(f.Suggestions, s...)
	return f
}

// Result holds exactly one of a value or a failure.
type Result[T any] struct {
	value   T
	failure *Failure
}

// Ok wraps a successful value.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Err wraps a failure. It panics if f is nil: a nil failure is a
// programming error, not a representable state.
func Err[T any](f *Failure) Result[T] {
	if f == nil {
		panic("result: Err called with nil failure")
	}
	return Result[T]{failure: f}
}

// IsSuccess reports whether the result holds a value.
func (r Result[T]) IsSuccess() bool { return r.failure == nil }

// IsFailure reports whether the result holds a failure.
func (r Result[T]) IsFailure() bool { return r.failure != nil }

// Value returns the held value. Only meaningful when IsSuccess.
func (r Result[T]) Value() T { return r.value }

// Failure returns the held failure, or nil on success.
func (r Result[T]) Failure() *Failure { return r.failure }

// Unpack returns both sides at once for callers that prefer the
// conventional two-value form.
func (r Result[T]) Unpack() (T, *Failure) { return r.value, r.failure }
