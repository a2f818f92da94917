// Copyright 2020-2023 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package reporter provides the pipeline's error types: ErrorWithPos for
// the parser's syntax errors, and the position-less EvalError for errors
// raised by the evaluator, function registry, and unit resolver.
package reporter

import (
	"fmt"

	"github.com/openformula/formulacore/pos"
)

// ErrorWithPos is an error about formula source that carries the position
// that caused it.
type ErrorWithPos interface {
	error
	Position() pos.Position
	Unwrap() error
}

// Error creates a new ErrorWithPos from an existing error and a position.
func Error(p pos.Position, err error) ErrorWithPos {
	return errorWithPos{p: p, underlying: err}
}

// Errorf creates a new ErrorWithPos whose underlying error is built with
// fmt.Errorf.
func Errorf(p pos.Position, format string, args ...interface{}) ErrorWithPos {
	return errorWithPos{p: p, underlying: fmt.Errorf(format, args...)}
}

type errorWithPos struct {
	underlying error
	p          pos.Position
}

func (e errorWithPos) Error() string {
	return e.underlying.Error()
}

func (e errorWithPos) Position() pos.Position {
	return e.p
}

func (e errorWithPos) Unwrap() error {
	return e.underlying
}

var _ ErrorWithPos = errorWithPos{}

// EvalError is an error raised during evaluation (§4.6/§4.7 of the
// validation pipeline) that carries the exact user-facing message named
// in the error message catalog. It has no position: evaluation errors are
// reported as plain messages, not as "near token at line/col" syntax
// errors.
type EvalError struct {
	Message string
}

func (e *EvalError) Error() string {
	return e.Message
}

// Evalf constructs an *EvalError with a formatted message.
func Evalf(format string, args ...interface{}) *EvalError {
	return &EvalError{Message: fmt.Sprintf(format, args...)}
}
