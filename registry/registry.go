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

// Package registry implements the built-in Function Registry of spec
// §4.3: an immutable, case-insensitive, name-keyed table of
// (arity-predicate, implementation) pairs, built once at process start
// and safe for concurrent read-only use across requests (spec §5).
package registry

import (
	"strings"

	art "github.com/kralicky/go-adaptive-radix-tree"

	"github.com/openformula/formulacore/reporter"
)

// Func is a built-in numeric function implementation. args are the
// already-evaluated argument values, left to right.
type Func func(args []float64) (float64, error)

// Arity validates an argument count, returning a human-readable
// description of what it accepts (used in the "Function expects N
// argument(s)" error).
type Arity struct {
	Min int // inclusive
	Max int // inclusive; -1 means unbounded
}

func (a Arity) accepts(n int) bool {
	if n < a.Min {
		return false
	}
	return a.Max < 0 || n <= a.Max
}

// describe renders this arity the way the error catalog's "Function
// expects N argument(s)" message expects: a single number when Min==Max,
// "at least Min" when unbounded, otherwise "Min or Max".
func (a Arity) describe() string {
	switch {
	case a.Min == a.Max:
		return itoa(a.Min)
	case a.Max < 0:
		return "at least " + itoa(a.Min)
	default:
		return itoa(a.Min) + " or " + itoa(a.Max)
	}
}

func itoa(n int) string {
	// Small numbers only (function arities never exceed a handful), so a
	// manual conversion avoids pulling in strconv for a single digit in
	// the common case while still handling the rare two-digit arity.
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

type entry struct {
	name  string
	arity Arity
	fn    Func
}

// Registry is the immutable built-in function table.
type Registry struct {
	tree art.Tree
}

// New builds the canonical registry described in spec §4.3. Construction
// happens once at process start; the result is read-only thereafter.
func New() *Registry {
	r := &Registry{tree: art.New()}
	for _, e := range builtins() {
		r.tree.Insert(art.Key(strings.ToLower(e.name)), e)
	}
	return r
}

// Call looks up name (case-insensitively) and invokes it with args,
// validating arity first. Errors use the exact messages from the §6
// error catalog.
func (r *Registry) Call(name string, args []float64) (float64, error) {
	v, found := r.tree.Search(art.Key(strings.ToLower(name)))
	if !found {
		return 0, reporter.Evalf("Unknown function: %s", name)
	}
	e := v.(entry)
	if !e.arity.accepts(len(args)) {
		return 0, reporter.Evalf("Function expects %s argument(s).", e.arity.describe())
	}
	return e.fn(args)
}

// Has reports whether name is a known function (case-insensitive).
func (r *Registry) Has(name string) bool {
	_, found := r.tree.Search(art.Key(strings.ToLower(name)))
	return found
}
