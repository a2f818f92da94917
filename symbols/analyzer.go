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

// Package symbols implements the Symbol Analyzer of spec §4.5: a
// single-pass, read-only traversal of the expression tree that records
// which variables and constants are referenced and how. It never mutates
// the tree and never consults the Function Registry or Unit Resolver.
package symbols

import (
	"strings"

	"github.com/Tangerg/lynx/pkg/sets"

	"github.com/openformula/formulacore/ast"
)

// Usage is the Symbol Usage Record of spec §3: the set of variable names
// referenced, the subsets referenced with a unit suffix / with an index /
// without an index, and the set of constant names referenced. All names
// are normalized (lower-cased); VarDisplay and ConstDisplay recover the
// original spelling
// first seen in the formula, for error messages that must preserve
// verbatim casing.
type Usage struct {
	Variables    sets.Set[string]
	WithUnit     sets.Set[string]
	WithIndex    sets.Set[string]
	WithoutIndex sets.Set[string]
	Constants    sets.Set[string]

	VarDisplay   map[string]string
	ConstDisplay map[string]string
}

func newUsage() *Usage {
	return &Usage{
		Variables:    sets.NewHashSet[string](),
		WithUnit:     sets.NewHashSet[string](),
		WithIndex:    sets.NewHashSet[string](),
		WithoutIndex: sets.NewHashSet[string](),
		Constants:    sets.NewHashSet[string](),
		VarDisplay:   make(map[string]string),
		ConstDisplay: make(map[string]string),
	}
}

// Analyze performs the single read-only traversal described in spec §4.5
// and returns the resulting Usage record. Analyze is idempotent: calling
// it twice on the same tree produces equal records.
func Analyze(e ast.Expr) *Usage {
	u := newUsage()
	walk(u, e)
	return u
}

func walk(u *Usage, e ast.Expr) {
	if e == nil {
		return
	}
	switch n := e.(type) {
	case *ast.NumberNode:
		// leaf, nothing to record
	case *ast.VariableNode:
		recordVariable(u, n)
		for _, s := range n.Suffixes {
			if idx, ok := s.(*ast.IndexSuffix); ok {
				walk(u, idx.Index)
			}
		}
	case *ast.ConstantNode:
		key := strings.ToLower(n.Name)
		u.Constants.Add(key)
		if _, ok := u.ConstDisplay[key]; !ok {
			u.ConstDisplay[key] = n.Name
		}
	case *ast.CallNode:
		for _, a := range n.Args {
			walk(u, a)
		}
	case *ast.UnaryNode:
		walk(u, n.Operand)
	case *ast.BinaryNode:
		walk(u, n.Left)
		walk(u, n.Right)
	}
}

func recordVariable(u *Usage, n *ast.VariableNode) {
	key := strings.ToLower(n.Name)
	u.Variables.Add(key)
	if _, ok := u.VarDisplay[key]; !ok {
		u.VarDisplay[key] = n.Name
	}

	hasUnit, hasIndex := false, false
	for _, s := range n.Suffixes {
		switch s.(type) {
		case *ast.UnitSuffix:
			hasUnit = true
		case *ast.IndexSuffix:
			hasIndex = true
		}
	}
	if hasUnit {
		u.WithUnit.Add(key)
	}
	if hasIndex {
		u.WithIndex.Add(key)
	} else {
		u.WithoutIndex.Add(key)
	}
}
