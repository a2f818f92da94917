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

package formulacore

import "github.com/openformula/formulacore/ast"

// Limits bounds input size and expression depth (spec §5 / SPEC_FULL
// §D.1). MaxLength is checked against the trimmed formula before lexing.
// MaxDepth is checked against the parsed tree, after parsing and before
// symbol analysis or evaluation; the parser itself does not bound nesting
// depth.
type Limits struct {
	MaxLength int
	MaxDepth  int
}

// DefaultLimits are the suggested caps named in spec §5.
var DefaultLimits = Limits{MaxLength: 10000, MaxDepth: 256}

func depth(e ast.Expr) int {
	if e == nil {
		return 0
	}
	switch n := e.(type) {
	case *ast.NumberNode, *ast.ConstantNode:
		return 1
	case *ast.VariableNode:
		d := 1
		for _, s := range n.Suffixes {
			if idx, ok := s.(*ast.IndexSuffix); ok {
				if dd := depth(idx.Index) + 1; dd > d {
					d = dd
				}
			}
		}
		return d
	case *ast.CallNode:
		d := 0
		for _, a := range n.Args {
			if dd := depth(a); dd > d {
				d = dd
			}
		}
		return d + 1
	case *ast.UnaryNode:
		return depth(n.Operand) + 1
	case *ast.BinaryNode:
		l, r := depth(n.Left), depth(n.Right)
		if r > l {
			l = r
		}
		return l + 1
	default:
		return 1
	}
}
