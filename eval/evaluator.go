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

// Package eval implements the Evaluator of spec §4.6: a tree walk that
// produces a double-precision result, consulting the symbol tables, the
// Function Registry, and the Unit Resolver. It performs no I/O and holds
// no state beyond its constructor arguments, so a single Evaluator value
// is trivially reusable and safe to construct fresh per request.
package eval

import (
	"math"
	"strings"

	"github.com/openformula/formulacore/ast"
	"github.com/openformula/formulacore/registry"
	"github.com/openformula/formulacore/reporter"
	"github.com/openformula/formulacore/units"
)

// epsilon is DBL_EPSILON, used for the equality operator per spec §4.6.
// Spec §9 flags this as surprisingly tight for most practical formulas;
// it is preserved as specified rather than "fixed" here.
const epsilon = 2.220446049250313e-16

// maxIndexSlack bounds how far an index expression's value may be from
// the nearest whole number and still be accepted as an integer index.
const maxIndexSlack = 1e-9

// MeasuredValue is a user-supplied named input (spec §3): exactly one of
// a scalar or a vector, with an optional unit alias.
type MeasuredValue struct {
	Name     string // original, display-cased name
	IsVector bool
	Scalar   float64
	Vector   []float64
	Unit     string // empty means unitless
}

// Evaluator walks an expression tree against one request's resolved
// symbol tables and the process-wide Function Registry / Unit Resolver.
type Evaluator struct {
	// Vars and Consts are keyed by normalized (lower-cased, unprefixed)
	// identifier.
	Vars     map[string]MeasuredValue
	Consts   map[string]float64
	Registry *registry.Registry
	Resolver *units.Resolver
}

// New constructs an Evaluator over the given resolved inputs.
func New(vars map[string]MeasuredValue, consts map[string]float64, reg *registry.Registry, res *units.Resolver) *Evaluator {
	return &Evaluator{Vars: vars, Consts: consts, Registry: reg, Resolver: res}
}

// Eval evaluates e to a double and applies the final termination policy
// of spec §4.6: NaN and ±Inf results are reported as errors, everything
// else is returned as the successful result.
func (ev *Evaluator) Eval(e ast.Expr) (float64, error) {
	v, err := ev.eval(e)
	if err != nil {
		return 0, err
	}
	switch {
	case math.IsNaN(v):
		return 0, reporter.Evalf("Result is not a real number (NaN)")
	case math.IsInf(v, 0):
		return 0, reporter.Evalf("Result is infinity - division by zero or overflow")
	default:
		return v, nil
	}
}

func (ev *Evaluator) eval(e ast.Expr) (float64, error) {
	switch n := e.(type) {
	case *ast.NumberNode:
		return n.Value, nil
	case *ast.VariableNode:
		return ev.evalVariable(n)
	case *ast.ConstantNode:
		key := strings.ToLower(n.Name)
		v, ok := ev.Consts[key]
		if !ok {
			return 0, reporter.Evalf("Undefined constant: #%s", n.Name)
		}
		return v, nil
	case *ast.CallNode:
		return ev.evalCall(n)
	case *ast.UnaryNode:
		v, err := ev.eval(n.Operand)
		if err != nil {
			return 0, err
		}
		if n.Op == ast.UnaryMinus {
			return -v, nil
		}
		return v, nil
	case *ast.BinaryNode:
		return ev.evalBinary(n)
	default:
		return 0, reporter.Evalf("Validation error: unrecognized expression node %T", e)
	}
}

func (ev *Evaluator) evalCall(n *ast.CallNode) (float64, error) {
	args := make([]float64, len(n.Args))
	for i, a := range n.Args {
		v, err := ev.eval(a)
		if err != nil {
			return 0, err
		}
		args[i] = v
	}
	return ev.Registry.Call(n.Name, args)
}

func (ev *Evaluator) evalVariable(n *ast.VariableNode) (float64, error) {
	key := strings.ToLower(n.Name)
	mv, ok := ev.Vars[key]
	if !ok {
		return 0, reporter.Evalf("Undefined variable: $%s", n.Name)
	}

	var indexExpr ast.Expr
	var unitName string
	haveIndex, haveUnit := false, false
	for _, s := range n.Suffixes {
		switch sv := s.(type) {
		case *ast.IndexSuffix:
			if haveIndex {
				return 0, reporter.Evalf("Variable '%s' is used with multiple indices/units", n.Name)
			}
			haveIndex = true
			indexExpr = sv.Index
		case *ast.UnitSuffix:
			if haveUnit {
				return 0, reporter.Evalf("Variable '%s' is used with multiple indices/units", n.Name)
			}
			haveUnit = true
			unitName = sv.Name
		}
	}

	var current float64
	if mv.IsVector {
		if !haveIndex {
			return 0, reporter.Evalf("Variable '%s' is non-scalar. Use an index like '$%s[i]'.", n.Name, n.Name)
		}
		idx, err := ev.resolveIndex(n.Name, indexExpr, len(mv.Vector))
		if err != nil {
			return 0, err
		}
		current = mv.Vector[idx]
	} else {
		if haveIndex {
			return 0, reporter.Evalf("Variable '%s' is scalar but is used with an index.", n.Name)
		}
		current = mv.Scalar
	}

	if haveUnit {
		if mv.Unit == "" {
			return 0, reporter.Evalf("Variable '%s' has no unit defined but is used with a unit suffix.", n.Name)
		}
		converted, err := ev.Resolver.TryConvert(current, mv.Unit, unitName)
		if err != nil {
			return 0, reporter.Evalf("Cannot convert variable '%s' from '%s' to '%s'.", n.Name, mv.Unit, unitName)
		}
		current = converted
	}
	return current, nil
}

func (ev *Evaluator) resolveIndex(varName string, idxExpr ast.Expr, length int) (int, error) {
	v, err := ev.eval(idxExpr)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, reporter.Evalf("Index for variable '%s' must evaluate to a finite number.", varName)
	}
	rounded := math.Round(v)
	if math.Abs(v-rounded) > maxIndexSlack {
		return 0, reporter.Evalf("Index for variable '%s' must be an integer.", varName)
	}
	if rounded < 0 {
		return 0, reporter.Evalf("Index for variable '%s' must be non-negative.", varName)
	}
	idx := int(rounded)
	if idx >= length {
		return 0, reporter.Evalf("Index %d is out of range for variable '%s'.", idx, varName)
	}
	return idx, nil
}

func (ev *Evaluator) evalBinary(n *ast.BinaryNode) (float64, error) {
	l, err := ev.eval(n.Left)
	if err != nil {
		return 0, err
	}
	r, err := ev.eval(n.Right)
	if err != nil {
		return 0, err
	}
	switch n.Op {
	case ast.OpPow:
		return math.Pow(l, r), nil
	case ast.OpMul:
		return l * r, nil
	case ast.OpDiv:
		return l / r, nil
	case ast.OpMod:
		return math.Mod(l, r), nil
	case ast.OpAdd:
		return l + r, nil
	case ast.OpSub:
		return l - r, nil
	case ast.OpGT:
		return boolFloat(l > r), nil
	case ast.OpLT:
		return boolFloat(l < r), nil
	case ast.OpGE:
		return boolFloat(l >= r), nil
	case ast.OpLE:
		return boolFloat(l <= r), nil
	case ast.OpEQ:
		return boolFloat(math.Abs(l-r) < epsilon), nil
	case ast.OpNE:
		return boolFloat(math.Abs(l-r) >= epsilon), nil
	default:
		return 0, reporter.Evalf("Validation error: unrecognized binary operator %d", n.Op)
	}
}

func boolFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
