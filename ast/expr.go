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

// Package ast defines the formula expression tree (spec §3): the node
// variants produced by the parser and consumed by the symbol analyzer and
// evaluator. Every node reports its source Span, the same Start()/End()
// contract protocompile's ast.Node interface exposes, generalized here
// from protobuf declaration nodes to arithmetic expression nodes.
package ast

import (
	"github.com/openformula/formulacore/lexer"
	"github.com/openformula/formulacore/pos"
)

// Node is implemented by every expression-tree node.
type Node interface {
	Span() pos.Span
}

// Expr is implemented by every node that can appear where a
// sub-expression is expected (everything but a bare Suffix).
type Expr interface {
	Node
	exprNode()
}

// NumberNode is a numeric literal, parsed per the invariant-locale rule
// of spec §4.6 ("Literals").
type NumberNode struct {
	Text  string
	Value float64
	Sp    pos.Span
}

func (n *NumberNode) Span() pos.Span { return n.Sp }
func (*NumberNode) exprNode()        {}

// Suffix is a single trailing `.unit` or `[index]` attached to a variable
// reference.
type Suffix interface {
	Node
	suffixNode()
}

// UnitSuffix is a `.IDENT` suffix naming a unit alias.
type UnitSuffix struct {
	Name string
	Sp   pos.Span
}

func (s *UnitSuffix) Span() pos.Span { return s.Sp }
func (*UnitSuffix) suffixNode()      {}

// IndexSuffix is a `[expr]` suffix selecting a vector element.
type IndexSuffix struct {
	Index Expr
	Sp    pos.Span
}

func (s *IndexSuffix) Span() pos.Span { return s.Sp }
func (*IndexSuffix) suffixNode()      {}

// VariableNode is a `$name` reference with zero or more suffixes, in the
// order they appeared in source.
type VariableNode struct {
	Name     string
	Suffixes []Suffix
	Sp       pos.Span
}

func (n *VariableNode) Span() pos.Span { return n.Sp }
func (*VariableNode) exprNode()        {}

// ConstantNode is a `#name` reference.
type ConstantNode struct {
	Name string
	Sp   pos.Span
}

func (n *ConstantNode) Span() pos.Span { return n.Sp }
func (*ConstantNode) exprNode()        {}

// CallNode is a function call with eagerly-ordered arguments.
type CallNode struct {
	Name string
	Args []Expr
	Sp   pos.Span
}

func (n *CallNode) Span() pos.Span { return n.Sp }
func (*CallNode) exprNode()        {}

// UnaryOp is the operator of a UnaryNode.
type UnaryOp int

const (
	UnaryPlus UnaryOp = iota
	UnaryMinus
)

// UnaryNode is a unary `+` or `-` applied to an expression.
type UnaryNode struct {
	Op      UnaryOp
	Operand Expr
	Sp      pos.Span
}

func (n *UnaryNode) Span() pos.Span { return n.Sp }
func (*UnaryNode) exprNode()        {}

// BinaryOp is the operator of a BinaryNode, shared across every
// precedence level (power, multiplicative, additive, comparison).
type BinaryOp int

const (
	OpPow BinaryOp = iota
	OpMul
	OpDiv
	OpMod
	OpAdd
	OpSub
	OpGE
	OpLE
	OpEQ
	OpNE
	OpGT
	OpLT
)

// BinaryOpFromToken maps a lexer.Kind to the BinaryOp it represents.
// Panics if k is not a binary-operator kind; callers only invoke this
// from the parser after already checking k against the precedence
// table, so this is a programmer-error guard, not a user-facing path.
func BinaryOpFromToken(k lexer.Kind) BinaryOp {
	switch k {
	case lexer.CARET:
		return OpPow
	case lexer.STAR:
		return OpMul
	case lexer.SLASH:
		return OpDiv
	case lexer.PERCENT:
		return OpMod
	case lexer.PLUS:
		return OpAdd
	case lexer.MINUS:
		return OpSub
	case lexer.GE:
		return OpGE
	case lexer.LE:
		return OpLE
	case lexer.EQ:
		return OpEQ
	case lexer.NE:
		return OpNE
	case lexer.GT:
		return OpGT
	case lexer.LT:
		return OpLT
	default:
		panic("ast: not a binary operator token: " + k.String())
	}
}

// BinaryNode is a binary operator node at any precedence level.
type BinaryNode struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
	Sp    pos.Span
}

func (n *BinaryNode) Span() pos.Span { return n.Sp }
func (*BinaryNode) exprNode()        {}

var (
	_ Expr = (*NumberNode)(nil)
	_ Expr = (*VariableNode)(nil)
	_ Expr = (*ConstantNode)(nil)
	_ Expr = (*CallNode)(nil)
	_ Expr = (*UnaryNode)(nil)
	_ Expr = (*BinaryNode)(nil)

	_ Suffix = (*UnitSuffix)(nil)
	_ Suffix = (*IndexSuffix)(nil)
)
