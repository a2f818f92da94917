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

// Package parser implements the recursive-descent parser of spec §4.2:
//
//	formula  := expr EOF
//	expr     := cmp
//	cmp      := add ( (>= | <= | == | != | > | <) add )*      -- left-assoc
//	add      := mul ( (+ | -) mul )*                          -- left-assoc
//	mul      := pow ( (* | / | %) pow )*                      -- left-assoc
//	pow      := unary ( ^ unary )*                            -- left-assoc
//	unary    := + unary | - unary | primary
//	primary  := NUMBER
//	          | '$' IDENT suffix*
//	          | '#' IDENT
//	          | IDENT '(' (expr (',' expr)*)? ')'
//	          | '(' expr ')'
//	suffix   := '.' IDENT        -- unit tag
//	          | '[' expr ']'     -- index
//
// On the first unrecoverable syntax error, Parse returns that error and no
// partial tree; subsequent errors are never reported.
package parser

import (
	"strconv"

	"github.com/openformula/formulacore/ast"
	"github.com/openformula/formulacore/lexer"
	"github.com/openformula/formulacore/pos"
	"github.com/openformula/formulacore/reporter"
)

// Parser consumes a token stream and produces an ast.Expr.
type Parser struct {
	lex *lexer.Lexer
	cur lexer.Token
}

// New creates a Parser over the given formula source.
func New(src string) *Parser {
	return &Parser{lex: lexer.New(src)}
}

// Parse parses src as a complete formula (expr EOF) and returns its
// expression tree, or the first syntax error encountered.
func Parse(src string) (ast.Expr, error) {
	p := New(src)
	if err := p.advance(); err != nil {
		return nil, p.lexError(err)
	}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.cur.Kind != lexer.EOF {
		return nil, p.unexpectedToken()
	}
	return e, nil
}

func (p *Parser) lexError(err error) reporter.ErrorWithPos {
	if lexErr, ok := err.(*lexer.Error); ok {
		return reporter.Errorf(lexErr.Pos, "Syntax error near '%s' at %s", string(lexErr.Ch), lexErr.Pos)
	}
	return reporter.Errorf(pos.Position{Line: 1, Col: 1}, "%s", err.Error())
}

func (p *Parser) advance() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

func (p *Parser) syntaxErrorHere() reporter.ErrorWithPos {
	if p.cur.Kind == lexer.EOF {
		return reporter.Errorf(p.cur.Pos, "Unexpected end of formula at %s", p.cur.Pos)
	}
	return reporter.Errorf(p.cur.Pos, "Syntax error near '%s' at %s", p.cur.Text, p.cur.Pos)
}

func (p *Parser) unexpectedToken() reporter.ErrorWithPos {
	if p.cur.Kind == lexer.EOF {
		return reporter.Errorf(p.cur.Pos, "Unexpected end of formula at %s", p.cur.Pos)
	}
	return reporter.Errorf(p.cur.Pos, "Unexpected token: '%s' at %s", p.cur.Text, p.cur.Pos)
}

// expect consumes the current token if it has kind k, returning that
// token; otherwise it returns an "Unexpected token"/"Unexpected end"
// error without advancing.
func (p *Parser) expect(k lexer.Kind) (lexer.Token, error) {
	if p.cur.Kind != k {
		return lexer.Token{}, p.unexpectedToken()
	}
	tok := p.cur
	if err := p.advance(); err != nil {
		return lexer.Token{}, p.lexError(err)
	}
	return tok, nil
}

func (p *Parser) parseExpr() (ast.Expr, error) {
	return p.parseCmp()
}

func (p *Parser) parseCmp() (ast.Expr, error) {
	left, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	for isCmpOp(p.cur.Kind) {
		opTok := p.cur
		if err := p.advance(); err != nil {
			return nil, p.lexError(err)
		}
		right, err := p.parseAdd()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryNode{
			Op:    ast.BinaryOpFromToken(opTok.Kind),
			Left:  left,
			Right: right,
			Sp:    pos.Span{Start: left.Span().Start, End: right.Span().End},
		}
	}
	return left, nil
}

func (p *Parser) parseAdd() (ast.Expr, error) {
	left, err := p.parseMul()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == lexer.PLUS || p.cur.Kind == lexer.MINUS {
		opTok := p.cur
		if err := p.advance(); err != nil {
			return nil, p.lexError(err)
		}
		right, err := p.parseMul()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryNode{
			Op:    ast.BinaryOpFromToken(opTok.Kind),
			Left:  left,
			Right: right,
			Sp:    pos.Span{Start: left.Span().Start, End: right.Span().End},
		}
	}
	return left, nil
}

func (p *Parser) parseMul() (ast.Expr, error) {
	left, err := p.parsePow()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == lexer.STAR || p.cur.Kind == lexer.SLASH || p.cur.Kind == lexer.PERCENT {
		opTok := p.cur
		if err := p.advance(); err != nil {
			return nil, p.lexError(err)
		}
		right, err := p.parsePow()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryNode{
			Op:    ast.BinaryOpFromToken(opTok.Kind),
			Left:  left,
			Right: right,
			Sp:    pos.Span{Start: left.Span().Start, End: right.Span().End},
		}
	}
	return left, nil
}

// parsePow implements the documented left-associative power operator
// (spec §4.2/§9): 2^3^2 parses as (2^3)^2, not the right-associative
// convention most math notations use.
func (p *Parser) parsePow() (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == lexer.CARET {
		if err := p.advance(); err != nil {
			return nil, p.lexError(err)
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryNode{
			Op:    ast.OpPow,
			Left:  left,
			Right: right,
			Sp:    pos.Span{Start: left.Span().Start, End: right.Span().End},
		}
	}
	return left, nil
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	switch p.cur.Kind {
	case lexer.PLUS, lexer.MINUS:
		opTok := p.cur
		if err := p.advance(); err != nil {
			return nil, p.lexError(err)
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		op := ast.UnaryPlus
		if opTok.Kind == lexer.MINUS {
			op = ast.UnaryMinus
		}
		return &ast.UnaryNode{
			Op:      op,
			Operand: operand,
			Sp:      pos.Span{Start: opTok.Pos, End: operand.Span().End},
		}, nil
	default:
		return p.parsePrimary()
	}
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	switch p.cur.Kind {
	case lexer.NUMBER:
		tok := p.cur
		if err := p.advance(); err != nil {
			return nil, p.lexError(err)
		}
		v, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return nil, reporter.Errorf(tok.Pos, "Syntax error near '%s' at %s", tok.Text, tok.Pos)
		}
		return &ast.NumberNode{Text: tok.Text, Value: v, Sp: pos.Span{Start: tok.Pos, End: tok.Pos}}, nil

	case lexer.DOLLAR:
		return p.parseVariable()

	case lexer.HASH:
		startTok := p.cur
		if err := p.advance(); err != nil {
			return nil, p.lexError(err)
		}
		nameTok, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
		return &ast.ConstantNode{Name: nameTok.Text, Sp: pos.Span{Start: startTok.Pos, End: nameTok.Pos}}, nil

	case lexer.IDENT:
		return p.parseCallOrBareIdent()

	case lexer.LPAREN:
		if err := p.advance(); err != nil {
			return nil, p.lexError(err)
		}
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return inner, nil

	default:
		return nil, p.syntaxErrorHere()
	}
}

func (p *Parser) parseVariable() (ast.Expr, error) {
	startTok := p.cur
	if err := p.advance(); err != nil {
		return nil, p.lexError(err)
	}
	nameTok, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	v := &ast.VariableNode{Name: nameTok.Text, Sp: pos.Span{Start: startTok.Pos, End: nameTok.Pos}}
	for {
		switch p.cur.Kind {
		case lexer.DOT:
			dotTok := p.cur
			if err := p.advance(); err != nil {
				return nil, p.lexError(err)
			}
			unitTok, err := p.expect(lexer.IDENT)
			if err != nil {
				return nil, err
			}
			v.Suffixes = append(v.Suffixes, &ast.UnitSuffix{
				Name: unitTok.Text,
				Sp:   pos.Span{Start: dotTok.Pos, End: unitTok.Pos},
			})
			v.Sp.End = unitTok.Pos
		case lexer.LBRACKET:
			openTok := p.cur
			if err := p.advance(); err != nil {
				return nil, p.lexError(err)
			}
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			closeTok, err := p.expect(lexer.RBRACKET)
			if err != nil {
				return nil, err
			}
			v.Suffixes = append(v.Suffixes, &ast.IndexSuffix{
				Index: idx,
				Sp:    pos.Span{Start: openTok.Pos, End: closeTok.Pos},
			})
			v.Sp.End = closeTok.Pos
		default:
			return v, nil
		}
	}
}

func (p *Parser) parseCallOrBareIdent() (ast.Expr, error) {
	nameTok := p.cur
	if err := p.advance(); err != nil {
		return nil, p.lexError(err)
	}
	if p.cur.Kind != lexer.LPAREN {
		// A bare identifier is never a valid primary on its own in this
		// grammar (only "IDENT (" function calls are) — report it the
		// same way an unrecognized primary token would be.
		return nil, reporter.Errorf(nameTok.Pos, "Syntax error near '%s' at %s", nameTok.Text, nameTok.Pos)
	}
	if err := p.advance(); err != nil {
		return nil, p.lexError(err)
	}
	var args []ast.Expr
	if p.cur.Kind != lexer.RPAREN {
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.cur.Kind != lexer.COMMA {
				break
			}
			if err := p.advance(); err != nil {
				return nil, p.lexError(err)
			}
		}
	}
	closeTok, err := p.expect(lexer.RPAREN)
	if err != nil {
		return nil, err
	}
	return &ast.CallNode{Name: nameTok.Text, Args: args, Sp: pos.Span{Start: nameTok.Pos, End: closeTok.Pos}}, nil
}

func isCmpOp(k lexer.Kind) bool {
	switch k {
	case lexer.GE, lexer.LE, lexer.EQ, lexer.NE, lexer.GT, lexer.LT:
		return true
	default:
		return false
	}
}
