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

package lexer

import (
	"fmt"
	"unicode/utf8"

	"github.com/openformula/formulacore/pos"
)

// runeReader is a minimal byte-slice rune scanner with position tracking,
// the same shape as protocompile's parser.runeReader but trimmed to what
// a flat arithmetic grammar needs: no comment/whitespace accounting, no
// mark/restore methods (the only backtracking, in scanNumber, resets pos
// directly over at most two runes).
type runeReader struct {
	data    []byte
	pos     int
	tracker *pos.Tracker
}

func newRuneReader(src string) *runeReader {
	return &runeReader{data: []byte(src), tracker: pos.NewTracker()}
}

func (rr *runeReader) offset() int { return rr.pos }

func (rr *runeReader) peek() (rune, int) {
	if rr.pos >= len(rr.data) {
		return 0, 0
	}
	r, sz := utf8.DecodeRune(rr.data[rr.pos:])
	return r, sz
}

func (rr *runeReader) advance() (rune, bool) {
	r, sz := rr.peek()
	if sz == 0 {
		return 0, false
	}
	rr.pos += sz
	if r == '\n' {
		rr.tracker.MarkLineStart(rr.pos)
	}
	return r, true
}

// Lexer scans a formula source string into Tokens on demand.
type Lexer struct {
	rr  *runeReader
	src string
}

// New creates a Lexer over the given formula source.
func New(src string) *Lexer {
	return &Lexer{rr: newRuneReader(src), src: src}
}

// Error is a lexical error: an unrecognized character at a position.
type Error struct {
	Pos pos.Position
	Ch  rune
}

func (e *Error) Error() string {
	return fmt.Sprintf("unexpected character %q at %s", e.Ch, e.Pos)
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentCont(r rune) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

// Next returns the next token in the stream, or an *Error for an
// unrecognized character. The final token returned (before any further
// call returns EOF again) has Kind == EOF.
func (l *Lexer) Next() (Token, error) {
	for {
		r, sz := l.rr.peek()
		if sz == 0 {
			return Token{Kind: EOF, Pos: l.rr.tracker.Resolve(l.rr.offset())}, nil
		}
		if isSpace(r) {
			l.rr.advance()
			continue
		}
		break
	}

	start := l.rr.offset()
	startPos := l.rr.tracker.Resolve(start)
	r, _ := l.rr.peek()

	switch {
	case isDigit(r):
		return l.scanNumber(start, startPos)
	case isIdentStart(r):
		return l.scanIdent(start, startPos)
	}

	single := func(k Kind) (Token, error) {
		l.rr.advance()
		return Token{Kind: k, Text: string(r), Pos: startPos}, nil
	}

	switch r {
	case '+':
		return single(PLUS)
	case '-':
		return single(MINUS)
	case '*':
		return single(STAR)
	case '/':
		return single(SLASH)
	case '%':
		return single(PERCENT)
	case '^':
		return single(CARET)
	case '(':
		return single(LPAREN)
	case ')':
		return single(RPAREN)
	case '[':
		return single(LBRACKET)
	case ']':
		return single(RBRACKET)
	case ',':
		return single(COMMA)
	case '.':
		return single(DOT)
	case '$':
		return single(DOLLAR)
	case '#':
		return single(HASH)
	case '>':
		l.rr.advance()
		if n, _ := l.rr.peek(); n == '=' {
			l.rr.advance()
			return Token{Kind: GE, Text: ">=", Pos: startPos}, nil
		}
		return Token{Kind: GT, Text: ">", Pos: startPos}, nil
	case '<':
		l.rr.advance()
		if n, _ := l.rr.peek(); n == '=' {
			l.rr.advance()
			return Token{Kind: LE, Text: "<=", Pos: startPos}, nil
		}
		return Token{Kind: LT, Text: "<", Pos: startPos}, nil
	case '=':
		l.rr.advance()
		if n, _ := l.rr.peek(); n == '=' {
			l.rr.advance()
			return Token{Kind: EQ, Text: "==", Pos: startPos}, nil
		}
		return Token{}, &Error{Pos: startPos, Ch: r}
	case '!':
		l.rr.advance()
		if n, _ := l.rr.peek(); n == '=' {
			l.rr.advance()
			return Token{Kind: NE, Text: "!=", Pos: startPos}, nil
		}
		return Token{}, &Error{Pos: startPos, Ch: r}
	}

	l.rr.advance()
	return Token{}, &Error{Pos: startPos, Ch: r}
}

func (l *Lexer) scanNumber(start int, startPos pos.Position) (Token, error) {
	for {
		r, sz := l.rr.peek()
		if sz == 0 || !isDigit(r) {
			break
		}
		l.rr.advance()
	}
	if r, _ := l.rr.peek(); r == '.' {
		// Only consume the dot as a decimal point if followed by a digit;
		// otherwise it belongs to the caller as a unit-suffix separator
		// (e.g. "$d.km" must not be lexed as "$d" "." "km" being eaten
		// into a malformed number when d has no digits before the dot —
		// this branch only fires once digits have already been seen, so
		// that ambiguity does not arise here).
		save := l.rr.pos
		l.rr.advance()
		if n, _ := l.rr.peek(); isDigit(n) {
			for {
				r, sz := l.rr.peek()
				if sz == 0 || !isDigit(r) {
					break
				}
				l.rr.advance()
			}
		} else {
			l.rr.pos = save
		}
	}
	if r, _ := l.rr.peek(); r == 'e' || r == 'E' {
		save := l.rr.pos
		l.rr.advance()
		if n, _ := l.rr.peek(); n == '+' || n == '-' {
			l.rr.advance()
		}
		if n, _ := l.rr.peek(); isDigit(n) {
			for {
				r, sz := l.rr.peek()
				if sz == 0 || !isDigit(r) {
					break
				}
				l.rr.advance()
			}
		} else {
			l.rr.pos = save
		}
	}
	text := string(l.rr.data[start:l.rr.pos])
	return Token{Kind: NUMBER, Text: text, Pos: startPos}, nil
}

func (l *Lexer) scanIdent(start int, startPos pos.Position) (Token, error) {
	for {
		r, sz := l.rr.peek()
		if sz == 0 || !isIdentCont(r) {
			break
		}
		l.rr.advance()
	}
	text := string(l.rr.data[start:l.rr.pos])
	return Token{Kind: IDENT, Text: text, Pos: startPos}, nil
}
