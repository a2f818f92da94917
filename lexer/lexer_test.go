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
	"testing"

	"github.com/stretchr/testify/require"
)

func allTokens(t *testing.T, src string) []Token {
	t.Helper()
	l := New(src)
	var toks []Token
	for {
		tok, err := l.Next()
		require.NoError(t, err)
		toks = append(toks, tok)
		if tok.Kind == EOF {
			return toks
		}
	}
}

func TestLexerBasicTokens(t *testing.T) {
	toks := allTokens(t, "2 + 2")
	require.Equal(t, []Kind{NUMBER, PLUS, NUMBER, EOF}, kinds(toks))
	require.Equal(t, "2", toks[0].Text)
	require.Equal(t, 1, toks[0].Pos.Col)
	require.Equal(t, 3, toks[1].Pos.Col)
}

func TestLexerNumberForms(t *testing.T) {
	cases := []string{"1", "1.5", "1e10", "1.5e-3", "1E+2", "0.001"}
	for _, c := range cases {
		toks := allTokens(t, c)
		require.Equal(t, NUMBER, toks[0].Kind, c)
		require.Equal(t, c, toks[0].Text, c)
	}
}

func TestLexerVariableWithSuffixes(t *testing.T) {
	toks := allTokens(t, "$d.km")
	require.Equal(t, []Kind{DOLLAR, IDENT, DOT, IDENT, EOF}, kinds(toks))
}

func TestLexerIndexSuffix(t *testing.T) {
	toks := allTokens(t, "$temps[1]")
	require.Equal(t, []Kind{DOLLAR, IDENT, LBRACKET, NUMBER, RBRACKET, EOF}, kinds(toks))
}

func TestLexerComparisonOperatorsLongestMatch(t *testing.T) {
	toks := allTokens(t, ">= <= == != > <")
	require.Equal(t, []Kind{GE, LE, EQ, NE, GT, LT, EOF}, kinds(toks))
}

func TestLexerConstantToken(t *testing.T) {
	toks := allTokens(t, "#max_value")
	require.Equal(t, []Kind{HASH, IDENT, EOF}, kinds(toks))
}

func TestLexerLineColumnTracking(t *testing.T) {
	toks := allTokens(t, "1 +\n2")
	require.Equal(t, 1, toks[0].Pos.Line)
	require.Equal(t, 2, toks[2].Pos.Line)
	require.Equal(t, 1, toks[2].Pos.Col)
}

func TestLexerUnknownCharacter(t *testing.T) {
	l := New("1 & 2")
	_, err := l.Next()
	require.NoError(t, err)
	_, err = l.Next()
	require.Error(t, err)
	var lexErr *Error
	require.ErrorAs(t, err, &lexErr)
	require.Equal(t, '&', lexErr.Ch)
	require.Equal(t, 3, lexErr.Pos.Col)
}

func kinds(toks []Token) []Kind {
	out := make([]Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}
