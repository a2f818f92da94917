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

package symbols

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openformula/formulacore/parser"
)

func TestAnalyzeRecordsVariablesAndConstants(t *testing.T) {
	e, err := parser.Parse("($temperature * #conversion_factor) + 32")
	require.NoError(t, err)
	u := Analyze(e)
	require.True(t, u.Variables.Contains("temperature"))
	require.True(t, u.Constants.Contains("conversion_factor"))
	require.True(t, u.WithoutIndex.Contains("temperature"))
	require.False(t, u.WithIndex.Contains("temperature"))
	require.False(t, u.WithUnit.Contains("temperature"))
}

func TestAnalyzeRecordsUnitSuffix(t *testing.T) {
	e, err := parser.Parse("$d.km")
	require.NoError(t, err)
	u := Analyze(e)
	require.True(t, u.WithUnit.Contains("d"))
}

func TestAnalyzeRecordsIndexSuffix(t *testing.T) {
	e, err := parser.Parse("$temps[1] + $temps[2]")
	require.NoError(t, err)
	u := Analyze(e)
	require.True(t, u.WithIndex.Contains("temps"))
	require.False(t, u.WithoutIndex.Contains("temps"))
}

func TestAnalyzeRecordsMixedIndexUsage(t *testing.T) {
	e, err := parser.Parse("$a + $a[0]")
	require.NoError(t, err)
	u := Analyze(e)
	require.True(t, u.WithIndex.Contains("a"))
	require.True(t, u.WithoutIndex.Contains("a"))
}

func TestAnalyzeIsCaseInsensitiveAndIdempotent(t *testing.T) {
	e, err := parser.Parse("$Distance + $DISTANCE")
	require.NoError(t, err)
	u1 := Analyze(e)
	u2 := Analyze(e)
	require.Equal(t, 1, u1.Variables.Size())
	require.Equal(t, u1.Variables.Size(), u2.Variables.Size())
}

func TestAnalyzeWalksIndexSubexpressions(t *testing.T) {
	e, err := parser.Parse("$a[$b]")
	require.NoError(t, err)
	u := Analyze(e)
	require.True(t, u.Variables.Contains("a"))
	require.True(t, u.Variables.Contains("b"))
	require.True(t, u.WithIndex.Contains("a"))
	require.True(t, u.WithoutIndex.Contains("b"))
}

func TestAnalyzeDisplayPreservesOriginalCasing(t *testing.T) {
	e, err := parser.Parse("$Distance")
	require.NoError(t, err)
	u := Analyze(e)
	require.Equal(t, "Distance", u.VarDisplay["distance"])
}
