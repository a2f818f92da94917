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

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func TestValidateSimpleArithmetic(t *testing.T) {
	o := New(nil)
	resp := o.Validate(Request{Formula: "2 + 2"})
	require.True(t, resp.IsValid)
	require.Equal(t, 4.0, *resp.Result)
	require.Equal(t, "2 + 2", *resp.EvaluatedFormula)
	require.Equal(t, "Backend", resp.Source)
}

func TestValidateTemperatureConversionFormula(t *testing.T) {
	o := New(map[string]float64{"conversion_factor": 1.8})
	resp := o.Validate(Request{
		Formula:        "($temperature * #conversion_factor) + 32",
		MeasuredValues: []MeasuredValueInput{{ID: "$temperature", Value: f(25.5)}},
	})
	require.True(t, resp.IsValid)
	require.InDelta(t, 77.9, *resp.Result, 1e-9)
}

func TestValidateUnitSuffixConversion(t *testing.T) {
	o := New(nil)
	resp := o.Validate(Request{
		Formula:        "$d.km",
		MeasuredValues: []MeasuredValueInput{{ID: "$d", Value: f(1000), Unit: "meter"}},
	})
	require.True(t, resp.IsValid)
	require.InDelta(t, 1.0, *resp.Result, 1e-12)
}

func TestValidateUnitSuffixWithoutDeclaredUnit(t *testing.T) {
	o := New(nil)
	resp := o.Validate(Request{
		Formula:        "$d.km",
		MeasuredValues: []MeasuredValueInput{{ID: "$d", Value: f(1000)}},
	})
	require.False(t, resp.IsValid)
	require.Equal(t, "Variable 'd' has no unit defined but is used with a unit suffix.", *resp.Error)
}

func TestValidateVectorIndexSum(t *testing.T) {
	o := New(nil)
	resp := o.Validate(Request{
		Formula:        "$temps[1] + $temps[2]",
		MeasuredValues: []MeasuredValueInput{{ID: "$temps", Values: []float64{10, 20, 30}}},
	})
	require.True(t, resp.IsValid)
	require.Equal(t, 50.0, *resp.Result)
}

func TestValidateMixedIndexUseFails(t *testing.T) {
	o := New(nil)
	resp := o.Validate(Request{
		Formula:        "$a + $a[0]",
		MeasuredValues: []MeasuredValueInput{{ID: "$a", Value: f(5)}},
	})
	require.False(t, resp.IsValid)
	require.Equal(t, "Variable 'a' is scalar but is used with an index.", *resp.Error)
}

func TestValidateIfFunction(t *testing.T) {
	o := New(map[string]float64{"max": 100})
	resp := o.Validate(Request{
		Formula:        "if($t > #max, 1, 0)",
		MeasuredValues: []MeasuredValueInput{{ID: "$t", Value: f(50)}},
	})
	require.True(t, resp.IsValid)
	require.Equal(t, 0.0, *resp.Result)
}

func TestValidateSyntaxErrorReferencesEOF(t *testing.T) {
	o := New(nil)
	resp := o.Validate(Request{Formula: "5 + "})
	require.False(t, resp.IsValid)
	require.Contains(t, *resp.Error, "Unexpected end of formula")
}

func TestValidateSqrt(t *testing.T) {
	o := New(nil)
	resp := o.Validate(Request{Formula: "sqrt(16)"})
	require.True(t, resp.IsValid)
	require.Equal(t, 4.0, *resp.Result)
}

func TestValidateDivisionByZero(t *testing.T) {
	o := New(nil)
	resp := o.Validate(Request{Formula: "1 / 0"})
	require.False(t, resp.IsValid)
	require.Contains(t, *resp.Error, "infinity")
}

func TestValidateEmptyFormula(t *testing.T) {
	o := New(nil)
	resp := o.Validate(Request{Formula: "   "})
	require.False(t, resp.IsValid)
	require.Equal(t, "Formula cannot be empty", *resp.Error)
}

func TestValidateDuplicateVariable(t *testing.T) {
	o := New(nil)
	resp := o.Validate(Request{
		Formula: "$a + 1",
		MeasuredValues: []MeasuredValueInput{
			{ID: "$a", Value: f(1)},
			{ID: "a", Value: f(2)},
		},
	})
	require.False(t, resp.IsValid)
	require.Contains(t, *resp.Error, "Duplicate variable")
}

func TestValidateScalarAndVectorBothSetIsInvalid(t *testing.T) {
	o := New(nil)
	resp := o.Validate(Request{
		Formula:        "$a",
		MeasuredValues: []MeasuredValueInput{{ID: "$a", Value: f(1), Values: []float64{1, 2}}},
	})
	require.False(t, resp.IsValid)
}

func TestValidateEmptyVectorTreatedAsAbsent(t *testing.T) {
	o := New(nil)
	resp := o.Validate(Request{
		Formula:        "$a",
		MeasuredValues: []MeasuredValueInput{{ID: "$a", Values: []float64{}}},
	})
	require.False(t, resp.IsValid)
	require.Contains(t, *resp.Error, "exactly one of")
}

func TestValidateUndefinedVariable(t *testing.T) {
	o := New(nil)
	resp := o.Validate(Request{Formula: "$missing + 1"})
	require.False(t, resp.IsValid)
	require.Equal(t, "Undefined variable: $missing", *resp.Error)
}

func TestValidateUndefinedConstant(t *testing.T) {
	o := New(nil)
	resp := o.Validate(Request{Formula: "#missing + 1"})
	require.False(t, resp.IsValid)
	require.Equal(t, "Undefined constant: #missing", *resp.Error)
}

func TestValidateRequestOverridesPredefinedConstant(t *testing.T) {
	o := New(map[string]float64{"pi": 3.0})
	resp := o.Validate(Request{
		Formula:   "#pi",
		Constants: []ConstantInput{{ID: "#pi", Value: 3.14159}},
	})
	require.True(t, resp.IsValid)
	require.Equal(t, 3.14159, *resp.Result)
}

func TestValidateOrderIndependenceOfInputs(t *testing.T) {
	o := New(nil)
	req1 := Request{
		Formula: "$a + $b",
		MeasuredValues: []MeasuredValueInput{
			{ID: "$a", Value: f(1)},
			{ID: "$b", Value: f(2)},
		},
	}
	req2 := Request{
		Formula: "$a + $b",
		MeasuredValues: []MeasuredValueInput{
			{ID: "$b", Value: f(2)},
			{ID: "$a", Value: f(1)},
		},
	}
	resp1 := o.Validate(req1)
	resp2 := o.Validate(req2)
	require.Equal(t, *resp1.Result, *resp2.Result)
}

func TestValidateFormulaTooLarge(t *testing.T) {
	o := New(nil)
	resp := o.Validate(Request{Formula: strings.Repeat("1+", 6000) + "1"})
	require.False(t, resp.IsValid)
	require.Equal(t, "Formula too large", *resp.Error)
}

func TestValidateFormulaTooDeep(t *testing.T) {
	o := New(nil)
	resp := o.Validate(Request{Formula: strings.Repeat("-", 300) + "1"})
	require.False(t, resp.IsValid)
	require.Equal(t, "Formula too deep", *resp.Error)
}
