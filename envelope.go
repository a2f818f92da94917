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

// Package formulacore is the Validation Orchestrator of spec §4.7: the
// top-level entry point that composes the lexer, parser, symbol
// analyzer, evaluator, unit resolver, and function registry, and
// produces the request/response envelopes of spec §6.
package formulacore

// MeasuredValueInput is one entry of the request envelope's
// measuredValues array.
type MeasuredValueInput struct {
	ID     string    `json:"id"`
	Name   string    `json:"name,omitempty"`
	Value  *float64  `json:"value,omitempty"`
	Values []float64 `json:"values,omitempty"`
	Unit   string    `json:"unit,omitempty"`
}

// ConstantInput is one entry of the request envelope's constants array.
type ConstantInput struct {
	ID    string  `json:"id"`
	Name  string  `json:"name,omitempty"`
	Value float64 `json:"value"`
}

// Request is the request envelope consumed by the orchestrator (spec §6).
type Request struct {
	Formula        string               `json:"formula"`
	MeasuredValues []MeasuredValueInput `json:"measuredValues"`
	Constants      []ConstantInput      `json:"constants"`
}

// Response is the response envelope produced by the orchestrator
// (spec §6 / §3's "Validation result").
type Response struct {
	IsValid          bool     `json:"isValid"`
	Error            *string  `json:"error,omitempty"`
	Result           *float64 `json:"result,omitempty"`
	EvaluatedFormula *string  `json:"evaluatedFormula,omitempty"`
	Source           string   `json:"source"`
}

func failure(msg string) Response {
	return Response{IsValid: false, Error: &msg, Source: "Backend"}
}

func success(result float64, evaluatedFormula string) Response {
	return Response{
		IsValid:          true,
		Result:           &result,
		EvaluatedFormula: &evaluatedFormula,
		Source:           "Backend",
	}
}
