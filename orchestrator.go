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
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/openformula/formulacore/eval"
	"github.com/openformula/formulacore/parser"
	"github.com/openformula/formulacore/registry"
	"github.com/openformula/formulacore/symbols"
	"github.com/openformula/formulacore/units"
)

// Orchestrator composes the lexer, parser, symbol analyzer, evaluator,
// function registry, and unit resolver into the single entry point of
// spec §4.7. A *Orchestrator holds only read-only, process-wide shared
// state — the function registry, the unit catalog, and the predefined
// constants table — and is therefore safe for concurrent use by many
// requests at once (spec §5).
type Orchestrator struct {
	Registry   *registry.Registry
	Resolver   *units.Resolver
	Predefined map[string]float64
	Limits     Limits
	Log        *slog.Logger
}

// New builds an Orchestrator over the given predefined-constants table.
// Registry and Resolver are constructed once here; callers should keep
// the returned *Orchestrator for the process lifetime rather than
// rebuilding it per request.
func New(predefined map[string]float64) *Orchestrator {
	if predefined == nil {
		predefined = map[string]float64{}
	}
	return &Orchestrator{
		Registry:   registry.New(),
		Resolver:   units.New(),
		Predefined: predefined,
		Limits:     DefaultLimits,
		Log:        slog.Default(),
	}
}

// Validate runs the full pipeline of spec §4.7 against req and returns
// the response envelope. Validate never returns an error itself — every
// failure, including an unexpected internal one, is reported inside the
// Response per spec §7's catch-all.
func (o *Orchestrator) Validate(req Request) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			o.Log.Warn("formulacore: recovered panic during validation", "panic", r)
			resp = failure(fmt.Sprintf("Validation error: %v", r))
		}
	}()

	trimmed := strings.TrimSpace(req.Formula)
	if trimmed == "" {
		return failure("Formula cannot be empty")
	}
	if len(trimmed) > o.Limits.MaxLength {
		return failure("Formula too large")
	}

	vars, err := o.normalizeMeasuredValues(req.MeasuredValues)
	if err != nil {
		return failure(err.Error())
	}

	e, err := parser.Parse(trimmed)
	if err != nil {
		return failure(err.Error())
	}
	if d := depth(e); d > o.Limits.MaxDepth {
		return failure("Formula too deep")
	}

	usage := symbols.Analyze(e)

	consts := mergeConstants(o.Predefined, req.Constants)

	if msg, ok := checkSemantics(usage, vars, consts); !ok {
		return failure(msg)
	}

	ev := eval.New(vars, consts, o.Registry, o.Resolver)
	result, err := ev.Eval(e)
	if err != nil {
		o.Log.Debug("formulacore: evaluation failed", "formula", trimmed, "error", err)
		return failure(err.Error())
	}

	return success(result, trimmed)
}

// normalizeMeasuredValues implements step 2 of spec §4.7: strip the
// leading '$', fold case, detect duplicates, and enforce the
// scalar-XOR-vector invariant (an empty vector counts as absent, per
// spec §8's boundary behavior).
func (o *Orchestrator) normalizeMeasuredValues(in []MeasuredValueInput) (map[string]eval.MeasuredValue, error) {
	out := make(map[string]eval.MeasuredValue, len(in))
	for _, mv := range in {
		display := mv.Name
		if display == "" {
			display = mv.ID
		}
		name := strings.TrimPrefix(strings.TrimSpace(mv.ID), "$")
		if name == "" {
			name = strings.TrimPrefix(strings.TrimSpace(mv.Name), "$")
		}
		key := strings.ToLower(name)

		if _, dup := out[key]; dup {
			return nil, fmt.Errorf("Duplicate variable: $%s", display)
		}

		hasScalar := mv.Value != nil
		hasVector := len(mv.Values) > 0
		switch {
		case hasScalar && hasVector:
			return nil, fmt.Errorf("Variable '%s' must declare exactly one of a scalar or vector value.", display)
		case hasScalar:
			out[key] = eval.MeasuredValue{Name: display, Scalar: *mv.Value, Unit: mv.Unit}
		case hasVector:
			out[key] = eval.MeasuredValue{Name: display, IsVector: true, Vector: append([]float64(nil), mv.Values...), Unit: mv.Unit}
		default:
			return nil, fmt.Errorf("Variable '%s' must declare exactly one of a scalar or vector value.", display)
		}
	}
	return out, nil
}

// mergeConstants implements the constant-merge half of step 5: request
// overrides win on normalized-identifier collision, resolving spec §9's
// "case collision" open question by normalizing both sides before the
// merge.
func mergeConstants(predefined map[string]float64, overrides []ConstantInput) map[string]float64 {
	out := make(map[string]float64, len(predefined)+len(overrides))
	for k, v := range predefined {
		out[strings.ToLower(k)] = v
	}
	for _, c := range overrides {
		name := strings.TrimPrefix(strings.TrimSpace(c.ID), "#")
		if name == "" {
			name = strings.TrimPrefix(strings.TrimSpace(c.Name), "#")
		}
		out[strings.ToLower(name)] = c.Value
	}
	return out
}

// checkSemantics runs the ordered semantic checks of spec §4.7 step 5,
// stopping at the first failure. Iteration over each Usage set is sorted
// for determinism: sets.Set[T]'s iteration order is explicitly
// undefined, but the orchestrator must report the same first failure
// every time it sees the same formula.
func checkSemantics(usage *symbols.Usage, vars map[string]eval.MeasuredValue, consts map[string]float64) (string, bool) {
	variables := sortedSlice(usage.Variables.ToSlice())

	for _, name := range variables {
		if _, ok := vars[name]; !ok {
			return fmt.Sprintf("Undefined variable: $%s", usage.VarDisplay[name]), false
		}
	}

	for _, name := range variables {
		mv := vars[name]
		if !mv.IsVector && usage.WithIndex.Contains(name) {
			return fmt.Sprintf("Variable '%s' is scalar but is used with an index.", usage.VarDisplay[name]), false
		}
	}

	for _, name := range variables {
		if usage.WithIndex.Contains(name) && usage.WithoutIndex.Contains(name) {
			return fmt.Sprintf("Variable '%s' is used both with and without an index.", usage.VarDisplay[name]), false
		}
	}

	for _, name := range variables {
		mv := vars[name]
		display := usage.VarDisplay[name]
		if mv.IsVector && usage.WithoutIndex.Contains(name) && !usage.WithIndex.Contains(name) {
			return fmt.Sprintf("Variable '%s' is non-scalar. Use an index like '$%s[i]'.", display, display), false
		}
	}

	for _, name := range sortedSlice(usage.Constants.ToSlice()) {
		if _, ok := consts[name]; !ok {
			return fmt.Sprintf("Undefined constant: #%s", usage.ConstDisplay[name]), false
		}
	}

	for _, name := range variables {
		if usage.WithUnit.Contains(name) && vars[name].Unit == "" {
			return fmt.Sprintf("Variable '%s' has no unit defined but is used with a unit suffix.", usage.VarDisplay[name]), false
		}
	}

	return "", true
}

func sortedSlice(s []string) []string {
	sort.Strings(s)
	return s
}
