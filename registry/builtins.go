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

package registry

import (
	"math"

	"github.com/openformula/formulacore/reporter"
)

func unary(f func(float64) float64) Func {
	return func(args []float64) (float64, error) {
		return f(args[0]), nil
	}
}

func builtins() []entry {
	var e []entry
	one := Arity{Min: 1, Max: 1}
	two := Arity{Min: 2, Max: 2}
	three := Arity{Min: 3, Max: 3}
	atLeastOne := Arity{Min: 1, Max: -1}
	atLeastTwo := Arity{Min: 2, Max: -1}

	trig := map[string]func(float64) float64{
		"sin": math.Sin, "cos": math.Cos, "tan": math.Tan,
		"asin": math.Asin, "acos": math.Acos, "atan": math.Atan,
		"sinh": math.Sinh, "cosh": math.Cosh, "tanh": math.Tanh,
	}
	for name, f := range trig {
		e = append(e, entry{name: name, arity: one, fn: unary(f)})
	}

	math1 := map[string]func(float64) float64{
		"ln": math.Log, "log10": math.Log10, "log2": math.Log2,
		"exp": math.Exp, "sqrt": math.Sqrt, "abs": math.Abs,
		"floor": math.Floor, "ceil": math.Ceil,
	}
	for name, f := range math1 {
		e = append(e, entry{name: name, arity: one, fn: unary(f)})
	}

	signFn := func(args []float64) (float64, error) {
		x := args[0]
		switch {
		case x > 0:
			return 1, nil
		case x < 0:
			return -1, nil
		default:
			return 0, nil
		}
	}
	e = append(e, entry{name: "sign", arity: one, fn: signFn})
	e = append(e, entry{name: "sgn", arity: one, fn: signFn})

	e = append(e, entry{name: "round", arity: Arity{Min: 1, Max: 2}, fn: roundFn})
	e = append(e, entry{name: "pow", arity: two, fn: func(args []float64) (float64, error) {
		return math.Pow(args[0], args[1]), nil
	}})
	e = append(e, entry{name: "mod", arity: two, fn: func(args []float64) (float64, error) {
		return ieeeMod(args[0], args[1]), nil
	}})

	variadic := map[string]Func{
		"min":  minFn,
		"max":  maxFn,
		"sum":  sumFn,
		"prod": prodFn,
		"mean": meanFn,
		"avg":  meanFn,
	}
	for name, fn := range variadic {
		e = append(e, entry{name: name, arity: atLeastOne, fn: fn})
	}

	e = append(e, entry{name: "var", arity: atLeastTwo, fn: varFn})
	e = append(e, entry{name: "std", arity: atLeastTwo, fn: stdFn})

	e = append(e, entry{name: "if", arity: three, fn: func(args []float64) (float64, error) {
		const ifEpsilon = 1e-9
		if math.Abs(args[0]) > ifEpsilon {
			return args[1], nil
		}
		return args[2], nil
	}})

	e = append(e, entry{name: "fact", arity: one, fn: factFn})
	e = append(e, entry{name: "gcd", arity: two, fn: func(args []float64) (float64, error) {
		a, b := int64(math.Trunc(args[0])), int64(math.Trunc(args[1]))
		return float64(gcd(a, b)), nil
	}})
	e = append(e, entry{name: "lcm", arity: two, fn: func(args []float64) (float64, error) {
		a, b := int64(math.Trunc(args[0])), int64(math.Trunc(args[1]))
		g := gcd(a, b)
		if g == 0 {
			return 0, nil
		}
		return math.Abs(float64(a / g * b)), nil
	}})

	return e
}

// ieeeMod returns the remainder of x/y with the same sign as the
// dividend, matching C's fmod (and spec §4.3's "mod" contract) rather
// than Go's math.Remainder, which rounds to nearest.
func ieeeMod(x, y float64) float64 {
	return math.Mod(x, y)
}

func roundFn(args []float64) (float64, error) {
	x := args[0]
	digits := 0
	if len(args) == 2 {
		digits = int(math.Trunc(args[1]))
	}
	scale := math.Pow(10, float64(digits))
	return roundHalfAwayFromZero(x*scale) / scale, nil
}

func roundHalfAwayFromZero(x float64) float64 {
	if x >= 0 {
		return math.Floor(x + 0.5)
	}
	return math.Ceil(x - 0.5)
}

func minFn(args []float64) (float64, error) {
	m := args[0]
	for _, v := range args[1:] {
		if v < m {
			m = v
		}
	}
	return m, nil
}

func maxFn(args []float64) (float64, error) {
	m := args[0]
	for _, v := range args[1:] {
		if v > m {
			m = v
		}
	}
	return m, nil
}

func sumFn(args []float64) (float64, error) {
	var s float64
	for _, v := range args {
		s += v
	}
	return s, nil
}

func prodFn(args []float64) (float64, error) {
	p := 1.0
	for _, v := range args {
		p *= v
	}
	return p, nil
}

func meanFn(args []float64) (float64, error) {
	s, _ := sumFn(args)
	return s / float64(len(args)), nil
}

func varFn(args []float64) (float64, error) {
	m, _ := meanFn(args)
	var s float64
	for _, v := range args {
		d := v - m
		s += d * d
	}
	return s / float64(len(args)), nil
}

func stdFn(args []float64) (float64, error) {
	v, _ := varFn(args)
	return math.Sqrt(v), nil
}

func factFn(args []float64) (float64, error) {
	n := int64(roundHalfAwayFromZero(args[0]))
	if n < 0 {
		return 0, reporter.Evalf("fact() is undefined for negative numbers")
	}
	result := 1.0
	for i := int64(2); i <= n; i++ {
		result *= float64(i)
	}
	return result, nil
}

func gcd(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
