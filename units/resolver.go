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

// Package units implements the Unit Resolver of spec §4.4: an immutable
// catalog of unit aliases grouped by physical quantity, built once at
// process start, exposing a single conversion operation safe for
// concurrent read-only use.
package units

import (
	"strings"

	art "github.com/kralicky/go-adaptive-radix-tree"

	"github.com/openformula/formulacore/reporter"
)

// Category groups unit aliases among which conversion is defined.
type Category string

const (
	Length             Category = "length"
	Mass               Category = "mass"
	Duration           Category = "duration"
	Temperature        Category = "temperature"
	ElectricCurrent    Category = "electric-current"
	ElectricPotential  Category = "electric-potential"
	ElectricResistance Category = "electric-resistance"
	Volume             Category = "volume"
	Pressure           Category = "pressure"
	Force              Category = "force"
	Energy             Category = "energy"
	Power              Category = "power"
)

// unitRecord is what an alias resolves to: its quantity category and the
// pair of functions converting to/from that category's canonical pivot
// unit. For every category but Temperature these are plain ratios; for
// Temperature they are affine (Celsius/Fahrenheit/Kelvin).
type unitRecord struct {
	canonical string
	category  Category
	toBase    func(v float64) float64
	fromBase  func(v float64) float64
}

// Resolver is the immutable unit-alias catalog.
type Resolver struct {
	tree art.Tree
}

// New builds the canonical catalog described in spec §4.4.
func New() *Resolver {
	r := &Resolver{tree: art.New()}
	for alias, rec := range catalog() {
		r.tree.Insert(art.Key(strings.ToLower(alias)), rec)
	}
	return r
}

// Known reports whether alias is a recognized unit (case-insensitive).
func (r *Resolver) Known(alias string) bool {
	_, found := r.tree.Search(art.Key(strings.ToLower(alias)))
	return found
}

// TryConvert converts v from fromAlias to toAlias.
//
// Per spec §4.4: this fails when either alias is unknown or when the two
// resolve to different categories. Identical aliases (textually,
// case-insensitively) always succeed as an identity, even if the alias
// itself is not in the catalog, preserving the "no-op self-conversion"
// escape hatch the surface DSL relies on for unitless passthrough.
func (r *Resolver) TryConvert(v float64, fromAlias, toAlias string) (float64, error) {
	if strings.EqualFold(fromAlias, toAlias) {
		return v, nil
	}
	fromRec, ok := r.tree.Search(art.Key(strings.ToLower(fromAlias)))
	if !ok {
		return 0, reporter.Evalf("unknown unit alias: %s", fromAlias)
	}
	toRec, ok := r.tree.Search(art.Key(strings.ToLower(toAlias)))
	if !ok {
		return 0, reporter.Evalf("unknown unit alias: %s", toAlias)
	}
	from := fromRec.(unitRecord)
	to := toRec.(unitRecord)
	if from.category != to.category {
		return 0, reporter.Evalf("incompatible unit categories: %s and %s", from.category, to.category)
	}
	return to.fromBase(from.toBase(v)), nil
}
