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

// Package config loads the predefined-constants configuration of spec §6:
// an ordered list of {id, name, value} records read once at process
// start. Invalid entries (empty id, non-finite value) are skipped
// silently, the same way protocompile's options package validates
// configuration entries at load time rather than at every lookup.
package config

import (
	"math"
	"strings"

	"github.com/spf13/cast"
)

// RawEntry is one predefined-constant record as it might arrive from a
// loosely-typed configuration source (YAML, JSON, a database row) before
// validation. Value is accepted as any — a string, a json.Number, an
// int — and coerced with cast.ToFloat64 rather than a hand-rolled type
// switch.
type RawEntry struct {
	ID    string
	Name  string
	Value any
}

// Load validates and normalizes entries into the merged constant table
// keyed by normalized (lower-cased, '#'-stripped) identifier. An entry
// with an empty id (after stripping '#') or a value that does not coerce
// to a finite float64 is skipped, not an error — per spec §6's
// "Invalid entries... are skipped silently at load time."
func Load(entries []RawEntry) map[string]float64 {
	out := make(map[string]float64, len(entries))
	for _, e := range entries {
		id := strings.TrimPrefix(strings.TrimSpace(e.ID), "#")
		if id == "" {
			continue
		}
		v, err := cast.ToFloat64E(e.Value)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out[strings.ToLower(id)] = v
	}
	return out
}
