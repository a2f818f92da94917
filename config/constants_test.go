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

package config

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadNormalizesAndCoerces(t *testing.T) {
	m := Load([]RawEntry{
		{ID: "#PI", Name: "pi", Value: "3.14159"},
		{ID: "g", Name: "gravity", Value: 9.81},
	})
	require.Equal(t, 3.14159, m["pi"])
	require.Equal(t, 9.81, m["g"])
}

func TestLoadSkipsEmptyID(t *testing.T) {
	m := Load([]RawEntry{{ID: "", Name: "x", Value: 1.0}})
	require.Empty(t, m)
}

func TestLoadSkipsNonFiniteValue(t *testing.T) {
	m := Load([]RawEntry{
		{ID: "inf", Value: math.Inf(1)},
		{ID: "nan", Value: math.NaN()},
		{ID: "bad", Value: "not-a-number"},
	})
	require.Empty(t, m)
}
