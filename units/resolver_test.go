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

package units

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTryConvertMeterToKilometer(t *testing.T) {
	r := New()
	v, err := r.TryConvert(1000, "meter", "km")
	require.NoError(t, err)
	require.InDelta(t, 1.0, v, 1e-12)
}

func TestTryConvertCelsiusToFahrenheit(t *testing.T) {
	r := New()
	v, err := r.TryConvert(0, "celsius", "fahrenheit")
	require.NoError(t, err)
	require.InDelta(t, 32.0, v, 1e-9)
}

func TestTryConvertUnknownAlias(t *testing.T) {
	r := New()
	_, err := r.TryConvert(1, "bogus", "meter")
	require.Error(t, err)
}

func TestTryConvertIncompatibleCategories(t *testing.T) {
	r := New()
	_, err := r.TryConvert(1, "meter", "kilogram")
	require.Error(t, err)
}

func TestTryConvertSelfConversionIsIdentityEvenForUnknownAlias(t *testing.T) {
	r := New()
	v, err := r.TryConvert(42, "not_a_real_unit", "not_a_real_unit")
	require.NoError(t, err)
	require.Equal(t, 42.0, v)
}

func TestTryConvertSelfConversionIsExactForKnownAlias(t *testing.T) {
	r := New()
	for _, alias := range []string{"meter", "km", "celsius", "psi"} {
		v, err := r.TryConvert(7.25, alias, alias)
		require.NoError(t, err)
		require.Equal(t, 7.25, v, alias)
	}
}

func TestTryConvertRoundTripStability(t *testing.T) {
	r := New()
	v := 123.456
	mid, err := r.TryConvert(v, "mile", "km")
	require.NoError(t, err)
	back, err := r.TryConvert(mid, "km", "mile")
	require.NoError(t, err)
	require.InDelta(t, v, back, 1e-9*v)
}

func TestTryConvertDifferingOnlyInCaseSucceeds(t *testing.T) {
	r := New()
	v, err := r.TryConvert(1, "METER", "Kilometer")
	require.NoError(t, err)
	require.InDelta(t, 0.001, v, 1e-12)
}
