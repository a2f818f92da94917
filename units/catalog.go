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

// ratio registers every alias in aliases as a linear unit of the given
// category, where factor is "how many canonical-base units make up one
// of this unit" (e.g. for length with canonical meter, kilometer has
// factor 1000).
func ratio(into map[string]unitRecord, category Category, canonical string, factor float64, aliases ...string) {
	rec := unitRecord{
		canonical: canonical,
		category:  category,
		toBase:    func(v float64) float64 { return v * factor },
		fromBase:  func(v float64) float64 { return v / factor },
	}
	for _, a := range aliases {
		into[a] = rec
	}
}

func catalog() map[string]unitRecord {
	m := make(map[string]unitRecord)

	// Length — canonical: meter.
	ratio(m, Length, "meter", 0.001, "mm", "millimeter", "millimetre")
	ratio(m, Length, "meter", 0.01, "cm", "centimeter", "centimetre")
	ratio(m, Length, "meter", 1, "m", "meter", "metre")
	ratio(m, Length, "meter", 1000, "km", "kilometer", "kilometre")
	ratio(m, Length, "meter", 0.0254, "in", "inch", "inches")
	ratio(m, Length, "meter", 0.3048, "ft", "foot", "feet")
	ratio(m, Length, "meter", 0.9144, "yd", "yard", "yards")
	ratio(m, Length, "meter", 1609.344, "mi", "mile", "miles")

	// Mass — canonical: kilogram.
	ratio(m, Mass, "kilogram", 0.000001, "mg", "milligram")
	ratio(m, Mass, "kilogram", 0.001, "g", "gram")
	ratio(m, Mass, "kilogram", 1, "kg", "kilogram")
	ratio(m, Mass, "kilogram", 1000, "t", "tonne", "metric_ton")
	ratio(m, Mass, "kilogram", 0.45359237, "lb", "pound", "pounds")
	ratio(m, Mass, "kilogram", 0.028349523125, "oz", "ounce", "ounces")

	// Duration — canonical: second.
	ratio(m, Duration, "second", 0.001, "ms", "millisecond")
	ratio(m, Duration, "second", 1, "s", "sec", "second", "seconds")
	ratio(m, Duration, "second", 60, "min", "minute", "minutes")
	ratio(m, Duration, "second", 3600, "h", "hr", "hour", "hours")
	ratio(m, Duration, "second", 86400, "d", "day", "days")

	// Temperature — canonical: celsius, affine conversions.
	m["c"] = unitRecord{canonical: "celsius", category: Temperature,
		toBase: identity, fromBase: identity}
	m["celsius"] = m["c"]
	m["f"] = unitRecord{canonical: "fahrenheit", category: Temperature,
		toBase:   func(v float64) float64 { return (v - 32) * 5 / 9 },
		fromBase: func(v float64) float64 { return v*9/5 + 32 }}
	m["fahrenheit"] = m["f"]
	m["k"] = unitRecord{canonical: "kelvin", category: Temperature,
		toBase:   func(v float64) float64 { return v - 273.15 },
		fromBase: func(v float64) float64 { return v + 273.15 }}
	m["kelvin"] = m["k"]

	// Electric current — canonical: ampere.
	ratio(m, ElectricCurrent, "ampere", 0.001, "ma", "milliampere")
	ratio(m, ElectricCurrent, "ampere", 1, "a", "amp", "ampere", "amperes")

	// Electric potential — canonical: volt.
	ratio(m, ElectricPotential, "volt", 0.001, "mv", "millivolt")
	ratio(m, ElectricPotential, "volt", 1, "v", "volt", "volts")
	ratio(m, ElectricPotential, "volt", 1000, "kv", "kilovolt")

	// Electric resistance — canonical: ohm.
	ratio(m, ElectricResistance, "ohm", 1, "ohm", "ohms")
	ratio(m, ElectricResistance, "ohm", 1000, "kohm", "kiloohm")

	// Volume — canonical: liter.
	ratio(m, Volume, "liter", 0.001, "ml", "milliliter", "millilitre")
	ratio(m, Volume, "liter", 1, "l", "liter", "litre")
	ratio(m, Volume, "liter", 3.785411784, "gal", "gallon", "gallons")

	// Pressure — canonical: pascal.
	ratio(m, Pressure, "pascal", 1, "pa", "pascal")
	ratio(m, Pressure, "pascal", 1000, "kpa", "kilopascal")
	ratio(m, Pressure, "pascal", 100000, "bar", "bars")
	ratio(m, Pressure, "pascal", 6894.757293168, "psi")

	// Force — canonical: newton.
	ratio(m, Force, "newton", 1, "n", "newton", "newtons")
	ratio(m, Force, "newton", 4.4482216152605, "lbf", "pound_force")

	// Energy — canonical: joule.
	ratio(m, Energy, "joule", 1, "j", "joule", "joules")
	ratio(m, Energy, "joule", 4184, "kcal", "kilocalorie")
	ratio(m, Energy, "joule", 3600000, "kwh", "kilowatt_hour")

	// Power — canonical: watt.
	ratio(m, Power, "watt", 1, "w", "watt", "watts")
	ratio(m, Power, "watt", 1000, "kw", "kilowatt")
	ratio(m, Power, "watt", 745.699872, "hp", "horsepower")

	return m
}

func identity(v float64) float64 { return v }
