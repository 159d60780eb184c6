// Package units models physical quantities carried by serialized coordinate
// frame records.
//
// It exposes Quantity for value-plus-unit pairs, parsing of textual forms such
// as "695700.0 km", and conversion helpers that normalize lengths to metres
// and angles to radians via gonum unit types.
package units
