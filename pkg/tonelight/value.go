// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package tonelight

import (
	"encoding/json"
	"math"
	"strconv"
)

// Kind identifies which member of the Value union is set
type Kind uint8

const (
	KindString Kind = iota
	KindNumber
	KindBool
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	default:
		return "string"
	}
}

// Value is a telemetry leaf: exactly one of bool, number or string
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
}

// Bool creates a boolean value
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number creates a numeric value
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// String creates a string value
func String(s string) Value { return Value{kind: KindString, s: s} }

// ParseValue coerces a raw wire value.
// Precedence: the literals "true"/"false", then a decimal number, then the
// raw text as a string.
func ParseValue(raw string) Value {
	switch raw {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}
	if !isDecimal(raw) {
		return String(raw)
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
		return Number(n)
	}
	return String(raw)
}

// isDecimal rejects the spellings ParseFloat accepts beyond plain decimal
// notation: inf, infinity, nan, hex floats and digit separators
func isDecimal(raw string) bool {
	if raw == "" {
		return false
	}
	for i := 0; i < len(raw); i++ {
		switch c := raw[i]; {
		case c >= '0' && c <= '9', c == '.', c == '-', c == '+', c == 'e', c == 'E':
		default:
			return false
		}
	}
	return true
}

// Kind returns the union member that is set
func (v Value) Kind() Kind {
	return v.kind
}

// AsBool returns the boolean and whether the value is a bool
func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// AsNumber returns the number and whether the value is numeric
func (v Value) AsNumber() (float64, bool) {
	return v.n, v.kind == KindNumber
}

// AsString returns the string and whether the value is a string
func (v Value) AsString() (string, bool) {
	return v.s, v.kind == KindString
}

// String renders the value the way the firmware would print it
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return strconv.FormatFloat(v.n, 'f', -1, 64)
	default:
		return v.s
	}
}

// Equal reports whether two values have the same kind and content
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.b == o.b
	case KindNumber:
		return v.n == o.n
	default:
		return v.s == o.s
	}
}

// MarshalJSON encodes the value as a native JSON scalar
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindBool:
		return json.Marshal(v.b)
	case KindNumber:
		if math.IsInf(v.n, 0) {
			return json.Marshal(v.String())
		}
		return json.Marshal(v.n)
	default:
		return json.Marshal(v.s)
	}
}
