package table

import (
	"math"
	"strconv"
)

// ValueType defines the storage type of a single cell
type ValueType string

const (
	ValueTypeString  ValueType = "string"
	ValueTypeNumeric ValueType = "numeric"
	ValueTypeBoolean ValueType = "boolean"
	ValueTypeMissing ValueType = "missing"
)

// Value is one typed cell. The zero Value is missing.
type Value struct {
	typ ValueType
	str string
	num float64
	b   bool
}

// NewStringValue creates a string value. Empty strings are missing.
func NewStringValue(s string) Value {
	if s == "" {
		return Missing()
	}
	return Value{typ: ValueTypeString, str: s}
}

// NewNumericValue creates a numeric value. NaN is treated as missing so that
// it never reaches the statistics.
func NewNumericValue(f float64) Value {
	if math.IsNaN(f) {
		return Missing()
	}
	return Value{typ: ValueTypeNumeric, num: f}
}

// NewBooleanValue creates a boolean value
func NewBooleanValue(b bool) Value {
	return Value{typ: ValueTypeBoolean, b: b}
}

// Missing returns the missing value
func Missing() Value {
	return Value{typ: ValueTypeMissing}
}

// Type returns the cell's storage type
func (v Value) Type() ValueType {
	if v.typ == "" {
		return ValueTypeMissing
	}
	return v.typ
}

func (v Value) IsMissing() bool {
	return v.Type() == ValueTypeMissing
}

// Float returns the numeric payload and whether the cell is numeric
func (v Value) Float() (float64, bool) {
	if v.typ != ValueTypeNumeric {
		return 0, false
	}
	return v.num, true
}

// Key identifies the value for distinct counting. The type prefix keeps the
// number 1 and the text "1" apart in mixed columns.
func (v Value) Key() string {
	switch v.Type() {
	case ValueTypeNumeric:
		return "n:" + strconv.FormatFloat(v.num, 'g', -1, 64)
	case ValueTypeBoolean:
		return "b:" + strconv.FormatBool(v.b)
	case ValueTypeString:
		return "s:" + v.str
	default:
		return ""
	}
}

// String renders the cell for labels and reports; missing renders empty
func (v Value) String() string {
	switch v.Type() {
	case ValueTypeNumeric:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case ValueTypeBoolean:
		return strconv.FormatBool(v.b)
	case ValueTypeString:
		return v.str
	default:
		return ""
	}
}

// Interface returns the plain Go value used in serialized chart data:
// float64, string, bool or nil.
func (v Value) Interface() interface{} {
	switch v.Type() {
	case ValueTypeNumeric:
		if math.IsInf(v.num, 0) {
			return nil
		}
		return v.num
	case ValueTypeBoolean:
		return v.b
	case ValueTypeString:
		return v.str
	default:
		return nil
	}
}
