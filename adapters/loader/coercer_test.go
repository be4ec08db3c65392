package loader

import (
	"encoding/json"
	"testing"

	"datasight/domain/table"

	"github.com/stretchr/testify/assert"
)

func TestCoercer_ParseNumeric(t *testing.T) {
	c := NewCoercer(DefaultCoercionConfig())
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"42", 42, true},
		{" -3.5 ", -3.5, true},
		{"1e3", 1000, true},
		{"$1,234.50", 1234.5, true},
		{"(250)", -250, true},
		{"1.234,56", 1234.56, true},
		{"1 234,56", 1234.56, true},
		{"1,234", 1234, true},
		{"1,234,567", 1234567, true},
		{"0,75", 0.75, true},
		{"45%", 45, true},
		{"€99", 99, true},
		{"12,34,56", 0, false},
		{"Inf", 0, false},
		{"-infinity", 0, false},
		{"NaN", 0, false},
		{"abc", 0, false},
		{"(-5)", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := c.ParseNumeric(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestCoercer_MissingMarkers(t *testing.T) {
	c := NewCoercer(DefaultCoercionConfig())
	for _, m := range []string{"", "  ", "NA", "n/a", "NULL", "nan", "None", "-"} {
		assert.True(t, c.IsMissing(m), m)
		assert.True(t, c.CoerceString(m).IsMissing(), m)
	}
	assert.False(t, c.IsMissing("0"))
	assert.False(t, c.IsMissing("--"))
}

func TestCoercer_CoerceString(t *testing.T) {
	c := NewCoercer(DefaultCoercionConfig())
	assert.Equal(t, table.ValueTypeNumeric, c.CoerceString("12").Type())
	assert.Equal(t, table.ValueTypeBoolean, c.CoerceString("TRUE").Type())
	assert.Equal(t, table.ValueTypeString, c.CoerceString("yes").Type())
	assert.Equal(t, "Sales", c.CoerceString("  Sales ").String())

	noBools := NewCoercer(CoercionConfig{MissingMarkers: DefaultMissingMarkers})
	assert.Equal(t, table.ValueTypeString, noBools.CoerceString("true").Type())
}

func TestCoercer_CoerceValue(t *testing.T) {
	c := NewCoercer(DefaultCoercionConfig())
	assert.True(t, c.CoerceValue(nil).IsMissing())
	assert.Equal(t, 3.5, c.CoerceValue(json.Number("3.5")).Interface())
	assert.Equal(t, true, c.CoerceValue(true).Interface())
	assert.Equal(t, "42", c.CoerceValue("42").Interface())
	assert.True(t, c.CoerceValue("N/A").IsMissing())
	assert.Equal(t, `{"k":1}`, c.CoerceValue(map[string]interface{}{"k": json.Number("1")}).Interface())
	assert.Equal(t, `[1,"a"]`, c.CoerceValue([]interface{}{json.Number("1"), "a"}).Interface())
}
