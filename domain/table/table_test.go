package table

import (
	"math"
	"testing"

	"datasight/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsInvalidShapes(t *testing.T) {
	a := NewColumn("a", []Value{NewNumericValue(1), NewNumericValue(2)})
	short := NewColumn("b", []Value{NewNumericValue(1)})
	dup := NewColumn("a", []Value{NewNumericValue(3), NewNumericValue(4)})

	_, err := New("t", 2, a, short)
	assert.ErrorIs(t, err, core.ErrInvalidTable)

	_, err = New("t", 2, a, dup)
	assert.ErrorIs(t, err, core.ErrInvalidTable)

	_, err = New("t", -1)
	assert.ErrorIs(t, err, core.ErrInvalidTable)
}

func TestNew_ZeroColumnsKeepsRowCount(t *testing.T) {
	tbl, err := New("empty", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, tbl.RowCount())
	assert.Equal(t, 0, tbl.ColumnCount())
	assert.Empty(t, tbl.ColumnNames())
}

func TestInferStorage(t *testing.T) {
	tests := []struct {
		name   string
		values []Value
		want   StorageType
	}{
		{"numeric with gaps", []Value{NewNumericValue(1), Missing(), NewNumericValue(2.5)}, StorageNumeric},
		{"text", []Value{NewStringValue("a"), NewStringValue("b")}, StorageText},
		{"mixed", []Value{NewStringValue("a"), NewNumericValue(1)}, StorageMixed},
		{"boolean", []Value{NewBooleanValue(true)}, StorageBoolean},
		{"all missing", []Value{Missing(), NewStringValue("")}, StorageUnknown},
		{"empty", nil, StorageUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InferStorage(tt.values))
		})
	}
}

func TestValue_MissingAndKeys(t *testing.T) {
	assert.True(t, NewNumericValue(math.NaN()).IsMissing())
	assert.True(t, NewStringValue("").IsMissing())
	assert.True(t, Value{}.IsMissing())
	assert.NotEqual(t, NewNumericValue(1).Key(), NewStringValue("1").Key())
	assert.Equal(t, "1", NewNumericValue(1).String())
	assert.Nil(t, Missing().Interface())
}

func TestColumnIsolatedFromCallerSlice(t *testing.T) {
	values := []Value{NewNumericValue(1)}
	col := NewColumn("x", values)
	values[0] = NewNumericValue(99)
	f, _ := col.At(0).Float()
	assert.Equal(t, 1.0, f)
}
